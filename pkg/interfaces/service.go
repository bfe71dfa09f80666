package interfaces

import "context"

// ProcessOptions tune a document processing run.
type ProcessOptions struct {
	// Pattern limits directory runs to files matching the glob (defaults to
	// the loader's pattern).
	Pattern string
	// Recursive walks sub-directories on directory runs.
	Recursive bool
	// RenderHTML converts the expanded markup to HTML in the result.
	RenderHTML bool
}

// ProcessResult is the outcome of expanding a single document.
type ProcessResult struct {
	Document *Document
	// Markup is the fully expanded markup with every insertion command
	// resolved (or replaced by an inline error fragment).
	Markup string
	// HTML is populated when ProcessOptions.RenderHTML is set.
	HTML []byte
	// Stale reports whether a literate conversion changed during a full
	// evaluation pass, so dependent computation must be re-run.
	Stale bool
}

// DocumentService processes markup documents, resolving their insertion
// commands into embedded fragments.
type DocumentService interface {
	ProcessFile(ctx context.Context, path string, opts ProcessOptions) (*ProcessResult, error)
	ProcessDirectory(ctx context.Context, dir string, opts ProcessOptions) ([]*ProcessResult, error)
}
