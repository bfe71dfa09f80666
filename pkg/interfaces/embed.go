package interfaces

import "time"

// FileReader abstracts raw text reads so embedding strategies can be tested
// without touching the real filesystem.
type FileReader interface {
	// ReadText returns the full contents of the file at path, failing with a
	// descriptive error when the file is missing or unreadable.
	ReadText(path string) (string, error)
}

// TableConverter turns tabular data on disk into a rendered table fragment.
// The header is a comma separated list of column names; an empty header means
// the first record of the file provides the columns.
type TableConverter interface {
	Convert(path string, header string) (string, error)
}

// LiterateConverter transforms a literate script into document markup.
// The returned path points at the generated markup file; changed reports
// whether the generated content differs from the previous conversion. An
// empty path with a nil error means the converter produced nothing.
type LiterateConverter interface {
	Convert(scriptPath string) (outputPath string, changed bool, err error)
}

// Definitions is the active macro-definition table handed through when
// embedded text is reprocessed. Keys are command names without the leading
// backslash; values are replacement bodies that may reference positional
// arguments as #1, #2, ...
type Definitions map[string]string

// ReprocessOptions tune how freshly embedded text is fed back through the
// document processor.
type ReprocessOptions struct {
	// SuppressStripping skips leading/trailing whitespace normalisation,
	// used for literate content where original formatting matters.
	SuppressStripping bool
	// DocDir carries the enclosing document's directory so document-relative
	// references inside the reprocessed text keep resolving correctly.
	DocDir string
}

// Reprocessor feeds freshly embedded text back through the document
// processor so commands inside inserted text are themselves expanded. It
// must only process the supplied text, never the enclosing command.
type Reprocessor interface {
	Reprocess(text string, defs Definitions, opts ReprocessOptions) (string, error)
}

// FragmentRenderer formats resolved content into output markup fragments.
// Implementations own the target markup dialect; the embedding engine never
// assembles markup strings itself.
type FragmentRenderer interface {
	// CodeBlock wraps source text in a code fence tagged with lang. An empty
	// lang produces a plain, language-less block.
	CodeBlock(lang string, code string) string

	// Image produces an image fragment pointing at a site-relative path.
	Image(alt string, sitePath string) string

	// Error produces the inline error fragment embedded in place of content
	// that could not be resolved. ref names the original reference path.
	Error(ref string, reason error) string
}

// EmbedMetrics records telemetry for embedding strategies. Implementations
// must be safe to call with zero configuration; a no-op recorder is used by
// default.
type EmbedMetrics interface {
	ObserveEmbedDuration(command string, duration time.Duration)
	IncrementEmbedError(command string)
}

// EvalState is the per-session evaluation handle shared between the engine
// and the surrounding processor. The literate bridge marks it stale when a
// conversion changed and dependent computation must be re-run.
type EvalState interface {
	FullEval() bool
	MarkStale()
	Stale() bool
}
