package interfaces

import (
	"context"
	"time"
)

// Invocation is a single parsed insertion command: the command keyword, its
// ordered brace-delimited arguments, and a source location used purely for
// diagnostics. Invocations are owned by the parser and read-only to the
// embedding engine.
type Invocation struct {
	Name     string
	Args     []string
	Location string
}

// EmbedContext carries call-scoped data surfaced while expanding a command:
// the directory and path of the enclosing document plus the macro-definition
// table in scope.
type EmbedContext struct {
	Context context.Context
	DocDir  string
	DocPath string
	Defs    Definitions
}

// CommandService expands insertion commands into markup fragments. Expand
// never returns an error: resolution failures surface as inline error
// fragments inside the returned text.
type CommandService interface {
	Expand(ctx EmbedContext, inv Invocation) string
	Handles(name string) bool
}

// FrontMatter captures the document metadata recognised by the loader.
type FrontMatter struct {
	Title string
	Slug  string
	Draft bool
	Extra map[string]any
}

// Document is a loaded markup source file plus derived metadata.
type Document struct {
	FilePath    string
	Route       string
	FrontMatter FrontMatter
	Body        []byte
	Checksum    []byte
	Modified    time.Time
}
