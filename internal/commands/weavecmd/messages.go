package weavecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const (
	processFileMessageType      = "weave.document.process_file"
	processDirectoryMessageType = "weave.document.process_directory"
)

// ProcessFileCommand expands the insertion commands of a single document.
type ProcessFileCommand struct {
	// Path selects the document to process, relative to the loader's base.
	Path string `json:"path"`
	// SessionID correlates log entries across one processing run.
	SessionID uuid.UUID `json:"session_id,omitempty"`
	// RenderHTML converts the expanded markup to HTML.
	RenderHTML bool `json:"render_html,omitempty"`
}

// Type implements command.Message.
func (ProcessFileCommand) Type() string { return processFileMessageType }

// Validate ensures a document path is present before handlers execute.
func (cmd ProcessFileCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("weave.document.process_file.path_required", "path is required")
			}
			return nil
		})),
	)
}

// ProcessDirectoryCommand expands every document discovered under Directory.
type ProcessDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to load documents from.
	Directory string `json:"directory"`
	// Pattern limits the run to files matching the glob.
	Pattern string `json:"pattern,omitempty"`
	// Recursive walks sub-directories.
	Recursive bool `json:"recursive,omitempty"`
	// SessionID correlates log entries across one processing run.
	SessionID uuid.UUID `json:"session_id,omitempty"`
	// RenderHTML converts the expanded markup to HTML.
	RenderHTML bool `json:"render_html,omitempty"`
}

// Type implements command.Message.
func (ProcessDirectoryCommand) Type() string { return processDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ProcessDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("weave.document.process_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}
