package weavecmd

import (
	"context"

	command "github.com/goliatone/go-command"
	"github.com/google/uuid"

	"github.com/mresende/go-weave/internal/commands"
	"github.com/mresende/go-weave/internal/logging"
	"github.com/mresende/go-weave/pkg/interfaces"
)

const (
	processFileOperation      = "document.process_file"
	processDirectoryOperation = "document.process_directory"
)

var (
	_ command.Commander[ProcessFileCommand]      = (*ProcessFileHandler)(nil)
	_ command.Commander[ProcessDirectoryCommand] = (*ProcessDirectoryHandler)(nil)
)

// ResultSink receives every processing result as it completes. Handlers
// invoke it synchronously in document order.
type ResultSink func(*interfaces.ProcessResult)

// ProcessFileHandler expands a single document via the shared command handler foundation.
type ProcessFileHandler struct {
	inner *commands.Handler[ProcessFileCommand]
}

// NewProcessFileHandler creates a handler bound to the supplied document service.
func NewProcessFileHandler(service interfaces.DocumentService, logger interfaces.Logger, sink ResultSink, opts ...commands.HandlerOption[ProcessFileCommand]) *ProcessFileHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ProcessFileCommand) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := service.ProcessFile(ctx, msg.Path, interfaces.ProcessOptions{
			RenderHTML: msg.RenderHTML,
		})
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"path":  msg.Path,
				"route": result.Document.Route,
				"stale": result.Stale,
			}).Info("document.command.process_file.completed")
			if sink != nil {
				sink(result)
			}
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ProcessFileCommand]{
		commands.WithLogger[ProcessFileCommand](baseLogger),
		commands.WithOperation[ProcessFileCommand](processFileOperation),
		commands.WithMessageFields(func(msg ProcessFileCommand) map[string]any {
			fields := map[string]any{
				"path": msg.Path,
			}
			if msg.SessionID != uuid.Nil {
				fields["session_id"] = msg.SessionID
			}
			if msg.RenderHTML {
				fields["render_html"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ProcessFileCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ProcessFileHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ProcessFileCommand].
func (h *ProcessFileHandler) Execute(ctx context.Context, msg ProcessFileCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ProcessDirectoryHandler expands every document under a directory via the shared foundation.
type ProcessDirectoryHandler struct {
	inner *commands.Handler[ProcessDirectoryCommand]
}

// NewProcessDirectoryHandler creates a handler bound to the supplied document service.
func NewProcessDirectoryHandler(service interfaces.DocumentService, logger interfaces.Logger, sink ResultSink, opts ...commands.HandlerOption[ProcessDirectoryCommand]) *ProcessDirectoryHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ProcessDirectoryCommand) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		results, err := service.ProcessDirectory(ctx, msg.Directory, interfaces.ProcessOptions{
			Pattern:    msg.Pattern,
			Recursive:  msg.Recursive,
			RenderHTML: msg.RenderHTML,
		})
		if err != nil {
			return err
		}

		stale := 0
		for _, result := range results {
			if result.Stale {
				stale++
			}
			if sink != nil {
				sink(result)
			}
		}

		logging.WithFields(baseLogger, map[string]any{
			"directory":      msg.Directory,
			"document_count": len(results),
			"stale_count":    stale,
		}).Info("document.command.process_directory.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ProcessDirectoryCommand]{
		commands.WithLogger[ProcessDirectoryCommand](baseLogger),
		commands.WithOperation[ProcessDirectoryCommand](processDirectoryOperation),
		commands.WithMessageFields(func(msg ProcessDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if msg.Recursive {
				fields["recursive"] = true
			}
			if msg.SessionID != uuid.Nil {
				fields["session_id"] = msg.SessionID
			}
			if msg.RenderHTML {
				fields["render_html"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ProcessDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ProcessDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ProcessDirectoryCommand].
func (h *ProcessDirectoryHandler) Execute(ctx context.Context, msg ProcessDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}
