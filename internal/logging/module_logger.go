package logging

import (
	"context"
	"strings"

	"github.com/mresende/go-weave/pkg/interfaces"
)

const (
	rootModule     = "weave"
	insertModule   = "weave.insert"
	documentModule = "weave.document"
	literateModule = "weave.literate"
)

const (
	fieldDocumentPath = "document_path"
	fieldReference    = "reference"
	fieldCommand      = "command"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// InsertLogger returns the logger namespace reserved for the embedding engine.
func InsertLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, insertModule)
}

// DocumentLogger returns the logger namespace reserved for document processing.
func DocumentLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, documentModule)
}

// LiterateLogger returns the logger namespace reserved for literate conversion.
func LiterateLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, literateModule)
}


// WithEmbedContext enriches the provided logger with common embedding fields
// such as the document path, the reference path, and the command keyword.
// Empty values are ignored.
func WithEmbedContext(logger interfaces.Logger, docPath, reference, command string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(docPath); trimmed != "" {
		fields[fieldDocumentPath] = trimmed
	}
	if trimmed := strings.TrimSpace(reference); trimmed != "" {
		fields[fieldReference] = trimmed
	}
	if trimmed := strings.TrimSpace(command); trimmed != "" {
		fields[fieldCommand] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
