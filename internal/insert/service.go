package insert

import (
	"fmt"
	"strings"
	"time"

	"github.com/mresende/go-weave/internal/logging"
	"github.com/mresende/go-weave/pkg/interfaces"
)

// HandlerFunc is a single command's embedding strategy. It may fail; the
// service boundary converts the failure into an inline error fragment.
type HandlerFunc func(ctx interfaces.EmbedContext, inv interfaces.Invocation) (string, error)

// Service routes insertion commands to embedding strategies. It is the only
// boundary through which the document processor reaches the engine, and it
// never lets an error escape: every failure becomes an error fragment.
type Service struct {
	embedder *Embedder
	renderer interfaces.FragmentRenderer
	handlers map[string]HandlerFunc
	logger   interfaces.Logger
	metrics  interfaces.EmbedMetrics
	literate bool
}

// ServiceOption customises service behaviour.
type ServiceOption func(*Service)

// WithLogger attaches a logger used for structured diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics wires the metrics recorder used for telemetry.
func WithMetrics(metrics interfaces.EmbedMetrics) ServiceOption {
	return func(s *Service) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// WithLiterate toggles the \literate command.
func WithLiterate(enabled bool) ServiceOption {
	return func(s *Service) {
		s.literate = enabled
	}
}

// NewService constructs the command service over an embedder and a fragment
// renderer, registering the built-in command surface.
func NewService(embedder *Embedder, renderer interfaces.FragmentRenderer, opts ...ServiceOption) *Service {
	s := &Service{
		embedder: embedder,
		renderer: renderer,
		logger:   logging.NoOp(),
		metrics:  NoOpMetrics(),
		literate: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerBuiltins()
	return s
}

// Handles reports whether the service owns the given command keyword.
func (s *Service) Handles(name string) bool {
	_, ok := s.handlers[strings.ToLower(name)]
	return ok
}

// Commands lists the registered command keywords.
func (s *Service) Commands() []string {
	names := make([]string, 0, len(s.handlers))
	for name := range s.handlers {
		names = append(names, name)
	}
	return names
}

// Expand runs the strategy registered for the invocation and returns the
// produced fragment. Any failure, including an unknown keyword or a bad
// argument count, is rendered as an inline error fragment so one broken
// reference never aborts document generation.
func (s *Service) Expand(ctx interfaces.EmbedContext, inv interfaces.Invocation) string {
	logger := logging.WithEmbedContext(s.logger, ctx.DocPath, referenceArg(inv), inv.Name)

	handler, ok := s.handlers[strings.ToLower(inv.Name)]
	if !ok {
		s.metrics.IncrementEmbedError(inv.Name)
		err := fmt.Errorf("%w: %s", ErrUnknownCommand, inv.Name)
		logger.Error("insert.service.unknown_command", "location", inv.Location)
		return s.renderer.Error(referenceArg(inv), err)
	}

	start := time.Now()
	fragment, err := handler(ctx, inv)
	elapsed := time.Since(start)
	s.metrics.ObserveEmbedDuration(inv.Name, elapsed)

	if err != nil {
		s.metrics.IncrementEmbedError(inv.Name)
		logger.Error("insert.service.embed_failed",
			"error", err,
			"location", inv.Location,
			"duration_ms", elapsed.Milliseconds(),
		)
		return s.renderer.Error(referenceArg(inv), err)
	}

	logger.Debug("insert.service.embed_succeeded",
		"duration_ms", elapsed.Milliseconds(),
	)
	return fragment
}

func (s *Service) registerBuiltins() {
	s.handlers = map[string]HandlerFunc{
		"insert": func(ctx interfaces.EmbedContext, inv interfaces.Invocation) (string, error) {
			if err := wantArgs(inv, 2); err != nil {
				return "", err
			}
			switch q := ParseQualifier(inv.Args[0]).(type) {
			case Plot:
				return s.embedder.Plot(inv.Args[1], q.ID, ctx.DocDir)
			case Language:
				return s.embedder.Code(inv.Args[1], q.Name, ctx.DocDir)
			default:
				return "", fmt.Errorf("insert: unsupported qualifier %q", inv.Args[0])
			}
		},
		"textinsert": func(ctx interfaces.EmbedContext, inv interfaces.Invocation) (string, error) {
			if err := wantArgs(inv, 1); err != nil {
				return "", err
			}
			return s.embedder.Text(inv.Args[0], ctx.DocDir, ctx.Defs)
		},
		"output": func(ctx interfaces.EmbedContext, inv interfaces.Invocation) (string, error) {
			if err := wantArgs(inv, 1); err != nil {
				return "", err
			}
			return s.embedder.Output(inv.Args[0], ctx.DocDir, OutputPlain, nil)
		},
		"textoutput": func(ctx interfaces.EmbedContext, inv interfaces.Invocation) (string, error) {
			if err := wantArgs(inv, 1); err != nil {
				return "", err
			}
			return s.embedder.Output(inv.Args[0], ctx.DocDir, OutputReprocessed, ctx.Defs)
		},
		"show": func(ctx interfaces.EmbedContext, inv interfaces.Invocation) (string, error) {
			if err := wantArgs(inv, 1); err != nil {
				return "", err
			}
			return s.embedder.Output(inv.Args[0], ctx.DocDir, OutputWithResult, nil)
		},
		"figalt": func(ctx interfaces.EmbedContext, inv interfaces.Invocation) (string, error) {
			if err := wantArgs(inv, 2); err != nil {
				return "", err
			}
			return s.embedder.Figure(inv.Args[0], inv.Args[1], ctx.DocDir)
		},
		"tableinput": func(ctx interfaces.EmbedContext, inv interfaces.Invocation) (string, error) {
			if err := wantArgs(inv, 2); err != nil {
				return "", err
			}
			return s.embedder.Table(inv.Args[0], inv.Args[1], ctx.DocDir)
		},
		"literate": func(ctx interfaces.EmbedContext, inv interfaces.Invocation) (string, error) {
			if err := wantArgs(inv, 1); err != nil {
				return "", err
			}
			if !s.literate {
				return "", ErrLiterateDisabled
			}
			return s.embedder.Literate(inv.Args[0], ctx.DocDir, ctx.Defs)
		},
	}
}

// referenceArg picks the argument naming the reference path, used when an
// error fragment must identify the broken command.
func referenceArg(inv interfaces.Invocation) string {
	switch strings.ToLower(inv.Name) {
	case "insert", "figalt", "tableinput":
		if len(inv.Args) > 1 {
			return inv.Args[1]
		}
	default:
		if len(inv.Args) > 0 {
			return inv.Args[0]
		}
	}
	return inv.Name
}

func wantArgs(inv interfaces.Invocation, count int) error {
	if len(inv.Args) != count {
		return fmt.Errorf("%w: %s expects %d, got %d", ErrBadArgumentCount, inv.Name, count, len(inv.Args))
	}
	return nil
}

var _ interfaces.CommandService = (*Service)(nil)
