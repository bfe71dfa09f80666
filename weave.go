// Package weave resolves author-written insertion commands inside markup
// documents into rendered fragments pulled from scripts, generated images,
// tabular data, execution output, and literate sources.
package weave

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mresende/go-weave/internal/document"
	"github.com/mresende/go-weave/internal/insert"
	"github.com/mresende/go-weave/internal/literate"
	"github.com/mresende/go-weave/internal/logging"
	"github.com/mresende/go-weave/internal/logging/console"
	"github.com/mresende/go-weave/internal/logging/gologger"
	"github.com/mresende/go-weave/internal/refpath"
	"github.com/mresende/go-weave/internal/render"
	"github.com/mresende/go-weave/internal/session"
	"github.com/mresende/go-weave/pkg/interfaces"
)

// CommandService exports the insert service contract for consumers of the
// weave package.
type CommandService = interfaces.CommandService

// DocumentService exports the document processing contract.
type DocumentService = interfaces.DocumentService

// ProcessOptions exports the per-run processing options.
type ProcessOptions = interfaces.ProcessOptions

// ProcessResult exports the per-document processing result.
type ProcessResult = interfaces.ProcessResult

// Definitions exports the macro-definition table type.
type Definitions = interfaces.Definitions

var _ interfaces.DocumentService = (*Engine)(nil)

// Engine is the top level runtime façade: it wires the reference resolver,
// embedding strategies, document processor, and loader behind one handle.
type Engine struct {
	cfg       Config
	provider  interfaces.LoggerProvider
	logger    interfaces.Logger
	session   *session.Session
	service   *insert.Service
	processor *document.Processor
	loader    *document.Loader
	html      *document.HTMLRenderer
	docFS     fs.FS
}

// Option overrides a collaborator during engine construction.
type Option func(*engineDeps)

type engineDeps struct {
	provider interfaces.LoggerProvider
	reader   interfaces.FileReader
	tables   interfaces.TableConverter
	literate interfaces.LiterateConverter
	metrics  interfaces.EmbedMetrics
	docFS    fs.FS
}

// WithLoggerProvider replaces the provider derived from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(d *engineDeps) {
		d.provider = provider
	}
}

// WithFileReader replaces the default OS-backed file reader.
func WithFileReader(reader interfaces.FileReader) Option {
	return func(d *engineDeps) {
		d.reader = reader
	}
}

// WithTableConverter replaces the default CSV table converter.
func WithTableConverter(tables interfaces.TableConverter) Option {
	return func(d *engineDeps) {
		d.tables = tables
	}
}

// WithLiterateConverter replaces the default literate converter.
func WithLiterateConverter(conv interfaces.LiterateConverter) Option {
	return func(d *engineDeps) {
		d.literate = conv
	}
}

// WithMetrics registers a telemetry recorder for embedding strategies.
func WithMetrics(metrics interfaces.EmbedMetrics) Option {
	return func(d *engineDeps) {
		d.metrics = metrics
	}
}

// WithDocumentFS replaces the filesystem documents are loaded from. Paths
// handed to ProcessFile/ProcessDirectory are then relative to this
// filesystem's root instead of the site root.
func WithDocumentFS(filesystem fs.FS) Option {
	return func(d *engineDeps) {
		d.docFS = filesystem
	}
}

// New constructs an engine from the supplied configuration.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	deps := engineDeps{}
	for _, opt := range opts {
		opt(&deps)
	}

	if deps.provider == nil {
		provider, err := bootstrapProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		deps.provider = provider
	}
	if deps.reader == nil {
		deps.reader = document.OSReader{}
	}
	if deps.tables == nil {
		deps.tables = render.NewCSVTable()
	}
	if deps.literate == nil && cfg.Features.Literate {
		deps.literate = literate.NewConverter(cfg.Literate.Language,
			literate.WithOutputDirName(cfg.Site.OutputDirName),
			literate.WithLogger(logging.LiterateLogger(deps.provider)),
		)
	}
	if deps.docFS == nil {
		deps.docFS = os.DirFS(cfg.Site.RootDir)
	}

	sess := session.New(cfg.Features.FullEval)

	resolver := refpath.NewResolver(refpath.Site{
		Root:          cfg.Site.RootDir,
		ScriptsDir:    cfg.Site.ScriptsDir,
		OutputDirName: cfg.Site.OutputDirName,
	}, cfg.Site.LanguageExtensions)

	renderer := render.NewMarkup()

	embedder := insert.NewEmbedder(resolver, deps.reader, renderer, deps.tables, deps.literate, sess,
		insert.WithPlaintextSentinel(cfg.Site.PlaintextSentinel),
		insert.WithLiterateHint(cfg.Literate.Language),
	)

	serviceOpts := []insert.ServiceOption{
		insert.WithLogger(logging.InsertLogger(deps.provider)),
		insert.WithLiterate(cfg.Features.Literate),
	}
	if deps.metrics != nil {
		serviceOpts = append(serviceOpts, insert.WithMetrics(deps.metrics))
	}
	service := insert.NewService(embedder, renderer, serviceOpts...)

	processor := document.NewProcessor(service,
		document.WithProcessorLogger(logging.DocumentLogger(deps.provider)),
	)
	embedder.BindReprocessor(processor)

	loader := document.NewLoader(deps.docFS, document.LoaderConfig{
		BasePath:  cfg.Site.RootDir,
		Recursive: true,
	})

	html := document.NewHTMLRenderer(document.HTMLOptions{
		Extensions: cfg.Markup.Extensions,
		HardWraps:  cfg.Markup.HardWraps,
		SafeMode:   !cfg.Markup.Unsafe,
	})

	return &Engine{
		cfg:       cfg,
		provider:  deps.provider,
		logger:    logging.ModuleLogger(deps.provider, "weave"),
		session:   sess,
		service:   service,
		processor: processor,
		loader:    loader,
		html:      html,
		docFS:     deps.docFS,
	}, nil
}

// bootstrapProvider builds a logger provider from the logging configuration.
// Logging disabled yields a nil provider, which downgrades every module
// logger to a no-op.
func bootstrapProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	switch cfg.Provider {
	case "console":
		return console.NewProvider(console.Options{}), nil
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("weave: unsupported logging provider %q", cfg.Provider)
	}
}

// Commands returns the insert service so hosts can expand invocations
// directly or register the command keywords it handles.
func (e *Engine) Commands() *insert.Service {
	return e.service
}

// Session exposes the evaluation state for the current run.
func (e *Engine) Session() *session.Session {
	return e.session
}

// LoggerProvider exposes the provider so hosts can attach module loggers of
// their own.
func (e *Engine) LoggerProvider() interfaces.LoggerProvider {
	return e.provider
}

// Expand resolves every insertion command in text as if it belonged to the
// document at docPath.
func (e *Engine) Expand(ctx context.Context, docPath string, text string, defs Definitions) (string, error) {
	return e.processor.Process(ctx, docPath, text, defs)
}

// ProcessFile loads, expands, and optionally renders a single document. The
// path is relative to the site root.
func (e *Engine) ProcessFile(ctx context.Context, path string, opts ProcessOptions) (*ProcessResult, error) {
	doc, err := e.loader.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return e.process(ctx, doc, opts)
}

// ProcessDirectory loads and expands every document under dir, in file path
// order.
func (e *Engine) ProcessDirectory(ctx context.Context, dir string, opts ProcessOptions) ([]*ProcessResult, error) {
	loader := e.loader
	if opts.Pattern != "" || !opts.Recursive {
		loader = document.NewLoader(e.docFS, document.LoaderConfig{
			BasePath:  e.cfg.Site.RootDir,
			Pattern:   opts.Pattern,
			Recursive: opts.Recursive,
		})
	}

	docs, err := loader.LoadDirectory(ctx, dir)
	if err != nil {
		return nil, err
	}

	results := make([]*ProcessResult, 0, len(docs))
	for _, doc := range docs {
		result, err := e.process(ctx, doc, opts)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (e *Engine) process(ctx context.Context, doc *interfaces.Document, opts ProcessOptions) (*ProcessResult, error) {
	docPath := filepath.Join(e.cfg.Site.RootDir, filepath.FromSlash(doc.FilePath))

	markup, err := e.processor.Process(ctx, docPath, string(doc.Body), documentDefinitions(doc))
	if err != nil {
		return nil, err
	}

	result := &ProcessResult{
		Document: doc,
		Markup:   markup,
		Stale:    e.session.Stale(),
	}

	if opts.RenderHTML {
		html, err := e.html.Render([]byte(markup))
		if err != nil {
			return nil, err
		}
		result.HTML = html
	}

	e.logger.Debug("document processed",
		"path", doc.FilePath,
		"route", doc.Route,
		"stale", result.Stale,
	)

	return result, nil
}

// documentDefinitions lifts macro definitions declared in the document's
// frontmatter (a "defs" mapping of command name to replacement body) into
// the definition table used during expansion.
func documentDefinitions(doc *interfaces.Document) Definitions {
	raw, ok := doc.FrontMatter.Extra["defs"].(map[string]any)
	if !ok {
		return nil
	}
	defs := make(Definitions, len(raw))
	for name, body := range raw {
		if text, ok := body.(string); ok {
			defs[name] = text
		}
	}
	return defs
}
