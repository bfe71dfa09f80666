package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// HTMLOptions configure how expanded markup is rendered to HTML.
type HTMLOptions struct {
	// Extensions names the goldmark extensions to enable. Unknown names are
	// ignored; an empty list falls back to GFM, linkify, and task lists.
	Extensions []string
	// HardWraps renders single newlines as <br>.
	HardWraps bool
	// SafeMode withholds raw HTML from the output.
	SafeMode bool
}

// HTMLRenderer converts fully expanded markup into HTML. The renderer is
// stateless so callers can reuse a single instance across documents.
type HTMLRenderer struct {
	defaults HTMLOptions
}

// NewHTMLRenderer constructs a renderer with the supplied defaults.
func NewHTMLRenderer(defaults HTMLOptions) *HTMLRenderer {
	return &HTMLRenderer{defaults: defaults}
}

// Render converts markup to HTML using the renderer's defaults.
func (r *HTMLRenderer) Render(markup []byte) ([]byte, error) {
	return r.RenderWithOptions(markup, r.defaults)
}

// RenderWithOptions converts markup to HTML using the provided options.
func (r *HTMLRenderer) RenderWithOptions(markup []byte, opts HTMLOptions) ([]byte, error) {
	engine := newGoldmarkEngine(opts)
	var buf bytes.Buffer
	if err := engine.Convert(markup, &buf); err != nil {
		return nil, fmt.Errorf("html render: %w", err)
	}
	return buf.Bytes(), nil
}

// newGoldmarkEngine builds a goldmark.Markdown from the supplied options. The
// mapping is intentionally conservative; unsupported extension names are
// ignored.
func newGoldmarkEngine(opts HTMLOptions) goldmark.Markdown {
	exts := collectExtensions(opts.Extensions)

	parserOptions := []parser.Option{
		parser.WithAutoHeadingID(),
	}

	rendererOptions := []renderer.Option{}

	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	if !opts.SafeMode {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parserOptions...),
	}

	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}

	if len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}

		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}
