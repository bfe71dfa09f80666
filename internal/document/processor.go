package document

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mresende/go-weave/internal/logging"
	"github.com/mresende/go-weave/pkg/interfaces"
)

// Processor expands command invocations inside document markup, strictly in
// document order. Invocations with a registered handler go through the
// command service; names found in the macro-definition table expand to their
// bodies with positional arguments substituted; everything else is restored
// verbatim so unrelated backslash text survives untouched.
type Processor struct {
	service interfaces.CommandService
	parser  *Parser
	logger  interfaces.Logger
}

// ProcessorOption customises processor construction.
type ProcessorOption func(*Processor)

// WithProcessorLogger overrides the default no-op logger.
func WithProcessorLogger(logger interfaces.Logger) ProcessorOption {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProcessor builds a processor around the supplied command service.
func NewProcessor(service interfaces.CommandService, opts ...ProcessorOption) *Processor {
	p := &Processor{
		service: service,
		parser:  NewParser(),
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process expands every invocation in text. docPath names the enclosing
// document and anchors document-relative references; defs is the active
// macro-definition table.
func (p *Processor) Process(ctx context.Context, docPath string, text string, defs interfaces.Definitions) (string, error) {
	return p.expand(ctx, docPath, filepath.Dir(docPath), text, defs)
}

// Reprocess feeds freshly embedded text back through the expansion pass so
// commands inside inserted content are themselves resolved. Only the supplied
// text is processed; the enclosing command is never re-resolved because its
// definition is removed from scope before its body expands.
func (p *Processor) Reprocess(text string, defs interfaces.Definitions, opts interfaces.ReprocessOptions) (string, error) {
	if !opts.SuppressStripping {
		text = strings.TrimSpace(text)
	}
	return p.expand(context.Background(), "", opts.DocDir, text, defs)
}

func (p *Processor) expand(ctx context.Context, docPath, docDir, text string, defs interfaces.Definitions) (string, error) {
	stripped, invocations, err := p.parser.Extract(text)
	if err != nil {
		return "", err
	}
	if len(invocations) == 0 {
		return text, nil
	}

	out := stripped
	for i, inv := range invocations {
		var fragment string

		switch {
		case p.service.Handles(inv.Name):
			fragment = p.service.Expand(interfaces.EmbedContext{
				Context: ctx,
				DocDir:  docDir,
				DocPath: docPath,
				Defs:    defs,
			}, inv)
		case defs[inv.Name] != "":
			body := substituteArgs(defs[inv.Name], inv.Args)
			nested, err := p.expand(ctx, docPath, docDir, body, withoutDefinition(defs, inv.Name))
			if err != nil {
				return "", err
			}
			fragment = nested
		default:
			fragment = reconstruct(inv)
		}

		out = strings.Replace(out, placeholder(i), fragment, 1)
	}

	p.logger.Debug("document expanded",
		"path", docPath,
		"invocations", len(invocations),
	)

	return out, nil
}

// substituteArgs replaces positional markers (#1, #2, ...) in a definition
// body with the invocation arguments. Higher positions substitute first so #1
// never clobbers the prefix of #10.
func substituteArgs(body string, args []string) string {
	for i := len(args); i >= 1; i-- {
		body = strings.ReplaceAll(body, "#"+strconv.Itoa(i), args[i-1])
	}
	return body
}

// withoutDefinition drops one name from the definition table so a macro body
// cannot re-expand itself.
func withoutDefinition(defs interfaces.Definitions, name string) interfaces.Definitions {
	out := make(interfaces.Definitions, len(defs))
	for key, value := range defs {
		if key == name {
			continue
		}
		out[key] = value
	}
	return out
}

// reconstruct restores the literal source text of an invocation no handler or
// definition claimed.
func reconstruct(inv interfaces.Invocation) string {
	var b strings.Builder
	b.WriteByte('\\')
	b.WriteString(inv.Name)
	for _, arg := range inv.Args {
		b.WriteByte('{')
		b.WriteString(arg)
		b.WriteByte('}')
	}
	return b.String()
}
