// Package insert resolves author-written insertion commands into rendered
// markup fragments pulled from scripts, generated images, tabular data,
// execution output, and literate sources. Failures never escape as errors to
// the document pipeline; the service boundary converts them into inline
// error fragments.
package insert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mresende/go-weave/internal/artifact"
	"github.com/mresende/go-weave/internal/refpath"
	"github.com/mresende/go-weave/pkg/interfaces"
)

// resultNothing is the sentinel a script run writes to its result file when
// the final expression produced no value. It is never appended to output.
const resultNothing = "nothing"

// defaultTableExt is assumed when a table reference omits its extension.
const defaultTableExt = ".csv"

// OutputMode selects how execution output is embedded. The modes are
// mutually exclusive; the caller's command variant picks exactly one.
type OutputMode int

const (
	// OutputPlain wraps the output file in a language-less code block.
	OutputPlain OutputMode = iota
	// OutputReprocessed feeds the output text back through the document
	// processor instead of fencing it.
	OutputReprocessed
	// OutputWithResult appends the result file to the output before fencing.
	OutputWithResult
)

// Embedder implements the embedding strategies over a resolved site layout.
type Embedder struct {
	resolver     *refpath.Resolver
	reader       interfaces.FileReader
	renderer     interfaces.FragmentRenderer
	tables       interfaces.TableConverter
	literate     interfaces.LiterateConverter
	reproc       interfaces.Reprocessor
	state        interfaces.EvalState
	plaintext    string
	literateHint string
}

// EmbedderOption customises an Embedder.
type EmbedderOption func(*Embedder)

// WithPlaintextSentinel overrides the language name that demotes a code
// embed to a plain block.
func WithPlaintextSentinel(name string) EmbedderOption {
	return func(e *Embedder) {
		if strings.TrimSpace(name) != "" {
			e.plaintext = name
		}
	}
}

// WithLiterateHint sets the language hint used to resolve literate scripts.
func WithLiterateHint(lang string) EmbedderOption {
	return func(e *Embedder) {
		if strings.TrimSpace(lang) != "" {
			e.literateHint = lang
		}
	}
}

// NewEmbedder wires the embedding strategies to their collaborators.
func NewEmbedder(
	resolver *refpath.Resolver,
	reader interfaces.FileReader,
	renderer interfaces.FragmentRenderer,
	tables interfaces.TableConverter,
	literate interfaces.LiterateConverter,
	state interfaces.EvalState,
	opts ...EmbedderOption,
) *Embedder {
	e := &Embedder{
		resolver:     resolver,
		reader:       reader,
		renderer:     renderer,
		tables:       tables,
		literate:     literate,
		state:        state,
		plaintext:    "plaintext",
		literateHint: "julia",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BindReprocessor injects the document reprocessor after construction. The
// processor depends on the insert service, so the binding is completed by the
// host once both sides exist.
func (e *Embedder) BindReprocessor(reproc interfaces.Reprocessor) {
	e.reproc = reproc
}

// Code resolves ref with lang as extension hint, reads its full text, and
// wraps it as a source block tagged with lang. The plaintext sentinel demotes
// the block to a plain one.
func (e *Embedder) Code(ref, lang, docDir string) (string, error) {
	path, err := e.resolver.Resolve(ref, refpath.Options{Hint: lang, Code: true, DocDir: docDir})
	if err != nil {
		return "", err
	}
	text, err := e.reader.ReadText(path)
	if err != nil {
		return "", err
	}
	tag := lang
	if strings.EqualFold(lang, e.plaintext) {
		tag = ""
	}
	return e.renderer.CodeBlock(tag, text), nil
}

// Plot locates a generated image for the referenced script, disambiguated by
// the optional id suffix, and embeds it with a site-relative path.
func (e *Embedder) Plot(ref, id, docDir string) (string, error) {
	bundle := e.resolver.Bundle(ref, refpath.Options{DocDir: docDir})
	match, err := artifact.Locate(e.resolver.Site().Root, bundle.OutputDir, bundle.BaseName, id, artifact.ImageExtensions)
	if err != nil {
		return "", err
	}
	return e.renderer.Image(bundle.BaseName+id, match.SitePath), nil
}

// Output embeds the pre-computed execution output of the referenced script.
// OutputWithResult appends the result file unless it holds the "nothing"
// sentinel; OutputReprocessed expands commands inside the output text.
func (e *Embedder) Output(ref, docDir string, mode OutputMode, defs interfaces.Definitions) (string, error) {
	bundle := e.resolver.Bundle(ref, refpath.Options{DocDir: docDir})

	out, err := e.reader.ReadText(bundle.OutFile)
	if err != nil {
		return "", err
	}

	if mode == OutputWithResult {
		res, err := e.reader.ReadText(bundle.ResFile)
		if err != nil {
			return "", err
		}
		out = appendResult(out, res)
	}

	if mode == OutputReprocessed {
		return e.reproc.Reprocess(out, defs, interfaces.ReprocessOptions{DocDir: docDir})
	}
	return e.renderer.CodeBlock("", out), nil
}

// Text resolves ref, reads its full text, and reprocesses it as document
// markup so commands inside the inserted text are themselves expanded.
func (e *Embedder) Text(ref, docDir string, defs interfaces.Definitions) (string, error) {
	path, err := e.resolver.Resolve(ref, refpath.Options{DocDir: docDir})
	if err != nil {
		return "", err
	}
	text, err := e.reader.ReadText(path)
	if err != nil {
		return "", err
	}
	return e.reproc.Reprocess(text, defs, interfaces.ReprocessOptions{DocDir: docDir})
}

// Figure embeds an image with alt text. The literal path's candidate
// extensions are tried first; when the parent directory is not already the
// output directory, the same candidates are retried inside a sibling output
// subdirectory. First filesystem hit wins.
func (e *Embedder) Figure(alt, ref, docDir string) (string, error) {
	path := e.resolver.Path(ref, refpath.Options{DocDir: docDir})
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	exts := artifact.ImageExtensions
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
		exts = []string{ext}
	}

	for _, candidate := range e.figureCandidates(dir, base, exts) {
		if fileExists(candidate) {
			return e.renderer.Image(alt, refpath.SiteRelative(e.resolver.Site().Root, candidate)), nil
		}
	}
	return "", fmt.Errorf("figure %s: %w", ref, refpath.ErrNotFound)
}

// Table embeds tabular data with the supplied header description. The
// literal path is tried first, then the sibling output subdirectory unless
// the parent directory is already the output directory.
func (e *Embedder) Table(header, ref, docDir string) (string, error) {
	path := e.resolver.Path(ref, refpath.Options{DocDir: docDir})
	if filepath.Ext(path) == "" {
		path += defaultTableExt
	}

	if !fileExists(path) {
		dir := filepath.Dir(path)
		if filepath.Base(dir) == e.resolver.Site().OutputDirName {
			return "", fmt.Errorf("table %s: %w", ref, refpath.ErrNotFound)
		}
		alt := filepath.Join(dir, e.resolver.Site().OutputDirName, filepath.Base(path))
		if !fileExists(alt) {
			return "", fmt.Errorf("table %s: %w", ref, refpath.ErrNotFound)
		}
		path = alt
	}

	return e.tables.Convert(path, header)
}

// Literate converts the referenced literate script to markup, marks the
// session stale when a full-evaluation run observed changed content, and
// reprocesses the converted text with whitespace stripping suppressed.
func (e *Embedder) Literate(ref, docDir string, defs interfaces.Definitions) (string, error) {
	script, err := e.resolver.Resolve(ref, refpath.Options{Hint: e.literateHint, DocDir: docDir})
	if err != nil {
		return "", err
	}

	converted, changed, err := e.literate.Convert(script)
	if err != nil {
		return "", err
	}
	if converted == "" {
		return "", fmt.Errorf("literate %s: %w", ref, refpath.ErrNotFound)
	}
	if changed && e.state != nil && e.state.FullEval() {
		e.state.MarkStale()
	}

	text, err := e.reader.ReadText(converted)
	if err != nil {
		return "", err
	}
	return e.reproc.Reprocess(text, defs, interfaces.ReprocessOptions{
		SuppressStripping: true,
		DocDir:            docDir,
	})
}

func (e *Embedder) figureCandidates(dir, base string, exts []string) []string {
	candidates := make([]string, 0, len(exts)*2)
	for _, ext := range exts {
		candidates = append(candidates, filepath.Join(dir, base+ext))
	}
	if filepath.Base(dir) != e.resolver.Site().OutputDirName {
		for _, ext := range exts {
			candidates = append(candidates, filepath.Join(dir, e.resolver.Site().OutputDirName, base+ext))
		}
	}
	return candidates
}

// appendResult joins a result onto output, inserting a single newline
// separator only when the output is non-empty and does not already end with
// one. The "nothing" sentinel is never appended.
func appendResult(out, res string) string {
	if res == resultNothing {
		return out
	}
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out + res
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
