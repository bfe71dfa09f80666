// Package render formats resolved content into output markup fragments. The
// embedding engine never assembles markup itself; everything it returns goes
// through a FragmentRenderer.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/mresende/go-weave/pkg/interfaces"
)

// Markup renders fragments in the markdown dialect consumed by the document
// pipeline. It is stateless and safe to share.
type Markup struct{}

// NewMarkup constructs the default fragment renderer.
func NewMarkup() *Markup {
	return &Markup{}
}

// CodeBlock wraps source text in a fenced block tagged with lang. An empty
// lang yields a plain block.
func (m *Markup) CodeBlock(lang, code string) string {
	fence := pickFence(code)
	var b strings.Builder
	b.WriteString(fence)
	b.WriteString(lang)
	b.WriteByte('\n')
	b.WriteString(code)
	if !strings.HasSuffix(code, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(fence)
	return b.String()
}

// Image emits an image fragment with alt text and a site-relative source.
func (m *Markup) Image(alt, sitePath string) string {
	return fmt.Sprintf("![%s](%s)", escapeAlt(alt), sitePath)
}

// Error emits the inline error fragment placed where a reference could not
// be embedded. The original reference path is always named so authors can
// find the broken command.
func (m *Markup) Error(ref string, reason error) string {
	msg := ""
	if reason != nil {
		msg = reason.Error()
	}
	return fmt.Sprintf(
		`<span class="weave-error">could not embed %q: %s</span>`,
		ref, html.EscapeString(msg),
	)
}

// pickFence grows the fence when the embedded code itself contains
// backtick runs.
func pickFence(code string) string {
	fence := "```"
	for strings.Contains(code, fence) {
		fence += "`"
	}
	return fence
}

func escapeAlt(alt string) string {
	alt = strings.ReplaceAll(alt, "[", `\[`)
	return strings.ReplaceAll(alt, "]", `\]`)
}

var _ interfaces.FragmentRenderer = (*Markup)(nil)
