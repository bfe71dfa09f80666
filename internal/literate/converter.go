package literate

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mresende/go-weave/internal/logging"
	"github.com/mresende/go-weave/pkg/interfaces"
)

// Converter turns a literate script into document markup placed beside the
// script under the output directory. Narrative lines carry a leading "# "
// comment marker; everything else is source code and lands in fenced blocks
// tagged with the converter's language.
type Converter struct {
	language      string
	outputDirName string
	logger        interfaces.Logger
}

// Option customises converter construction.
type Option func(*Converter)

// WithOutputDirName overrides the directory name generated markup is written
// into (defaults to "output").
func WithOutputDirName(name string) Option {
	return func(c *Converter) {
		if strings.TrimSpace(name) != "" {
			c.outputDirName = name
		}
	}
}

// WithLogger overrides the default no-op logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewConverter builds a converter for scripts in the named language. The
// language tags the generated code fences.
func NewConverter(language string, opts ...Option) *Converter {
	c := &Converter{
		language:      language,
		outputDirName: "output",
		logger:        logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert renders the script at scriptPath to markup, writes the result next
// to the script under the output directory, and reports whether the generated
// content differs from the previous conversion. An empty outputPath with a
// nil error means the script produced no markup.
func (c *Converter) Convert(scriptPath string) (string, bool, error) {
	source, err := os.ReadFile(scriptPath)
	if err != nil {
		return "", false, fmt.Errorf("literate read %s: %w", scriptPath, err)
	}

	markup := c.render(string(source))
	if strings.TrimSpace(markup) == "" {
		return "", false, nil
	}

	base := strings.TrimSuffix(filepath.Base(scriptPath), filepath.Ext(scriptPath))
	outDir := filepath.Join(filepath.Dir(scriptPath), c.outputDirName)
	outPath := filepath.Join(outDir, base+".md")

	changed := true
	if previous, err := os.ReadFile(outPath); err == nil {
		changed = sha256.Sum256(previous) != sha256.Sum256([]byte(markup))
	}

	if changed {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return "", false, fmt.Errorf("literate mkdir %s: %w", outDir, err)
		}
		if err := os.WriteFile(outPath, []byte(markup), 0o644); err != nil {
			return "", false, fmt.Errorf("literate write %s: %w", outPath, err)
		}
		c.logger.Debug("literate conversion written",
			"script", scriptPath,
			"output", outPath,
		)
	}

	return outPath, changed, nil
}

// render converts literate source into markup. Lines starting with the "# "
// comment marker (or a bare "#") are narrative; runs of anything else become
// fenced code blocks. Blank lines at chunk boundaries are dropped so the
// generated markup stays tight.
func (c *Converter) render(source string) string {
	var (
		out  strings.Builder
		code []string
	)

	flushCode := func() {
		trimmed := trimBlankEdges(code)
		code = code[:0]
		if len(trimmed) == 0 {
			return
		}
		out.WriteString("```")
		out.WriteString(c.language)
		out.WriteByte('\n')
		for _, line := range trimmed {
			out.WriteString(line)
			out.WriteByte('\n')
		}
		out.WriteString("```\n")
	}

	lines := strings.Split(source, "\n")
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "# "):
			flushCode()
			out.WriteString(line[2:])
			out.WriteByte('\n')
		case strings.TrimRight(line, " \t") == "#":
			flushCode()
			out.WriteByte('\n')
		default:
			code = append(code, line)
		}
	}
	flushCode()

	return out.String()
}

func trimBlankEdges(lines []string) []string {
	start := 0
	end := len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return append([]string(nil), lines[start:end]...)
}
