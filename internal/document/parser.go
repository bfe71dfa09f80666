package document

import (
	"fmt"
	"strings"

	"github.com/mresende/go-weave/pkg/interfaces"
)

// Parser extracts backslash command invocations (\name{arg}{arg}) from
// document markup. The parser is intentionally stateless so callers can reuse
// a single instance across documents without additional locking.
type Parser struct {
}

// NewParser creates a parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse returns the list of parsed invocations in document order.
func (p *Parser) Parse(content string) ([]interfaces.Invocation, error) {
	_, invocations, err := p.Extract(content)
	return invocations, err
}

// Extract replaces command invocations with placeholders and returns both the
// transformed content and the extracted invocations. Text inside fenced code
// blocks is copied verbatim; escaped backslashes (\\) survive as literal
// text. Arguments keep their raw brace-delimited content, including nested
// braces.
func (p *Parser) Extract(content string) (string, []interfaces.Invocation, error) {
	var (
		result      strings.Builder
		invocations []interfaces.Invocation
		line        = 1
		inFence     bool
		fenceMarker string
	)

	result.Grow(len(content))

	i := 0
	for i < len(content) {
		ch := content[i]

		if ch == '\n' {
			line++
			result.WriteByte(ch)
			i++
			if marker, ok := fenceAt(content, i); ok {
				if inFence && marker == fenceMarker {
					inFence = false
				} else if !inFence {
					inFence = true
					fenceMarker = marker
				}
			}
			continue
		}

		if i == 0 {
			if marker, ok := fenceAt(content, 0); ok {
				inFence = true
				fenceMarker = marker
			}
		}

		if inFence || ch != '\\' {
			result.WriteByte(ch)
			i++
			continue
		}

		// Escaped backslash stays literal.
		if i+1 < len(content) && content[i+1] == '\\' {
			result.WriteString(`\\`)
			i += 2
			continue
		}

		name, next := scanName(content, i+1)
		if name == "" {
			result.WriteByte(ch)
			i++
			continue
		}

		args, end, err := scanArguments(content, next)
		if err != nil {
			return "", nil, fmt.Errorf("parse line %d: %w", line, err)
		}

		result.WriteString(placeholder(len(invocations)))
		invocations = append(invocations, interfaces.Invocation{
			Name:     name,
			Args:     args,
			Location: fmt.Sprintf("line %d", line),
		})
		line += strings.Count(content[i:end], "\n")
		i = end
	}

	return result.String(), invocations, nil
}

func placeholder(index int) string {
	return fmt.Sprintf("<!-- weave:embed:%d -->", index)
}

// scanName consumes the command keyword after a backslash. Keywords are runs
// of ASCII letters; anything else terminates the name.
func scanName(content string, start int) (string, int) {
	end := start
	for end < len(content) {
		ch := content[end]
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') {
			end++
			continue
		}
		break
	}
	return content[start:end], end
}

// scanArguments consumes consecutive brace groups starting at start,
// returning the argument contents and the position after the last group.
// Nested braces stay inside the argument.
func scanArguments(content string, start int) ([]string, int, error) {
	var args []string

	i := start
	for i < len(content) && content[i] == '{' {
		depth := 0
		j := i
		for j < len(content) {
			switch content[j] {
			case '{':
				depth++
			case '}':
				depth--
			}
			j++
			if depth == 0 {
				break
			}
		}
		if depth != 0 {
			return nil, 0, fmt.Errorf("unterminated argument group")
		}
		args = append(args, content[i+1:j-1])
		i = j
	}

	return args, i, nil
}

// fenceAt reports whether a code fence marker (``` or ~~~) opens at the given
// line start, returning the marker so open/close pairs can be matched.
func fenceAt(content string, lineStart int) (string, bool) {
	rest := content[lineStart:]
	for _, marker := range []string{"```", "~~~"} {
		if strings.HasPrefix(rest, marker) {
			return marker, true
		}
	}
	return "", false
}
