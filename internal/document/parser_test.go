package document

import (
	"strings"
	"testing"
)

func TestParser_Extract(t *testing.T) {
	parser := NewParser()

	input := "Intro text.\n\\insert{julia}{ex1}\nMiddle.\n\\figalt{a plot}{ex1}\n"

	content, invocations, err := parser.Extract(input)
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}

	if len(invocations) != 2 {
		t.Fatalf("expected 2 invocations, got %d", len(invocations))
	}
	if invocations[0].Name != "insert" {
		t.Fatalf("expected first invocation insert, got %s", invocations[0].Name)
	}
	if got := invocations[0].Args; len(got) != 2 || got[0] != "julia" || got[1] != "ex1" {
		t.Fatalf("unexpected insert args: %v", got)
	}
	if invocations[0].Location != "line 2" {
		t.Fatalf("expected location line 2, got %s", invocations[0].Location)
	}
	if invocations[1].Name != "figalt" || invocations[1].Location != "line 4" {
		t.Fatalf("unexpected second invocation: %+v", invocations[1])
	}

	if !strings.Contains(content, placeholder(0)) || !strings.Contains(content, placeholder(1)) {
		t.Fatalf("expected placeholders in content, got %q", content)
	}
	if strings.Contains(content, "\\insert") {
		t.Fatalf("expected original invocation removed, got %q", content)
	}
}

func TestParser_NestedBraces(t *testing.T) {
	parser := NewParser()

	invocations, err := parser.Parse(`\tableinput{a,{b}}{data}`)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if len(invocations) != 1 {
		t.Fatalf("expected 1 invocation, got %d", len(invocations))
	}
	if invocations[0].Args[0] != "a,{b}" {
		t.Fatalf("expected nested braces preserved, got %q", invocations[0].Args[0])
	}
}

func TestParser_EscapedBackslash(t *testing.T) {
	parser := NewParser()

	content, invocations, err := parser.Extract(`a \\ b`)
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}
	if len(invocations) != 0 {
		t.Fatalf("expected no invocations, got %d", len(invocations))
	}
	if content != `a \\ b` {
		t.Fatalf("expected escaped backslash preserved, got %q", content)
	}
}

func TestParser_SkipsFencedCode(t *testing.T) {
	parser := NewParser()

	input := "before\n```julia\n\\insert{julia}{ex1}\n```\nafter \\show{ex1}\n"

	content, invocations, err := parser.Extract(input)
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}
	if len(invocations) != 1 {
		t.Fatalf("expected 1 invocation outside the fence, got %d", len(invocations))
	}
	if invocations[0].Name != "show" {
		t.Fatalf("expected show, got %s", invocations[0].Name)
	}
	if !strings.Contains(content, "\\insert{julia}{ex1}") {
		t.Fatalf("expected fenced command untouched, got %q", content)
	}
}

func TestParser_UnterminatedArgument(t *testing.T) {
	parser := NewParser()

	if _, _, err := parser.Extract(`\insert{julia`); err == nil {
		t.Fatal("expected error for unterminated argument group")
	}
}

func TestParser_ZeroArgumentCommand(t *testing.T) {
	parser := NewParser()

	invocations, err := parser.Parse(`text \break more`)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if len(invocations) != 1 || invocations[0].Name != "break" {
		t.Fatalf("expected zero-argument invocation break, got %+v", invocations)
	}
	if len(invocations[0].Args) != 0 {
		t.Fatalf("expected no args, got %v", invocations[0].Args)
	}
}
