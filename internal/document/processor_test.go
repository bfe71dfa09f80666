package document

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/mresende/go-weave/pkg/interfaces"
)

type fakeService struct {
	handled []interfaces.Invocation
	dirs    []string
	expand  func(inv interfaces.Invocation) string
}

func (s *fakeService) Expand(ctx interfaces.EmbedContext, inv interfaces.Invocation) string {
	s.handled = append(s.handled, inv)
	s.dirs = append(s.dirs, ctx.DocDir)
	if s.expand != nil {
		return s.expand(inv)
	}
	return fmt.Sprintf("[%s:%s]", inv.Name, strings.Join(inv.Args, ","))
}

func (s *fakeService) Handles(name string) bool {
	switch name {
	case "insert", "show", "figalt":
		return true
	}
	return false
}

func TestProcessor_ExpandsInDocumentOrder(t *testing.T) {
	svc := &fakeService{}
	proc := NewProcessor(svc)

	input := "a \\insert{julia}{ex1} b \\show{ex1} c"
	got, err := proc.Process(context.Background(), "pages/tutorial.md", input, nil)
	if err != nil {
		t.Fatalf("Process() unexpected error: %v", err)
	}

	want := "a [insert:julia,ex1] b [show:ex1] c"
	if got != want {
		t.Fatalf("Process() = %q, want %q", got, want)
	}
	if len(svc.handled) != 2 || svc.handled[0].Name != "insert" || svc.handled[1].Name != "show" {
		t.Fatalf("unexpected dispatch order: %+v", svc.handled)
	}
	if svc.dirs[0] != "pages" {
		t.Fatalf("expected doc dir pages, got %q", svc.dirs[0])
	}
}

func TestProcessor_ExpandsDefinitions(t *testing.T) {
	svc := &fakeService{}
	proc := NewProcessor(svc)

	defs := interfaces.Definitions{"note": "**#1** (#2)"}
	got, err := proc.Process(context.Background(), "doc.md", `\note{hi}{low}`, defs)
	if err != nil {
		t.Fatalf("Process() unexpected error: %v", err)
	}
	if got != "**hi** (low)" {
		t.Fatalf("Process() = %q", got)
	}
}

func TestProcessor_DefinitionBodyCanUseCommands(t *testing.T) {
	svc := &fakeService{}
	proc := NewProcessor(svc)

	defs := interfaces.Definitions{"snippet": `\insert{julia}{#1}`}
	got, err := proc.Process(context.Background(), "doc.md", `\snippet{ex1}`, defs)
	if err != nil {
		t.Fatalf("Process() unexpected error: %v", err)
	}
	if got != "[insert:julia,ex1]" {
		t.Fatalf("Process() = %q", got)
	}
}

func TestProcessor_SelfReferentialDefinitionStops(t *testing.T) {
	svc := &fakeService{}
	proc := NewProcessor(svc)

	defs := interfaces.Definitions{"loop": `\loop{#1}`}
	got, err := proc.Process(context.Background(), "doc.md", `\loop{x}`, defs)
	if err != nil {
		t.Fatalf("Process() unexpected error: %v", err)
	}
	// The definition expands once, then the inner occurrence is restored
	// verbatim because its own name left scope.
	if got != `\loop{x}` {
		t.Fatalf("Process() = %q", got)
	}
}

func TestProcessor_UnknownCommandRestoredVerbatim(t *testing.T) {
	svc := &fakeService{}
	proc := NewProcessor(svc)

	got, err := proc.Process(context.Background(), "doc.md", `keep \emph{this} text`, nil)
	if err != nil {
		t.Fatalf("Process() unexpected error: %v", err)
	}
	if got != `keep \emph{this} text` {
		t.Fatalf("Process() = %q", got)
	}
}

func TestProcessor_ReprocessStripsUnlessSuppressed(t *testing.T) {
	svc := &fakeService{}
	proc := NewProcessor(svc)

	got, err := proc.Reprocess("  padded  ", nil, interfaces.ReprocessOptions{})
	if err != nil {
		t.Fatalf("Reprocess() unexpected error: %v", err)
	}
	if got != "padded" {
		t.Fatalf("expected stripped text, got %q", got)
	}

	got, err = proc.Reprocess("  padded  ", nil, interfaces.ReprocessOptions{SuppressStripping: true})
	if err != nil {
		t.Fatalf("Reprocess() unexpected error: %v", err)
	}
	if got != "  padded  " {
		t.Fatalf("expected original whitespace, got %q", got)
	}
}

func TestProcessor_ReprocessCarriesDocDir(t *testing.T) {
	svc := &fakeService{}
	proc := NewProcessor(svc)

	_, err := proc.Reprocess(`\show{ex1}`, nil, interfaces.ReprocessOptions{DocDir: "site/pages"})
	if err != nil {
		t.Fatalf("Reprocess() unexpected error: %v", err)
	}
	if len(svc.dirs) != 1 || svc.dirs[0] != "site/pages" {
		t.Fatalf("expected doc dir carried through, got %v", svc.dirs)
	}
}
