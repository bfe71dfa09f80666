package weavecmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/mresende/go-weave/pkg/interfaces"
)

type fakeDocumentService struct {
	fileCalls []string
	dirCalls  []string
	opts      []interfaces.ProcessOptions
	fileErr   error
	results   []*interfaces.ProcessResult
}

func (s *fakeDocumentService) ProcessFile(ctx context.Context, path string, opts interfaces.ProcessOptions) (*interfaces.ProcessResult, error) {
	s.fileCalls = append(s.fileCalls, path)
	s.opts = append(s.opts, opts)
	if s.fileErr != nil {
		return nil, s.fileErr
	}
	return &interfaces.ProcessResult{
		Document: &interfaces.Document{FilePath: path, Route: "/" + path},
		Markup:   "expanded",
	}, nil
}

func (s *fakeDocumentService) ProcessDirectory(ctx context.Context, dir string, opts interfaces.ProcessOptions) ([]*interfaces.ProcessResult, error) {
	s.dirCalls = append(s.dirCalls, dir)
	s.opts = append(s.opts, opts)
	return s.results, nil
}

func TestProcessFileHandlerExecutes(t *testing.T) {
	svc := &fakeDocumentService{}
	var sunk []*interfaces.ProcessResult
	h := NewProcessFileHandler(svc, nil, func(r *interfaces.ProcessResult) {
		sunk = append(sunk, r)
	})

	err := h.Execute(context.Background(), ProcessFileCommand{Path: "pages/tutorial.md", RenderHTML: true})
	if err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}
	if len(svc.fileCalls) != 1 || svc.fileCalls[0] != "pages/tutorial.md" {
		t.Fatalf("unexpected service calls: %v", svc.fileCalls)
	}
	if !svc.opts[0].RenderHTML {
		t.Fatal("expected RenderHTML option forwarded")
	}
	if len(sunk) != 1 || sunk[0].Markup != "expanded" {
		t.Fatalf("expected result delivered to sink, got %+v", sunk)
	}
}

func TestProcessFileHandlerValidation(t *testing.T) {
	svc := &fakeDocumentService{}
	h := NewProcessFileHandler(svc, nil, nil)

	err := h.Execute(context.Background(), ProcessFileCommand{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(svc.fileCalls) != 0 {
		t.Fatal("expected service untouched on validation failure")
	}
}

func TestProcessFileHandlerWrapsServiceError(t *testing.T) {
	svc := &fakeDocumentService{fileErr: errors.New("boom")}
	h := NewProcessFileHandler(svc, nil, nil)

	err := h.Execute(context.Background(), ProcessFileCommand{Path: "pages/tutorial.md"})
	if err == nil {
		t.Fatal("expected execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestProcessDirectoryHandlerExecutes(t *testing.T) {
	svc := &fakeDocumentService{
		results: []*interfaces.ProcessResult{
			{Document: &interfaces.Document{FilePath: "pages/a.md"}, Stale: true},
			{Document: &interfaces.Document{FilePath: "pages/b.md"}},
		},
	}
	var sunk int
	h := NewProcessDirectoryHandler(svc, nil, func(*interfaces.ProcessResult) {
		sunk++
	})

	err := h.Execute(context.Background(), ProcessDirectoryCommand{
		Directory: "pages",
		Pattern:   "*.md",
		Recursive: true,
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}
	if len(svc.dirCalls) != 1 || svc.dirCalls[0] != "pages" {
		t.Fatalf("unexpected directory calls: %v", svc.dirCalls)
	}
	if svc.opts[0].Pattern != "*.md" || !svc.opts[0].Recursive {
		t.Fatalf("expected options forwarded, got %+v", svc.opts[0])
	}
	if sunk != 2 {
		t.Fatalf("expected 2 results in sink, got %d", sunk)
	}
}
