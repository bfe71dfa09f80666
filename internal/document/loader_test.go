package document

import (
	"context"
	"testing"
	"testing/fstest"
	"time"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"pages/tutorial.md": &fstest.MapFile{
			Data: []byte("---\ntitle: Tutorial\nslug: Getting Started\ndraft: true\nweight: 3\n---\n# Hello\n\\insert{julia}{ex1}\n"),
			ModTime: time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC),
		},
		"pages/notes.md": &fstest.MapFile{
			Data: []byte("no frontmatter here\n"),
		},
		"pages/raw.txt": &fstest.MapFile{
			Data: []byte("not markup"),
		},
		"pages/drafts/wip.md": &fstest.MapFile{
			Data: []byte("work in progress\n"),
		},
	}
}

func TestLoader_LoadFile(t *testing.T) {
	loader := NewLoader(testFS(), LoaderConfig{})

	doc, err := loader.LoadFile(context.Background(), "pages/tutorial.md")
	if err != nil {
		t.Fatalf("LoadFile() unexpected error: %v", err)
	}

	if doc.FrontMatter.Title != "Tutorial" {
		t.Fatalf("expected title Tutorial, got %q", doc.FrontMatter.Title)
	}
	if !doc.FrontMatter.Draft {
		t.Fatal("expected draft flag set")
	}
	if doc.FrontMatter.Extra["weight"] != 3 {
		t.Fatalf("expected extra weight 3, got %v", doc.FrontMatter.Extra["weight"])
	}
	if doc.Route != "/pages/getting-started" {
		t.Fatalf("expected normalised route, got %q", doc.Route)
	}
	if string(doc.Body) != "# Hello\n\\insert{julia}{ex1}\n" {
		t.Fatalf("unexpected body: %q", doc.Body)
	}
	if len(doc.Checksum) == 0 {
		t.Fatal("expected a checksum")
	}
	if doc.Modified.IsZero() {
		t.Fatal("expected modification time")
	}
}

func TestLoader_NoFrontMatter(t *testing.T) {
	loader := NewLoader(testFS(), LoaderConfig{})

	doc, err := loader.LoadFile(context.Background(), "pages/notes.md")
	if err != nil {
		t.Fatalf("LoadFile() unexpected error: %v", err)
	}
	if doc.FrontMatter.Title != "" {
		t.Fatalf("expected empty title, got %q", doc.FrontMatter.Title)
	}
	if doc.Route != "/pages/notes" {
		t.Fatalf("expected route from file name, got %q", doc.Route)
	}
	if string(doc.Body) != "no frontmatter here\n" {
		t.Fatalf("unexpected body: %q", doc.Body)
	}
}

func TestLoader_LoadDirectory(t *testing.T) {
	loader := NewLoader(testFS(), LoaderConfig{Recursive: true})

	docs, err := loader.LoadDirectory(context.Background(), "pages")
	if err != nil {
		t.Fatalf("LoadDirectory() unexpected error: %v", err)
	}

	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	// Sorted by file path: drafts/wip.md, notes.md, tutorial.md.
	if docs[0].FilePath != "pages/drafts/wip.md" {
		t.Fatalf("unexpected first document: %s", docs[0].FilePath)
	}
}

func TestLoader_LoadDirectoryNonRecursive(t *testing.T) {
	loader := NewLoader(testFS(), LoaderConfig{})

	docs, err := loader.LoadDirectory(context.Background(), "pages")
	if err != nil {
		t.Fatalf("LoadDirectory() unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	for _, doc := range docs {
		if doc.FilePath == "pages/drafts/wip.md" {
			t.Fatal("expected nested document skipped")
		}
	}
}

func TestLoader_MissingFile(t *testing.T) {
	loader := NewLoader(testFS(), LoaderConfig{})

	if _, err := loader.LoadFile(context.Background(), "pages/missing.md"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
