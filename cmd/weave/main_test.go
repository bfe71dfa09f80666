package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func TestRunProcessesSite(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "scripts/ex1.jl", "x = 1\n")
	writeFile(t, root, "pages/tutorial.md", "---\ntitle: Tutorial\n---\n"+`\insert{julia}{ex1}`+"\n")

	err := run([]string{
		"-site", root,
		"-dir", "pages",
		"-out", "public",
	})
	if err != nil {
		t.Fatalf("run() unexpected error: %v", err)
	}

	out := filepath.Join(root, "public", "pages", "tutorial.html")
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("expected rendered output at %s: %v", out, err)
	}
	if !strings.Contains(string(data), "x = 1") {
		t.Fatalf("expected embedded code in output, got %q", data)
	}
}

func TestRunMarkupOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "scripts/ex1.jl", "x = 1\n")
	writeFile(t, root, "pages/tutorial.md", `\insert{julia}{ex1}`+"\n")

	err := run([]string{
		"-site", root,
		"-dir", "pages",
		"-html=false",
	})
	if err != nil {
		t.Fatalf("run() unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "public", "pages", "tutorial.md"))
	if err != nil {
		t.Fatalf("expected markup output: %v", err)
	}
	if !strings.Contains(string(data), "```julia") {
		t.Fatalf("expected fenced code block, got %q", data)
	}
}

func TestRunWithConfigFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "weave.yaml", "site:\n  scripts_dir: src\nmarkup:\n  extensions: [gfm]\n")
	writeFile(t, root, "src/ex1.jl", "x = 1\n")
	writeFile(t, root, "pages/tutorial.md", `\insert{julia}{ex1}`+"\n")

	err := run([]string{
		"-config", filepath.Join(root, "weave.yaml"),
		"-site", root,
		"-dir", "pages",
	})
	if err != nil {
		t.Fatalf("run() unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "public", "pages", "tutorial.html")); err != nil {
		t.Fatalf("expected rendered output: %v", err)
	}
}

func TestRunMissingDirectory(t *testing.T) {
	root := t.TempDir()

	if err := run([]string{"-site", root, "-dir", "pages"}); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
