package refpath

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestResolver(t *testing.T) (*Resolver, string) {
	t.Helper()
	root := t.TempDir()
	site := Site{Root: root, ScriptsDir: "scripts", OutputDirName: "output"}
	exts := map[string]string{"julia": ".jl", "python": ".py"}
	return NewResolver(site, exts), root
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestResolveAppendsHintedExtension(t *testing.T) {
	r, root := newTestResolver(t)
	writeFile(t, filepath.Join(root, "scripts", "ex1.jl"), "println(1)")

	got, err := r.Resolve("ex1", Options{Hint: "julia"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	want := filepath.Join(root, "scripts", "ex1.jl")
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestResolveKeepsExplicitExtension(t *testing.T) {
	r, root := newTestResolver(t)
	writeFile(t, filepath.Join(root, "scripts", "ex1.py"), "print(1)")

	got, err := r.Resolve("ex1.py", Options{Hint: "julia"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if filepath.Ext(got) != ".py" {
		t.Fatalf("expected explicit extension to win, got %s", got)
	}
}

func TestResolveCanonicalReference(t *testing.T) {
	r, root := newTestResolver(t)
	writeFile(t, filepath.Join(root, "scripts", "sub", "ex2.jl"), "")

	got, err := r.Resolve("scripts/sub/ex2.jl", Options{})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	want := filepath.Join(root, "scripts", "sub", "ex2.jl")
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}

	got, err = r.Resolve("/scripts/sub/ex2.jl", Options{})
	if err != nil {
		t.Fatalf("Resolve slash-anchored returned error: %v", err)
	}
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestResolveRelativeToDocument(t *testing.T) {
	r, root := newTestResolver(t)
	docDir := filepath.Join(root, "pages")
	writeFile(t, filepath.Join(docDir, "snippet.jl"), "")

	got, err := r.Resolve("./snippet.jl", Options{DocDir: docDir})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != filepath.Join(docDir, "snippet.jl") {
		t.Fatalf("expected document-relative resolution, got %s", got)
	}

	// Bare references stay anchored at the scripts root even when a document
	// directory is supplied.
	if _, err := r.Resolve("snippet.jl", Options{DocDir: docDir}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected bare reference to anchor at scripts root, got %v", err)
	}
}

func TestResolveFallsBackToOutputSiblingInCodeMode(t *testing.T) {
	r, root := newTestResolver(t)
	writeFile(t, filepath.Join(root, "scripts", "output", "ex3.out"), "42")

	got, err := r.Resolve("ex3.out", Options{Code: true})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	want := filepath.Join(root, "scripts", "output", "ex3.out")
	if got != want {
		t.Fatalf("expected output sibling fallback, got %s", got)
	}

	// Without code mode the fallback must not apply.
	if _, err := r.Resolve("ex3.out", Options{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound without code mode, got %v", err)
	}
}

func TestResolveMissingReference(t *testing.T) {
	r, _ := newTestResolver(t)
	_, err := r.Resolve("missing", Options{Hint: "julia", Code: true})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBundleDerivesConventionalPaths(t *testing.T) {
	r, root := newTestResolver(t)

	bundle := r.Bundle("ex4", Options{Hint: "julia"})

	scriptsDir := filepath.Join(root, "scripts")
	if bundle.ScriptPath != filepath.Join(scriptsDir, "ex4.jl") {
		t.Fatalf("unexpected script path %s", bundle.ScriptPath)
	}
	if bundle.BaseName != "ex4" {
		t.Fatalf("unexpected base name %s", bundle.BaseName)
	}
	if bundle.OutputDir != filepath.Join(scriptsDir, "output") {
		t.Fatalf("unexpected output dir %s", bundle.OutputDir)
	}
	if bundle.OutFile != filepath.Join(scriptsDir, "output", "ex4.out") {
		t.Fatalf("unexpected out file %s", bundle.OutFile)
	}
	if bundle.ResFile != filepath.Join(scriptsDir, "output", "ex4.res") {
		t.Fatalf("unexpected res file %s", bundle.ResFile)
	}
}

func TestSiteRelativeStripsRootAndUsesForwardSlashes(t *testing.T) {
	root := filepath.Join("srv", "site")
	abs := filepath.Join(root, "scripts", "output", "ex24.png")

	got := SiteRelative(root, abs)
	if got != "/scripts/output/ex24.png" {
		t.Fatalf("expected site-relative path, got %s", got)
	}
}
