package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mresende/go-weave/cmd/weave/internal/bootstrap"
	"github.com/mresende/go-weave/internal/commands/weavecmd"
	"github.com/mresende/go-weave/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("weave: %v", err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("weave", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a weave.yaml configuration file")
	siteRoot := fs.String("site", ".", "Path to the site root directory")
	directory := fs.String("dir", "pages", "Directory to process, relative to the site root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering documents")
	recursive := fs.Bool("recursive", true, "Walk sub-directories when discovering documents")
	renderHTML := fs.Bool("html", true, "Render expanded markup to HTML")
	outDir := fs.String("out", "public", "Directory rendered documents are written to, relative to the site root")
	fullEval := fs.Bool("full-eval", false, "Treat the run as a full evaluation pass")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ConfigPath: *configPath,
		SiteRoot:   *siteRoot,
		FullEval:   *fullEval,
	})
	if err != nil {
		return fmt.Errorf("bootstrap engine: %w", err)
	}

	target := *outDir
	if !filepath.IsAbs(target) {
		target = filepath.Join(*siteRoot, target)
	}

	written := 0
	var sinkErr error
	sink := func(result *interfaces.ProcessResult) {
		if sinkErr != nil {
			return
		}
		if err := writeResult(target, result, *renderHTML); err != nil {
			sinkErr = err
			return
		}
		written++
	}

	handler := weavecmd.NewProcessDirectoryHandler(module.Engine, module.Logger, sink)
	cmd := weavecmd.ProcessDirectoryCommand{
		Directory:  *directory,
		Pattern:    *pattern,
		Recursive:  *recursive,
		SessionID:  uuid.New(),
		RenderHTML: *renderHTML,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute process command: %w", err)
	}
	if sinkErr != nil {
		return fmt.Errorf("write results: %w", sinkErr)
	}

	if module.Engine.Session().Stale() {
		fmt.Fprintln(os.Stderr, "weave: literate sources changed; re-run dependent computation")
	}
	fmt.Fprintf(os.Stdout, "weave: processed %d documents into %s\n", written, target)

	return nil
}

// writeResult persists one processed document under outDir, keyed by its
// route. HTML runs write route.html; markup runs write route.md.
func writeResult(outDir string, result *interfaces.ProcessResult, renderHTML bool) error {
	route := strings.TrimPrefix(result.Document.Route, "/")
	if route == "" {
		route = "index"
	}

	var path string
	var data []byte
	if renderHTML {
		path = filepath.Join(outDir, filepath.FromSlash(route)+".html")
		data = result.HTML
	} else {
		path = filepath.Join(outDir, filepath.FromSlash(route)+".md")
		data = []byte(result.Markup)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
