package document

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/goliatone/go-slug"

	"github.com/mresende/go-weave/pkg/interfaces"
)

// LoaderConfig configures how markup files are discovered within a base
// directory.
type LoaderConfig struct {
	// BasePath is the root directory where documents live.
	BasePath string
	// Pattern limits discovered files to those matching the supplied glob
	// (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Loader turns filesystem paths into documents with metadata.
type Loader struct {
	fs        fs.FS
	basePath  string
	pattern   string
	recursive bool
}

// NewLoader constructs a Loader using the provided filesystem and
// configuration.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}

	return &Loader{
		fs:        filesystem,
		basePath:  filepath.Clean(cfg.BasePath),
		pattern:   pattern,
		recursive: cfg.Recursive,
	}
}

// LoadFile reads and parses a single document.
func (l *Loader) LoadFile(ctx context.Context, filePath string) (*interfaces.Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel, err := l.makeRelative(filePath)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("document loader read %s: %w", rel, err)
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("document loader stat %s: %w", rel, err)
	}

	return buildDocument(rel, data, info.ModTime())
}

// LoadDirectory discovers documents under dir and returns them sorted by
// file path.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*interfaces.Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	root, err := l.makeRelative(dir)
	if err != nil {
		return nil, err
	}
	root = filepath.ToSlash(filepath.Clean(root))

	var documents []*interfaces.Document

	walkErr := fs.WalkDir(l.fs, root, func(walkPath string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			if !l.shouldRecurse(root, walkPath) {
				return fs.SkipDir
			}
			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel := filepath.ToSlash(walkPath)
		if !l.matchesPattern(rel) {
			return nil
		}

		doc, err := l.LoadFile(ctx, rel)
		if err != nil {
			return err
		}
		documents = append(documents, doc)
		return nil
	})

	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(documents, func(i, j int) bool {
		return documents[i].FilePath < documents[j].FilePath
	})

	return documents, nil
}

func (l *Loader) shouldRecurse(root, current string) bool {
	if l.recursive {
		return true
	}
	// If recursion is disabled, only walk the root directory.
	return filepath.Clean(root) == filepath.Clean(current)
}

func (l *Loader) matchesPattern(filePath string) bool {
	// Normalise to slash as fs.WalkDir returns slash-separated paths.
	pattern := filepath.ToSlash(l.pattern)
	if strings.Contains(pattern, "**") {
		// Basic support for ** by stripping repeated separators.
		pattern = strings.ReplaceAll(pattern, "**/", "")
	}
	var target string
	if strings.Contains(pattern, "/") {
		target = filePath
	} else {
		target = filepath.Base(filePath)
	}
	match, err := filepath.Match(pattern, target)
	if err != nil {
		return false
	}
	return match
}

func (l *Loader) makeRelative(filePath string) (string, error) {
	clean := filepath.Clean(filePath)
	if !filepath.IsAbs(clean) {
		return clean, nil
	}
	if l.basePath == "" {
		return "", fmt.Errorf("document loader: absolute path %s provided without base path", filePath)
	}
	rel, err := filepath.Rel(l.basePath, clean)
	if err != nil {
		return "", fmt.Errorf("document loader: make relative %s: %w", filePath, err)
	}
	return rel, nil
}

type frontMatterEnvelope struct {
	Title string         `yaml:"title"`
	Slug  string         `yaml:"slug"`
	Draft bool           `yaml:"draft"`
	Extra map[string]any `yaml:",inline"`
}

// buildDocument assembles a document from the supplied path, raw content, and
// modification time. The route is derived from the frontmatter slug (falling
// back to the file name) normalised with go-slug, joined with the file's
// directory.
func buildDocument(filePath string, source []byte, modified time.Time) (*interfaces.Document, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter %s: %w", filePath, err)
	}

	if meta.Extra == nil {
		meta.Extra = map[string]any{}
	}

	sum := sha256.Sum256(source)

	return &interfaces.Document{
		FilePath: filePath,
		Route:    deriveRoute(filePath, meta.Slug),
		FrontMatter: interfaces.FrontMatter{
			Title: meta.Title,
			Slug:  meta.Slug,
			Draft: meta.Draft,
			Extra: meta.Extra,
		},
		Body:     body,
		Checksum: sum[:],
		Modified: modified,
	}, nil
}

func deriveRoute(filePath string, declared string) string {
	candidate := strings.TrimSpace(declared)
	if candidate == "" {
		base := path.Base(filePath)
		candidate = strings.TrimSuffix(base, path.Ext(base))
	}

	normalizer := slug.Default()
	normalized, err := normalizer.Normalize(candidate)
	if err != nil || normalized == "" {
		normalized = candidate
	}

	dir := path.Dir(filepath.ToSlash(filePath))
	if dir == "." || dir == "/" {
		return "/" + normalized
	}
	return "/" + path.Join(dir, normalized)
}
