// Package refpath turns author-written virtual reference paths into concrete
// filesystem locations under a configured site layout.
package refpath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound indicates that no file exists at any derived location.
var ErrNotFound = errors.New("refpath: reference not found")

// Site describes the filesystem layout references are resolved against.
type Site struct {
	// Root is the absolute site root; artifact paths handed to renderers are
	// always expressed relative to it.
	Root string
	// ScriptsDir anchors canonical references, relative to Root.
	ScriptsDir string
	// OutputDirName is the conventional output subdirectory beside a script.
	OutputDirName string
}

// Resolver performs pure path computation plus existence checks. It holds no
// mutable state and is safe to share.
type Resolver struct {
	site Site
	exts map[string]string
}

// Options tune a single resolution call.
type Options struct {
	// Hint is a language or type name mapped to a file extension appended
	// when the reference omits one.
	Hint string
	// Code additionally tries the conventional output subdirectory sibling
	// of the referenced script when the literal path does not exist.
	Code bool
	// DocDir is the directory of the current document; non-canonical
	// references resolve relative to it when set.
	DocDir string
}

// NewResolver builds a resolver for the given site layout. exts maps
// lowercase hint names to extensions with a leading dot.
func NewResolver(site Site, exts map[string]string) *Resolver {
	copied := make(map[string]string, len(exts))
	for name, ext := range exts {
		copied[strings.ToLower(name)] = ext
	}
	return &Resolver{site: site, exts: copied}
}

// Site returns the layout the resolver was built with.
func (r *Resolver) Site() Site {
	return r.site
}

// Extension returns the extension mapped to the given hint, or an empty
// string when the hint carries no mapping.
func (r *Resolver) Extension(hint string) string {
	return r.exts[strings.ToLower(strings.TrimSpace(hint))]
}

// Path derives the real filesystem path for a reference without touching the
// filesystem. References are canonical when they start with a slash or with
// the scripts directory name and then anchor at the site root. References
// beginning with "./" or "../" resolve relative to the current document.
// Everything else is a bare script reference anchored at the scripts root.
func (r *Resolver) Path(ref string, opts Options) string {
	virtual := strings.TrimSpace(ref)

	if ext := r.Extension(opts.Hint); ext != "" && filepath.Ext(virtual) == "" {
		virtual += ext
	}

	slashed := filepath.ToSlash(virtual)
	local := filepath.FromSlash(strings.TrimPrefix(slashed, "/"))

	switch {
	case strings.HasPrefix(slashed, "/"):
		return filepath.Join(r.site.Root, local)
	case firstSegment(slashed) == r.site.ScriptsDir:
		return filepath.Join(r.site.Root, local)
	case opts.DocDir != "" && (strings.HasPrefix(slashed, "./") || strings.HasPrefix(slashed, "../")):
		return filepath.Join(opts.DocDir, local)
	default:
		return filepath.Join(r.site.Root, r.site.ScriptsDir, local)
	}
}

// Resolve derives the real path for a reference and verifies it exists. When
// the literal path is missing and Code is set, the reference is additionally
// interpreted as pointing into the output subdirectory beside the script.
func (r *Resolver) Resolve(ref string, opts Options) (string, error) {
	real := r.Path(ref, opts)
	if fileExists(real) {
		return real, nil
	}

	if opts.Code {
		dir, base := filepath.Split(real)
		alt := filepath.Join(dir, r.site.OutputDirName, base)
		if fileExists(alt) {
			return alt, nil
		}
	}

	return "", fmt.Errorf("resolve %s: %w", ref, ErrNotFound)
}

// SiteRelative strips the site root prefix from an absolute path and returns
// the remainder in forward-slash form with a leading slash. Downstream
// rendering assumes site-root-relative links, never absolute ones.
func SiteRelative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return "/" + filepath.ToSlash(rel)
}

func firstSegment(slashed string) string {
	if idx := strings.IndexByte(slashed, '/'); idx >= 0 {
		return slashed[:idx]
	}
	return slashed
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
