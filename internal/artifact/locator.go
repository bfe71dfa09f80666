// Package artifact discovers generated files (images, tables) inside the
// conventional output directory of a script.
package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mresende/go-weave/internal/refpath"
)

// ErrMissingOutputDirectory indicates the conventional output directory does
// not exist for the referenced script.
var ErrMissingOutputDirectory = errors.New("artifact: missing output directory")

// ErrNoMatch indicates the output directory exists but no file satisfies the
// name and extension predicate.
var ErrNoMatch = errors.New("artifact: no matching file")

// ImageExtensions is the allow-list of generated image extensions, compared
// case-insensitively.
var ImageExtensions = []string{".gif", ".jpg", ".jpeg", ".png", ".svg"}

// Match is a discovered artifact: its base name, its extension as found on
// disk, and its path relative to the site root in forward-slash form.
type Match struct {
	Name     string
	Ext      string
	SitePath string
}

// Locate walks outputDir for a file whose name without extension equals
// baseName+suffix and whose lowercased extension is in the allow-list. The
// walk follows the filesystem's natural directory order, so with several
// matching files the result is "first found"; callers must not rely on any
// ordering beyond that.
func Locate(siteRoot, outputDir, baseName, suffix string, exts []string) (Match, error) {
	info, err := os.Stat(outputDir)
	if err != nil || !info.IsDir() {
		return Match{}, fmt.Errorf("%w: %s", ErrMissingOutputDirectory, outputDir)
	}

	target := baseName + suffix

	var found *Match
	walkErr := filepath.WalkDir(outputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		name := d.Name()
		ext := filepath.Ext(name)
		stem := strings.TrimSuffix(name, ext)
		if stem != target || !allowed(ext, exts) {
			return nil
		}

		found = &Match{
			Name:     stem,
			Ext:      ext,
			SitePath: refpath.SiteRelative(siteRoot, filepath.Join(outputDir, name)),
		}
		return fs.SkipAll
	})
	if walkErr != nil {
		return Match{}, fmt.Errorf("artifact: walk %s: %w", outputDir, walkErr)
	}
	if found == nil {
		return Match{}, fmt.Errorf("%w: %s%s in %s", ErrNoMatch, baseName, suffix, outputDir)
	}
	return *found, nil
}

func allowed(ext string, exts []string) bool {
	lowered := strings.ToLower(ext)
	for _, allow := range exts {
		if lowered == allow {
			return true
		}
	}
	return false
}
