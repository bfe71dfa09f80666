package refpath

import (
	"path/filepath"
	"strings"
)

// CodePaths bundles the resolved locations associated with a script
// reference: the script itself, its base name without extension, the
// conventional output directory beside it, and the textual output and result
// files produced by running it. Computed fresh on every call; freshness of
// the files themselves is owned by the artifact-producing collaborator.
type CodePaths struct {
	ScriptPath string
	BaseName   string
	OutputDir  string
	OutFile    string
	ResFile    string
}

// Bundle derives the code path bundle for a reference. The computation is
// pure: no path in the bundle is required to exist, callers check the pieces
// they depend on.
func (r *Resolver) Bundle(ref string, opts Options) CodePaths {
	script := r.Path(ref, opts)

	base := filepath.Base(script)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}

	outputDir := filepath.Join(filepath.Dir(script), r.site.OutputDirName)

	return CodePaths{
		ScriptPath: script,
		BaseName:   base,
		OutputDir:  outputDir,
		OutFile:    filepath.Join(outputDir, base+".out"),
		ResFile:    filepath.Join(outputDir, base+".res"),
	}
}
