package runtimeconfig

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrSiteRootRequired indicates the site root directory was left empty.
var ErrSiteRootRequired = errors.New("weave config: site root directory is required")

// ErrScriptsDirRequired indicates the scripts directory name was left empty.
var ErrScriptsDirRequired = errors.New("weave config: scripts directory is required")

// ErrOutputDirNameRequired indicates the output directory name was left empty.
var ErrOutputDirNameRequired = errors.New("weave config: output directory name is required")
var ErrOutputDirNameNested = errors.New("weave config: output directory name must be a single path segment")
var ErrPlaintextSentinelRequired = errors.New("weave config: plaintext sentinel is required")
var ErrLiterateLanguageUnknown = errors.New("weave config: literate language has no extension mapping")
var ErrLoggingProviderRequired = errors.New("weave config: logging provider is required when logging is enabled")
var ErrLoggingProviderUnknown = errors.New("weave config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("weave config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("weave config: logging format is invalid")

// Config aggregates the settings consumed by the weave engine. Fields
// intentionally use simple types so host applications can extend them later.
type Config struct {
	Site     SiteConfig
	Markup   MarkupConfig
	Literate LiterateConfig
	Logging  LoggingConfig
	Features Features
}

// SiteConfig describes the filesystem layout the resolver operates against.
type SiteConfig struct {
	// RootDir is the absolute path of the site root. All artifact paths
	// returned by the engine are expressed relative to it.
	RootDir string
	// ScriptsDir is the directory, relative to RootDir, that anchors
	// canonical script references.
	ScriptsDir string
	// OutputDirName is the conventional subdirectory beside each script
	// that holds generated outputs. Defaults to "output".
	OutputDirName string
	// PlaintextSentinel is the language name that demotes a code embed to a
	// plain, language-less block.
	PlaintextSentinel string
	// LanguageExtensions maps lowercase language names to file extensions
	// (with leading dot) used when a reference omits its extension.
	LanguageExtensions map[string]string
}

// MarkupConfig tunes the markup-to-HTML rendering stage.
type MarkupConfig struct {
	Extensions []string
	HardWraps  bool
	Unsafe     bool
}

// LiterateConfig controls the literate conversion bridge.
type LiterateConfig struct {
	// Language selects the extension used to resolve literate scripts.
	Language string
}

// LoggingConfig selects and tunes the logger provider.
type LoggingConfig struct {
	Enabled   bool
	Provider  string
	Level     string
	Format    string
	AddSource bool
}

// Features toggles module functionality.
type Features struct {
	// Literate enables the \literate command and its conversion bridge.
	Literate bool
	// FullEval marks the session as a full evaluation pass; literate
	// conversions that changed will then flag the session stale.
	FullEval bool
}

// DefaultConfig returns the configuration used when the host supplies none.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			ScriptsDir:        "scripts",
			OutputDirName:     "output",
			PlaintextSentinel: "plaintext",
			LanguageExtensions: map[string]string{
				"julia":  ".jl",
				"python": ".py",
				"r":      ".r",
				"bash":   ".sh",
				"go":     ".go",
			},
		},
		Markup: MarkupConfig{
			Extensions: []string{"gfm"},
			Unsafe:     true,
		},
		Literate: LiterateConfig{
			Language: "julia",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "console",
		},
		Features: Features{
			Literate: true,
		},
	}
}

// Validate checks cross-field consistency before the engine boots.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Site.RootDir) == "" {
		return ErrSiteRootRequired
	}
	if strings.TrimSpace(c.Site.ScriptsDir) == "" {
		return ErrScriptsDirRequired
	}
	name := strings.TrimSpace(c.Site.OutputDirName)
	if name == "" {
		return ErrOutputDirNameRequired
	}
	if name != filepath.Base(name) {
		return ErrOutputDirNameNested
	}
	if strings.TrimSpace(c.Site.PlaintextSentinel) == "" {
		return ErrPlaintextSentinelRequired
	}

	if c.Features.Literate {
		lang := strings.ToLower(strings.TrimSpace(c.Literate.Language))
		if _, ok := c.Site.LanguageExtensions[lang]; !ok {
			return ErrLiterateLanguageUnknown
		}
	}

	if c.Logging.Enabled {
		provider := strings.ToLower(strings.TrimSpace(c.Logging.Provider))
		switch provider {
		case "":
			return ErrLoggingProviderRequired
		case "console", "gologger", "noop":
		default:
			return ErrLoggingProviderUnknown
		}
		switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
		case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
		default:
			return ErrLoggingLevelInvalid
		}
		switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
		case "", "json", "console", "pretty":
		default:
			return ErrLoggingFormatInvalid
		}
	}

	return nil
}
