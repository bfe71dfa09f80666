package bootstrap

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	weave "github.com/mresende/go-weave"
	"github.com/mresende/go-weave/internal/logging"
	"github.com/mresende/go-weave/pkg/interfaces"
)

// Options captures configuration for the weave CLI bootstrap.
type Options struct {
	// ConfigPath points at an optional weave.yaml overriding the defaults.
	ConfigPath string
	// SiteRoot overrides the site root directory.
	SiteRoot string
	// FullEval marks the run as a full evaluation pass.
	FullEval bool
	// LoggerProvider overrides the provider derived from the logging config.
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the engine and the CLI logger.
type Module struct {
	Engine *weave.Engine
	Logger interfaces.Logger
}

// BuildModule constructs an engine configured for CLI operations.
func BuildModule(opts Options) (*Module, error) {
	cfg := weave.DefaultConfig()

	if path := strings.TrimSpace(opts.ConfigPath); path != "" {
		if err := applyFileConfig(&cfg, path); err != nil {
			return nil, err
		}
	}
	if root := strings.TrimSpace(opts.SiteRoot); root != "" {
		cfg.Site.RootDir = root
	}
	if opts.FullEval {
		cfg.Features.FullEval = true
	}

	engineOpts := []weave.Option{}
	if opts.LoggerProvider != nil {
		engineOpts = append(engineOpts, weave.WithLoggerProvider(opts.LoggerProvider))
	}

	engine, err := weave.New(cfg, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise weave engine: %w", err)
	}

	return &Module{
		Engine: engine,
		Logger: logging.ModuleLogger(engine.LoggerProvider(), "weave.cli"),
	}, nil
}

type fileConfig struct {
	Site struct {
		Root               string            `yaml:"root"`
		ScriptsDir         string            `yaml:"scripts_dir"`
		OutputDirName      string            `yaml:"output_dir_name"`
		PlaintextSentinel  string            `yaml:"plaintext_sentinel"`
		LanguageExtensions map[string]string `yaml:"language_extensions"`
	} `yaml:"site"`
	Markup struct {
		Extensions []string `yaml:"extensions"`
		HardWraps  bool     `yaml:"hard_wraps"`
		Unsafe     *bool    `yaml:"unsafe"`
	} `yaml:"markup"`
	Literate struct {
		Language string `yaml:"language"`
	} `yaml:"literate"`
	Logging struct {
		Enabled   bool   `yaml:"enabled"`
		Provider  string `yaml:"provider"`
		Level     string `yaml:"level"`
		Format    string `yaml:"format"`
		AddSource bool   `yaml:"add_source"`
	} `yaml:"logging"`
	Features struct {
		Literate *bool `yaml:"literate"`
		FullEval bool  `yaml:"full_eval"`
	} `yaml:"features"`
}

// applyFileConfig overlays a weave.yaml onto the defaults. Absent keys keep
// their default values.
func applyFileConfig(cfg *weave.Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if file.Site.Root != "" {
		cfg.Site.RootDir = file.Site.Root
	}
	if file.Site.ScriptsDir != "" {
		cfg.Site.ScriptsDir = file.Site.ScriptsDir
	}
	if file.Site.OutputDirName != "" {
		cfg.Site.OutputDirName = file.Site.OutputDirName
	}
	if file.Site.PlaintextSentinel != "" {
		cfg.Site.PlaintextSentinel = file.Site.PlaintextSentinel
	}
	for lang, ext := range file.Site.LanguageExtensions {
		cfg.Site.LanguageExtensions[strings.ToLower(lang)] = ext
	}

	if len(file.Markup.Extensions) > 0 {
		cfg.Markup.Extensions = file.Markup.Extensions
	}
	cfg.Markup.HardWraps = file.Markup.HardWraps
	if file.Markup.Unsafe != nil {
		cfg.Markup.Unsafe = *file.Markup.Unsafe
	}

	if file.Literate.Language != "" {
		cfg.Literate.Language = strings.ToLower(file.Literate.Language)
	}

	cfg.Logging.Enabled = file.Logging.Enabled
	if file.Logging.Provider != "" {
		cfg.Logging.Provider = file.Logging.Provider
	}
	if file.Logging.Level != "" {
		cfg.Logging.Level = file.Logging.Level
	}
	if file.Logging.Format != "" {
		cfg.Logging.Format = file.Logging.Format
	}
	cfg.Logging.AddSource = file.Logging.AddSource

	if file.Features.Literate != nil {
		cfg.Features.Literate = *file.Features.Literate
	}
	if file.Features.FullEval {
		cfg.Features.FullEval = true
	}

	return nil
}
