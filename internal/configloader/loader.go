// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support and validation.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/admonish/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (ADMONISH_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.admonish.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/admonish/config.yaml)
//  6. System config (/etc/admonish/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{}

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	cfg := config.NewConfig()

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath
	result.Paths = paths

	sources := []struct {
		kind string
		path string
		skip bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}

	for _, source := range sources {
		if source.skip || source.path == "" {
			continue
		}
		fileCfg, err := loadConfigFile(source.path, result)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", source.kind, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, source.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}

	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file and normalizes
// its type names.
func loadConfigFile(path string, result *LoadResult) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, err
	}

	normalizeTypeKeys(cfg, path, result)

	fileCheck := ValidateWithFile(cfg, path)
	if !fileCheck.Valid() {
		return nil, &fileCheck.Errors[0]
	}

	return cfg, nil
}

// normalizeTypeKeys upper-cases type names so "note", "NOTE" and "[!NOTE]"
// refer to the same type, and derives titles for new types that lack one.
// Built-in types keep an empty title so their default title applies.
func normalizeTypeKeys(cfg *config.Config, path string, result *LoadResult) {
	if len(cfg.Admonitions.Types) == 0 {
		return
	}

	normalized := make(map[string]config.TypeConfig, len(cfg.Admonitions.Types))
	seen := make(map[string]string, len(cfg.Admonitions.Types))

	for _, key := range cfg.TypeNames() {
		typ := cfg.Admonitions.Types[key]
		name := config.NormalizeTypeName(key)

		if original, dup := seen[name]; dup {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: types %q and %q both declare %s; using %q", path, original, key, name, key))
		}
		seen[name] = key

		if typ.Title == "" && !isBuiltin(name) {
			typ.Title = config.TitleFromName(name)
		}
		normalized[name] = typ
	}

	cfg.Admonitions.Types = normalized
}

func isBuiltin(name string) bool {
	for _, builtin := range builtinTypeNames {
		if name == builtin {
			return true
		}
	}
	return false
}
