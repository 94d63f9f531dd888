package configloader

import "github.com/yaklabco/admonish/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer booleans: override overwrites base if set, so false can win
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.OutDir != "" {
		result.OutDir = override.OutDir
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Watch is CLI-only, so it can only be switched on.
	if override.Watch {
		result.Watch = true
	}

	if override.Admonitions.BlockClass != "" {
		result.Admonitions.BlockClass = override.Admonitions.BlockClass
	}
	if override.Admonitions.TitleClass != "" {
		result.Admonitions.TitleClass = override.Admonitions.TitleClass
	}
	result.Admonitions.AllowNested = pick(base.Admonitions.AllowNested, override.Admonitions.AllowNested)
	result.Admonitions.Types = mergeTypes(base.Admonitions.Types, override.Admonitions.Types)

	result.Render.Standalone = pick(base.Render.Standalone, override.Render.Standalone)
	result.Render.DetectLanguage = pick(base.Render.DetectLanguage, override.Render.DetectLanguage)
	result.Render.RawHTML = pick(base.Render.RawHTML, override.Render.RawHTML)

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

func pick(base, override *bool) *bool {
	if override != nil {
		return override
	}
	return base
}

// mergeTypes performs a deep merge of alert type declarations.
func mergeTypes(base, override map[string]config.TypeConfig) map[string]config.TypeConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.TypeConfig, len(base)+len(override))
	for name, typ := range base {
		result[name] = typ
	}

	for name, typ := range override {
		existing, ok := result[name]
		if !ok {
			result[name] = typ
			continue
		}
		result[name] = mergeTypeConfig(existing, typ)
	}

	return result
}

func mergeTypeConfig(base, override config.TypeConfig) config.TypeConfig {
	result := base
	if override.Title != "" {
		result.Title = override.Title
	}
	if override.CSSClass != "" {
		result.CSSClass = override.CSSClass
	}
	if override.Icon != "" {
		result.Icon = override.Icon
	}
	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
