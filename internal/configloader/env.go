package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/admonish/pkg/config"
)

// envVarPrefix is the prefix for all admonish environment variables.
const envVarPrefix = "ADMONISH_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines an environment variable to config field mapping.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FLAVOR":          {"flavor", envTypeString, "Markdown flavor: commonmark or gfm"},
	"BLOCK_CLASS":     {"admonitions.block_class", envTypeString, "CSS class of admonition containers"},
	"TITLE_CLASS":     {"admonitions.title_class", envTypeString, "CSS class of admonition titles"},
	"ALLOW_NESTED":    {"admonitions.allow_nested", envTypeBool, "Recognize alerts inside blockquotes: true or false"},
	"STANDALONE":      {"render.standalone", envTypeBool, "Write complete HTML pages: true or false"},
	"DETECT_LANGUAGE": {"render.detect_language", envTypeBool, "Label unlabeled code blocks: true or false"},
	"RAW_HTML":        {"render.raw_html", envTypeBool, "Pass raw HTML through: true or false"},
	"OUT_DIR":         {"out_dir", envTypeString, "Directory for rendered files"},
	"JOBS":            {"jobs", envTypeInt, "Number of parallel workers (0 = auto)"},
	"EXTENSIONS":      {"extensions", envTypeSlice, "Comma-separated list of Markdown extensions"},
	"IGNORE":          {"ignore", envTypeSlice, "Comma-separated list of ignore patterns"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with ADMONISH_ (e.g., ADMONISH_FLAVOR).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "flavor":
		cfg.Flavor = config.Flavor(value)
	case "admonitions.block_class":
		cfg.Admonitions.BlockClass = value
	case "admonitions.title_class":
		cfg.Admonitions.TitleClass = value
	case "out_dir":
		cfg.OutDir = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "admonitions.allow_nested":
		cfg.Admonitions.AllowNested = config.Bool(value)
	case "render.standalone":
		cfg.Render.Standalone = config.Bool(value)
	case "render.detect_language":
		cfg.Render.DetectLanguage = config.Bool(value)
	case "render.raw_html":
		cfg.Render.RawHTML = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "extensions":
		cfg.Extensions = value
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// EnvVar describes a supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns all supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Description: mapping.description})
	}
	sort.Slice(vars, func(i, j int) bool {
		return vars[i].Name < vars[j].Name
	})
	return vars
}
