package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/admonish/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "admonitions.types.NOTE.title").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText: true,
	config.FormatJSON: true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Flavor != "" && !cfg.Flavor.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "flavor",
			Value:   cfg.Flavor,
			Message: fmt.Sprintf("invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor),
		})
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json", cfg.Format),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	validateTypes(cfg, result)
	validateExtensions(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateTypes checks alert type declarations.
func validateTypes(cfg *config.Config, result *ValidationResult) {
	enabled := 0
	for _, name := range cfg.TypeNames() {
		typ := cfg.Admonitions.Types[name]
		field := "admonitions.types." + name

		if name == "" || strings.ContainsAny(name, "[]! \t\n") {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field,
				Value:   name,
				Message: "type names must be non-empty and must not contain brackets, '!' or whitespace",
			})
			continue
		}

		if !config.BoolValue(typ.Enabled, true) {
			continue
		}
		enabled++

		if strings.Contains(typ.CSSClass, " ") {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field + ".css_class",
				Value:   typ.CSSClass,
				Message: "css_class contains spaces; it will be written as several classes",
			})
		}
	}

	if len(cfg.Admonitions.Types) > 0 && enabled == 0 && !hasBuiltins(cfg) {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "admonitions.types",
			Message: "every configured type is disabled",
		})
	}
}

// hasBuiltins reports whether any built-in type survives the configuration.
func hasBuiltins(cfg *config.Config) bool {
	for _, name := range builtinTypeNames {
		typ, ok := cfg.Admonitions.Types[name]
		if !ok || config.BoolValue(typ.Enabled, true) {
			return true
		}
	}
	return false
}

// builtinTypeNames are the GitHub alert types enabled by default.
//
//nolint:gochecknoglobals // Read-only lookup table.
var builtinTypeNames = []string{"NOTE", "TIP", "IMPORTANT", "WARNING", "CAUTION"}

// validateExtensions checks that extensions look like ".md".
func validateExtensions(cfg *config.Config, result *ValidationResult) {
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("extensions[%d]", i),
				Value:   ext,
				Message: fmt.Sprintf("invalid extension %q; must start with a dot", ext),
			})
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		// filepath.Match returns an error only for malformed patterns
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}
