// Package config defines core configuration types for admonish.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	switch f {
	case FlavorCommonMark, FlavorGFM:
		return true
	default:
		return false
	}
}

// OutputFormat selects how listings such as the marker table are printed.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// TypeConfig overrides or declares one alert type. Empty fields fall back
// to the built-in type of the same name, or to values derived from the name.
type TypeConfig struct {
	Title    string `yaml:"title,omitempty"`
	CSSClass string `yaml:"css_class,omitempty"`
	Icon     string `yaml:"icon,omitempty"`

	// Enabled set to false removes the type, including a built-in one.
	Enabled *bool `yaml:"enabled,omitempty"`
}

// AdmonitionsConfig controls marker recognition.
type AdmonitionsConfig struct {
	BlockClass  string `yaml:"block_class,omitempty"`
	TitleClass  string `yaml:"title_class,omitempty"`
	AllowNested *bool  `yaml:"allow_nested,omitempty"`

	// Types is keyed by upper-case type name, e.g. NOTE for [!NOTE].
	Types map[string]TypeConfig `yaml:"types,omitempty"`
}

// RenderConfig controls HTML output.
type RenderConfig struct {
	// Standalone wraps output in a full HTML page.
	Standalone *bool `yaml:"standalone,omitempty"`

	// DetectLanguage labels unlabeled code blocks.
	DetectLanguage *bool `yaml:"detect_language,omitempty"`

	// RawHTML passes document HTML through; false escapes it.
	RawHTML *bool `yaml:"raw_html,omitempty"`
}

// Config is the root configuration structure for admonish.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor"`

	Admonitions AdmonitionsConfig `yaml:"admonitions"`

	Render RenderConfig `yaml:"render"`

	// Extensions lists the file extensions treated as Markdown.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// OutDir is where rendered files are written. Empty means stdout.
	OutDir string `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// Watch re-renders files when they change.
	Watch bool `yaml:"-"`

	// Format specifies the listing output format.
	Format OutputFormat `yaml:"-"`
}

// DefaultExtensions are the Markdown file extensions used when none are configured.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor: FlavorGFM,
		Admonitions: AdmonitionsConfig{
			AllowNested: Bool(false),
			Types:       make(map[string]TypeConfig),
		},
		Render: RenderConfig{
			Standalone:     Bool(false),
			DetectLanguage: Bool(false),
			RawHTML:        Bool(true),
		},
		Extensions: DefaultExtensions(),
		Format:     FormatText,
		Jobs:       0, // 0 means use GOMAXPROCS
	}
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

// BoolValue dereferences p, returning def when p is nil.
func BoolValue(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// NormalizeTypeName upper-cases a type name and strips a surrounding
// marker, so "note", "NOTE" and "[!note]" all become "NOTE".
func NormalizeTypeName(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, "[!") && strings.HasSuffix(name, "]") {
		name = name[2 : len(name)-1]
	}
	return strings.ToUpper(name)
}

// TitleFromName derives a display title from a type name:
// "NOTE" becomes "Note", "SECURITY_NOTICE" becomes "Security Notice".
func TitleFromName(name string) string {
	words := strings.FieldsFunc(NormalizeTypeName(name), func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	return cases.Title(language.English).String(strings.ToLower(strings.Join(words, " ")))
}
