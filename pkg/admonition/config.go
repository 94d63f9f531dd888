package admonition

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Default CSS classes.
const (
	DefaultBlockCSSClass = "markdown-alert"
	DefaultTitleCSSClass = "markdown-alert-title"

	// TypeCSSClassPrefix prefixes the lower-cased type name in default type classes.
	TypeCSSClassPrefix = "markdown-alert-type-"
)

// Icons for the default alert types.
const (
	iconNote      = `<svg xmlns="http://www.w3.org/2000/svg" width="16" height="16" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><circle cx="12" cy="12" r="10"/><path d="M12 16v-4"/><path d="M12 8h.01"/></svg>`
	iconTip       = `<svg xmlns="http://www.w3.org/2000/svg" width="16" height="16" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><path d="M15 14c.2-1 .7-1.7 1.5-2.5 1-.9 1.5-2.2 1.5-3.5A6 6 0 0 0 6 8c0 1 .2 2.2 1.5 3.5.7.7 1.3 1.5 1.5 2.5"/><path d="M9 18h6"/><path d="M10 22h4"/></svg>`
	iconImportant = `<svg xmlns="http://www.w3.org/2000/svg" width="16" height="16" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><path d="M22 17a2 2 0 0 1-2 2H6.828a2 2 0 0 0-1.414.586l-2.202 2.202A.71.71 0 0 1 2 21.286V5a2 2 0 0 1 2-2h16a2 2 0 0 1 2 2z"/><path d="M12 15h.01"/><path d="M12 7v4"/></svg>`
	iconWarning   = `<svg xmlns="http://www.w3.org/2000/svg" width="16" height="16" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><path d="m21.73 18-8-14a2 2 0 0 0-3.48 0l-8 14A2 2 0 0 0 4 21h16a2 2 0 0 0 1.73-3"/><path d="M12 9v4"/><path d="M12 17h.01"/></svg>`
	iconCaution   = `<svg xmlns="http://www.w3.org/2000/svg" width="16" height="16" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><path d="M12 16h.01"/><path d="M12 8v4"/><path d="M15.312 2a2 2 0 0 1 1.414.586l4.688 4.688A2 2 0 0 1 22 8.688v6.624a2 2 0 0 1-.586 1.414l-4.688 4.688a2 2 0 0 1-1.414.586H8.688a2 2 0 0 1-1.414-.586l-4.688-4.688A2 2 0 0 1 2 15.312V8.688a2 2 0 0 1 .586-1.414l4.688-4.688A2 2 0 0 1 8.688 2z"/></svg>`
)

// Errors returned by Config.Validate.
var (
	ErrEmptyMarker = errors.New("marker must not be empty")
	ErrEmptyTitle  = errors.New("title must not be empty")
	ErrNoTypes     = errors.New("no alert types configured")
)

// AlertType describes how one marker is rendered.
type AlertType struct {
	// Title is the text shown in the title paragraph.
	Title string `json:"title" yaml:"title"`

	// CSSClass is appended to the block class on the container.
	CSSClass string `json:"css_class" yaml:"css_class"`

	// SVGIcon is inline markup placed inside the title's icon span.
	SVGIcon string `json:"svg_icon,omitempty" yaml:"svg_icon,omitempty"`
}

// Config is the marker table and the global class names.
// Keys of Types are full markers, e.g. "[!NOTE]", matched exactly.
type Config struct {
	BlockCSSClass string
	TitleCSSClass string
	Types         map[string]AlertType

	// AllowNested enables recognition of blockquotes whose parent is
	// itself a blockquote. Off by default.
	AllowNested bool
}

// DefaultConfig returns a fresh copy of the built-in configuration with
// the five GitHub alert types.
func DefaultConfig() Config {
	return Config{
		BlockCSSClass: DefaultBlockCSSClass,
		TitleCSSClass: DefaultTitleCSSClass,
		Types: map[string]AlertType{
			"[!NOTE]":      {Title: "Note", CSSClass: TypeCSSClassPrefix + "note", SVGIcon: iconNote},
			"[!TIP]":       {Title: "Tip", CSSClass: TypeCSSClassPrefix + "tip", SVGIcon: iconTip},
			"[!IMPORTANT]": {Title: "Important", CSSClass: TypeCSSClassPrefix + "important", SVGIcon: iconImportant},
			"[!WARNING]":   {Title: "Warning", CSSClass: TypeCSSClassPrefix + "warning", SVGIcon: iconWarning},
			"[!CAUTION]":   {Title: "Caution", CSSClass: TypeCSSClassPrefix + "caution", SVGIcon: iconCaution},
		},
	}
}

// DefaultIcon returns the built-in icon for a type name such as "note",
// falling back to the note icon.
func DefaultIcon(name string) string {
	switch strings.ToLower(name) {
	case "tip":
		return iconTip
	case "important":
		return iconImportant
	case "warning":
		return iconWarning
	case "caution":
		return iconCaution
	default:
		return iconNote
	}
}

// Marker wraps a type name into its marker form: "note" becomes "[!NOTE]".
func Marker(name string) string {
	return "[!" + strings.ToUpper(name) + "]"
}

// TypeName extracts the type name from a marker: "[!NOTE]" becomes "note".
// It returns "" when marker is not in bracket form.
func TypeName(marker string) string {
	if !strings.HasPrefix(marker, "[!") || !strings.HasSuffix(marker, "]") || len(marker) < 4 {
		return ""
	}
	return strings.ToLower(marker[2 : len(marker)-1])
}

// Validate checks that every entry is usable.
func (c Config) Validate() error {
	if len(c.Types) == 0 {
		return ErrNoTypes
	}

	var errs []error
	for _, marker := range c.Markers() {
		alert := c.Types[marker]
		if strings.TrimSpace(marker) == "" {
			errs = append(errs, ErrEmptyMarker)
			continue
		}
		if alert.Title == "" {
			errs = append(errs, fmt.Errorf("%s: %w", marker, ErrEmptyTitle))
		}
	}

	return errors.Join(errs...)
}

// Markers returns the configured markers in sorted order.
func (c Config) Markers() []string {
	markers := make([]string, 0, len(c.Types))
	for marker := range c.Types {
		markers = append(markers, marker)
	}
	sort.Strings(markers)
	return markers
}

// Clone returns a copy whose Types map is independent of c's.
func (c Config) Clone() Config {
	clone := c
	if c.Types != nil {
		clone.Types = make(map[string]AlertType, len(c.Types))
		for marker, alert := range c.Types {
			clone.Types[marker] = alert
		}
	}
	return clone
}
