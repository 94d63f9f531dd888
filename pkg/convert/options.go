package convert

import (
	"strings"

	"github.com/yaklabco/admonish/pkg/admonition"
	"github.com/yaklabco/admonish/pkg/config"
	"github.com/yaklabco/admonish/pkg/parser/goldmark"
)

// Options controls a Converter.
type Options struct {
	// Flavor is the Markdown flavor passed to the parser.
	Flavor string

	// Admonitions is the marker table and class configuration.
	Admonitions admonition.Config

	// Standalone wraps output in a complete HTML page.
	Standalone bool

	// DetectLanguage labels unlabeled code blocks.
	DetectLanguage bool

	// RawHTML passes document HTML through; false escapes it.
	RawHTML bool
}

// DefaultOptions returns GFM parsing with the five GitHub alert types and
// raw HTML allowed.
func DefaultOptions() Options {
	return Options{
		Flavor:      goldmark.FlavorGFM,
		Admonitions: admonition.DefaultConfig(),
		RawHTML:     true,
	}
}

// OptionsFromConfig translates a resolved configuration into Options.
// Configured types are layered over the built-in ones: empty fields keep
// the built-in value, or one derived from the type name for new types.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	if cfg == nil {
		return opts
	}

	if cfg.Flavor != "" {
		opts.Flavor = string(cfg.Flavor)
	}
	opts.Standalone = config.BoolValue(cfg.Render.Standalone, false)
	opts.DetectLanguage = config.BoolValue(cfg.Render.DetectLanguage, false)
	opts.RawHTML = config.BoolValue(cfg.Render.RawHTML, true)

	adm := &opts.Admonitions
	if cfg.Admonitions.BlockClass != "" {
		adm.BlockCSSClass = cfg.Admonitions.BlockClass
	}
	if cfg.Admonitions.TitleClass != "" {
		adm.TitleCSSClass = cfg.Admonitions.TitleClass
	}
	adm.AllowNested = config.BoolValue(cfg.Admonitions.AllowNested, false)

	for _, name := range cfg.TypeNames() {
		typ := cfg.Admonitions.Types[name]
		marker := admonition.Marker(config.NormalizeTypeName(name))

		if !config.BoolValue(typ.Enabled, true) {
			delete(adm.Types, marker)
			continue
		}

		alert, ok := adm.Types[marker]
		if !ok {
			alert = admonition.AlertType{
				Title:    config.TitleFromName(name),
				CSSClass: admonition.TypeCSSClassPrefix + strings.ToLower(config.NormalizeTypeName(name)),
				SVGIcon:  admonition.DefaultIcon(name),
			}
		}
		if typ.Title != "" {
			alert.Title = typ.Title
		}
		if typ.CSSClass != "" {
			alert.CSSClass = typ.CSSClass
		}
		if typ.Icon != "" {
			alert.SVGIcon = typ.Icon
		}
		adm.Types[marker] = alert
	}

	return opts
}
