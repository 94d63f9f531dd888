package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full lists every built-in alert type with its settings.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// Types describes the built-in alert types for a full template.
	Types []TypeInfo
}

// TypeInfo describes an alert type for template generation.
// It mirrors the admonition package's table without importing it.
type TypeInfo struct {
	Name     string
	Title    string
	CSSClass string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON(opts)
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Markdown flavor: commonmark or gfm
flavor: gfm

admonitions:
  # CSS class on every admonition container
  # block_class: markdown-alert

  # CSS class on the title paragraph
  # title_class: markdown-alert-title

  # Recognize alerts inside other blockquotes
  # allow_nested: false
`)

	if opts.Full {
		writeTypes(&buf, opts.Types)
	} else {
		buf.WriteString(`
  # Add or override alert types, keyed by marker name
  # types:
  #   SECURITY:
  #     title: Security
  #     css_class: markdown-alert-type-security
  #   CAUTION:
  #     enabled: false
`)
	}

	buf.WriteString(`
render:
  # Wrap output in a complete HTML page
  standalone: false

  # Guess a language class for unlabeled code blocks
  detect_language: false

  # Pass raw HTML through; false escapes it
  raw_html: true

# Files treated as Markdown
# extensions:
#   - ".md"
#   - ".markdown"

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"
`)

	return buf.Bytes(), nil
}

func writeTypes(buf *bytes.Buffer, types []TypeInfo) {
	sorted := append([]TypeInfo(nil), types...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	buf.WriteString("\n  types:\n")
	for _, typ := range sorted {
		fmt.Fprintf(buf, "    # [!%s]\n", typ.Name)
		fmt.Fprintf(buf, "    %s:\n", typ.Name)
		fmt.Fprintf(buf, "      title: %s\n", typ.Title)
		fmt.Fprintf(buf, "      css_class: %s\n", typ.CSSClass)
	}
}

// templateToJSON renders the default configuration as JSON.
// JSON has no comments, so the full and minimal forms differ only in types.
func templateToJSON(opts TemplateOptions) ([]byte, error) {
	types := map[string]any{}
	if opts.Full {
		for _, typ := range opts.Types {
			types[typ.Name] = map[string]any{
				"title":     typ.Title,
				"css_class": typ.CSSClass,
			}
		}
	}

	cfg := map[string]any{
		"flavor": string(FlavorGFM),
		"admonitions": map[string]any{
			"allow_nested": false,
			"types":        types,
		},
		"render": map[string]any{
			"standalone":      false,
			"detect_language": false,
			"raw_html":        true,
		},
		"extensions": DefaultExtensions(),
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# admonish configuration
# See: https://github.com/yaklabco/admonish`
}
