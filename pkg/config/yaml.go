package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes. Fields absent from the
// document stay unset so they do not override lower-precedence sources.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if cfg.Admonitions.Types == nil {
		cfg.Admonitions.Types = make(map[string]TypeConfig)
	}

	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Admonitions.AllowNested = clonePtr(c.Admonitions.AllowNested)
	clone.Render = RenderConfig{
		Standalone:     clonePtr(c.Render.Standalone),
		DetectLanguage: clonePtr(c.Render.DetectLanguage),
		RawHTML:        clonePtr(c.Render.RawHTML),
	}
	clone.Extensions = slices.Clone(c.Extensions)
	clone.Ignore = slices.Clone(c.Ignore)

	if c.Admonitions.Types != nil {
		clone.Admonitions.Types = make(map[string]TypeConfig, len(c.Admonitions.Types))
		for name, typ := range c.Admonitions.Types {
			clone.Admonitions.Types[name] = typ.clone()
		}
	}

	return &clone
}

func (t TypeConfig) clone() TypeConfig {
	t.Enabled = clonePtr(t.Enabled)
	return t
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// TypeNames returns the configured type names in sorted order.
func (c *Config) TypeNames() []string {
	return slices.Sorted(maps.Keys(c.Admonitions.Types))
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
