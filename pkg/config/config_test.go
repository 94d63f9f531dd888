package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/admonish/pkg/config"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, config.FlavorGFM, cfg.Flavor)
	assert.False(t, config.BoolValue(cfg.Admonitions.AllowNested, true))
	assert.True(t, config.BoolValue(cfg.Render.RawHTML, false))
	assert.False(t, config.BoolValue(cfg.Render.Standalone, true))
	assert.Equal(t, []string{".md", ".markdown"}, cfg.Extensions)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Empty(t, cfg.Admonitions.Types)
}

func TestFlavorIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, config.FlavorGFM.IsValid())
	assert.True(t, config.FlavorCommonMark.IsValid())
	assert.False(t, config.Flavor("markdown-it").IsValid())
	assert.False(t, config.Flavor("").IsValid())
}

func TestBoolValue(t *testing.T) {
	t.Parallel()

	assert.True(t, config.BoolValue(nil, true))
	assert.False(t, config.BoolValue(nil, false))
	assert.False(t, config.BoolValue(config.Bool(false), true))
	assert.True(t, config.BoolValue(config.Bool(true), false))
}

func TestNormalizeTypeName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"note":      "NOTE",
		"NOTE":      "NOTE",
		"[!note]":   "NOTE",
		" Warning ": "WARNING",
		"[!TIP]":    "TIP",
	}
	for input, want := range tests {
		assert.Equal(t, want, config.NormalizeTypeName(input), input)
	}
}

func TestTitleFromName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"NOTE", "Note"},
		{"note", "Note"},
		{"[!IMPORTANT]", "Important"},
		{"SECURITY_NOTICE", "Security Notice"},
		{"read-more", "Read More"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, config.TitleFromName(tc.name))
		})
	}
}
