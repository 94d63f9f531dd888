package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/admonish/internal/cli"
)

const noteMarkdown = "# Title\n\n> [!NOTE]\n> Useful information.\n"

func writeMarkdown(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRender_SingleFileToStdout(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "doc.md")
	writeMarkdown(t, file, noteMarkdown)

	stdout, _, err := execute(t, "", "", "render", file)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "<h1>Title</h1>\n<div class=\"markdown-alert markdown-alert-type-note\">\n"), stdout)
	assert.Contains(t, stdout, "<p>Useful information.</p>\n</div>\n")
}

func TestRender_Stdin(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "> [!TIP]\n> Try it.\n", "render", "-")
	require.NoError(t, err)

	assert.Contains(t, stdout, `class="markdown-alert markdown-alert-type-tip"`)
	assert.Contains(t, stdout, "<p>Try it.</p>")
}

func TestRender_Flags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		markdown   string
		args       []string
		config     string
		contains   []string
		notContain []string
	}{
		{
			name:       "safe escapes document html",
			markdown:   "<b>bold</b>\n\n> [!NOTE]\n> x\n",
			args:       []string{"--safe"},
			contains:   []string{"&lt;b&gt;bold&lt;/b&gt;", "<span class='icon'><svg"},
			notContain: []string{"<b>bold</b>"},
		},
		{
			name:     "standalone page",
			markdown: noteMarkdown,
			args:     []string{"--standalone"},
			contains: []string{"<!DOCTYPE html>", "<title>Title</title>", "<article>"},
		},
		{
			name:       "nested alerts are off by default",
			markdown:   "> [!NOTE]\n> outer\n>\n> > [!TIP]\n> > inner\n",
			contains:   []string{"markdown-alert-type-note", "<p>[!TIP]\ninner</p>"},
			notContain: []string{"markdown-alert-type-tip"},
		},
		{
			name:     "allow nested",
			markdown: "> [!NOTE]\n> outer\n>\n> > [!TIP]\n> > inner\n",
			args:     []string{"--allow-nested"},
			contains: []string{"markdown-alert-type-note", "markdown-alert-type-tip"},
		},
		{
			name:     "config file classes",
			markdown: noteMarkdown,
			config:   "admonitions:\n  block_class: callout\n  types:\n    NOTE:\n      title: FYI\n",
			contains: []string{`class="callout markdown-alert-type-note"`, "</span>FYI</p>"},
		},
		{
			name:     "flag overrides config file",
			markdown: noteMarkdown,
			config:   "render:\n  standalone: true\n",
			args:     []string{"--standalone=false"},
			contains: []string{"<h1>Title</h1>"},
			notContain: []string{
				"<!DOCTYPE html>",
			},
		},
		{
			name:     "detect language",
			markdown: "```\n#!/bin/bash\necho hi\n```\n",
			args:     []string{"--detect-lang"},
			contains: []string{`class="language-bash"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			file := filepath.Join(t.TempDir(), "doc.md")
			writeMarkdown(t, file, tt.markdown)

			stdout, _, err := execute(t, tt.config, "", append([]string{"render", file}, tt.args...)...)
			require.NoError(t, err)

			for _, want := range tt.contains {
				assert.Contains(t, stdout, want)
			}
			for _, unwanted := range tt.notContain {
				assert.NotContains(t, stdout, unwanted)
			}
		})
	}
}

func TestRender_OutDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeMarkdown(t, filepath.Join(dir, "docs", "a.md"), noteMarkdown)
	writeMarkdown(t, filepath.Join(dir, "docs", "drafts", "b.md"), "draft\n")
	writeMarkdown(t, filepath.Join(dir, "docs", "c.markdown"), "> [!WARNING]\n> careful\n")
	out := filepath.Join(dir, "site")

	stdout, _, err := execute(t, "", "",
		"render", filepath.Join(dir, "docs"), "--out-dir", out, "--ignore", "drafts", "--jobs", "2")
	require.NoError(t, err)

	assert.Contains(t, stdout, "rendered 2 files")
	assert.Contains(t, stdout, "2 admonitions")
	// The inputs lie outside the working directory, so paths are kept
	// relative to the docs directory given on the command line.
	assert.FileExists(t, filepath.Join(out, "c.html"))
	assert.NoFileExists(t, filepath.Join(out, "drafts", "b.html"))

	html, err := os.ReadFile(filepath.Join(out, "a.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "markdown-alert-type-note")
}

func TestRender_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeMarkdown(t, filepath.Join(dir, "good.md"), noteMarkdown)
	writeMarkdown(t, filepath.Join(dir, "bad.md"), "---\ntitle: [oops\n---\n")

	tests := []struct {
		name   string
		config string
		args   []string
		code   int
	}{
		{"directory without out dir", "", []string{"render", dir}, cli.ExitInvalidUsage},
		{"missing file", "", []string{"render", filepath.Join(dir, "missing.md")}, cli.ExitIOError},
		{"invalid flavor flag", "", []string{"render", filepath.Join(dir, "good.md"), "--flavor", "wiki"}, cli.ExitConfigError},
		{"invalid config file", "flavor: wiki\n", []string{"render", filepath.Join(dir, "good.md")}, cli.ExitConfigError},
		{"watch with stdin", "", []string{"render", "-", "--watch"}, cli.ExitInvalidUsage},
		{"failing file", "", []string{"render", dir, "--out-dir", filepath.Join(t.TempDir(), "site")}, cli.ExitRenderErrors},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, tt.config, "", tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, cli.ExitCode(err), "error: %v", err)
		})
	}
}

func TestMarkersCommand(t *testing.T) {
	t.Parallel()

	config := "admonitions:\n  types:\n    security:\n      css_class: sec\n    CAUTION:\n      enabled: false\n"

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := execute(t, config, "", "markers")
		require.NoError(t, err)

		assert.Contains(t, stdout, "MARKER")
		assert.Contains(t, stdout, "[!SECURITY]")
		assert.Contains(t, stdout, "Security")
		assert.NotContains(t, stdout, "[!CAUTION]")
		assert.Contains(t, stdout, "block class: markdown-alert | title class: markdown-alert-title | nested: off")
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := execute(t, config, "", "markers", "--format", "json")
		require.NoError(t, err)

		var doc struct {
			BlockClass string `json:"block_class"`
			Markers    []struct {
				Marker   string `json:"marker"`
				Name     string `json:"name"`
				Title    string `json:"title"`
				CSSClass string `json:"css_class"`
			} `json:"markers"`
		}
		require.NoError(t, json.Unmarshal([]byte(stdout), &doc))

		assert.Equal(t, "markdown-alert", doc.BlockClass)
		markers := make([]string, 0, len(doc.Markers))
		for _, m := range doc.Markers {
			markers = append(markers, m.Marker)
		}
		assert.Equal(t, []string{"[!IMPORTANT]", "[!NOTE]", "[!SECURITY]", "[!TIP]", "[!WARNING]"}, markers)
		assert.Equal(t, "security", doc.Markers[2].Name)
		assert.Equal(t, "sec", doc.Markers[2].CSSClass)
	})

	t.Run("invalid format", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(t, "", "", "markers", "--format", "xml")
		require.Error(t, err)
		assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
	})
}

func TestInitCommand(t *testing.T) {
	t.Parallel()

	t.Run("yaml then refuse overwrite", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".admonish.yml")

		_, _, err := execute(t, "", "", "init", "--output", path, "--full")
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "flavor: gfm")
		assert.Contains(t, string(content), "    NOTE:\n      title: Note\n")

		_, _, err = execute(t, "", "", "init", "--output", path)
		require.Error(t, err)
		assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

		_, _, err = execute(t, "", "", "init", "--output", path, "--force")
		require.NoError(t, err)
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "admonish.json")

		_, _, err := execute(t, "", "", "init", "--output", path, "--format", "json")
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(content, &doc))
		assert.Equal(t, "gfm", doc["flavor"])
	})

	t.Run("generated file loads", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".admonish.yml")
		_, _, err := execute(t, "", "", "init", "--output", path, "--full")
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)

		stdout, _, err := execute(t, string(content), "", "markers")
		require.NoError(t, err)
		assert.Contains(t, stdout, "[!CAUTION]")
	})

	t.Run("invalid format", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(t, "", "", "init", "--output", filepath.Join(t.TempDir(), "x"), "--format", "toml")
		require.Error(t, err)
		assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
	})
}
