package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/admonish/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"empty", "", "text"},
		{"blank", "  \n\t", "text"},
		{"shebang bash", "#!/bin/bash\necho hello", "bash"},
		{"shebang python", "#!/usr/bin/env python3\nprint('hello')", "python"},
		{"go", "package main\n\nfunc main() {}\n", "go"},
		{"python", "def foo():\n    pass\n", "python"},
		{"json", `{"key": "value", "n": 1}`, "json"},
		{"html", "<!DOCTYPE html>\n<html></html>", "html"},
		{"dockerfile", "FROM alpine\nRUN apk add git", "dockerfile"},
		{"sql", "select * from notes", "sql"},
		{"rust", "let mut x = 1;\nprintln!(\"{}\", x);", "rust"},
		{"javascript", "const x = () => 42;", "javascript"},
		{"yaml", "name: admonish\nversion: 1\n", "yaml"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, langdetect.Detect([]byte(tc.content)))
		})
	}
}

func TestDetector_MetaFilenameHint(t *testing.T) {
	t.Parallel()

	d := langdetect.New()
	assert.Equal(t, "go", d.Detect(`title="cmd/main.go"`, []byte("x := 1")))
	assert.Equal(t, "python", d.Detect("file=tool.py", []byte("x = 1")))
}

func TestClass(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "language-go", langdetect.Class("go"))
	assert.Empty(t, langdetect.Class("text"))
	assert.Empty(t, langdetect.Class(""))
}
