// Package langdetect guesses the language of unlabeled code blocks so the
// renderer can emit a language-* class for syntax highlighters.
package langdetect

import (
	"bytes"
	"path"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language can be determined.
const Text = "text"

// ClassPrefix is the conventional prefix of highlighter classes.
const ClassPrefix = "language-"

// defaultCandidates are the languages the classifier chooses between.
//
//nolint:gochecknoglobals // read-only table
var defaultCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// metaFilename matches a filename hint in a fence's meta string, such as
// title="main.go" or file=deploy.yaml.
var metaFilename = regexp.MustCompile(`(?:title|file|filename)=["']?([^"'\s]+)`)

// rule is a cheap textual check tried before the classifier.
type rule struct {
	lang  string
	match func(trimmed []byte, text string) bool
}

//nolint:gochecknoglobals // read-only table, evaluated in order
var rules = []rule{
	{"go", func(trimmed []byte, _ string) bool {
		return bytes.HasPrefix(trimmed, []byte("package ")) ||
			bytes.Contains(trimmed, []byte("func main()")) && bytes.Contains(trimmed, []byte("fmt."))
	}},
	{"python", func(_ []byte, text string) bool {
		return strings.Contains(text, "def ") && strings.Contains(text, "):") ||
			strings.Contains(text, "__name__")
	}},
	{"html", func(trimmed []byte, _ string) bool {
		lower := bytes.ToLower(trimmed)
		return bytes.HasPrefix(lower, []byte("<!doctype html")) || bytes.HasPrefix(lower, []byte("<html"))
	}},
	{"json", func(trimmed []byte, _ string) bool {
		return len(trimmed) > 1 &&
			(trimmed[0] == '{' && trimmed[len(trimmed)-1] == '}' ||
				trimmed[0] == '[' && trimmed[len(trimmed)-1] == ']') &&
			bytes.Contains(trimmed, []byte(`"`))
	}},
	{"dockerfile", func(trimmed []byte, _ string) bool {
		return bytes.HasPrefix(trimmed, []byte("FROM ")) &&
			(bytes.Contains(trimmed, []byte("RUN ")) || bytes.Contains(trimmed, []byte("COPY ")))
	}},
	{"sql", func(_ []byte, text string) bool {
		upper := strings.ToUpper(strings.TrimSpace(text))
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}
		return false
	}},
	{"rust", func(_ []byte, text string) bool {
		return strings.Contains(text, "fn main()") || strings.Contains(text, "println!") ||
			strings.Contains(text, "let mut ")
	}},
	{"javascript", func(_ []byte, text string) bool {
		return strings.Contains(text, "=>") || strings.Contains(text, "console.log") ||
			strings.Contains(text, "const ")
	}},
	{"yaml", func(trimmed []byte, _ string) bool {
		return yamlKeys(trimmed) >= 2
	}},
}

// Detector guesses code languages. The zero value is not usable; use New.
type Detector struct {
	candidates []string
}

// New creates a Detector. With no candidates the built-in set is used.
func New(candidates ...string) *Detector {
	if len(candidates) == 0 {
		candidates = defaultCandidates
	}
	return &Detector{candidates: candidates}
}

// Detect returns the language of content, or Text.
// A shebang wins, then filename hints from meta, then textual rules,
// then the go-enry classifier when it is confident.
func (d *Detector) Detect(meta string, content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if m := metaFilename.FindStringSubmatch(meta); m != nil {
		if lang, safe := enry.GetLanguageByExtension(path.Base(m[1])); safe {
			return normalize(lang)
		}
		if lang, safe := enry.GetLanguageByFilename(path.Base(m[1])); safe {
			return normalize(lang)
		}
	}

	trimmed := bytes.TrimSpace(content)
	text := string(content)
	for _, r := range rules {
		if r.match(trimmed, text) {
			return r.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, d.candidates); safe && lang != "" {
		return normalize(lang)
	}

	return Text
}

// Detect uses a Detector with the built-in candidates.
func Detect(content []byte) string {
	return New().Detect("", content)
}

// Class returns the highlighter class for lang, or "" for Text.
func Class(lang string) string {
	if lang == "" || lang == Text {
		return ""
	}
	return ClassPrefix + lang
}

func yamlKeys(content []byte) int {
	count := 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		switch {
		case bytes.HasPrefix(line, []byte("- ")):
			count++
		case bytes.Contains(line, []byte(": ")) &&
			!bytes.ContainsAny(line, "({") && line[0] != '"':
			count++
		}
	}
	return count
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
