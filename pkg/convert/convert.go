// Package convert turns Markdown documents into HTML with admonitions.
//
// A Converter runs the full pipeline for one document: front matter is
// split off, the body is parsed into an mdast tree, marker blockquotes
// are rewritten into admonitions and the tree is rendered. Converters hold
// no per-document state and may be shared between goroutines.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/yaklabco/admonish/pkg/admonition"
	"github.com/yaklabco/admonish/pkg/langdetect"
	"github.com/yaklabco/admonish/pkg/mdast"
	"github.com/yaklabco/admonish/pkg/parser/goldmark"
	"github.com/yaklabco/admonish/pkg/render/html"
)

// ErrInvalidFlavor is returned by New for an unknown Markdown flavor.
var ErrInvalidFlavor = errors.New("invalid flavor")

// Result is the outcome of converting one document.
type Result struct {
	// HTML is the rendered fragment, or the full page when standalone.
	HTML []byte

	// Admonitions is the number of blockquotes rewritten.
	Admonitions int

	// Title is the front matter title, else the first level-one
	// heading, else the file name without extension.
	Title string

	// Matter is the decoded front matter, nil when there is none.
	Matter map[string]any

	// File is the parsed and transformed document.
	File *mdast.File
}

// Converter runs the parse, transform and render pipeline.
type Converter struct {
	opts       Options
	parser     *goldmark.Parser
	recognizer *admonition.Recognizer
	renderer   *html.Renderer
}

// New validates opts and builds a Converter.
func New(opts Options) (*Converter, error) {
	if !goldmark.IsValidFlavor(opts.Flavor) {
		return nil, fmt.Errorf("%w %q; must be one of: %s",
			ErrInvalidFlavor, opts.Flavor, strings.Join(goldmark.Flavors(), ", "))
	}
	if err := opts.Admonitions.Validate(); err != nil {
		return nil, fmt.Errorf("admonition config: %w", err)
	}

	renderOpts := []html.Option{html.WithRawHTML(opts.RawHTML)}
	if opts.DetectLanguage {
		renderOpts = append(renderOpts, html.WithLanguageDetection(langdetect.New()))
	}

	opts.Admonitions = opts.Admonitions.Clone()

	return &Converter{
		opts:       opts,
		parser:     goldmark.New(opts.Flavor),
		recognizer: admonition.New(opts.Admonitions),
		renderer:   html.New(renderOpts...),
	}, nil
}

// Options returns the converter's options.
func (c *Converter) Options() Options {
	opts := c.opts
	opts.Admonitions = opts.Admonitions.Clone()
	return opts
}

// Convert renders content. path is used for the fallback title and in
// error messages; the file itself is not read.
func (c *Converter) Convert(ctx context.Context, path string, content []byte) (*Result, error) {
	matter, body, err := splitFrontMatter(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	file, err := c.parser.Parse(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	file.Matter = matter

	result := &Result{
		Admonitions: c.recognizer.Transform(file.Root),
		Title:       documentTitle(file),
		Matter:      matter,
		File:        file,
	}

	var buf bytes.Buffer
	if err := c.renderer.Render(&buf, file.Root); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	result.HTML = buf.Bytes()

	if c.opts.Standalone {
		result.HTML, err = page(result.Title, documentLang(matter), c.opts, result.HTML)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	return result, nil
}

// ConvertString is Convert for in-memory documents with no path.
func (c *Converter) ConvertString(ctx context.Context, markdown string) (string, error) {
	result, err := c.Convert(ctx, "", []byte(markdown))
	if err != nil {
		return "", err
	}
	return string(result.HTML), nil
}

// splitFrontMatter separates YAML or TOML front matter from the body.
func splitFrontMatter(content []byte) (map[string]any, []byte, error) {
	var matter map[string]any

	body, err := frontmatter.Parse(bytes.NewReader(content), &matter)
	if err != nil {
		return nil, nil, fmt.Errorf("parse front matter: %w", err)
	}
	if len(matter) == 0 {
		matter = nil
	}
	return matter, body, nil
}

func documentTitle(file *mdast.File) string {
	if title, ok := file.Matter["title"].(string); ok && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title)
	}

	heading := mdast.FindFirst(file.Root, func(n *mdast.Node) bool {
		return n.Kind == mdast.KindHeading && n.Block != nil && n.Block.Depth == 1
	})
	if heading != nil {
		if text := strings.TrimSpace(mdast.TextContent(heading)); text != "" {
			return text
		}
	}

	if file.Path == "" {
		return ""
	}
	base := filepath.Base(file.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func documentLang(matter map[string]any) string {
	if lang, ok := matter["lang"].(string); ok && lang != "" {
		return lang
	}
	return "en"
}
