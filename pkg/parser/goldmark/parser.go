// Package goldmark parses Markdown into the mdast tree using goldmark.
package goldmark

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/admonish/pkg/mdast"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Flavors lists the accepted flavor names.
func Flavors() []string {
	return []string{FlavorCommonMark, FlavorGFM}
}

// Parser turns Markdown source into an mdast.File.
// A Parser is safe for concurrent use.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a new goldmark-based parser for the given flavor.
// Supported flavors are "commonmark" and "gfm".
// Invalid flavors default to "gfm".
func New(flavor string) *Parser {
	f := flavorOrDefault(flavor)
	return &Parser{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse converts raw Markdown bytes into a File with its tree built.
// Returns nil and an error if the context is cancelled.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*mdast.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	file := mdast.NewFile(path, copyContent(content))

	reader := text.NewReader(file.Content)
	gmDoc := p.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	file.Root = newMapper(file).mapDocument(gmDoc)

	return file, nil
}

// IsValidFlavor reports whether flavor names a supported flavor.
func IsValidFlavor(flavor string) bool {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return true
	default:
		return false
	}
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to GFM.
func flavorOrDefault(flavor string) string {
	if IsValidFlavor(flavor) {
		return flavor
	}
	return FlavorGFM
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option

	switch flavor {
	case FlavorGFM:
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	case FlavorCommonMark:
		// No extensions for pure CommonMark.
	}

	return goldmark.New(opts...)
}

// copyContent creates a copy of the content slice so the tree never aliases
// caller memory.
func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
