// Package html renders an mdast tree to HTML.
//
// Each node kind has a default tag. Rendering hints in a node's Data
// override it: HName replaces the tag and HProperties become attributes,
// with className written as class. Transforms use these hints to change
// output without the renderer knowing about them.
package html

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/admonish/pkg/langdetect"
	"github.com/yaklabco/admonish/pkg/mdast"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithRawHTML controls whether html nodes from the document are written
// verbatim (the default) or escaped. When raw HTML is off, links with
// dangerous schemes also lose their href. Trusted html is always written.
func WithRawHTML(allow bool) Option {
	return func(r *Renderer) {
		r.rawHTML = allow
	}
}

// WithLanguageDetection makes code blocks without a language get a class
// guessed by detector. A nil detector disables detection.
func WithLanguageDetection(detector *langdetect.Detector) Option {
	return func(r *Renderer) {
		r.detector = detector
	}
}

// Renderer writes HTML for mdast trees. It is safe for concurrent use.
type Renderer struct {
	rawHTML  bool
	detector *langdetect.Detector
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{rawHTML: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes the HTML for root to w.
func (r *Renderer) Render(w io.Writer, root *mdast.Node) error {
	bw := bufio.NewWriter(w)
	if root != nil {
		r.render(bw, root, nil, false)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	return nil
}

// RenderString renders root and returns the HTML.
func (r *Renderer) RenderString(root *mdast.Node) string {
	var sb strings.Builder
	//nolint:errcheck // strings.Builder never fails
	r.Render(&sb, root)
	return sb.String()
}

// render writes n. tight is true inside items of a tight list, where
// paragraphs lose their <p> wrapper.
//
//nolint:cyclop,funlen // one case per node kind
func (r *Renderer) render(w *bufio.Writer, n, parent *mdast.Node, tight bool) {
	if tag := n.HName(); tag != "" && n.Kind != mdast.KindText && n.Kind != mdast.KindHTML {
		r.renderOverride(w, n, tag, tight)
		return
	}

	switch n.Kind {
	case mdast.KindRoot, mdast.KindRaw:
		r.renderChildren(w, n, tight)

	case mdast.KindParagraph:
		if tight && n.Data == nil {
			r.renderChildren(w, n, tight)
			return
		}
		r.open(w, "p", n)
		r.renderChildren(w, n, tight)
		w.WriteString("</p>\n")

	case mdast.KindHeading:
		tag := "h" + strconv.Itoa(headingDepth(n))
		r.open(w, tag, n)
		r.renderChildren(w, n, false)
		w.WriteString("</" + tag + ">\n")

	case mdast.KindThematicBreak:
		r.open(w, "hr", n)
		w.WriteByte('\n')

	case mdast.KindBlockquote:
		r.open(w, "blockquote", n)
		w.WriteByte('\n')
		r.renderChildren(w, n, false)
		w.WriteString("</blockquote>\n")

	case mdast.KindList:
		r.renderList(w, n)

	case mdast.KindListItem:
		r.renderListItem(w, n, tight)

	case mdast.KindCode:
		r.renderCode(w, n)

	case mdast.KindHTML:
		if r.rawHTML || mdast.IsTrusted(n) {
			w.WriteString(n.Value)
		} else {
			w.Write(util.EscapeHTML([]byte(n.Value)))
		}
		if parent != nil && isContainer(parent.Kind) {
			w.WriteByte('\n')
		}

	case mdast.KindText:
		w.Write(util.EscapeHTML([]byte(n.Value)))

	case mdast.KindEmphasis:
		r.renderInline(w, "em", n)

	case mdast.KindStrong:
		r.renderInline(w, "strong", n)

	case mdast.KindDelete:
		r.renderInline(w, "del", n)

	case mdast.KindInlineCode:
		r.open(w, "code", n)
		w.Write(util.EscapeHTML([]byte(n.Value)))
		w.WriteString("</code>")

	case mdast.KindBreak:
		w.WriteString("<br>\n")

	case mdast.KindLink:
		r.renderLink(w, n)

	case mdast.KindImage:
		r.renderImage(w, n)

	case mdast.KindTable:
		r.renderTable(w, n)

	default:
		r.renderChildren(w, n, tight)
	}
}

func (r *Renderer) renderChildren(w *bufio.Writer, n *mdast.Node, tight bool) {
	// Index loop: children are re-read on every step.
	for i := 0; i < len(n.Children); i++ {
		child := n.Children[i]
		r.render(w, child, n, tight)
		if tight && child.Kind == mdast.KindParagraph && child.Data == nil && i+1 < len(n.Children) {
			w.WriteByte('\n')
		}
	}
}

func (r *Renderer) renderOverride(w *bufio.Writer, n *mdast.Node, tag string, tight bool) {
	block := n.IsBlock()
	r.open(w, tag, n)
	if block {
		w.WriteByte('\n')
	}
	r.renderChildren(w, n, tight && !block)
	w.WriteString("</" + tag + ">")
	if block {
		w.WriteByte('\n')
	}
}

func (r *Renderer) renderInline(w *bufio.Writer, tag string, n *mdast.Node) {
	r.open(w, tag, n)
	r.renderChildren(w, n, false)
	w.WriteString("</" + tag + ">")
}

func (r *Renderer) renderList(w *bufio.Writer, n *mdast.Node) {
	attrs := n.Block
	ordered := attrs != nil && attrs.List != nil && attrs.List.Ordered
	tight := attrs == nil || attrs.List == nil || !attrs.List.Spread

	tag := "ul"
	if ordered {
		tag = "ol"
	}

	w.WriteString("<" + tag)
	if ordered && attrs.List.Start != 1 && attrs.List.Start != 0 {
		w.WriteString(` start="` + strconv.Itoa(attrs.List.Start) + `"`)
	}
	r.writeAttrs(w, n, "")
	w.WriteString(">\n")
	r.renderChildren(w, n, tight)
	w.WriteString("</" + tag + ">\n")
}

func (r *Renderer) renderListItem(w *bufio.Writer, n *mdast.Node, tight bool) {
	var checked *bool
	if n.Block != nil && n.Block.List != nil {
		checked = n.Block.List.Checked
	}

	w.WriteString("<li")
	extra := ""
	if checked != nil {
		extra = "task-list-item"
	}
	r.writeAttrs(w, n, extra)
	w.WriteByte('>')

	if first := n.FirstChild(); first != nil && !(tight && first.Kind == mdast.KindParagraph && first.Data == nil) {
		w.WriteByte('\n')
	}

	if checked != nil {
		if *checked {
			w.WriteString(`<input checked="" disabled="" type="checkbox"> `)
		} else {
			w.WriteString(`<input disabled="" type="checkbox"> `)
		}
	}

	r.renderChildren(w, n, tight)
	w.WriteString("</li>\n")
}

func (r *Renderer) renderCode(w *bufio.Writer, n *mdast.Node) {
	var lang, meta string
	if n.Block != nil && n.Block.Code != nil {
		lang, meta = n.Block.Code.Lang, n.Block.Code.Meta
	}

	class := ""
	switch {
	case lang != "":
		class = langdetect.ClassPrefix + lang
	case r.detector != nil:
		class = langdetect.Class(r.detector.Detect(meta, []byte(n.Value)))
	}

	w.WriteString("<pre><code")
	r.writeAttrs(w, n, class)
	w.WriteByte('>')
	if n.Value != "" {
		w.Write(util.EscapeHTML([]byte(n.Value)))
		w.WriteByte('\n')
	}
	w.WriteString("</code></pre>\n")
}

func (r *Renderer) renderLink(w *bufio.Writer, n *mdast.Node) {
	var link mdast.LinkAttrs
	if n.Inline != nil && n.Inline.Link != nil {
		link = *n.Inline.Link
	}

	w.WriteString(`<a href="`)
	w.Write(r.url(link.Destination))
	w.WriteByte('"')
	if link.Title != "" {
		w.WriteString(` title="`)
		w.Write(util.EscapeHTML([]byte(link.Title)))
		w.WriteByte('"')
	}
	r.writeAttrs(w, n, "")
	w.WriteByte('>')
	r.renderChildren(w, n, false)
	w.WriteString("</a>")
}

func (r *Renderer) renderImage(w *bufio.Writer, n *mdast.Node) {
	var link mdast.LinkAttrs
	if n.Inline != nil && n.Inline.Link != nil {
		link = *n.Inline.Link
	}

	w.WriteString(`<img src="`)
	w.Write(r.url(link.Destination))
	w.WriteString(`" alt="`)
	w.Write(util.EscapeHTML([]byte(link.Alt)))
	w.WriteByte('"')
	if link.Title != "" {
		w.WriteString(` title="`)
		w.Write(util.EscapeHTML([]byte(link.Title)))
		w.WriteByte('"')
	}
	r.writeAttrs(w, n, "")
	w.WriteByte('>')
}

func (r *Renderer) renderTable(w *bufio.Writer, n *mdast.Node) {
	var align []mdast.Align
	if n.Block != nil {
		align = n.Block.Align
	}

	r.open(w, "table", n)
	w.WriteByte('\n')

	body := false
	for _, row := range n.Children {
		header := isHeaderRow(row)
		cell := "td"
		if header {
			cell = "th"
			w.WriteString("<thead>\n")
		} else if !body {
			body = true
			w.WriteString("<tbody>\n")
		}

		w.WriteString("<tr>\n")
		for idx, c := range row.Children {
			w.WriteString("<" + cell)
			if idx < len(align) && align[idx] != mdast.AlignNone {
				w.WriteString(` align="` + string(align[idx]) + `"`)
			}
			r.writeAttrs(w, c, "")
			w.WriteByte('>')
			r.renderChildren(w, c, false)
			w.WriteString("</" + cell + ">\n")
		}
		w.WriteString("</tr>\n")

		if header {
			w.WriteString("</thead>\n")
		}
	}
	if body {
		w.WriteString("</tbody>\n")
	}
	w.WriteString("</table>\n")
}

// open writes "<tag attrs>".
func (r *Renderer) open(w *bufio.Writer, tag string, n *mdast.Node) {
	w.WriteString("<" + tag)
	r.writeAttrs(w, n, "")
	w.WriteByte('>')
}

// writeAttrs writes the node's HProperties. extraClass is merged in front
// of any className hint.
func (r *Renderer) writeAttrs(w *bufio.Writer, n *mdast.Node, extraClass string) {
	classes := extraClass
	if className := n.ClassName(); className != "" {
		if classes != "" {
			classes += " "
		}
		classes += className
	}
	if classes != "" {
		writeAttr(w, "class", classes)
	}

	if n.Data == nil || len(n.Data.HProperties) == 0 {
		return
	}

	keys := make([]string, 0, len(n.Data.HProperties))
	for key := range n.Data.HProperties {
		if key != mdast.PropClassName {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch value := n.Data.HProperties[key].(type) {
		case nil:
		case bool:
			if value {
				w.WriteString(" " + key)
			}
		case []string:
			writeAttr(w, key, strings.Join(value, " "))
		default:
			writeAttr(w, key, fmt.Sprint(value))
		}
	}
}

func writeAttr(w *bufio.Writer, name, value string) {
	w.WriteString(" " + name + `="`)
	w.Write(util.EscapeHTML([]byte(value)))
	w.WriteByte('"')
}

// url escapes a destination, dropping it in safe mode when its scheme is dangerous.
func (r *Renderer) url(dest string) []byte {
	raw := []byte(dest)
	if !r.rawHTML && gmhtml.IsDangerousURL(raw) {
		return nil
	}
	return util.EscapeHTML(util.URLEscape(raw, true))
}

func headingDepth(n *mdast.Node) int {
	if n.Block == nil || n.Block.Depth < 1 {
		return 1
	}
	if n.Block.Depth > 6 {
		return 6
	}
	return n.Block.Depth
}

func isHeaderRow(row *mdast.Node) bool {
	if row.Data == nil {
		return false
	}
	header, _ := row.Data.Ext[mdast.ExtKeyHeader].(bool)
	return header
}

// isContainer reports whether children of kind are blocks.
func isContainer(kind mdast.Kind) bool {
	switch kind {
	case mdast.KindRoot, mdast.KindBlockquote, mdast.KindListItem, mdast.KindRaw:
		return true
	default:
		return false
	}
}
