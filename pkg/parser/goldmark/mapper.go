package goldmark

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/admonish/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast.Node tree.
//
// Goldmark splits text at every delimiter it considers (so "[!NOTE]" arrives
// as "[", "!NOTE" and "]") and records line breaks as flags on text nodes.
// The mapper merges adjacent text, turns soft breaks into "\n" inside the
// text value and hard breaks into break nodes, giving the same inline shape
// a remark parser would produce.
type mapper struct {
	file    *mdast.File
	content []byte
}

// newMapper creates a new mapper for the given file.
func newMapper(file *mdast.File) *mapper {
	return &mapper{file: file, content: file.Content}
}

// mapDocument converts a goldmark document node to an mdast.Node tree.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	root := mdast.NewRoot()
	m.mapChildren(gmDoc, root)
	root.Position = m.file.PositionFor(0, len(m.content))
	return root
}

// mapChildren maps all children of a goldmark node onto parent.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		switch gmn := child.(type) {
		case *ast.Text:
			m.appendText(parent, gmn)
		case *ast.String:
			m.appendString(parent, gmn)
		case *east.TaskCheckBox:
			// Recorded on the list item by mapListItem.
		default:
			if node := m.mapNode(child); node != nil {
				mdast.AppendChild(parent, node)
			}
		}
	}
}

// mapNode converts a single goldmark node to an mdast.Node.
func (m *mapper) mapNode(gmNode ast.Node) *mdast.Node {
	var node *mdast.Node

	switch gmn := gmNode.(type) {
	// Block-level nodes.
	case *ast.Heading:
		node = mdast.NewHeading(gmn.Level)
		m.mapChildren(gmn, node)

	case *ast.Paragraph, *ast.TextBlock:
		node = mdast.NewParagraph()
		m.mapChildren(gmNode, node)

	case *ast.List:
		node = m.mapList(gmn)

	case *ast.ListItem:
		node = m.mapListItem(gmn)

	case *ast.Blockquote:
		node = mdast.NewBlockquote()
		m.mapChildren(gmNode, node)

	case *ast.FencedCodeBlock:
		node = m.mapFencedCodeBlock(gmn)

	case *ast.CodeBlock:
		node = mdast.NewNode(mdast.KindCode)
		node.Block = mdast.NewBlockAttrs().WithCode(&mdast.CodeAttrs{})
		node.Value = m.linesValue(gmn)

	case *ast.ThematicBreak:
		node = mdast.NewNode(mdast.KindThematicBreak)

	case *ast.HTMLBlock:
		node = m.mapHTMLBlock(gmn)

	// Inline-level nodes.
	case *ast.Emphasis:
		if gmn.Level == 2 {
			node = mdast.NewNode(mdast.KindStrong)
		} else {
			node = mdast.NewNode(mdast.KindEmphasis)
		}
		m.mapChildren(gmn, node)

	case *ast.CodeSpan:
		node = m.mapCodeSpan(gmn)

	case *ast.Link:
		node = mdast.NewNode(mdast.KindLink)
		node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
			Destination: string(gmn.Destination),
			Title:       string(gmn.Title),
		})
		m.mapChildren(gmn, node)

	case *ast.Image:
		node = m.mapImage(gmn)

	case *ast.AutoLink:
		node = m.mapAutoLink(gmn)

	case *ast.RawHTML:
		node = mdast.NewHTML(string(m.segmentsValue(gmn.Segments)))

	// GFM extension nodes.
	case *east.Strikethrough:
		node = mdast.NewNode(mdast.KindDelete)
		m.mapChildren(gmn, node)

	case *east.Table:
		node = m.mapTable(gmn)

	case *east.TableHeader:
		node = mdast.NewNode(mdast.KindTableRow)
		node.EnsureData().Ext = map[string]any{mdast.ExtKeyHeader: true}
		m.mapChildren(gmn, node)

	case *east.TableRow:
		node = mdast.NewNode(mdast.KindTableRow)
		m.mapChildren(gmn, node)

	case *east.TableCell:
		node = mdast.NewNode(mdast.KindTableCell)
		m.mapChildren(gmn, node)

	default:
		// Fallback for unknown node types.
		node = mdast.NewNode(mdast.KindRaw)
		m.mapChildren(gmNode, node)
	}

	if gmNode.Type() == ast.TypeBlock {
		if start, end, ok := m.blockSpan(gmNode); ok {
			for end > start && (m.content[end-1] == '\n' || m.content[end-1] == '\r') {
				end--
			}
			node.Position = m.file.PositionFor(start, end)
		}
	}

	return node
}

// appendText adds a goldmark text segment to parent, merging it into a
// preceding text node when there is one.
func (m *mapper) appendText(parent *mdast.Node, textNode *ast.Text) {
	raw := textNode.Value(m.content)
	if textNode.SoftLineBreak() || textNode.HardLineBreak() {
		raw = bytes.TrimRight(raw, " \t")
	}

	value := string(raw)
	if !textNode.IsRaw() {
		value = unescape(raw)
	}
	if textNode.SoftLineBreak() && !textNode.HardLineBreak() {
		value += "\n"
	}

	m.appendValue(parent, value, textNode.Segment.Start, textNode.Segment.Stop)

	if textNode.HardLineBreak() {
		mdast.AppendChild(parent, mdast.NewBreak())
	}
}

// appendString adds a goldmark String node, which carries its own bytes.
func (m *mapper) appendString(parent *mdast.Node, s *ast.String) {
	value := string(s.Value)
	if !s.IsRaw() && !s.IsCode() {
		value = unescape(s.Value)
	}
	m.appendValue(parent, value, -1, -1)
}

func (m *mapper) appendValue(parent *mdast.Node, value string, start, stop int) {
	if count := len(parent.Children); count > 0 {
		if last := parent.Children[count-1]; last.Kind == mdast.KindText {
			last.Value += value
			if last.Position != nil && stop >= 0 {
				if pos := m.file.PositionFor(last.Position.Start.Offset, stop); pos != nil {
					last.Position = pos
				}
			}
			return
		}
	}

	node := mdast.NewText(value)
	if start >= 0 {
		node.Position = m.file.PositionFor(start, stop)
	}
	mdast.AppendChild(parent, node)
}

// mapList converts a goldmark List to an mdast node.
func (m *mapper) mapList(list *ast.List) *mdast.Node {
	node := mdast.NewNode(mdast.KindList)
	node.Block = mdast.NewBlockAttrs().WithList(&mdast.ListAttrs{
		Ordered: list.IsOrdered(),
		Start:   list.Start,
		Spread:  !list.IsTight,
	})
	m.mapChildren(list, node)
	return node
}

// mapListItem converts a list item, lifting a GFM task checkbox into the
// item's attributes.
func (m *mapper) mapListItem(item *ast.ListItem) *mdast.Node {
	node := mdast.NewNode(mdast.KindListItem)
	attrs := &mdast.ListAttrs{}

	if first := item.FirstChild(); first != nil {
		if box, ok := first.FirstChild().(*east.TaskCheckBox); ok {
			checked := box.IsChecked
			attrs.Checked = &checked
		}
	}
	if parent, ok := item.Parent().(*ast.List); ok {
		attrs.Spread = !parent.IsTight
	}

	node.Block = mdast.NewBlockAttrs().WithList(attrs)
	m.mapChildren(item, node)

	if attrs.Checked != nil {
		// The text after "[x]" starts with the separating space.
		if para := node.FirstChild(); para.Is(mdast.KindParagraph) {
			if lead := para.FirstChild(); lead.Is(mdast.KindText) {
				lead.Value = strings.TrimLeft(lead.Value, " \t")
			}
		}
	}

	return node
}

// mapFencedCodeBlock converts a goldmark FencedCodeBlock to an mdast node.
func (m *mapper) mapFencedCodeBlock(codeBlock *ast.FencedCodeBlock) *mdast.Node {
	node := mdast.NewNode(mdast.KindCode)

	attrs := &mdast.CodeAttrs{Fenced: true}
	if codeBlock.Info != nil {
		info := strings.TrimSpace(unescape(codeBlock.Info.Value(m.content)))
		lang, meta, _ := strings.Cut(info, " ")
		attrs.Lang = lang
		attrs.Meta = strings.TrimSpace(meta)
	}

	node.Block = mdast.NewBlockAttrs().WithCode(attrs)
	node.Value = m.linesValue(codeBlock)
	return node
}

// mapHTMLBlock keeps an HTML block verbatim, closing line included.
func (m *mapper) mapHTMLBlock(block *ast.HTMLBlock) *mdast.Node {
	var buf bytes.Buffer

	lines := block.Lines()
	for i := range lines.Len() {
		segment := lines.At(i)
		buf.Write(segment.Value(m.content))
	}
	if block.HasClosure() {
		buf.Write(block.ClosureLine.Value(m.content))
	}

	return mdast.NewHTML(strings.TrimRight(buf.String(), "\n"))
}

// mapCodeSpan converts a goldmark CodeSpan; line endings become spaces.
func (m *mapper) mapCodeSpan(codeSpan *ast.CodeSpan) *mdast.Node {
	var buf bytes.Buffer

	for child := codeSpan.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			buf.Write(c.Value(m.content))
			if c.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(c.Value)
		}
	}

	node := mdast.NewNode(mdast.KindInlineCode)
	node.Value = strings.ReplaceAll(buf.String(), "\n", " ")
	return node
}

// mapImage converts an image; its inline content becomes the alt text.
func (m *mapper) mapImage(img *ast.Image) *mdast.Node {
	alt := mdast.NewParagraph()
	m.mapChildren(img, alt)

	node := mdast.NewNode(mdast.KindImage)
	node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
		Destination: string(img.Destination),
		Title:       string(img.Title),
		Alt:         mdast.TextContent(alt),
	})
	return node
}

// mapAutoLink converts a goldmark AutoLink to a link with a text child.
func (m *mapper) mapAutoLink(al *ast.AutoLink) *mdast.Node {
	url := string(al.URL(m.content))
	dest := url
	if al.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
		dest = "mailto:" + url
	}

	node := mdast.NewNode(mdast.KindLink)
	node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
		Destination: dest,
		Autolink:    true,
	})
	mdast.AppendChild(node, mdast.NewText(string(al.Label(m.content))))
	return node
}

// mapTable converts a GFM Table, keeping column alignment.
func (m *mapper) mapTable(table *east.Table) *mdast.Node {
	align := make([]mdast.Align, 0, len(table.Alignments))
	for _, a := range table.Alignments {
		switch a {
		case east.AlignLeft:
			align = append(align, mdast.AlignLeft)
		case east.AlignRight:
			align = append(align, mdast.AlignRight)
		case east.AlignCenter:
			align = append(align, mdast.AlignCenter)
		default:
			align = append(align, mdast.AlignNone)
		}
	}

	node := mdast.NewNode(mdast.KindTable)
	node.Block = mdast.NewBlockAttrs().WithAlign(align)
	m.mapChildren(table, node)
	return node
}

// linesValue joins the raw lines of a block and drops the final newline.
func (m *mapper) linesValue(block ast.Node) string {
	var buf bytes.Buffer

	lines := block.Lines()
	for i := range lines.Len() {
		segment := lines.At(i)
		buf.Write(segment.Value(m.content))
	}

	return strings.TrimSuffix(buf.String(), "\n")
}

func (m *mapper) segmentsValue(segments *text.Segments) []byte {
	var buf bytes.Buffer
	for i := range segments.Len() {
		segment := segments.At(i)
		buf.Write(segment.Value(m.content))
	}
	return buf.Bytes()
}

// blockSpan returns the byte range covered by a block node: its own lines
// when it has any, otherwise the union of its children's spans.
func (m *mapper) blockSpan(gmNode ast.Node) (int, int, bool) {
	if gmNode.Type() == ast.TypeBlock {
		if lines := gmNode.Lines(); lines != nil && lines.Len() > 0 {
			return lines.At(0).Start, lines.At(lines.Len() - 1).Stop, true
		}
	}

	start, end, found := 0, 0, false
	for child := gmNode.FirstChild(); child != nil; child = child.NextSibling() {
		var cs, ce int
		var ok bool
		switch c := child.(type) {
		case *ast.Text:
			cs, ce, ok = c.Segment.Start, c.Segment.Stop, true
		default:
			cs, ce, ok = m.blockSpan(child)
		}
		if !ok {
			continue
		}
		if !found || cs < start {
			start = cs
		}
		if !found || ce > end {
			end = ce
		}
		found = true
	}

	return start, end, found
}

// unescape resolves backslash escapes and character references.
func unescape(raw []byte) string {
	value := util.UnescapePunctuations(raw)
	value = util.ResolveNumericReferences(value)
	value = util.ResolveEntityNames(value)
	return string(value)
}
