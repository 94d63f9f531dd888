package mdast

// Kind identifies the type of an AST node.
// The set is open: parsers may produce kinds not listed here and the
// traversal engine treats them like any other tag.
type Kind string

// Node kinds for block-level and inline-level Markdown elements.
// Names follow the mdast vocabulary.
const (
	KindRoot Kind = "root"

	// Block-level nodes.
	KindParagraph     Kind = "paragraph"
	KindHeading       Kind = "heading"
	KindThematicBreak Kind = "thematicBreak"
	KindBlockquote    Kind = "blockquote"
	KindList          Kind = "list"
	KindListItem      Kind = "listItem"
	KindCode          Kind = "code"
	KindTable         Kind = "table"
	KindTableRow      Kind = "tableRow"
	KindTableCell     Kind = "tableCell"

	// HTML is used for both raw HTML blocks and inline HTML.
	KindHTML Kind = "html"

	// Inline-level nodes.
	KindText       Kind = "text"
	KindEmphasis   Kind = "emphasis"
	KindStrong     Kind = "strong"
	KindDelete     Kind = "delete"
	KindInlineCode Kind = "inlineCode"
	KindBreak      Kind = "break"
	KindLink       Kind = "link"
	KindImage      Kind = "image"

	// Fallback for unrecognized content.
	KindRaw Kind = "raw"
)

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// Node represents a single node in the Markdown AST.
type Node struct {
	// Kind identifies what type of node this is.
	Kind Kind

	// Children holds the ordered child nodes of container kinds.
	Children []*Node

	// Value holds the literal content of text, html, code and inlineCode nodes.
	Value string

	// Block holds attributes for block-level nodes.
	Block *BlockAttrs

	// Inline holds attributes for inline-level nodes.
	Inline *InlineAttrs

	// Position locates the node in its source, if known.
	Position *SourcePosition

	// Data carries rendering hints for a downstream renderer.
	Data *Data
}

// NodeType returns the node's type tag.
func (n *Node) NodeType() string {
	return string(n.Kind)
}

// ChildNodes returns the live children slice.
func (n *Node) ChildNodes() []*Node {
	return n.Children
}

// Is reports whether the node is non-nil and of the given kind.
func (n *Node) Is(kind Kind) bool {
	return n != nil && n.Kind == kind
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case KindRoot, KindParagraph, KindHeading, KindThematicBreak, KindBlockquote,
		KindList, KindListItem, KindCode, KindTable, KindTableRow, KindTableCell:
		return true
	default:
		return false
	}
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	switch n.Kind {
	case KindText, KindEmphasis, KindStrong, KindDelete, KindInlineCode,
		KindBreak, KindLink, KindImage:
		return true
	default:
		return false
	}
}

// IsLiteral returns true if the node carries its content in Value.
func (n *Node) IsLiteral() bool {
	switch n.Kind {
	case KindText, KindHTML, KindCode, KindInlineCode:
		return true
	default:
		return false
	}
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	return len(n.Children)
}

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// ChildAt returns the child at index, or nil when out of range.
func (n *Node) ChildAt(index int) *Node {
	if index < 0 || index >= len(n.Children) {
		return nil
	}
	return n.Children[index]
}

// Property exposes node fields by their mdast names for property-map tests.
func (n *Node) Property(name string) (any, bool) {
	switch name {
	case "type":
		return string(n.Kind), true
	case "value":
		if n.IsLiteral() {
			return n.Value, true
		}
	case "depth":
		if n.Kind == KindHeading && n.Block != nil {
			return n.Block.Depth, true
		}
	case "ordered":
		if n.Kind == KindList && n.Block != nil && n.Block.List != nil {
			return n.Block.List.Ordered, true
		}
	case "lang":
		if n.Kind == KindCode && n.Block != nil && n.Block.Code != nil {
			return n.Block.Code.Lang, true
		}
	case "url":
		if n.Inline != nil && n.Inline.Link != nil {
			return n.Inline.Link.Destination, true
		}
	}
	return nil, false
}
