package mdast

import "strings"

// NewNode creates a new node of the specified kind with no children.
func NewNode(kind Kind) *Node {
	return &Node{Kind: kind}
}

// NewRoot creates a new document root node.
func NewRoot(children ...*Node) *Node {
	return newParent(KindRoot, children)
}

// NewText creates a text node.
func NewText(value string) *Node {
	return &Node{Kind: KindText, Value: value}
}

// NewHTML creates a raw HTML node.
func NewHTML(value string) *Node {
	return &Node{Kind: KindHTML, Value: value}
}

// NewBreak creates a hard line break node.
func NewBreak() *Node {
	return NewNode(KindBreak)
}

// NewParagraph creates a paragraph holding the given inline nodes.
func NewParagraph(children ...*Node) *Node {
	return newParent(KindParagraph, children)
}

// NewBlockquote creates a blockquote holding the given block nodes.
func NewBlockquote(children ...*Node) *Node {
	return newParent(KindBlockquote, children)
}

// NewHeading creates a heading of the given depth.
func NewHeading(depth int, children ...*Node) *Node {
	node := newParent(KindHeading, children)
	node.Block = NewBlockAttrs().WithDepth(depth)
	return node
}

func newParent(kind Kind, children []*Node) *Node {
	node := NewNode(kind)
	for _, child := range children {
		AppendChild(node, child)
	}
	return node
}

// AppendChild appends a child node to a parent.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	parent.Children = append(parent.Children, child)
}

// PrependChild inserts a child node before the parent's existing children.
func PrependChild(parent, child *Node) {
	InsertChild(parent, 0, child)
}

// InsertChild inserts child at index, shifting later children down.
// An index past the end appends; a negative index prepends.
func InsertChild(parent *Node, index int, child *Node) {
	if parent == nil || child == nil {
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= len(parent.Children) {
		parent.Children = append(parent.Children, child)
		return
	}
	parent.Children = append(parent.Children, nil)
	copy(parent.Children[index+1:], parent.Children[index:])
	parent.Children[index] = child
}

// RemoveChild removes and returns the child at index, or nil when out of range.
func RemoveChild(parent *Node, index int) *Node {
	if parent == nil || index < 0 || index >= len(parent.Children) {
		return nil
	}
	removed := parent.Children[index]
	copy(parent.Children[index:], parent.Children[index+1:])
	parent.Children[len(parent.Children)-1] = nil
	parent.Children = parent.Children[:len(parent.Children)-1]
	return removed
}

// ReplaceChild replaces the child at index and returns the old one.
func ReplaceChild(parent *Node, index int, child *Node) *Node {
	if parent == nil || child == nil || index < 0 || index >= len(parent.Children) {
		return nil
	}
	old := parent.Children[index]
	parent.Children[index] = child
	return old
}

// IndexOf returns the position of child within parent, or -1.
func IndexOf(parent, child *Node) int {
	if parent == nil {
		return -1
	}
	for idx, candidate := range parent.Children {
		if candidate == child {
			return idx
		}
	}
	return -1
}

// Clone returns a deep copy of the subtree rooted at n.
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}

	clone := &Node{
		Kind:  n.Kind,
		Value: n.Value,
		Data:  n.Data.Clone(),
	}

	if n.Block != nil {
		block := *n.Block
		if n.Block.List != nil {
			list := *n.Block.List
			if list.Checked != nil {
				checked := *list.Checked
				list.Checked = &checked
			}
			block.List = &list
		}
		if n.Block.Code != nil {
			code := *n.Block.Code
			block.Code = &code
		}
		if n.Block.Align != nil {
			block.Align = append([]Align(nil), n.Block.Align...)
		}
		clone.Block = &block
	}

	if n.Inline != nil {
		inline := *n.Inline
		if n.Inline.Link != nil {
			link := *n.Inline.Link
			inline.Link = &link
		}
		clone.Inline = &inline
	}

	if n.Position != nil {
		pos := *n.Position
		clone.Position = &pos
	}

	if n.Children != nil {
		clone.Children = make([]*Node, len(n.Children))
		for idx, child := range n.Children {
			clone.Children[idx] = Clone(child)
		}
	}

	return clone
}

// TextContent concatenates the values of all text-like descendants of n.
func TextContent(n *Node) string {
	var builder strings.Builder

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(n, func(node *Node) error {
		switch node.Kind {
		case KindText, KindInlineCode:
			builder.WriteString(node.Value)
		case KindBreak:
			builder.WriteByte('\n')
		}
		return nil
	})

	return builder.String()
}
