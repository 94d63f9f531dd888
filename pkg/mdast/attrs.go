package mdast

// BlockAttrs holds attributes for block-level nodes.
type BlockAttrs struct {
	// Depth is the heading level (1-6) for KindHeading.
	Depth int

	// List holds list-specific attributes for KindList and KindListItem.
	List *ListAttrs

	// Code holds code block attributes for KindCode.
	Code *CodeAttrs

	// Align holds column alignment for KindTable.
	Align []Align
}

// ListAttrs holds attributes for list and list item nodes.
type ListAttrs struct {
	// Ordered is true for ordered lists (1., 2., etc.).
	Ordered bool

	// Start is the starting number for ordered lists.
	Start int

	// Spread is false for tight lists (no blank lines between items).
	Spread bool

	// Checked is the task state of a list item; nil when it is not a task.
	Checked *bool
}

// CodeAttrs holds attributes for code block nodes.
type CodeAttrs struct {
	// Lang is the first word of the info string.
	Lang string

	// Meta is the rest of the info string.
	Meta string

	// Fenced is false for indented code blocks.
	Fenced bool
}

// Align is the alignment of a table column.
type Align string

const (
	AlignNone   Align = ""
	AlignLeft   Align = "left"
	AlignRight  Align = "right"
	AlignCenter Align = "center"
)

// InlineAttrs holds attributes for inline-level nodes.
type InlineAttrs struct {
	// Link holds link attributes for KindLink and KindImage.
	Link *LinkAttrs
}

// LinkAttrs holds attributes for link and image nodes.
type LinkAttrs struct {
	// Destination is the link URL.
	Destination string

	// Title is the optional link title.
	Title string

	// Alt is the plain-text alternative of an image.
	Alt string

	// Autolink is true for <https://example.com> style links.
	Autolink bool
}

// NewBlockAttrs creates a new BlockAttrs with default values.
func NewBlockAttrs() *BlockAttrs {
	return &BlockAttrs{}
}

// NewInlineAttrs creates a new InlineAttrs with default values.
func NewInlineAttrs() *InlineAttrs {
	return &InlineAttrs{}
}

// WithDepth sets the heading depth and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithDepth(depth int) *BlockAttrs {
	a.Depth = depth
	return a
}

// WithList sets list attributes and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithList(attrs *ListAttrs) *BlockAttrs {
	a.List = attrs
	return a
}

// WithCode sets code block attributes and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithCode(attrs *CodeAttrs) *BlockAttrs {
	a.Code = attrs
	return a
}

// WithAlign sets table alignment and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithAlign(align []Align) *BlockAttrs {
	a.Align = align
	return a
}

// WithLink sets link attributes and returns the InlineAttrs for chaining.
func (a *InlineAttrs) WithLink(attrs *LinkAttrs) *InlineAttrs {
	a.Link = attrs
	return a
}
