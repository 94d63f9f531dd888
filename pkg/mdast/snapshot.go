// Package mdast defines the Markdown syntax tree that admonish parses into,
// transforms and renders. Nodes follow the mdast vocabulary: each has a
// type tag, an ordered child list and optional rendering hints in Data.
package mdast

// File is a parsed Markdown document together with its source.
type File struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the Markdown body, without any front matter.
	Content []byte

	// Lines contains metadata for each line in Content.
	Lines []LineInfo

	// Root is the document root node.
	Root *Node

	// Matter holds decoded front matter, or nil when the file has none.
	Matter map[string]any
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewFile creates a File for content with its line index built.
// Root is left nil; a parser fills it in.
func NewFile(path string, content []byte) *File {
	return &File{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}
