package mdast

// Point is a location in a source file.
// Line and Column are 1-based; Column counts bytes. Offset is 0-based.
type Point struct {
	Line   int
	Column int
	Offset int
}

// IsValid returns true if this point has valid (positive) line and column.
func (p Point) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// SourcePosition is the span a node covers in its source.
type SourcePosition struct {
	Start Point
	End   Point
}

// IsValid returns true if both start and end are valid.
func (sp SourcePosition) IsValid() bool {
	return sp.Start.IsValid() && sp.End.IsValid()
}

// IsSingleLine returns true if start and end are on the same line.
func (sp SourcePosition) IsSingleLine() bool {
	return sp.Start.Line == sp.End.Line
}

// Len returns the byte length of the span.
func (sp SourcePosition) Len() int {
	return sp.End.Offset - sp.Start.Offset
}

// Contains returns true if the given offset is within the span.
func (sp SourcePosition) Contains(offset int) bool {
	return offset >= sp.Start.Offset && offset < sp.End.Offset
}

// PositionFor builds a SourcePosition for the byte range [start, end) of f.
// It returns nil when the range falls outside the file.
func (f *File) PositionFor(start, end int) *SourcePosition {
	if f == nil || start < 0 || end < start || end > len(f.Content) {
		return nil
	}

	startLine, startCol := f.LineAt(start)
	endLine, endCol := f.LineAt(end)

	return &SourcePosition{
		Start: Point{Line: startLine, Column: startCol, Offset: start},
		End:   Point{Line: endLine, Column: endCol, Offset: end},
	}
}

// Text returns the source text covered by n, or nil if n has no position.
func (f *File) Text(n *Node) []byte {
	if f == nil || n == nil || n.Position == nil {
		return nil
	}

	start, end := n.Position.Start.Offset, n.Position.End.Offset
	if start < 0 || end > len(f.Content) || start > end {
		return nil
	}

	return f.Content[start:end]
}
