package mdast

import (
	"bytes"
	"sort"
)

// BuildLines indexes the lines of content. A CRLF ending is recorded as
// a two-byte newline. Content ending in a newline has a final empty line.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	lines := make([]LineInfo, 0, bytes.Count(content, []byte{'\n'})+1)
	start := 0
	for start <= len(content) {
		idx := bytes.IndexByte(content[start:], '\n')
		if idx < 0 {
			lines = append(lines, LineInfo{StartOffset: start, NewlineStart: len(content), EndOffset: len(content)})
			break
		}

		newline := start + idx
		body := newline
		if body > start && content[body-1] == '\r' {
			body--
		}
		lines = append(lines, LineInfo{StartOffset: start, NewlineStart: body, EndOffset: newline + 1})
		start = newline + 1
	}

	return lines
}

// LineCount returns the number of indexed lines.
func (f *File) LineCount() int {
	return len(f.Lines)
}

// LineAt maps a byte offset to a 1-based line and byte column.
// Offsets at or past the end land on the last line; a negative offset
// yields (0, 0).
func (f *File) LineAt(offset int) (int, int) {
	if offset < 0 || len(f.Lines) == 0 {
		return 0, 0
	}

	idx := sort.Search(len(f.Lines), func(i int) bool {
		return f.Lines[i].EndOffset > offset
	})
	if idx == len(f.Lines) {
		idx--
	}

	return idx + 1, offset - f.Lines[idx].StartOffset + 1
}

// LineContent returns line n (1-based) without its newline, or nil.
func (f *File) LineContent(n int) []byte {
	if n < 1 || n > len(f.Lines) {
		return nil
	}
	info := f.Lines[n-1]
	return f.Content[info.StartOffset:info.NewlineStart]
}
