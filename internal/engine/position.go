package engine

import "bytes"

// LineColumn converts a byte offset in doc into a 1-based line and column.
// Columns count bytes, like most JSON tooling. Offsets outside doc yield 0, 0.
func LineColumn(doc []byte, offset int64) (line, col int) {
	if offset < 0 || offset > int64(len(doc)) {
		return 0, 0
	}
	head := doc[:offset]
	line = bytes.Count(head, []byte{'\n'}) + 1
	if i := bytes.LastIndexByte(head, '\n'); i >= 0 {
		col = len(head) - i
	} else {
		col = len(head) + 1
	}
	return line, col
}

// SkipSpace returns the offset of the first non-whitespace byte at or after
// off, as defined by JSON (space, tab, CR, LF).
func SkipSpace(doc []byte, off int64) int64 {
	for off >= 0 && off < int64(len(doc)) {
		switch doc[off] {
		case ' ', '\t', '\r', '\n':
			off++
		default:
			return off
		}
	}
	return off
}
