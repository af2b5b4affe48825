package httpproto

import "bytes"

// This file implements the byte-level parsers for the two lines a
// request or response is built from: the start line (request line or
// status line, both a three-field "token SP token SP rest" shape) and
// a single header line. Both work purely on offsets into a caller-
// owned buffer — nothing here allocates or retains a reference to the
// input, so the same buffer can be reused across Decode calls.
//
// The reference parser represents this as a state machine that is
// consumed field by field (mem::replace(self, Done) in the original);
// in Go there is no ownership dance to do, so the equivalent logic is
// a straight-line walk over an integer cursor instead.

type span struct{ begin, end int }

func (s span) slice(buf []byte) []byte { return buf[s.begin:s.end] }

func indexByteOf(data []byte, set string) int {
	return bytes.IndexAny(data, set)
}

// skipRun returns the number of leading bytes of data that are in set.
func skipRun(data []byte, set string) int {
	i := 0
	for i < len(data) && bytes.IndexByte([]byte(set), data[i]) >= 0 {
		i++
	}
	return i
}

// skipNewline mirrors the reference implementation exactly: it looks
// for the first '\r' and, independently, the first '\n' in data, and
// skips past the '\n' if there is one, otherwise past the '\r' (so a
// well-formed CRLF skips both bytes and a bare LF skips one; a bare CR
// skips just itself only when no '\n' appears later in data).
func skipNewline(data []byte) int {
	skip := 0
	for i, b := range data {
		if b == '\r' {
			skip = i + 1
			break
		}
	}
	for i, b := range data {
		if b == '\n' {
			skip = i + 1
			break
		}
	}
	return skip
}

func headerLineEmpty(data []byte) bool {
	return (len(data) > 0 && data[0] == '\n') ||
		(len(data) > 1 && data[0] == '\r' && data[1] == '\n')
}

// parseStartLine parses a "field SP field SP field CRLF" line from
// the front of full, returning the three field spans and the absolute
// offset of the byte following the line's terminator. It is shared by
// request lines (method, path, version) and status lines (version,
// code, text) since both have the same shape.
func parseStartLine(full []byte) (first, second, third span, end int, ok bool) {
	pos := 0

	i := indexByteOf(full[pos:], " \t")
	if i < 0 {
		return span{}, span{}, span{}, 0, false
	}
	first = span{pos, pos + i}
	pos += i
	pos += skipRun(full[pos:], " \t")

	i = indexByteOf(full[pos:], " \t")
	if i < 0 {
		return span{}, span{}, span{}, 0, false
	}
	second = span{pos, pos + i}
	pos += i
	pos += skipRun(full[pos:], " \t")

	i = indexByteOf(full[pos:], "\r\n")
	if i < 0 {
		return span{}, span{}, span{}, 0, false
	}
	third = span{pos, pos + i}
	pos += i
	pos += skipNewline(full[pos:])

	return first, second, third, pos, true
}

type headerSpan struct{ name, value span }

// readHeaders parses header lines starting at the absolute offset
// start within full, stopping at the first empty line (end of
// headers). headers must have enough capacity for every header in
// the request; if it doesn't, readHeaders reports ok=false so the
// caller can retry with a larger array once it has decided how many
// headers to allow, rather than panicking as the reference parser
// does on header-array overflow.
func readHeaders(full []byte, start int, headers []headerSpan) (n, end int, ok bool) {
	pos := start
	for {
		if headerLineEmpty(full[pos:]) {
			return n, pos + skipNewline(full[pos:]), true
		}

		i := indexByteOf(full[pos:], ":")
		if i < 0 {
			return 0, 0, false
		}
		name := span{pos, pos + i}
		pos += i
		pos += skipRun(full[pos:], " \t:")

		j := indexByteOf(full[pos:], "\r\n")
		if j < 0 {
			return 0, 0, false
		}
		value := span{pos, pos + j}
		pos += j
		pos += skipNewline(full[pos:])

		if n >= len(headers) {
			return 0, 0, false
		}
		headers[n] = headerSpan{name: name, value: value}
		n++
	}
}
