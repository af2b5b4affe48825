package codec

import "bytes"

// Line is a Codec[string, string] for newline-delimited text frames,
// the simplest possible codec and the one a line-echo style handler
// would use to exercise Framed.
type Line struct{}

// Decode implements Decoder[string].
func (Line) Decode(buf *[]byte) (string, bool) {
	b := *buf
	idx := bytes.IndexByte(b, '\n')
	if idx < 0 {
		return "", false
	}

	line := string(bytes.TrimRight(b[:idx], "\r"))
	*buf = append(b[:0], b[idx+1:]...)
	return line, true
}

// Encode implements Encoder[string].
func (Line) Encode(item string, buf *[]byte) {
	*buf = append(*buf, item...)
	*buf = append(*buf, '\n')
}
