package httpproto

import "github.com/coreflux/reactor/codec"

// Codec adapts ParseRequest/Encode to codec.Codec[*Request,
// OutgoingResponse], letting a transport.Framed speak HTTP/1.x
// requests in and OutgoingResponse out over its shared buffer.
type Codec struct {
	// MaxHeaders bounds how many headers a decoded Request may carry.
	// Zero means DefaultMaxHeaders.
	MaxHeaders int
}

// Decode implements codec.Decoder[*Request].
func (c Codec) Decode(buf *[]byte) (*Request, bool) {
	req, n, ok := ParseRequest(*buf, c.MaxHeaders)
	if !ok {
		return nil, false
	}
	*buf = append((*buf)[:0], (*buf)[n:]...)
	return req, true
}

// Encode implements codec.Encoder[OutgoingResponse].
func (c Codec) Encode(resp OutgoingResponse, buf *[]byte) {
	b, err := Encode(*buf, resp)
	if err != nil {
		// A handler produced a malformed header; Framed's Sink
		// interface has no side channel for reporting that, so fall
		// back to a bare 500 rather than writing nothing at all.
		b, _ = Encode(*buf, (&CodeError{Code: 500, Text: "Internal Server Error"}).Response())
	}
	*buf = b
}

var _ codec.Codec[*Request, OutgoingResponse] = Codec{}
