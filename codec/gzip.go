package codec

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Gzip decorates a byte-frame Codec so that every encoded frame is
// gzip-compressed and every decoded frame is transparently
// decompressed, giving handlers an opt-in Content-Encoding: gzip
// without Framed itself knowing about compression.
type Gzip struct {
	Inner Codec[[]byte, []byte]
}

// Decode implements Decoder[[]byte].
func (g Gzip) Decode(buf *[]byte) ([]byte, bool) {
	compressed, ok := g.Inner.Decode(buf)
	if !ok {
		return nil, false
	}
	r, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, false
	}
	defer r.Close()
	plain, err := io.ReadAll(r)
	if err != nil {
		return nil, false
	}
	return plain, true
}

// Encode implements Encoder[[]byte].
func (g Gzip) Encode(item []byte, buf *[]byte) {
	var compressed bytes.Buffer
	w := gzip.NewWriter(&compressed)
	_, _ = w.Write(item)
	_ = w.Close()
	g.Inner.Encode(compressed.Bytes(), buf)
}
