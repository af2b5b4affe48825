package codec

import (
	"bytes"
	"io"

	"github.com/andybalholm/brotli"
)

// Brotli decorates a byte-frame Codec the same way Gzip does, for
// handlers that prefer Content-Encoding: br.
type Brotli struct {
	Inner Codec[[]byte, []byte]
}

// Decode implements Decoder[[]byte].
func (b Brotli) Decode(buf *[]byte) ([]byte, bool) {
	compressed, ok := b.Inner.Decode(buf)
	if !ok {
		return nil, false
	}
	plain, err := io.ReadAll(brotli.NewReader(bytes.NewReader(compressed)))
	if err != nil {
		return nil, false
	}
	return plain, true
}

// Encode implements Encoder[[]byte].
func (b Brotli) Encode(item []byte, buf *[]byte) {
	var compressed bytes.Buffer
	w := brotli.NewWriter(&compressed)
	_, _ = w.Write(item)
	_ = w.Close()
	b.Inner.Encode(compressed.Bytes(), buf)
}
