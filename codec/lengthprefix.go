package codec

import "encoding/binary"

// LengthPrefix is a Codec[[]byte, []byte] for frames shaped as a
// 4-byte big-endian length prefix followed by that many payload
// bytes. It is the reference codec used by the Framed round-trip
// property test: writing a sequence of frames through a Framed sink
// and reading them back through the same Framed's Pollable side must
// reproduce the original sequence.
type LengthPrefix struct{}

const lengthPrefixSize = 4

// Decode implements Decoder[[]byte].
func (LengthPrefix) Decode(buf *[]byte) ([]byte, bool) {
	b := *buf
	if len(b) < lengthPrefixSize {
		return nil, false
	}
	n := binary.BigEndian.Uint32(b[:lengthPrefixSize])
	total := lengthPrefixSize + int(n)
	if len(b) < total {
		return nil, false
	}

	payload := make([]byte, n)
	copy(payload, b[lengthPrefixSize:total])

	*buf = append(b[:0], b[total:]...)
	return payload, true
}

// Encode implements Encoder[[]byte].
func (LengthPrefix) Encode(item []byte, buf *[]byte) {
	var prefix [lengthPrefixSize]byte
	binary.BigEndian.PutUint32(prefix[:], uint32(len(item)))
	*buf = append(*buf, prefix[:]...)
	*buf = append(*buf, item...)
}
