package codec

import "github.com/vmihailenco/msgpack/v5"

// MsgPack is a Codec[T, T] for arbitrary structured values, framed
// with the same 4-byte length prefix as LengthPrefix so a short read
// never hands a partial MessagePack document to the decoder. It wraps
// the vmihailenco/msgpack Marshal/Unmarshal pair.
type MsgPack[T any] struct {
	lengths LengthPrefix
}

// Decode implements Decoder[T]. An incomplete or malformed frame
// yields the zero value and false; msgpack unmarshal errors on a
// frame whose length prefix was satisfied are programmer/protocol
// errors and are silently treated as "not yet a value" so a caller
// can choose to close the connection on repeated failure rather than
// have Decode itself abort the whole Framed.
func (m MsgPack[T]) Decode(buf *[]byte) (T, bool) {
	var zero T
	payload, ok := m.lengths.Decode(buf)
	if !ok {
		return zero, false
	}
	var value T
	if err := msgpack.Unmarshal(payload, &value); err != nil {
		return zero, false
	}
	return value, true
}

// Encode implements Encoder[T].
func (m MsgPack[T]) Encode(item T, buf *[]byte) {
	payload, err := msgpack.Marshal(item)
	if err != nil {
		// Marshal of a plain data value only fails for unsupported
		// types (channels, funcs); that is a caller bug, not a
		// runtime condition Encode can recover from.
		panic(err)
	}
	m.lengths.Encode(payload, buf)
}
