// Package codec implements the Decode/Encode capability pair a Framed
// transport composes with a byte stream. A codec is stateless: all
// mutable state lives in the caller-supplied buffer.
package codec

// Decoder produces decoded values of type T from a growable byte
// buffer. When Decode returns a value, it must have drained that
// value's bytes from the front of buf. Returning (zero, false) means
// "incomplete" — more bytes are needed.
type Decoder[T any] interface {
	Decode(buf *[]byte) (T, bool)
}

// Encoder appends the encoded form of item to buf.
type Encoder[T any] interface {
	Encode(item T, buf *[]byte)
}

// Codec is the pair of capabilities a transport.Framed composes with
// a byte stream: DecodedItem flows out (the transport's Pollable
// side), EncodedItem flows in (the transport's Sink side). Most
// codecs in this package decode and encode the same type, satisfying
// Codec[T, T].
type Codec[D, E any] interface {
	Decoder[D]
	Encoder[E]
}
