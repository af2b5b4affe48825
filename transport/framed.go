// Package transport implements the framed codec transport: Framed
// joins a non-blocking byte stream with a codec.Codec, exposing
// decoded frames as a poll.Pollable source and accepting encoded
// frames as a sink.Sink. BindTransport is the factory capability that
// produces a Framed (or equivalent) transport from a raw stream.
package transport

import (
	"io"

	"github.com/coreflux/reactor/codec"
	"github.com/coreflux/reactor/internal/netio"
	"github.com/coreflux/reactor/poll"
	"github.com/coreflux/reactor/sink"
)

// Stream is the minimal non-blocking byte-stream contract Framed
// needs. A "would block" condition on either Read or Write must be
// reported via an error recognized by netio.IsWouldBlock; any other
// error is treated as fatal for the transport.
type Stream interface {
	io.Reader
	io.Writer
}

const readChunkSize = 256
const initialBufferCapacity = 1024

// FramedOptions configures a Framed transport. Use the With* functions
// with NewFramed rather than constructing FramedOptions directly.
type FramedOptions struct {
	// ReadChunkSize is the size of each non-blocking read probe. Zero
	// means the package default.
	ReadChunkSize int
	// InitialBufferCapacity preallocates the shared read/write buffer.
	// Zero means the package default.
	InitialBufferCapacity int
}

// FramedOption mutates a FramedOptions during NewFramed.
type FramedOption func(*FramedOptions)

// WithReadChunkSize overrides the size of each non-blocking read.
func WithReadChunkSize(n int) FramedOption {
	return func(o *FramedOptions) { o.ReadChunkSize = n }
}

// WithInitialBufferCapacity overrides the shared buffer's starting
// capacity.
func WithInitialBufferCapacity(n int) FramedOption {
	return func(o *FramedOptions) { o.InitialBufferCapacity = n }
}

func (o FramedOptions) withDefaults() FramedOptions {
	if o.ReadChunkSize <= 0 {
		o.ReadChunkSize = readChunkSize
	}
	if o.InitialBufferCapacity <= 0 {
		o.InitialBufferCapacity = initialBufferCapacity
	}
	return o
}

// Framed owns a stream, a codec, and a single growable byte buffer
// reused for both directions: on the decode path it holds exactly the
// bytes read but not yet consumed by the decoder; on the encode path
// it holds exactly the bytes produced by the encoder but not yet
// written. Sharing one buffer is safe because a Connection never
// polls the Pollable side and drives the Sink side concurrently for
// the same Framed.
type Framed[D, E any] struct {
	stream Stream
	codec  codec.Codec[D, E]
	buf    []byte
	chunk  []byte

	halt poll.Halt
}

// NewFramed wraps stream with codec, ready to decode frames of type D
// and accept frames of type E for encoding, applying any FramedOption.
func NewFramed[D, E any](stream Stream, c codec.Codec[D, E], opts ...FramedOption) *Framed[D, E] {
	var o FramedOptions
	for _, opt := range opts {
		opt(&o)
	}
	o = o.withDefaults()

	return &Framed[D, E]{
		stream: stream,
		codec:  c,
		buf:    make([]byte, 0, o.InitialBufferCapacity),
		chunk:  make([]byte, o.ReadChunkSize),
	}
}

// IntoStream returns the wrapped stream.
func (f *Framed[D, E]) IntoStream() Stream {
	return f.stream
}

// Poll implements poll.Pollable[D]: it first consults the decoder on
// bytes already buffered, then attempts non-blocking reads into a
// fixed-size chunk, appending to the owned buffer and consulting the
// decoder after each chunk, until the decoder yields a value or the
// stream has no more data available right now.
func (f *Framed[D, E]) Poll() (poll.Result[D], error) {
	if value, ok := f.codec.Decode(&f.buf); ok {
		return poll.Ready(value), nil
	}
	for {
		n, err := f.stream.Read(f.chunk)
		if err != nil {
			if netio.IsWouldBlock(err) {
				return poll.NotReady[D](), nil
			}
			if err == io.EOF {
				return poll.Result[D]{}, io.ErrUnexpectedEOF
			}
			return poll.Result[D]{}, err
		}
		if n == 0 {
			return poll.Result[D]{}, io.ErrUnexpectedEOF
		}

		f.buf = append(f.buf, f.chunk[:n]...)

		if value, ok := f.codec.Decode(&f.buf); ok {
			return poll.Ready(value), nil
		}
	}
}

// StartSend implements sink.Sink[E]. It accepts item only when the
// shared buffer is currently empty; otherwise it hands the item back
// so the caller retries after PollComplete drains the buffer.
func (f *Framed[D, E]) StartSend(item E) (sink.Result[E], error) {
	if len(f.buf) != 0 {
		return sink.Rejected(item), nil
	}
	f.codec.Encode(item, &f.buf)
	return sink.Accepted[E](), nil
}

// PollComplete implements sink.Sink[E]. It attempts one non-blocking
// write of the buffered bytes, draining whatever was written from the
// front; a zero-length write ends the attempt for this call with
// NotReady, tolerating a stream that reports "nothing more to write
// right now" without an explicit would-block error.
func (f *Framed[D, E]) PollComplete() (poll.Result[struct{}], error) {
	if len(f.buf) == 0 {
		return poll.Ready(struct{}{}), nil
	}

	n, err := f.stream.Write(f.buf)
	f.buf = append(f.buf[:0], f.buf[n:]...)
	if err != nil {
		if netio.IsWouldBlock(err) {
			return poll.NotReady[struct{}](), nil
		}
		return poll.Result[struct{}]{}, err
	}

	if len(f.buf) == 0 {
		return poll.Ready(struct{}{}), nil
	}
	return poll.NotReady[struct{}](), nil
}
