package transport

import (
	"github.com/coreflux/reactor/codec"
	"github.com/coreflux/reactor/poll"
)

// BindTransport is the factory capability that produces a transport
// from a raw stream. Its result is itself a poll.Pollable so that an
// implementation can perform a handshake (TLS negotiation, a
// WebSocket upgrade) before the transport is usable; the default TCP
// case below binds synchronously and is Ready immediately.
type BindTransport[D, E any] interface {
	Bind(stream Stream) poll.Pollable[*Framed[D, E]]
}

// TCPBind is the trivial BindTransport: it wraps the stream in a
// Framed using codec and reports Ready immediately, since a raw TCP
// stream needs no handshake.
type TCPBind[D, E any] struct {
	Codec codec.Codec[D, E]
}

// Bind implements BindTransport[D, E].
func (b TCPBind[D, E]) Bind(stream Stream) poll.Pollable[*Framed[D, E]] {
	return poll.Into(NewFramed[D, E](stream, b.Codec), nil)
}
