// Package conn implements the per-connection state machine: a
// poll.Pollable[struct{}] that sequences Reading -> Handling ->
// Writing -> Reading for as long as the underlying transport keeps
// producing requests.
package conn

import (
	"github.com/coreflux/reactor/handler"
	"github.com/coreflux/reactor/poll"
	"github.com/coreflux/reactor/sink"
)

// Transport is what a Connection needs from its transport: decoded
// requests flow out through Pollable, encoded responses flow in
// through Sink. transport.Framed satisfies this directly.
type Transport[Req, Resp any] interface {
	poll.Pollable[Req]
	sink.Sink[Resp]
}

type phase int

const (
	phaseReading phase = iota
	phaseHandling
	phaseWriting
	phaseConnDone
)

// Connection is the per-stream state machine:
// Reading(transport) -> Handling(transport, in-flight response) ->
// Writing(in-flight send) -> Reading, forever, until an error (or
// io.ErrUnexpectedEOF on client disconnect) ends it.
//
// All transitions move the current state out into a transient Done
// placeholder, compute the next state, and only then assign it back —
// the same atomic-move idiom Join and AndThen use — so a panic or
// early return can never leave Connection holding a half-updated
// state.
type Connection[Req, Resp any, T Transport[Req, Resp]] struct {
	phase     phase
	transport T
	handler   handler.Handler[Req, Resp]
	handling  poll.Pollable[Resp]
	writing   *sink.SendOne[Resp, T]
}

// New creates a Connection in the initial Reading state.
func New[Req, Resp any, T Transport[Req, Resp]](transport T, h handler.Handler[Req, Resp]) *Connection[Req, Resp, T] {
	return &Connection[Req, Resp, T]{phase: phaseReading, transport: transport, handler: h}
}

// Poll implements poll.Pollable[struct{}]. It performs at most one
// state transition per call and always reports NotReady on success —
// a Connection only ever ends by returning an error, never Ready,
// since a healthy keep-alive connection serves requests forever.
func (c *Connection[Req, Resp, T]) Poll() (poll.Result[struct{}], error) {
	current := c.phase
	c.phase = phaseConnDone
	switch current {
	case phaseReading:
		r, err := c.transport.Poll()
		if err != nil {
			return poll.Result[struct{}]{}, err
		}
		if !r.IsReady() {
			c.phase = phaseReading
			return poll.NotReady[struct{}](), nil
		}

		c.handling = c.handler.Handle(r.Value())
		c.phase = phaseHandling
		return poll.NotReady[struct{}](), nil

	case phaseHandling:
		r, err := c.handling.Poll()
		if err != nil {
			return poll.Result[struct{}]{}, err
		}
		if !r.IsReady() {
			c.phase = phaseHandling
			return poll.NotReady[struct{}](), nil
		}

		c.handling = nil
		c.writing = sink.NewSendOne[Resp, T](c.transport, r.Value())
		c.phase = phaseWriting
		return poll.NotReady[struct{}](), nil

	case phaseWriting:
		r, err := c.writing.Poll()
		if err != nil {
			return poll.Result[struct{}]{}, err
		}
		if !r.IsReady() {
			c.phase = phaseWriting
			return poll.NotReady[struct{}](), nil
		}

		c.transport = c.writing.Into()
		c.writing = nil
		c.phase = phaseReading
		return poll.NotReady[struct{}](), nil

	default:
		panic(poll.ErrPolledAfterComplete)
	}
}
