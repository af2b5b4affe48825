// Package handler defines the user-supplied request handling surface
// the reactor's Connection state machine drives.
package handler

import "github.com/coreflux/reactor/poll"

// Handler maps a Request to a Pollable that eventually yields a
// Response. Handlers are shared, read-only, across every connection a
// worker serves (and across workers), so implementations must be
// safe for concurrent use.
type Handler[Request, Response any] interface {
	Handle(req Request) poll.Pollable[Response]
}

// Func adapts a plain function to the Handler interface.
type Func[Request, Response any] func(Request) poll.Pollable[Response]

// Handle implements Handler.
func (f Func[Request, Response]) Handle(req Request) poll.Pollable[Response] {
	return f(req)
}

// Chain composes a handler with a next stage, left to right: the first
// handler's response becomes the input to next, and the Pollable next
// returns yields the final response. Unlike Handler, next is a plain
// function rather than an interface; a stage whose post-processing —
// content-type classification, header decoration — is synchronous
// returns its result through poll.Into.
//
// This mirrors a content-type classifier wired up in front of a body
// encoder; Chain generalizes that shape into a reusable combinator
// without pulling a concrete file-serving example into this core.
func Chain[Request, Mid, Response any](first Handler[Request, Mid], next func(Mid) poll.Pollable[Response]) Handler[Request, Response] {
	return Func[Request, Response](func(req Request) poll.Pollable[Response] {
		return poll.NewAndThen[Mid, Response](first.Handle(req), next)
	})
}
