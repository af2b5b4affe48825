// Package sink implements the outbound dual of poll.Pollable: a Sink
// accepts items for eventual delivery and reports when they have
// actually been flushed.
package sink

import "github.com/coreflux/reactor/poll"

// Sink accepts items of type T for delivery to some destination
// (typically a byte stream via a Codec, see the transport package).
//
// Contract: once StartSend returns a rejected (NotReady) Result, it returns
// ownership of the rejected item to the caller. Callers must not
// present a new item until PollComplete has reported Ready; PollComplete
// must tolerate being called repeatedly.
type Sink[T any] interface {
	// StartSend attempts to accept item into internal buffering.
	StartSend(item T) (Result[T], error)

	// PollComplete attempts to flush internal buffers. It reports
	// Ready once the internal buffer is empty.
	PollComplete() (poll.Result[struct{}], error)
}

// Result is the outcome of a StartSend call: either the item was
// accepted (Ready), or it was rejected and handed back to the caller
// (NotReady, carrying the item).
type Result[T any] struct {
	accepted bool
	item     T
}

// Accepted reports a successful StartSend.
func Accepted[T any]() Result[T] {
	return Result[T]{accepted: true}
}

// Rejected reports a StartSend that could not accept item right now,
// returning ownership of item to the caller.
func Rejected[T any](item T) Result[T] {
	return Result[T]{item: item}
}

// IsAccepted reports whether StartSend accepted the item.
func (r Result[T]) IsAccepted() bool {
	return r.accepted
}

// Item returns the rejected item. It must only be called when
// IsAccepted is false.
func (r Result[T]) Item() T {
	return r.item
}
