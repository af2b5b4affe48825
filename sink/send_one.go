package sink

import "github.com/coreflux/reactor/poll"

// SendOne wraps a Sink to drive a single item to completion, exposing
// it as a poll.Pollable[struct{}]. Its Poll algorithm is:
//
//  1. If the held item is present, call StartSend. If it reports
//     NotReady, the item is restored and PollComplete is called; if
//     that is also NotReady, SendOne reports NotReady. Otherwise the
//     loop repeats.
//  2. Once the item has been consumed, SendOne reports whatever
//     PollComplete reports.
type SendOne[T any, S Sink[T]] struct {
	inner S
	item  *T
	halt  poll.Halt
}

// NewSendOne wraps sink to send item exactly once.
func NewSendOne[T any, S Sink[T]](s S, item T) *SendOne[T, S] {
	return &SendOne[T, S]{inner: s, item: &item}
}

// Poll implements poll.Pollable[struct{}].
func (s *SendOne[T, S]) Poll() (poll.Result[struct{}], error) {
	s.halt.Enter()

	for {
		if s.item == nil {
			r, err := s.inner.PollComplete()
			if err != nil {
				s.halt.Complete()
				return poll.Result[struct{}]{}, err
			}
			if r.IsReady() {
				s.halt.Complete()
			}
			return r, nil
		}

		result, err := s.inner.StartSend(*s.item)
		if err != nil {
			s.halt.Complete()
			return poll.Result[struct{}]{}, err
		}
		if result.IsAccepted() {
			s.item = nil
			continue
		}

		rejected := result.Item()
		s.item = &rejected

		cr, err := s.inner.PollComplete()
		if err != nil {
			s.halt.Complete()
			return poll.Result[struct{}]{}, err
		}
		if !cr.IsReady() {
			return poll.NotReady[struct{}](), nil
		}
		// PollComplete drained the buffer; loop to retry StartSend.
	}
}

// Into returns the wrapped Sink, allowing the caller to recover the
// underlying transport once the send has completed (e.g. Connection
// moving from Writing back to Reading on the same stream).
func (s *SendOne[T, S]) Into() S {
	return s.inner
}
