// Package pool implements the fixed-size, round-robin worker pool
// that multiplexes many connections per worker by cooperatively
// re-polling all of them, with no OS readiness notifier.
package pool

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/coreflux/reactor/conn"
	"github.com/coreflux/reactor/handler"
	"github.com/coreflux/reactor/internal/rlog"
	"github.com/coreflux/reactor/internal/rxevents"
	"github.com/coreflux/reactor/poll"
	"github.com/coreflux/reactor/transport"
)

// Event names emitted on Pool.Events.
const (
	EventConnection Name = "connection"
	EventClose      Name = "close"
	EventError      Name = "error"
)

// Name is an alias of rxevents.Name for this package's public surface.
type Name = rxevents.Name

// DefaultWorkers is the worker count used when Options.Workers is 0.
const DefaultWorkers = 4

// queueDepth bounds the per-worker stream queue. An unbounded channel
// would be simpler to reason about but not bounded-memory; this fixed
// buffer is a deliberate simplification, documented in DESIGN.md.
const queueDepth = 4096

// Options configures a Pool.
type Options struct {
	// Workers is the fixed number of worker goroutines. Zero means
	// DefaultWorkers.
	Workers int
}

// Pool is the fixed worker-count dispatcher: it assigns accepted
// streams to workers round-robin, and each worker cooperatively polls
// its own private set of Connections with no shared mutable state
// between workers.
type Pool[Req, Resp any] struct {
	bind    transport.BindTransport[Req, Resp]
	handler handler.Handler[Req, Resp]
	workers []*worker[Req, Resp]
	next    atomic.Uint64
	log     *rlog.Log

	Events *rxevents.Emitter
}

// New builds a Pool bound to proto (the transport factory) and h (the
// shared, read-only request handler), with opts.Workers workers (or
// DefaultWorkers if unset). Each worker goroutine is started
// immediately; call Close to stop them.
func New[Req, Resp any](proto transport.BindTransport[Req, Resp], h handler.Handler[Req, Resp], opts Options) *Pool[Req, Resp] {
	n := opts.Workers
	if n <= 0 {
		n = DefaultWorkers
	}

	p := &Pool[Req, Resp]{
		bind:    proto,
		handler: h,
		log:     rlog.New("reactor.pool"),
		Events:  rxevents.New(),
	}

	for i := 0; i < n; i++ {
		w := newWorker[Req, Resp](i, proto, h, p.Events, p.log)
		p.workers = append(p.workers, w)
		go w.run()
	}

	return p
}

// Queue hands stream to the next worker in round-robin order: worker
// (last+1) mod N.
func (p *Pool[Req, Resp]) Queue(stream transport.Stream) {
	idx := p.next.Add(1) - 1
	w := p.workers[int(idx%uint64(len(p.workers)))]
	w.incoming <- stream
}

// Close stops accepting new streams on every worker. In-flight
// connections finish their current pump pass and are then dropped;
// Close does not wait for that to happen.
func (p *Pool[Req, Resp]) Close() {
	for _, w := range p.workers {
		close(w.incoming)
	}
}

// Shutdown stops accepting new streams and waits for every worker
// goroutine to return, using an errgroup.Group so that ctx's
// cancellation is reported rather than hanging forever on a stuck
// worker; it returns nil once every worker has exited. Unlike Close,
// Shutdown blocks until every worker has actually exited or ctx ends.
func (p *Pool[Req, Resp]) Shutdown(ctx context.Context) error {
	for _, w := range p.workers {
		close(w.incoming)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, w := range p.workers {
		w := w
		g.Go(func() error {
			select {
			case <-w.done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}
	return g.Wait()
}

type worker[Req, Resp any] struct {
	id       int
	incoming chan transport.Stream
	bind     transport.BindTransport[Req, Resp]
	handler  handler.Handler[Req, Resp]
	events   *rxevents.Emitter
	log      *rlog.Log
	done     chan struct{}

	connections []*slot[Req, Resp]
}

// slot holds either a not-yet-ready BindTransport result or the live
// Connection it eventually becomes. Both are polled, at most once per
// pass, by pump — a slow bind (a handshake) is pumped alongside every
// other live connection rather than blocking the worker.
type slot[Req, Resp any] struct {
	binding poll.Pollable[*transport.Framed[Req, Resp]]
	c       *conn.Connection[Req, Resp, *transport.Framed[Req, Resp]]
}

func newWorker[Req, Resp any](id int, bind transport.BindTransport[Req, Resp], h handler.Handler[Req, Resp], events *rxevents.Emitter, log *rlog.Log) *worker[Req, Resp] {
	return &worker[Req, Resp]{
		id:       id,
		incoming: make(chan transport.Stream, queueDepth),
		bind:     bind,
		handler:  h,
		events:   events,
		log:      log,
		done:     make(chan struct{}),
	}
}

// run is the cooperative scheduler loop: block on recv only when
// idle, otherwise accept at most one immediately available stream,
// pump every live connection once, compact, repeat.
func (w *worker[Req, Resp]) run() {
	defer close(w.done)
	for {
		if len(w.connections) == 0 {
			stream, ok := <-w.incoming
			if !ok {
				return
			}
			w.accept(stream)
		} else {
			select {
			case stream, ok := <-w.incoming:
				if !ok {
					return
				}
				w.accept(stream)
			default:
			}
		}

		w.pump()
	}
}

// accept queues stream's bind as a pending slot; the bind itself is
// driven to readiness by pump, alongside every other live connection,
// rather than polled to completion here.
func (w *worker[Req, Resp]) accept(stream transport.Stream) {
	w.connections = append(w.connections, &slot[Req, Resp]{binding: w.bind.Bind(stream)})
}

func (w *worker[Req, Resp]) pump() {
	for _, s := range w.connections {
		if s.binding != nil {
			r, err := s.binding.Poll()
			if err != nil {
				w.log.Error("bind_transport failed: %v", err)
				w.events.Emit(EventError, err)
				s.binding = nil
				continue
			}
			if !r.IsReady() {
				continue
			}
			s.binding = nil
			s.c = conn.New[Req, Resp, *transport.Framed[Req, Resp]](r.Value(), w.handler)
			w.events.Emit(EventConnection, w.id)
			continue
		}

		if s.c == nil {
			continue
		}
		if _, err := s.c.Poll(); err != nil {
			w.log.Debug("connection closed: %v", err)
			w.events.Emit(EventClose, err)
			s.c = nil
		}
	}

	n := len(w.connections)
	for i := n - 1; i >= 0; i-- {
		if w.connections[i].binding == nil && w.connections[i].c == nil {
			w.connections[i] = w.connections[n-1]
			n--
		}
	}
	w.connections = w.connections[:n]
}
