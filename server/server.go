// Package server implements the TCP accept loop: a thin wrapper over
// the OS listener that sets every accepted stream non-blocking and
// forwards it to a worker pool, exactly as described for the core's
// network boundary.
package server

import (
	"context"
	"net"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/coreflux/reactor/internal/netio"
	"github.com/coreflux/reactor/internal/rlog"
	"github.com/coreflux/reactor/pool"
	"github.com/coreflux/reactor/transport"
)

// defaultWriteDeadline bounds how long a non-blocking write probe
// waits before it is reported as would-block; it mirrors the
// WebSocket stream adapter's probe window.
const defaultWriteDeadline = 10 * time.Millisecond

// Options configures a TCPServer. Use the With* functions with New
// rather than constructing Options directly.
type Options struct {
	// WriteDeadline bounds the non-blocking write probe on every
	// accepted stream. Zero means defaultWriteDeadline.
	WriteDeadline time.Duration
}

// Option mutates an Options during New.
type Option func(*Options)

// WithWriteDeadline overrides the write-probe deadline used by every
// stream this server accepts.
func WithWriteDeadline(d time.Duration) Option {
	return func(o *Options) { o.WriteDeadline = d }
}

func (o Options) withDefaults() Options {
	if o.WriteDeadline <= 0 {
		o.WriteDeadline = defaultWriteDeadline
	}
	return o
}

// tcpStream adapts a net.Conn to transport.Stream by using a 1ms read
// deadline and a short write deadline to probe for readiness instead
// of blocking, translating a deadline timeout into netio.ErrWouldBlock
// the same way the WebSocket stream adapter does.
type tcpStream struct {
	conn          net.Conn
	writeDeadline time.Duration
}

func (s *tcpStream) Read(p []byte) (int, error) {
	if err := s.conn.SetReadDeadline(time.Now().Add(time.Millisecond)); err != nil {
		return 0, err
	}
	n, err := s.conn.Read(p)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return 0, netio.ErrWouldBlock
		}
		return n, err
	}
	return n, nil
}

func (s *tcpStream) Write(p []byte) (int, error) {
	if err := s.conn.SetWriteDeadline(time.Now().Add(s.writeDeadline)); err != nil {
		return 0, err
	}
	n, err := s.conn.Write(p)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return n, netio.ErrWouldBlock
		}
		return n, err
	}
	return n, nil
}

// TCPServer binds a single address and hands every accepted
// connection to a Pool. An accept error is fatal and shuts the server
// down; a per-connection error is the Pool's concern and never stops
// the accept loop.
type TCPServer[Req, Resp any] struct {
	Addr string
	Pool *pool.Pool[Req, Resp]

	opts Options
	log  *rlog.Log
}

// New builds a TCPServer that listens on addr and dispatches accepted
// streams to p, applying any Options.
func New[Req, Resp any](addr string, p *pool.Pool[Req, Resp], opts ...Option) *TCPServer[Req, Resp] {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return &TCPServer[Req, Resp]{Addr: addr, Pool: p, opts: o.withDefaults(), log: rlog.New("reactor.server")}
}

// Run binds the listener and accepts connections until ctx is
// canceled or an accept error occurs. It blocks until the accept loop
// exits, returning the first fatal error (nil on a clean shutdown via
// ctx).
func (s *TCPServer[Req, Resp]) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.Addr)
	if err != nil {
		return err
	}
	s.log.Info("listening on %s", ln.Addr())

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-ctx.Done()
		return ln.Close()
	})

	g.Go(func() error {
		for {
			conn, err := ln.Accept()
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				s.log.Error("accept failed, shutting down: %v", err)
				return err
			}
			s.Pool.Queue(&tcpStream{conn: conn, writeDeadline: s.opts.WriteDeadline})
		}
	})

	return g.Wait()
}

var _ transport.Stream = (*tcpStream)(nil)
