package transport

import (
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/coreflux/reactor/codec"
	"github.com/coreflux/reactor/internal/netio"
	"github.com/coreflux/reactor/poll"
)

// wsStream adapts a *websocket.Conn to the plain Stream contract
// Framed expects, so the same Connection state machine that drives a
// raw TCP socket can drive a WebSocket client. Each WebSocket message
// is treated as a chunk of bytes; a zero-deadline read and a 10ms
// write deadline are used to probe for availability without blocking,
// translating a deadline timeout into netio.ErrWouldBlock.
type wsStream struct {
	conn    *websocket.Conn
	pending []byte
}

func (w *wsStream) Read(p []byte) (int, error) {
	if len(w.pending) == 0 {
		if err := w.conn.SetReadDeadline(time.Now()); err != nil {
			return 0, err
		}
		_, data, err := w.conn.ReadMessage()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				return 0, netio.ErrWouldBlock
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return 0, io.EOF
			}
			return 0, err
		}
		w.pending = data
	}

	n := copy(p, w.pending)
	w.pending = w.pending[n:]
	return n, nil
}

func (w *wsStream) Write(p []byte) (int, error) {
	if err := w.conn.SetWriteDeadline(time.Now().Add(10 * time.Millisecond)); err != nil {
		return 0, err
	}
	if err := w.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return 0, netio.ErrWouldBlock
		}
		return 0, err
	}
	return len(p), nil
}

// WebSocketBindTransport performs the WebSocket upgrade handshake
// before the transport becomes usable — a non-trivial bind beyond
// plain synchronous TCP. Upgrade is given the *http.Request and
// http.ResponseWriter pair directly (the acceptor must route upgrade
// requests here instead of the raw TCP accept loop), so it does not
// implement BindTransport itself.
type WebSocketBindTransport[D, E any] struct {
	Codec    codec.Codec[D, E]
	Upgrader websocket.Upgrader
}

// Upgrade performs the handshake synchronously (gorilla/websocket's
// Upgrade call does not itself support non-blocking I/O) and lifts
// the outcome into a Pollable, matching BindTransport's contract that
// its result is itself liftable to a Pollable.
func (b WebSocketBindTransport[D, E]) Upgrade(w http.ResponseWriter, r *http.Request) poll.Pollable[*Framed[D, E]] {
	conn, err := b.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		return poll.Into[*Framed[D, E]](nil, err)
	}
	stream := &wsStream{conn: conn}
	return poll.Into(NewFramed[D, E](stream, b.Codec), nil)
}
