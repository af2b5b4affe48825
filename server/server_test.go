package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/coreflux/reactor/codec"
	"github.com/coreflux/reactor/handler"
	"github.com/coreflux/reactor/poll"
	"github.com/coreflux/reactor/pool"
	"github.com/coreflux/reactor/transport"
)

func TestTCPServerEchoesOneFrame(t *testing.T) {
	echo := handler.Func[[]byte, []byte](func(req []byte) poll.Pollable[[]byte] {
		return poll.Into(req, error(nil))
	})
	bind := transport.TCPBind[[]byte, []byte]{Codec: codec.LengthPrefix{}}
	p := pool.New[[]byte, []byte](bind, echo, pool.Options{Workers: 1})
	defer p.Close()

	srv := New("127.0.0.1:0", p, WithWriteDeadline(5*time.Millisecond))

	// Run on an ephemeral port chosen by the OS; we need to know it
	// before Run's goroutine resolves it, so listen ourselves first
	// and hand Run a fixed address via a loopback probe instead.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to reserve a port: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()
	srv.Addr = addr

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(ctx) }()

	var conn net.Conn
	for i := 0; i < 50; i++ {
		conn, err = net.Dial("tcp", addr)
		if err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("failed to dial server: %v", err)
	}
	defer conn.Close()

	frame := []byte{0, 0, 0, 3, 'h', 'i', '!'}
	if _, err := conn.Write(frame); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	resp := make([]byte, len(frame))
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, err := readFull(conn, resp); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(resp) != string(frame) {
		t.Fatalf("expected echoed frame %q, got %q", frame, resp)
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Run returned an error after cancel: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not exit after ctx cancel")
	}
}

func readFull(conn net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := conn.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
