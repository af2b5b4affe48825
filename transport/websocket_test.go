package transport

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/coreflux/reactor/codec"
)

// TestWebSocketBindTransportRoundTrip drives WebSocketBindTransport
// through a real HTTP upgrade (httptest server, gorilla/websocket
// client dial) and then exercises the resulting Framed's Pollable and
// Sink sides over the live connection in both directions.
func TestWebSocketBindTransportRoundTrip(t *testing.T) {
	bind := WebSocketBindTransport[[]byte, []byte]{Codec: codec.LengthPrefix{}}

	framedCh := make(chan *Framed[[]byte, []byte], 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		result, err := bind.Upgrade(w, r).Poll()
		if err != nil {
			errCh <- err
			return
		}
		framedCh <- result.Value()
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("client dial failed: %v", err)
	}
	defer client.Close()

	var server *Framed[[]byte, []byte]
	select {
	case server = <-framedCh:
	case err := <-errCh:
		t.Fatalf("server-side upgrade failed: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the server-side upgrade to complete")
	}

	// Client -> server: hand-encode a length-prefixed frame and send it
	// as a single WebSocket message; Framed.Poll must decode it back
	// out on the server side.
	var encoded []byte
	codec.LengthPrefix{}.Encode([]byte("hello"), &encoded)
	if err := client.WriteMessage(websocket.BinaryMessage, encoded); err != nil {
		t.Fatalf("client write failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	var got []byte
	for time.Now().Before(deadline) {
		r, err := server.Poll()
		if err != nil {
			t.Fatalf("server Poll failed: %v", err)
		}
		if r.IsReady() {
			got = r.Value()
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if string(got) != "hello" {
		t.Fatalf("expected %q, got %q", "hello", got)
	}

	// Server -> client: drive Framed's Sink side and read the raw
	// WebSocket message back out on the client.
	for {
		r, err := server.StartSend([]byte("world"))
		if err != nil {
			t.Fatalf("StartSend failed: %v", err)
		}
		if r.IsAccepted() {
			break
		}
		if _, err := server.PollComplete(); err != nil {
			t.Fatalf("PollComplete failed: %v", err)
		}
	}
	for {
		r, err := server.PollComplete()
		if err != nil {
			t.Fatalf("PollComplete failed: %v", err)
		}
		if r.IsReady() {
			break
		}
	}

	_, raw, err := client.ReadMessage()
	if err != nil {
		t.Fatalf("client read failed: %v", err)
	}
	decoded, ok := codec.LengthPrefix{}.Decode(&raw)
	if !ok {
		t.Fatalf("client failed to decode server frame: %q", raw)
	}
	if string(decoded) != "world" {
		t.Fatalf("expected %q, got %q", "world", decoded)
	}
}
