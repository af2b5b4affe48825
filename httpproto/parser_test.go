package httpproto

import (
	"bytes"
	"testing"
)

func TestParseRequestGetWithOneHeader(t *testing.T) {
	input := "GET /index.html HTTP/1.1\r\nHost: www.someserver.com\r\n\r\nHello, World!"

	req, n, ok := ParseRequest([]byte(input), 0)
	if !ok {
		t.Fatal("expected parse to succeed")
	}

	if req.Method() != MethodGet {
		t.Fatalf("expected GET, got %v", req.Method())
	}
	if !bytes.Equal(req.Path(), []byte("/index.html")) {
		t.Fatalf("unexpected path: %q", req.Path())
	}
	if !bytes.Equal(req.Version(), []byte("HTTP/1.1")) {
		t.Fatalf("unexpected version: %q", req.Version())
	}
	if len(req.Headers()) != 1 {
		t.Fatalf("expected 1 header, got %d", len(req.Headers()))
	}
	if !bytes.Equal(req.Headers()[0].Name, []byte("Host")) ||
		!bytes.Equal(req.Headers()[0].Value, []byte("www.someserver.com")) {
		t.Fatalf("unexpected header: %+v", req.Headers()[0])
	}

	if tail := input[n:]; tail != "Hello, World!" {
		t.Fatalf("expected tail %q, got %q", "Hello, World!", tail)
	}
}

func TestParseRequestPostWithZeroHeaders(t *testing.T) {
	input := "POST / HTTP/1.1\r\n\r\nHello, World!"

	req, n, ok := ParseRequest([]byte(input), 0)
	if !ok {
		t.Fatal("expected parse to succeed")
	}

	if req.Method() != MethodPost {
		t.Fatalf("expected POST, got %v", req.Method())
	}
	if len(req.Headers()) != 0 {
		t.Fatalf("expected 0 headers, got %d", len(req.Headers()))
	}
	if tail := input[n:]; tail != "Hello, World!" {
		t.Fatalf("expected tail %q, got %q", "Hello, World!", tail)
	}
}

func TestParseRequestConnectWithFourHeaders(t *testing.T) {
	input := "CONNECT docs.rs:443 HTTP/1.1\r\n" +
		"User-Agent: test-agent\r\n" +
		"Proxy-Connection: keep-alive\r\n" +
		"Connection: keep-alive\r\n" +
		"Host: docs.rs:443\r\n" +
		"\r\n"

	req, _, ok := ParseRequest([]byte(input), 0)
	if !ok {
		t.Fatal("expected parse to succeed")
	}

	if req.Method() != MethodConnect {
		t.Fatalf("expected CONNECT, got %v", req.Method())
	}
	if !bytes.Equal(req.Path(), []byte("docs.rs:443")) {
		t.Fatalf("unexpected path: %q", req.Path())
	}
	if len(req.Headers()) != 4 {
		t.Fatalf("expected 4 headers, got %d", len(req.Headers()))
	}
}

func TestParseResponse404(t *testing.T) {
	input := "HTTP/1.1 404 Not found\r\nHost: www.someserver.com\r\n\r\nHello, World!"

	resp, n, ok := ParseResponse([]byte(input), 0)
	if !ok {
		t.Fatal("expected parse to succeed")
	}

	if !bytes.Equal(resp.Version(), []byte("HTTP/1.1")) {
		t.Fatalf("unexpected version: %q", resp.Version())
	}
	if !bytes.Equal(resp.StatusCode(), []byte("404")) {
		t.Fatalf("unexpected status code: %q", resp.StatusCode())
	}
	if !bytes.Equal(resp.StatusText(), []byte("Not found")) {
		t.Fatalf("unexpected status text: %q", resp.StatusText())
	}
	if len(resp.Headers()) != 1 {
		t.Fatalf("expected 1 header, got %d", len(resp.Headers()))
	}
	if tail := input[n:]; tail != "Hello, World!" {
		t.Fatalf("expected tail %q, got %q", "Hello, World!", tail)
	}
}

func TestParseRequestIncompleteReturnsNotOK(t *testing.T) {
	input := "GET /index.html HTTP/1.1\r\nHost: www.someserver"

	if _, _, ok := ParseRequest([]byte(input), 0); ok {
		t.Fatal("expected an incomplete request to fail to parse")
	}
}

func TestParseRequestExceedingMaxHeadersFails(t *testing.T) {
	input := "GET / HTTP/1.1\r\nA: 1\r\nB: 2\r\nC: 3\r\n\r\n"

	if _, _, ok := ParseRequest([]byte(input), 2); ok {
		t.Fatal("expected parse to fail when header capacity is exceeded")
	}
}

func TestMethodFromBytesCaseInsensitive(t *testing.T) {
	cases := []struct {
		in   string
		want Method
	}{
		{"GET", MethodGet}, {"get", MethodGet}, {"GeT", MethodGet},
		{"PATCH", MethodPatch}, {"nonsense", MethodUnsupported},
	}
	for _, c := range cases {
		if got := methodFromBytes([]byte(c.in)); got != c.want {
			t.Errorf("methodFromBytes(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestEncodeRejectsInvalidHeaderName(t *testing.T) {
	resp := OutgoingResponse{
		Version:    "HTTP/1.1",
		StatusCode: 200,
		StatusText: "OK",
		Headers:    []HeaderField{{Name: "Bad Name", Value: "x"}},
	}
	if _, err := Encode(nil, resp); err == nil {
		t.Fatal("expected an error for an invalid header name")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	resp := OutgoingResponse{
		Version:    "HTTP/1.1",
		StatusCode: 200,
		StatusText: "OK",
		Headers:    []HeaderField{{Name: "Content-Type", Value: "text/plain"}},
		Body:       []byte("hi"),
	}

	buf, err := Encode(nil, resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, n, ok := ParseResponse(buf, 0)
	if !ok {
		t.Fatalf("expected the encoded response to parse back, got %q", buf)
	}
	if !bytes.Equal(parsed.StatusCode(), []byte("200")) {
		t.Fatalf("unexpected status code: %q", parsed.StatusCode())
	}
	if tail := buf[n:]; !bytes.Equal(tail, []byte("hi")) {
		t.Fatalf("expected body tail %q, got %q", "hi", tail)
	}
}
