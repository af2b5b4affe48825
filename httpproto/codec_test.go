package httpproto

import "testing"

func TestCodecDecodeDrainsBuffer(t *testing.T) {
	c := Codec{}
	buf := []byte("GET / HTTP/1.1\r\n\r\nREMAINDER")

	req, ok := c.Decode(&buf)
	if !ok {
		t.Fatal("expected decode to succeed")
	}
	if req.Method() != MethodGet {
		t.Fatalf("expected GET, got %v", req.Method())
	}
	if string(buf) != "REMAINDER" {
		t.Fatalf("expected buffer drained to %q, got %q", "REMAINDER", buf)
	}
}

func TestCodecEncodeFallsBackOn500ForBadHeader(t *testing.T) {
	c := Codec{}
	var buf []byte
	c.Encode(OutgoingResponse{
		Version:    "HTTP/1.1",
		StatusCode: 200,
		StatusText: "OK",
		Headers:    []HeaderField{{Name: "Bad Name", Value: "x"}},
	}, &buf)

	resp, _, ok := ParseResponse(buf, 0)
	if !ok {
		t.Fatalf("expected the fallback response to parse, got %q", buf)
	}
	if string(resp.StatusCode()) != "500" {
		t.Fatalf("expected a 500 fallback, got %q", resp.StatusCode())
	}
}
