// Package httpproto implements a zero-copy HTTP/1.x request-line and
// header parser, plus the owned Request/Response value types and a
// Response encoder. Parsing works entirely on offsets into a
// caller-supplied byte slice; nothing is retained from that slice
// until a request successfully parses, at which point its consumed
// prefix is copied once into the returned Request's own buffer.
package httpproto

// DefaultMaxHeaders bounds how many headers ParseRequest and
// ParseResponse recognize when the caller doesn't specify its own
// limit.
const DefaultMaxHeaders = 32

// Request is an HTTP/1.x request line and header set, owned
// independently of whatever read buffer it was parsed out of: the
// consumed bytes are copied once into Request's own buffer, and every
// field below is a slice into that copy. This is what lets a Request
// outlive the next read into the transport's shared buffer.
//
// The body is not parsed or retained here; ParseRequest reports only
// the byte offset where the headers end, and the caller is
// responsible for reading Content-Length or Transfer-Encoding bytes
// of body out of the stream itself.
type Request struct {
	buf     []byte
	method  Method
	path    []byte
	version []byte
	headers []Header
}

// Method returns the request's method.
func (r *Request) Method() Method { return r.method }

// Path returns the request target as it appeared on the wire (opaque
// bytes; this parser does not interpret or normalize it).
func (r *Request) Path() []byte { return r.path }

// Version returns the HTTP version token, e.g. "HTTP/1.1".
func (r *Request) Version() []byte { return r.version }

// Headers returns every header in the order it appeared on the wire.
func (r *Request) Headers() []Header { return r.headers }

// Header looks up a header by name, case-insensitively.
func (r *Request) Header(name string) ([]byte, bool) { return lookupHeader(r.headers, name) }

// ParseRequest parses one HTTP request from the front of full. On
// success it returns the owned Request and the number of bytes
// consumed (the caller should drain that many bytes from its own read
// buffer); the returned Request shares no memory with full. On
// incomplete or malformed input, or when the request has more headers
// than maxHeaders allows, it returns (nil, 0, false) and the caller
// should wait for more bytes.
func ParseRequest(full []byte, maxHeaders int) (*Request, int, bool) {
	if maxHeaders <= 0 {
		maxHeaders = DefaultMaxHeaders
	}

	methodSpan, pathSpan, versionSpan, headerStart, ok := parseStartLine(full)
	if !ok {
		return nil, 0, false
	}

	raw := make([]headerSpan, maxHeaders)
	n, end, ok := readHeaders(full, headerStart, raw)
	if !ok {
		return nil, 0, false
	}

	buf := append([]byte(nil), full[:end]...)
	req := &Request{
		buf:     buf,
		method:  methodFromBytes(methodSpan.slice(buf)),
		path:    pathSpan.slice(buf),
		version: versionSpan.slice(buf),
		headers: make([]Header, n),
	}
	for i := 0; i < n; i++ {
		req.headers[i] = Header{Name: raw[i].name.slice(buf), Value: raw[i].value.slice(buf)}
	}
	return req, end, true
}
