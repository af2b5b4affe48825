package httpproto

// Response is a parsed HTTP status line and header set, owned the
// same way Request is: a single copy of the consumed bytes, with
// every field sliced out of that copy. It represents a response read
// off the wire (e.g. by a client, or by tests); outbound responses a
// handler produces are built as an OutgoingResponse and written with
// Encode instead.
type Response struct {
	buf        []byte
	version    []byte
	statusCode []byte
	statusText []byte
	headers    []Header
}

// Version returns the HTTP version token, e.g. "HTTP/1.1".
func (r *Response) Version() []byte { return r.version }

// StatusCode returns the status code as its literal digits.
func (r *Response) StatusCode() []byte { return r.statusCode }

// StatusText returns the reason phrase.
func (r *Response) StatusText() []byte { return r.statusText }

// Headers returns every header in the order it appeared on the wire.
func (r *Response) Headers() []Header { return r.headers }

// Header looks up a header by name, case-insensitively.
func (r *Response) Header(name string) ([]byte, bool) { return lookupHeader(r.headers, name) }

// ParseResponse parses one HTTP response from the front of full,
// following the same ownership and incomplete-input conventions as
// ParseRequest. The status line reuses the same three-field grammar
// as a request line (VERSION SP CODE SP TEXT), just with the fields
// in a different order.
func ParseResponse(full []byte, maxHeaders int) (*Response, int, bool) {
	if maxHeaders <= 0 {
		maxHeaders = DefaultMaxHeaders
	}

	versionSpan, codeSpan, textSpan, headerStart, ok := parseStartLine(full)
	if !ok {
		return nil, 0, false
	}

	raw := make([]headerSpan, maxHeaders)
	n, end, ok := readHeaders(full, headerStart, raw)
	if !ok {
		return nil, 0, false
	}

	buf := append([]byte(nil), full[:end]...)
	resp := &Response{
		buf:        buf,
		version:    versionSpan.slice(buf),
		statusCode: codeSpan.slice(buf),
		statusText: textSpan.slice(buf),
		headers:    make([]Header, n),
	}
	for i := 0; i < n; i++ {
		resp.headers[i] = Header{Name: raw[i].name.slice(buf), Value: raw[i].value.slice(buf)}
	}
	return resp, end, true
}
