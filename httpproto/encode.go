package httpproto

import (
	"fmt"
	"strconv"

	"golang.org/x/net/http/httpguts"
)

// HeaderField is a name/value pair to be written by Encode.
type HeaderField struct {
	Name, Value string
}

// OutgoingResponse is what a Handler builds and hands to Encode: the
// response a core write back to a client, as opposed to Response
// above (a response the core parsed off the wire). Body is written
// verbatim; Encode computes and appends its own Content-Length from
// len(Body) rather than trusting a caller-supplied header.
type OutgoingResponse struct {
	Version    string
	StatusCode int
	StatusText string
	Headers    []HeaderField
	Body       []byte
}

// Encode appends the wire representation of resp to buf and returns
// the extended slice:
//
//	VERSION SP CODE SP TEXT CRLF
//	(Name ": " Value CRLF)*
//	"Content-Length: " N CRLF
//	CRLF
//	<body bytes>
//
// Every header name and value is validated with httpguts before
// anything is written, so a handler cannot smuggle a split request or
// control bytes onto the wire through a crafted header.
func Encode(buf []byte, resp OutgoingResponse) ([]byte, error) {
	for _, h := range resp.Headers {
		if !httpguts.ValidHeaderFieldName(h.Name) {
			return buf, fmt.Errorf("httpproto: invalid header name %q", h.Name)
		}
		if !httpguts.ValidHeaderFieldValue(h.Value) {
			return buf, fmt.Errorf("httpproto: invalid header value for %q", h.Name)
		}
	}

	buf = append(buf, resp.Version...)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(resp.StatusCode), 10)
	buf = append(buf, ' ')
	buf = append(buf, resp.StatusText...)
	buf = append(buf, '\r', '\n')

	for _, h := range resp.Headers {
		buf = append(buf, h.Name...)
		buf = append(buf, ':', ' ')
		buf = append(buf, h.Value...)
		buf = append(buf, '\r', '\n')
	}

	buf = append(buf, "Content-Length: "...)
	buf = strconv.AppendInt(buf, int64(len(resp.Body)), 10)
	buf = append(buf, '\r', '\n', '\r', '\n')
	buf = append(buf, resp.Body...)

	return buf, nil
}

// CodeError is a typed error carrying an HTTP status, for handlers
// that want to signal a specific error response (400, 404, ...)
// without constructing a full OutgoingResponse by hand.
type CodeError struct {
	Code int
	Text string
}

func (e *CodeError) Error() string {
	return fmt.Sprintf("httpproto: %d %s", e.Code, e.Text)
}

// Response builds the OutgoingResponse this error describes, with no
// headers and an empty body.
func (e *CodeError) Response() OutgoingResponse {
	return OutgoingResponse{Version: "HTTP/1.1", StatusCode: e.Code, StatusText: e.Text}
}
