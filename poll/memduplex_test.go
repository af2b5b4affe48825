package poll

import (
	"bytes"
	"io"
)

// memDuplex is a minimal in-memory io.ReadWriter: reads drain a fixed
// source buffer and return io.EOF once exhausted; writes accumulate
// into a separate buffer. Used to exercise Twist without real sockets.
type memDuplex struct {
	source  *bytes.Reader
	written bytes.Buffer
}

func newMemDuplex(content []byte) *memDuplex {
	return &memDuplex{source: bytes.NewReader(content)}
}

func (m *memDuplex) Read(p []byte) (int, error) {
	n, err := m.source.Read(p)
	if err == io.EOF {
		return n, io.EOF
	}
	return n, err
}

func (m *memDuplex) Write(p []byte) (int, error) {
	return m.written.Write(p)
}
