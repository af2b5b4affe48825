package poll

import (
	"io"

	"github.com/coreflux/reactor/internal/netio"
)

// transfer is the one-directional half of Twist: it copies bytes
// read from source into destination until source reports EOF,
// translating would-block into NotReady on both the read and the
// write side. It mirrors the Rust original's Transfer type.
type transfer struct {
	source      io.Reader
	destination io.Writer
	buf         [8 * 1024]byte
	writing     bool
	pending     []byte
	transferred int
}

func newTransfer(source io.Reader, destination io.Writer) *transfer {
	return &transfer{source: source, destination: destination}
}

func (t *transfer) Poll() (Result[int], error) {
	for {
		if !t.writing {
			n, err := t.source.Read(t.buf[:])
			if err != nil {
				if netio.IsWouldBlock(err) {
					return NotReady[int](), nil
				}
				if err == io.EOF {
					return Ready(t.transferred), nil
				}
				return Result[int]{}, err
			}
			if n == 0 {
				return Ready(t.transferred), nil
			}
			t.pending = t.buf[:n]
			t.writing = true
			continue
		}

		n, err := t.destination.Write(t.pending)
		if err != nil {
			if netio.IsWouldBlock(err) {
				return NotReady[int](), nil
			}
			return Result[int]{}, err
		}
		if n == 0 {
			return Ready(t.transferred), nil
		}
		t.transferred += n
		if n == len(t.pending) {
			t.writing = false
			t.pending = nil
			continue
		}
		t.pending = t.pending[n:]
	}
}

// Twist copies bytes from a into b and from b into a concurrently,
// completing once both directions have hit EOF on their source. It
// returns the number of bytes transferred in each direction:
// (copiedFromAToB, copiedFromBToA).
//
// a and b must support being read from and written to independently
// (e.g. a duplex in-memory pipe, or a TCP connection's half-duplex
// shutdown semantics) since both directions are driven at once.
func Twist(a, b io.ReadWriter) Pollable[Pair[int, int]] {
	return NewJoin[int, int](newTransfer(a, b), newTransfer(b, a))
}
