package poll

// eager lifts an already-known (value, error) pair into a single-shot
// Pollable: it yields Ready(value) on its first Poll if err is nil, or
// the error if not, and panics on any subsequent Poll call. It lets
// synchronous results (a BindTransport that binds without a
// handshake, a handler that can answer immediately) share the same
// Pollable surface as truly asynchronous ones.
type eager[T any] struct {
	halt  Halt
	value T
	err   error
}

// Into lifts an eager (value, error) result into a Pollable.
func Into[T any](value T, err error) Pollable[T] {
	return &eager[T]{value: value, err: err}
}

func (e *eager[T]) Poll() (Result[T], error) {
	e.halt.Enter()
	e.halt.Complete()
	if e.err != nil {
		return Result[T]{}, e.err
	}
	return Ready(e.value), nil
}
