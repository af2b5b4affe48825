package poll

// Boxed is a Pollable wrapper with a single concrete type, letting a
// Connection's state machine hold handlers that each return a
// differently-shaped Pollable chain (a Join here, an AndThen there)
// behind one field type. Poll is simply forwarded to the wrapped
// value; Boxed carries no state of its own beyond the indirection.
type Boxed[T any] struct {
	inner Pollable[T]
}

// Box erases the concrete type of p behind a Boxed[T].
func Box[T any](p Pollable[T]) Boxed[T] {
	return Boxed[T]{inner: p}
}

// Poll implements Pollable[T] by forwarding to the boxed Pollable.
func (b Boxed[T]) Poll() (Result[T], error) {
	return b.inner.Poll()
}
