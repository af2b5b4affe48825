package poll

// MapErr adapts a Pollable's error type by applying f to whatever
// error it produces. Ready results pass through untouched. f is
// consumed at most once.
type MapErr[T any] struct {
	inner Pollable[T]
	f     func(error) error
	done  bool
}

// NewMapErr wraps inner so that any error it yields is first passed
// through f.
func NewMapErr[T any](inner Pollable[T], f func(error) error) *MapErr[T] {
	return &MapErr[T]{inner: inner, f: f}
}

// Poll implements Pollable[T].
func (m *MapErr[T]) Poll() (Result[T], error) {
	if m.done {
		panic(ErrPolledAfterComplete)
	}
	r, err := m.inner.Poll()
	if err == nil {
		if r.IsReady() {
			m.done = true
		}
		return r, nil
	}
	m.done = true
	f := m.f
	m.f = nil
	return Result[T]{}, f(err)
}
