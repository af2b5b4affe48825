package poll

type andThenPhase int

const (
	phaseFirst andThenPhase = iota
	phaseSecond
	phaseAndThenDone
)

// AndThen sequences two Pollables: once the first completes with a
// value, a caller-supplied function consumes that value (exactly
// once) to produce the second Pollable, which is then driven to
// completion. If the second Pollable is immediately Ready the whole
// AndThen completes in the same outer Poll call that completed the
// first.
type AndThen[L, R any] struct {
	phase andThenPhase
	left  Pollable[L]
	f     func(L) Pollable[R]
	right Pollable[R]
}

// NewAndThen constructs an AndThen that runs left to completion, then
// calls f with its value to build the Pollable to run next.
func NewAndThen[L, R any](left Pollable[L], f func(L) Pollable[R]) *AndThen[L, R] {
	return &AndThen[L, R]{phase: phaseFirst, left: left, f: f}
}

// Poll implements Pollable[R].
func (a *AndThen[L, R]) Poll() (Result[R], error) {
	current := a.phase
	a.phase = phaseAndThenDone
	switch current {
	case phaseFirst:
		lr, err := a.left.Poll()
		if err != nil {
			return Result[R]{}, err
		}
		if !lr.IsReady() {
			a.phase = phaseFirst
			return NotReady[R](), nil
		}

		f := a.f
		a.f = nil
		right := f(lr.Value())

		rr, err := right.Poll()
		if err != nil {
			return Result[R]{}, err
		}
		if rr.IsReady() {
			a.phase = phaseAndThenDone
			return Ready(rr.Value()), nil
		}

		a.right = right
		a.phase = phaseSecond
		return NotReady[R](), nil

	case phaseSecond:
		rr, err := a.right.Poll()
		if err != nil {
			return Result[R]{}, err
		}
		if rr.IsReady() {
			a.phase = phaseAndThenDone
		} else {
			a.phase = phaseSecond
		}
		return rr, nil

	default:
		panic(ErrPolledAfterComplete)
	}
}
