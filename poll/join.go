package poll

// join states, mirroring the Rust original's Neither/LeftDone/RightDone/Done
// tagged union. A Join's fields are only ever read through the joinPhase
// it currently holds; the "atomically move out to Done, compute next,
// reassign" idiom keeps a half-finished Join from ever being observed
// mid-transition.
type joinPhase int

const (
	phaseNeither joinPhase = iota
	phaseLeftDone
	phaseRightDone
	phaseDone
)

// Join runs two Pollables concurrently (in the sense that each is
// polled once per outer Poll call, until it completes) and completes
// with the pair of their values once both sides are Ready.
//
// Each side is polled at most once per call to Join.Poll; the caller
// yielding the goroutine between outer polls is what gives the other
// side a chance to make progress, so neither side can starve the
// other.
type Join[L, R any] struct {
	phase joinPhase
	left  Pollable[L]
	right Pollable[R]
	lval  L
	rval  R
}

// NewJoin constructs a Join of two Pollables.
func NewJoin[L, R any](left Pollable[L], right Pollable[R]) *Join[L, R] {
	return &Join[L, R]{phase: phaseNeither, left: left, right: right}
}

// Poll implements Pollable[Pair[L, R]] by returning the pair once
// both sides have completed.
func (j *Join[L, R]) Poll() (Result[Pair[L, R]], error) {
	current := j.phase
	j.phase = phaseDone
	switch current {
	case phaseNeither:
		lr, err := j.left.Poll()
		if err != nil {
			return Result[Pair[L, R]]{}, err
		}
		rr, err := j.right.Poll()
		if err != nil {
			return Result[Pair[L, R]]{}, err
		}
		switch {
		case lr.IsReady() && rr.IsReady():
			j.phase = phaseDone
			return Ready(Pair[L, R]{First: lr.Value(), Second: rr.Value()}), nil
		case lr.IsReady():
			j.lval = lr.Value()
			j.phase = phaseLeftDone
		case rr.IsReady():
			j.rval = rr.Value()
			j.phase = phaseRightDone
		default:
			j.phase = phaseNeither
		}
		return NotReady[Pair[L, R]](), nil

	case phaseLeftDone:
		rr, err := j.right.Poll()
		if err != nil {
			return Result[Pair[L, R]]{}, err
		}
		if rr.IsReady() {
			j.phase = phaseDone
			return Ready(Pair[L, R]{First: j.lval, Second: rr.Value()}), nil
		}
		j.phase = phaseLeftDone
		return NotReady[Pair[L, R]](), nil

	case phaseRightDone:
		lr, err := j.left.Poll()
		if err != nil {
			return Result[Pair[L, R]]{}, err
		}
		if lr.IsReady() {
			j.phase = phaseDone
			return Ready(Pair[L, R]{First: lr.Value(), Second: j.rval}), nil
		}
		j.phase = phaseRightDone
		return NotReady[Pair[L, R]](), nil

	default:
		panic(ErrPolledAfterComplete)
	}
}

// Pair is the value a Join yields: the completed value of each side.
type Pair[L, R any] struct {
	First  L
	Second R
}
