package solar

// Hours is a clock reading in fractional hours since local midnight.
//
// The zero value means "no solution": at high latitudes the sun may never
// reach a requested twilight angle, and anything derived from such an event
// must come out unsolved as well. The arithmetic methods carry absence
// through, so callers test once, when they read the result.
type Hours struct {
	v     float64
	valid bool
}

// NewHours wraps a concrete clock value.
func NewHours(v float64) Hours {
	return Hours{v: v, valid: true}
}

// NoSolution is the Hours value for an event that does not occur.
var NoSolution = Hours{}

// Valid reports whether h holds a solution.
func (h Hours) Valid() bool { return h.valid }

// Value returns the clock value and whether it is a solution.
func (h Hours) Value() (float64, bool) { return h.v, h.valid }

// Add shifts h by delta hours. Absence carries through.
func (h Hours) Add(delta float64) Hours {
	if !h.valid {
		return Hours{}
	}
	return Hours{v: h.v + delta, valid: true}
}

// Fix normalizes h into [0, 24). Absence carries through.
func (h Hours) Fix() Hours {
	if !h.valid {
		return Hours{}
	}
	return Hours{v: FixHour(h.v), valid: true}
}

// Diff returns the duration from one clock reading forward to another on
// the 24-hour circle, so Diff(sunset, sunrise) spans the night even though
// sunrise is numerically smaller. The result is unusable if either side
// has no solution.
func Diff(from, to Hours) (float64, bool) {
	if !from.valid || !to.valid {
		return 0, false
	}
	return FixHour(to.v - from.v), true
}

// Before reports whether a reads earlier on the clock than b. It is false
// when either side has no solution, so an unsolved event never wins an
// ordering test.
func Before(a, b Hours) bool {
	if !a.valid || !b.valid {
		return false
	}
	return a.v < b.v
}
