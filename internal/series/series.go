// Package series defines the derived-value series type shared by all
// indicator and risk computations. A derived series is always the same
// length as the price series it was computed from; positions where a
// lookback window is not yet full hold the absent sentinel (NaN).
package series

import "math"

// Series is a sequence of indicator values, index-aligned with its source
// price series. Absent positions hold NaN.
type Series []float64

// Absent returns the sentinel marking a position with no value.
func Absent() float64 { return math.NaN() }

// Present reports whether v carries a value.
func Present(v float64) bool { return !math.IsNaN(v) }

// Make returns a Series of length n with every position absent.
func Make(n int) Series {
	s := make(Series, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}

// Present reports whether the value at index i exists and carries a value.
func (s Series) Present(i int) bool {
	return i >= 0 && i < len(s) && !math.IsNaN(s[i])
}

// Last returns the final value of the series, or absent if the series is empty.
func (s Series) Last() float64 {
	if len(s) == 0 {
		return math.NaN()
	}
	return s[len(s)-1]
}

// LastPresent scans backward for the most recent present value.
func (s Series) LastPresent() (float64, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if !math.IsNaN(s[i]) {
			return s[i], true
		}
	}
	return 0, false
}

// CountPresent returns the number of present values.
func (s Series) CountPresent() int {
	n := 0
	for _, v := range s {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}
