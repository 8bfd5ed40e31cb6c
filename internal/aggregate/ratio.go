package aggregate

import (
	"encoding/json"
	"fmt"
)

// Ratio is a fraction that may be undefined. An undefined ratio reports as
// "N/A" and never as a number.
type Ratio struct {
	num, den int
}

// NewRatio builds num/den. A zero (or negative) denominator is undefined.
func NewRatio(num, den int) Ratio {
	return Ratio{num: num, den: den}
}

// Defined reports whether the ratio has a value.
func (r Ratio) Defined() bool { return r.den > 0 }

// Value returns the fraction in [0,1] for well-formed inputs.
func (r Ratio) Value() (float64, bool) {
	if !r.Defined() {
		return 0, false
	}
	return float64(r.num) / float64(r.den), true
}

// Percent returns the value scaled to 0..100.
func (r Ratio) Percent() (float64, bool) {
	v, ok := r.Value()
	return v * 100, ok
}

func (r Ratio) String() string {
	p, ok := r.Percent()
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", p)
}

// MarshalJSON encodes undefined ratios as null and defined ones as a percentage.
func (r Ratio) MarshalJSON() ([]byte, error) {
	p, ok := r.Percent()
	if !ok {
		return []byte("null"), nil
	}
	return json.Marshal(p)
}
