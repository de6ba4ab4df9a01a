package layout

import (
	"math"
	"strconv"
)

// Length is a linear length expression: a pixel part plus a percentage of
// some base length supplied at resolution time.
//
// The zero value is 0px.
type Length struct {
	Px  float64 // Fixed part in pixels
	Pct float64 // Relative part in percent of the base
}

// Px returns a pure pixel length.
func Px(v float64) Length { return Length{Px: v} }

// Pct returns a pure percentage length.
func Pct(v float64) Length { return Length{Pct: v} }

// Calc returns a mixed length.
func Calc(px, pct float64) Length { return Length{Px: px, Pct: pct} }

// Resolve returns the pixel value of l against the given base.
func (l Length) Resolve(base float64) float64 {
	return l.Px + l.Pct*base/100
}

// IsZero reports whether both parts are zero.
func (l Length) IsZero() bool { return l.Px == 0 && l.Pct == 0 }

// Add returns the component-wise sum.
func (l Length) Add(o Length) Length {
	return Length{Px: l.Px + o.Px, Pct: l.Pct + o.Pct}
}

// Neg returns the component-wise negation.
func (l Length) Neg() Length {
	return Length{Px: negate(l.Px), Pct: negate(l.Pct)}
}

// String renders the CSS-like form: "10px", "25%", or "calc(10px + 25%)".
func (l Length) String() string {
	switch {
	case l.Pct == 0:
		return formatFloat(l.Px) + "px"
	case l.Px == 0:
		return formatFloat(l.Pct) + "%"
	case l.Pct < 0:
		return "calc(" + formatFloat(l.Px) + "px - " + formatFloat(-l.Pct) + "%)"
	default:
		return "calc(" + formatFloat(l.Px) + "px + " + formatFloat(l.Pct) + "%)"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Length) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Length) UnmarshalText(text []byte) error {
	v, err := ParseLength(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Clamp restricts the sign of a resolved length. Wire path segments use it
// to keep a segment from pointing back into the box it leaves.
type Clamp int

const (
	ClampNone        Clamp = iota // Unrestricted
	ClampAtLeastZero              // max(0px, x)
	ClampAtMostZero               // min(0px, x)
)

// Apply clamps a resolved pixel value.
func (c Clamp) Apply(v float64) float64 {
	switch c {
	case ClampAtLeastZero:
		return math.Max(0, v)
	case ClampAtMostZero:
		return math.Min(0, v)
	default:
		return v
	}
}

// Flip swaps the clamp direction. Reversing a path negates every segment,
// so a lower bound becomes an upper bound.
func (c Clamp) Flip() Clamp {
	switch c {
	case ClampAtLeastZero:
		return ClampAtMostZero
	case ClampAtMostZero:
		return ClampAtLeastZero
	default:
		return c
	}
}

// Wrap renders an expression string inside the clamp function.
func (c Clamp) Wrap(expr string) string {
	switch c {
	case ClampAtLeastZero:
		return "max(0px, " + expr + ")"
	case ClampAtMostZero:
		return "min(0px, " + expr + ")"
	default:
		return expr
	}
}

func (c Clamp) String() string {
	switch c {
	case ClampAtLeastZero:
		return "max"
	case ClampAtMostZero:
		return "min"
	default:
		return "none"
	}
}

func formatFloat(v float64) string {
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func negate(v float64) float64 {
	if v == 0 {
		return 0
	}
	return -v
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
