package layout

import (
	"strings"

	"github.com/matzehuels/boxwire/pkg/errors"
)

// ParseSide parses "top", "left", "bottom", "right" or "none".
// The empty string parses as [SideNone].
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return SideTop, nil
	case "left":
		return SideLeft, nil
	case "bottom":
		return SideBottom, nil
	case "right":
		return SideRight, nil
	case "", "none":
		return SideNone, nil
	default:
		return SideNone, errors.New(errors.ErrCodeInvalidSide, "unknown side %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(text []byte) error {
	v, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseEdges parses a "-" separated list of sides such as "bottom-right".
// "all" selects every edge; "" and "none" select none.
func ParseEdges(s string) (Edges, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "none":
		return EdgesNone, nil
	case "all":
		return EdgesAll, nil
	}

	var e Edges
	for _, part := range strings.Split(s, "-") {
		side, err := ParseSide(part)
		if err != nil || side == SideNone {
			return EdgesNone, errors.New(errors.ErrCodeInvalidSide, "unknown edge %q in %q", part, s)
		}
		e |= side.Edge()
	}
	return e, nil
}

// MarshalText implements encoding.TextMarshaler.
func (e Edges) MarshalText() ([]byte, error) {
	if e == EdgesAll {
		return []byte("all"), nil
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Edges) UnmarshalText(text []byte) error {
	v, err := ParseEdges(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}
