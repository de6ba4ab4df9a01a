package gesture

import (
	"strings"

	"github.com/matzehuels/boxwire/pkg/errors"
)

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModAlt Modifiers = 1 << iota
	ModShift
	ModCtrl
	ModMeta

	ModNone Modifiers = 0
)

var modifierNames = []struct {
	mod  Modifiers
	name string
}{
	{ModAlt, "alt"},
	{ModShift, "shift"},
	{ModCtrl, "ctrl"},
	{ModMeta, "meta"},
}

// ParseModifiers parses modifier names ("alt", "shift", "ctrl", "meta").
func ParseModifiers(names []string) (Modifiers, error) {
	var m Modifiers
	for _, n := range names {
		found := false
		for _, mn := range modifierNames {
			if strings.EqualFold(strings.TrimSpace(n), mn.name) {
				m |= mn.mod
				found = true
				break
			}
		}
		if !found {
			return 0, errors.New(errors.ErrCodeInvalidInput, "unknown modifier %q", n)
		}
	}
	return m, nil
}

// Names returns the modifier names in canonical order.
func (m Modifiers) Names() []string {
	var out []string
	for _, mn := range modifierNames {
		if m&mn.mod != 0 {
			out = append(out, mn.name)
		}
	}
	return out
}

func (m Modifiers) String() string {
	if m == 0 {
		return "none"
	}
	return strings.Join(m.Names(), "+")
}

// Buttons is a bit set of pressed pointer buttons.
type Buttons uint8

const (
	ButtonPrimary Buttons = 1 << iota
	ButtonSecondary
	ButtonAuxiliary
)

// Role classifies what a pointer went down on.
type Role int

const (
	RoleNone     Role = iota
	RoleInterior      // box background
	RoleCorner        // corner port dot
	RoleEdge          // box edge
	RoleLine          // border line
	RoleDot           // border port dot
	RoleSegment       // wire segment
)

var roleNames = map[Role]string{
	RoleNone:     "none",
	RoleInterior: "interior",
	RoleCorner:   "corner",
	RoleEdge:     "edge",
	RoleLine:     "line",
	RoleDot:      "dot",
	RoleSegment:  "segment",
}

func (r Role) String() string {
	if n, ok := roleNames[r]; ok {
		return n
	}
	return "none"
}

// ParseRole parses a role name as printed by [Role.String].
func ParseRole(s string) (Role, error) {
	for r, n := range roleNames {
		if strings.EqualFold(s, n) {
			return r, nil
		}
	}
	return RoleNone, errors.New(errors.ErrCodeInvalidInput, "unknown target role %q", s)
}

// Target identifies the element under the pointer.
type Target struct {
	Role  Role
	ID    string // element id within the diagram
	Index int    // segment index for RoleSegment
}

// PointerEvent is one pointer sample.
type PointerEvent struct {
	PointerID int
	Buttons   Buttons
	Modifiers Modifiers
	X, Y      float64
	Target    Target
}
