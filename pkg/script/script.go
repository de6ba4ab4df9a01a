// Package script replays recorded pointer gestures against a diagram.
//
// A script is a TOML document listing pointer events in order:
//
//	threshold = 3.0
//	modifiers = []
//
//	[[step]]
//	op = "down"
//	x = 140
//	y = 70
//
//	[[step]]
//	op = "move"
//	x = 200
//	y = 70
//
//	[[step]]
//	op = "up"
//	x = 200
//	y = 70
//
// A down step is hit tested against the diagram unless it names a target
// explicitly with role, id and index. The supported ops are down, move, up,
// cancel, lose-capture, modifiers and abort.
package script

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/boxwire/pkg/errors"
	"github.com/matzehuels/boxwire/pkg/gesture"
)

// Op is the kind of a script step.
type Op string

const (
	OpDown        Op = "down"
	OpMove        Op = "move"
	OpUp          Op = "up"
	OpCancel      Op = "cancel"
	OpLoseCapture Op = "lose-capture"
	OpModifiers   Op = "modifiers"
	OpAbort       Op = "abort"
)

var ops = map[Op]bool{
	OpDown: true, OpMove: true, OpUp: true, OpCancel: true,
	OpLoseCapture: true, OpModifiers: true, OpAbort: true,
}

// Script is a decoded gesture script.
type Script struct {
	Threshold *float64 `toml:"threshold"`
	Modifiers []string `toml:"modifiers"`
	Steps     []Step   `toml:"step"`
}

// Step is one pointer event.
type Step struct {
	Op        Op       `toml:"op"`
	Pointer   int      `toml:"pointer"`
	X         float64  `toml:"x"`
	Y         float64  `toml:"y"`
	Buttons   []string `toml:"buttons"`
	Modifiers []string `toml:"modifiers"`

	// Explicit target; an empty role means hit testing.
	Role  string `toml:"role"`
	ID    string `toml:"id"`
	Index int    `toml:"index"`
}

// Parse decodes and validates a script. Unknown keys are rejected.
func Parse(data []byte) (*Script, error) {
	var s Script
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "decode script")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidScript, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read script %s", path)
	}
	return Parse(data)
}

// Validate checks ops, modifier and button names, and explicit roles.
func (s *Script) Validate() error {
	if s.Threshold != nil && *s.Threshold < 0 {
		return errors.New(errors.ErrCodeInvalidScript, "negative threshold %v", *s.Threshold)
	}
	if _, err := gesture.ParseModifiers(s.Modifiers); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScript, err, "script modifiers")
	}
	for i, st := range s.Steps {
		if !ops[st.Op] {
			return errors.New(errors.ErrCodeInvalidScript, "step %d: unknown op %q", i+1, st.Op)
		}
		if _, err := gesture.ParseModifiers(st.Modifiers); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScript, err, "step %d", i+1)
		}
		if _, err := parseButtons(st.Buttons); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScript, err, "step %d", i+1)
		}
		if st.Role != "" {
			if _, err := gesture.ParseRole(st.Role); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidScript, err, "step %d", i+1)
			}
		}
	}
	return nil
}

// pointer returns the step's pointer id, 1 when unset.
func (st Step) pointer() int {
	if st.Pointer == 0 {
		return 1
	}
	return st.Pointer
}

// buttons returns the pressed buttons. A down step without buttons presses
// the primary button.
func (st Step) buttons() gesture.Buttons {
	b, _ := parseButtons(st.Buttons)
	if b == 0 && st.Op == OpDown {
		return gesture.ButtonPrimary
	}
	return b
}

func parseButtons(names []string) (gesture.Buttons, error) {
	var b gesture.Buttons
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "primary", "left":
			b |= gesture.ButtonPrimary
		case "secondary", "right":
			b |= gesture.ButtonSecondary
		case "auxiliary", "middle":
			b |= gesture.ButtonAuxiliary
		default:
			return 0, errors.New(errors.ErrCodeInvalidInput, "unknown button %q", n)
		}
	}
	return b, nil
}
