package script

import (
	"context"

	"github.com/matzehuels/boxwire/pkg/diagram"
	"github.com/matzehuels/boxwire/pkg/gesture"
	"github.com/matzehuels/boxwire/pkg/layout"
)

// Result summarizes a replay.
type Result struct {
	Steps   int              // steps delivered
	Armed   int              // down steps that started a gesture
	Changes []diagram.Change // every change the diagram emitted
}

// Commits returns the number of committed gesture changes.
func (r Result) Commits() int { return r.count(diagram.PhaseCommit) }

// Cancels returns the number of cancelled gesture changes.
func (r Result) Cancels() int { return r.count(diagram.PhaseCancel) }

func (r Result) count(p diagram.Phase) int {
	n := 0
	for _, c := range r.Changes {
		if c.Phase == p {
			n++
		}
	}
	return n
}

// Replay feeds the script through a new gesture session on d. The script's
// threshold and required modifiers apply first, so opts can override them.
// A cancelled context stops the replay between steps and aborts any live
// gesture, as does reaching the end of the script before an up or cancel.
func Replay(ctx context.Context, d *diagram.Diagram, s *Script, opts ...gesture.Option) (Result, error) {
	var res Result
	if err := s.Validate(); err != nil {
		return res, err
	}

	recording := true
	d.Observe(diagram.ObserverFunc(func(c diagram.Change) {
		if recording {
			res.Changes = append(res.Changes, c)
		}
	}))
	defer func() { recording = false }()

	required, _ := gesture.ParseModifiers(s.Modifiers)
	base := []gesture.Option{gesture.WithRequiredModifiers(required), gesture.WithContext(ctx)}
	if s.Threshold != nil {
		base = append(base, gesture.WithThreshold(*s.Threshold))
	}
	sess := gesture.NewSession(d, append(base, opts...)...)

	for _, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			sess.Abort()
			return res, err
		}
		if apply(sess, d, st) {
			res.Armed++
		}
		res.Steps++
	}
	// A script that stops mid-gesture is rolled back rather than left
	// half-applied.
	sess.Abort()
	return res, nil
}

// apply delivers one step and reports whether it armed a gesture.
func apply(sess *gesture.Session, d *diagram.Diagram, st Step) bool {
	mods, _ := gesture.ParseModifiers(st.Modifiers)
	ev := gesture.PointerEvent{
		PointerID: st.pointer(),
		Buttons:   st.buttons(),
		Modifiers: mods,
		X:         st.X,
		Y:         st.Y,
	}

	switch st.Op {
	case OpDown:
		ev.Target = target(d, st)
		return sess.PointerDown(ev)
	case OpMove:
		sess.PointerMove(ev)
	case OpUp:
		sess.PointerUp(ev)
	case OpCancel:
		sess.PointerCancel(ev)
	case OpLoseCapture:
		sess.LoseCapture(ev.PointerID)
	case OpModifiers:
		sess.ModifiersChanged(ev.PointerID, mods)
	case OpAbort:
		sess.Abort()
	}
	return false
}

func target(d *diagram.Diagram, st Step) gesture.Target {
	if st.Role == "" {
		return d.HitTest(layout.Point{X: st.X, Y: st.Y})
	}
	role, _ := gesture.ParseRole(st.Role)
	return gesture.Target{Role: role, ID: st.ID, Index: st.Index}
}
