package diagram

import (
	"github.com/matzehuels/boxwire/pkg/layout"
	"github.com/matzehuels/boxwire/pkg/route"
)

// Kind is the kind of edit a gesture performs.
type Kind int

const (
	KindResize Kind = iota
	KindReorder
	KindOffset
	KindRearrange
)

func (k Kind) String() string {
	switch k {
	case KindResize:
		return "resize"
	case KindReorder:
		return "reorder"
	case KindOffset:
		return "offset"
	case KindRearrange:
		return "rearrange"
	default:
		return "unknown"
	}
}

// Phase says where in a gesture a change was emitted.
type Phase int

const (
	PhaseStep Phase = iota
	PhaseCommit
	PhaseCancel
)

func (p Phase) String() string {
	switch p {
	case PhaseCommit:
		return "commit"
	case PhaseCancel:
		return "cancel"
	default:
		return "step"
	}
}

// Change describes one edit. Only the field matching Kind is set.
type Change struct {
	Kind  Kind
	Phase Phase
	ID    string // box, border, port or wire id

	Rect   layout.Rect   // KindResize
	Order  []string      // KindReorder: border ids on the side, in order
	Offset layout.Length // KindOffset
	Path   route.Path    // KindRearrange
}

// Observer receives changes.
type Observer interface {
	OnChange(c Change)
}

// ObserverFunc adapts a function to [Observer].
type ObserverFunc func(c Change)

func (f ObserverFunc) OnChange(c Change) { f(c) }

// Activity flags mark elements that are being dragged.
type Activity uint8

const (
	ActResizing Activity = 1 << iota
	ActReordering
	ActMoving
	ActRearranging
)

func (a Activity) String() string {
	var out string
	for _, p := range []struct {
		a    Activity
		name string
	}{{ActResizing, "resizing"}, {ActReordering, "reordering"}, {ActMoving, "moving"}, {ActRearranging, "rearranging"}} {
		if a&p.a == 0 {
			continue
		}
		if out != "" {
			out += ","
		}
		out += p.name
	}
	return out
}
