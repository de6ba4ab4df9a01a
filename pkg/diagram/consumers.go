package diagram

import (
	"github.com/matzehuels/boxwire/pkg/gesture"
	"github.com/matzehuels/boxwire/pkg/layout"
	"github.com/matzehuels/boxwire/pkg/route"
)

// Every consumer captures its transform in Begin and treats a detached
// owner as finished: steps return Done, commit and cancel do nothing.

// ============================================================================
// Resize
// ============================================================================

// resizeConsumer moves or resizes a box through a set of edges.
type resizeConsumer struct {
	d       *Diagram
	box     *Box
	mode    layout.Edges
	resizer *layout.Resizer
}

func (c *resizeConsumer) live() bool { return c.box.Attached() && c.resizer != nil }

func (c *resizeConsumer) Begin() {
	if !c.box.Attached() {
		return
	}
	c.resizer = layout.NewResizer(c.mode, c.box.parentSize(), c.box.Rect, c.box.Frame())
	c.box.Activity |= ActResizing
}

func (c *resizeConsumer) Step(dx, dy float64) gesture.Status {
	if !c.live() {
		return gesture.Done
	}
	rect := c.resizer.At(dx, dy)
	if c.box.Anchored() {
		// The anchor stays put; only the extent changes.
		orig := c.resizer.Original()
		rect.Left, rect.Top = orig.Left, orig.Top
	}
	c.box.Rect = rect
	c.d.refreshWiresIn(c.box)
	c.d.emit(Change{Kind: KindResize, Phase: PhaseStep, ID: c.box.ID, Rect: rect})
	return gesture.Continue
}

func (c *resizeConsumer) Commit() {
	if !c.live() {
		return
	}
	c.box.Activity &^= ActResizing
	c.d.emit(Change{Kind: KindResize, Phase: PhaseCommit, ID: c.box.ID, Rect: c.box.Rect})
}

func (c *resizeConsumer) Cancel() {
	if !c.live() {
		return
	}
	c.box.Rect = c.resizer.Original()
	c.d.refreshWiresIn(c.box)
	c.box.Activity &^= ActResizing
	c.d.emit(Change{Kind: KindResize, Phase: PhaseCancel, ID: c.box.ID, Rect: c.box.Rect})
}

// ============================================================================
// Reorder
// ============================================================================

// reorderConsumer moves a border between its siblings on the same side.
type reorderConsumer struct {
	d      *Diagram
	border *Border
	sorter *layout.Sorter[*Border]
}

func (c *reorderConsumer) live() bool { return c.border.Attached() && c.sorter != nil }

func (c *reorderConsumer) Begin() {
	if !c.border.Attached() {
		return
	}
	siblings := c.border.box.BordersOn(c.border.Side)
	var step float64
	if len(siblings) >= 2 {
		step = siblings[1].position() - siblings[0].position()
	}
	c.sorter = layout.NewSorter(siblings, c.border.Order, step)
	c.border.Activity |= ActReordering
}

func (c *reorderConsumer) Step(dx, dy float64) gesture.Status {
	if !c.live() {
		return gesture.Done
	}
	shift := c.border.Side.Axis().Pick(dx, dy)
	ids := c.apply(c.sorter.At(shift))
	c.d.emit(Change{Kind: KindReorder, Phase: PhaseStep, ID: c.border.ID, Order: ids})
	return gesture.Continue
}

func (c *reorderConsumer) Commit() {
	if !c.live() {
		return
	}
	c.border.Activity &^= ActReordering
	c.d.emit(Change{Kind: KindReorder, Phase: PhaseCommit, ID: c.border.ID, Order: c.ids()})
}

func (c *reorderConsumer) Cancel() {
	if !c.live() {
		return
	}
	ids := c.apply(c.sorter.Original())
	c.border.Activity &^= ActReordering
	c.d.emit(Change{Kind: KindReorder, Phase: PhaseCancel, ID: c.border.ID, Order: ids})
}

// apply renumbers the borders 0..n-1 in list order. Borders removed since
// the drag began are skipped.
func (c *reorderConsumer) apply(list []*Border) []string {
	i := 0
	for _, br := range list {
		if !br.Attached() {
			continue
		}
		br.Order = i
		i++
	}
	c.d.refreshWiresIn(c.border.box)
	return c.ids()
}

func (c *reorderConsumer) ids() []string {
	on := c.border.box.BordersOn(c.border.Side)
	ids := make([]string, len(on))
	for i, br := range on {
		ids[i] = br.ID
	}
	return ids
}

// ============================================================================
// Offset
// ============================================================================

// offsetConsumer slides a port along its border.
type offsetConsumer struct {
	d       *Diagram
	port    *Port
	shifter *layout.Shifter
}

func (c *offsetConsumer) live() bool { return c.port.Attached() && c.shifter != nil }

func (c *offsetConsumer) Begin() {
	if !c.port.Attached() {
		return
	}
	c.shifter = layout.NewShifter(c.port.border.Length(), c.port.along(), c.port.Offset)
	c.port.Activity |= ActMoving
}

func (c *offsetConsumer) Step(dx, dy float64) gesture.Status {
	if !c.live() {
		return gesture.Done
	}
	// The port slides along the border, across the border's own axis.
	shift := c.port.border.Side.Axis().Other().Pick(dx, dy)
	c.port.Offset = c.shifter.At(shift)
	c.d.refreshWiresAt(c.port)
	c.d.emit(Change{Kind: KindOffset, Phase: PhaseStep, ID: c.port.ID, Offset: c.port.Offset})
	return gesture.Continue
}

func (c *offsetConsumer) Commit() {
	if !c.live() {
		return
	}
	c.port.Activity &^= ActMoving
	c.d.emit(Change{Kind: KindOffset, Phase: PhaseCommit, ID: c.port.ID, Offset: c.port.Offset})
}

func (c *offsetConsumer) Cancel() {
	if !c.live() {
		return
	}
	c.port.Offset = c.shifter.Original()
	c.d.refreshWiresAt(c.port)
	c.port.Activity &^= ActMoving
	c.d.emit(Change{Kind: KindOffset, Phase: PhaseCancel, ID: c.port.ID, Offset: c.port.Offset})
}

// ============================================================================
// Rearrange
// ============================================================================

// rearrangeConsumer drags an interior wire segment sideways.
type rearrangeConsumer struct {
	d          *Diagram
	wire       *Wire
	index      int
	rearranger *route.Rearranger
	wasCustom  bool
}

func (c *rearrangeConsumer) live() bool { return c.wire.Attached() && c.rearranger != nil }

func (c *rearrangeConsumer) Begin() {
	if !c.wire.Attached() {
		return
	}
	c.wasCustom = c.wire.Custom()
	canvas := layout.Box{Width: c.d.Size.Width, Height: c.d.Size.Height}
	c.rearranger = route.NewRearranger(c.wire.Path(), c.wire.Ends(), c.wire.Span(), c.index).
		Within(c.wire.From.Position(), canvas)
	c.wire.Activity |= ActRearranging
}

func (c *rearrangeConsumer) Step(dx, dy float64) gesture.Status {
	if !c.live() {
		return gesture.Done
	}
	p := c.rearranger.At(dx, dy)
	c.wire.SetPath(p)
	c.d.emit(Change{Kind: KindRearrange, Phase: PhaseStep, ID: c.wire.ID, Path: p})
	return gesture.Continue
}

func (c *rearrangeConsumer) Commit() {
	if !c.live() {
		return
	}
	c.wire.Activity &^= ActRearranging
	c.d.emit(Change{Kind: KindRearrange, Phase: PhaseCommit, ID: c.wire.ID, Path: c.wire.Path()})
}

func (c *rearrangeConsumer) Cancel() {
	if !c.live() {
		return
	}
	if c.wasCustom {
		c.wire.SetPath(c.rearranger.Original())
	} else {
		c.wire.ResetPath()
	}
	c.wire.Activity &^= ActRearranging
	c.d.emit(Change{Kind: KindRearrange, Phase: PhaseCancel, ID: c.wire.ID, Path: c.wire.Path()})
}
