package diagram

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/boxwire/pkg/errors"
	"github.com/matzehuels/boxwire/pkg/layout"
	"github.com/matzehuels/boxwire/pkg/route"
)

// Defaults for diagram geometry.
const (
	DefaultBorderSpacing = 8.0 // px between stacked borders
	DefaultHitSlop       = 4.0 // px tolerance for dots, lines and segments
)

// Option configures a [Diagram].
type Option func(*Diagram)

// WithBorderSpacing sets the inset step between stacked borders.
func WithBorderSpacing(px float64) Option {
	return func(d *Diagram) { d.borderSpacing = px }
}

// WithStub sets the wire stub length.
func WithStub(px float64) Option {
	return func(d *Diagram) { d.stub = px }
}

// WithHitSlop sets the hit testing tolerance.
func WithHitSlop(px float64) Option {
	return func(d *Diagram) { d.hitSlop = px }
}

// WithLogger sets the logger. The default is log.Default().
func WithLogger(l *log.Logger) Option {
	return func(d *Diagram) {
		if l != nil {
			d.logger = l
		}
	}
}

// Diagram is the root of a box tree on a canvas of fixed pixel size.
// It is not safe for concurrent use.
type Diagram struct {
	Name string
	Size layout.Size

	roots   []*Box
	boxes   map[string]*Box
	borders map[string]*Border
	ports   map[string]*Port
	wires   map[string]*Wire
	order   []*Wire // creation order

	borderSpacing float64
	stub          float64
	hitSlop       float64
	observers     []Observer
	logger        *log.Logger
}

// New returns an empty diagram.
func New(size layout.Size, opts ...Option) *Diagram {
	d := &Diagram{
		Size:          size,
		boxes:         make(map[string]*Box),
		borders:       make(map[string]*Border),
		ports:         make(map[string]*Port),
		wires:         make(map[string]*Wire),
		borderSpacing: DefaultBorderSpacing,
		stub:          route.DefaultStub,
		hitSlop:       DefaultHitSlop,
		logger:        log.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// BorderSpacing returns the inset step between stacked borders.
func (d *Diagram) BorderSpacing() float64 { return d.borderSpacing }

// Stub returns the wire stub length.
func (d *Diagram) Stub() float64 { return d.stub }

// Observe registers an observer for every change.
func (d *Diagram) Observe(o Observer) {
	if o != nil {
		d.observers = append(d.observers, o)
	}
}

func (d *Diagram) emit(c Change) {
	for _, o := range d.observers {
		o.OnChange(c)
	}
}

// Roots returns the top-level boxes in paint order.
func (d *Diagram) Roots() []*Box { return d.roots }

// Box returns the box with the given id.
func (d *Diagram) Box(id string) (*Box, bool) {
	b, ok := d.boxes[id]
	return b, ok
}

// Border returns the border with the given id.
func (d *Diagram) Border(id string) (*Border, bool) {
	b, ok := d.borders[id]
	return b, ok
}

// Port returns the port with the given id.
func (d *Diagram) Port(id string) (*Port, bool) {
	p, ok := d.ports[id]
	return p, ok
}

// Wire returns the wire with the given id.
func (d *Diagram) Wire(id string) (*Wire, bool) {
	w, ok := d.wires[id]
	return w, ok
}

// Wires returns all wires in creation order.
func (d *Diagram) Wires() []*Wire { return d.order }

// Walk visits every box in paint order (parents before children, earlier
// siblings before later ones).
func (d *Diagram) Walk(fn func(b *Box, depth int)) {
	var walk func(bs []*Box, depth int)
	walk = func(bs []*Box, depth int) {
		for _, b := range bs {
			fn(b, depth)
			walk(b.Children, depth+1)
		}
	}
	walk(d.roots, 0)
}

// Counts returns the number of boxes, borders, ports and wires.
func (d *Diagram) Counts() (boxes, borders, ports, wires int) {
	return len(d.boxes), len(d.borders), len(d.ports), len(d.wires)
}

func (d *Diagram) newID(id string) (string, error) {
	if id == "" {
		return uuid.NewString(), nil
	}
	_, box := d.boxes[id]
	_, border := d.borders[id]
	_, port := d.ports[id]
	_, wire := d.wires[id]
	if box || border || port || wire {
		return "", errors.New(errors.ErrCodeInvalidDiagram, "duplicate id %q", id)
	}
	return id, nil
}

// ============================================================================
// Construction
// ============================================================================

// AddBox adds a box under parent, or at the top level when parent is nil.
// An empty id is replaced by a generated one.
func (d *Diagram) AddBox(parent *Box, id string, rect layout.Rect) (*Box, error) {
	id, err := d.newID(id)
	if err != nil {
		return nil, err
	}
	if parent != nil && parent.diagram != d {
		return nil, errors.New(errors.ErrCodeInvalidDiagram, "parent box %q is not in this diagram", parent.ID)
	}
	b := &Box{ID: id, Rect: rect, parent: parent, diagram: d}
	if parent == nil {
		d.roots = append(d.roots, b)
	} else {
		parent.Children = append(parent.Children, b)
	}
	d.boxes[id] = b
	return b, nil
}

// AddBorder adds a border on one side of box. It is stacked innermost, so
// its order is the number of borders already on that side.
func (d *Diagram) AddBorder(box *Box, id string, side layout.Side) (*Border, error) {
	if box == nil || box.diagram != d {
		return nil, errors.New(errors.ErrCodeInvalidDiagram, "border %q needs a box in this diagram", id)
	}
	if side == layout.SideNone {
		return nil, errors.New(errors.ErrCodeInvalidSide, "border %q needs a side", id)
	}
	id, err := d.newID(id)
	if err != nil {
		return nil, err
	}
	br := &Border{ID: id, Side: side, Order: len(box.BordersOn(side)), box: box, diagram: d}
	box.Borders = append(box.Borders, br)
	d.borders[id] = br
	return br, nil
}

// AddPort adds a port on border at offset along it.
func (d *Diagram) AddPort(border *Border, id string, offset layout.Length) (*Port, error) {
	if border == nil || border.diagram != d {
		return nil, errors.New(errors.ErrCodeInvalidDiagram, "port %q needs a border in this diagram", id)
	}
	id, err := d.newID(id)
	if err != nil {
		return nil, err
	}
	p := &Port{ID: id, Offset: offset, border: border, box: border.box, diagram: d}
	border.Ports = append(border.Ports, p)
	d.ports[id] = p
	return p, nil
}

// AddCornerPort adds a port on a corner of box. corner must name one
// vertical and one horizontal edge, e.g. EdgeTop|EdgeLeft.
func (d *Diagram) AddCornerPort(box *Box, id string, corner layout.Edges) (*Port, error) {
	if box == nil || box.diagram != d {
		return nil, errors.New(errors.ErrCodeInvalidDiagram, "corner port %q needs a box in this diagram", id)
	}
	if !isCorner(corner) {
		return nil, errors.New(errors.ErrCodeInvalidSide, "corner port %q: %v is not a corner", id, corner)
	}
	for _, c := range box.Corners {
		if c.Corner == corner {
			return nil, errors.New(errors.ErrCodeInvalidDiagram, "box %q already has a %v port", box.ID, corner)
		}
	}
	id, err := d.newID(id)
	if err != nil {
		return nil, err
	}
	p := &Port{ID: id, Corner: corner, box: box, diagram: d}
	box.Corners = append(box.Corners, p)
	d.ports[id] = p
	return p, nil
}

// AddWire connects two ports. The wire is owned by from.
func (d *Diagram) AddWire(id, from, to string) (*Wire, error) {
	fp, ok := d.ports[from]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidDiagram, "wire %q: unknown start port %q", id, from)
	}
	tp, ok := d.ports[to]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidDiagram, "wire %q: unknown end port %q", id, to)
	}
	if fp == tp {
		return nil, errors.New(errors.ErrCodeInvalidDiagram, "wire %q starts and ends at %q", id, from)
	}
	id, err := d.newID(id)
	if err != nil {
		return nil, err
	}
	w := &Wire{
		ID:      id,
		From:    fp,
		To:      tp,
		router:  route.NewRouter(route.Ends{From: fp.Side(), To: tp.Side(), Stub: d.stub}),
		diagram: d,
	}
	fp.Wires = append(fp.Wires, w)
	d.wires[id] = w
	d.order = append(d.order, w)
	w.Refresh()
	return w, nil
}

func isCorner(e layout.Edges) bool {
	v := e & (layout.EdgeTop | layout.EdgeBottom)
	h := e & (layout.EdgeLeft | layout.EdgeRight)
	return (v == layout.EdgeTop || v == layout.EdgeBottom) && (h == layout.EdgeLeft || h == layout.EdgeRight)
}

// ============================================================================
// Wire refresh
// ============================================================================

// RefreshWires updates the router of every wire.
func (d *Diagram) RefreshWires() {
	for _, w := range d.order {
		w.Refresh()
	}
}

// refreshWiresIn updates every wire with an end on box or its descendants.
func (d *Diagram) refreshWiresIn(box *Box) {
	for _, w := range d.order {
		if w.From.box.within(box) || w.To.box.within(box) {
			w.Refresh()
		}
	}
}

// refreshWiresAt updates every wire with an end on port.
func (d *Diagram) refreshWiresAt(p *Port) {
	for _, w := range d.order {
		if w.From == p || w.To == p {
			w.Refresh()
		}
	}
}

// densify renumbers the borders on one side of box 0..n-1 keeping their
// relative order.
func densify(box *Box, side layout.Side) {
	on := box.BordersOn(side)
	for i, br := range on {
		br.Order = i
	}
}

func sortByOrder(bs []*Border) {
	sort.SliceStable(bs, func(i, j int) bool { return bs[i].Order < bs[j].Order })
}
