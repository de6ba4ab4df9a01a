package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxwire/pkg/diagram"
	"github.com/matzehuels/boxwire/pkg/export"
	"github.com/matzehuels/boxwire/pkg/gesture"
)

// editCommand opens a diagram in the terminal editor.
func (c *CLI) editCommand() *cobra.Command {
	var cellW, cellH float64

	cmd := &cobra.Command{
		Use:   "edit DIAGRAM",
		Short: "Edit a diagram with the mouse in the terminal",
		Long: `Open a diagram in a full-screen terminal editor.

Drag a box background to move it, an edge or corner to resize it, a border
line to reorder it, a port to slide it and a wire segment to reroute it.
Keys: esc cancels a drag, r resets wire paths, s saves, q quits.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeDiagram,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(cmd.Context(), args[0], export.Options{
				CellWidth:  cellW,
				CellHeight: cellH,
				DotRadius:  c.Config.Layout.DotRadius,
				Labels:     true,
			})
		},
	}

	cmd.Flags().Float64Var(&cellW, "cell-width", 8, "pixels per terminal column")
	cmd.Flags().Float64Var(&cellH, "cell-height", 16, "pixels per terminal row")

	return cmd
}

func (c *CLI) runEdit(ctx context.Context, arg string, opts export.Options) error {
	// The editor owns the screen, so nothing logs while it runs.
	quiet := silentLogger()

	// A terminal cell is much coarser than the pixel slop, so hits snap to
	// half a cell.
	slop := max(c.Config.Layout.HitSlop, opts.CellWidth/2, opts.CellHeight/2)
	d, err := c.loadDiagram(ctx, arg, diagram.WithHitSlop(slop), diagram.WithLogger(quiet))
	if err != nil {
		return err
	}

	sess := gesture.NewSession(d, append(c.Config.GestureOptions(quiet), gesture.WithContext(ctx))...)
	m := newEditModel(d, sess, opts, arg, func() error { return c.saveDiagram(ctx, arg, d) })

	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if em, ok := final.(*editModel); ok && em.dirty {
		printWarning("Quit with unsaved changes to %s", arg)
	}
	return nil
}

// =============================================================================
// Editor Model
// =============================================================================

// Screen rows above the canvas: title, blank line, top border.
const (
	canvasTop  = 3
	canvasLeft = 1
)

// editPointer is the pointer id used for the terminal mouse.
const editPointer = 1

var (
	editBorderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	wireStyle       = lipgloss.NewStyle().Foreground(colorBlue)
	portStyle       = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	borderLineStyle = lipgloss.NewStyle().Foreground(colorYellow)
)

// editModel is the bubbletea model of the editor. It is used by pointer so
// the diagram observer can update it during Update.
type editModel struct {
	d     *diagram.Diagram
	sess  *gesture.Session
	opts  export.Options
	title string
	save  func() error

	grid   *export.Grid
	status string
	last   *diagram.Change
	dirty  bool
}

func newEditModel(d *diagram.Diagram, sess *gesture.Session, opts export.Options, title string, save func() error) *editModel {
	m := &editModel{d: d, sess: sess, opts: opts, title: title, save: save}
	d.Observe(diagram.ObserverFunc(m.onChange))
	m.redraw()
	return m
}

func (m *editModel) onChange(ch diagram.Change) {
	m.last = &ch
	switch ch.Phase {
	case diagram.PhaseCommit:
		m.dirty = true
		m.status = styleCommit.Render(describeChange(ch))
	case diagram.PhaseCancel:
		m.status = styleCancel.Render(describeChange(ch))
	}
}

func (m *editModel) redraw() {
	m.grid = export.Rasterize(m.d, m.opts)
}

func (m *editModel) Init() tea.Cmd {
	return nil
}

func (m *editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.sess.Abort()
			return m, tea.Quit
		case "esc":
			m.sess.Abort()
		case "r":
			for _, w := range m.d.Wires() {
				w.ResetPath()
			}
			m.d.RefreshWires()
			m.dirty = true
			m.status = "wire paths reset"
		case "s":
			m.saveNow()
		}
	case tea.MouseMsg:
		m.mouse(msg)
	}
	m.redraw()
	return m, nil
}

func (m *editModel) saveNow() {
	if m.save == nil {
		m.status = StyleWarning.Render("nowhere to save")
		return
	}
	if err := m.save(); err != nil {
		m.status = styleCancel.Render("save failed: " + err.Error())
		return
	}
	m.dirty = false
	m.status = StyleSuccess.Render("saved " + m.title)
}

func (m *editModel) mouse(msg tea.MouseMsg) {
	pt := m.grid.Point(msg.X-canvasLeft, msg.Y-canvasTop)
	ev := gesture.PointerEvent{
		PointerID: editPointer,
		Modifiers: mouseModifiers(msg),
		X:         pt.X,
		Y:         pt.Y,
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		ev.Buttons = gesture.ButtonPrimary
		ev.Target = m.d.HitTest(pt)
		if !m.sess.PointerDown(ev) {
			m.status = StyleDim.Render(fmt.Sprintf("nothing to drag at %g,%g", pt.X, pt.Y))
			return
		}
		m.status = StyleDim.Render(fmt.Sprintf("%s %s", ev.Target.Role, ev.Target.ID))
	case tea.MouseActionMotion:
		if !m.sess.Live() {
			return
		}
		m.sess.ModifiersChanged(editPointer, ev.Modifiers)
		ev.Buttons = gesture.ButtonPrimary
		m.sess.PointerMove(ev)
	case tea.MouseActionRelease:
		m.sess.PointerUp(ev)
	}
}

// mouseModifiers maps terminal modifier flags. Terminals do not report a
// meta key with mouse events.
func mouseModifiers(msg tea.MouseMsg) gesture.Modifiers {
	var mods gesture.Modifiers
	if msg.Alt {
		mods |= gesture.ModAlt
	}
	if msg.Shift {
		mods |= gesture.ModShift
	}
	if msg.Ctrl {
		mods |= gesture.ModCtrl
	}
	return mods
}

func (m *editModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("boxwire edit"))
	b.WriteString(" " + StyleDim.Render(m.title))
	if m.dirty {
		b.WriteString(StyleWarning.Render(" *"))
	}
	b.WriteString("\n\n")

	lines := m.grid.Lines()
	for i, line := range lines {
		lines[i] = styleCanvasLine(line)
	}
	b.WriteString(editBorderStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")

	state := StyleDim.Render("idle")
	if m.sess.Dragging() {
		state = StyleWarning.Render("dragging")
	} else if m.sess.Live() {
		state = StyleNumber.Render("armed")
	}
	b.WriteString(state + "  " + m.status + "\n")
	b.WriteString(StyleDim.Render("drag: mouse  esc: cancel  r: reset wires  s: save  q: quit"))

	return b.String()
}

// styleCanvasLine colors wires, ports and border lines, styling runs of
// equal class together.
func styleCanvasLine(line string) string {
	var b strings.Builder
	runes := []rune(line)
	for i := 0; i < len(runes); {
		class := glyphClass(runes[i])
		j := i + 1
		for j < len(runes) && glyphClass(runes[j]) == class {
			j++
		}
		if class == glyphPlain {
			b.WriteString(string(runes[i:j]))
		} else {
			b.WriteString(glyphStyles[class].Render(string(runes[i:j])))
		}
		i = j
	}
	return b.String()
}

const (
	glyphPlain = iota
	glyphWire
	glyphPort
	glyphBorder
)

var glyphStyles = map[int]lipgloss.Style{
	glyphWire:   wireStyle,
	glyphPort:   portStyle,
	glyphBorder: borderLineStyle,
}

func glyphClass(r rune) int {
	switch r {
	case export.GlyphWire:
		return glyphWire
	case export.GlyphPort, export.GlyphCornerPort:
		return glyphPort
	case export.GlyphBorderH, export.GlyphBorderV:
		return glyphBorder
	}
	return glyphPlain
}
