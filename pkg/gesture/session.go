package gesture

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/boxwire/pkg/observability"
)

// DefaultThreshold is the distance in pixels, on either axis, the pointer
// must travel before a gesture starts.
const DefaultThreshold = 3.0

// State is the phase of a session.
type State int

const (
	StateIdle State = iota
	StateArmed
	StateDragging
)

func (s State) String() string {
	switch s {
	case StateArmed:
		return "armed"
	case StateDragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Reason says why a gesture was cancelled.
type Reason string

const (
	ReasonPointerCancel Reason = "pointer-cancel"
	ReasonLostCapture   Reason = "lost-capture"
	ReasonModifiers     Reason = "modifiers-changed"
	ReasonAborted       Reason = "aborted"
)

// Option configures a [Session].
type Option func(*Session)

// WithThreshold sets the start distance. Negative values are treated as zero.
func WithThreshold(px float64) Option {
	return func(s *Session) { s.threshold = math.Max(0, px) }
}

// WithRequiredModifiers sets the exact modifier mask a pointer down must
// carry to qualify.
func WithRequiredModifiers(m Modifiers) Option {
	return func(s *Session) { s.required = m }
}

// WithCapturer sets the pointer capture provider. The default is a private
// [CaptureTable].
func WithCapturer(c Capturer) Option {
	return func(s *Session) {
		if c != nil {
			s.capturer = c
		}
	}
}

// WithLogger sets the logger. The default is log.Default().
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithContext sets the context passed to observability hooks.
func WithContext(ctx context.Context) Option {
	return func(s *Session) {
		if ctx != nil {
			s.ctx = ctx
		}
	}
}

// WithClock replaces time.Now for duration reporting.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// Session drives one pointer gesture at a time. See the package
// documentation for the lifecycle.
type Session struct {
	id          string
	broadcaster Broadcaster
	capturer    Capturer
	threshold   float64
	required    Modifiers
	logger      *log.Logger
	ctx         context.Context
	now         func() time.Time

	state     State
	pointerID int
	originX   float64
	originY   float64
	role      Role
	consumers []Consumer
	steps     int
	startedAt time.Time
	busy      bool
}

// NewSession returns an idle session that raises its registration requests
// through b.
func NewSession(b Broadcaster, opts ...Option) *Session {
	s := &Session{
		id:          uuid.NewString(),
		broadcaster: b,
		capturer:    NewCaptureTable(),
		threshold:   DefaultThreshold,
		logger:      log.Default(),
		ctx:         context.Background(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session", s.id[:8])
	return s
}

// ID returns the session's unique id.
func (s *Session) ID() string { return s.id }

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Dragging reports whether the threshold has been crossed.
func (s *Session) Dragging() bool { return s.state == StateDragging }

// Live reports whether a gesture is armed or dragging.
func (s *Session) Live() bool { return s.state != StateIdle }

// Consumers returns the number of consumers still enlisted.
func (s *Session) Consumers() int { return len(s.consumers) }

// RequiredModifiers returns the exact mask a pointer down must carry.
func (s *Session) RequiredModifiers() Modifiers { return s.required }

// PointerDown starts a gesture when ev qualifies and at least one consumer
// registers for it. It reports whether the session armed.
func (s *Session) PointerDown(ev PointerEvent) bool {
	if s.reentrant("down") {
		return false
	}
	if s.state != StateIdle {
		s.logger.Debug("pointer down ignored during gesture", "pointer", ev.PointerID, "active", s.pointerID)
		return false
	}
	if ev.Buttons != ButtonPrimary || ev.Modifiers != s.required {
		return false
	}
	if !s.capturer.Capture(ev.PointerID) {
		s.logger.Debug("pointer already captured", "pointer", ev.PointerID)
		return false
	}

	req := newRequest(ev, s.logger)
	s.busy = true
	if s.broadcaster != nil {
		s.broadcaster.Broadcast(req)
	}
	s.busy = false
	consumers := req.close()

	if len(consumers) == 0 {
		s.capturer.Release(ev.PointerID)
		return false
	}

	s.state = StateArmed
	s.pointerID = ev.PointerID
	s.originX, s.originY = ev.X, ev.Y
	s.role = ev.Target.Role
	s.consumers = consumers
	s.steps = 0

	s.logger.Debug("gesture armed", "role", ev.Target.Role, "id", ev.Target.ID, "consumers", len(consumers))
	observability.Gesture().OnArmed(s.ctx, s.id, ev.Target.Role.String(), len(consumers))
	return true
}

// PointerMove delivers the cumulative delta of the captured pointer.
func (s *Session) PointerMove(ev PointerEvent) {
	if s.reentrant("move") || !s.owns(ev.PointerID) {
		return
	}
	dx, dy := ev.X-s.originX, ev.Y-s.originY

	if s.state == StateArmed {
		if math.Max(math.Abs(dx), math.Abs(dy)) <= s.threshold {
			return
		}
		s.state = StateDragging
		s.startedAt = s.now()
		s.deliver(func(c Consumer) { c.Begin() })
		s.logger.Debug("gesture started", "role", s.role)
		observability.Gesture().OnStarted(s.ctx, s.id)
	}

	s.steps++
	s.busy = true
	kept := s.consumers[:0]
	for _, c := range s.consumers {
		if c.Step(dx, dy) == Continue {
			kept = append(kept, c)
		}
	}
	for i := len(kept); i < len(s.consumers); i++ {
		s.consumers[i] = nil
	}
	s.consumers = kept
	s.busy = false
}

// PointerUp ends the gesture, committing it if it had started.
func (s *Session) PointerUp(ev PointerEvent) {
	if s.reentrant("up") || !s.owns(ev.PointerID) {
		return
	}
	if s.state == StateDragging {
		s.deliver(func(c Consumer) { c.Commit() })
		d := s.now().Sub(s.startedAt)
		s.logger.Debug("gesture committed", "steps", s.steps, "duration", d)
		observability.Gesture().OnCommitted(s.ctx, s.id, s.steps, d)
	}
	s.finish()
}

// PointerCancel aborts the gesture, rolling back any started consumer.
func (s *Session) PointerCancel(ev PointerEvent) {
	if s.reentrant("cancel") || !s.owns(ev.PointerID) {
		return
	}
	s.cancel(ReasonPointerCancel)
}

// LoseCapture aborts the gesture after the pointer was taken away. The
// capture is still released so the next down on that pointer can arm.
func (s *Session) LoseCapture(pointerID int) {
	if s.reentrant("lose-capture") || !s.owns(pointerID) {
		return
	}
	s.cancel(ReasonLostCapture)
}

// ModifiersChanged aborts the gesture when the held modifiers no longer
// equal the required mask.
func (s *Session) ModifiersChanged(pointerID int, mods Modifiers) {
	if s.reentrant("modifiers") || !s.owns(pointerID) {
		return
	}
	if mods != s.required {
		s.cancel(ReasonModifiers)
	}
}

// Abort cancels any live gesture, for example on an escape key.
func (s *Session) Abort() {
	if s.reentrant("abort") || s.state == StateIdle {
		return
	}
	s.cancel(ReasonAborted)
}

func (s *Session) cancel(reason Reason) {
	if s.state == StateDragging {
		s.deliver(func(c Consumer) { c.Cancel() })
	}
	s.logger.Debug("gesture cancelled", "reason", reason, "started", s.state == StateDragging)
	observability.Gesture().OnCancelled(s.ctx, s.id, string(reason))
	s.finish()
}

func (s *Session) finish() {
	s.capturer.Release(s.pointerID)
	s.state = StateIdle
	s.consumers = nil
	s.steps = 0
	s.role = RoleNone
}

func (s *Session) deliver(fn func(Consumer)) {
	s.busy = true
	defer func() { s.busy = false }()
	for _, c := range s.consumers {
		fn(c)
	}
}

// owns reports whether the session has a live gesture for the pointer.
func (s *Session) owns(pointerID int) bool {
	return s.state != StateIdle && pointerID == s.pointerID
}

func (s *Session) reentrant(op string) bool {
	if s.busy {
		s.logger.Warn("re-entrant pointer call dropped", "op", op)
		return true
	}
	return false
}
