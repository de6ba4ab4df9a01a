package gesture

import "github.com/charmbracelet/log"

// Request is the registration broadcast raised on a qualifying pointer down.
// Owners inspect the event and enlist consumers with [Request.Register].
// Once the broadcast returns the request is closed and further
// registrations are ignored.
type Request struct {
	Event PointerEvent

	consumers []Consumer
	closed    bool
	logger    *log.Logger
}

func newRequest(ev PointerEvent, logger *log.Logger) *Request {
	return &Request{Event: ev, logger: logger}
}

// Target returns the element the pointer went down on.
func (r *Request) Target() Target { return r.Event.Target }

// Register enlists c for the gesture. It reports false when the request is
// already closed or c is nil.
func (r *Request) Register(c Consumer) bool {
	if c == nil {
		return false
	}
	if r.closed {
		r.logger.Warn("registration after broadcast ignored", "role", r.Event.Target.Role, "id", r.Event.Target.ID)
		return false
	}
	r.consumers = append(r.consumers, c)
	return true
}

// Len returns the number of registered consumers.
func (r *Request) Len() int { return len(r.consumers) }

func (r *Request) close() []Consumer {
	r.closed = true
	return r.consumers
}

// Broadcaster delivers a request to the owners that may react to it.
type Broadcaster interface {
	Broadcast(req *Request)
}

// BroadcastFunc adapts a function to [Broadcaster].
type BroadcastFunc func(req *Request)

func (f BroadcastFunc) Broadcast(req *Request) { f(req) }

// Owner is one element in a bubbling chain. Offer reports whether the owner
// handled the request, which stops the walk.
type Owner interface {
	Offer(req *Request) bool
}

// OwnerFunc adapts a function to [Owner].
type OwnerFunc func(req *Request) bool

func (f OwnerFunc) Offer(req *Request) bool { return f(req) }

// Chain visits owners innermost first until one handles the request.
type Chain []Owner

func (c Chain) Broadcast(req *Request) {
	for _, o := range c {
		if o.Offer(req) {
			return
		}
	}
}
