// Package gesture coordinates pointer drags between the input source and the
// objects that react to them.
//
// # Overview
//
// A [Session] turns a raw stream of pointer events into one gesture at a
// time. It does not know what is being dragged. Instead, on every
// qualifying pointer down it raises a registration [Request] and lets any
// number of owners enlist a [Consumer]. The consumers then receive the
// gesture's lifecycle:
//
//	Begin  once, when the pointer has travelled past the threshold
//	Step   on every move, with the delta from the pointer-down position
//	Commit on release, or Cancel when the gesture is aborted
//
// A consumer that returns [Done] from Step stops receiving events; the rest
// of the gesture proceeds without it.
//
// # States
//
// A session is [StateIdle], [StateArmed] (pointer down, consumers enlisted,
// threshold not yet crossed) or [StateDragging]. A down that gathers no
// consumers releases its capture and never leaves idle. A release before
// the threshold returns to idle without delivering anything.
//
// # Qualification
//
// Only the primary button qualifies, and only when the held modifiers equal
// the session's required mask exactly ([WithRequiredModifiers], default
// none). A modifier change while a gesture is live aborts it.
//
// # Capture
//
// The session acquires pointer capture through a [Capturer] before raising
// the request, so every later event of that pointer is routed to it. A
// [CaptureTable] can be shared by several sessions to enforce one holder per
// pointer. Losing capture unexpectedly cancels the gesture.
//
// # Re-entrancy
//
// While a broadcast or a delivery is running, pointer calls on the same
// session are dropped and logged. A second pointer is ignored while a
// gesture is live. A session is driven from a single goroutine.
package gesture
