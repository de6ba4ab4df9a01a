package gesture

import "sync"

// Capturer routes all events of a pointer to one holder.
type Capturer interface {
	// Capture claims the pointer. It reports false when another holder
	// already has it.
	Capture(pointerID int) bool
	// Release gives the pointer back. Releasing an unheld pointer is a no-op.
	Release(pointerID int)
}

// CaptureTable is an in-memory [Capturer] that allows one holder per pointer
// id. It is safe for concurrent use and may be shared by many sessions.
type CaptureTable struct {
	mu   sync.Mutex
	held map[int]struct{}
}

// NewCaptureTable returns an empty table.
func NewCaptureTable() *CaptureTable {
	return &CaptureTable{held: make(map[int]struct{})}
}

func (t *CaptureTable) Capture(pointerID int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.held[pointerID]; ok {
		return false
	}
	t.held[pointerID] = struct{}{}
	return true
}

func (t *CaptureTable) Release(pointerID int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.held, pointerID)
}

// Held reports whether the pointer is currently captured.
func (t *CaptureTable) Held(pointerID int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.held[pointerID]
	return ok
}
