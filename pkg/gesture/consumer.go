package gesture

// Status is returned by [Consumer.Step].
type Status int

const (
	// Continue keeps the consumer enlisted.
	Continue Status = iota
	// Done removes the consumer from the gesture. It receives neither
	// Commit nor Cancel.
	Done
)

// Consumer reacts to one gesture. A session calls Begin exactly once before
// the first Step, then Step any number of times, then exactly one of Commit
// or Cancel, unless Step returned Done. None of these is called if the
// pointer is released before the threshold.
//
// Step receives the cumulative delta from the pointer-down position.
type Consumer interface {
	Begin()
	Step(dx, dy float64) Status
	Commit()
	Cancel()
}

// Funcs adapts plain functions to [Consumer]. Nil fields are no-ops and a
// nil OnStep always continues.
type Funcs struct {
	OnBegin  func()
	OnStep   func(dx, dy float64) Status
	OnCommit func()
	OnCancel func()
}

func (f Funcs) Begin() {
	if f.OnBegin != nil {
		f.OnBegin()
	}
}

func (f Funcs) Step(dx, dy float64) Status {
	if f.OnStep != nil {
		return f.OnStep(dx, dy)
	}
	return Continue
}

func (f Funcs) Commit() {
	if f.OnCommit != nil {
		f.OnCommit()
	}
}

func (f Funcs) Cancel() {
	if f.OnCancel != nil {
		f.OnCancel()
	}
}
