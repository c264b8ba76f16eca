package transform

import "github.com/qecdev/graphify/internal/dem"

// Allocator issues identifiers for virtual detectors introduced during one
// transformation run. Identifiers start strictly above every detector id
// present in the input model and increase monotonically, so a fresh id can
// never collide with an original detector or an earlier virtual one.
//
// An Allocator is a plain counter with no back-references to the ids it
// issued; the output model owns the virtual detectors. Each run constructs
// its own Allocator — there is no process-wide counter.
type Allocator struct {
	next int
}

// NewAllocator returns an allocator floored at one past the largest
// detector id the model references. For a model with no detectors the
// first issued id is 0.
func NewAllocator(m *dem.Model) *Allocator {
	return &Allocator{next: m.MaxDetectorID() + 1}
}

// Next returns a fresh virtual detector id.
func (a *Allocator) Next() int {
	id := a.next
	a.next++
	return id
}
