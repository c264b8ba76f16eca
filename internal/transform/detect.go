package transform

import "github.com/qecdev/graphify/internal/dem"

// HyperEdge describes an error event with three or more detector targets,
// retaining its instruction index so the rewriter can splice the
// decomposed chain back into position.
type HyperEdge struct {
	// Index is the event's position in the original model.
	Index int

	// Detectors is the ordered detector tuple of the event.
	Detectors []int

	// Observables are the logical observables the event flips.
	Observables []int

	// Probability is the event's Bernoulli flip likelihood.
	Probability float64
}

// Detect scans the model in order and returns every hyper-edge. It is a
// pure function of the model.
//
// Error events with zero, one or two detector targets are graphlike and
// never reported; a pure observable flip in particular is graphlike by
// definition.
func Detect(m *dem.Model) []HyperEdge {
	var out []HyperEdge
	for _, ie := range m.ErrorEvents() {
		if ie.Event.IsGraphlike() {
			continue
		}
		out = append(out, HyperEdge{
			Index:       ie.Index,
			Detectors:   ie.Event.Detectors,
			Observables: ie.Event.Observables,
			Probability: ie.Event.Probability,
		})
	}
	return out
}
