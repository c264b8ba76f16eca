package transform

import "github.com/qecdev/graphify/internal/dem"

// Graphify rewrites every hyper-edge in the model into a graphlike chain
// and returns the new model together with the transformation log.
//
// The input is never mutated. Non-hyper-edge events are copied through
// unchanged in their original relative order; each hyper-edge is replaced
// in place by its chain edges. A hyper-edge whose decomposition fails is
// kept verbatim — data is never dropped — leaving the output possibly
// non-graphlike, which the verifier reports rather than hides.
func Graphify(m *dem.Model) (*dem.Model, *Log) {
	return GraphifyWith(m, UUIDv7Generator{})
}

// GraphifyWith is Graphify with an explicit run-id generator, for
// deterministic runs in tests and the conformance harness.
func GraphifyWith(m *dem.Model, gen RunIDGenerator) (*dem.Model, *Log) {
	log := NewLog(gen.Generate())
	alloc := NewAllocator(m)

	results := make(map[int]DecompositionResult)
	for _, he := range Detect(m) {
		log.Append(Entry{
			Kind:        EntryHyperEdgeDetected,
			Index:       he.Index,
			Detectors:   he.Detectors,
			Probability: he.Probability,
		})
		results[he.Index] = Decompose(alloc, he.Detectors, he.Probability)
	}

	return Rewrite(m, results, log), log
}

// Rewrite walks the model once, in order, splicing decomposition results
// back into the positions they were detected at. It appends one outcome
// entry per processed hyper-edge to the log.
//
// Indices in results that do not hold an error event are ignored.
func Rewrite(m *dem.Model, results map[int]DecompositionResult, log *Log) *dem.Model {
	out := &dem.Model{Events: make([]dem.Event, 0, len(m.Events))}

	for i, ev := range m.Events {
		orig, isError := ev.(dem.ErrorEvent)
		res, hasResult := results[i]
		if !isError || !hasResult {
			out.Append(ev)
			continue
		}

		if !res.Success {
			// Fail-safe default: keep the original event untouched.
			out.Append(orig)
			log.Append(Entry{
				Kind:        EntryHyperEdgeDecomposeFailed,
				Index:       i,
				Detectors:   orig.Detectors,
				Probability: orig.Probability,
				Reason:      res.FailureReason,
			})
			continue
		}

		for j, edge := range res.Edges {
			chain := dem.ErrorEvent{
				Probability: res.EdgeProbability,
				Detectors:   []int{edge.A, edge.B},
			}
			// The original event's observable flips ride on the first
			// chain edge; the rest of the chain is detector-only.
			if j == 0 {
				chain.Observables = orig.Observables
			}
			out.Append(chain)
		}
		log.Append(Entry{
			Kind:            EntryHyperEdgeDecomposed,
			Index:           i,
			Detectors:       orig.Detectors,
			Probability:     orig.Probability,
			VirtualNodes:    res.VirtualNodes,
			EdgeCount:       len(res.Edges),
			EdgeProbability: res.EdgeProbability,
		})
	}

	return out
}
