package transform

import "math"

// Edge is a two-detector edge produced by decomposition. A and B are
// detector ids; either may be a virtual detector.
type Edge struct {
	A int
	B int
}

// DecompositionResult records one hyper-edge decomposition attempt.
//
// Failure is non-fatal data, not an error value: the caller chooses
// whether to keep the original event (the rewriter does) or abort.
type DecompositionResult struct {
	// Success reports whether a chain was produced.
	Success bool

	// OriginalDetectors is the hyper-edge's ordered detector tuple.
	OriginalDetectors []int

	// Edges is the ordered chain of two-detector edges.
	Edges []Edge

	// VirtualNodes lists the virtual detectors in allocation order.
	VirtualNodes []int

	// EdgeProbability is the probability assigned to every chain edge.
	EdgeProbability float64

	// FailureReason is set when Success is false.
	FailureReason string
}

// Decompose rewrites a hyper-edge's detector tuple into a chain of
// two-detector edges.
//
// For k detectors the chain walks the node sequence
//
//	d1, v1, d2, v2, ..., v_{k-2}, d_{k-1}, d_k
//
// pairwise: each of the first k-2 detectors is joined to a fresh virtual
// detector sitting between it and its successor, and the final two
// detectors are joined directly. That yields exactly k-1 edges and k-2
// virtual detectors, visiting every original detector in input order.
//
// Every edge carries the same probability q:
//   - k == 3: q = (1 - sqrt(1-2p)) / 2, the exact solution of the
//     requirement that flipping an odd number of the two independent
//     edges matches the original event's single-shot probability p.
//     The closed form needs p < 1/2; above that the parity equation has
//     no real solution and the uniform rule below applies.
//   - k > 3: q = p / (k-1). This is an approximation; the exact
//     multi-edge weight derivation is an open problem.
//
// Fewer than three detectors is a precondition violation by the caller
// (Detect never reports such events) and yields Success=false.
func Decompose(alloc *Allocator, detectors []int, probability float64) DecompositionResult {
	k := len(detectors)
	if k < 3 {
		return DecompositionResult{
			Success:           false,
			OriginalDetectors: detectors,
			FailureReason:     "not a hyper-edge (<3 detectors)",
		}
	}

	edges := make([]Edge, 0, k-1)
	virtuals := make([]int, 0, k-2)
	for i := 0; i < k-2; i++ {
		v := alloc.Next()
		virtuals = append(virtuals, v)
		edges = append(edges, Edge{A: detectors[i], B: v})
	}
	edges = append(edges, Edge{A: detectors[k-2], B: detectors[k-1]})

	return DecompositionResult{
		Success:           true,
		OriginalDetectors: detectors,
		Edges:             edges,
		VirtualNodes:      virtuals,
		EdgeProbability:   edgeProbability(probability, k),
	}
}

// edgeProbability computes the per-edge weight for a k-detector chain.
func edgeProbability(p float64, k int) float64 {
	if k == 3 && p < 0.5 {
		return 0.5 * (1 - math.Sqrt(1-2*p))
	}
	return p / float64(k-1)
}
