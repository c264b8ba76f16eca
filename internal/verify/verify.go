// Package verify provides the post-transformation structural check.
//
// Verification is advisory: it never mutates its inputs and raises no
// fatal condition. A false Valid signals a logical bug in decomposition
// and is treated as a correctness failure in testing, not a recoverable
// runtime condition.
package verify

import "github.com/qecdev/graphify/internal/dem"

// Report is the result of a structural verification.
type Report struct {
	// OriginalNonEmpty reports whether the input model had any events.
	OriginalNonEmpty bool `json:"original_non_empty"`

	// TransformedNonEmpty reports whether the output model has any events.
	TransformedNonEmpty bool `json:"transformed_non_empty"`

	// Valid is true only when both models are non-empty and every error
	// event in the transformed model touches at most two detectors.
	Valid bool `json:"valid"`
}

// Verify re-scans the transformed model for the graphlike post-condition.
// It does not trust the rewriter's own bookkeeping.
//
// Safe to call concurrently on finalized models; the scan is read-only.
func Verify(original, transformed *dem.Model) Report {
	r := Report{
		OriginalNonEmpty:    !original.IsEmpty(),
		TransformedNonEmpty: !transformed.IsEmpty(),
	}
	r.Valid = r.OriginalNonEmpty && r.TransformedNonEmpty && IsGraphlike(transformed)
	return r
}

// IsGraphlike reports whether every error event in the model has at most
// two detector targets.
func IsGraphlike(m *dem.Model) bool {
	return len(Violations(m)) == 0
}

// Violations returns the instruction indices of error events with more
// than two detector targets, in order.
func Violations(m *dem.Model) []int {
	var out []int
	for _, ie := range m.ErrorEvents() {
		if !ie.Event.IsGraphlike() {
			out = append(out, ie.Index)
		}
	}
	return out
}
