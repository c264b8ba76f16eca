package transform

import "github.com/qecdev/graphify/internal/dem"

// EntryKind categorizes transformation log entries.
type EntryKind string

const (
	// EntryHyperEdgeDetected records that an error event was classified
	// as a hyper-edge.
	EntryHyperEdgeDetected EntryKind = "hyperedge_detected"

	// EntryHyperEdgeDecomposed records a successful decomposition.
	EntryHyperEdgeDecomposed EntryKind = "hyperedge_decomposed"

	// EntryHyperEdgeDecomposeFailed records a decomposition that failed;
	// the original event was kept in the output.
	EntryHyperEdgeDecomposeFailed EntryKind = "hyperedge_decompose_failed"
)

// Entry is one record in the transformation log.
type Entry struct {
	Kind EntryKind `json:"kind"`

	// Index is the instruction index of the hyper-edge in the original
	// model.
	Index int `json:"instruction_index"`

	// Detectors is the hyper-edge's ordered detector tuple.
	Detectors []int `json:"detectors"`

	// Probability is the hyper-edge's original flip probability.
	Probability float64 `json:"probability"`

	// VirtualNodes lists the introduced virtual detectors
	// (hyperedge_decomposed only).
	VirtualNodes []int `json:"virtual_nodes,omitempty"`

	// EdgeCount is the number of chain edges emitted
	// (hyperedge_decomposed only).
	EdgeCount int `json:"edge_count,omitempty"`

	// EdgeProbability is the weight assigned to each chain edge
	// (hyperedge_decomposed only).
	EdgeProbability float64 `json:"edge_probability,omitempty"`

	// Reason describes the failure (hyperedge_decompose_failed only).
	Reason string `json:"reason,omitempty"`
}

// Log is the append-only record of every decision one transformation run
// made. It is returned alongside the transformed model, purely
// observational: no later transformation step consults it.
type Log struct {
	// RunID identifies the transformation run the entries belong to.
	RunID string `json:"run_id"`

	Entries []Entry `json:"entries"`
}

// NewLog returns an empty log for the given run.
func NewLog(runID string) *Log {
	return &Log{RunID: runID}
}

// Append adds an entry to the log.
func (l *Log) Append(e Entry) {
	l.Entries = append(l.Entries, e)
}

// CountKind returns the number of entries of the given kind.
func (l *Log) CountKind(kind EntryKind) int {
	n := 0
	for _, e := range l.Entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// CanonicalSnapshot renders the log as a value MarshalCanonical accepts.
// Probabilities are pre-rendered with dem.FormatValue because canonical
// JSON forbids floats.
func (l *Log) CanonicalSnapshot() map[string]any {
	entries := make([]any, len(l.Entries))
	for i, e := range l.Entries {
		entry := map[string]any{
			"kind":              string(e.Kind),
			"instruction_index": e.Index,
			"detectors":         e.Detectors,
			"probability":       dem.FormatValue(e.Probability),
		}
		if len(e.VirtualNodes) > 0 {
			entry["virtual_nodes"] = e.VirtualNodes
		}
		if e.EdgeCount > 0 {
			entry["edge_count"] = e.EdgeCount
			entry["edge_probability"] = dem.FormatValue(e.EdgeProbability)
		}
		if e.Reason != "" {
			entry["reason"] = e.Reason
		}
		entries[i] = entry
	}
	return map[string]any{
		"run_id":  l.RunID,
		"entries": entries,
	}
}
