package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qecdev/graphify/internal/dem"
)

func TestLog_CountKind(t *testing.T) {
	log := NewLog("run-1")
	log.Append(Entry{Kind: EntryHyperEdgeDetected})
	log.Append(Entry{Kind: EntryHyperEdgeDetected})
	log.Append(Entry{Kind: EntryHyperEdgeDecomposed})

	assert.Equal(t, 2, log.CountKind(EntryHyperEdgeDetected))
	assert.Equal(t, 1, log.CountKind(EntryHyperEdgeDecomposed))
	assert.Equal(t, 0, log.CountKind(EntryHyperEdgeDecomposeFailed))
}

func TestLog_CanonicalSnapshot_DetectedEntry(t *testing.T) {
	log := NewLog("run-1")
	log.Append(Entry{
		Kind:        EntryHyperEdgeDetected,
		Index:       0,
		Detectors:   []int{0, 1, 2},
		Probability: 0.1,
	})

	data, err := dem.MarshalCanonical(log.CanonicalSnapshot())
	require.NoError(t, err)
	assert.Equal(t,
		`{"entries":[{"detectors":[0,1,2],"instruction_index":0,"kind":"hyperedge_detected","probability":"0.1"}],"run_id":"run-1"}`,
		string(data))
}

func TestLog_CanonicalSnapshot_DecomposedEntry(t *testing.T) {
	log := NewLog("run-2")
	log.Append(Entry{
		Kind:            EntryHyperEdgeDecomposed,
		Index:           3,
		Detectors:       []int{0, 1, 2},
		Probability:     0.1,
		VirtualNodes:    []int{3},
		EdgeCount:       2,
		EdgeProbability: 0.05278640450004207,
	})

	data, err := dem.MarshalCanonical(log.CanonicalSnapshot())
	require.NoError(t, err)
	assert.Equal(t,
		`{"entries":[{"detectors":[0,1,2],"edge_count":2,"edge_probability":"0.05278640450004207","instruction_index":3,"kind":"hyperedge_decomposed","probability":"0.1","virtual_nodes":[3]}],"run_id":"run-2"}`,
		string(data))
}

func TestLog_CanonicalSnapshot_FailedEntry(t *testing.T) {
	log := NewLog("run-3")
	log.Append(Entry{
		Kind:        EntryHyperEdgeDecomposeFailed,
		Index:       1,
		Detectors:   []int{0, 1},
		Probability: 0.2,
		Reason:      "not a hyper-edge (<3 detectors)",
	})

	snapshot := log.CanonicalSnapshot()
	entries := snapshot["entries"].([]any)
	require.Len(t, entries, 1)

	entry := entries[0].(map[string]any)
	assert.Equal(t, "not a hyper-edge (<3 detectors)", entry["reason"])
	assert.NotContains(t, entry, "virtual_nodes")
	assert.NotContains(t, entry, "edge_count")
	assert.NotContains(t, entry, "edge_probability")
}

func TestLog_CanonicalSnapshot_EmptyLog(t *testing.T) {
	data, err := dem.MarshalCanonical(NewLog("run-4").CanonicalSnapshot())
	require.NoError(t, err)
	assert.Equal(t, `{"entries":[],"run_id":"run-4"}`, string(data))
}
