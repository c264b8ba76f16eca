package store

import (
	"context"
	"fmt"

	"github.com/qecdev/graphify/internal/dem"
	"github.com/qecdev/graphify/internal/transform"
)

// Run summarizes one persisted transformation run.
type Run struct {
	// ID is the transformation run id (UUIDv7).
	ID string

	// Source identifies the input model (typically its file path).
	Source string

	// Detected, Decomposed and Failed count the run's hyper-edges by
	// outcome.
	Detected   int
	Decomposed int
	Failed     int
}

// WriteLog persists a transformation log and its summary atomically.
// Uses ON CONFLICT DO NOTHING for idempotency - persisting the same run
// twice is silently ignored.
//
// Entry payloads are serialized to canonical JSON so that identical runs
// produce byte-identical audit rows.
func (s *Store) WriteLog(ctx context.Context, source string, log *transform.Log) error {
	run := Run{
		ID:         log.RunID,
		Source:     source,
		Detected:   log.CountKind(transform.EntryHyperEdgeDetected),
		Decomposed: log.CountKind(transform.EntryHyperEdgeDecomposed),
		Failed:     log.CountKind(transform.EntryHyperEdgeDecomposeFailed),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write log: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, source, detected, decomposed, failed)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, run.ID, run.Source, run.Detected, run.Decomposed, run.Failed)
	if err != nil {
		return fmt.Errorf("write log: insert run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("write log: rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Run already persisted; its entries were written in the same
		// transaction back then, so there is nothing left to do.
		return tx.Commit()
	}

	for i, entry := range log.Entries {
		payload, err := marshalEntry(entry)
		if err != nil {
			return fmt.Errorf("write log: entry %d: %w", i, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO entries (run_id, entry_index, kind, instruction_index, payload)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(run_id, entry_index) DO NOTHING
		`, run.ID, i, string(entry.Kind), entry.Index, payload)
		if err != nil {
			return fmt.Errorf("write log: insert entry %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write log: commit: %w", err)
	}
	return nil
}

// marshalEntry renders a log entry as canonical JSON. Probabilities are
// pre-rendered strings because canonical JSON forbids floats.
func marshalEntry(e transform.Entry) (string, error) {
	payload := map[string]any{
		"kind":              string(e.Kind),
		"instruction_index": e.Index,
		"detectors":         e.Detectors,
		"probability":       dem.FormatValue(e.Probability),
	}
	if len(e.VirtualNodes) > 0 {
		payload["virtual_nodes"] = e.VirtualNodes
	}
	if e.EdgeCount > 0 {
		payload["edge_count"] = e.EdgeCount
		payload["edge_probability"] = dem.FormatValue(e.EdgeProbability)
	}
	if e.Reason != "" {
		payload["reason"] = e.Reason
	}

	data, err := dem.MarshalCanonical(payload)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
