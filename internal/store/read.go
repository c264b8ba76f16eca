package store

import (
	"context"
	"fmt"
)

// StoredEntry is one audit row read back from the entries table.
type StoredEntry struct {
	// EntryIndex is the entry's position in the run's log.
	EntryIndex int

	// Kind is the log entry kind.
	Kind string

	// InstructionIndex is the hyper-edge's position in the original model.
	InstructionIndex int

	// Payload is the canonical JSON record of the entry.
	Payload string
}

// ListRuns returns all persisted runs ordered by id. Run ids are UUIDv7,
// so this is also creation order.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, detected, decomposed, failed
		FROM runs
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Source, &r.Detected, &r.Decomposed, &r.Failed); err != nil {
			return nil, fmt.Errorf("list runs: scan: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// ReadEntries returns the audit entries of one run in log order.
// A run id with no rows yields an empty slice, not an error.
func (s *Store) ReadEntries(ctx context.Context, runID string) ([]StoredEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT entry_index, kind, instruction_index, payload
		FROM entries
		WHERE run_id = ?
		ORDER BY entry_index
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}
	defer rows.Close()

	var entries []StoredEntry
	for rows.Next() {
		var e StoredEntry
		if err := rows.Scan(&e.EntryIndex, &e.Kind, &e.InstructionIndex, &e.Payload); err != nil {
			return nil, fmt.Errorf("read entries: scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}
	return entries, nil
}
