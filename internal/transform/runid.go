package transform

import "github.com/google/uuid"

// RunIDGenerator produces identifiers for transformation runs.
type RunIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run ids.
//
// UUIDv7 embeds a timestamp in the most significant bits, making run ids
// sortable by creation time in the audit store.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns a predetermined run id, enabling deterministic
// golden comparisons in tests.
type FixedGenerator struct {
	ID string
}

// Generate returns the fixed id.
func (g FixedGenerator) Generate() string { return g.ID }
