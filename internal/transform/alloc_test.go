package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qecdev/graphify/internal/dem"
)

func TestAllocator_EmptyModelStartsAtZero(t *testing.T) {
	alloc := NewAllocator(&dem.Model{})

	assert.Equal(t, 0, alloc.Next())
	assert.Equal(t, 1, alloc.Next())
	assert.Equal(t, 2, alloc.Next())
}

func TestAllocator_FlooredAboveModelDetectors(t *testing.T) {
	m := &dem.Model{}
	m.Append(
		dem.DetectorDecl{ID: 9},
		dem.ErrorEvent{Probability: 0.1, Detectors: []int{0, 1, 2}},
	)
	alloc := NewAllocator(m)

	assert.Equal(t, 10, alloc.Next())
	assert.Equal(t, 11, alloc.Next())
}

func TestAllocator_AccountsForDetectorShifts(t *testing.T) {
	// D1 after a shift of 4 denotes detector 5; virtual ids start above it.
	m := &dem.Model{}
	m.Append(
		dem.ErrorEvent{Probability: 0.1, Detectors: []int{0, 1, 2}},
		dem.DetectorShift{Offset: 4},
		dem.ErrorEvent{Probability: 0.1, Detectors: []int{1}},
	)
	alloc := NewAllocator(m)

	assert.Equal(t, 6, alloc.Next())
}
