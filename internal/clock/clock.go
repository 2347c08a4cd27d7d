// Package clock abstracts the monotonic slot counter that drives reward
// emission. The engine never reads wall-clock time; every operation is
// evaluated against the slot supplied per call.
package clock

import (
	"context"
	"sync"
)

// Clock reports the current slot. Implementations must be monotonically
// non-decreasing.
type Clock interface {
	CurrentSlot(ctx context.Context) (uint64, error)
}

// Manual is a hand-advanced clock used in tests and local runs.
type Manual struct {
	mu   sync.Mutex
	slot uint64
}

// NewManual creates a manual clock starting at the given slot.
func NewManual(slot uint64) *Manual {
	return &Manual{slot: slot}
}

// CurrentSlot implements Clock.
func (m *Manual) CurrentSlot(ctx context.Context) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slot, nil
}

// Advance moves the clock forward by n slots.
func (m *Manual) Advance(n uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slot += n
}

// Set jumps the clock to the given slot. Moving backwards is ignored.
func (m *Manual) Set(slot uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if slot > m.slot {
		m.slot = slot
	}
}
