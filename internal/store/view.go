package store

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charliek/logview/internal/domain"
)

// FilterView is a read-only projection over a Store showing only rows
// whose msg field contains the active pattern as a substring. Matching
// is case-sensitive; an empty pattern matches everything. The visible
// set is recomputed in full on every pattern change and on every store
// append, preserving the store's insertion order.
type FilterView struct {
	store *Store
	subID string

	mu      sync.RWMutex
	pattern string
	visible []int // store row indices of matching rows
}

// NewFilterView creates a view over the store and subscribes it to
// count changes so newly appended rows are filtered as they arrive.
func NewFilterView(s *Store) *FilterView {
	v := &FilterView{store: s}
	v.subID = s.Subscribe(func(int) {
		v.refresh()
	})
	v.refresh()
	return v
}

// Close detaches the view from the store
func (v *FilterView) Close() {
	v.store.Unsubscribe(v.subID)
}

// SetFilter replaces the active pattern and recomputes the visible set
func (v *FilterView) SetFilter(pattern string) {
	v.mu.Lock()
	v.pattern = pattern
	v.mu.Unlock()

	v.refresh()
}

// Pattern returns the active filter pattern
func (v *FilterView) Pattern() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.pattern
}

// refresh rescans the whole store against the active pattern. O(rows),
// acceptable for a viewing session.
func (v *FilterView) refresh() {
	records := v.store.Records()

	v.mu.Lock()
	defer v.mu.Unlock()

	v.visible = v.visible[:0]
	for i, rec := range records {
		if v.pattern == "" || strings.Contains(rec.Msg, v.pattern) {
			v.visible = append(v.visible, i)
		}
	}
}

// VisibleRowCount returns the number of rows matching the active pattern
func (v *FilterView) VisibleRowCount() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.visible)
}

// VisibleField returns the display value of one column of one visible row
func (v *FilterView) VisibleField(i int, name string) (string, error) {
	rec, err := v.VisibleRecord(i)
	if err != nil {
		return "", err
	}
	return FieldValue(rec, name)
}

// VisibleRecord returns the record at the given visible index
func (v *FilterView) VisibleRecord(i int) (domain.Record, error) {
	v.mu.RLock()
	if i < 0 || i >= len(v.visible) {
		n := len(v.visible)
		v.mu.RUnlock()
		return domain.Record{}, fmt.Errorf("%w: %d (have %d visible rows)", domain.ErrRowRange, i, n)
	}
	row := v.visible[i]
	v.mu.RUnlock()

	return v.store.Record(row)
}

// VisibleRecords returns a snapshot of all visible records in store order
func (v *FilterView) VisibleRecords() []domain.Record {
	records := v.store.Records()

	v.mu.RLock()
	defer v.mu.RUnlock()

	if len(v.visible) == 0 {
		return nil
	}
	out := make([]domain.Record, 0, len(v.visible))
	for _, row := range v.visible {
		if row < len(records) {
			out = append(out, records[row])
		}
	}
	return out
}
