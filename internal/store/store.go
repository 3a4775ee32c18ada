// Package store holds the append-only record store and the filtered
// projection the viewer reads from.
package store

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/charliek/logview/internal/domain"
)

// Store is an ordered, append-only collection of records. A single
// writer (the listener) appends batches; any number of readers may
// query concurrently. Records are never mutated or reordered once
// appended.
type Store struct {
	mu      sync.RWMutex
	records []domain.Record

	obsMu     sync.RWMutex
	observers []observer
}

type observer struct {
	id string
	fn func(total int)
}

// New creates an empty Store
func New() *Store {
	return &Store{}
}

// AppendBatch appends records in order and notifies observers of the
// new total count. An empty batch is a no-op and fires no notification.
// The batch becomes visible atomically: readers never observe a count
// strictly between the pre- and post-append values.
func (s *Store) AppendBatch(records []domain.Record) {
	if len(records) == 0 {
		return
	}

	s.mu.Lock()
	s.records = append(s.records, records...)
	total := len(s.records)
	s.mu.Unlock()

	s.notify(total)
}

// notify delivers countChanged to observers in registration order.
// Delivery is serialized by the single-writer discipline on AppendBatch.
func (s *Store) notify(total int) {
	s.obsMu.RLock()
	observers := make([]observer, len(s.observers))
	copy(observers, s.observers)
	s.obsMu.RUnlock()

	for _, o := range observers {
		o.fn(total)
	}
}

// RowCount returns the number of stored records
func (s *Store) RowCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Record returns the record at the given row
func (s *Store) Record(row int) (domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if row < 0 || row >= len(s.records) {
		return domain.Record{}, fmt.Errorf("%w: %d (have %d rows)", domain.ErrRowRange, row, len(s.records))
	}
	return s.records[row], nil
}

// Records returns a snapshot copy of all stored records in insertion order
func (s *Store) Records() []domain.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.records) == 0 {
		return nil
	}
	out := make([]domain.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Field returns the display value of one column of one row. The created
// column is rendered as a UTC timestamp string; the stored value stays raw.
func (s *Store) Field(row int, name string) (string, error) {
	rec, err := s.Record(row)
	if err != nil {
		return "", err
	}
	return FieldValue(rec, name)
}

// FieldValue renders one display column of a record
func FieldValue(rec domain.Record, name string) (string, error) {
	switch name {
	case domain.ColumnCreated:
		return rec.FormatCreated(), nil
	case domain.ColumnLevelName:
		return rec.LevelName, nil
	case domain.ColumnName:
		return rec.Name, nil
	case domain.ColumnMsg:
		return rec.Msg, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownField, name)
	}
}

// ColumnNames returns the display column names in their fixed order
func (s *Store) ColumnNames() []string {
	return domain.Columns()
}

// Subscribe registers a callback invoked synchronously with the new
// total after each non-empty append. Callbacks run in registration
// order and observe post-append state. Returns a subscription ID.
func (s *Store) Subscribe(fn func(total int)) string {
	id := uuid.NewString()

	s.obsMu.Lock()
	s.observers = append(s.observers, observer{id: id, fn: fn})
	s.obsMu.Unlock()

	return id
}

// Unsubscribe removes a previously registered observer
func (s *Store) Unsubscribe(id string) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()

	// Rebuild rather than splice in place so an in-flight notify
	// iterating a snapshot never sees a shifted backing array.
	out := make([]observer, 0, len(s.observers))
	for _, o := range s.observers {
		if o.id != id {
			out = append(out, o)
		}
	}
	s.observers = out
}

// Stats returns a human-readable record count, matching the viewer's
// status line format.
func (s *Store) Stats() string {
	return strconv.Itoa(s.RowCount()) + " records"
}
