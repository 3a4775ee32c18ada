package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charliek/logview/internal/domain"
)

func makeRecord(msg string) domain.Record {
	return domain.Record{
		Created:   1700000000.0,
		LevelName: "INFO",
		Name:      "app",
		Msg:       msg,
	}
}

func makeBatch(msgs ...string) []domain.Record {
	batch := make([]domain.Record, len(msgs))
	for i, msg := range msgs {
		batch[i] = makeRecord(msg)
	}
	return batch
}

func TestStore_AppendBatch(t *testing.T) {
	s := New()
	assert.Equal(t, 0, s.RowCount())

	s.AppendBatch(makeBatch("1", "2", "3"))
	assert.Equal(t, 3, s.RowCount())

	s.AppendBatch(makeBatch("4"))
	assert.Equal(t, 4, s.RowCount())
}

func TestStore_InsertionOrderAcrossBatches(t *testing.T) {
	s := New()
	s.AppendBatch(makeBatch("a", "b"))
	s.AppendBatch(makeBatch("c"))
	s.AppendBatch(makeBatch("d", "e"))

	want := []string{"a", "b", "c", "d", "e"}
	for i, msg := range want {
		v, err := s.Field(i, domain.ColumnMsg)
		require.NoError(t, err)
		assert.Equal(t, msg, v)
	}
}

func TestStore_FieldRendering(t *testing.T) {
	s := New()
	s.AppendBatch([]domain.Record{{
		Created:   1700000000.0,
		LevelName: "ERROR",
		Name:      "app.db",
		Msg:       "failed to connect",
	}})

	created, err := s.Field(0, "created")
	require.NoError(t, err)
	assert.Equal(t, "2023-11-14 22:13:20", created)

	level, err := s.Field(0, "levelname")
	require.NoError(t, err)
	assert.Equal(t, "ERROR", level)

	name, err := s.Field(0, "name")
	require.NoError(t, err)
	assert.Equal(t, "app.db", name)

	msg, err := s.Field(0, "msg")
	require.NoError(t, err)
	assert.Equal(t, "failed to connect", msg)

	// Stored value stays raw
	rec, err := s.Record(0)
	require.NoError(t, err)
	assert.Equal(t, 1700000000.0, rec.Created)
}

func TestStore_FieldErrors(t *testing.T) {
	s := New()
	s.AppendBatch(makeBatch("only"))

	_, err := s.Field(0, "pid")
	assert.ErrorIs(t, err, domain.ErrUnknownField)

	_, err = s.Field(1, "msg")
	assert.ErrorIs(t, err, domain.ErrRowRange)

	_, err = s.Field(-1, "msg")
	assert.ErrorIs(t, err, domain.ErrRowRange)
}

func TestStore_ColumnNames(t *testing.T) {
	s := New()
	assert.Equal(t, []string{"created", "levelname", "name", "msg"}, s.ColumnNames())
}

func TestStore_NotifyOnAppend(t *testing.T) {
	s := New()

	var totals []int
	s.Subscribe(func(total int) {
		totals = append(totals, total)
	})

	s.AppendBatch(makeBatch("1", "2"))
	s.AppendBatch(makeBatch("3"))

	assert.Equal(t, []int{2, 3}, totals)
}

func TestStore_EmptyBatchNoNotify(t *testing.T) {
	s := New()

	notified := 0
	s.Subscribe(func(int) { notified++ })

	s.AppendBatch(nil)
	s.AppendBatch([]domain.Record{})

	assert.Equal(t, 0, s.RowCount())
	assert.Equal(t, 0, notified)
}

func TestStore_ObserversSeePostAppendState(t *testing.T) {
	s := New()

	// The observer must never see a count strictly between the pre- and
	// post-batch values
	s.Subscribe(func(total int) {
		assert.Equal(t, total, s.RowCount())
		v, err := s.Field(total-1, domain.ColumnMsg)
		require.NoError(t, err)
		assert.NotEmpty(t, v)
	})

	s.AppendBatch(makeBatch("1", "2", "3"))
	s.AppendBatch(makeBatch("4", "5"))
}

func TestStore_ObserverRegistrationOrder(t *testing.T) {
	s := New()

	var order []string
	s.Subscribe(func(int) { order = append(order, "first") })
	s.Subscribe(func(int) { order = append(order, "second") })
	s.Subscribe(func(int) { order = append(order, "third") })

	s.AppendBatch(makeBatch("1"))

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestStore_Unsubscribe(t *testing.T) {
	s := New()

	notified := 0
	id := s.Subscribe(func(int) { notified++ })

	s.AppendBatch(makeBatch("1"))
	s.Unsubscribe(id)
	s.AppendBatch(makeBatch("2"))

	assert.Equal(t, 1, notified)
	assert.Equal(t, 2, s.RowCount())
}

func TestStore_RecordsSnapshot(t *testing.T) {
	s := New()
	assert.Nil(t, s.Records())

	s.AppendBatch(makeBatch("a", "b"))
	snapshot := s.Records()
	require.Len(t, snapshot, 2)

	// Mutating the snapshot must not touch the store
	snapshot[0].Msg = "changed"
	v, err := s.Field(0, domain.ColumnMsg)
	require.NoError(t, err)
	assert.Equal(t, "a", v)
}

func TestStore_Stats(t *testing.T) {
	s := New()
	assert.Equal(t, "0 records", s.Stats())

	for i := 0; i < 12; i++ {
		s.AppendBatch(makeBatch(fmt.Sprintf("msg %d", i)))
	}
	assert.Equal(t, "12 records", s.Stats())
}
