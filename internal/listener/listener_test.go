package listener

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charliek/logview/internal/domain"
	"github.com/charliek/logview/internal/store"
	"github.com/charliek/logview/internal/wire"
)

// fakeSource is an in-memory Source fed by tests
type fakeSource struct {
	queue [][]byte
}

func (f *fakeSource) WaitReadable(ctx context.Context) error {
	if len(f.queue) > 0 {
		return nil
	}
	<-ctx.Done()
	return ctx.Err()
}

func (f *fakeSource) HasPending() bool {
	return len(f.queue) > 0
}

func (f *fakeSource) ReadOne() ([]byte, error) {
	if len(f.queue) == 0 {
		return nil, ErrNoPending
	}
	d := f.queue[0]
	f.queue = f.queue[1:]
	return d, nil
}

func (f *fakeSource) Close() error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func encodeRecord(t *testing.T, rec domain.Record) []byte {
	t.Helper()
	buf, err := wire.Encode(rec)
	require.NoError(t, err)
	return buf
}

func TestListener_DrainsAllPending(t *testing.T) {
	src := &fakeSource{}
	for i := 0; i < 5; i++ {
		src.queue = append(src.queue, encodeRecord(t, domain.Record{Msg: "burst"}))
	}

	st := store.New()
	l := New(src, st, testLogger())

	l.drainPending()

	assert.Equal(t, 5, st.RowCount())
	assert.False(t, src.HasPending())
	assert.Equal(t, int64(5), l.Stats().Received)
}

func TestListener_OneAppendPerDrain(t *testing.T) {
	src := &fakeSource{}
	for i := 0; i < 4; i++ {
		src.queue = append(src.queue, encodeRecord(t, domain.Record{Msg: "burst"}))
	}

	st := store.New()
	appends := 0
	st.Subscribe(func(total int) {
		appends++
		assert.Equal(t, 4, total)
	})

	New(src, st, testLogger()).drainPending()

	assert.Equal(t, 1, appends)
}

func TestListener_MalformedDatagramSkipped(t *testing.T) {
	first := encodeRecord(t, domain.Record{Msg: "first"})
	third := encodeRecord(t, domain.Record{Msg: "third"})

	// Second datagram has a corrupt length prefix
	bad := encodeRecord(t, domain.Record{Msg: "second"})
	bad[3]++

	src := &fakeSource{queue: [][]byte{first, bad, third}}
	st := store.New()
	l := New(src, st, testLogger())

	l.drainPending()

	require.Equal(t, 2, st.RowCount())

	msg, err := st.Field(0, domain.ColumnMsg)
	require.NoError(t, err)
	assert.Equal(t, "first", msg)

	msg, err = st.Field(1, domain.ColumnMsg)
	require.NoError(t, err)
	assert.Equal(t, "third", msg)

	stats := l.Stats()
	assert.Equal(t, int64(1), stats.FramingDrops)
	assert.Equal(t, int64(0), stats.DecodeDrops)
	assert.Equal(t, int64(1), stats.Dropped())
}

func TestListener_UndecodablePayloadCounted(t *testing.T) {
	payload := []byte("not json")
	frame := append([]byte{0, 0, 0, byte(len(payload))}, payload...)

	src := &fakeSource{queue: [][]byte{frame}}
	st := store.New()
	l := New(src, st, testLogger())

	l.drainPending()

	assert.Equal(t, 0, st.RowCount())
	assert.Equal(t, int64(1), l.Stats().DecodeDrops)
}

func TestListener_EmptyDrainNoNotify(t *testing.T) {
	src := &fakeSource{}
	st := store.New()

	notified := 0
	st.Subscribe(func(int) { notified++ })

	New(src, st, testLogger()).drainPending()

	assert.Equal(t, 0, notified)
}

func TestListener_AllMalformedNoNotify(t *testing.T) {
	src := &fakeSource{queue: [][]byte{{0x01}, {0x02, 0x03}}}
	st := store.New()

	notified := 0
	st.Subscribe(func(int) { notified++ })

	l := New(src, st, testLogger())
	l.drainPending()

	assert.Equal(t, 0, notified)
	assert.Equal(t, int64(2), l.Stats().FramingDrops)
}

func TestListener_RunStopsOnCancel(t *testing.T) {
	src := &fakeSource{}
	st := store.New()
	l := New(src, st, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- l.Run(ctx)
	}()

	cancel()
	assert.NoError(t, <-done)
}

func TestListener_EndToEnd(t *testing.T) {
	src := &fakeSource{queue: [][]byte{
		encodeRecord(t, domain.Record{
			Created:   1700000000.0,
			LevelName: "INFO",
			Name:      "app",
			Msg:       "starting up",
		}),
		encodeRecord(t, domain.Record{
			Created:   1700000005.0,
			LevelName: "ERROR",
			Name:      "app",
			Msg:       "failed to connect",
		}),
	}}

	st := store.New()
	fv := store.NewFilterView(st)
	defer fv.Close()

	New(src, st, testLogger()).drainPending()

	require.Equal(t, 2, st.RowCount())

	created, err := st.Field(0, domain.ColumnCreated)
	require.NoError(t, err)
	assert.Equal(t, "2023-11-14 22:13:20", created)

	fv.SetFilter("fail")
	require.Equal(t, 1, fv.VisibleRowCount())

	msg, err := fv.VisibleField(0, domain.ColumnMsg)
	require.NoError(t, err)
	assert.Equal(t, "failed to connect", msg)

	level, err := fv.VisibleField(0, domain.ColumnLevelName)
	require.NoError(t, err)
	assert.Equal(t, "ERROR", level)
}
