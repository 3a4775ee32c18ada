// Package listener drains datagrams from a bound source, decodes them,
// and appends the results to the record store in batches.
package listener

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/charliek/logview/internal/domain"
	"github.com/charliek/logview/internal/store"
	"github.com/charliek/logview/internal/wire"
)

// Stats counts ingestion outcomes since startup
type Stats struct {
	Received     int64 // records decoded and appended
	FramingDrops int64 // datagrams dropped for a bad length prefix
	DecodeDrops  int64 // datagrams dropped for an undecodable payload
}

// Dropped returns the total number of dropped datagrams
func (s Stats) Dropped() int64 {
	return s.FramingDrops + s.DecodeDrops
}

// Listener reads datagrams from a Source and feeds the store. Not safe
// for concurrent Run calls; draining is single-flight by design.
type Listener struct {
	source Source
	store  *store.Store
	dec    *wire.Decoder
	logger *slog.Logger

	received     atomic.Int64
	framingDrops atomic.Int64
	decodeDrops  atomic.Int64
}

// New creates a Listener over the given source and store
func New(source Source, st *store.Store, logger *slog.Logger) *Listener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Listener{
		source: source,
		store:  st,
		dec:    wire.NewDecoder(),
		logger: logger,
	}
}

// Run blocks, draining datagram bursts into the store until ctx is
// cancelled. Returns nil on cancellation; any other source failure is
// returned as-is.
func (l *Listener) Run(ctx context.Context) error {
	for {
		if err := l.source.WaitReadable(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		l.drainPending()
	}
}

// drainPending reads every datagram queued at this moment, decodes
// each independently, and appends all successfully decoded records as
// one batch. A malformed datagram is dropped and counted; it never
// aborts the rest of the batch. An all-failed drain appends nothing,
// so observers see no spurious notification.
func (l *Listener) drainPending() {
	var batch []domain.Record

	for l.source.HasPending() {
		buf, err := l.source.ReadOne()
		if err != nil {
			if !errors.Is(err, ErrNoPending) {
				l.logger.Warn("reading datagram", "error", err)
			}
			break
		}

		rec, err := l.dec.Decode(buf)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrFraming):
				l.framingDrops.Add(1)
			case errors.Is(err, domain.ErrDecode):
				l.decodeDrops.Add(1)
			}
			l.logger.Warn("dropping malformed datagram", "size", len(buf), "error", err)
			continue
		}

		batch = append(batch, rec)
	}

	if len(batch) == 0 {
		return
	}
	l.received.Add(int64(len(batch)))
	l.store.AppendBatch(batch)
}

// Stats returns ingestion counters
func (l *Listener) Stats() Stats {
	return Stats{
		Received:     l.received.Load(),
		FramingDrops: l.framingDrops.Load(),
		DecodeDrops:  l.decodeDrops.Load(),
	}
}
