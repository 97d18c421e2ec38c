// Package baseline serves the spreadsheet-derived snapshot as read-only,
// process-wide state. The artifact is read on first use and kept once a read
// succeeds.
package baseline

import (
	"context"
	"sync"
	"time"

	"github.com/tbourn/go-reschedule-backend/internal/domain"
	"github.com/tbourn/go-reschedule-backend/internal/ingest"
)

// Provider hands out the baseline dataset. It is safe for concurrent use.
//
// Records returns a fresh slice on every call; the records share their
// optional string pointers with the snapshot and must not be written through.
type Provider struct {
	load func() (*ingest.Snapshot, error)
}

// NewFile returns a provider backed by the snapshot artifact at path.
// Only a successful load is kept: after a failure the next call reads the
// artifact again, so a snapshot written later is picked up.
func NewFile(path string) *Provider {
	var (
		mu   sync.Mutex
		snap *ingest.Snapshot
	)
	return &Provider{load: func() (*ingest.Snapshot, error) {
		mu.Lock()
		defer mu.Unlock()
		if snap != nil {
			return snap, nil
		}
		s, err := ingest.ReadSnapshot(path)
		if err != nil {
			return nil, err
		}
		snap = s
		return snap, nil
	}}
}

// NewStatic returns a provider over an in-memory dataset.
func NewStatic(records []domain.Reschedule) *Provider {
	res := &ingest.Result{Records: records, Lookups: ingest.CollectLookups(records)}
	snap := ingest.NewSnapshot(res, "static", time.Now())
	return &Provider{load: func() (*ingest.Snapshot, error) { return snap, nil }}
}

// Snapshot returns the underlying artifact.
func (p *Provider) Snapshot() (*ingest.Snapshot, error) { return p.load() }

// Records returns a copy of the baseline records.
func (p *Provider) Records(ctx context.Context) ([]domain.Reschedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s, err := p.load()
	if err != nil {
		return nil, err
	}
	return s.Reschedules(), nil
}

// Count returns the number of baseline records.
func (p *Provider) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s, err := p.load()
	if err != nil {
		return 0, err
	}
	return int64(len(s.Records)), nil
}
