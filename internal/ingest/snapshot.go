package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/tbourn/go-reschedule-backend/internal/domain"
)

// SnapshotVersion is bumped whenever the artifact layout changes.
const SnapshotVersion = 1

// Snapshot is the generated baseline artifact. It is written once by the
// ingest command and only ever read afterwards.
type Snapshot struct {
	Version     int              `json:"version"`
	GeneratedAt time.Time        `json:"generatedAt"`
	Source      string           `json:"source"`
	Sheet       string           `json:"sheet"`
	Records     []SnapshotRecord `json:"records"`
	Lookups
}

// SnapshotRecord is a baseline row as stored in the artifact.
type SnapshotRecord struct {
	ID             string  `json:"id"`
	WorkOrder      string  `json:"workOrder"`
	StockKeepingID string  `json:"stockKeepingId"`
	Product        string  `json:"product"`
	Technician     string  `json:"technician"`
	Date           string  `json:"date"`
	HadReschedule  bool    `json:"hadReschedule"`
	ReasonCode     string  `json:"reasonCode"`
	PartCode       *string `json:"partCode,omitempty"`
	Type           string  `json:"type"`
	PartName       *string `json:"partName,omitempty"`
}

// NewSnapshot captures an ingest result.
func NewSnapshot(res *Result, source string, now time.Time) *Snapshot {
	recs := make([]SnapshotRecord, 0, len(res.Records))
	for _, r := range res.Records {
		recs = append(recs, SnapshotRecord{
			ID:             r.ID,
			WorkOrder:      r.WorkOrder,
			StockKeepingID: r.StockKeepingID,
			Product:        r.Product,
			Technician:     r.Technician,
			Date:           r.Date,
			HadReschedule:  r.HadReschedule,
			ReasonCode:     r.ReasonCode,
			PartCode:       r.PartCode,
			Type:           r.Type,
			PartName:       r.PartName,
		})
	}
	return &Snapshot{
		Version:     SnapshotVersion,
		GeneratedAt: now.UTC(),
		Source:      filepath.Base(source),
		Sheet:       res.Sheet,
		Records:     recs,
		Lookups:     res.Lookups,
	}
}

// Reschedules returns the snapshot rows as domain records.
func (s *Snapshot) Reschedules() []domain.Reschedule {
	out := make([]domain.Reschedule, 0, len(s.Records))
	for _, r := range s.Records {
		out = append(out, domain.Reschedule{
			ID:             r.ID,
			WorkOrder:      r.WorkOrder,
			StockKeepingID: r.StockKeepingID,
			Product:        r.Product,
			Technician:     r.Technician,
			Date:           r.Date,
			HadReschedule:  r.HadReschedule,
			ReasonCode:     r.ReasonCode,
			PartCode:       r.PartCode,
			Type:           r.Type,
			PartName:       r.PartName,
		})
	}
	return out
}

// WriteSnapshot stores s at path. The file is written to a temporary name in
// the same directory and renamed, so readers never observe a partial file.
func WriteSnapshot(path string, s *Snapshot) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".baseline-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		tmp.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("install snapshot: %w", err)
	}
	return nil
}

// ErrSnapshotMissing is returned by ReadSnapshot when no artifact exists.
var ErrSnapshotMissing = errors.New("baseline snapshot not found")

// ReadSnapshot loads the artifact at path.
func ReadSnapshot(path string) (*Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotMissing, path)
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot %s: unsupported version %d", path, s.Version)
	}
	return &s, nil
}
