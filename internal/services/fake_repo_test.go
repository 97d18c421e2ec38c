package services

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/tbourn/go-reschedule-backend/internal/domain"
	"github.com/tbourn/go-reschedule-backend/internal/repo"
)

// ----- In-memory fake repo -----

type memRepo struct {
	rows   []domain.Reschedule
	nextID int

	// failure injection
	countErr      error
	listErr       error
	createManyErr error
	findErr       error
	updateErr     map[string]error

	// capture
	createManyCalls int
	lastBatchSize   int
	lastList        repo.ListOptions
}

func newMemRepo(rows ...domain.Reschedule) *memRepo {
	m := &memRepo{}
	for _, r := range rows {
		m.insert(r)
	}
	return m
}

func (m *memRepo) insert(r domain.Reschedule) domain.Reschedule {
	m.nextID++
	r.ID = fmt.Sprintf("uuid-%d", m.nextID)
	m.rows = append(m.rows, r)
	return r
}

func (m *memRepo) indexOf(id string) int {
	for i, r := range m.rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (m *memRepo) CreateReschedule(ctx context.Context, db *gorm.DB, r *domain.Reschedule) (*domain.Reschedule, error) {
	out := m.insert(*r)
	return &out, nil
}

func (m *memRepo) CreateReschedules(ctx context.Context, db *gorm.DB, records []domain.Reschedule, batchSize int) (int64, error) {
	m.createManyCalls++
	m.lastBatchSize = batchSize
	if m.createManyErr != nil {
		return 0, m.createManyErr
	}
	for _, r := range records {
		m.insert(r)
	}
	return int64(len(records)), nil
}

func (m *memRepo) ListReschedules(ctx context.Context, db *gorm.DB, opts repo.ListOptions) ([]domain.Reschedule, error) {
	m.lastList = opts
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := append([]domain.Reschedule(nil), m.rows...)
	if opts.OrderByDateDesc {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	}
	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return []domain.Reschedule{}, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(out) {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *memRepo) CountReschedules(ctx context.Context, db *gorm.DB) (int64, error) {
	return int64(len(m.rows)), m.countErr
}

func (m *memRepo) GetReschedule(ctx context.Context, db *gorm.DB, id string) (*domain.Reschedule, error) {
	i := m.indexOf(id)
	if i < 0 {
		return nil, repo.ErrNotFound
	}
	r := m.rows[i]
	return &r, nil
}

func (m *memRepo) FindByNaturalKey(ctx context.Context, db *gorm.DB, key domain.NaturalKey) (*domain.Reschedule, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, r := range m.rows {
		if r.Key() == key {
			r := r
			return &r, nil
		}
	}
	return nil, nil
}

func (m *memRepo) UpdateReschedule(ctx context.Context, db *gorm.DB, id string, fields map[string]any) (*domain.Reschedule, error) {
	if err := m.updateErr[id]; err != nil {
		return nil, err
	}
	i := m.indexOf(id)
	if i < 0 {
		return nil, repo.ErrNotFound
	}
	r := &m.rows[i]
	for k, v := range fields {
		switch k {
		case "date":
			r.Date = v.(string)
		case "work_order":
			r.WorkOrder = v.(string)
		case "stock_keeping_id":
			r.StockKeepingID = v.(string)
		case "technician":
			r.Technician = v.(string)
		case "reason_code":
			r.ReasonCode = v.(string)
		case "type":
			r.Type = v.(string)
		case "part_code":
			r.PartCode = v.(*string)
		case "part_name":
			r.PartName = v.(*string)
		}
	}
	out := *r
	return &out, nil
}

func (m *memRepo) DeleteReschedule(ctx context.Context, db *gorm.DB, id string) error {
	i := m.indexOf(id)
	if i < 0 {
		return repo.ErrNotFound
	}
	m.rows = append(m.rows[:i], m.rows[i+1:]...)
	return nil
}

func (m *memRepo) byID(id string) *domain.Reschedule {
	if i := m.indexOf(id); i >= 0 {
		return &m.rows[i]
	}
	return nil
}
