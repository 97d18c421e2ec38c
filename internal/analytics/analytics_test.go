package analytics

import (
	"errors"
	"reflect"
	"testing"

	"github.com/tbourn/go-reschedule-backend/internal/domain"
)

func rec(os, tech, reason, date string) domain.Reschedule {
	return domain.Reschedule{
		WorkOrder:      os,
		StockKeepingID: "SKU-" + os,
		Product:        "Geladeira",
		Technician:     tech,
		ReasonCode:     reason,
		Date:           date,
		Type:           domain.TypeFunctional,
	}
}

func sample() []domain.Reschedule {
	porta := "Porta Freezer"
	a := rec("1001", "Ana", "NTN", "2025-01-02")
	a.HadReschedule = true
	a.PartName = &porta
	b := rec("1002", "Bruno", "VCP", "2025-01-15")
	b.Type = domain.TypeAesthetic
	c := rec("1003", "Ana", "VCP", "2025-02-03")
	c.HadReschedule = true
	d := rec("1004", "Carla", "", "2024-12-30")
	d.Product = "Fogão"
	return []domain.Reschedule{a, b, c, d}
}

func workOrders(rs []domain.Reschedule) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.WorkOrder)
	}
	return out
}

func TestFilter(t *testing.T) {
	data := sample()
	cases := []struct {
		name string
		c    Criteria
		want []string
	}{
		{"zero criteria keeps all", Criteria{}, []string{"1001", "1002", "1003", "1004"}},
		{"technician exact", Criteria{Technician: "Ana"}, []string{"1001", "1003"}},
		{"technician is not a substring match", Criteria{Technician: "An"}, []string{}},
		{"search is case-insensitive", Criteria{Search: " FOGÃO "}, []string{"1004"}},
		{"search hits part name", Criteria{Search: "freezer"}, []string{"1001"}},
		{"search hits sku", Criteria{Search: "sku-1002"}, []string{"1002"}},
		{"type", Criteria{Type: domain.TypeAesthetic}, []string{"1002"}},
		{"inclusive range", Criteria{From: "2025-01-02", To: "2025-01-15"}, []string{"1001", "1002"}},
		{"open lower bound", Criteria{To: "2024-12-31"}, []string{"1004"}},
		{"combined", Criteria{Reason: "VCP", From: "2025-02-01"}, []string{"1003"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := workOrders(Filter(data, tc.c))
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Filter = %v; want %v", got, tc.want)
			}
		})
	}
	if !(Criteria{}).IsZero() || (Criteria{Type: "X"}).IsZero() {
		t.Fatalf("IsZero mismatch")
	}
}

func TestBuildLookups(t *testing.T) {
	l := BuildLookups(sample())
	if !reflect.DeepEqual(l.Technicians, []string{"Ana", "Bruno", "Carla"}) {
		t.Fatalf("technicians = %v", l.Technicians)
	}
	if !reflect.DeepEqual(l.Reasons, []string{"NTN", "VCP"}) {
		t.Fatalf("reasons = %v", l.Reasons)
	}
	if !reflect.DeepEqual(l.Types, []string{domain.TypeAesthetic, domain.TypeFunctional}) {
		t.Fatalf("types = %v", l.Types)
	}
	if !reflect.DeepEqual(l.PartNames, []string{"Porta Freezer"}) {
		t.Fatalf("part names = %v", l.PartNames)
	}
}

func TestTop(t *testing.T) {
	data := sample()

	got := Top(data, DimTechnician, 2)
	want := []Count{{"Ana", 2}, {"Bruno", 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Top(technician) = %v; want %v", got, want)
	}

	if got := Top(data, DimPart, 0); !reflect.DeepEqual(got, []Count{{"Porta Freezer", 1}}) {
		t.Fatalf("Top(part) must skip empty names: %v", got)
	}

	got = Top(data, DimReason, 0)
	want = []Count{{"VCP", 2}, {"NTN", 1}, {NoReasonLabel, 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Top(reason) = %v; want %v", got, want)
	}

	many := make([]domain.Reschedule, 0, 30)
	for i := 0; i < 30; i++ {
		many = append(many, rec("x", string(rune('A'+i)), "VCP", "2025-01-01"))
	}
	if n := len(Top(many, DimTechnician, -1)); n != DefaultTopN {
		t.Fatalf("default n = %d", n)
	}
}

func TestMatching(t *testing.T) {
	got := workOrders(Matching(sample(), DimReason, NoReasonLabel))
	if !reflect.DeepEqual(got, []string{"1004"}) {
		t.Fatalf("Matching = %v", got)
	}
}

func TestParseDimensionAndGranularity(t *testing.T) {
	if d, err := ParseDimension(" SKU "); err != nil || d != DimSKU {
		t.Fatalf("ParseDimension = %q, %v", d, err)
	}
	if _, err := ParseDimension("color"); !errors.Is(err, ErrUnknownDimension) {
		t.Fatalf("expected ErrUnknownDimension, got %v", err)
	}
	if g, err := ParseGranularity(""); err != nil || g != ByMonth {
		t.Fatalf("blank granularity = %q, %v", g, err)
	}
	if _, err := ParseGranularity("week"); !errors.Is(err, ErrUnknownGranularity) {
		t.Fatalf("expected ErrUnknownGranularity, got %v", err)
	}
}

func TestSeries(t *testing.T) {
	data := append(sample(), rec("1005", "Ana", "VCP", ""))

	if got := Series(data, ByMonth, "", ""); !reflect.DeepEqual(got, []Point{{"2024-12", 1}, {"2025-01", 2}, {"2025-02", 1}}) {
		t.Fatalf("by month = %v", got)
	}
	if got := Series(data, ByYear, "", ""); !reflect.DeepEqual(got, []Point{{"2024", 1}, {"2025", 3}}) {
		t.Fatalf("by year = %v", got)
	}
	got := Series(data, ByDay, "2025-01-01", "2025-01-31")
	if !reflect.DeepEqual(got, []Point{{"2025-01-02", 1}, {"2025-01-15", 1}}) {
		t.Fatalf("by day in range = %v", got)
	}
	if got := Series(nil, ByDay, "", ""); got == nil || len(got) != 0 {
		t.Fatalf("empty series = %v", got)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sample())
	if s.Total != 4 || s.Rescheduled != 2 || s.Pending != 1 || s.Completed != 3 {
		t.Fatalf("summary counters = %+v", s)
	}
	if len(s.ByReason) != 3 || s.ByReason[0] != (Count{"VCP", 2}) {
		t.Fatalf("by reason = %v", s.ByReason)
	}
	if s.TopTechnicians[0] != (Count{"Ana", 2}) {
		t.Fatalf("top technicians = %v", s.TopTechnicians)
	}
}
