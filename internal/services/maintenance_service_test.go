package services

import (
	"context"
	"errors"
	"testing"

	"github.com/tbourn/go-reschedule-backend/internal/domain"
)

func TestRepairDate(t *testing.T) {
	cases := map[string]string{
		"45659":    "2025-01-02",
		"3/1/2025": "2025-01-03",
		"1234":     "1903-05-18",
	}
	for in, want := range cases {
		if got, ok := RepairDate(in); !ok || got != want {
			t.Fatalf("RepairDate(%q) = %q,%v; want %q", in, got, ok, want)
		}
	}
	for _, bad := range []string{"123", "1234567", "ontem", "2025/01/02"} {
		if _, ok := RepairDate(bad); ok {
			t.Fatalf("RepairDate(%q) should fail", bad)
		}
	}
}

func TestBackfillDates_Scenario(t *testing.T) {
	key := func(date string) domain.Reschedule {
		return domain.Reschedule{WorkOrder: "X", StockKeepingID: "Y", ReasonCode: "VCP", Date: date}
	}
	other := func(os, date string) domain.Reschedule {
		return domain.Reschedule{WorkOrder: os, StockKeepingID: "Z", ReasonCode: "NTN", Date: date}
	}

	r := newMemRepo(
		key("45659"),           // uuid-1: sibling holds the repaired key → deleted
		key("2025-01-02"),      // uuid-2: canonical sibling, untouched
		other("A", "3/1/2025"), // uuid-3: no sibling → updated
		other("B", "ontem"),    // uuid-4: unparseable → left alone
		other("C", ""),         // uuid-5: empty → skipped
		other("D", "45000"),    // uuid-6: update fails → counted, batch continues
		other("E", "7/2/2025"), // uuid-7: updated after the failure
	)
	r.updateErr = map[string]error{"uuid-6": errors.New("locked")}

	svc := &MaintenanceService{Repo: r}
	rep, err := svc.BackfillDates(context.Background())
	if err != nil {
		t.Fatalf("BackfillDates: %v", err)
	}

	want := BackfillReport{Total: 7, Normalized: 3, Updated: 2, Deleted: 1, Unparsed: 1, Failed: 1}
	if rep != want {
		t.Fatalf("report = %+v; want %+v", rep, want)
	}

	if r.byID("uuid-1") != nil {
		t.Fatalf("malformed duplicate should be deleted")
	}
	if got := r.byID("uuid-2"); got == nil || got.Date != "2025-01-02" {
		t.Fatalf("sibling changed: %+v", got)
	}
	if got := r.byID("uuid-3"); got.Date != "2025-01-03" {
		t.Fatalf("uuid-3 date = %q", got.Date)
	}
	if got := r.byID("uuid-4"); got.Date != "ontem" {
		t.Fatalf("uuid-4 date = %q", got.Date)
	}
	if got := r.byID("uuid-6"); got.Date != "45000" {
		t.Fatalf("failed record must be left as is: %q", got.Date)
	}
	if got := r.byID("uuid-7"); got.Date != "2025-02-07" {
		t.Fatalf("uuid-7 date = %q", got.Date)
	}
}

func TestBackfillDates_NoSiblingIsUpdate(t *testing.T) {
	r := newMemRepo(domain.Reschedule{WorkOrder: "X", StockKeepingID: "Y", ReasonCode: "VCP", Date: "02/01/2025"})
	rep, err := (&MaintenanceService{Repo: r}).BackfillDates(context.Background())
	if err != nil || rep.Updated != 1 || rep.Deleted != 0 {
		t.Fatalf("rep=%+v err=%v", rep, err)
	}
}

func TestBackfillDates_LookupFailureCounted(t *testing.T) {
	r := newMemRepo(domain.Reschedule{WorkOrder: "X", Date: "45659"})
	r.findErr = errors.New("boom")
	rep, err := (&MaintenanceService{Repo: r}).BackfillDates(context.Background())
	if err != nil || rep.Failed != 1 || rep.Normalized != 0 {
		t.Fatalf("rep=%+v err=%v", rep, err)
	}
}

func TestBackfillDates_ListFailureAborts(t *testing.T) {
	r := newMemRepo()
	r.listErr = errors.New("db down")
	if _, err := (&MaintenanceService{Repo: r}).BackfillDates(context.Background()); err == nil {
		t.Fatalf("expected error when the scan fails")
	}
}
