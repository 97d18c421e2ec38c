// Package dedupe compares record collections by their natural key
// (work order, SKU, date, reason code). Storage ids never take part.
package dedupe

import "github.com/tbourn/go-reschedule-backend/internal/domain"

// Dedupe keeps the first record seen for each natural key, preserving the
// order of first occurrence. The input is not modified.
func Dedupe(records []domain.Reschedule) []domain.Reschedule {
	seen := make(map[domain.NaturalKey]struct{}, len(records))
	out := make([]domain.Reschedule, 0, len(records))
	for _, r := range records {
		k := r.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Keys returns the set of natural keys present in records.
func Keys(records []domain.Reschedule) map[domain.NaturalKey]struct{} {
	keys := make(map[domain.NaturalKey]struct{}, len(records))
	for _, r := range records {
		keys[r.Key()] = struct{}{}
	}
	return keys
}

// DiffMissing returns the baseline records whose natural key is absent from
// live, in baseline order. Duplicates inside baseline are all returned;
// callers that insert must Dedupe first.
func DiffMissing(baseline, live []domain.Reschedule) []domain.Reschedule {
	have := Keys(live)
	out := make([]domain.Reschedule, 0)
	for _, r := range baseline {
		if _, ok := have[r.Key()]; !ok {
			out = append(out, r)
		}
	}
	return out
}

// Merge is the union of live and baseline by natural key. Live records come
// first and win over baseline records sharing their key.
func Merge(live, baseline []domain.Reschedule) []domain.Reschedule {
	all := make([]domain.Reschedule, 0, len(live)+len(baseline))
	all = append(all, live...)
	all = append(all, baseline...)
	return Dedupe(all)
}
