package domain

import "sort"

// DefaultExcludedStates are the state strings dropped before aggregation.
// USGS labels Hawaiian events either way.
var DefaultExcludedStates = []string{"HI", "Hawaii"}

// ExcludeStates returns the records whose State is not in excluded.
// Matching is exact and case-sensitive. The input slice is not modified.
func ExcludeStates(records []EventRecord, excluded []string) []EventRecord {
	skip := make(map[string]struct{}, len(excluded))
	for _, s := range excluded {
		skip[s] = struct{}{}
	}

	out := make([]EventRecord, 0, len(records))
	for _, r := range records {
		if _, ok := skip[r.State]; ok {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ExcludeHawaii drops records attributed to "HI" or "Hawaii".
func ExcludeHawaii(records []EventRecord) []EventRecord {
	return ExcludeStates(records, DefaultExcludedStates)
}

// Aggregate groups records by State and returns one aggregate per state,
// ordered by descending count. Ties keep the order in which states were
// first seen. Records without a state are left out; see CountUnattributed.
func Aggregate(records []EventRecord) []StateAggregate {
	index := make(map[string]int)
	var aggs []StateAggregate

	for _, r := range records {
		if r.State == "" {
			continue
		}
		i, ok := index[r.State]
		if !ok {
			i = len(aggs)
			index[r.State] = i
			aggs = append(aggs, StateAggregate{State: r.State})
		}
		agg := &aggs[i]
		agg.Count++
		if r.Magnitude != nil && (agg.MaxMagnitude == nil || *r.Magnitude > *agg.MaxMagnitude) {
			m := *r.Magnitude
			agg.MaxMagnitude = &m
		}
	}

	sort.SliceStable(aggs, func(a, b int) bool {
		return aggs[a].Count > aggs[b].Count
	})
	return aggs
}

// CountUnattributed returns the number of records with no derivable state.
func CountUnattributed(records []EventRecord) int {
	n := 0
	for _, r := range records {
		if r.State == "" {
			n++
		}
	}
	return n
}

// IndexByState keys aggregates by their state string.
func IndexByState(aggs []StateAggregate) map[string]StateAggregate {
	m := make(map[string]StateAggregate, len(aggs))
	for _, a := range aggs {
		m[a.State] = a
	}
	return m
}

// CanonicalizeAggregates merges aggregates whose states resolve to the same
// CanonicalState, e.g. "Alaska" and "AK". Ordering rules match Aggregate.
func CanonicalizeAggregates(aggs []StateAggregate) []StateAggregate {
	index := make(map[string]int)
	var out []StateAggregate

	for _, a := range aggs {
		key := CanonicalState(a.State)
		i, ok := index[key]
		if !ok {
			index[key] = len(out)
			a.State = key
			out = append(out, a)
			continue
		}
		merged := &out[i]
		merged.Count += a.Count
		if a.MaxMagnitude != nil && (merged.MaxMagnitude == nil || *a.MaxMagnitude > *merged.MaxMagnitude) {
			m := *a.MaxMagnitude
			merged.MaxMagnitude = &m
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Count > out[b].Count
	})
	return out
}
