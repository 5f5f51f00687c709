package schedule

import "sort"

// ConflictPair records two overlapping ranges. First always starts no later
// than Second.
type ConflictPair struct {
	First  TimeRange `json:"first"`
	Second TimeRange `json:"second"`
}

// Overlaps reports whether two ranges overlap using half-open interval
// semantics: touching endpoints (a.End == b.Start) do not count, so
// back-to-back shifts are allowed. Inactive ranges never overlap anything.
func Overlaps(a, b TimeRange) bool {
	if !a.Active || !b.Active {
		return false
	}
	return a.Start < b.End && b.Start < a.End
}

// Conflicts returns every overlapping pair among the active ranges, each pair
// reported once. Inputs are sorted by start time (then end time) before the
// pairwise scan so the conflict list is deterministic regardless of input
// order and reads chronologically.
func Conflicts(ranges []TimeRange) []ConflictPair {
	active := make([]TimeRange, 0, len(ranges))
	for _, r := range ranges {
		if r.Active {
			active = append(active, r)
		}
	}
	if len(active) < 2 {
		return nil
	}

	sort.Slice(active, func(i, j int) bool {
		if active[i].Start != active[j].Start {
			return active[i].Start < active[j].Start
		}
		return active[i].End < active[j].End
	})

	var pairs []ConflictPair
	for i := 0; i < len(active)-1; i++ {
		for j := i + 1; j < len(active); j++ {
			// Sorted by start, so once j clears i's end nothing later overlaps i.
			if active[j].Start >= active[i].End {
				break
			}
			pairs = append(pairs, ConflictPair{First: active[i], Second: active[j]})
		}
	}
	return pairs
}
