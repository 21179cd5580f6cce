package model

import "sort"

// Snapshot is the persisted leaderboard: every roster row, ordered by
// TotalSolved descending.
type Snapshot []StudentRecord

// SortByTotalSolved orders the snapshot descending by TotalSolved. Equal
// totals keep their roster order.
func (s Snapshot) SortByTotalSolved() {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].TotalSolved > s[j].TotalSolved
	})
}

// Find returns the first record with the given roll number.
func (s Snapshot) Find(roll string) (StudentRecord, bool) {
	for _, rec := range s {
		if rec.Roll == roll {
			return rec, true
		}
	}
	return StudentRecord{}, false
}

// DuplicateRolls lists roll numbers that appear more than once, in first-seen order.
func (s Snapshot) DuplicateRolls() []string {
	seen := make(map[string]int, len(s))
	var dups []string
	for _, rec := range s {
		seen[rec.Roll]++
		if seen[rec.Roll] == 2 {
			dups = append(dups, rec.Roll)
		}
	}
	return dups
}
