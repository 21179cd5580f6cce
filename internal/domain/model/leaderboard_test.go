package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(roll string, total int) StudentRecord {
	return StudentRecord{RosterEntry: RosterEntry{Roll: roll}, Stats: Stats{TotalSolved: total}}
}

func TestSnapshotSortByTotalSolved_DescendingAndStable(t *testing.T) {
	snap := Snapshot{rec("a", 3), rec("b", 10), rec("c", 3), rec("d", 0), rec("e", 10)}
	snap.SortByTotalSolved()

	var rolls []string
	for _, r := range snap {
		rolls = append(rolls, r.Roll)
	}
	assert.Equal(t, []string{"b", "e", "a", "c", "d"}, rolls)
	for i := 0; i+1 < len(snap); i++ {
		assert.GreaterOrEqual(t, snap[i].TotalSolved, snap[i+1].TotalSolved)
	}
}

func TestSnapshotFind_FirstMatch(t *testing.T) {
	first := rec("7", 1)
	first.Name = "first"
	second := rec("7", 2)
	second.Name = "second"
	snap := Snapshot{rec("1", 0), first, second}

	got, ok := snap.Find("7")
	require.True(t, ok)
	assert.Equal(t, "first", got.Name)

	_, ok = snap.Find("missing")
	assert.False(t, ok)
	assert.Equal(t, []string{"7"}, snap.DuplicateRolls())
}

func TestSectionOrDefault(t *testing.T) {
	assert.Equal(t, "A", RosterEntry{Section: " A "}.SectionOrDefault())
	assert.Equal(t, DefaultSection, RosterEntry{}.SectionOrDefault())
}

func TestStudentRecordJSONShape(t *testing.T) {
	r := NewStudentRecord(RosterEntry{Roll: "102", Name: "Bob", URL: "https://example.com/bob", Section: "B"}).
		WithStats(Stats{}, InfoNoData)

	raw, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"roll": "102", "name": "Bob", "url": "https://example.com/bob", "section": "B",
		"totalSolved": 0, "easySolved": 0, "mediumSolved": 0, "hardSolved": 0,
		"info": "No LeetCode data available"
	}`, string(raw))

	withStats := NewStudentRecord(RosterEntry{Roll: "101"}).WithStats(Stats{TotalSolved: 10}, "")
	raw, err = json.Marshal(withStats)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"info"`)
}
