// Package dashboard holds the leaderboard view state and its transitions.
//
// State is a value. Every transition takes a State and returns a new one,
// never mutating the slices or maps of its input, so the TUI, the export
// command and tests all drive the same code without a UI.
package dashboard

import (
	"fmt"
	"maps"
	"sort"
	"strings"

	"leetboard/internal/domain/model"
)

// AllSections is the filter value that selects every record.
const AllSections = "all"

// textSentinel stands in for blank text values when sorting. It is the
// largest code point, so blanks sort after every real value in ascending order.
const textSentinel = "\U0010FFFF"

type Field string

const (
	FieldTotal   Field = "total"
	FieldEasy    Field = "easy"
	FieldMedium  Field = "medium"
	FieldHard    Field = "hard"
	FieldSection Field = "section"
	FieldName    Field = "name"
	FieldRoll    Field = "roll"
)

// Fields lists every sortable field.
var Fields = []Field{FieldTotal, FieldEasy, FieldMedium, FieldHard, FieldSection, FieldName, FieldRoll}

// ParseField accepts a field name as used on the command line.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Fields {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

// Numeric reports whether the field holds a solved count.
func (f Field) Numeric() bool {
	switch f {
	case FieldTotal, FieldEasy, FieldMedium, FieldHard:
		return true
	}
	return false
}

func (f Field) number(r model.StudentRecord) int {
	switch f {
	case FieldTotal:
		return r.TotalSolved
	case FieldEasy:
		return r.EasySolved
	case FieldMedium:
		return r.MediumSolved
	case FieldHard:
		return r.HardSolved
	}
	return 0
}

func (f Field) text(r model.StudentRecord) string {
	var v string
	switch f {
	case FieldSection:
		v = r.Section
	case FieldName:
		v = r.Name
	case FieldRoll:
		v = r.Roll
	}
	if v == "" {
		return textSentinel
	}
	return v
}

type Direction int

const (
	Descending Direction = iota
	Ascending
)

func (d Direction) Toggle() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

func (d Direction) String() string {
	if d == Ascending {
		return "asc"
	}
	return "desc"
}

// State is the dashboard's whole view model.
type State struct {
	// Original is the snapshot as fetched. It is never reordered.
	Original model.Snapshot

	// Working is the filtered, sorted and pinned view shown to the user.
	Working model.Snapshot

	Pinned     string
	Directions map[Field]Direction
	SortedBy   Field
	Section    string
	Sections   []string
}

// Load builds the initial state: every record in snapshot order, no pin,
// numeric fields descending and text fields ascending.
func Load(snapshot model.Snapshot) State {
	original := append(model.Snapshot(nil), snapshot...)

	seen := make(map[string]struct{})
	var sections []string
	for _, r := range original {
		sec := r.SectionOrDefault()
		if _, ok := seen[sec]; ok {
			continue
		}
		seen[sec] = struct{}{}
		sections = append(sections, sec)
	}
	sort.Strings(sections)

	directions := make(map[Field]Direction, len(Fields))
	for _, f := range Fields {
		if f.Numeric() {
			directions[f] = Descending
		} else {
			directions[f] = Ascending
		}
	}

	return State{
		Original:   original,
		Working:    append(model.Snapshot(nil), original...),
		Directions: directions,
		Section:    AllSections,
		Sections:   sections,
	}
}

// Filter rebuilds the working view from the original snapshot. The stored
// pin survives, but the pinned row is no longer moved to the top.
func Filter(s State, section string) State {
	next := s
	next.Section = section
	next.SortedBy = ""
	next.Working = make(model.Snapshot, 0, len(s.Original))
	for _, r := range s.Original {
		if section == AllSections || r.SectionOrDefault() == section {
			next.Working = append(next.Working, r)
		}
	}
	return next
}

// Sort flips the field's direction and then reorders the working view by
// it. Equal values keep their relative order.
func Sort(s State, field Field) State {
	next := s
	next.Directions = maps.Clone(s.Directions)
	if next.Directions == nil {
		next.Directions = make(map[Field]Direction)
	}
	dir := next.Directions[field].Toggle()
	next.Directions[field] = dir
	next.SortedBy = field

	working := append(model.Snapshot(nil), s.Working...)
	sort.SliceStable(working, func(i, j int) bool {
		var c int
		if field.Numeric() {
			c = field.number(working[i]) - field.number(working[j])
		} else {
			c = strings.Compare(field.text(working[i]), field.text(working[j]))
		}
		if dir == Descending {
			return c > 0
		}
		return c < 0
	})
	next.Working = working
	return next
}

// Pin moves the record with roll to the front of the working view. An
// unknown roll leaves the state unchanged.
func Pin(s State, roll string) State {
	idx := -1
	for i, r := range s.Working {
		if r.Roll == roll {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s
	}

	working := make(model.Snapshot, 0, len(s.Working))
	working = append(working, s.Working[idx])
	working = append(working, s.Working[:idx]...)
	working = append(working, s.Working[idx+1:]...)

	next := s
	next.Working = working
	next.Pinned = roll
	return next
}

// PinnedRecord returns the record for the summary panel. It is looked up in
// the original snapshot so the panel stays filled when a filter hides the row.
func PinnedRecord(s State) (model.StudentRecord, bool) {
	if s.Pinned == "" {
		return model.StudentRecord{}, false
	}
	return s.Original.Find(s.Pinned)
}
