package model

import "strings"

const (
	// DefaultSection is shown wherever a roster row carries no section label.
	DefaultSection = "N/A"

	InfoNoData     = "No LeetCode data available"
	InfoFetchError = "Error fetching LeetCode data"
)

// RosterEntry is one tracked student as read from the roster files.
type RosterEntry struct {
	Roll    string `json:"roll"`
	Name    string `json:"name"`
	URL     string `json:"url"`
	Section string `json:"section"`
}

// SectionOrDefault returns the section label, or DefaultSection when blank.
func (e RosterEntry) SectionOrDefault() string {
	if s := strings.TrimSpace(e.Section); s != "" {
		return s
	}
	return DefaultSection
}

// Stats are accepted-submission counts per difficulty bucket.
type Stats struct {
	TotalSolved  int `json:"totalSolved"`
	EasySolved   int `json:"easySolved"`
	MediumSolved int `json:"mediumSolved"`
	HardSolved   int `json:"hardSolved"`
}

// StudentRecord is a roster entry merged with its fetched statistics.
// Info carries a status note when the statistics could not be fetched.
type StudentRecord struct {
	RosterEntry
	Stats
	Info string `json:"info,omitempty"`
}

// NewStudentRecord builds the record shell for a roster row, stats zeroed.
func NewStudentRecord(entry RosterEntry) StudentRecord {
	return StudentRecord{RosterEntry: entry}
}

// WithStats returns a copy of r carrying s and note.
func (r StudentRecord) WithStats(s Stats, note string) StudentRecord {
	r.Stats = s
	r.Info = note
	return r
}
