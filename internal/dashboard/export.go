package dashboard

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/gosimple/slug"
)

// ExportHeader is the fixed first row of every export.
var ExportHeader = []string{"Rank", "Roll Number", "Name", "Section", "Total Solved", "Easy", "Medium", "Hard", "LeetCode URL"}

const notAvailable = "N/A"

// Export writes the working view as CSV, ranked by position. Zero counts
// are written as N/A, matching how the dashboard has always shown them.
func Export(s State, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, r := range s.Working {
		row := []string{
			strconv.Itoa(i + 1),
			r.Roll,
			r.Name,
			r.SectionOrDefault(),
			FormatCount(r.TotalSolved),
			FormatCount(r.EasySolved),
			FormatCount(r.MediumSolved),
			FormatCount(r.HardSolved),
			r.URL,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFilename names the file for the active filter.
func ExportFilename(s State) string {
	if s.Section == "" || s.Section == AllSections {
		return "leaderboard.csv"
	}
	name := slug.Make(s.Section)
	if name == "" {
		return "leaderboard.csv"
	}
	return "leaderboard-" + name + ".csv"
}

// FormatCount renders a solved count the way every dashboard view shows it:
// zero is N/A.
func FormatCount(n int) string {
	if n == 0 {
		return notAvailable
	}
	return strconv.Itoa(n)
}
