package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// CSVHeader is the export contract's exact header line, spaces included.
const CSVHeader = "Date, Skill, Task, Planned Minutes, Actual Minutes, Status, Miss Reason"

// WriteCSV streams rows as delimited text under the fixed header. Null skill
// and actual-minutes fields render as empty strings.
func WriteCSV(w io.Writer, rows []SessionRow) error {
	if _, err := fmt.Fprintln(w, CSVHeader); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	for _, r := range rows {
		skill := ""
		if r.Skill != nil {
			skill = *r.Skill
		}
		actual := ""
		if r.ActualMinutes != nil {
			actual = strconv.Itoa(*r.ActualMinutes)
		}
		record := []string{
			r.Date.Format("2006-01-02"),
			skill,
			r.Title,
			strconv.Itoa(r.PlannedMinutes),
			actual,
			string(r.Status),
			r.MissReason,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFilename names the CSV artifact: mit-summary-<YYYY-MM>.csv when a month
// filter is active, mit-summary-all.csv otherwise.
func ExportFilename(month *time.Time) string {
	if month != nil {
		return fmt.Sprintf("mit-summary-%s.csv", month.Format("2006-01"))
	}
	return "mit-summary-all.csv"
}
