package reports

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mitboard/backend/models"
)

func TestWriteCSVHeader(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, WriteCSV(&buf, nil))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{"Date, Skill, Task, Planned Minutes, Actual Minutes, Status, Miss Reason"}, lines)
}

func TestWriteCSVRowCountMatchesInput(t *testing.T) {
	rows := []SessionRow{
		{Date: day(2024, time.March, 5), Skill: strPtr("Guitar"), Title: "Scales", PlannedMinutes: 30, ActualMinutes: intPtr(25), Status: models.StatusCompleted},
		{Date: day(2024, time.March, 4), Skill: strPtr("Bible"), Title: "Reading", PlannedMinutes: 20, Status: models.StatusSkipped, MissReason: "travel day"},
	}

	var buf bytes.Buffer
	assert.NoError(t, WriteCSV(&buf, rows))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 1+len(rows))
	assert.Equal(t, "2024-03-05,Guitar,Scales,30,25,completed,", lines[1])
	assert.Equal(t, "2024-03-04,Bible,Reading,20,,skipped,travel day", lines[2])
}

func TestWriteCSVNullFieldsRenderEmpty(t *testing.T) {
	rows := []SessionRow{
		{Date: day(2024, time.March, 5), Title: "Untracked", PlannedMinutes: 15, Status: models.StatusPlanned},
	}

	var buf bytes.Buffer
	assert.NoError(t, WriteCSV(&buf, rows))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, "2024-03-05,,Untracked,15,,planned,", lines[1])
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "mit-summary-all.csv", ExportFilename(nil))

	month := day(2024, time.March, 1)
	assert.Equal(t, "mit-summary-2024-03.csv", ExportFilename(&month))
}
