package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mitboard/backend/models"
)

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

func TestSummarizeTreatsNullActualAsZero(t *testing.T) {
	rows := []SessionRow{
		{Date: day(2024, time.March, 5), PlannedMinutes: 30, ActualMinutes: intPtr(30), Status: models.StatusCompleted},
		{Date: day(2024, time.March, 6), PlannedMinutes: 20, Status: models.StatusPlanned},
	}

	totals := Summarize(rows)
	assert.Equal(t, 2, totals.Total)
	assert.Equal(t, 1, totals.Completed)
	assert.Equal(t, 50, totals.PlannedMinutes)
	assert.Equal(t, 30, totals.ActualMinutes)
}

func TestCompletionRateZeroDenominator(t *testing.T) {
	assert.Equal(t, 0.0, CompletionRate(0, 0))
}

func TestCompletionRateRoundsToOneDecimal(t *testing.T) {
	assert.Equal(t, 66.7, CompletionRate(2, 3))
	assert.Equal(t, 100.0, CompletionRate(3, 3))
	assert.Equal(t, 33.3, CompletionRate(1, 3))
}

func TestCompletionRateBounds(t *testing.T) {
	for completed := 0; completed <= 10; completed++ {
		rate := CompletionRate(completed, 10)
		assert.GreaterOrEqual(t, rate, 0.0)
		assert.LessOrEqual(t, rate, 100.0)
	}
}

func TestMonthlyBreakdownGroupsByMonthAndSkill(t *testing.T) {
	rows := []SessionRow{
		{Date: day(2024, time.March, 5), Skill: strPtr("Guitar"), PlannedMinutes: 30, ActualMinutes: intPtr(30), Status: models.StatusCompleted},
		{Date: day(2024, time.March, 20), Skill: strPtr("Guitar"), PlannedMinutes: 40, Status: models.StatusPlanned},
		{Date: day(2024, time.February, 10), Skill: strPtr("Guitar"), PlannedMinutes: 15, ActualMinutes: intPtr(15), Status: models.StatusCompleted},
	}

	groups := MonthlyBreakdown(rows)
	if assert.Len(t, groups, 2) {
		// Month descending
		assert.Equal(t, time.March, groups[0].Month.Month())
		assert.Equal(t, 2, groups[0].Count)
		assert.Equal(t, 1, groups[0].Completed)
		assert.Equal(t, 70, groups[0].PlannedMinutes)
		assert.Equal(t, 30, groups[0].ActualMinutes)

		assert.Equal(t, time.February, groups[1].Month.Month())
		assert.Equal(t, 1, groups[1].Count)
	}
}

func TestMonthlyBreakdownNoSkillSentinel(t *testing.T) {
	rows := []SessionRow{
		{Date: day(2024, time.March, 5), PlannedMinutes: 30, Status: models.StatusPlanned},
	}
	groups := MonthlyBreakdown(rows)
	if assert.Len(t, groups, 1) {
		assert.Equal(t, NoSkillLabel, groups[0].Skill)
	}
}

func TestMonthlyBreakdownOrdersLabelsWithinMonth(t *testing.T) {
	rows := []SessionRow{
		{Date: day(2024, time.March, 5), Skill: strPtr("Guitar"), PlannedMinutes: 30},
		{Date: day(2024, time.March, 6), Skill: strPtr("Bible"), PlannedMinutes: 20},
	}
	groups := MonthlyBreakdown(rows)
	if assert.Len(t, groups, 2) {
		assert.Equal(t, "Bible", groups[0].Skill)
		assert.Equal(t, "Guitar", groups[1].Skill)
	}
}

func TestTrendChronologicalWithRates(t *testing.T) {
	rows := []SessionRow{
		{Date: day(2024, time.March, 5), PlannedMinutes: 30, ActualMinutes: intPtr(30), Status: models.StatusCompleted},
		{Date: day(2024, time.February, 10), PlannedMinutes: 20, Status: models.StatusPlanned},
		{Date: day(2024, time.February, 11), PlannedMinutes: 20, ActualMinutes: intPtr(25), Status: models.StatusCompleted},
	}

	trend := Trend(rows)
	if assert.Len(t, trend, 2) {
		assert.Equal(t, "Feb 2024", trend[0].Label)
		assert.Equal(t, 50.0, trend[0].CompletionRate)
		assert.Equal(t, 25, trend[0].ActualMinutes)
		assert.Equal(t, "Mar 2024", trend[1].Label)
		assert.Equal(t, 100.0, trend[1].CompletionRate)
	}
}

func TestWeeklyBreakdownCoversAllWeekdays(t *testing.T) {
	// 2024-03-04 is a Monday
	rows := []SessionRow{
		{Date: day(2024, time.March, 4), PlannedMinutes: 30, ActualMinutes: intPtr(30), Status: models.StatusCompleted},
		{Date: day(2024, time.March, 6), PlannedMinutes: 20, Status: models.StatusPlanned},
	}

	days := WeeklyBreakdown(rows)
	if assert.Len(t, days, 7) {
		assert.Equal(t, "Monday", days[0].Label)
		assert.Equal(t, 1, days[0].Count)
		assert.Equal(t, "Wednesday", days[2].Label)
		assert.Equal(t, 1, days[2].Count)
		assert.Equal(t, "Sunday", days[6].Label)
		assert.Equal(t, 0, days[6].Count)
	}
}

func TestWeekWindowMondayBased(t *testing.T) {
	// 2024-03-06 is a Wednesday
	start, end := WeekWindow(day(2024, time.March, 6))
	assert.Equal(t, day(2024, time.March, 4), start)
	assert.Equal(t, day(2024, time.March, 10), end)

	// Sunday belongs to the week that started the previous Monday
	start, end = WeekWindow(day(2024, time.March, 10))
	assert.Equal(t, day(2024, time.March, 4), start)
	assert.Equal(t, day(2024, time.March, 10), end)
}

func TestMonthWindow(t *testing.T) {
	start, end := MonthWindow(day(2024, time.February, 15))
	assert.Equal(t, day(2024, time.February, 1), start)
	assert.Equal(t, day(2024, time.February, 29), end)
}
