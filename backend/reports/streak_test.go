package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mitboard/backend/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func completeCheckin(date time.Time) models.DailyCheckin {
	return models.DailyCheckin{
		Date: date,
		Sessions: []models.MITSession{
			{Status: models.StatusCompleted},
			{Status: models.StatusCompleted},
		},
	}
}

func mapOf(checkins ...models.DailyCheckin) map[string]models.DailyCheckin {
	byDate := make(map[string]models.DailyCheckin, len(checkins))
	for _, c := range checkins {
		byDate[models.DateKey(c.Date)] = c
	}
	return byDate
}

func TestCurrentStreakStopsAtFirstGap(t *testing.T) {
	today := day(2024, time.January, 10)
	byDate := mapOf(
		completeCheckin(day(2024, time.January, 10)),
		completeCheckin(day(2024, time.January, 9)),
		// 2024-01-08 missing
		completeCheckin(day(2024, time.January, 7)),
	)

	assert.Equal(t, 2, CurrentStreak(byDate, today))
}

func TestCurrentStreakZeroWhenTodayMissing(t *testing.T) {
	today := day(2024, time.January, 10)
	byDate := mapOf(completeCheckin(day(2024, time.January, 9)))

	assert.Equal(t, 0, CurrentStreak(byDate, today))
}

func TestCurrentStreakZeroWhenNoCheckins(t *testing.T) {
	assert.Equal(t, 0, CurrentStreak(map[string]models.DailyCheckin{}, day(2024, time.January, 10)))
}

func TestCurrentStreakIncompleteDayBreaks(t *testing.T) {
	today := day(2024, time.January, 10)
	incomplete := models.DailyCheckin{
		Date: day(2024, time.January, 9),
		Sessions: []models.MITSession{
			{Status: models.StatusCompleted},
			{Status: models.StatusSkipped},
		},
	}
	byDate := mapOf(
		completeCheckin(day(2024, time.January, 10)),
		incomplete,
		completeCheckin(day(2024, time.January, 8)),
	)

	assert.Equal(t, 1, CurrentStreak(byDate, today))
}

func TestIsCheckinCompleteRequiresSessions(t *testing.T) {
	assert.False(t, IsCheckinComplete(models.DailyCheckin{Date: day(2024, time.January, 10)}))
}

func TestIsCheckinCompleteRequiresAllCompleted(t *testing.T) {
	c := models.DailyCheckin{
		Sessions: []models.MITSession{
			{Status: models.StatusCompleted},
			{Status: models.StatusPlanned},
		},
	}
	assert.False(t, IsCheckinComplete(c))

	c.Sessions[1].Status = models.StatusCompleted
	assert.True(t, IsCheckinComplete(c))
}
