package reports

import (
	"time"

	"gorm.io/gorm"

	"mitboard/backend/models"
)

// IsCheckinComplete reports whether a check-in counts toward the streak:
// at least one session, and every session completed.
func IsCheckinComplete(c models.DailyCheckin) bool {
	if len(c.Sessions) == 0 {
		return false
	}
	for _, s := range c.Sessions {
		if s.Status != models.StatusCompleted {
			return false
		}
	}
	return true
}

// CurrentStreak walks backward from today over a date-keyed check-in map and
// counts consecutive fully-completed days. The walk starts at today itself, so
// a missing or incomplete check-in today ends the streak immediately.
func CurrentStreak(byDate map[string]models.DailyCheckin, today time.Time) int {
	streak := 0
	expected := models.TruncateToDay(today)
	for {
		checkin, ok := byDate[models.DateKey(expected)]
		if !ok || !IsCheckinComplete(checkin) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

// LoadCheckinMap fetches all of a user's check-ins with their sessions in one
// query and indexes them by date.
func LoadCheckinMap(db *gorm.DB, ownerID uint) (map[string]models.DailyCheckin, error) {
	var checkins []models.DailyCheckin
	if err := db.Preload("Sessions").Where("owner_id = ?", ownerID).Find(&checkins).Error; err != nil {
		return nil, err
	}

	byDate := make(map[string]models.DailyCheckin, len(checkins))
	for _, c := range checkins {
		byDate[models.DateKey(c.Date)] = c
	}
	return byDate, nil
}

// CurrentStreakFor computes the current streak for one user as of today.
func CurrentStreakFor(db *gorm.DB, ownerID uint, today time.Time) (int, error) {
	byDate, err := LoadCheckinMap(db, ownerID)
	if err != nil {
		return 0, err
	}
	return CurrentStreak(byDate, today), nil
}
