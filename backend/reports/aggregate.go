package reports

import (
	"math"
	"sort"
	"time"

	"gorm.io/gorm"

	"mitboard/backend/models"
)

// NoSkillLabel buckets sessions whose skill was removed or never set.
const NoSkillLabel = "(no skill)"

// SessionRow is one session joined with its check-in date and skill name,
// the unit every breakdown and the CSV export are computed from.
type SessionRow struct {
	Date           time.Time            `json:"date"`
	Skill          *string              `json:"skill"`
	Title          string               `json:"title"`
	PlannedMinutes int                  `json:"planned_minutes"`
	ActualMinutes  *int                 `json:"actual_minutes"`
	Status         models.SessionStatus `json:"status"`
	MissReason     string               `json:"miss_reason"`
}

func (r SessionRow) SkillLabel() string {
	if r.Skill == nil || *r.Skill == "" {
		return NoSkillLabel
	}
	return *r.Skill
}

const sessionRowSelect = "daily_checkins.date AS date, skills.name AS skill, " +
	"mit_sessions.title AS title, mit_sessions.planned_minutes AS planned_minutes, " +
	"mit_sessions.actual_minutes AS actual_minutes, mit_sessions.status AS status, " +
	"mit_sessions.miss_reason AS miss_reason"

func sessionRowQuery(db *gorm.DB, ownerID uint) *gorm.DB {
	return db.Model(&models.MITSession{}).
		Joins("JOIN daily_checkins ON daily_checkins.id = mit_sessions.daily_checkin_id AND daily_checkins.deleted_at IS NULL").
		Joins("LEFT JOIN skills ON skills.id = mit_sessions.skill_id").
		Where("daily_checkins.owner_id = ?", ownerID).
		Select(sessionRowSelect)
}

// FetchSessionRows loads a user's session rows in one joined query, newest
// check-in date first. A nil window loads all rows; otherwise rows are limited
// to dates in [start, end].
func FetchSessionRows(db *gorm.DB, ownerID uint, window *[2]time.Time) ([]SessionRow, error) {
	q := sessionRowQuery(db, ownerID)
	if window != nil {
		q = q.Where("daily_checkins.date BETWEEN ? AND ?", window[0], window[1])
	}

	var rows []SessionRow
	err := q.Order("daily_checkins.date DESC, skills.name, mit_sessions.title").Scan(&rows).Error
	return rows, err
}

// FetchRecentRows loads the user's latest session rows.
func FetchRecentRows(db *gorm.DB, ownerID uint, limit int) ([]SessionRow, error) {
	var rows []SessionRow
	err := sessionRowQuery(db, ownerID).
		Order("daily_checkins.date DESC, skills.name, mit_sessions.title").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// Totals aggregates a row set. Null actual minutes count as 0 in the sum but
// still contribute to Total.
type Totals struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	PlannedMinutes int `json:"planned_minutes"`
	ActualMinutes  int `json:"actual_minutes"`
}

func Summarize(rows []SessionRow) Totals {
	var t Totals
	for _, r := range rows {
		t.Total++
		t.PlannedMinutes += r.PlannedMinutes
		if r.ActualMinutes != nil {
			t.ActualMinutes += *r.ActualMinutes
		}
		if r.Status == models.StatusCompleted {
			t.Completed++
		}
	}
	return t
}

// CompletionRate returns round(100*completed/total, 1), defined as 0 for an
// empty denominator.
func CompletionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*1000) / 10
}

// MonthWindow returns the first and last day of t's calendar month.
func MonthWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

// WeekWindow returns the Monday and Sunday of t's week.
func WeekWindow(t time.Time) (time.Time, time.Time) {
	day := models.TruncateToDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// MonthlyGroup is one (month, skill) bucket of the monthly summary.
type MonthlyGroup struct {
	Month          time.Time `json:"month"`
	Skill          string    `json:"skill"`
	Count          int       `json:"count"`
	Completed      int       `json:"completed"`
	PlannedMinutes int       `json:"planned_minutes"`
	ActualMinutes  int       `json:"actual_minutes"`
}

// MonthlyBreakdown groups rows by (calendar month, skill label), month
// descending then label ascending.
func MonthlyBreakdown(rows []SessionRow) []MonthlyGroup {
	type key struct {
		month string
		skill string
	}
	groups := make(map[key]*MonthlyGroup)

	for _, r := range rows {
		month := time.Date(r.Date.Year(), r.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		k := key{month.Format("2006-01"), r.SkillLabel()}
		g, ok := groups[k]
		if !ok {
			g = &MonthlyGroup{Month: month, Skill: k.skill}
			groups[k] = g
		}
		g.Count++
		g.PlannedMinutes += r.PlannedMinutes
		if r.ActualMinutes != nil {
			g.ActualMinutes += *r.ActualMinutes
		}
		if r.Status == models.StatusCompleted {
			g.Completed++
		}
	}

	out := make([]MonthlyGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Month.Equal(out[j].Month) {
			return out[i].Month.After(out[j].Month)
		}
		return out[i].Skill < out[j].Skill
	})
	return out
}

// TrendPoint is one month of the dashboard trend, chronological order.
type TrendPoint struct {
	Month          time.Time `json:"month"`
	Label          string    `json:"label"`
	PlannedMinutes int       `json:"planned_minutes"`
	ActualMinutes  int       `json:"actual_minutes"`
	Completed      int       `json:"completed"`
	Total          int       `json:"total"`
	CompletionRate float64   `json:"completion_rate"`
}

// Trend buckets rows by calendar month, oldest first.
func Trend(rows []SessionRow) []TrendPoint {
	groups := make(map[string]*TrendPoint)
	for _, r := range rows {
		month := time.Date(r.Date.Year(), r.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		k := month.Format("2006-01")
		p, ok := groups[k]
		if !ok {
			p = &TrendPoint{Month: month, Label: month.Format("Jan 2006")}
			groups[k] = p
		}
		p.Total++
		p.PlannedMinutes += r.PlannedMinutes
		if r.ActualMinutes != nil {
			p.ActualMinutes += *r.ActualMinutes
		}
		if r.Status == models.StatusCompleted {
			p.Completed++
		}
	}

	out := make([]TrendPoint, 0, len(groups))
	for _, p := range groups {
		p.CompletionRate = CompletionRate(p.Completed, p.Total)
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}

// WeekdayGroup is one day-of-week bucket of the weekly view.
type WeekdayGroup struct {
	Weekday        time.Weekday `json:"-"`
	Label          string       `json:"label"`
	Count          int          `json:"count"`
	Completed      int          `json:"completed"`
	PlannedMinutes int          `json:"planned_minutes"`
	ActualMinutes  int          `json:"actual_minutes"`
}

// WeeklyBreakdown groups rows by day of week, Monday through Sunday. Every
// weekday appears in the result even when it has no sessions.
func WeeklyBreakdown(rows []SessionRow) []WeekdayGroup {
	order := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}

	groups := make(map[time.Weekday]*WeekdayGroup, len(order))
	out := make([]WeekdayGroup, len(order))
	for i, wd := range order {
		out[i] = WeekdayGroup{Weekday: wd, Label: wd.String()}
		groups[wd] = &out[i]
	}

	for _, r := range rows {
		g := groups[r.Date.Weekday()]
		g.Count++
		g.PlannedMinutes += r.PlannedMinutes
		if r.ActualMinutes != nil {
			g.ActualMinutes += *r.ActualMinutes
		}
		if r.Status == models.StatusCompleted {
			g.Completed++
		}
	}
	return out
}

// GoalProgress is one active skill's logged completed minutes against its goal.
type GoalProgress struct {
	SkillID          uint    `json:"skill_id"`
	Skill            string  `json:"skill"`
	GoalMinutes      int     `json:"goal_minutes"`
	CompletedMinutes int     `json:"completed_minutes"`
	Percent          float64 `json:"percent"`
}

// GoalProgressFor computes per-skill completed minutes within [start, end] for
// every active skill the user owns. Percent is 0 when the goal is 0.
func GoalProgressFor(db *gorm.DB, ownerID uint, start, end time.Time) ([]GoalProgress, error) {
	var skills []models.Skill
	if err := db.Where("owner_id = ? AND is_active = ?", ownerID, true).
		Order("name").Find(&skills).Error; err != nil {
		return nil, err
	}

	type skillMinutes struct {
		SkillID uint
		Minutes int
	}
	var mins []skillMinutes
	err := db.Model(&models.MITSession{}).
		Joins("JOIN daily_checkins ON daily_checkins.id = mit_sessions.daily_checkin_id AND daily_checkins.deleted_at IS NULL").
		Where("daily_checkins.owner_id = ? AND daily_checkins.date BETWEEN ? AND ?", ownerID, start, end).
		Where("mit_sessions.status = ? AND mit_sessions.skill_id IS NOT NULL", models.StatusCompleted).
		Select("mit_sessions.skill_id AS skill_id, COALESCE(SUM(mit_sessions.actual_minutes), 0) AS minutes").
		Group("mit_sessions.skill_id").
		Scan(&mins).Error
	if err != nil {
		return nil, err
	}

	bySkill := make(map[uint]int, len(mins))
	for _, m := range mins {
		bySkill[m.SkillID] = m.Minutes
	}

	out := make([]GoalProgress, 0, len(skills))
	for _, s := range skills {
		gp := GoalProgress{
			SkillID:          s.ID,
			Skill:            s.Name,
			GoalMinutes:      s.GoalMinutes,
			CompletedMinutes: bySkill[s.ID],
		}
		if s.GoalMinutes > 0 {
			gp.Percent = math.Round(float64(gp.CompletedMinutes)/float64(s.GoalMinutes)*1000) / 10
		}
		out = append(out, gp)
	}
	return out, nil
}
