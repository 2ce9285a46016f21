package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mitboard/backend/config"
	"mitboard/backend/reports"
	"mitboard/backend/utils"
)

type DashboardController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewDashboardController(db *gorm.DB, cfg *config.Config) *DashboardController {
	return &DashboardController{DB: db, Cfg: cfg}
}

// GetDashboard godoc
// @Summary Dashboard overview
// @Description Current-month summary, streak, 6-month trend, recent sessions and per-skill goal progress
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /dashboard [get]
func (dc *DashboardController) GetDashboard(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, dc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	today := time.Now()
	monthStart, monthEnd := reports.MonthWindow(today)

	// One query covers the trend window; the current month is a slice of it
	trendStart := monthStart.AddDate(0, -5, 0)
	window := [2]time.Time{trendStart, monthEnd}
	rows, err := reports.FetchSessionRows(dc.DB, userID, &window)
	if err != nil {
		return utils.InternalServerError(c, "Could not query sessions")
	}

	var monthRows []reports.SessionRow
	for _, r := range rows {
		if !r.Date.Before(monthStart) && !r.Date.After(monthEnd) {
			monthRows = append(monthRows, r)
		}
	}
	summary := reports.Summarize(monthRows)

	streak, err := reports.CurrentStreakFor(dc.DB, userID, today)
	if err != nil {
		return utils.InternalServerError(c, "Could not compute streak")
	}

	recent, err := reports.FetchRecentRows(dc.DB, userID, 9)
	if err != nil {
		return utils.InternalServerError(c, "Could not query recent sessions")
	}

	goals, err := reports.GoalProgressFor(dc.DB, userID, monthStart, monthEnd)
	if err != nil {
		return utils.InternalServerError(c, "Could not compute goal progress")
	}

	trend := reports.Trend(rows)
	trendLabels := make([]string, 0, len(trend))
	trendPlanned := make([]int, 0, len(trend))
	trendActual := make([]int, 0, len(trend))
	trendCompletionRate := make([]float64, 0, len(trend))
	for _, p := range trend {
		trendLabels = append(trendLabels, p.Label)
		trendPlanned = append(trendPlanned, p.PlannedMinutes)
		trendActual = append(trendActual, p.ActualMinutes)
		trendCompletionRate = append(trendCompletionRate, p.CompletionRate)
	}

	return c.JSON(fiber.Map{
		"summary":               summary,
		"completion_rate":       reports.CompletionRate(summary.Completed, summary.Total),
		"current_streak":        streak,
		"recent_mits":           recent,
		"trend_labels":          trendLabels,
		"trend_planned":         trendPlanned,
		"trend_actual":          trendActual,
		"trend_completion_rate": trendCompletionRate,
		"goal_progress":         goals,
	})
}
