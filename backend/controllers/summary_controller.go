package controllers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mitboard/backend/config"
	"mitboard/backend/reports"
	"mitboard/backend/utils"
)

type SummaryController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewSummaryController(db *gorm.DB, cfg *config.Config) *SummaryController {
	return &SummaryController{DB: db, Cfg: cfg}
}

// GetMonthlySummary godoc
// @Summary Monthly summary
// @Description Sessions grouped by (month, skill); ?month=YYYY-MM filters, ?export=csv streams the rows as CSV
// @Tags summary
// @Produce json
// @Produce text/csv
// @Param month query string false "Month filter (YYYY-MM)"
// @Param export query string false "Set to csv for the export artifact"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /summary/monthly [get]
func (sc *SummaryController) GetMonthlySummary(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	// Malformed month filters are ignored, falling back to all months
	var month *time.Time
	if raw := c.Query("month"); raw != "" {
		if parsed, err := time.Parse("2006-01", raw); err == nil {
			month = &parsed
		}
	}

	var window *[2]time.Time
	if month != nil {
		start, end := reports.MonthWindow(*month)
		window = &[2]time.Time{start, end}
	}

	rows, err := reports.FetchSessionRows(sc.DB, userID, window)
	if err != nil {
		return utils.InternalServerError(c, "Could not query sessions")
	}

	if c.Query("export") == "csv" {
		return sc.exportCSV(c, rows, month)
	}

	return c.JSON(fiber.Map{
		"month": monthLabel(month),
		"rows":  reports.MonthlyBreakdown(rows),
	})
}

// GetWeeklySummary godoc
// @Summary Weekly breakdown
// @Description Sessions of the ?date= week grouped by day of week, Monday first
// @Tags summary
// @Produce json
// @Param date query string false "Any date inside the week (YYYY-MM-DD)"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /summary/weekly [get]
func (sc *SummaryController) GetWeeklySummary(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	// Invalid date values silently fall back to today
	anchor := time.Now()
	if raw := c.Query("date"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			anchor = parsed
		}
	}

	start, end := reports.WeekWindow(anchor)
	window := [2]time.Time{start, end}
	rows, err := reports.FetchSessionRows(sc.DB, userID, &window)
	if err != nil {
		return utils.InternalServerError(c, "Could not query sessions")
	}

	return c.JSON(fiber.Map{
		"week_start": start.Format("2006-01-02"),
		"week_end":   end.Format("2006-01-02"),
		"days":       reports.WeeklyBreakdown(rows),
	})
}

func (sc *SummaryController) exportCSV(c *fiber.Ctx, rows []reports.SessionRow, month *time.Time) error {
	var buf bytes.Buffer
	if err := reports.WriteCSV(&buf, rows); err != nil {
		return utils.InternalServerError(c, "Could not build CSV export")
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", reports.ExportFilename(month)))
	return c.Send(buf.Bytes())
}

func monthLabel(month *time.Time) string {
	if month != nil {
		return month.Format("2006-01")
	}
	return "all"
}
