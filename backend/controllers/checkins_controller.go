package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mitboard/backend/config"
	"mitboard/backend/models"
	"mitboard/backend/utils"
	"mitboard/backend/validation"
)

type CheckinsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCheckinsController(db *gorm.DB, cfg *config.Config) *CheckinsController {
	return &CheckinsController{DB: db, Cfg: cfg}
}

type CheckinInput struct {
	Date     string                    `json:"date"`
	Notes    string                    `json:"notes"`
	Sessions []validation.SessionEntry `json:"sessions"`
}

// CreateCheckin godoc
// @Summary Submit a daily check-in
// @Description Validates the whole session batch, then persists the check-in and its sessions in one transaction
// @Tags checkins
// @Accept json
// @Produce json
// @Param checkin body CheckinInput true "Check-in with 1-8 session entries"
// @Success 201 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse "A check-in already exists for this date"
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /checkins [post]
func (cc *CheckinsController) CreateCheckin(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input CheckinInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	date, dateErrs := parseCheckinDate(input.Date)
	if len(dateErrs) > 0 {
		return utils.ValidationError(c, dateErrs)
	}

	// Lookup before write: a second submission for an owned date resolves to
	// the existing record instead of tripping the uniqueness constraint.
	var existing models.DailyCheckin
	err = cc.DB.Where("owner_id = ? AND date = ?", userID, date).First(&existing).Error
	if err == nil {
		return utils.Conflict(c, "A check-in already exists for this date", fiber.Map{
			"checkin_id": existing.ID,
			"edit_url":   "/api/checkins/" + itoa(existing.ID),
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not query database")
	}

	skills, err := cc.activeSkills(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query skills")
	}

	sessions, violations := validation.ValidateBatch(input.Sessions, skills)
	if len(violations) > 0 {
		return utils.ValidationError(c, violations)
	}

	checkin := models.DailyCheckin{
		OwnerID: userID,
		Date:    date,
		Notes:   input.Notes,
	}
	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&checkin).Error; err != nil {
			return err
		}
		for i := range sessions {
			sessions[i].DailyCheckinID = checkin.ID
		}
		return tx.Create(&sessions).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not save check-in")
	}

	checkin.Sessions = sessions
	return utils.Created(c, checkin)
}

// UpdateCheckin godoc
// @Summary Edit a daily check-in
// @Description Replaces the check-in's notes and full session batch after whole-batch validation
// @Tags checkins
// @Accept json
// @Produce json
// @Param id path int true "Check-in ID"
// @Param checkin body CheckinInput true "Check-in with 1-8 session entries"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /checkins/{id} [put]
func (cc *CheckinsController) UpdateCheckin(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	checkin, err := cc.findOwnedCheckin(c, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Check-in not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var input CheckinInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	date := checkin.Date
	if input.Date != "" {
		parsed, dateErrs := parseCheckinDate(input.Date)
		if len(dateErrs) > 0 {
			return utils.ValidationError(c, dateErrs)
		}
		date = parsed
	}

	// Moving the check-in must not collide with another owned date
	if !models.TruncateToDay(date).Equal(models.TruncateToDay(checkin.Date)) {
		var other models.DailyCheckin
		err := cc.DB.Where("owner_id = ? AND date = ? AND id <> ?", userID, date, checkin.ID).
			First(&other).Error
		if err == nil {
			return utils.Conflict(c, "A check-in already exists for this date", fiber.Map{
				"checkin_id": other.ID,
				"edit_url":   "/api/checkins/" + itoa(other.ID),
			})
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.InternalServerError(c, "Could not query database")
		}
	}

	skills, err := cc.activeSkills(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query skills")
	}

	sessions, violations := validation.ValidateBatch(input.Sessions, skills)
	if len(violations) > 0 {
		return utils.ValidationError(c, violations)
	}

	checkin.Date = date
	checkin.Notes = input.Notes
	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Sessions").Save(checkin).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("daily_checkin_id = ?", checkin.ID).
			Delete(&models.MITSession{}).Error; err != nil {
			return err
		}
		for i := range sessions {
			sessions[i].DailyCheckinID = checkin.ID
		}
		return tx.Create(&sessions).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not update check-in")
	}

	checkin.Sessions = sessions
	return utils.Success(c, fiber.StatusOK, checkin)
}

// GetCheckin godoc
// @Summary Get a check-in
// @Description Returns one owned check-in with its sessions
// @Tags checkins
// @Produce json
// @Param id path int true "Check-in ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /checkins/{id} [get]
func (cc *CheckinsController) GetCheckin(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	checkin, err := cc.findOwnedCheckin(c, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Check-in not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, checkin)
}

// GetCheckinByDate godoc
// @Summary Get the check-in for a date
// @Description Returns the check-in for ?date=YYYY-MM-DD; invalid or missing dates fall back to today
// @Tags checkins
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /checkins [get]
func (cc *CheckinsController) GetCheckinByDate(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	// Invalid date values silently fall back to today
	date := models.TruncateToDay(time.Now())
	if raw := c.Query("date"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			date = models.TruncateToDay(parsed)
		}
	}

	var checkin models.DailyCheckin
	err = cc.DB.Preload("Sessions").Preload("Sessions.Skill").
		Where("owner_id = ? AND date = ?", userID, date).
		First(&checkin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "No check-in for this date")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, checkin)
}

// findOwnedCheckin loads the path-id check-in scoped to the owner. A foreign
// id yields gorm.ErrRecordNotFound, same as an absent one.
func (cc *CheckinsController) findOwnedCheckin(c *fiber.Ctx, userID uint) (*models.DailyCheckin, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}

	var checkin models.DailyCheckin
	err = cc.DB.Preload("Sessions").Preload("Sessions.Skill").
		Where("id = ? AND owner_id = ?", id, userID).
		First(&checkin).Error
	if err != nil {
		return nil, err
	}
	return &checkin, nil
}

func (cc *CheckinsController) activeSkills(userID uint) (map[uint]models.Skill, error) {
	var skills []models.Skill
	if err := cc.DB.Where("owner_id = ? AND is_active = ?", userID, true).Find(&skills).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Skill, len(skills))
	for _, s := range skills {
		byID[s.ID] = s
	}
	return byID, nil
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func parseCheckinDate(raw string) (time.Time, []string) {
	if raw == "" {
		return models.TruncateToDay(time.Now()), nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, []string{"Enter a valid date (YYYY-MM-DD)."}
	}
	return models.TruncateToDay(parsed), nil
}
