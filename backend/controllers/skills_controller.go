package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mitboard/backend/config"
	"mitboard/backend/models"
	"mitboard/backend/utils"
)

type SkillsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewSkillsController(db *gorm.DB, cfg *config.Config) *SkillsController {
	return &SkillsController{DB: db, Cfg: cfg}
}

type SkillInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	GoalMinutes *int   `json:"goal_minutes"`
	IsActive    *bool  `json:"is_active"`
}

// GetSkills godoc
// @Summary List skills
// @Description Returns the user's skills, optionally only active ones
// @Tags skills
// @Produce json
// @Param active query bool false "Only active skills"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /skills [get]
func (sc *SkillsController) GetSkills(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	query := sc.DB.Where("owner_id = ?", userID)
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var skills []models.Skill
	if err := query.Order("name").Find(&skills).Error; err != nil {
		return utils.InternalServerError(c, "Could not query skills")
	}

	return utils.Success(c, fiber.StatusOK, skills)
}

// CreateSkill godoc
// @Summary Create a skill
// @Description Creates a skill; (owner, name) must be unique
// @Tags skills
// @Accept json
// @Produce json
// @Param skill body SkillInput true "Skill data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /skills [post]
func (sc *SkillsController) CreateSkill(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input SkillInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Name == "" {
		return utils.ValidationError(c, []string{"Skill name is required."})
	}

	// Check the (owner, name) uniqueness before insert
	var count int64
	if err := sc.DB.Model(&models.Skill{}).
		Where("owner_id = ? AND name = ?", userID, input.Name).
		Count(&count).Error; err != nil {
		return utils.InternalServerError(c, "Could not query skills")
	}
	if count > 0 {
		return utils.ValidationError(c, []string{"You already have a skill with this name."})
	}

	skill := models.Skill{
		OwnerID:     userID,
		Name:        input.Name,
		Description: input.Description,
		IsActive:    true,
	}
	if input.GoalMinutes != nil {
		if *input.GoalMinutes < 0 {
			return utils.ValidationError(c, []string{"Goal minutes cannot be negative."})
		}
		skill.GoalMinutes = *input.GoalMinutes
	} else {
		skill.GoalMinutes = 120
	}
	if input.IsActive != nil {
		skill.IsActive = *input.IsActive
	}

	if err := sc.DB.Create(&skill).Error; err != nil {
		return utils.InternalServerError(c, "Could not create skill")
	}

	return utils.Created(c, skill)
}

// UpdateSkill godoc
// @Summary Update a skill
// @Description Updates name, description, goal or active flag
// @Tags skills
// @Accept json
// @Produce json
// @Param id path int true "Skill ID"
// @Param skill body SkillInput true "Skill data"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /skills/{id} [put]
func (sc *SkillsController) UpdateSkill(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	skill, err := sc.findOwnedSkill(c, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Skill not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var input SkillInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Name != "" && input.Name != skill.Name {
		var count int64
		if err := sc.DB.Model(&models.Skill{}).
			Where("owner_id = ? AND name = ? AND id <> ?", userID, input.Name, skill.ID).
			Count(&count).Error; err != nil {
			return utils.InternalServerError(c, "Could not query skills")
		}
		if count > 0 {
			return utils.ValidationError(c, []string{"You already have a skill with this name."})
		}
		skill.Name = input.Name
	}
	if input.Description != "" {
		skill.Description = input.Description
	}
	if input.GoalMinutes != nil {
		if *input.GoalMinutes < 0 {
			return utils.ValidationError(c, []string{"Goal minutes cannot be negative."})
		}
		skill.GoalMinutes = *input.GoalMinutes
	}
	if input.IsActive != nil {
		skill.IsActive = *input.IsActive
	}

	if err := sc.DB.Save(skill).Error; err != nil {
		return utils.InternalServerError(c, "Could not update skill")
	}

	return utils.Success(c, fiber.StatusOK, skill)
}

// DeleteSkill godoc
// @Summary Delete or deactivate a skill
// @Description Hard-deletes a skill without history; deactivates one with logged sessions
// @Tags skills
// @Produce json
// @Param id path int true "Skill ID"
// @Success 200 {object} utils.SuccessResponse
// @Success 204 "Deleted"
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /skills/{id} [delete]
func (sc *SkillsController) DeleteSkill(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	skill, err := sc.findOwnedSkill(c, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Skill not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	// A skill with logged history is deactivated, never hard-deleted
	var sessions int64
	if err := sc.DB.Model(&models.MITSession{}).
		Where("skill_id = ?", skill.ID).
		Count(&sessions).Error; err != nil {
		return utils.InternalServerError(c, "Could not query sessions")
	}
	if sessions > 0 {
		skill.IsActive = false
		if err := sc.DB.Save(skill).Error; err != nil {
			return utils.InternalServerError(c, "Could not deactivate skill")
		}
		return utils.Success(c, fiber.StatusOK, skill)
	}

	// Hard delete, so the name leaves the (owner, name) unique index and can
	// be reused
	if err := sc.DB.Unscoped().Delete(skill).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete skill")
	}
	return utils.NoContent(c)
}

// findOwnedSkill loads the path-id skill scoped to the owner. A foreign id
// yields gorm.ErrRecordNotFound, same as an absent one.
func (sc *SkillsController) findOwnedSkill(c *fiber.Ctx, userID uint) (*models.Skill, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}

	var skill models.Skill
	if err := sc.DB.Where("id = ? AND owner_id = ?", id, userID).First(&skill).Error; err != nil {
		return nil, err
	}
	return &skill, nil
}
