package models

import "gorm.io/gorm"

// Skill is a user-defined focus area sessions are logged against.
// (owner, name) is unique; skills with logged history are deactivated, never deleted.
type Skill struct {
	gorm.Model
	OwnerID     uint   `gorm:"not null;uniqueIndex:idx_skill_owner_name" json:"owner_id"`
	Name        string `gorm:"size:120;not null;uniqueIndex:idx_skill_owner_name" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
	GoalMinutes int    `gorm:"default:120" json:"goal_minutes"`
}
