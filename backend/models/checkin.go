package models

import (
	"time"

	"gorm.io/gorm"
)

type SessionStatus string

const (
	StatusPlanned   SessionStatus = "planned"
	StatusCompleted SessionStatus = "completed"
	StatusSkipped   SessionStatus = "skipped"
)

func (s SessionStatus) Valid() bool {
	switch s {
	case StatusPlanned, StatusCompleted, StatusSkipped:
		return true
	}
	return false
}

// DailyCheckin is one user's record for one calendar date.
// (owner, date) is unique: at most one check-in per user per day.
type DailyCheckin struct {
	gorm.Model
	OwnerID  uint         `gorm:"not null;uniqueIndex:idx_checkin_owner_date" json:"owner_id"`
	Date     time.Time    `gorm:"type:date;not null;uniqueIndex:idx_checkin_owner_date" json:"date"`
	Notes    string       `json:"notes"`
	Sessions []MITSession `gorm:"foreignKey:DailyCheckinID;constraint:OnDelete:CASCADE" json:"sessions"`
}

func (DailyCheckin) TableName() string {
	return "daily_checkins"
}

// MITSession is one planned/completed/skipped focus-time entry within a check-in.
// ActualMinutes is set only on completion; a removed skill nulls SkillID but keeps the row.
type MITSession struct {
	gorm.Model
	DailyCheckinID uint          `gorm:"not null;index" json:"daily_checkin_id"`
	SkillID        *uint         `gorm:"index" json:"skill_id"`
	Skill          *Skill        `gorm:"constraint:OnDelete:SET NULL" json:"skill,omitempty"`
	Title          string        `gorm:"size:200;not null" json:"title"`
	PlannedMinutes int           `gorm:"not null" json:"planned_minutes"`
	ActualMinutes  *int          `json:"actual_minutes"`
	Status         SessionStatus `gorm:"size:16;default:planned" json:"status"`
	MissReason     string        `gorm:"size:255" json:"miss_reason"`
	StartedAt      *time.Time    `json:"started_at"`
	EndedAt        *time.Time    `json:"ended_at"`
}

func (MITSession) TableName() string {
	return "mit_sessions"
}

// TruncateToDay normalizes a timestamp to its calendar date in UTC so
// date equality and the (owner, date) unique index behave consistently.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateKey is the map key used for date-indexed check-in lookups.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
