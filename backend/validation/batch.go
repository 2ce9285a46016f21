package validation

import (
	"fmt"

	"mitboard/backend/models"
)

const (
	MinSessions = 1
	MaxSessions = 8
)

// SessionEntry is one submitted row of a check-in's session batch.
// Entries flagged Remove are dropped before any rule runs.
type SessionEntry struct {
	SkillID    *uint                `json:"skill_id"`
	Title      string               `json:"title"`
	Minutes    int                  `json:"minutes"`
	Status     models.SessionStatus `json:"status"`
	MissReason string               `json:"miss_reason"`
	Remove     bool                 `json:"remove"`
}

// ValidateBatch checks a submitted session batch against the task-composition
// rules and, when every rule holds, materializes the rows to persist. The batch
// is all-or-nothing: any violation returns the full message list and no rows.
//
// skills is the submitting user's active skill set, keyed by id; referencing a
// skill outside it (foreign, inactive, or deleted) fails the completeness rule.
func ValidateBatch(entries []SessionEntry, skills map[uint]models.Skill) ([]models.MITSession, []string) {
	var live []SessionEntry
	for _, e := range entries {
		if !e.Remove {
			live = append(live, e)
		}
	}

	var errs []string
	if len(live) < MinSessions {
		errs = append(errs, "Add at least 1 MIT entry.")
	}
	if len(live) > MaxSessions {
		errs = append(errs, fmt.Sprintf("Add at most %d MIT entries.", MaxSessions))
	}

	for i, e := range live {
		if e.SkillID == nil {
			errs = append(errs, fmt.Sprintf("Entry %d: choose a focus skill for each session.", i+1))
		} else if _, ok := skills[*e.SkillID]; !ok {
			errs = append(errs, fmt.Sprintf("Entry %d: choose one of your active focus skills.", i+1))
		}
		if e.Minutes < 1 {
			errs = append(errs, fmt.Sprintf("Entry %d: log at least 1 minute for every session.", i+1))
		}
		status := e.Status
		if status == "" {
			status = models.StatusPlanned
		}
		if !status.Valid() {
			errs = append(errs, fmt.Sprintf("Entry %d: unknown status %q.", i+1, string(e.Status)))
		}
		if status == models.StatusSkipped && e.MissReason == "" {
			errs = append(errs, fmt.Sprintf("Entry %d: give a reason when skipping a session.", i+1))
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	sessions := make([]models.MITSession, 0, len(live))
	for _, e := range live {
		sessions = append(sessions, materialize(e, skills))
	}
	return sessions, nil
}

func materialize(e SessionEntry, skills map[uint]models.Skill) models.MITSession {
	status := e.Status
	if status == "" {
		status = models.StatusPlanned
	}

	title := e.Title
	if title == "" {
		if skill, ok := skills[*e.SkillID]; ok {
			title = skill.Name
		} else {
			title = "Focus Session"
		}
	}

	s := models.MITSession{
		SkillID:        e.SkillID,
		Title:          title,
		PlannedMinutes: e.Minutes,
		Status:         status,
	}

	switch status {
	case models.StatusCompleted:
		minutes := e.Minutes
		s.ActualMinutes = &minutes
	case models.StatusSkipped:
		s.MissReason = e.MissReason
	}
	return s
}
