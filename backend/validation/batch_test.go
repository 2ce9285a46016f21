package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mitboard/backend/models"
)

func uintPtr(v uint) *uint { return &v }

func testSkills() map[uint]models.Skill {
	skills := map[uint]models.Skill{}
	for id, name := range map[uint]string{1: "Bible", 2: "Guitar", 3: "Work"} {
		s := models.Skill{Name: name, IsActive: true}
		s.ID = id
		skills[id] = s
	}
	return skills
}

func TestValidateBatchAcceptsValidEntries(t *testing.T) {
	entries := []SessionEntry{
		{SkillID: uintPtr(1), Minutes: 30, Status: models.StatusCompleted},
		{SkillID: uintPtr(2), Minutes: 45, Status: models.StatusPlanned},
		{SkillID: uintPtr(3), Minutes: 20, Status: models.StatusSkipped, MissReason: "meeting ran over"},
	}

	sessions, errs := ValidateBatch(entries, testSkills())
	assert.Empty(t, errs)
	assert.Len(t, sessions, 3)
}

func TestValidateBatchRejectsEmptyBatch(t *testing.T) {
	sessions, errs := ValidateBatch(nil, testSkills())
	assert.Nil(t, sessions)
	assert.Contains(t, errs, "Add at least 1 MIT entry.")
}

func TestValidateBatchRejectsAllRemoved(t *testing.T) {
	entries := []SessionEntry{
		{SkillID: uintPtr(1), Minutes: 30, Remove: true},
	}
	sessions, errs := ValidateBatch(entries, testSkills())
	assert.Nil(t, sessions)
	assert.Contains(t, errs, "Add at least 1 MIT entry.")
}

func TestValidateBatchRejectsTooManyEntries(t *testing.T) {
	var entries []SessionEntry
	for i := 0; i < 9; i++ {
		entries = append(entries, SessionEntry{SkillID: uintPtr(1), Minutes: 10})
	}
	sessions, errs := ValidateBatch(entries, testSkills())
	assert.Nil(t, sessions)
	assert.Contains(t, errs, "Add at most 8 MIT entries.")
}

func TestValidateBatchRejectsMissingSkill(t *testing.T) {
	entries := []SessionEntry{{Minutes: 30}}
	sessions, errs := ValidateBatch(entries, testSkills())
	assert.Nil(t, sessions)
	assert.Contains(t, errs, "Entry 1: choose a focus skill for each session.")
}

func TestValidateBatchRejectsForeignSkill(t *testing.T) {
	entries := []SessionEntry{{SkillID: uintPtr(99), Minutes: 30}}
	sessions, errs := ValidateBatch(entries, testSkills())
	assert.Nil(t, sessions)
	assert.Contains(t, errs, "Entry 1: choose one of your active focus skills.")
}

func TestValidateBatchRejectsZeroMinutes(t *testing.T) {
	entries := []SessionEntry{{SkillID: uintPtr(1), Minutes: 0}}
	sessions, errs := ValidateBatch(entries, testSkills())
	assert.Nil(t, sessions)
	assert.Contains(t, errs, "Entry 1: log at least 1 minute for every session.")
}

func TestValidateBatchRejectsSkipWithoutReason(t *testing.T) {
	entries := []SessionEntry{{SkillID: uintPtr(1), Minutes: 30, Status: models.StatusSkipped}}
	sessions, errs := ValidateBatch(entries, testSkills())
	assert.Nil(t, sessions)
	assert.Contains(t, errs, "Entry 1: give a reason when skipping a session.")
}

func TestValidateBatchRejectsUnknownStatus(t *testing.T) {
	entries := []SessionEntry{{SkillID: uintPtr(1), Minutes: 30, Status: "paused"}}
	sessions, errs := ValidateBatch(entries, testSkills())
	assert.Nil(t, sessions)
	assert.Contains(t, errs, `Entry 1: unknown status "paused".`)
}

func TestValidateBatchIsAllOrNothing(t *testing.T) {
	entries := []SessionEntry{
		{SkillID: uintPtr(1), Minutes: 30, Status: models.StatusCompleted},
		{Minutes: 0},
	}
	sessions, errs := ValidateBatch(entries, testSkills())
	assert.Nil(t, sessions)
	assert.Len(t, errs, 2)
}

func TestMaterializeCompletedSetsActualMinutes(t *testing.T) {
	entries := []SessionEntry{{SkillID: uintPtr(2), Minutes: 25, Status: models.StatusCompleted}}
	sessions, errs := ValidateBatch(entries, testSkills())
	assert.Empty(t, errs)
	if assert.Len(t, sessions, 1) {
		assert.Equal(t, models.StatusCompleted, sessions[0].Status)
		assert.Equal(t, 25, sessions[0].PlannedMinutes)
		if assert.NotNil(t, sessions[0].ActualMinutes) {
			assert.Equal(t, 25, *sessions[0].ActualMinutes)
		}
	}
}

func TestMaterializePlannedClearsActualMinutes(t *testing.T) {
	entries := []SessionEntry{{SkillID: uintPtr(2), Minutes: 25}}
	sessions, errs := ValidateBatch(entries, testSkills())
	assert.Empty(t, errs)
	if assert.Len(t, sessions, 1) {
		assert.Equal(t, models.StatusPlanned, sessions[0].Status)
		assert.Nil(t, sessions[0].ActualMinutes)
	}
}

func TestMaterializeDefaultsTitleToSkillName(t *testing.T) {
	entries := []SessionEntry{{SkillID: uintPtr(2), Minutes: 25}}
	sessions, errs := ValidateBatch(entries, testSkills())
	assert.Empty(t, errs)
	if assert.Len(t, sessions, 1) {
		assert.Equal(t, "Guitar", sessions[0].Title)
	}
}

func TestValidateBatchDropsRemovedEntries(t *testing.T) {
	entries := []SessionEntry{
		{SkillID: uintPtr(1), Minutes: 30},
		{Minutes: 0, Remove: true},
	}
	sessions, errs := ValidateBatch(entries, testSkills())
	assert.Empty(t, errs)
	assert.Len(t, sessions, 1)
}
