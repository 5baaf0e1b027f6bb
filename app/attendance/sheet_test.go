package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rahmadjon0038/new-lms/app/models"
)

func roster() []models.RosterEntry {
	return []models.RosterEntry{
		{StudentID: 1, Name: "Aziz", Status: models.Present},
		{StudentID: 2, Name: "Madina"},
		{StudentID: 3, Name: "Jasur", Status: models.Absent},
	}
}

func TestNewSheetDefaultsUnmarkedToAbsent(t *testing.T) {
	s := NewSheet(10, roster())
	assert.Equal(t, models.Absent, s.Status(2))
	assert.Equal(t, Idle, s.State)
	assert.False(t, s.Dirty())
}

func TestToggleAndBack(t *testing.T) {
	s := NewSheet(10, roster())

	require.NoError(t, s.Toggle(1))
	assert.Equal(t, models.Absent, s.Status(1))
	assert.Equal(t, Editing, s.State)
	assert.Equal(t, 1, s.Changed())

	require.NoError(t, s.Toggle(1))
	assert.Equal(t, Idle, s.State)
	assert.False(t, s.Dirty())

	assert.ErrorIs(t, s.Toggle(99), ErrUnknownStudent)
	assert.ErrorIs(t, s.Set(1, "maybe"), ErrInvalidStatus)
}

func TestBeginSaveSendsWholeRosterInOrder(t *testing.T) {
	s := NewSheet(10, roster())
	_, err := s.BeginSave()
	assert.ErrorIs(t, err, ErrNoChanges)

	require.NoError(t, s.Set(2, models.Present))
	req, err := s.BeginSave()
	require.NoError(t, err)
	assert.Equal(t, int64(10), req.LessonID)
	assert.Equal(t, []models.AttendanceMark{
		{StudentID: 1, Status: models.Present},
		{StudentID: 2, Status: models.Present},
		{StudentID: 3, Status: models.Absent},
	}, req.AttendanceData)
	assert.Equal(t, Saving, s.State)

	_, err = s.BeginSave()
	assert.ErrorIs(t, err, ErrSaveInProgress)
	assert.ErrorIs(t, s.Toggle(1), ErrSaveInProgress)

	s.Saved()
	assert.Equal(t, Idle, s.State)
	assert.False(t, s.Dirty())
}

func TestFailKeepsEdits(t *testing.T) {
	s := NewSheet(10, roster())
	require.NoError(t, s.SetAll(models.Present))
	_, err := s.BeginSave()
	require.NoError(t, err)

	s.Fail("Server xatosi")
	assert.Equal(t, Failed, s.State)
	assert.True(t, s.Dirty())
	assert.Equal(t, models.Present, s.Status(3))

	_, err = s.BeginSave()
	assert.NoError(t, err)
}

func TestDiscard(t *testing.T) {
	s := NewSheet(10, roster())
	require.NoError(t, s.Toggle(3))
	s.Discard()
	assert.False(t, s.Dirty())
	assert.Equal(t, models.Absent, s.Status(3))
}

func TestDraftRoundTripAndRebase(t *testing.T) {
	s := NewSheet(10, roster())
	require.NoError(t, s.Toggle(2))
	raw, err := s.Encode()
	require.NoError(t, err)

	draft, err := DecodeSheet(raw)
	require.NoError(t, err)

	// student 3 left the group, student 4 joined
	fresh := NewSheet(10, []models.RosterEntry{
		{StudentID: 1, Status: models.Present},
		{StudentID: 2},
		{StudentID: 4},
	})
	fresh.Rebase(draft)
	assert.Equal(t, models.Present, fresh.Status(2))
	assert.Equal(t, models.Absent, fresh.Status(4))
	assert.Equal(t, Editing, fresh.State)

	other := NewSheet(11, roster())
	other.Rebase(draft)
	assert.False(t, other.Dirty())

	_, err = DecodeSheet("{")
	assert.Error(t, err)
}
