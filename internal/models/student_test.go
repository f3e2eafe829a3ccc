package models_test

import (
	"testing"

	"academixstore-admin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func studentJSON() map[string]any {
	return map[string]any{
		"id":          "s-1",
		"fullName":    "Jane Doe",
		"email":       "jane@northfield.edu",
		"phone":       "555-0101",
		"role":        "student",
		"collegeId":   "c-1",
		"collegeName": "Northfield College",
		"isActive":    true,
		"createdAt":   "2024-02-10T11:00:00.000Z",
		"updatedAt":   "2024-02-11T11:00:00.000Z",
	}
}

func TestStudentFromJSON(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		input := studentJSON()

		student, err := models.StudentFromJSON(input)
		require.NoError(t, err)
		assert.Equal(t, input, student.ToJSON())
	})

	t.Run("Defaults", func(t *testing.T) {
		student, err := models.StudentFromJSON(map[string]any{
			"id":       "s-2",
			"fullName": "John Roe",
			"email":    "john@northfield.edu",
		})
		require.NoError(t, err)

		assert.Equal(t, models.RoleStudent, student.Role)
		assert.True(t, student.IsActive)
		assert.Nil(t, student.CollegeID)
		assert.False(t, student.CreatedAt.IsZero())
	})

	t.Run("MissingID", func(t *testing.T) {
		input := studentJSON()
		delete(input, "id")

		_, err := models.StudentFromJSON(input)
		assert.ErrorIs(t, err, models.ErrMissingField)
	})

	t.Run("WrongTypeIsActive", func(t *testing.T) {
		input := studentJSON()
		input["isActive"] = "yes"

		_, err := models.StudentFromJSON(input)
		assert.ErrorIs(t, err, models.ErrInvalidField)
	})
}

func TestStudentCopyWith(t *testing.T) {
	student, err := models.StudentFromJSON(studentJSON())
	require.NoError(t, err)

	inactive := false
	patched := student.CopyWith(models.StudentUpdate{IsActive: &inactive})

	assert.False(t, patched.IsActive)
	assert.True(t, student.IsActive)

	// only the flag differs
	patched.IsActive = true
	assert.Equal(t, student, patched)
}

func TestStudentTimestamps(t *testing.T) {
	t.Run("MillisecondsKept", func(t *testing.T) {
		input := studentJSON()
		input["createdAt"] = "2024-01-15T10:30:00.000Z"
		input["updatedAt"] = "2024-01-15T10:30:00.120Z"

		student, err := models.StudentFromJSON(input)
		require.NoError(t, err)

		out := student.ToJSON()
		assert.Equal(t, "2024-01-15T10:30:00.000Z", out["createdAt"])
		assert.Equal(t, "2024-01-15T10:30:00.120Z", out["updatedAt"])
	})

	t.Run("MicrosecondsKept", func(t *testing.T) {
		input := studentJSON()
		input["createdAt"] = "2024-01-15T10:30:00.123456Z"

		student, err := models.StudentFromJSON(input)
		require.NoError(t, err)
		assert.Equal(t, "2024-01-15T10:30:00.123456Z", student.ToJSON()["createdAt"])
	})

	t.Run("OffsetKept", func(t *testing.T) {
		input := studentJSON()
		input["createdAt"] = "2024-01-15T12:30:00.000+02:00"

		student, err := models.StudentFromJSON(input)
		require.NoError(t, err)
		assert.Equal(t, "2024-01-15T12:30:00.000+02:00", student.ToJSON()["createdAt"])
	})
}

func TestStudentEqualByID(t *testing.T) {
	a, err := models.StudentFromJSON(studentJSON())
	require.NoError(t, err)
	name := "Jane Smith"
	b := a.CopyWith(models.StudentUpdate{FullName: &name})

	assert.True(t, a.Equal(b))

	other := studentJSON()
	other["id"] = "s-2"
	c, err := models.StudentFromJSON(other)
	require.NoError(t, err)
	assert.False(t, a.Equal(c))
}
