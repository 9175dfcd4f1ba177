package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	interviewdomain "hr-interviews-go/internal/domain/interview"
	"hr-interviews-go/internal/validation"
)

func TestDefaultFixtures(t *testing.T) {
	fixtures, err := Default()
	require.NoError(t, err)
	require.Len(t, fixtures.Employees, 5)

	total := 0
	for _, employee := range fixtures.Employees {
		assert.NoError(t, validation.Var("email", employee.Email, "email"))
		assert.NoError(t, validation.Var("phone", employee.Phone, "phone"))
		for _, interview := range employee.Interviews {
			status, err := interviewdomain.ParseStatus(interview.Status)
			require.NoError(t, err)
			assert.True(t, status.Valid())
			assert.LessOrEqual(t, len([]rune(interview.Notes)), interviewdomain.MaxNotesLength)
			assert.False(t, interview.ScheduledAt.IsZero())
		}
		total += len(employee.Interviews)
	}
	assert.Equal(t, 14, total)
	assert.Equal(t, "María", fixtures.Employees[1].FirstName)
}

func TestParseRejectsUnknownStatus(t *testing.T) {
	_, err := Parse([]byte(`
employees:
  - email: a@b.co
    first_name: Ana
    last_names: Lopez
    interviews:
      - position: QA
        scheduled_at: 2024-01-10T10:00:00Z
        status: postponed
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "employee 0 interview 0")
}

func TestParseDefaultsMissingStatus(t *testing.T) {
	fixtures, err := Parse([]byte(`
employees:
  - email: a@b.co
    first_name: Ana
    last_names: Lopez
    interviews:
      - position: QA
        scheduled_at: 2024-01-10T10:00:00Z
      - position: Backend
        scheduled_at: 2024-01-11T10:00:00Z
        status: " Completed "
`))
	require.NoError(t, err)
	interviews := fixtures.Employees[0].Interviews
	require.Len(t, interviews, 2)
	assert.Equal(t, string(interviewdomain.StatusScheduled), interviews[0].Status)
	assert.Equal(t, string(interviewdomain.StatusCompleted), interviews[1].Status)
}

func TestFixtureStatus(t *testing.T) {
	status, err := fixtureStatus("")
	require.NoError(t, err)
	assert.Equal(t, interviewdomain.StatusScheduled, status)

	status, err = fixtureStatus("cancelled")
	require.NoError(t, err)
	assert.Equal(t, interviewdomain.StatusCancelled, status)

	_, err = fixtureStatus("postponed")
	assert.Error(t, err)
}

func TestParseRequiresNames(t *testing.T) {
	_, err := Parse([]byte("employees:\n  - email: a@b.co\n"))
	assert.Error(t, err)
}
