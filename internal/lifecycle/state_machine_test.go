package lifecycle

import (
	"testing"

	"github.com/renohub/bidding-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateMachine_AllowedTransitions(t *testing.T) {
	m := NewProjectStateMachine()

	allowed := map[models.ProjectStatus][]models.ProjectStatus{
		models.DraftProject:       {models.OpenForBidsProject, models.CancelledProject},
		models.OpenForBidsProject: {models.ActiveProject, models.CancelledProject},
		models.ActiveProject:      {models.CompletedProject, models.CancelledProject},
		models.CompletedProject:   {},
		models.CancelledProject:   {},
	}

	// Полный перебор пар: разрешено ровно то, что в таблице.
	for _, from := range models.AllProjectStatuses() {
		for _, to := range models.AllProjectStatuses() {
			want := false
			for _, next := range allowed[from] {
				if next == to {
					want = true
				}
			}
			assert.Equal(t, want, m.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestStateMachine_UnknownStatus(t *testing.T) {
	m := NewProjectStateMachine()

	assert.False(t, m.CanTransition("ARCHIVED", models.CancelledProject))
	assert.False(t, m.CanTransition(models.DraftProject, "ARCHIVED"))
	assert.Empty(t, m.AllowedNext("ARCHIVED"))
}

func TestStateMachine_TerminalStates(t *testing.T) {
	m := NewProjectStateMachine()

	assert.True(t, m.IsTerminal(models.CompletedProject))
	assert.True(t, m.IsTerminal(models.CancelledProject))
	assert.False(t, m.IsTerminal(models.DraftProject))
	assert.False(t, m.IsTerminal(models.OpenForBidsProject))
	assert.False(t, m.IsTerminal(models.ActiveProject))
	assert.False(t, m.IsTerminal("ARCHIVED"), "unknown status is not terminal, it is undefined")
}

func TestStateMachine_Validate(t *testing.T) {
	require.NoError(t, NewProjectStateMachine().Validate())

	incomplete := &StateMachine{transitions: map[models.ProjectStatus][]models.ProjectStatus{
		models.DraftProject: {models.CancelledProject},
	}}
	require.Error(t, incomplete.Validate())
}
