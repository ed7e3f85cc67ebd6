package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techdraw/backend/internal/models"
	"github.com/techdraw/backend/internal/units"
)

func boxState() models.DrawingState {
	return models.DrawingState{
		Component: models.ComponentBox,
		View:      models.ViewTop,
		Theme:     "light",
		Box:       &models.BoxDimensions{Width: 200, Height: 100, Unit: units.Millimeter},
	}
}

func TestCreateAndGet(t *testing.T) {
	m := NewManager()

	s, err := m.Create(boxState())
	require.NoError(t, err)
	require.NotEmpty(t, s.ID)

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, models.ComponentBox, got.State.Component)
}

func TestGetUnknownSession(t *testing.T) {
	m := NewManager()
	_, err := m.Get("missing")
	assert.Error(t, err)
}

func TestCommitReplacesState(t *testing.T) {
	m := NewManager()
	s, err := m.Create(boxState())
	require.NoError(t, err)

	next := boxState()
	next.Theme = "dark"
	next.Box.Width = 300
	require.NoError(t, m.Commit(s.ID, next))

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "dark", got.State.Theme)
	assert.Equal(t, 300.0, got.State.Box.Width)
}

func TestCommitUnknownSession(t *testing.T) {
	m := NewManager()
	assert.Error(t, m.Commit("missing", boxState()))
}

func TestCleanupOldSessions(t *testing.T) {
	m := NewManager()
	s, err := m.Create(boxState())
	require.NoError(t, err)

	// Nothing is old yet.
	assert.Zero(t, m.CleanupOldSessions(time.Hour))
	assert.Equal(t, 1, m.Count())

	// Everything is older than a zero max age.
	time.Sleep(2 * time.Millisecond)
	assert.Equal(t, 1, m.CleanupOldSessions(0))
	assert.Zero(t, m.Count())

	_, err = m.Get(s.ID)
	assert.Error(t, err)
}

func TestEvictionAtCapacity(t *testing.T) {
	m := NewManager()
	for i := 0; i < MaxSessions; i++ {
		_, err := m.Create(boxState())
		require.NoError(t, err)
	}
	assert.Equal(t, MaxSessions, m.Count())

	_, err := m.Create(boxState())
	require.NoError(t, err)
	assert.Equal(t, MaxSessions, m.Count(), "capacity is held by evicting the oldest session")
}
