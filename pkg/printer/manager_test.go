package printer

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nullProfile() Profile {
	return Profile{Type: "none"}
}

func TestManagerRegisterFirstBecomesActive(t *testing.T) {
	m := NewManager(3)

	info, err := m.Register("caja", nullProfile())
	require.NoError(t, err)
	assert.True(t, info.Active)

	second, err := m.Register("cocina", nullProfile())
	require.NoError(t, err)
	assert.False(t, second.Active)

	list := m.List()
	assert.Len(t, list, 2)
}

func TestManagerCapacity(t *testing.T) {
	m := NewManager(3)
	for i := 0; i < 3; i++ {
		_, err := m.Register("p", nullProfile())
		require.NoError(t, err)
	}

	_, err := m.Register("uno mas", nullProfile())
	require.Error(t, err)
}

func TestManagerDefaultCapacity(t *testing.T) {
	m := NewManager(0)
	for i := 0; i < 3; i++ {
		_, err := m.Register("p", nullProfile())
		require.NoError(t, err)
	}
	_, err := m.Register("overflow", nullProfile())
	assert.Error(t, err)
}

func TestManagerSetActive(t *testing.T) {
	m := NewManager(3)
	_, err := m.Register("caja", nullProfile())
	require.NoError(t, err)
	second, err := m.Register("cocina", nullProfile())
	require.NoError(t, err)

	require.NoError(t, m.SetActive(second.ID))
	for _, info := range m.List() {
		assert.Equal(t, info.ID == second.ID, info.Active)
	}

	assert.Error(t, m.SetActive(uuid.New()))
}

func TestManagerRemoveReelectsActive(t *testing.T) {
	m := NewManager(3)
	first, err := m.Register("caja", nullProfile())
	require.NoError(t, err)
	second, err := m.Register("cocina", nullProfile())
	require.NoError(t, err)

	require.NoError(t, m.Remove(first.ID))

	list := m.List()
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)
	assert.True(t, list[0].Active, "remaining printer takes over as active")

	assert.Error(t, m.Remove(uuid.New()))
}

func TestManagerPrintWithoutPrinter(t *testing.T) {
	m := NewManager(3)
	err := m.Print([]byte("ticket"))
	require.Error(t, err)

	_, err = m.Active()
	assert.Error(t, err)
}

func TestManagerPrintThroughActive(t *testing.T) {
	m := NewManager(3)
	_, err := m.Register("caja", nullProfile())
	require.NoError(t, err)

	// The null printer accepts every job
	assert.NoError(t, m.Print([]byte("ticket")))
}
