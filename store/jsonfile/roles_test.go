package jsonfile

import (
	"os"
	"path/filepath"
	"testing"

	"oneclip/clip-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRolesCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admins.json")

	s, err := OpenRoles(path)
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)

	roles, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, roles.Admins)
	assert.False(t, roles.IsAdmin("anyone"))
}

func TestRolesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admins.json")

	s, err := OpenRoles(path)
	require.NoError(t, err)

	require.NoError(t, s.Save(&model.Roles{Admins: []string{"root"}, Moderators: []string{"mod"}}))

	roles, err := s.Load()
	require.NoError(t, err)
	assert.True(t, roles.IsAdmin("root"))
	assert.False(t, roles.IsAdmin("mod"))
	assert.True(t, roles.IsModerator("mod"))
}
