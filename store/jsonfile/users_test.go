package jsonfile

import (
	"os"
	"path/filepath"
	"testing"

	"oneclip/clip-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsersRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")

	s, err := OpenUsers(path)
	require.NoError(t, err)

	users := map[string]*model.User{
		"alice": {
			Password:  "$argon2id$...",
			Bio:       "hi",
			Followers: []string{"bob"},
			Following: []string{},
			Notifications: []*model.Notification{
				{ID: "n1", Type: model.NotifComment, FromUser: "bob"},
			},
		},
	}
	require.NoError(t, s.Save(users))

	got, err := s.Load()
	require.NoError(t, err)
	require.Contains(t, got, "alice")
	assert.Equal(t, "hi", got["alice"].Bio)
	assert.Equal(t, []string{"bob"}, got["alice"].Followers)
	require.Len(t, got["alice"].Notifications, 1)
	assert.Equal(t, "n1", got["alice"].Notifications[0].ID)
}

func TestUsersMissingFile(t *testing.T) {
	s, err := OpenUsers(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, err)

	got, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUsersLegacyMigration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")

	// A bare hash string and a record missing its collections
	doc := `{
  "ancient": "pbkdf2:sha256:somehash",
  "partial": {"password": "hash2", "bio": "old timer"}
}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	s, err := OpenUsers(path)
	require.NoError(t, err)

	got, err := s.Load()
	require.NoError(t, err)

	require.Contains(t, got, "ancient")
	assert.Equal(t, "pbkdf2:sha256:somehash", got["ancient"].Password)
	assert.NotNil(t, got["ancient"].Followers)
	assert.NotNil(t, got["ancient"].Notifications)

	require.Contains(t, got, "partial")
	assert.Equal(t, "old timer", got["partial"].Bio)
	assert.NotNil(t, got["partial"].Following)

	// the upgrade was persisted: the raw file no longer holds a bare string
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"ancient": "pbkdf2`)
}

func TestUsersMalformedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	_, err := OpenUsers(path)
	assert.Error(t, err)
}
