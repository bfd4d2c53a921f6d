package service

import (
	"testing"

	"oneclip/clip-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanOutUpload(t *testing.T) {
	users := map[string]*model.User{
		"uploader": {Followers: []string{"fan1", "fan2", "gone"}},
		"fan1":     {},
		"fan2":     {},
	}

	n := FanOutUpload(users, "uploader", "vid1", "My clip")
	assert.Equal(t, 2, n)

	require.Len(t, users["fan1"].Notifications, 1)
	notif := users["fan1"].Notifications[0]
	assert.Equal(t, model.NotifUpload, notif.Type)
	assert.Equal(t, "uploader", notif.FromUser)
	assert.Equal(t, "vid1", notif.VideoID)
	assert.Equal(t, "My clip", notif.VideoTitle)
	assert.False(t, notif.Read)
	assert.NotEmpty(t, notif.ID)

	assert.Len(t, users["fan2"].Notifications, 1)
	assert.Empty(t, users["uploader"].Notifications)
}

func TestFanOutUploadNoFollowers(t *testing.T) {
	users := map[string]*model.User{"solo": {}}
	assert.Equal(t, 0, FanOutUpload(users, "solo", "vid", "t"))
	assert.Equal(t, 0, FanOutUpload(users, "nobody", "vid", "t"))
}

func TestNotifyComment(t *testing.T) {
	users := map[string]*model.User{
		"owner":     {},
		"commenter": {},
	}

	require.True(t, NotifyComment(users, "commenter", "owner", "vid1", "Clip"))
	require.Len(t, users["owner"].Notifications, 1)
	assert.Equal(t, model.NotifComment, users["owner"].Notifications[0].Type)
	assert.Equal(t, "commenter", users["owner"].Notifications[0].FromUser)
}

func TestNotifyCommentSelf(t *testing.T) {
	users := map[string]*model.User{"owner": {}}

	assert.False(t, NotifyComment(users, "owner", "owner", "vid1", "Clip"))
	assert.Empty(t, users["owner"].Notifications)
}

func TestStripSender(t *testing.T) {
	users := map[string]*model.User{
		"a": {Notifications: []*model.Notification{
			{ID: "1", FromUser: "gone"},
			{ID: "2", FromUser: "keep"},
		}},
		"b": {Notifications: []*model.Notification{
			{ID: "3", FromUser: "gone"},
		}},
	}

	StripSender(users, "gone")

	require.Len(t, users["a"].Notifications, 1)
	assert.Equal(t, "2", users["a"].Notifications[0].ID)
	assert.Empty(t, users["b"].Notifications)
}
