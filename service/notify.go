// Package service holds the domain logic that sits between the handlers
// and the stores: notification fan-out, profile ranking, and small shared
// helpers.
package service

import (
	"time"

	"oneclip/clip-api/model"

	"github.com/google/uuid"
)

// FanOutUpload appends an upload notification to every follower of the
// uploader. The caller owns the users map and is responsible for saving
// it afterwards. Returns the number of notified users.
func FanOutUpload(users map[string]*model.User, uploader, videoID, title string) int {
	u, ok := users[uploader]
	if !ok {
		return 0
	}

	notified := 0
	for _, follower := range u.Followers {
		f, ok := users[follower]
		if !ok {
			continue
		}

		f.Notifications = append(f.Notifications, newNotification(model.NotifUpload, uploader, videoID, title))
		notified++
	}

	return notified
}

// NotifyComment appends a comment notification to the video owner's
// record. Self-comments never notify. Reports whether a notification was
// added.
func NotifyComment(users map[string]*model.User, commenter, owner, videoID, title string) bool {
	if commenter == owner {
		return false
	}

	u, ok := users[owner]
	if !ok {
		return false
	}

	u.Notifications = append(u.Notifications, newNotification(model.NotifComment, commenter, videoID, title))
	return true
}

// StripSender removes every notification sent by the given user from all
// records, as part of the account-deletion cascade.
func StripSender(users map[string]*model.User, sender string) {
	for _, u := range users {
		kept := u.Notifications[:0]
		for _, n := range u.Notifications {
			if n.FromUser != sender {
				kept = append(kept, n)
			}
		}

		u.Notifications = kept
	}
}

func newNotification(kind, from, videoID, title string) *model.Notification {
	return &model.Notification{
		ID:         uuid.NewString(),
		Type:       kind,
		FromUser:   from,
		VideoID:    videoID,
		VideoTitle: title,
		Timestamp:  time.Now().UTC(),
		Read:       false,
	}
}
