package model

import "time"

// Notification types. The type tag drives presentation only.
const (
	NotifUpload  = "upload"
	NotifComment = "comment"
)

// Notification lives embedded in the recipient's user record and is never
// persisted on its own. Deleting the sender's account strips their
// notifications from every other record.
type Notification struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	FromUser   string    `json:"from_user"`
	VideoID    string    `json:"video_id"`
	VideoTitle string    `json:"video_title"`
	Timestamp  time.Time `json:"timestamp"`
	Read       bool      `json:"read"`
}
