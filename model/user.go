package model

// User is one record of the users document, keyed by username. Follower
// symmetry (A follows B <=> A in B.Followers and B in A.Following) is
// maintained by the follow handler within a single write.
type User struct {
	Password     string `json:"password"`
	Bio          string `json:"bio"`
	ProfilePic   string `json:"profile_pic,omitempty"`
	Hint         string `json:"hint,omitempty"`
	RecoveryCode string `json:"recovery_code,omitempty"`

	Followers     []string        `json:"followers"`
	Following     []string        `json:"following"`
	Notifications []*Notification `json:"notifications"`
	Shadowbanned  bool            `json:"shadowbanned"`
}

// Normalize backfills fields that very old records may lack so the rest of
// the code never has to nil-check the slices.
func (u *User) Normalize() (changed bool) {
	if u.Followers == nil {
		u.Followers = []string{}
		changed = true
	}

	if u.Following == nil {
		u.Following = []string{}
		changed = true
	}

	if u.Notifications == nil {
		u.Notifications = []*Notification{}
		changed = true
	}

	return changed
}

// UnreadNotifications counts notifications not yet marked read.
func (u *User) UnreadNotifications() int {
	n := 0
	for _, notif := range u.Notifications {
		if !notif.Read {
			n++
		}
	}

	return n
}
