package model

import "slices"

// Roles lists privileged usernames. It mirrors the admins document on disk.
type Roles struct {
	Admins     []string `json:"admins"`
	Moderators []string `json:"moderators"`
}

func (r *Roles) IsAdmin(username string) bool {
	return username != "" && slices.Contains(r.Admins, username)
}

func (r *Roles) IsModerator(username string) bool {
	return username != "" && slices.Contains(r.Moderators, username)
}
