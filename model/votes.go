// Package model defines the records persisted in the JSON stores
package model

import "slices"

// Votes holds the like/dislike state shared by videos and comments.
// The counters are derived: they always equal the length of the backing
// sets, and a username sits in at most one of the two sets.
type Votes struct {
	Likes      int      `json:"likes"`
	Dislikes   int      `json:"dislikes"`
	LikedBy    []string `json:"liked_by"`
	DislikedBy []string `json:"disliked_by"`
}

// ToggleLike adds the user to liked_by, or removes them if already present.
// Adding a like clears the user's dislike.
func (v *Votes) ToggleLike(username string) {
	if slices.Contains(v.LikedBy, username) {
		v.LikedBy = remove(v.LikedBy, username)
	} else {
		v.LikedBy = append(v.LikedBy, username)
		v.DislikedBy = remove(v.DislikedBy, username)
	}

	v.recount()
}

// ToggleDislike mirrors ToggleLike for the dislike set.
func (v *Votes) ToggleDislike(username string) {
	if slices.Contains(v.DislikedBy, username) {
		v.DislikedBy = remove(v.DislikedBy, username)
	} else {
		v.DislikedBy = append(v.DislikedBy, username)
		v.LikedBy = remove(v.LikedBy, username)
	}

	v.recount()
}

func (v *Votes) LikedByUser(username string) bool {
	return username != "" && slices.Contains(v.LikedBy, username)
}

func (v *Votes) DislikedByUser(username string) bool {
	return username != "" && slices.Contains(v.DislikedBy, username)
}

func (v *Votes) recount() {
	v.Likes = len(v.LikedBy)
	v.Dislikes = len(v.DislikedBy)
}

func remove(list []string, s string) []string {
	out := list[:0]
	for _, e := range list {
		if e != s {
			out = append(out, e)
		}
	}

	return out
}
