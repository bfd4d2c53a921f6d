package model

import "time"

// Comment is a node in a video's comment forest. Replies nest arbitrarily
// deep; vote fields behave exactly like video votes.
type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Votes
	Replies []*Comment `json:"replies"`
}

// FindComment walks the forest depth-first and returns the comment with
// the given id, or nil. Lookup is linear, which is fine at json-file scale.
func FindComment(forest []*Comment, id string) *Comment {
	for _, c := range forest {
		if c.ID == id {
			return c
		}

		if found := FindComment(c.Replies, id); found != nil {
			return found
		}
	}

	return nil
}

// DeleteComment removes the comment with the given id, together with its
// whole reply subtree, but only when requester is its author. It reports
// false both when the id is missing and when the author check fails, so
// callers can't distinguish the two (and don't need to).
func DeleteComment(forest *[]*Comment, id, requester string) bool {
	for i, c := range *forest {
		if c.ID == id {
			if c.Author != requester {
				return false
			}

			*forest = append((*forest)[:i], (*forest)[i+1:]...)
			return true
		}

		if DeleteComment(&c.Replies, id, requester) {
			return true
		}
	}

	return false
}

// CountComments returns the total number of comments in the forest,
// replies included.
func CountComments(forest []*Comment) int {
	n := 0
	for _, c := range forest {
		n += 1 + CountComments(c.Replies)
	}

	return n
}
