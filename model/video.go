package model

import "time"

// Video is one entry of the videos document. The uploader field references
// a user by name, by convention only; nothing checks it on read.
type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	// Stored file names inside the media directories, not full paths
	FileName  string `json:"video"`
	Thumbnail string `json:"thumbnail,omitempty"`

	Uploader string `json:"uploader"`
	Views    int    `json:"views"`
	Votes
	UploadedAt time.Time  `json:"uploaded_at"`
	Comments   []*Comment `json:"comments"`
}

// FindVideo scans the list for the video with the given id. The document
// has no index, a linear scan is the lookup.
func FindVideo(videos []*Video, id string) *Video {
	for _, v := range videos {
		if v.ID == id {
			return v
		}
	}

	return nil
}
