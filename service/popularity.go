package service

import (
	"math"
	"sort"
	"time"

	"oneclip/clip-api/model"
)

// Uploaders go inactive after this many days without an upload and drop
// out of the profiles listing.
const inactivityCutoffDays = 60

// ProfileRank is one row of the public profiles listing.
type ProfileRank struct {
	Username        string    `json:"username"`
	Bio             string    `json:"bio"`
	ProfilePic      string    `json:"profile_pic,omitempty"`
	Uploads         int       `json:"uploads"`
	Likes           int       `json:"likes"`
	LastUpload      time.Time `json:"last_upload"`
	DaysSinceUpload int       `json:"days_since_upload"`
	Popularity      float64   `json:"popularity"`
}

// RankProfiles computes the popularity listing: score = likes*3 +
// uploads*2 + 100/max(days_since_last_upload, 1), skipping users without
// uploads, users inactive past the cutoff, and shadowbanned users.
// Sorted by score, highest first.
func RankProfiles(users map[string]*model.User, videos []*model.Video, now time.Time) []ProfileRank {
	type stats struct {
		uploads    int
		likes      int
		lastUpload time.Time
	}

	perUploader := map[string]*stats{}
	for _, v := range videos {
		s, ok := perUploader[v.Uploader]
		if !ok {
			s = &stats{}
			perUploader[v.Uploader] = s
		}

		s.uploads++
		s.likes += v.Likes

		if v.UploadedAt.After(s.lastUpload) {
			s.lastUpload = v.UploadedAt
		}
	}

	ranked := []ProfileRank{}
	for username, u := range users {
		if u.Shadowbanned {
			continue
		}

		s, ok := perUploader[username]
		if !ok || s.lastUpload.IsZero() {
			continue
		}

		days := int(now.Sub(s.lastUpload).Hours() / 24)
		if days > inactivityCutoffDays {
			continue
		}

		recency := 100 / float64(max(days, 1))
		popularity := float64(s.likes*3) + float64(s.uploads*2) + recency

		ranked = append(ranked, ProfileRank{
			Username:        username,
			Bio:             u.Bio,
			ProfilePic:      u.ProfilePic,
			Uploads:         s.uploads,
			Likes:           s.likes,
			LastUpload:      s.lastUpload,
			DaysSinceUpload: days,
			Popularity:      math.Round(popularity*100) / 100,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].Popularity > ranked[j].Popularity
	})

	return ranked
}
