package api

import (
	"time"

	"oneclip/clip-api/model"
	"oneclip/clip-api/service"
)

// videoView is a video record shaped for responses: humanized upload time
// plus the viewer's own vote state, threaded through the comment forest.
type videoView struct {
	*model.Video
	UploadedAgo  string        `json:"uploaded_ago"`
	UserLiked    bool          `json:"user_liked"`
	UserDisliked bool          `json:"user_disliked"`
	Comments     []commentView `json:"comments"`
}

type commentView struct {
	*model.Comment
	CurrentUserLiked    bool          `json:"current_user_liked"`
	CurrentUserDisliked bool          `json:"current_user_disliked"`
	Replies             []commentView `json:"replies"`
}

func newVideoView(v *model.Video, viewer string, now time.Time) videoView {
	return videoView{
		Video:        v,
		UploadedAgo:  service.TimeSince(v.UploadedAt, now),
		UserLiked:    v.LikedByUser(viewer),
		UserDisliked: v.DislikedByUser(viewer),
		Comments:     commentViews(v.Comments, viewer),
	}
}

func commentViews(forest []*model.Comment, viewer string) []commentView {
	out := make([]commentView, 0, len(forest))
	for _, c := range forest {
		out = append(out, commentView{
			Comment:             c,
			CurrentUserLiked:    c.LikedByUser(viewer),
			CurrentUserDisliked: c.DislikedByUser(viewer),
			Replies:             commentViews(c.Replies, viewer),
		})
	}

	return out
}
