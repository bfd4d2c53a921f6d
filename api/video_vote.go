package api

import (
	"net/http"

	"oneclip/clip-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VideoLike toggles the caller's like on a video.
func (a *API) VideoLike(c *gin.Context) {
	a.videoVote(c, true)
}

// VideoDislike toggles the caller's dislike on a video.
func (a *API) VideoDislike(c *gin.Context) {
	a.videoVote(c, false)
}

func (a *API) videoVote(c *gin.Context, like bool) {
	requestID := c.MustGet("requestID").(string)
	username := c.MustGet("username").(string)

	videos, err := a.Videos.Load()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to load videos", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	video := model.FindVideo(videos, c.Param("id"))
	if video == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Video not found",
			"requestID": requestID,
		})
		return
	}

	if like {
		video.ToggleLike(username)
	} else {
		video.ToggleDislike(username)
	}

	if err := a.Videos.Save(videos); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save votes", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, voteState(&video.Votes, username))
}

// voteState is the shared response shape of all four vote endpoints.
func voteState(v *model.Votes, username string) gin.H {
	return gin.H{
		"likes":             v.Likes,
		"dislikes":          v.Dislikes,
		"following_like":    v.LikedByUser(username),
		"following_dislike": v.DislikedByUser(username),
	}
}
