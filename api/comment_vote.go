package api

import (
	"net/http"

	"oneclip/clip-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CommentLike toggles the caller's like on a comment anywhere in the
// video's forest.
func (a *API) CommentLike(c *gin.Context) {
	a.commentVote(c, true)
}

// CommentDislike toggles the caller's dislike on a comment.
func (a *API) CommentDislike(c *gin.Context) {
	a.commentVote(c, false)
}

func (a *API) commentVote(c *gin.Context, like bool) {
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

	comment := model.FindComment(video.Comments, c.Param("commentID"))
	if comment == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Comment not found",
			"requestID": requestID,
		})
		return
	}

	if like {
		comment.ToggleLike(username)
	} else {
		comment.ToggleDislike(username)
	}

	if err := a.Videos.Save(videos); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save votes", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, voteState(&comment.Votes, username))
}
