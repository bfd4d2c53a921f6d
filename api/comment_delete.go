package api

import (
	"net/http"

	"oneclip/clip-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CommentDelete removes a comment and its whole reply subtree. Only the
// author may delete; a failed author check answers exactly like a missing
// comment so ids can't be probed.
func (a *API) CommentDelete(c *gin.Context) {
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

	if !model.DeleteComment(&video.Comments, c.Param("commentID"), username) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Comment not found or permission denied",
			"requestID": requestID,
		})
		return
	}

	if err := a.Videos.Save(videos); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save videos", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
