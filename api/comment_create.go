package api

import (
	"net/http"
	"strings"
	"time"

	"oneclip/clip-api/model"
	"oneclip/clip-api/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CommentCreate appends a comment, either top-level or as a reply under
// parent_id. The video owner gets notified unless they commented on their
// own video.
func (a *API) CommentCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	username := c.MustGet("username").(string)

	text := strings.TrimSpace(c.PostForm("text"))
	if text == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Comment cannot be empty",
			"requestID": requestID,
		})
		return
	}

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

	comment := &model.Comment{
		ID:        uuid.NewString(),
		Author:    username,
		Text:      text,
		Timestamp: time.Now().UTC(),
		Votes:     model.Votes{LikedBy: []string{}, DislikedBy: []string{}},
		Replies:   []*model.Comment{},
	}

	if parentID := c.PostForm("parent_id"); parentID != "" {
		parent := model.FindComment(video.Comments, parentID)
		if parent == nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "Parent comment not found",
				"requestID": requestID,
			})
			return
		}

		parent.Replies = append(parent.Replies, comment)
	} else {
		video.Comments = append(video.Comments, comment)
	}

	if video.Uploader != username {
		users, err := a.Users.Load()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to load users", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if service.NotifyComment(users, username, video.Uploader, video.ID, video.Title) {
			if err := a.Users.Save(users); err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":     "Internal server error",
					"requestID": requestID,
				})

				zap.L().Error("Failed to save notification", zap.Error(err), zap.String("requestID", requestID))
				return
			}
		}
	}

	if err := a.Videos.Save(videos); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save comment", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"comment": comment,
	})
}
