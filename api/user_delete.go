package api

import (
	"net/http"
	"strings"

	"oneclip/clip-api/model"
	"oneclip/clip-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DeleteAccount removes the caller's account and everything tied to it:
// their videos and media files, their record, and every notification they
// ever sent to someone else. The caller must type DELETE to confirm.
func (a *API) DeleteAccount(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	username := c.MustGet("username").(string)

	if strings.TrimSpace(c.PostForm("confirm_text")) != "DELETE" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "You must type DELETE to confirm",
			"requestID": requestID,
		})
		return
	}

	users, err := a.Users.Load()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to load users", zap.Error(err), zap.String("requestID", requestID))
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

	videos = purgeUser(users, videos, username)

	if err := a.Videos.Save(videos); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save videos", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := a.Users.Save(users); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// purgeUser removes the user's videos (files included), strips their
// notifications from everyone else and drops the record itself. The
// surviving video list is returned; the caller persists both stores.
func purgeUser(users map[string]*model.User, videos []*model.Video, username string) []*model.Video {
	kept := videos[:0]
	for _, v := range videos {
		if v.Uploader == username {
			removeVideoFiles(v)
			continue
		}
		kept = append(kept, v)
	}

	service.StripSender(users, username)
	delete(users, username)

	return kept
}
