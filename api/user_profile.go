package api

import (
	"net/http"
	"sort"
	"time"

	"oneclip/clip-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserProfile returns a public profile with the user's videos, newest
// first. Shadowbanned profiles 404 for everyone but themselves and admins.
func (a *API) UserProfile(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	viewer := c.GetString("username")
	username := c.Param("username")

	users, err := a.Users.Load()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to load users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user, ok := users[username]
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "User not found",
			"requestID": requestID,
		})
		return
	}

	if user.Shadowbanned && viewer != username && !a.isAdmin(viewer) {
		// Indistinguishable from a missing account on purpose
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "User not found",
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

	var own []*model.Video
	for _, v := range videos {
		if v.Uploader == username {
			own = append(own, v)
		}
	}

	sort.SliceStable(own, func(i, j int) bool { return own[i].UploadedAt.After(own[j].UploadedAt) })

	now := time.Now().UTC()
	views := make([]videoView, 0, len(own))
	for _, v := range own {
		views = append(views, newVideoView(v, viewer, now))
	}

	c.JSON(http.StatusOK, gin.H{
		"username":        username,
		"bio":             user.Bio,
		"profile_pic":     user.ProfilePic,
		"followers_count": len(user.Followers),
		"following_count": len(user.Following),
		"videos":          views,
	})
}

// isAdmin is a convenience wrapper for places that only need the check,
// not the guard middleware.
func (a *API) isAdmin(username string) bool {
	roles, err := a.Roles.Load()
	if err != nil {
		zap.L().Error("Failed to load roles", zap.Error(err))
		return false
	}

	return roles.IsAdmin(username)
}
