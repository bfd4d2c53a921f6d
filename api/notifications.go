package api

import (
	"net/http"
	"sort"

	"oneclip/clip-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Notifications returns the caller's notifications, newest first, together
// with the unread count.
func (a *API) Notifications(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	username := c.MustGet("username").(string)

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

	notifs := make([]*model.Notification, len(user.Notifications))
	copy(notifs, user.Notifications)
	sort.SliceStable(notifs, func(i, j int) bool {
		return notifs[i].Timestamp.After(notifs[j].Timestamp)
	})

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifs,
		"unread_count":  user.UnreadNotifications(),
	})
}

// NotificationsRead marks every notification of the caller as read.
func (a *API) NotificationsRead(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	username := c.MustGet("username").(string)

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

	for _, n := range user.Notifications {
		n.Read = true
	}

	if err := a.Users.Save(users); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
