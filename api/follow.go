package api

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FollowToggle follows the target user, or unfollows them when already
// followed. Both sides of the relation are kept in sync.
func (a *API) FollowToggle(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	username := c.MustGet("username").(string)
	target := c.Param("username")

	if target == username {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "You can't follow yourself",
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

	me, ok := users[username]
	targetUser, targetOK := users[target]
	if !ok || !targetOK {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "User not found",
			"requestID": requestID,
		})
		return
	}

	following := slices.Contains(me.Following, target)
	if following {
		me.Following = removeString(me.Following, target)
		targetUser.Followers = removeString(targetUser.Followers, username)
	} else {
		me.Following = append(me.Following, target)
		targetUser.Followers = append(targetUser.Followers, username)
	}

	if err := a.Users.Save(users); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"following":       !following,
		"followers_count": len(targetUser.Followers),
	})
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
