package api

import (
	"net/http"
	"path/filepath"

	"oneclip/clip-api/validators"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EditProfile updates the bio, the profile picture and optionally renames
// the account. A rename re-issues the session cookie under the new name.
func (a *API) EditProfile(c *gin.Context) {
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

	user.Bio = c.PostForm("bio")

	if fh, err := c.FormFile("profile_pic"); err == nil && fh.Size > 0 {
		// Base guards records that predate the username charset check
		name := filepath.Base(username + filepath.Ext(fh.Filename))
		dst := filepath.Join(viper.GetString("media.profile_pic_dir"), name)

		if err := c.SaveUploadedFile(fh, dst); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Failed to save profile picture",
				"requestID": requestID,
			})

			zap.L().Error("Failed to save profile picture", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		user.ProfilePic = name
	}

	newName := c.PostForm("new_username")
	if newName != "" && newName != username {
		if err := validators.UsernameValidator(newName); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}

		if _, taken := users[newName]; taken {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "Username already taken",
				"requestID": requestID,
			})
			return
		}

		delete(users, username)
		users[newName] = user
		username = newName

		if err := a.setSessionCookie(c, username); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to sign session token", zap.Error(err), zap.String("requestID", requestID))
			return
		}
	}

	if err := a.Users.Save(users); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "username": username})
}
