package api

import (
	"net/http"
	"strings"

	"oneclip/clip-api/validators"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

const recoveryCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RecoverAccount handles both halves of the recovery flow, selected by
// the "action" form field: generate_code mints a new 6-character code,
// reset_password exchanges a valid code for a new password. Codes are
// single-use and cleared on a successful reset.
func (a *API) RecoverAccount(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	action := c.PostForm("action")
	username := strings.TrimSpace(c.PostForm("username"))

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

	switch action {
	case "generate_code":
		code := gonanoid.MustGenerate(recoveryCodeAlphabet, 6)
		user.RecoveryCode = code

		if err := a.Users.Save(users); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to save users", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.JSON(http.StatusOK, gin.H{"username": username, "recovery_code": code})

	case "reset_password":
		code := strings.TrimSpace(c.PostForm("recovery_code"))
		newPassword := strings.TrimSpace(c.PostForm("new_password"))

		if user.RecoveryCode == "" || user.RecoveryCode != code {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid recovery code",
				"requestID": requestID,
			})
			return
		}

		if err := validators.PasswordValidator(newPassword); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}

		hash, err := a.Argon.GenerateFromPassword(newPassword)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		user.Password = hash
		user.RecoveryCode = ""

		if err := a.Users.Save(users); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to save users", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})

	default:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Unknown action",
			"requestID": requestID,
		})
	}
}

// RecoverUsername finds accounts by their recovery hint, matched
// case-insensitively.
func (a *API) RecoverUsername(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	hint := strings.ToLower(strings.TrimSpace(c.PostForm("hint")))

	users, err := a.Users.Load()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to load users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var matches []string
	for name, u := range users {
		if u.Hint != "" && strings.ToLower(u.Hint) == hint {
			matches = append(matches, name)
		}
	}

	if len(matches) == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "No username found with that hint",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"usernames": matches})
}

// ShowRecoveryCode returns the active recovery code for a user, if any.
func (a *API) ShowRecoveryCode(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
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
	if !ok || user.RecoveryCode == "" {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "No recovery code found for this user",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"username": username, "recovery_code": user.RecoveryCode})
}

// GenerateRecoveryCode mints a fresh code for a user, replacing any
// previous one.
func (a *API) GenerateRecoveryCode(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
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

	code := gonanoid.MustGenerate(recoveryCodeAlphabet, 6)
	user.RecoveryCode = code

	if err := a.Users.Save(users); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"username": username, "recovery_code": code})
}
