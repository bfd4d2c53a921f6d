package api

import (
	"net/http"
	"strings"
	"time"

	"oneclip/clip-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Profiles lists active uploaders ranked by popularity. An optional ?q=
// filters by username, case-insensitively.
func (a *API) Profiles(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	query := strings.TrimSpace(c.Query("q"))

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

	ranked := service.RankProfiles(users, videos, time.Now().UTC())

	if query != "" {
		q := strings.ToLower(query)
		filtered := ranked[:0]
		for _, p := range ranked {
			if strings.Contains(strings.ToLower(p.Username), q) {
				filtered = append(filtered, p)
			}
		}
		ranked = filtered
	}

	resp := gin.H{"profiles": ranked, "query": query}
	if len(ranked) == 0 {
		resp["message"] = "No active profiles found"
	}

	c.JSON(http.StatusOK, resp)
}
