package api

import (
	"net/http"
	"sort"
	"time"

	"oneclip/clip-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminDashboard gives the moderation overview: every account with its
// flags and every video with its vital stats.
func (a *API) AdminDashboard(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

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

	type userRow struct {
		Username     string `json:"username"`
		Followers    int    `json:"followers"`
		Uploads      int    `json:"uploads"`
		Shadowbanned bool   `json:"shadowbanned"`
	}

	uploads := make(map[string]int, len(users))
	for _, v := range videos {
		uploads[v.Uploader]++
	}

	rows := make([]userRow, 0, len(users))
	for name, u := range users {
		rows = append(rows, userRow{
			Username:     name,
			Followers:    len(u.Followers),
			Uploads:      uploads[name],
			Shadowbanned: u.Shadowbanned,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Username < rows[j].Username })

	type videoRow struct {
		ID       string    `json:"id"`
		Title    string    `json:"title"`
		Uploader string    `json:"uploader"`
		Views    int       `json:"views"`
		Likes    int       `json:"likes"`
		Dislikes int       `json:"dislikes"`
		Uploaded time.Time `json:"uploaded_at"`
		Comments int       `json:"comments"`
	}

	vrows := make([]videoRow, 0, len(videos))
	for _, v := range videos {
		vrows = append(vrows, videoRow{
			ID:       v.ID,
			Title:    v.Title,
			Uploader: v.Uploader,
			Views:    v.Views,
			Likes:    v.Likes,
			Dislikes: v.Dislikes,
			Uploaded: v.UploadedAt,
			Comments: model.CountComments(v.Comments),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"users":       rows,
		"videos":      vrows,
		"user_count":  len(rows),
		"video_count": len(vrows),
	})
}

// AdminDeleteVideo removes any video regardless of owner.
func (a *API) AdminDeleteVideo(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	id := c.Param("id")

	videos, err := a.Videos.Load()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to load videos", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	video := model.FindVideo(videos, id)
	if video == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Video not found",
			"requestID": requestID,
		})
		return
	}

	removeVideoFiles(video)

	kept := videos[:0]
	for _, v := range videos {
		if v.ID != id {
			kept = append(kept, v)
		}
	}

	if err := a.Videos.Save(kept); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save videos", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminDeleteUser removes any account with the same cascade a self-service
// deletion performs.
func (a *API) AdminDeleteUser(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	target := c.Param("username")

	users, err := a.Users.Load()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to load users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if _, ok := users[target]; !ok {
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

	videos = purgeUser(users, videos, target)

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

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminToggleShadowban flips the flag that hides a user from search and
// from the profile ranking.
func (a *API) AdminToggleShadowban(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	target := c.Param("username")

	users, err := a.Users.Load()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to load users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user, ok := users[target]
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "User not found",
			"requestID": requestID,
		})
		return
	}

	user.Shadowbanned = !user.Shadowbanned

	if err := a.Users.Save(users); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "shadowbanned": user.Shadowbanned})
}
