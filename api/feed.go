package api

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"oneclip/clip-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Feed serves the landing listing: every video, optionally filtered by a
// search query and sorted by newest, views or likes.
func (a *API) Feed(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	viewer := c.GetString("username")

	sortBy := c.DefaultQuery("sort", "newest")
	query := strings.ToLower(strings.TrimSpace(c.Query("q")))

	videos, err := a.Videos.Load()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to load videos", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if query != "" {
		users, err := a.Users.Load()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to load users", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		filtered := videos[:0]
		for _, v := range videos {
			if visibleInSearch(v, users, query) {
				filtered = append(filtered, v)
			}
		}
		videos = filtered
	}

	switch sortBy {
	case "views":
		sort.SliceStable(videos, func(i, j int) bool { return videos[i].Views > videos[j].Views })
	case "likes":
		sort.SliceStable(videos, func(i, j int) bool { return videos[i].Likes > videos[j].Likes })
	default: // newest
		sortBy = "newest"
		sort.SliceStable(videos, func(i, j int) bool { return videos[i].UploadedAt.After(videos[j].UploadedAt) })
	}

	now := time.Now().UTC()
	views := make([]videoView, 0, len(videos))
	for _, v := range videos {
		views = append(views, newVideoView(v, viewer, now))
	}

	c.JSON(http.StatusOK, gin.H{
		"videos": views,
		"sort":   sortBy,
		"q":      query,
	})
}

// VideoList returns the raw video records, unsorted and unfiltered.
func (a *API) VideoList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	videos, err := a.Videos.Load()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to load videos", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"videos": videos})
}

// visibleInSearch hides videos of shadowbanned (or vanished) uploaders and
// matches the query against title, description and uploader name.
func visibleInSearch(v *model.Video, users map[string]*model.User, query string) bool {
	if v.Uploader == "" {
		return false
	}

	if uploader, ok := users[v.Uploader]; ok && uploader.Shadowbanned {
		return false
	}

	return strings.Contains(strings.ToLower(v.Title), query) ||
		strings.Contains(strings.ToLower(v.Description), query) ||
		strings.Contains(strings.ToLower(v.Uploader), query)
}
