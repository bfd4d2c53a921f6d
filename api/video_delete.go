package api

import (
	"net/http"
	"os"
	"path/filepath"

	"oneclip/clip-api/model"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// VideoDelete removes a video record together with its media files.
// Owner only; admins go through /admin/delete_video instead.
func (a *API) VideoDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	username := c.MustGet("username").(string)

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

	if video.Uploader != username {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     "You are not allowed to delete this video",
			"requestID": requestID,
		})
		return
	}

	removeVideoFiles(video)

	kept := videos[:0]
	for _, v := range videos {
		if v.ID != video.ID {
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

	c.Redirect(http.StatusSeeOther, "/")
}

// removeVideoFiles deletes the stored clip and thumbnail, ignoring files
// already gone.
func removeVideoFiles(v *model.Video) {
	if v.FileName != "" {
		os.Remove(filepath.Join(viper.GetString("media.video_dir"), v.FileName))
	}

	if v.Thumbnail != "" {
		os.Remove(filepath.Join(viper.GetString("media.thumb_dir"), v.Thumbnail))
	}
}
