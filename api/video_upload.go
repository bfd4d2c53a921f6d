package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"oneclip/clip-api/media"
	"oneclip/clip-api/model"
	"oneclip/clip-api/service"
	"oneclip/clip-api/validators"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VideoUpload ingests a new clip. The transform runs synchronously on the
// request, so a slow ffmpeg means a slow response; there is no queue.
func (a *API) VideoUpload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	username := c.MustGet("username").(string)

	if !strings.HasPrefix(c.Request.Header.Get("Content-Type"), "multipart/form-data") {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request",
			"requestID": requestID,
		})
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	description := c.PostForm("description")

	videoFile, err := c.FormFile("video")
	if title == "" || err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Title and video file are required",
			"requestID": requestID,
		})
		return
	}

	if code, err := validators.VideoFileValidator(videoFile); err != nil {
		if code == http.StatusInternalServerError {
			zap.L().Error("Failed to validate file", zap.Error(err), zap.String("requestID", requestID))
			err = errors.New("internal server error")
		}

		c.AbortWithStatusJSON(code, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	// Optional; the pipeline extracts a frame when absent
	thumbFile, _ := c.FormFile("thumbnail")

	res, err := a.Ingest.Ingest(c.Request.Context(), videoFile, thumbFile)
	if err != nil {
		if errors.Is(err, media.ErrTooLong) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "Video is too long! Maximum length is 1 second",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Media ingest failed", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	video := &model.Video{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		FileName:    res.FileName,
		Thumbnail:   res.Thumbnail,
		Uploader:    username,
		Votes:       model.Votes{LikedBy: []string{}, DislikedBy: []string{}},
		UploadedAt:  time.Now().UTC(),
		Comments:    []*model.Comment{},
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

	if n := service.FanOutUpload(users, username, video.ID, video.Title); n > 0 {
		zap.L().Debug("Notified followers about upload", zap.Int("count", n))
	}

	if err := a.Users.Save(users); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save notifications", zap.Error(err), zap.String("requestID", requestID))
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

	videos = append(videos, video)

	if err := a.Videos.Save(videos); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save videos", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}
