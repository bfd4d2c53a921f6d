package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// ErrTooLong is returned when the uploaded clip exceeds the duration cap.
var ErrTooLong = errors.New("video too long")

const fileKeyAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Result names the artifacts the ingest pipeline produced. Thumbnail is
// empty when generation failed; the upload still succeeds without one.
type Result struct {
	FileName  string
	Thumbnail string
	Duration  float64
}

// Ingestor runs the upload pipeline: temp save, duration probe, centered
// square transcode, thumbnail. The exec-backed steps are plain fields so
// tests can stub them out.
type Ingestor struct {
	VideoDir    string
	ThumbDir    string
	TempDir     string
	MaxDuration float64

	Probe     func(ctx context.Context, path string) (float64, error)
	HasAudio  func(ctx context.Context, path string) bool
	Transcode func(ctx context.Context, src, dst string, withAudio bool) error
	Thumbnail func(ctx context.Context, src, dst string) error
}

// NewIngestor builds an ffmpeg-backed ingestor from the configured media
// directories, creating them if needed.
func NewIngestor() (*Ingestor, error) {
	n := &Ingestor{
		VideoDir:    viper.GetString("media.video_dir"),
		ThumbDir:    viper.GetString("media.thumb_dir"),
		TempDir:     viper.GetString("media.temp_dir"),
		MaxDuration: viper.GetFloat64("upload.max_duration"),

		Probe:     ProbeDuration,
		HasAudio:  ProbeHasAudio,
		Transcode: TranscodeSquare,
		Thumbnail: MakeThumbnail,
	}

	for _, dir := range []string{n.VideoDir, n.ThumbDir, n.TempDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create media directory %q, %w", dir, err)
		}
	}

	return n, nil
}

// Ingest validates and transforms an uploaded clip and derives a
// thumbnail. The duration cap is a hard reject; a failed transcode
// degrades to storing the raw upload, and a failed thumbnail degrades to
// no thumbnail at all.
func (n *Ingestor) Ingest(ctx context.Context, video, thumb *multipart.FileHeader) (*Result, error) {
	key, err := gonanoid.Generate(fileKeyAlphabet, 12)
	if err != nil {
		return nil, fmt.Errorf("failed to generate file key, %w", err)
	}

	tempPath := filepath.Join(n.TempDir, key+"_upload.mp4")
	if err := saveUpload(video, tempPath); err != nil {
		return nil, fmt.Errorf("failed to save upload, %w", err)
	}

	duration, err := n.Probe(ctx, tempPath)
	if err != nil {
		os.Remove(tempPath)
		return nil, fmt.Errorf("failed to probe upload duration, %w", err)
	}

	if duration > n.MaxDuration {
		os.Remove(tempPath)
		return nil, ErrTooLong
	}

	finalName := key + ".mp4"
	finalPath := filepath.Join(n.VideoDir, finalName)
	squarePath := filepath.Join(n.TempDir, key+"_square.mp4")

	if err := n.Transcode(ctx, tempPath, squarePath, n.HasAudio(ctx, tempPath)); err != nil {
		// Best-effort degrade: keep the raw, unsquared upload
		zap.L().Warn("FFmpeg processing failed, storing raw upload", zap.Error(err))

		if err := os.Rename(tempPath, finalPath); err != nil {
			return nil, fmt.Errorf("failed to store raw upload, %w", err)
		}
	} else {
		os.Remove(tempPath)

		if err := os.Rename(squarePath, finalPath); err != nil {
			return nil, fmt.Errorf("failed to store processed video, %w", err)
		}
	}

	res := &Result{FileName: finalName, Duration: duration}

	if thumb != nil {
		ext := strings.ToLower(filepath.Ext(thumb.Filename))
		if ext == "" {
			ext = ".png"
		}

		res.Thumbnail = key + ext
		if err := saveUpload(thumb, filepath.Join(n.ThumbDir, res.Thumbnail)); err != nil {
			zap.L().Warn("Failed to save provided thumbnail", zap.Error(err))
			res.Thumbnail = ""
		}

		return res, nil
	}

	thumbName := key + ".png"
	if err := n.Thumbnail(ctx, finalPath, filepath.Join(n.ThumbDir, thumbName)); err != nil {
		zap.L().Warn("Thumbnail generation failed", zap.Error(err))
		return res, nil
	}

	res.Thumbnail = thumbName
	return res, nil
}

func saveUpload(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}
