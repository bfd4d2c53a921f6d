package media

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// MakeThumbnail extracts the frame at time zero scaled to a fixed 320px
// width. -ss before the input uses key-frame seeking, which is faster.
func MakeThumbnail(ctx context.Context, src, dst string) error {
	zap.L().Debug("Creating thumbnail for video")
	now := time.Now()

	cmd := exec.CommandContext(ctx, viper.GetString("ffmpeg.path"),
		"-loglevel", "error",
		"-ss", "0",
		"-i", src,
		"-frames:v", "1",
		"-q:v", "2",
		"-vf", "scale=320:-1",
		"-y", dst,
	)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to create thumbnail for video, %w", err)
	}

	zap.L().Debug("Finished creating thumbnail", zap.Duration("took", time.Since(now)))

	return nil
}
