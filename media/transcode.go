package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// The comma inside min() must be escaped so the filter parser doesn't
// treat it as a filter separator.
const squareCrop = `crop=min(iw\,ih):min(iw\,ih):(ow-iw)/-2:(oh-ih)/-2`

// TranscodeSquare crops the clip to the largest centered square and
// re-encodes it to h264/aac. When the source has no audio track a silent
// stereo track is synthesized so every stored clip plays the same way.
func TranscodeSquare(ctx context.Context, src, dst string, withAudio bool) error {
	args := []string{"-loglevel", "error", "-i", src}

	if !withAudio {
		args = append(args,
			"-f", "lavfi",
			"-i", "anullsrc=channel_layout=stereo:sample_rate=44100",
			"-map", "0:v",
			"-map", "1:a",
			"-shortest",
		)
	}

	args = append(args,
		"-vf", squareCrop,
		"-c:v", "libx264",
		"-c:a", "aac",
		"-b:a", "128k",
		"-y", dst,
	)

	cmd := exec.CommandContext(ctx, viper.GetString("ffmpeg.path"), args...)

	zap.L().Debug("Running FFmpeg square transcode", zap.String("cmd", cmd.String()))

	var stdErr bytes.Buffer
	cmd.Stderr = &stdErr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg failed, %w (%s)", err, stdErr.String())
	}

	return nil
}
