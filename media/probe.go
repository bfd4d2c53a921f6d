// Package media turns raw uploads into the stored clip + thumbnail pair.
// All heavy lifting is shelled out to ffmpeg/ffprobe.
package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// ProbeDuration runs ffprobe and returns the clip duration in seconds.
func ProbeDuration(ctx context.Context, p string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	zap.L().Debug("Running FFprobe to determine video duration")

	cmd := exec.CommandContext(ctx, viper.GetString("ffmpeg.probe_path"),
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		"-i", p,
	)

	var stdOut, stdErr bytes.Buffer
	cmd.Stdout = &stdOut
	cmd.Stderr = &stdErr

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe failed, %w (%s)", err, stdErr.String())
	}

	d, err := strconv.ParseFloat(strings.TrimSpace(stdOut.String()), 64)
	if err != nil {
		return 0, fmt.Errorf("malformed duration: %w (%s)", err, stdErr.String())
	}

	return d, nil
}

// ProbeHasAudio reports whether the file carries at least one audio stream.
// Errors count as "no audio" so the transcode step synthesizes a silent
// track instead of failing.
func ProbeHasAudio(ctx context.Context, p string) bool {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	cmd := exec.CommandContext(ctx, viper.GetString("ffmpeg.probe_path"),
		"-v", "error",
		"-select_streams", "a",
		"-show_entries", "stream=codec_type",
		"-of", "csv=p=0",
		"-i", p,
	)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut

	if err := cmd.Run(); err != nil {
		zap.L().Debug("FFprobe audio check failed, assuming no audio", zap.Error(err))
		return false
	}

	return strings.TrimSpace(stdOut.String()) != ""
}
