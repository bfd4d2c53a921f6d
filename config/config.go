// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

var validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}

// The original deployment shipped with this exact secret baked in. It
// stays as the default so old cookies keep working, but any real install
// should override it through JWT_SECRET.
const defaultJWTSecret = "supersecretkey"

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "port")

	v.BindEnv("jwt.secret", "jwt_secret")

	v.BindEnv("data.users_file", "data_users_file")
	v.BindEnv("data.videos_file", "data_videos_file")
	v.BindEnv("data.roles_file", "data_roles_file")

	v.BindEnv("media.video_dir", "media_video_dir")
	v.BindEnv("media.thumb_dir", "media_thumb_dir")
	v.BindEnv("media.profile_pic_dir", "media_profile_pic_dir")
	v.BindEnv("media.temp_dir", "media_temp_dir")

	v.BindEnv("upload.max_size", "upload_max_size")
	v.BindEnv("upload.max_duration", "upload_max_duration")

	v.BindEnv("ffmpeg.path", "ffmpeg_path")
	v.BindEnv("ffmpeg.probe_path", "ffmpeg_probe_path")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 5000)

	v.SetDefault("jwt.secret", defaultJWTSecret)

	v.SetDefault("data.users_file", "users.json")
	v.SetDefault("data.videos_file", "videos.json")
	v.SetDefault("data.roles_file", "admins.json")

	v.SetDefault("media.video_dir", "static/videos")
	v.SetDefault("media.thumb_dir", "static/thumbnails")
	v.SetDefault("media.profile_pic_dir", "static/profile_pics")
	v.SetDefault("media.temp_dir", "temp")

	v.SetDefault("upload.max_size", 50)
	v.SetDefault("upload.max_duration", 1.0)

	v.SetDefault("ffmpeg.path", "ffmpeg")
	v.SetDefault("ffmpeg.probe_path", "ffprobe")

	// The config file is optional, envs and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return errors.New("failed to read config file, " + err.Error())
		}
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetInt("upload.max_size") <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	if v.GetFloat64("upload.max_duration") <= 0 {
		return errors.New("upload.max_duration must be bigger than 0")
	}

	if v.GetString("jwt.secret") == defaultJWTSecret {
		zap.L().Warn("Using the built-in JWT secret, set JWT_SECRET in production")
	}

	v.Set("upload.max_size", v.GetInt64("upload.max_size")<<20)
	return nil
}
