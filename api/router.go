// Package api contains all endpoints available
package api

import (
	"fmt"
	"os"
	"time"

	"oneclip/clip-api/media"
	"oneclip/clip-api/middleware"
	"oneclip/clip-api/security"
	"oneclip/clip-api/store"
	"oneclip/clip-api/store/jsonfile"

	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

type API struct {
	Router *gin.Engine
	Users  store.Users
	Videos store.Videos
	Roles  store.Roles
	Argon  *security.ArgonHash
	Ingest *media.Ingestor
}

func NewRouter() (*API, error) {
	a := &API{}

	makeLogger()

	users, err := jsonfile.OpenUsers(viper.GetString("data.users_file"))
	if err != nil {
		return nil, fmt.Errorf("failed to open users store, %w", err)
	}
	a.Users = users

	a.Videos = jsonfile.OpenVideos(viper.GetString("data.videos_file"))

	roles, err := jsonfile.OpenRoles(viper.GetString("data.roles_file"))
	if err != nil {
		return nil, fmt.Errorf("failed to open roles store, %w", err)
	}
	a.Roles = roles

	ingest, err := media.NewIngestor()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize media ingestor, %w", err)
	}
	a.Ingest = ingest

	if err := os.MkdirAll(viper.GetString("media.profile_pic_dir"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profile picture directory, %w", err)
	}

	a.Argon = security.New()

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "HEAD", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("username"); v != "" {
					fields = append(fields, zap.String("username", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.MaxMultipartMemory = 8 << 20

	a.registerRoutes(router)

	return a, nil
}

// registerRoutes wires every route onto the engine. Split out of NewRouter
// so the tests can mount the same routes over stub stores.
func (a *API) registerRoutes(router *gin.Engine) {
	session := middleware.NewSessionMiddleware(a.Users)
	optSession := middleware.NewOptionalSessionMiddleware()
	admin := middleware.NewAdminMiddleware(a.Roles)
	authLimit := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: 5,
		Burst:             20,
	})
	formLimit := middleware.BodySizeLimiter(1 << 20)
	maxUploadSize := viper.GetInt64("upload.max_size")

	// HEAD /heartbeat		-> Used to check if the server is alive
	router.HEAD("/heartbeat", a.Heartbeat)

	// GET /			-> The feed: every video, searchable and sortable
	router.GET("/", optSession, a.Feed)

	// GET /videos			-> Raw video list
	router.GET("/videos", a.VideoList)

	// GET /video/:id		-> A single video page, increments views
	router.GET("/video/:id", optSession, a.VideoPage)

	auth := router.Group("", authLimit, formLimit)
	{
		// POST /signup 	-> Registers a new user and logs them in
		auth.POST("/signup", a.Signup)

		// POST /login 		-> Logs in a user and sets the session cookie
		auth.POST("/login", a.Login)

		// Account recovery, deliberately session-free
		auth.POST("/recover_account", a.RecoverAccount)
		auth.POST("/recover_username", a.RecoverUsername)
		auth.GET("/show_recovery_code/:username", a.ShowRecoveryCode)
		auth.GET("/generate_recovery_code/:username", a.GenerateRecoveryCode)
	}

	// GET /logout			-> Clears the session cookie
	router.GET("/logout", a.Logout)

	// POST /upload			-> Uploads a new clip (1 second max)
	router.POST("/upload", session, middleware.BodySizeLimiter(maxUploadSize), a.VideoUpload)

	videos := router.Group("", session, formLimit)
	{
		// POST /edit_video/:id		-> Edits title/description, owner only
		videos.POST("/edit_video/:id", a.VideoEdit)

		// POST /delete_video/:id	-> Deletes a video and its files, owner only
		videos.POST("/delete_video/:id", a.VideoDelete)

		// POST /like/:id /dislike/:id	-> Toggle votes, mutually exclusive
		videos.POST("/like/:id", a.VideoLike)
		videos.POST("/dislike/:id", a.VideoDislike)

		// POST /comment/:id		-> Adds a comment or a nested reply
		videos.POST("/comment/:id", a.CommentCreate)

		// Comment votes and author-only deletion
		videos.POST("/comment_like/:id/:commentID", a.CommentLike)
		videos.POST("/comment_dislike/:id/:commentID", a.CommentDislike)
		videos.POST("/delete_comment/:id/:commentID", a.CommentDelete)
	}

	// GET /user/:username		-> Public profile with the user's videos
	router.GET("/user/:username", optSession, a.UserProfile)

	// GET /profiles		-> Uploaders ranked by popularity
	router.GET("/profiles", a.Profiles)

	account := router.Group("", session)
	{
		// POST /edit_profile	-> Bio, username change, profile picture
		account.POST("/edit_profile", a.EditProfile)

		// POST /follow/:username -> Toggles the follow relation
		account.POST("/follow/:username", formLimit, a.FollowToggle)

		// GET /notifications	-> Newest first, with unread count
		account.GET("/notifications", a.Notifications)

		// POST /notifications/read -> Marks everything read
		account.POST("/notifications/read", a.NotificationsRead)

		// POST /delete_account	-> Full cascade, requires typing DELETE
		account.POST("/delete_account", formLimit, a.DeleteAccount)
	}

	adminGroup := router.Group("/admin", session, admin)
	{
		// GET /admin			-> Overview of users and videos
		adminGroup.GET("", a.AdminDashboard)

		// POST /admin/delete_video/:id	-> Deletes any video
		adminGroup.POST("/delete_video/:id", a.AdminDeleteVideo)

		// POST /admin/delete_user/:username -> Deletes any account, full cascade
		adminGroup.POST("/delete_user/:username", a.AdminDeleteUser)

		// POST /admin/toggle_shadowban/:username -> Flips the shadowban flag
		adminGroup.POST("/toggle_shadowban/:username", a.AdminToggleShadowban)
	}

	// Media directories are served straight from disk
	router.Static("/static/videos", viper.GetString("media.video_dir"))
	router.Static("/static/thumbnails", viper.GetString("media.thumb_dir"))
	router.Static("/static/profile_pics", viper.GetString("media.profile_pic_dir"))
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
