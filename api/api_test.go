package api

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"oneclip/clip-api/media"
	"oneclip/clip-api/middleware"
	"oneclip/clip-api/model"
	"oneclip/clip-api/security"
	"oneclip/clip-api/store/jsonfile"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// newTestAPI wires the real routes over JSON stores in a temp dir, with
// the ffmpeg steps of the ingestor stubbed out.
func newTestAPI(t *testing.T) *API {
	t.Helper()
	gin.SetMode(gin.TestMode)

	base := t.TempDir()
	viper.Set("jwt.secret", "test-secret")
	viper.Set("media.video_dir", filepath.Join(base, "videos"))
	viper.Set("media.thumb_dir", filepath.Join(base, "thumbnails"))
	viper.Set("media.profile_pic_dir", filepath.Join(base, "profile_pics"))
	viper.Set("upload.max_size", 10<<20)

	for _, key := range []string{"media.video_dir", "media.thumb_dir", "media.profile_pic_dir"} {
		require.NoError(t, os.MkdirAll(viper.GetString(key), 0o755))
	}

	users, err := jsonfile.OpenUsers(filepath.Join(base, "users.json"))
	require.NoError(t, err)

	roles, err := jsonfile.OpenRoles(filepath.Join(base, "admins.json"))
	require.NoError(t, err)

	a := &API{
		Users:  users,
		Videos: jsonfile.OpenVideos(filepath.Join(base, "videos.json")),
		Roles:  roles,
		Argon:  security.New(),
		Ingest: stubIngestor(t, base),
	}

	router := gin.New()
	router.Use(middleware.NewRequestIDMiddleware())
	a.Router = router
	a.registerRoutes(router)

	return a
}

func stubIngestor(t *testing.T, base string) *media.Ingestor {
	t.Helper()

	n := &media.Ingestor{
		VideoDir:    viper.GetString("media.video_dir"),
		ThumbDir:    viper.GetString("media.thumb_dir"),
		TempDir:     filepath.Join(base, "temp"),
		MaxDuration: 1.0,

		Probe:    func(context.Context, string) (float64, error) { return 0.9, nil },
		HasAudio: func(context.Context, string) bool { return false },
		Transcode: func(_ context.Context, src, dst string, _ bool) error {
			data, err := os.ReadFile(src)
			if err != nil {
				return err
			}
			return os.WriteFile(dst, data, 0o644)
		},
		Thumbnail: func(_ context.Context, _, dst string) error {
			return os.WriteFile(dst, []byte("png"), 0o644)
		},
	}

	require.NoError(t, os.MkdirAll(n.TempDir, 0o755))
	return n
}

// seedUser inserts a user record directly into the store.
func seedUser(t *testing.T, a *API, username string, mutate ...func(*model.User)) {
	t.Helper()

	users, err := a.Users.Load()
	require.NoError(t, err)

	u := &model.User{}
	u.Normalize()
	for _, m := range mutate {
		m(u)
	}

	users[username] = u
	require.NoError(t, a.Users.Save(users))
}

func seedVideo(t *testing.T, a *API, v *model.Video) {
	t.Helper()

	if v.UploadedAt.IsZero() {
		v.UploadedAt = time.Now().UTC()
	}

	videos, err := a.Videos.Load()
	require.NoError(t, err)
	require.NoError(t, a.Videos.Save(append(videos, v)))
}

func makeAdmin(t *testing.T, a *API, username string) {
	t.Helper()

	roles, err := a.Roles.Load()
	require.NoError(t, err)

	roles.Admins = append(roles.Admins, username)
	require.NoError(t, a.Roles.Save(roles))
}

// authCookie mints a session cookie the way the login handler does.
func authCookie(t *testing.T, username string) *http.Cookie {
	t.Helper()

	token, err := makeToken(&jwt.MapClaims{
		"username": username,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	return &http.Cookie{Name: "auth_token", Value: token}
}

func doForm(a *API, method, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var body string
	if form != nil {
		body = form.Encode()
	}

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return body
}

// multipartBody builds a form with text fields plus an mp4-looking video
// part that passes the content sniffing.
func multipartBody(t *testing.T, fields map[string]string, withVideo bool) (string, *strings.Reader) {
	t.Helper()

	var sb strings.Builder
	w := multipart.NewWriter(&sb)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}

	if withVideo {
		hdr := make(map[string][]string)
		hdr["Content-Disposition"] = []string{`form-data; name="video"; filename="clip.mp4"`}
		hdr["Content-Type"] = []string{"video/mp4"}

		part, err := w.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write(mp4Stub())
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return w.FormDataContentType(), strings.NewReader(sb.String())
}

// mp4Stub is the smallest byte prefix that sniffs as video/mp4.
func mp4Stub() []byte {
	return []byte{
		0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm',
		0x00, 0x00, 0x02, 0x00, 'i', 's', 'o', 'm', 'm', 'p', '4', '1',
	}
}

func TestHeartbeat(t *testing.T) {
	a := newTestAPI(t)

	w := doForm(a, http.MethodHead, "/heartbeat", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
