package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"oneclip/clip-api/model"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoUpload(t *testing.T) {
	a := newTestAPI(t)
	seedUser(t, a, "alice", func(u *model.User) { u.Followers = []string{"fan"} })
	seedUser(t, a, "fan")

	ct, body := multipartBody(t, map[string]string{
		"title":       "My clip",
		"description": "one second of fame",
	}, true)

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", ct)
	req.AddCookie(authCookie(t, "alice"))

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())

	videos, err := a.Videos.Load()
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "My clip", videos[0].Title)
	assert.Equal(t, "alice", videos[0].Uploader)
	assert.NotEmpty(t, videos[0].FileName)
	assert.NotEmpty(t, videos[0].Thumbnail)

	_, err = os.Stat(filepath.Join(viper.GetString("media.video_dir"), videos[0].FileName))
	assert.NoError(t, err)

	// the follower got an upload notification
	users, err := a.Users.Load()
	require.NoError(t, err)
	require.Len(t, users["fan"].Notifications, 1)
	assert.Equal(t, model.NotifUpload, users["fan"].Notifications[0].Type)
	assert.Equal(t, videos[0].ID, users["fan"].Notifications[0].VideoID)
}

func TestVideoUploadMissingTitle(t *testing.T) {
	a := newTestAPI(t)
	seedUser(t, a, "alice")

	ct, body := multipartBody(t, map[string]string{}, true)

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", ct)
	req.AddCookie(authCookie(t, "alice"))

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVideoUploadTooLong(t *testing.T) {
	a := newTestAPI(t)
	seedUser(t, a, "alice")
	a.Ingest.Probe = func(context.Context, string) (float64, error) { return 3.0, nil }

	ct, body := multipartBody(t, map[string]string{"title": "Long clip"}, true)

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", ct)
	req.AddCookie(authCookie(t, "alice"))

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "too long")

	videos, err := a.Videos.Load()
	require.NoError(t, err)
	assert.Empty(t, videos)
}

func TestVideoPageCountsViews(t *testing.T) {
	a := newTestAPI(t)
	seedVideo(t, a, &model.Video{ID: "v1", Title: "Clip", Uploader: "alice"})

	w := doForm(a, http.MethodGet, "/video/v1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := jsonBody(t, w)
	video := body["video"].(map[string]any)
	assert.Equal(t, float64(1), video["views"])
	assert.Equal(t, false, body["logged_in"])

	videos, err := a.Videos.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, videos[0].Views)
}

func TestVideoPageNotFound(t *testing.T) {
	a := newTestAPI(t)

	w := doForm(a, http.MethodGet, "/video/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVideoEdit(t *testing.T) {
	a := newTestAPI(t)
	seedUser(t, a, "alice")
	seedUser(t, a, "mallory")
	seedVideo(t, a, &model.Video{ID: "v1", Title: "Old", Uploader: "alice"})

	w := doForm(a, http.MethodPost, "/edit_video/v1", url.Values{
		"title":       {"New title"},
		"description": {"updated"},
	}, authCookie(t, "alice"))
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())

	videos, err := a.Videos.Load()
	require.NoError(t, err)
	assert.Equal(t, "New title", videos[0].Title)
	assert.Equal(t, "updated", videos[0].Description)

	// not the owner
	forbidden := doForm(a, http.MethodPost, "/edit_video/v1", url.Values{
		"title": {"Hijacked"},
	}, authCookie(t, "mallory"))
	assert.Equal(t, http.StatusForbidden, forbidden.Code)
}

func TestVideoDelete(t *testing.T) {
	a := newTestAPI(t)
	seedUser(t, a, "alice")
	seedUser(t, a, "mallory")

	videoPath := filepath.Join(viper.GetString("media.video_dir"), "clip.mp4")
	require.NoError(t, os.WriteFile(videoPath, []byte("data"), 0o644))
	seedVideo(t, a, &model.Video{ID: "v1", Title: "Clip", FileName: "clip.mp4", Uploader: "alice"})

	forbidden := doForm(a, http.MethodPost, "/delete_video/v1", nil, authCookie(t, "mallory"))
	assert.Equal(t, http.StatusForbidden, forbidden.Code)

	w := doForm(a, http.MethodPost, "/delete_video/v1", nil, authCookie(t, "alice"))
	require.Equal(t, http.StatusSeeOther, w.Code)

	videos, err := a.Videos.Load()
	require.NoError(t, err)
	assert.Empty(t, videos)

	_, err = os.Stat(videoPath)
	assert.True(t, os.IsNotExist(err))
}

func TestVideoVoteToggle(t *testing.T) {
	a := newTestAPI(t)
	seedUser(t, a, "alice")
	seedVideo(t, a, &model.Video{ID: "v1", Title: "Clip", Uploader: "bob"})

	w := doForm(a, http.MethodPost, "/like/v1", nil, authCookie(t, "alice"))
	require.Equal(t, http.StatusOK, w.Code)
	body := jsonBody(t, w)
	assert.Equal(t, float64(1), body["likes"])
	assert.Equal(t, true, body["following_like"])

	// dislike replaces the like
	w = doForm(a, http.MethodPost, "/dislike/v1", nil, authCookie(t, "alice"))
	require.Equal(t, http.StatusOK, w.Code)
	body = jsonBody(t, w)
	assert.Equal(t, float64(0), body["likes"])
	assert.Equal(t, float64(1), body["dislikes"])
	assert.Equal(t, false, body["following_like"])
	assert.Equal(t, true, body["following_dislike"])

	// second dislike retracts
	w = doForm(a, http.MethodPost, "/dislike/v1", nil, authCookie(t, "alice"))
	require.Equal(t, http.StatusOK, w.Code)
	body = jsonBody(t, w)
	assert.Equal(t, float64(0), body["dislikes"])
	assert.Equal(t, false, body["following_dislike"])
}

func TestFeedSortAndSearch(t *testing.T) {
	a := newTestAPI(t)
	seedUser(t, a, "alice")
	seedUser(t, a, "banned", func(u *model.User) { u.Shadowbanned = true })

	now := time.Now().UTC()
	seedVideo(t, a, &model.Video{ID: "old", Title: "Cat video", Uploader: "alice", Views: 10, UploadedAt: now.Add(-2 * time.Hour)})
	seedVideo(t, a, &model.Video{ID: "new", Title: "Dog video", Uploader: "alice", Views: 3, UploadedAt: now})
	seedVideo(t, a, &model.Video{ID: "hidden", Title: "Cat sneeze", Uploader: "banned", Views: 99, UploadedAt: now})

	// newest first by default
	w := doForm(a, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	videos := jsonBody(t, w)["videos"].([]any)
	require.Len(t, videos, 3)
	assert.Equal(t, "new", videos[0].(map[string]any)["id"])

	// by views
	w = doForm(a, http.MethodGet, "/?sort=views", nil)
	videos = jsonBody(t, w)["videos"].([]any)
	assert.Equal(t, "hidden", videos[0].(map[string]any)["id"])

	// search hides shadowbanned uploaders
	w = doForm(a, http.MethodGet, "/?q=cat", nil)
	videos = jsonBody(t, w)["videos"].([]any)
	require.Len(t, videos, 1)
	assert.Equal(t, "old", videos[0].(map[string]any)["id"])
}
