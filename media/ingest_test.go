package media

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	require.NotEmpty(t, form.File["file"])
	return form.File["file"][0]
}

func testIngestor(t *testing.T) *Ingestor {
	t.Helper()

	base := t.TempDir()
	n := &Ingestor{
		VideoDir:    filepath.Join(base, "videos"),
		ThumbDir:    filepath.Join(base, "thumbs"),
		TempDir:     filepath.Join(base, "temp"),
		MaxDuration: 1.0,

		Probe:    func(context.Context, string) (float64, error) { return 0.8, nil },
		HasAudio: func(context.Context, string) bool { return true },
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

	for _, dir := range []string{n.VideoDir, n.ThumbDir, n.TempDir} {
		require.NoError(t, os.MkdirAll(dir, 0o755))
	}

	return n
}

func TestIngestHappyPath(t *testing.T) {
	n := testIngestor(t)

	res, err := n.Ingest(context.Background(), fileHeader(t, "clip.mp4", []byte("videodata")), nil)
	require.NoError(t, err)

	assert.InDelta(t, 0.8, res.Duration, 0.001)
	assert.NotEmpty(t, res.FileName)
	assert.NotEmpty(t, res.Thumbnail)

	_, err = os.Stat(filepath.Join(n.VideoDir, res.FileName))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(n.ThumbDir, res.Thumbnail))
	assert.NoError(t, err)

	// temp dir must be clean afterwards
	entries, err := os.ReadDir(n.TempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestIngestRejectsTooLong(t *testing.T) {
	n := testIngestor(t)
	n.Probe = func(context.Context, string) (float64, error) { return 2.5, nil }

	_, err := n.Ingest(context.Background(), fileHeader(t, "clip.mp4", []byte("videodata")), nil)
	require.ErrorIs(t, err, ErrTooLong)

	// no artifact survives a rejection
	for _, dir := range []string{n.VideoDir, n.ThumbDir, n.TempDir} {
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries, dir)
	}
}

func TestIngestProbeFailure(t *testing.T) {
	n := testIngestor(t)
	n.Probe = func(context.Context, string) (float64, error) { return 0, errors.New("ffprobe exploded") }

	_, err := n.Ingest(context.Background(), fileHeader(t, "clip.mp4", []byte("videodata")), nil)
	require.Error(t, err)

	entries, readErr := os.ReadDir(n.TempDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestIngestTranscodeFailureStoresRaw(t *testing.T) {
	n := testIngestor(t)
	n.Transcode = func(context.Context, string, string, bool) error { return errors.New("ffmpeg exploded") }

	res, err := n.Ingest(context.Background(), fileHeader(t, "clip.mp4", []byte("rawbytes")), nil)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(n.VideoDir, res.FileName))
	require.NoError(t, err)
	assert.Equal(t, "rawbytes", string(data))
}

func TestIngestThumbnailFailureDegrades(t *testing.T) {
	n := testIngestor(t)
	n.Thumbnail = func(context.Context, string, string) error { return errors.New("no frames") }

	res, err := n.Ingest(context.Background(), fileHeader(t, "clip.mp4", []byte("videodata")), nil)
	require.NoError(t, err)
	assert.Empty(t, res.Thumbnail)
	assert.NotEmpty(t, res.FileName)
}

func TestIngestProvidedThumbnail(t *testing.T) {
	n := testIngestor(t)
	n.Thumbnail = func(context.Context, string, string) error {
		t.Fatal("frame extraction must not run when a thumbnail is provided")
		return nil
	}

	res, err := n.Ingest(context.Background(),
		fileHeader(t, "clip.mp4", []byte("videodata")),
		fileHeader(t, "cover.JPG", []byte("jpegdata")))
	require.NoError(t, err)

	assert.Equal(t, ".jpg", filepath.Ext(res.Thumbnail))
	data, err := os.ReadFile(filepath.Join(n.ThumbDir, res.Thumbnail))
	require.NoError(t, err)
	assert.Equal(t, "jpegdata", string(data))
}
