// Package validators contains validators found throughout the application
// that have been abstracted away from the main code
package validators

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/viper"
)

var (
	ErrNoFile              = errors.New("no file provided")
	ErrFileTooLarge        = errors.New("file too large")
	ErrFileTypeUnsupported = errors.New("unsupported file type")
)

// VideoFileValidator checks the uploaded clip before the ingest pipeline
// touches it. The Content-Type header check is cheap but spoofable, so
// the actual bytes are sniffed as well.
func VideoFileValidator(fh *multipart.FileHeader) (int, error) {
	if fh == nil {
		return http.StatusBadRequest, ErrNoFile
	}

	if ct := fh.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "video/") {
		return http.StatusBadRequest, ErrFileTypeUnsupported
	}

	if max := viper.GetInt64("upload.max_size"); max > 0 && fh.Size > max {
		return http.StatusRequestEntityTooLarge, ErrFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return http.StatusInternalServerError, err
	}
	defer f.Close()

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		return http.StatusInternalServerError, err
	}

	if !strings.HasPrefix(mime.String(), "video/") {
		return http.StatusBadRequest, ErrFileTypeUnsupported
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return http.StatusInternalServerError, err
	}

	return 0, nil
}
