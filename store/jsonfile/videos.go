package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"oneclip/clip-api/model"
)

type VideoStore struct {
	path string
	mu   sync.Mutex
}

func OpenVideos(path string) *VideoStore {
	return &VideoStore{path: path}
}

func (s *VideoStore) Load() ([]*model.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []*model.Video{}, nil
		}

		return nil, err
	}

	var videos []*model.Video
	if err := json.Unmarshal(data, &videos); err != nil {
		return nil, fmt.Errorf("malformed videos document, %w", err)
	}

	return videos, nil
}

func (s *VideoStore) Save(videos []*model.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeDoc(s.path, videos)
}
