package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"oneclip/clip-api/model"
)

type RoleStore struct {
	path string
	mu   sync.Mutex
}

// OpenRoles opens the admins document, creating a default one with empty
// lists when the file does not exist yet.
func OpenRoles(path string) (*RoleStore, error) {
	s := &RoleStore{path: path}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := s.Save(&model.Roles{Admins: []string{}, Moderators: []string{}}); err != nil {
			return nil, fmt.Errorf("failed to create default roles document, %w", err)
		}
	}

	return s, nil
}

func (s *RoleStore) Load() (*model.Roles, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &model.Roles{}, nil
		}

		return nil, err
	}

	roles := &model.Roles{}
	if err := json.Unmarshal(data, roles); err != nil {
		return nil, fmt.Errorf("malformed roles document, %w", err)
	}

	return roles, nil
}

func (s *RoleStore) Save(roles *model.Roles) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeDoc(s.path, roles)
}

// writeDoc rewrites a whole document, pretty-printed like the originals.
func writeDoc(path string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
