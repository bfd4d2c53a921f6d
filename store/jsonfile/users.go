// Package jsonfile implements the store interfaces over pretty-printed
// JSON documents, one file per store. Every save rewrites the file in
// full; a mutex serializes writers within the process. Concurrent
// processes still race last-write-wins, which the single-process
// deployment accepts.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"oneclip/clip-api/model"

	"go.uber.org/zap"
)

type UserStore struct {
	path string
	mu   sync.Mutex
}

// OpenUsers opens the users document and runs the legacy-record migration
// once: records stored as a bare password-hash string become full records,
// and missing collection fields are backfilled. The upgraded document is
// persisted immediately so later loads can decode it directly.
func OpenUsers(path string) (*UserStore, error) {
	s := &UserStore{path: path}

	users, migrated, err := s.loadMigrating()
	if err != nil {
		return nil, fmt.Errorf("failed to open users store, %w", err)
	}

	if migrated {
		zap.L().Info("Upgraded legacy user records", zap.String("path", path))

		if err := s.Save(users); err != nil {
			return nil, fmt.Errorf("failed to persist upgraded user records, %w", err)
		}
	}

	return s, nil
}

func (s *UserStore) Load() (map[string]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, _, err := s.load()
	return users, err
}

func (s *UserStore) Save(users map[string]*model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeDoc(s.path, users)
}

func (s *UserStore) loadMigrating() (map[string]*model.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

func (s *UserStore) load() (map[string]*model.User, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]*model.User{}, false, nil
		}

		return nil, false, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false, fmt.Errorf("malformed users document, %w", err)
	}

	users := make(map[string]*model.User, len(raw))
	migrated := false

	for name, entry := range raw {
		// Ancient records are a bare password-hash string
		var hash string
		if err := json.Unmarshal(entry, &hash); err == nil {
			users[name] = &model.User{Password: hash}
			users[name].Normalize()
			migrated = true
			continue
		}

		u := &model.User{}
		if err := json.Unmarshal(entry, u); err != nil {
			return nil, false, fmt.Errorf("malformed user record %q, %w", name, err)
		}

		if u.Normalize() {
			migrated = true
		}

		users[name] = u
	}

	return users, migrated, nil
}
