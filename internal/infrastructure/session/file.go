package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/raisket/marketplace/internal/domain"
)

// FileStore keeps one pretty-printed JSON file per session under a directory
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the directory if needed and returns a store rooted there
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(session string) string {
	return filepath.Join(s.dir, session+".json")
}

func (s *FileStore) read(session string) (map[string]string, error) {
	raw, err := os.ReadFile(s.path(session))
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	items := map[string]string{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode session file: %w", err)
	}
	return items, nil
}

func (s *FileStore) write(session string, items map[string]string) error {
	if len(items) == 0 {
		if err := os.Remove(s.path(session)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove session file: %w", err)
		}
		return nil
	}

	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	// write then rename so readers never see a partial file
	tmp := s.path(session) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path(session)); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

// GetItem returns the value stored under key for session
func (s *FileStore) GetItem(ctx context.Context, session, key string) (string, error) {
	if err := checkSession(session); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read(session)
	if err != nil {
		return "", err
	}
	value, ok := items[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return value, nil
}

// SetItem stores value under key for session
func (s *FileStore) SetItem(ctx context.Context, session, key, value string) error {
	if err := checkSession(session); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read(session)
	if err != nil {
		return err
	}
	items[key] = value
	return s.write(session, items)
}

// RemoveItem deletes key for session; absent keys are not an error
func (s *FileStore) RemoveItem(ctx context.Context, session, key string) error {
	if err := checkSession(session); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read(session)
	if err != nil {
		return err
	}
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	return s.write(session, items)
}

// Close is a no-op
func (s *FileStore) Close() error {
	return nil
}
