// Package session provides SessionStore implementations: the per-session
// key/value storage behind the comparison set.
package session

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/raisket/marketplace/internal/domain"
)

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// checkSession rejects session ids that are unsafe as file names or keys
func checkSession(session string) error {
	if !sessionIDPattern.MatchString(session) {
		return fmt.Errorf("%w: bad session id", domain.ErrInvalidRequest)
	}
	return nil
}

// MemoryStore keeps session items in process memory
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]map[string]string
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]map[string]string)}
}

// GetItem returns the value stored under key for session
func (s *MemoryStore) GetItem(ctx context.Context, session, key string) (string, error) {
	if err := checkSession(session); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.items[session][key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return value, nil
}

// SetItem stores value under key for session
func (s *MemoryStore) SetItem(ctx context.Context, session, key, value string) error {
	if err := checkSession(session); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.items[session]
	if !ok {
		bucket = make(map[string]string)
		s.items[session] = bucket
	}
	bucket[key] = value
	return nil
}

// RemoveItem deletes key for session; absent keys are not an error
func (s *MemoryStore) RemoveItem(ctx context.Context, session, key string) error {
	if err := checkSession(session); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if bucket, ok := s.items[session]; ok {
		delete(bucket, key)
		if len(bucket) == 0 {
			delete(s.items, session)
		}
	}
	return nil
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}
