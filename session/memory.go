package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/google/uuid"
)

type (
	memStore struct {
		// serializes read-modify-write cycles; bigcache itself is
		// safe for concurrent access but has no compare-and-swap.
		mu    sync.Mutex
		cache *bigcache.BigCache
	}
)

// NewMemoryStore keeps sessions in an in-process cache. Entries
// expire ttl after their last write, which doubles as the session
// lifetime policy for single-instance deployments.
func NewMemoryStore(ttl time.Duration) (Store, error) {
	cache, err := bigcache.NewBigCache(bigcache.DefaultConfig(ttl))
	if err != nil {
		return nil, fmt.Errorf("session: unable to build cache, cause %w", err)
	}
	return &memStore{cache: cache}, nil
}

func (m *memStore) Create(ctx context.Context, sess Session) (string, error) {
	payload, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for {
		token := uuid.NewString()
		if _, err := m.cache.Get(token); err == nil {
			// live token, draw again
			continue
		}
		return token, m.cache.Set(token, payload)
	}
}

func (m *memStore) Get(ctx context.Context, token string) (Session, bool, error) {
	buf, err := m.cache.Get(token)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return Session{}, false, nil
	} else if err != nil {
		return Session{}, false, err
	}
	var sess Session
	if err := json.Unmarshal(buf, &sess); err != nil {
		return Session{}, false, err
	}
	return sess, true, nil
}

func (m *memStore) UpdateProfileImage(ctx context.Context, token, image string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf, err := m.cache.Get(token)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return Session{}, ErrNoSession
	} else if err != nil {
		return Session{}, err
	}
	var sess Session
	if err := json.Unmarshal(buf, &sess); err != nil {
		return Session{}, err
	}
	sess.ProfileImage = image
	payload, err := json.Marshal(sess)
	if err != nil {
		return Session{}, err
	}
	return sess, m.cache.Set(token, payload)
}

func (m *memStore) Destroy(ctx context.Context, token string) error {
	// under the same lock as UpdateProfileImage, otherwise a delete
	// landing inside its read-modify-write resurrects the session
	m.mu.Lock()
	defer m.mu.Unlock()
	err := m.cache.Delete(token)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return nil
	}
	return err
}
