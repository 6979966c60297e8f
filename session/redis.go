package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

type (
	redisStore struct {
		rdb *redis.Client
		ttl time.Duration
	}
)

// NewRedisStore keeps sessions in redis so multiple instances can
// share them. Keys carry the ttl; redis expiry is the session
// lifetime policy.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) Store {
	return &redisStore{rdb: rdb, ttl: ttl}
}

func (r *redisStore) Create(ctx context.Context, sess Session) (string, error) {
	payload, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}
	for {
		token := uuid.NewString()
		// SetNX loses the race against a live token instead of
		// overwriting it.
		ok, err := r.rdb.SetNX(ctx, sessionKey(token), payload, r.ttl).Result()
		if err != nil {
			return "", fmt.Errorf("session: unable to store session, cause %w", err)
		}
		if ok {
			return token, nil
		}
	}
}

func (r *redisStore) Get(ctx context.Context, token string) (Session, bool, error) {
	buf, err := r.rdb.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, false, nil
	} else if err != nil {
		return Session{}, false, fmt.Errorf("session: unable to load session, cause %w", err)
	}
	var sess Session
	if err := json.Unmarshal(buf, &sess); err != nil {
		return Session{}, false, err
	}
	return sess, true, nil
}

// updateRetries bounds how often an optimistic update is retried when
// the key changes under it.
const updateRetries = 5

func (r *redisStore) UpdateProfileImage(ctx context.Context, token, image string) (Session, error) {
	key := sessionKey(token)
	var sess Session
	update := func(tx *redis.Tx) error {
		buf, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNoSession
		} else if err != nil {
			return fmt.Errorf("session: unable to load session, cause %w", err)
		}
		if err := json.Unmarshal(buf, &sess); err != nil {
			return err
		}
		sess.ProfileImage = image
		payload, err := json.Marshal(sess)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			// KeepTTL: updating the picture should not extend the login
			pipe.Set(ctx, key, payload, redis.KeepTTL)
			return nil
		})
		return err
	}
	for i := 0; i < updateRetries; i++ {
		// WATCH aborts the write when the key is touched in between,
		// so a concurrent Destroy cannot be undone by this Set.
		err := r.rdb.Watch(ctx, update, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return Session{}, err
		}
		return sess, nil
	}
	return Session{}, fmt.Errorf("session: unable to update session, key kept changing")
}

func (r *redisStore) Destroy(ctx context.Context, token string) error {
	err := r.rdb.Del(ctx, sessionKey(token)).Err()
	if err != nil {
		return fmt.Errorf("session: unable to destroy session, cause %w", err)
	}
	return nil
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}
