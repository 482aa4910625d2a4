package dialogue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"voicedesk/models"
	"voicedesk/utils"

	"github.com/go-redis/redis/v8"
)

// SessionStore is the keyed memory the dialogue machine relies on. All
// operations for one call identifier are linearizable with respect to each
// other; different call identifiers are fully independent.
type SessionStore interface {
	// Get returns the session for callID, or ErrSessionNotFound.
	Get(ctx context.Context, callID string) (*models.CallSession, error)
	// Update runs fn on the stored session under the call's lock and
	// persists the mutated copy. When no session exists it either creates
	// one (create=true) or returns ErrSessionNotFound. An error from fn
	// aborts the write.
	Update(ctx context.Context, callID string, create bool, fn func(*models.CallSession) error) (*models.CallSession, error)
	// Delete removes the session. Deleting an absent session is a no-op.
	Delete(ctx context.Context, callID string) error
}

// RedisSessionStore keeps sessions as JSON blobs with a TTL, so abandoned
// calls age out without an explicit sweeper. A per-call mutex serializes
// read-modify-write cycles for the same call identifier.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration

	mu    sync.Mutex
	locks map[string]*callLock
}

type callLock struct {
	sync.Mutex
	refs int
}

// NewRedisSessionStore returns a store writing under utils.SessionKeyPrefix
// with the given TTL; ttl<=0 falls back to utils.SessionTTL.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = utils.SessionTTL
	}
	return &RedisSessionStore{
		client: client,
		ttl:    ttl,
		locks:  make(map[string]*callLock),
	}
}

// acquire takes the per-call lock, creating it on first use. The release
// func drops the lock and frees it once no turn is waiting on it.
func (s *RedisSessionStore) acquire(callID string) (release func()) {
	s.mu.Lock()
	l, ok := s.locks[callID]
	if !ok {
		l = &callLock{}
		s.locks[callID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, callID)
		}
		s.mu.Unlock()
	}
}

func (s *RedisSessionStore) key(callID string) string {
	return utils.SessionKeyPrefix + callID
}

func (s *RedisSessionStore) load(ctx context.Context, callID string) (*models.CallSession, error) {
	data, err := s.client.Get(ctx, s.key(callID)).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load call session: %w", err)
	}
	var sess models.CallSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to parse call session: %w", err)
	}
	return &sess, nil
}

func (s *RedisSessionStore) Get(ctx context.Context, callID string) (*models.CallSession, error) {
	release := s.acquire(callID)
	defer release()
	return s.load(ctx, callID)
}

func (s *RedisSessionStore) Update(ctx context.Context, callID string, create bool, fn func(*models.CallSession) error) (*models.CallSession, error) {
	release := s.acquire(callID)
	defer release()

	sess, err := s.load(ctx, callID)
	if errors.Is(err, ErrSessionNotFound) {
		if !create {
			return nil, ErrSessionNotFound
		}
		now := time.Now().UTC()
		sess = &models.CallSession{CallID: callID, CreatedAt: now, UpdatedAt: now}
	} else if err != nil {
		return nil, err
	}

	if err := fn(sess); err != nil {
		return nil, err
	}
	sess.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal call session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(callID), data, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store call session: %w", err)
	}
	return sess, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, callID string) error {
	release := s.acquire(callID)
	defer release()

	if err := s.client.Del(ctx, s.key(callID)).Err(); err != nil {
		return fmt.Errorf("failed to delete call session: %w", err)
	}
	return nil
}
