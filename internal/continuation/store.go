package continuation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sublimeanger/vintifi-sub000/internal/models"
)

// Tokens are short-lived by design; a stale one should not resurrect a
// week-old wizard run.
const tokenTTL = 24 * time.Hour

// Store persists the {item id, step} continuation pair across the hand-off
// to the external photo studio. Consume is read-and-delete: a token can be
// observed at most once.
type Store interface {
	Save(ctx context.Context, token models.ContinuationToken) error
	Consume(ctx context.Context, ownerID string) (*models.ContinuationToken, error)
	Delete(ctx context.Context, ownerID string) error
}

func key(ownerID string) string {
	return "wizard:resume:" + ownerID
}

// RedisStore keeps continuation tokens in redis so they survive a full page
// reload and a server restart.
type RedisStore struct {
	RDB *redis.Client
}

func (s *RedisStore) Save(ctx context.Context, token models.ContinuationToken) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("continuation: marshal token: %w", err)
	}
	if err := s.RDB.Set(ctx, key(token.OwnerID), data, tokenTTL).Err(); err != nil {
		return fmt.Errorf("continuation: save token: %w", err)
	}
	return nil
}

func (s *RedisStore) Consume(ctx context.Context, ownerID string) (*models.ContinuationToken, error) {
	data, err := s.RDB.GetDel(ctx, key(ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("continuation: consume token: %w", err)
	}
	var token models.ContinuationToken
	if err := json.Unmarshal(data, &token); err != nil {
		// A corrupt token is already gone from redis; treat as absent.
		return nil, nil
	}
	return &token, nil
}

func (s *RedisStore) Delete(ctx context.Context, ownerID string) error {
	return s.RDB.Del(ctx, key(ownerID)).Err()
}

// MemoryStore is the in-process fallback used by tests.
type MemoryStore struct {
	mu     sync.Mutex
	tokens map[string]models.ContinuationToken
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]models.ContinuationToken)}
}

func (s *MemoryStore) Save(ctx context.Context, token models.ContinuationToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token.OwnerID] = token
	return nil
}

func (s *MemoryStore) Consume(ctx context.Context, ownerID string) (*models.ContinuationToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.tokens[ownerID]
	if !ok {
		return nil, nil
	}
	delete(s.tokens, ownerID)
	return &token, nil
}

func (s *MemoryStore) Delete(ctx context.Context, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, ownerID)
	return nil
}
