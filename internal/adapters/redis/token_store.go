package redis

// Package redis provides Redis-based adapters for the ui-gateway.

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// TokenStore is a durable single-slot holder for one session's backend bearer
// token. The slot survives gateway restarts; no TTL is applied because token
// expiry is discovered by a rejected backend call, not by local bookkeeping.
type TokenStore struct {
	client redis.UniversalClient
	key    string
}

// NewTokenStore creates a token store for the given gateway session ID.
func NewTokenStore(client redis.UniversalClient, sessionID string) *TokenStore {
	return &TokenStore{
		client: client,
		key:    "token:" + sessionID,
	}
}

// Set stores the token, replacing any previous value.
func (s *TokenStore) Set(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if err := s.client.Set(ctx, s.key, token, 0).Err(); err != nil {
		return fmt.Errorf("redis set token: %w", err)
	}
	return nil
}

// Clear removes the token. Clearing an empty slot is not an error.
func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del token: %w", err)
	}
	return nil
}

// Get returns the stored token, or "" when the slot is empty.
func (s *TokenStore) Get(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis get token: %w", err)
	}
	return token, nil
}
