// internal/store/redis.go
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/philliparaujo/everdell/engine"
)

// RedisStore persists state documents in Redis and fans out saves through
// pub/sub, so every service replica sees every transition.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func stateKey(gameID uuid.UUID) string {
	return "game:" + gameID.String() + ":state"
}

func stateChannel(gameID uuid.UUID) string {
	return "game:" + gameID.String() + ":updates"
}

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context, gameID uuid.UUID) (*engine.GameState, error) {
	data, err := s.client.Get(ctx, stateKey(gameID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get %s: %w", stateKey(gameID), err)
	}
	state := &engine.GameState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("store: unmarshal state for %s: %w", gameID, err)
	}
	return state, nil
}

// Save implements Store. The document write and the notification are two
// steps; a subscriber that misses a publish can always Load the latest.
func (s *RedisStore) Save(ctx context.Context, gameID uuid.UUID, state *engine.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("store: marshal state for %s: %w", gameID, err)
	}
	if err := s.client.Set(ctx, stateKey(gameID), data, 0).Err(); err != nil {
		return fmt.Errorf("store: set %s: %w", stateKey(gameID), err)
	}
	if err := s.client.Publish(ctx, stateChannel(gameID), data).Err(); err != nil {
		return fmt.Errorf("store: publish update for %s: %w", gameID, err)
	}
	return nil
}

// Subscribe implements Store.
func (s *RedisStore) Subscribe(ctx context.Context, gameID uuid.UUID, fn func(*engine.GameState)) (CancelFunc, error) {
	sub := s.client.Subscribe(ctx, stateChannel(gameID))
	// Force the subscription to establish before returning.
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("store: subscribe to %s: %w", stateChannel(gameID), err)
	}

	go func() {
		for msg := range sub.Channel() {
			state := &engine.GameState{}
			if err := json.Unmarshal([]byte(msg.Payload), state); err != nil {
				logrus.Warnf("store: dropping malformed update for %s: %v", gameID, err)
				continue
			}
			fn(state)
		}
	}()

	return func() { sub.Close() }, nil
}
