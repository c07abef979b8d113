// internal/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Rdb is the shared Redis client. Nil until InitRedis succeeds; callers
// must check before use so the service degrades gracefully without Redis.
var Rdb *redis.Client

// InitRedis connects the shared client and verifies the connection.
func InitRedis(ctx context.Context, addr, password string, db int) error {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("cache: ping redis at %s: %w", addr, err)
	}
	Rdb = client
	logrus.Infof("cache: connected to redis at %s", addr)
	return nil
}

// GameActionRecord is one entry of the per-game action log consumed by the
// historian. ActionIndex orders records within a game.
type GameActionRecord struct {
	GameID        uuid.UUID              `json:"gameId"`
	ActionIndex   int                    `json:"actionIndex"`
	ActorID       uuid.UUID              `json:"actorId"` // Nil for game-driven events
	ActionType    string                 `json:"actionType"`
	ActionPayload map[string]interface{} `json:"actionPayload,omitempty"`
	Timestamp     int64                  `json:"timestamp"` // unix millis
}

// actionListKey is the per-game historian queue.
func actionListKey(gameID uuid.UUID) string {
	return "game:" + gameID.String() + ":actions"
}

// PublishGameAction appends a record to the game's action list and notifies
// the historian channel.
func PublishGameAction(ctx context.Context, rec GameActionRecord) error {
	if Rdb == nil {
		return fmt.Errorf("cache: redis client not initialized")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("cache: marshal action record: %w", err)
	}
	key := actionListKey(rec.GameID)
	if err := Rdb.RPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("cache: rpush %s: %w", key, err)
	}
	if err := Rdb.Publish(ctx, "historian:actions", data).Err(); err != nil {
		return fmt.Errorf("cache: publish historian notification: %w", err)
	}
	return nil
}

// FetchGameActions reads back the full ordered action log for a game.
func FetchGameActions(ctx context.Context, gameID uuid.UUID) ([]GameActionRecord, error) {
	if Rdb == nil {
		return nil, fmt.Errorf("cache: redis client not initialized")
	}
	raw, err := Rdb.LRange(ctx, actionListKey(gameID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("cache: lrange actions for %s: %w", gameID, err)
	}
	records := make([]GameActionRecord, 0, len(raw))
	for _, item := range raw {
		var rec GameActionRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			logrus.Warnf("cache: skipping malformed action record for %s: %v", gameID, err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
