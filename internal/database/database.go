// internal/database/database.go
package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// DB is the shared connection pool. Nil until Connect succeeds; callers
// must check before use so the service runs without Postgres in dev.
var DB *pgxpool.Pool

// Connect opens the pool and verifies the connection.
func Connect(ctx context.Context, databaseURL string) error {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("database: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("database: ping: %w", err)
	}
	DB = pool
	logrus.Info("database: connected")
	return nil
}

// UpsertInitialGameState stores the post-setup snapshot for a game,
// replacing any earlier one. Used for replay and audit.
func UpsertInitialGameState(ctx context.Context, gameID uuid.UUID, snapshot interface{}) error {
	if DB == nil {
		return fmt.Errorf("database: not connected")
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("database: marshal initial snapshot: %w", err)
	}
	_, err = DB.Exec(ctx, `
		INSERT INTO game_states (game_id, initial_state, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (game_id) DO UPDATE SET initial_state = EXCLUDED.initial_state
	`, gameID, data)
	if err != nil {
		return fmt.Errorf("database: upsert initial state for %s: %w", gameID, err)
	}
	return nil
}

// StoreFinalGameState records the terminal snapshot and per-seat scores.
func StoreFinalGameState(ctx context.Context, gameID uuid.UUID, snapshot interface{}) error {
	if DB == nil {
		return fmt.Errorf("database: not connected")
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("database: marshal final snapshot: %w", err)
	}
	_, err = DB.Exec(ctx, `
		UPDATE game_states SET final_state = $2, finished_at = NOW()
		WHERE game_id = $1
	`, gameID, data)
	if err != nil {
		return fmt.Errorf("database: store final state for %s: %w", gameID, err)
	}
	return nil
}

// LogCompletedTurn appends a turn boundary row, useful for timeline queries
// without unpacking full snapshots.
func LogCompletedTurn(ctx context.Context, gameID uuid.UUID, turnIndex int, actorID uuid.UUID) error {
	if DB == nil {
		return fmt.Errorf("database: not connected")
	}
	_, err := DB.Exec(ctx, `
		INSERT INTO game_turns (game_id, turn_index, actor_id, completed_at)
		VALUES ($1, $2, $3, NOW())
	`, gameID, turnIndex, actorID)
	if err != nil {
		return fmt.Errorf("database: log turn %d for %s: %w", turnIndex, gameID, err)
	}
	return nil
}
