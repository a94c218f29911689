package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mario2904/brisca-go/internal/game"
	"go.uber.org/zap"
)

const matchesSchema = `
CREATE TABLE IF NOT EXISTS matches (
	id          UUID PRIMARY KEY,
	game_id     BIGINT NOT NULL,
	players     TEXT[] NOT NULL,
	winners     TEXT[] NOT NULL,
	scores      INTEGER[] NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL
)`

const insertMatch = `
INSERT INTO matches (id, game_id, players, winners, scores, finished_at)
VALUES ($1, $2, $3, $4, $5, $6)`

// MatchRepository persists finished-match results. It implements
// game.MatchRecorder.
type MatchRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewMatchRepository creates a match repository on top of db.
func NewMatchRepository(db *DB, logger *zap.Logger) *MatchRepository {
	return &MatchRepository{db: db, logger: logger}
}

// EnsureSchema creates the matches table if it does not exist yet.
func (r *MatchRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.pool.Exec(ctx, matchesSchema); err != nil {
		return fmt.Errorf("ensure matches schema: %w", err)
	}
	return nil
}

// RecordMatch inserts one row per finished game.
func (r *MatchRepository) RecordMatch(ctx context.Context, result game.Result) error {
	scores := make([]int32, len(result.Scores))
	for i, s := range result.Scores {
		scores[i] = int32(s)
	}

	_, err := r.db.pool.Exec(ctx, insertMatch,
		uuid.New().String(),
		result.GameID,
		result.Players,
		result.Winners,
		scores,
		result.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	r.logger.Debug("match recorded",
		zap.Int64("game_id", result.GameID),
		zap.Strings("winners", result.Winners),
	)
	return nil
}
