// Package postgres keeps the bounded interaction history in PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sandevgo/roombot/internal/core"
	"github.com/sandevgo/roombot/pkg/log"
)

type Store struct {
	pool       *pgxpool.Pool
	maxHistory int
	now        func() time.Time
}

func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, &core.PersistenceError{Op: "connect", Err: err}
	}

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, &core.PersistenceError{Op: "init schema", Err: err}
	}

	return &Store{
		pool:       pool,
		maxHistory: core.MaxHistoryPerUser,
		now:        func() time.Time { return time.Now().UTC() },
	}, nil
}

func initSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS interactions (
			seq BIGSERIAL PRIMARY KEY,
			id TEXT NOT NULL UNIQUE,
			user_id TEXT NOT NULL,
			user_message TEXT NOT NULL,
			bot_response TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_user_seq ON interactions (user_id, seq);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema failed on %q: %w", stmt, err)
		}
	}
	return nil
}

func (s *Store) GetContext(ctx context.Context, userID string, limit int) string {
	return core.RenderContext(userID, s.History(ctx, userID), limit)
}

func (s *Store) History(ctx context.Context, userID string) []core.Interaction {
	history, err := s.history(ctx, userID)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("user", userID).Msg("failed to read interaction history")
		return nil
	}
	return history
}

func (s *Store) history(ctx context.Context, userID string) ([]core.Interaction, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT user_message, bot_response, created_at
		 FROM interactions WHERE user_id=$1 ORDER BY seq DESC LIMIT $2`,
		userID,
		s.maxHistory,
	)
	if err != nil {
		return nil, &core.PersistenceError{Op: "query", Err: err}
	}
	defer rows.Close()

	items := make([]core.Interaction, 0, s.maxHistory)
	for rows.Next() {
		it := core.Interaction{UserID: userID}
		if err := rows.Scan(&it.UserMessage, &it.BotResponse, &it.Timestamp); err != nil {
			return nil, &core.PersistenceError{Op: "scan", Err: err}
		}
		it.Timestamp = it.Timestamp.UTC()
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.PersistenceError{Op: "query", Err: err}
	}

	// Reverse into chronological order.
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items, nil
}

func (s *Store) SaveInteraction(ctx context.Context, userID, userMessage, botResponse string) {
	if err := s.save(ctx, userID, userMessage, botResponse); err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("user", userID).Msg("failed to persist interaction")
	}
}

func (s *Store) save(ctx context.Context, userID, userMessage, botResponse string) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO interactions (id, user_id, user_message, bot_response, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			uuid.NewString(), userID, userMessage, botResponse, s.now(),
		)
		if err != nil {
			return &core.PersistenceError{Op: "insert", Err: err}
		}

		_, err = tx.Exec(ctx,
			`DELETE FROM interactions
			 WHERE user_id=$1 AND seq NOT IN (
				SELECT seq FROM interactions WHERE user_id=$1 ORDER BY seq DESC LIMIT $2
			 )`,
			userID, s.maxHistory,
		)
		if err != nil {
			return &core.PersistenceError{Op: "trim", Err: err}
		}
		return nil
	})
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
