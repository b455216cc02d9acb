package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/sandevgo/roombot/internal/core"
	"github.com/sandevgo/roombot/pkg/log"
)

// Interactions is an InteractionStore kept in a sqlite table. Every user
// keeps at most maxHistory rows; older ones are deleted on insert.
type Interactions struct {
	db         *sql.DB
	path       string
	maxHistory int
	now        func() time.Time
}

func NewInteractions(db *sql.DB, path string) *Interactions {
	return &Interactions{
		db:         db,
		path:       path,
		maxHistory: core.MaxHistoryPerUser,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Open creates the database at path, migrates it and wraps it in a store.
func Open(ctx context.Context, path string) (*Interactions, error) {
	db, err := NewDB(ctx, path)
	if err != nil {
		return nil, &core.PersistenceError{Op: "open", Path: path, Err: err}
	}
	return NewInteractions(db, path), nil
}

func (s *Interactions) GetContext(ctx context.Context, userID string, limit int) string {
	return core.RenderContext(userID, s.History(ctx, userID), limit)
}

// History returns the stored interactions of userID, oldest first. Read
// failures are logged and reported as an empty history.
func (s *Interactions) History(ctx context.Context, userID string) []core.Interaction {
	history, err := s.history(ctx, userID)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("user", userID).Msg("failed to read interaction history")
		return nil
	}
	return history
}

func (s *Interactions) history(ctx context.Context, userID string) ([]core.Interaction, error) {
	query := `SELECT user_message, bot_response, created_at FROM interactions WHERE user_id = ? ORDER BY id DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, userID, s.maxHistory)
	if err != nil {
		return nil, &core.PersistenceError{Op: "query", Path: s.path, Err: err}
	}
	defer rows.Close()

	var history []core.Interaction
	for rows.Next() {
		var it core.Interaction
		var createdAt string
		if err := rows.Scan(&it.UserMessage, &it.BotResponse, &createdAt); err != nil {
			return nil, &core.PersistenceError{Op: "scan", Path: s.path, Err: err}
		}
		it.UserID = userID
		it.Timestamp, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, &core.PersistenceError{Op: "decode", Path: s.path, Err: err}
		}
		history = append(history, it)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.PersistenceError{Op: "query", Path: s.path, Err: err}
	}

	// Rows arrive newest first.
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	return history, nil
}

func (s *Interactions) SaveInteraction(ctx context.Context, userID, userMessage, botResponse string) {
	if err := s.save(ctx, userID, userMessage, botResponse); err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("user", userID).Msg("failed to persist interaction")
	}
}

func (s *Interactions) save(ctx context.Context, userID, userMessage, botResponse string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &core.PersistenceError{Op: "begin", Path: s.path, Err: err}
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO interactions (user_id, user_message, bot_response, created_at) VALUES (?, ?, ?, ?)`,
		userID, userMessage, botResponse, s.now().Format(time.RFC3339Nano),
	)
	if err != nil {
		return &core.PersistenceError{Op: "insert", Path: s.path, Err: err}
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM interactions
		WHERE user_id = ? AND id NOT IN (
			SELECT id FROM interactions WHERE user_id = ? ORDER BY id DESC LIMIT ?
		)`, userID, userID, s.maxHistory)
	if err != nil {
		return &core.PersistenceError{Op: "trim", Path: s.path, Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &core.PersistenceError{Op: "commit", Path: s.path, Err: err}
	}
	return nil
}

func (s *Interactions) Close() error {
	return s.db.Close()
}
