// Package jsonfile keeps the bounded per-user interaction history in a
// single JSON snapshot that is rewritten after every mutation.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sandevgo/roombot/internal/core"
	"github.com/sandevgo/roombot/pkg/log"
)

type Store struct {
	path       string
	maxHistory int
	now        func() time.Time

	// mu guards the map and the snapshot write. It does not make a
	// context-read, generate, save sequence atomic.
	mu        sync.Mutex
	histories map[string][]core.Interaction
}

// New creates a store backed by path and eagerly loads the snapshot.
func New(ctx context.Context, path string) *Store {
	s := &Store{
		path:       path,
		maxHistory: core.MaxHistoryPerUser,
		now:        func() time.Time { return time.Now().UTC() },
	}
	s.histories = s.Load(ctx)
	return s
}

// Load reads the snapshot. A missing, unreadable or malformed file yields an
// empty mapping; the failure is logged, never returned. Malformed users or
// entries inside an otherwise valid document are skipped one by one.
func (s *Store) Load(ctx context.Context) map[string][]core.Interaction {
	logger := log.FromCtx(ctx)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug().Str("path", s.path).Msg("no memory snapshot yet, starting empty")
		} else {
			logger.Warn().Err(&core.PersistenceError{Op: "read", Path: s.path, Err: err}).
				Msg("failed to read memory snapshot, starting empty")
		}
		return make(map[string][]core.Interaction)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warn().Err(&core.PersistenceError{Op: "decode", Path: s.path, Err: err}).
			Msg("malformed memory snapshot, starting empty")
		return make(map[string][]core.Interaction)
	}

	snapshot := make(map[string][]core.Interaction, len(raw))
	for userID, body := range raw {
		var entries []json.RawMessage
		if err := json.Unmarshal(body, &entries); err != nil {
			logger.Warn().Err(&core.PersistenceError{Op: "decode", Path: s.path, Err: err}).
				Str("user", userID).Msg("skipping malformed user history")
			continue
		}

		history := make([]core.Interaction, 0, len(entries))
		for i, item := range entries {
			it, err := decodeEntry(item)
			if err != nil {
				logger.Warn().Err(&core.PersistenceError{Op: "decode", Path: s.path, Err: err}).
					Str("user", userID).Int("index", i).Msg("skipping malformed interaction")
				continue
			}
			it.UserID = userID
			history = append(history, it)
		}
		if len(history) > 0 {
			snapshot[userID] = core.TrimHistory(history, s.maxHistory)
		}
	}

	logger.Debug().Str("path", s.path).Int("users", len(snapshot)).Msg("loaded memory snapshot")
	return snapshot
}

// GetContext renders the most recent limit interactions of userID.
func (s *Store) GetContext(ctx context.Context, userID string, limit int) string {
	return core.RenderContext(userID, s.History(ctx, userID), limit)
}

// History returns a copy of the stored history of userID, oldest first.
func (s *Store) History(_ context.Context, userID string) []core.Interaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.histories[userID]
	if len(history) == 0 {
		return nil
	}
	out := make([]core.Interaction, len(history))
	copy(out, history)
	return out
}

// SaveInteraction appends an exchange and rewrites the snapshot. A failed
// write is logged; the in-memory history keeps the exchange regardless.
func (s *Store) SaveInteraction(ctx context.Context, userID, userMessage, botResponse string) {
	if err := s.save(userID, userMessage, botResponse); err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("user", userID).
			Msg("failed to persist interaction, kept in memory only")
	}
}

func (s *Store) save(userID, userMessage, botResponse string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.histories[userID], core.Interaction{
		UserID:      userID,
		Timestamp:   s.now(),
		UserMessage: userMessage,
		BotResponse: botResponse,
	})
	s.histories[userID] = core.TrimHistory(history, s.maxHistory)

	return s.persist()
}

func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.histories, "", "  ")
	if err != nil {
		return &core.PersistenceError{Op: "encode", Path: s.path, Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &core.PersistenceError{Op: "mkdir", Path: s.path, Err: err}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return &core.PersistenceError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}

// entry mirrors core.Interaction on disk with the timestamp left as text,
// since older snapshots carry it without a UTC offset.
type entry struct {
	Timestamp   string `json:"timestamp"`
	UserMessage string `json:"user_message"`
	BotResponse string `json:"bot_response"`
}

func decodeEntry(data []byte) (core.Interaction, error) {
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return core.Interaction{}, err
	}
	ts, err := parseTimestamp(e.Timestamp)
	if err != nil {
		return core.Interaction{}, err
	}
	return core.Interaction{
		Timestamp:   ts,
		UserMessage: e.UserMessage,
		BotResponse: e.BotResponse,
	}, nil
}

// timestampLayouts are tried in order. Values without an offset are UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

func (s *Store) Close() error {
	return nil
}
