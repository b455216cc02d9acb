package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sandevgo/roombot/internal/core"
	"github.com/sandevgo/roombot/pkg/log"
)

// ErrRemoteMemoryDisabled is returned by operations that need the hosted
// memory service when none is configured.
var ErrRemoteMemoryDisabled = errors.New("remote memory is not configured")

// Memory combines the local interaction store with the optional hosted
// memory service.
type Memory struct {
	store       core.InteractionStore
	remote      core.RemoteMemory
	prompter    *SysPrompt
	limit       int
	searchLimit int
}

// NewMemory creates the memory service. remote may be nil.
func NewMemory(
	store core.InteractionStore,
	remote core.RemoteMemory,
	prompter *SysPrompt,
	limit int,
	searchLimit int,
) *Memory {
	if limit <= 0 {
		limit = core.DefaultContextLimit
	}
	return &Memory{
		store:       store,
		remote:      remote,
		prompter:    prompter,
		limit:       limit,
		searchLimit: searchLimit,
	}
}

// GetContext renders the local history of userID and, when configured,
// the hosted memories relevant to query.
func (s *Memory) GetContext(ctx context.Context, userID, query string) string {
	local := s.store.GetContext(ctx, userID, s.limit)

	remote := s.searchRemote(ctx, userID, query)
	if remote == "" {
		return local
	}
	return local + "\n\n" + remote
}

func (s *Memory) searchRemote(ctx context.Context, userID, query string) string {
	if s.remote == nil || strings.TrimSpace(query) == "" {
		return ""
	}

	records, err := s.remote.Search(ctx, query, userID, s.searchLimit)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("user", userID).Msg("remote memory search failed")
		return ""
	}

	var facts []string
	for _, r := range records {
		if m := strings.TrimSpace(r.Memory); m != "" {
			facts = append(facts, "- "+m)
		}
	}
	if len(facts) == 0 {
		return ""
	}
	return "Relevant memories:\n" + strings.Join(facts, "\n")
}

// BuildPrompt composes the completion prompt for a message from userID.
func (s *Memory) BuildPrompt(ctx context.Context, userID, message string) string {
	var sb strings.Builder
	if system := s.prompter.Build(); system != "" {
		sb.WriteString(system)
		sb.WriteString("\n\n")
	}
	sb.WriteString(s.GetContext(ctx, userID, message))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "A user named %s just sent you this message: %q", userID, message)
	return sb.String()
}

// Remember records an exchange locally and, when configured, remotely.
func (s *Memory) Remember(ctx context.Context, userID, message, reply string) {
	s.store.SaveInteraction(ctx, userID, message, reply)

	if s.remote == nil {
		return
	}
	msgs := []core.Message{
		{Role: core.RoleUser, Content: message},
		{Role: core.RoleAssistant, Content: reply},
	}
	if err := s.remote.Add(ctx, msgs, userID, map[string]any{"source": core.BotName}); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("user", userID).Msg("failed to add remote memory")
	}
}

// Forget removes the hosted memories of userID. The local history is
// bounded and has no deletion path.
func (s *Memory) Forget(ctx context.Context, userID string) error {
	if s.remote == nil {
		return ErrRemoteMemoryDisabled
	}
	if err := s.remote.DeleteAll(ctx, userID); err != nil {
		return fmt.Errorf("failed to forget %s: %w", userID, err)
	}
	return nil
}

// RecentContext renders the last limit local interactions of userID.
func (s *Memory) RecentContext(ctx context.Context, userID string, limit int) string {
	if limit <= 0 {
		limit = s.limit
	}
	return s.store.GetContext(ctx, userID, limit)
}

func (s *Memory) RemoteEnabled() bool {
	return s.remote != nil
}
