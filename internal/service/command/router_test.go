package command

import (
	"context"
	"errors"
	"testing"

	"github.com/sandevgo/roombot/internal/core"
	"github.com/sandevgo/roombot/internal/service/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMemory struct {
	gotUser   string
	gotLimit  int
	forgetErr error
	forgotten []string
}

func (f *fakeMemory) RecentContext(_ context.Context, userID string, limit int) string {
	f.gotUser = userID
	f.gotLimit = limit
	return "Recent conversation history with " + userID + ":"
}

func (f *fakeMemory) Forget(_ context.Context, userID string) error {
	f.forgotten = append(f.forgotten, userID)
	return f.forgetErr
}

func newTestRouter(mem MemoryService) *Router {
	return New(NewCommands("gemini", "gemini-2.0-flash-exp", mem))
}

func TestRouter_NotACommand(t *testing.T) {
	r := newTestRouter(&fakeMemory{})

	for _, input := range []string{"hello", "", "what is 1/2?", "  hi /help"} {
		reply, ok := r.Execute(context.Background(), "alice", input)
		assert.False(t, ok, input)
		assert.Empty(t, reply)
	}
}

func TestRouter_UnknownCommand(t *testing.T) {
	r := newTestRouter(&fakeMemory{})

	reply, ok := r.Execute(context.Background(), "alice", "/dance now")
	assert.True(t, ok)
	assert.Contains(t, reply, "Unknown command: /dance")
}

func TestRouter_ListCommandsSorted(t *testing.T) {
	r := newTestRouter(&fakeMemory{})

	var names []string
	for _, cmd := range r.ListCommands() {
		names = append(names, cmd.Name())
	}
	assert.Equal(t, []string{"forget", "help", "memory", "model"}, names)
}

func TestHelpCommand(t *testing.T) {
	r := newTestRouter(&fakeMemory{})

	reply, ok := r.Execute(context.Background(), "alice", "/HELP")
	require.True(t, ok)
	for _, name := range []string{"/forget", "/help", "/memory", "/model"} {
		assert.Contains(t, reply, name)
	}
}

func TestMemoryCommand(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantLimit int
		wantUsage bool
	}{
		{name: "default limit", input: "/memory", wantLimit: core.DefaultContextLimit},
		{name: "explicit limit", input: "/memory 12", wantLimit: 12},
		{name: "capped limit", input: "/memory 99", wantLimit: core.MaxHistoryPerUser},
		{name: "invalid limit", input: "/memory lots", wantUsage: true},
		{name: "zero limit", input: "/memory 0", wantUsage: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := &fakeMemory{}
			r := newTestRouter(mem)

			reply, ok := r.Execute(context.Background(), "bob", tt.input)
			require.True(t, ok)

			if tt.wantUsage {
				assert.Contains(t, reply, "/memory [count]")
				assert.Empty(t, mem.gotUser)
				return
			}
			assert.Equal(t, "bob", mem.gotUser)
			assert.Equal(t, tt.wantLimit, mem.gotLimit)
			assert.Contains(t, reply, "Recent conversation history with bob:")
		})
	}
}

func TestForgetCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mem := &fakeMemory{}
		reply, ok := newTestRouter(mem).Execute(ctx, "carol", "/forget")
		require.True(t, ok)
		assert.Contains(t, reply, "erased")
		assert.Equal(t, []string{"carol"}, mem.forgotten)
	})

	t.Run("remote disabled", func(t *testing.T) {
		mem := &fakeMemory{forgetErr: memory.ErrRemoteMemoryDisabled}
		reply, ok := newTestRouter(mem).Execute(ctx, "carol", "/forget")
		require.True(t, ok)
		assert.Contains(t, reply, "not enabled")
	})

	t.Run("failure", func(t *testing.T) {
		mem := &fakeMemory{forgetErr: errors.New("service down")}
		reply, ok := newTestRouter(mem).Execute(ctx, "carol", "/forget")
		require.True(t, ok)
		assert.Contains(t, reply, "/forget failed")
		assert.Contains(t, reply, "service down")
	})
}

func TestRouter_IsPrivate(t *testing.T) {
	r := newTestRouter(&fakeMemory{})

	tests := []struct {
		input string
		want  bool
	}{
		{"/memory", true},
		{"  /MEMORY 10", true},
		{"/forget", true},
		{"/help", false},
		{"/model", false},
		{"/dance", false},
		{"memory", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.IsPrivate(tt.input), "%q", tt.input)
	}
}
