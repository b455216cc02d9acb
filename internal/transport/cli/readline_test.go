package cli

import (
	"context"
	"testing"

	"github.com/sandevgo/roombot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	msgs []core.InboundMessage
}

func (h *recordingHandler) Handle(_ context.Context, msg core.InboundMessage) (string, bool) {
	h.msgs = append(h.msgs, msg)
	if string(msg.Payload) == "skip" {
		return "", false
	}
	return "You said `" + string(msg.Payload) + "`", true
}

func TestRespond(t *testing.T) {
	h := &recordingHandler{}
	ctx := context.Background()

	reply, ok := respond(ctx, h, "local-user", "hello")
	require.True(t, ok)
	assert.Contains(t, reply, "You said")
	assert.Contains(t, reply, "hello")
	assert.NotContains(t, reply, "`")

	_, ok = respond(ctx, h, "local-user", "skip")
	assert.False(t, ok)

	_, ok = respond(ctx, h, "local-user", "")
	assert.False(t, ok)

	require.Len(t, h.msgs, 2)
	assert.Equal(t, "local-user", h.msgs[0].SenderIdentity)
	assert.Equal(t, "cli", h.msgs[0].Topic)
	assert.NotEmpty(t, h.msgs[0].ID)
}
