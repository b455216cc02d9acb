package telegram

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sandevgo/roombot/internal/core"
	"github.com/sandevgo/roombot/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

func TestAllowed(t *testing.T) {
	owner := &tele.User{ID: 42}
	stranger := &tele.User{ID: 7}

	assert.True(t, allowed(0, stranger))
	assert.True(t, allowed(42, owner))
	assert.False(t, allowed(42, stranger))
	assert.False(t, allowed(42, nil))
}

func TestSenderIdentity(t *testing.T) {
	assert.Equal(t, "alice", senderIdentity(&tele.User{ID: 1, Username: "alice"}))
	assert.Equal(t, "12345", senderIdentity(&tele.User{ID: 12345}))
	assert.Equal(t, core.UnknownIdentity, senderIdentity(nil))
}

func TestSplitHTML(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
		chunks int
	}{
		{name: "short", text: "hello", maxLen: 10, chunks: 1},
		{name: "split at newline", text: strings.Repeat("a", 8) + "\n" + strings.Repeat("b", 8), maxLen: 10, chunks: 2},
		{name: "hard split", text: strings.Repeat("x", 25), maxLen: 10, chunks: 3},
		{name: "multibyte", text: strings.Repeat("ж", 12), maxLen: 5, chunks: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := splitHTML(tt.text, tt.maxLen)
			assert.Len(t, chunks, tt.chunks)
			for _, c := range chunks {
				assert.LessOrEqual(t, len(c), tt.maxLen)
				assert.True(t, utf8.ValidString(c), "chunk %q splits a rune", c)
			}
		})
	}
}

type fakePoster struct {
	sent   []string
	failAt int
}

func (p *fakePoster) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	if p.failAt > 0 && len(p.sent)+1 == p.failAt {
		return nil, errors.New("bad gateway")
	}
	p.sent = append(p.sent, what.(string))
	return &tele.Message{}, nil
}

func TestSender_SendMarkdown(t *testing.T) {
	chat := &tele.Chat{ID: 100}

	t.Run("converts and chunks", func(t *testing.T) {
		p := &fakePoster{}
		s := newSender(p)

		long := strings.Repeat("line of text\n\n", 600)
		require.NoError(t, s.sendMarkdown(context.Background(), chat, "**hi**\n\n"+long))

		require.Greater(t, len(p.sent), 1)
		assert.Contains(t, p.sent[0], "<strong>hi</strong>")
		for _, chunk := range p.sent {
			assert.LessOrEqual(t, len(chunk), maxTelegramMsgLen)
		}
	})

	t.Run("empty reply sends nothing", func(t *testing.T) {
		p := &fakePoster{}
		require.NoError(t, newSender(p).sendMarkdown(context.Background(), chat, "   "))
		assert.Empty(t, p.sent)
	})

	t.Run("failure is a transport error", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := log.NewContextWithWriter(context.Background(), &buf)

		p := &fakePoster{failAt: 2}
		long := strings.Repeat("line of text\n\n", 600)
		err := newSender(p).sendMarkdown(ctx, chat, long)

		var transportErr *core.TransportError
		require.ErrorAs(t, err, &transportErr)
		assert.Contains(t, transportErr.Op, "telegram send 2/")
		assert.Len(t, p.sent, 1)
		assert.Contains(t, buf.String(), "failed to send reply to telegram")
	})
}
