package telegram

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sandevgo/roombot/internal/core"
	"github.com/sandevgo/roombot/pkg/conv"
	"github.com/sandevgo/roombot/pkg/log"
	tele "gopkg.in/telebot.v3"
)

// Telegram caps a message at 4096 characters; the margin leaves room for
// entities the HTML conversion may expand.
const maxTelegramMsgLen = 4000

// poster is the part of *tele.Bot the sender needs.
type poster interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

type sender struct {
	bot poster
}

func newSender(bot poster) *sender {
	return &sender{bot: bot}
}

// sendMarkdown converts a reply to Telegram HTML and sends it in chunks.
// The first failed chunk aborts the rest and is returned as a TransportError.
func (s *sender) sendMarkdown(ctx context.Context, to tele.Recipient, md string) error {
	html := strings.TrimSpace(conv.MarkdownToTelegramHTML([]byte(md)))
	if html == "" {
		return nil
	}

	chunks := splitHTML(html, maxTelegramMsgLen)
	for i, chunk := range chunks {
		if _, err := s.bot.Send(to, chunk, tele.ModeHTML); err != nil {
			err = &core.TransportError{Op: fmt.Sprintf("telegram send %d/%d", i+1, len(chunks)), Err: err}
			log.FromCtx(ctx).Error().Err(err).
				Str("chat", to.Recipient()).
				Int("len", len(chunk)).
				Msg("failed to send reply to telegram")
			return err
		}
	}
	return nil
}

// splitHTML cuts text into chunks of at most maxLen bytes, preferring a
// newline in the last two thirds of a chunk and never splitting a rune.
func splitHTML(text string, maxLen int) []string {
	var chunks []string
	for len(text) > maxLen {
		cut := maxLen
		if idx := strings.LastIndex(text[:maxLen], "\n"); idx > maxLen/3 {
			cut = idx
		} else {
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
			if cut == 0 {
				cut = maxLen
			}
		}

		chunks = append(chunks, text[:cut])
		text = strings.TrimSpace(text[cut:])
	}
	if text != "" || len(chunks) == 0 {
		chunks = append(chunks, text)
	}
	return chunks
}
