package telegram

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/roombot/internal/config"
	"github.com/sandevgo/roombot/internal/core"
	"github.com/sandevgo/roombot/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

type Bot struct {
	bot     *tele.Bot
	cfg     *config.TelegramConfig
	handler core.MessageHandler
	sender  *sender
	ownerID int64
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	handler core.MessageHandler,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		cfg:     cfg,
		handler: handler,
		sender:  newSender(b),
		ownerID: cfg.OwnerID,
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if !allowed(bot.ownerID, c.Sender()) {
				return nil // Ignore unauthorized users
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)

	// Notify user we are working
	_ = c.Notify(tele.Typing)

	reply, ok := b.handler.Handle(ctx, core.InboundMessage{
		ID:             uuid.NewString(),
		SenderIdentity: senderIdentity(c.Sender()),
		Payload:        []byte(c.Text()),
		Topic:          "telegram",
		ReceivedAt:     c.Message().Time().UTC(),
	})
	if !ok {
		return nil
	}
	return b.sender.sendMarkdown(ctx, c.Chat(), reply)
}

// allowed reports whether u may talk to the bot. A zero owner allows all.
func allowed(ownerID int64, u *tele.User) bool {
	if ownerID == 0 {
		return true
	}
	return u != nil && u.ID == ownerID
}

// senderIdentity prefers the public username and falls back to the id.
func senderIdentity(u *tele.User) string {
	if u == nil {
		return core.UnknownIdentity
	}
	if u.Username != "" {
		return u.Username
	}
	return strconv.FormatInt(u.ID, 10)
}
