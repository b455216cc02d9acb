package livekit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/roombot/internal/config"
	"github.com/sandevgo/roombot/internal/core"
	"github.com/sandevgo/roombot/internal/observability"
	"github.com/sandevgo/roombot/internal/service/identity"
	"github.com/sandevgo/roombot/pkg/conv"
	"github.com/sandevgo/roombot/pkg/log"
	"github.com/sandevgo/roombot/pkg/retry"
)

const (
	eventBuffer = 64
	// A quiet-room warning is checked every idleCheckBeats heartbeats.
	idleCheckBeats = 6
)

type session interface {
	// Publish sends to the whole room when to is empty.
	Publish(data []byte, to ...string) error
	Participants() []string
	State() string
}

// privateReplier is implemented by handlers that can tell when a reply
// belongs to its sender only.
type privateReplier interface {
	Private(msg core.InboundMessage) bool
}

type eventKind int

const (
	eventData eventKind = iota
	eventParticipantJoined
	eventParticipantLeft
	eventDisconnected
)

type event struct {
	kind     eventKind
	identity string
	msg      core.InboundMessage
}

// Dispatcher turns room events into agent calls. Room callbacks only
// enqueue; Run consumes the queue and starts one goroutine per message.
type Dispatcher struct {
	handler core.MessageHandler
	persona *config.Persona
	cfg     *config.LiveKitConfig
	metrics *observability.Metrics
	retrier *retry.Retrier

	events   chan event
	wg       sync.WaitGroup
	received atomic.Int64
}

func NewDispatcher(
	handler core.MessageHandler,
	persona *config.Persona,
	cfg *config.LiveKitConfig,
	metrics *observability.Metrics,
) *Dispatcher {
	return &Dispatcher{
		handler: handler,
		persona: persona,
		cfg:     cfg,
		metrics: metrics,
		retrier: retry.NewRetrier(retry.NewOnceConfig()),
		events:  make(chan event, eventBuffer),
	}
}

func (d *Dispatcher) enqueue(ctx context.Context, ev event) {
	select {
	case d.events <- ev:
	default:
		log.FromCtx(ctx).Warn().Int("kind", int(ev.kind)).Msg("event queue full, dropping room event")
	}
}

func (d *Dispatcher) OnData(ctx context.Context, sender string, payload []byte, topic string) {
	d.enqueue(ctx, event{
		kind: eventData,
		msg: core.InboundMessage{
			ID:             uuid.NewString(),
			SenderIdentity: sender,
			Payload:        payload,
			Topic:          topic,
			ReceivedAt:     time.Now().UTC(),
		},
	})
}

func (d *Dispatcher) OnParticipantJoined(ctx context.Context, id string) {
	d.enqueue(ctx, event{kind: eventParticipantJoined, identity: id})
}

func (d *Dispatcher) OnParticipantLeft(ctx context.Context, id string) {
	d.enqueue(ctx, event{kind: eventParticipantLeft, identity: id})
}

func (d *Dispatcher) OnDisconnected(ctx context.Context) {
	d.enqueue(ctx, event{kind: eventDisconnected})
}

// Run serves s until ctx is cancelled or the room disconnects, then waits
// for in-flight handlers.
func (d *Dispatcher) Run(ctx context.Context, s session) error {
	logger := log.FromCtx(ctx)
	defer d.wg.Wait()

	d.after(ctx, d.cfg.WelcomeDelay, func() {
		d.broadcast(ctx, s, d.persona.Welcome)
	})

	var heartbeat <-chan time.Time
	if d.cfg.HeartbeatInterval > 0 {
		ticker := time.NewTicker(d.cfg.HeartbeatInterval)
		defer ticker.Stop()
		heartbeat = ticker.C
	}

	beats := 0
	var lastSeen int64
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("room dispatcher stopped")
			return nil

		case <-heartbeat:
			beats++
			lastSeen = d.heartbeat(ctx, s, beats, lastSeen)

		case ev := <-d.events:
			switch ev.kind {
			case eventData:
				d.received.Add(1)
				d.wg.Add(1)
				go func(msg core.InboundMessage) {
					defer d.wg.Done()
					d.handle(ctx, s, msg)
				}(ev.msg)

			case eventParticipantJoined:
				logger.Info().Str("participant", ev.identity).Msg("participant connected")
				d.after(ctx, d.cfg.JoinWelcomeDelay, func() {
					d.broadcast(ctx, s, d.persona.JoinWelcomeFor(ev.identity))
				})

			case eventParticipantLeft:
				logger.Info().Str("participant", ev.identity).Msg("participant disconnected")

			case eventDisconnected:
				logger.Error().Err(&core.TransportError{Op: "session", Err: errDisconnected}).
					Msg("disconnected from room")
				return nil
			}
		}
	}
}

func (d *Dispatcher) handle(ctx context.Context, s session, msg core.InboundMessage) {
	msg.SenderIdentity = identity.Resolve(msg.SenderIdentity, s.Participants(), d.persona.AgentKeywords)

	reply, ok := d.handler.Handle(ctx, msg)
	if !ok {
		return
	}
	text := conv.MarkdownToPlainText(reply)

	if p, ok := d.handler.(privateReplier); ok && p.Private(msg) {
		if msg.SenderIdentity == core.UnknownIdentity {
			log.FromCtx(ctx).Warn().Msg("dropping private reply, sender unknown")
			return
		}
		d.broadcast(ctx, s, text, msg.SenderIdentity)
		return
	}
	d.broadcast(ctx, s, text)
}

// broadcast publishes text reliably, retrying once before giving up. With
// recipients set only those participants receive it.
func (d *Dispatcher) broadcast(ctx context.Context, s session, text string, to ...string) {
	if text == "" {
		return
	}

	err := d.retrier.Do(ctx, func() error {
		return s.Publish([]byte(text), to...)
	})
	if err != nil {
		log.FromCtx(ctx).Error().Err(&core.TransportError{Op: "publish", Err: err}).Msg("failed to send message to room")
		d.countBroadcast("error")
		return
	}
	d.countBroadcast("ok")
}

func (d *Dispatcher) heartbeat(ctx context.Context, s session, beats int, lastSeen int64) int64 {
	logger := log.FromCtx(ctx)
	participants := s.Participants()
	if d.metrics != nil {
		d.metrics.Participants.Set(float64(len(participants)))
	}

	logger.Debug().
		Str("state", s.State()).
		Strs("participants", participants).
		Int64("messages", d.received.Load()).
		Msg("heartbeat")

	if beats%idleCheckBeats != 0 {
		return lastSeen
	}

	current := d.received.Load()
	if len(participants) > 0 && current == lastSeen {
		logger.Warn().
			Int("participants", len(participants)).
			Msg("participants present but no messages received recently")
	}
	return current
}

// after runs fn once delay has passed unless ctx ends first.
func (d *Dispatcher) after(ctx context.Context, delay time.Duration, fn func()) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if delay > 0 {
			t := time.NewTimer(delay)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
		}
		fn()
	}()
}

func (d *Dispatcher) countBroadcast(status string) {
	if d.metrics != nil {
		d.metrics.Broadcasts.WithLabelValues(status).Inc()
	}
}
