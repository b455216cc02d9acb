package agent

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sandevgo/roombot/internal/config"
	"github.com/sandevgo/roombot/internal/core"
	"github.com/sandevgo/roombot/internal/observability"
	"github.com/sandevgo/roombot/internal/service/identity"
	"github.com/sandevgo/roombot/pkg/log"
)

const DefaultCompletionTimeout = 30 * time.Second

type MemoryService interface {
	BuildPrompt(ctx context.Context, userID, message string) string
	Remember(ctx context.Context, userID, message, reply string)
}

// Agent answers inbound chat messages: commands go to the router,
// everything else is completed with the user's memory as context.
type Agent struct {
	ai      core.Completer
	mem     MemoryService
	router  core.CmdRouter
	persona *config.Persona
	timeout time.Duration
	metrics *observability.Metrics
}

func NewAgent(
	ai core.Completer,
	mem MemoryService,
	router core.CmdRouter,
	persona *config.Persona,
	timeout time.Duration,
	metrics *observability.Metrics,
) *Agent {
	if timeout <= 0 {
		timeout = DefaultCompletionTimeout
	}
	if persona == nil {
		persona = config.DefaultPersona()
	}
	return &Agent{
		ai:      ai,
		mem:     mem,
		router:  router,
		persona: persona,
		timeout: timeout,
		metrics: metrics,
	}
}

// Handle produces the reply for msg. ok is false when the message is
// dropped: undecodable payloads, blank text and messages from other bots.
func (a *Agent) Handle(ctx context.Context, msg core.InboundMessage) (string, bool) {
	eventID := msg.ID
	if eventID == "" {
		eventID = uuid.NewString()
	}
	userID := msg.SenderIdentity
	if userID == "" {
		userID = core.UnknownIdentity
	}

	logger := log.FromCtx(ctx).With().Str("event", eventID).Str("user", userID).Logger()
	ctx = logger.WithContext(ctx)

	if !utf8.Valid(msg.Payload) {
		err := &core.DecodeError{Sender: userID, Err: errInvalidUTF8}
		logger.Warn().Err(err).Int("bytes", len(msg.Payload)).Msg("dropping undecodable message")
		a.count("decode_error")
		return "", false
	}

	text := strings.TrimSpace(string(msg.Payload))
	if text == "" {
		a.count("empty")
		return "", false
	}

	if identity.IsAgent(userID, a.persona.AgentKeywords) {
		logger.Info().Msg("ignoring message from agent")
		a.count("agent")
		return "", false
	}

	logger.Info().Str("topic", msg.Topic).Str("text", text).Msg("received message")

	if a.router != nil {
		if reply, ok := a.router.Execute(ctx, userID, text); ok {
			a.count("command")
			return reply, true
		}
	}

	reply, err := a.complete(ctx, userID, text)
	if err != nil {
		logger.Error().Err(err).Msg("completion failed, sending fallback")
		a.count("fallback")
		return a.persona.FallbackFor(userID), true
	}

	logger.Info().Str("reply", reply).Msg("generated response")
	a.mem.Remember(ctx, userID, text, reply)
	a.count("replied")
	return reply, true
}

// Private reports whether the reply to msg should go to its sender only,
// such as a command that prints the sender's stored history.
func (a *Agent) Private(msg core.InboundMessage) bool {
	if a.router == nil || !utf8.Valid(msg.Payload) {
		return false
	}
	return a.router.IsPrivate(string(msg.Payload))
}

func (a *Agent) complete(ctx context.Context, userID, text string) (string, error) {
	prompt := a.mem.BuildPrompt(ctx, userID, text)
	log.FromCtx(ctx).Debug().Int("prompt_len", len(prompt)).Msg("calling completion service")

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	reply, err := a.ai.Generate(ctx, prompt)
	if err == nil && strings.TrimSpace(reply) == "" {
		err = &core.ServiceError{Service: "completion", Op: "generate", Err: errEmptyReply}
	}
	if err != nil && ctx.Err() != nil && !errors.Is(err, core.ErrTimeout) {
		err = &core.ServiceError{Service: "completion", Op: "generate", Err: errors.Join(core.ErrTimeout, err)}
	}
	if a.metrics != nil {
		a.metrics.ObserveCompletion(time.Since(start), err)
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

func (a *Agent) count(outcome string) {
	if a.metrics != nil {
		a.metrics.MessagesReceived.WithLabelValues(outcome).Inc()
	}
}
