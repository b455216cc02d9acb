package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAICompatible talks to any endpoint implementing the OpenAI chat
// completions API.
type OpenAICompatible struct {
	client  *openai.Client
	service string
	model   string
}

type OpenAICompatibleConfig struct {
	Service      string // name used in errors and logs
	BaseURL      string // e.g., "https://api.openai.com/v1"
	APIKey       string
	Model        string
	ExtraHeaders map[string]string
}

type headerTransport struct {
	rt      http.RoundTripper
	headers http.Header
}

func (t headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cl := req.Clone(req.Context())
	for k, vs := range t.headers {
		for _, v := range vs {
			cl.Header.Add(k, v)
		}
	}
	return t.rt.RoundTrip(cl)
}

func NewOpenAICompatible(cfg OpenAICompatibleConfig) *OpenAICompatible {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}
	if len(cfg.ExtraHeaders) > 0 {
		h := http.Header{}
		for k, v := range cfg.ExtraHeaders {
			h.Set(k, v)
		}
		config.HTTPClient = &http.Client{Transport: headerTransport{rt: http.DefaultTransport, headers: h}}
	}

	service := cfg.Service
	if service == "" {
		service = "openai"
	}
	return &OpenAICompatible{
		client:  openai.NewClientWithConfig(config),
		service: service,
		model:   cfg.Model,
	}
}

func (o *OpenAICompatible) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", wrapError(o.service, "generate", err)
	}
	if len(resp.Choices) == 0 {
		return "", wrapError(o.service, "generate", errors.New("empty choices"))
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", wrapError(o.service, "generate", errors.New("empty completion"))
	}
	return text, nil
}
