package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/sandevgo/roombot/internal/config"
	"github.com/sandevgo/roombot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionBody(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "test-model",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	}
}

func TestOpenAICompatible_Generate(t *testing.T) {
	var gotReq struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	var gotHeaders http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionBody("  Hello there!  "))
	}))
	defer srv.Close()

	p := NewOpenAICompatible(OpenAICompatibleConfig{
		Service:      "test",
		BaseURL:      srv.URL + "/v1/",
		APIKey:       "secret",
		Model:        "test-model",
		ExtraHeaders: map[string]string{"X-Title": core.BotName},
	})

	got, err := p.Generate(context.Background(), "Say hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello there!", got)

	assert.Equal(t, "test-model", gotReq.Model)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, core.RoleUser, gotReq.Messages[0].Role)
	assert.Equal(t, "Say hi", gotReq.Messages[0].Content)
	assert.Equal(t, "Bearer secret", gotHeaders.Get("Authorization"))
	assert.Equal(t, core.BotName, gotHeaders.Get("X-Title"))
}

func TestOpenAICompatible_Errors(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "empty choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
			},
		},
		{
			name: "blank completion",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(completionBody("   "))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			p := NewCustomOpenAI(srv.URL+"/v1", "key", "m")
			_, err := p.Generate(context.Background(), "hi")
			require.Error(t, err)

			var serr *core.ServiceError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, "custom", serr.Service)
			assert.Equal(t, tt.wantStatus, serr.StatusCode)
			assert.False(t, serr.Timeout())
		})
	}
}

func TestOpenAICompatible_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewOllama(srv.URL+"/v1", "", "llama3").Generate(ctx, "hi")
	require.Error(t, err)

	var serr *core.ServiceError
	require.ErrorAs(t, err, &serr)
	assert.True(t, serr.Timeout())
	assert.True(t, errors.Is(err, core.ErrTimeout))
}

func TestResponseText(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{name: "nil", resp: nil, want: ""},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, want: ""},
		{
			name: "nil content",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}},
			want: "",
		},
		{
			name: "joins text parts",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []genai.Part{genai.Text("Hello "), genai.Text("world\n")}},
			}}},
			want: "Hello world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, responseText(tt.resp))
		})
	}
}

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	p, err := NewProvider(ctx, &config.ProviderConfig{Provider: config.ProviderOpenRouter, Model: "m", OpenRouterAPIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAICompatible{}, p)

	_, err = NewProvider(ctx, &config.ProviderConfig{Provider: "anthropic", Model: "m"})
	assert.Error(t, err)
}
