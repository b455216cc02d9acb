package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ROOMBOT_RUNTIME_PATH", dir)

	cfg, err := LoadAppConfig()
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.GetRuntimePath())
	assert.Equal(t, BackendJSON, cfg.MemoryBackend)
	assert.Equal(t, 5, cfg.MemoryContextLimit)
	assert.Equal(t, 30*time.Second, cfg.CompletionTimeout)
	assert.True(t, cfg.EnableLiveKit)
	assert.False(t, cfg.EnableCLI)
	assert.Equal(t, filepath.Join(dir, "memory.json"), cfg.GetMemoryFilePath())
	assert.Equal(t, filepath.Join(dir, "persona.yaml"), cfg.GetPersonaPath())
}

func TestLoadAppConfig_Validation(t *testing.T) {
	t.Setenv("ROOMBOT_RUNTIME_PATH", t.TempDir())

	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("MEMORY_BACKEND", "redis")
		_, err := LoadAppConfig()
		assert.ErrorContains(t, err, "unknown memory backend")
	})

	t.Run("postgres requires dsn", func(t *testing.T) {
		t.Setenv("MEMORY_BACKEND", BackendPostgres)
		t.Setenv("DATABASE_URL", "")
		_, err := LoadAppConfig()
		assert.ErrorContains(t, err, "DATABASE_URL")
	})

	t.Run("non-positive limit", func(t *testing.T) {
		t.Setenv("MEMORY_CONTEXT_LIMIT", "0")
		_, err := LoadAppConfig()
		assert.Error(t, err)
	})
}

func TestResolveRuntimePath_Relative(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".roombot"), resolveRuntimePath(""))
	assert.Equal(t, filepath.Join(home, "custom"), resolveRuntimePath("custom"))
	assert.Equal(t, "/var/lib/roombot", resolveRuntimePath("/var/lib/roombot"))
}

func TestLoadLiveKitConfig(t *testing.T) {
	t.Run("missing required", func(t *testing.T) {
		t.Setenv("LIVEKIT_URL", "")
		t.Setenv("LIVEKIT_API_KEY", "")
		t.Setenv("LIVEKIT_API_SECRET", "")
		_, err := LoadLiveKitConfig()
		assert.Error(t, err)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("LIVEKIT_URL", "wss://example.livekit.cloud")
		t.Setenv("LIVEKIT_API_KEY", "key")
		t.Setenv("LIVEKIT_API_SECRET", "secret")

		cfg, err := LoadLiveKitConfig()
		require.NoError(t, err)
		assert.Equal(t, "chat-room", cfg.Room)
		assert.Equal(t, "gemini-agent", cfg.Identity)
		assert.Equal(t, time.Hour, cfg.TokenTTL)
		assert.Equal(t, 10*time.Second, cfg.HeartbeatInterval)
	})
}

func TestProviderConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ProviderConfig
		wantErr string
	}{
		{name: "gemini ok", cfg: ProviderConfig{Provider: ProviderGemini, Model: "m", GeminiAPIKey: "k"}},
		{name: "gemini missing key", cfg: ProviderConfig{Provider: ProviderGemini, Model: "m"}, wantErr: "GEMINI_API_KEY"},
		{name: "openai missing key", cfg: ProviderConfig{Provider: ProviderOpenAI, Model: "m"}, wantErr: "OPENAI_API_KEY"},
		{name: "openrouter ok", cfg: ProviderConfig{Provider: ProviderOpenRouter, Model: "m", OpenRouterAPIKey: "k"}},
		{name: "ollama ok without key", cfg: ProviderConfig{Provider: ProviderOllama, Model: "m", OllamaBaseURL: "http://localhost:11434/v1"}},
		{name: "custom missing url", cfg: ProviderConfig{Provider: ProviderCustom, Model: "m"}, wantErr: "CUSTOM_OPENAI_BASE_URL"},
		{name: "unknown provider", cfg: ProviderConfig{Provider: "mystery", Model: "m"}, wantErr: "unknown llm provider"},
		{name: "empty model", cfg: ProviderConfig{Provider: ProviderGemini, GeminiAPIKey: "k"}, wantErr: "LLM_MODEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadPersona(t *testing.T) {
	t.Run("missing file uses defaults", func(t *testing.T) {
		p, err := LoadPersona(filepath.Join(t.TempDir(), "persona.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultPersona(), p)
	})

	t.Run("partial override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "persona.yaml")
		content := "name: Echo\nfallback: \"Sorry {user}, try again later.\"\nagent_keywords: [echo]\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		p, err := LoadPersona(path)
		require.NoError(t, err)
		assert.Equal(t, "Echo", p.Name)
		assert.Equal(t, "Sorry alice, try again later.", p.FallbackFor("alice"))
		assert.Equal(t, []string{"echo"}, p.AgentKeywords)
		assert.Equal(t, DefaultPersona().Instructions, p.Instructions)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "persona.yaml")
		require.NoError(t, os.WriteFile(path, []byte("name: [unterminated"), 0o644))

		_, err := LoadPersona(path)
		assert.Error(t, err)
	})
}

func TestPersona_Templates(t *testing.T) {
	p := DefaultPersona()
	assert.Contains(t, p.JoinWelcomeFor("bob"), "Welcome bob!")
	assert.Contains(t, p.FallbackFor("bob"), "Hi bob!")
	assert.NotContains(t, p.FallbackFor("bob"), userPlaceholder)
}
