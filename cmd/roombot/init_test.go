package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvTemplate(t *testing.T) {
	content, err := envTemplate()
	require.NoError(t, err)

	assert.Contains(t, content, "# LiveKit\n")
	assert.NotContains(t, content, "ENABLE_CLI=")

	values, err := godotenv.Unmarshal(content)
	require.NoError(t, err)
	assert.Equal(t, "true", values["ENABLE_LIVEKIT"])
	assert.Equal(t, "json", values["MEMORY_BACKEND"])
	assert.Equal(t, "chat-room", values["LIVEKIT_ROOM"])
	assert.Equal(t, "gemini", values["LLM_PROVIDER"])
	assert.Equal(t, "change-me", values["GEMINI_API_KEY"])
}

func TestWriteIfMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	require.NoError(t, writeIfMissing(path, []byte("A=1\n"), 0o600, false))
	assert.Error(t, writeIfMissing(path, []byte("A=2\n"), 0o600, false))
	require.NoError(t, writeIfMissing(path, []byte("A=3\n"), 0o600, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A=3\n", string(data))
}

func TestEnvFromAnswers(t *testing.T) {
	t.Run("livekit and telegram", func(t *testing.T) {
		content, err := envFromAnswers(map[string]string{
			"ENABLE_LIVEKIT":     "true",
			"ENABLE_TELEGRAM":    "true",
			"ENABLE_CLI":         "false",
			"LIVEKIT_URL":        "wss://lk.example.com",
			"LIVEKIT_API_KEY":    "APIkey",
			"LIVEKIT_API_SECRET": "s3cret",
			"LIVEKIT_ROOM":       "lobby",
			"LLM_PROVIDER":       "openai",
			"OPENAI_API_KEY":     "sk-test",
			"LLM_MODEL":          "gpt-4o-mini",
			"MEMORY_BACKEND":     "sqlite",
			"TELEGRAM_TOKEN":     "123:abc",
			"TELEGRAM_OWNER_ID":  "42",
		})
		require.NoError(t, err)

		values, err := godotenv.Unmarshal(content)
		require.NoError(t, err)
		assert.Equal(t, "wss://lk.example.com", values["LIVEKIT_URL"])
		assert.Equal(t, "lobby", values["LIVEKIT_ROOM"])
		assert.Equal(t, "gemini-agent", values["LIVEKIT_IDENTITY"])
		assert.Equal(t, "sk-test", values["OPENAI_API_KEY"])
		assert.Equal(t, "sqlite", values["MEMORY_BACKEND"])
		assert.Equal(t, "true", values["ENABLE_TELEGRAM"])
		assert.Equal(t, "42", values["TELEGRAM_OWNER_ID"])
		assert.NotContains(t, values, "ROOMBOT_RUNTIME_PATH")
	})

	t.Run("livekit disabled stays disabled", func(t *testing.T) {
		content, err := envFromAnswers(map[string]string{
			"ENABLE_LIVEKIT": "false",
			"ENABLE_CLI":     "true",
			"LLM_PROVIDER":   "gemini",
			"GEMINI_API_KEY": "AIza",
		})
		require.NoError(t, err)

		values, err := godotenv.Unmarshal(content)
		require.NoError(t, err)
		assert.Equal(t, "false", values["ENABLE_LIVEKIT"])
		assert.Equal(t, "true", values["ENABLE_CLI"])
		assert.NotContains(t, content, "# LiveKit")
		assert.NotContains(t, content, "# Telegram")
	})

	t.Run("missing required answer", func(t *testing.T) {
		_, err := envFromAnswers(map[string]string{"ENABLE_LIVEKIT": "true"})
		assert.ErrorContains(t, err, "LiveKit")
	})
}
