package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalEnv(t *testing.T) {
	type sample struct {
		Room      string        `env:"LIVEKIT_ROOM"`
		Secret    string        `env:"LIVEKIT_API_SECRET,required,notEmpty"`
		Limit     int           `env:"MEMORY_CONTEXT_LIMIT"`
		Enabled   bool          `env:"ENABLE_CLI"`
		Timeout   time.Duration `env:"COMPLETION_TIMEOUT"`
		Empty     string        `env:"EMPTY_VALUE"`
		NoTag     string
		unexposed string `env:"HIDDEN"`
	}

	out, err := MarshalEnv(&sample{
		Room:      "chat-room",
		Secret:    "s3cr3t",
		Limit:     5,
		Enabled:   true,
		Timeout:   30 * time.Second,
		NoTag:     "ignored",
		unexposed: "hidden",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "LIVEKIT_ROOM=chat-room\n")
	assert.Contains(t, out, "LIVEKIT_API_SECRET=s3cr3t\n")
	assert.Contains(t, out, "MEMORY_CONTEXT_LIMIT=5\n")
	assert.Contains(t, out, "ENABLE_CLI=true\n")
	assert.Contains(t, out, "COMPLETION_TIMEOUT=30s\n")
	assert.NotContains(t, out, "EMPTY_VALUE")
	assert.NotContains(t, out, "HIDDEN")
	assert.NotContains(t, out, "ignored")
}

func TestMarshalEnv_SliceAndInvalidInput(t *testing.T) {
	type sample struct {
		Keywords []string `env:"AGENT_KEYWORDS"`
	}

	out, err := MarshalEnv(&sample{Keywords: []string{"agent", "bot"}})
	require.NoError(t, err)
	assert.Equal(t, "AGENT_KEYWORDS=agent,bot\n", out)

	_, err = MarshalEnv(sample{})
	assert.Error(t, err)
}

func TestMarshalEnv_FalseOverridesTrueDefault(t *testing.T) {
	type sample struct {
		LiveKit  bool `env:"ENABLE_LIVEKIT" envDefault:"true"`
		Telegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`
		CLI      bool `env:"ENABLE_CLI"`
	}

	out, err := MarshalEnv(&sample{})
	require.NoError(t, err)
	assert.Equal(t, "ENABLE_LIVEKIT=false\n", out)
}
