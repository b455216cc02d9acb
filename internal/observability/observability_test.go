package observability

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_Routes(t *testing.T) {
	m := NewMetrics()
	m.MessagesReceived.WithLabelValues("replied").Inc()
	m.ObserveCompletion(1200*time.Millisecond, nil)
	m.ObserveCompletion(30*time.Second, errors.New("timeout"))

	srv := httptest.NewServer(NewServer(":0", m).Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	text := string(body)
	assert.Contains(t, text, `roombot_messages_received_total{outcome="replied"} 1`)
	assert.Contains(t, text, `roombot_completions_total{status="ok"} 1`)
	assert.Contains(t, text, `roombot_completions_total{status="error"} 1`)
	assert.Contains(t, text, "roombot_completion_latency_ms_count 2")
}

func TestNewMetrics_Independent(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics()
		NewMetrics()
	})
}
