package loki

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type MockLogger struct {
	mu     sync.Mutex
	errors []string
}

func (m *MockLogger) Error(msg string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, msg)
}

func Test_ConfigValidation(t *testing.T) {
	cfg := Config{}
	_, err := New(context.Background(), cfg, &MockLogger{})
	assert.Error(t, err)

	cfg.Url = "http://localhost:3100/loki/api/v1/push"
	pusher, err := New(context.Background(), cfg, &MockLogger{})
	require.NoError(t, err)
	defer pusher.Stop()

	assert.Equal(t, cfg.Url, pusher.config.Url)
	assert.Equal(t, 1000, pusher.config.BatchMaxSize)
	assert.Equal(t, 5*time.Second, pusher.config.BatchMaxWait)
	assert.Equal(t, 10000, pusher.config.BufferSize)
	assert.Equal(t, map[string]string{}, pusher.config.Labels)
}

func Test_Pusher_SendsBatchOnStop(t *testing.T) {
	var (
		mu       sync.Mutex
		received []pushRequest
		headers  http.Header
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gz, err := gzip.NewReader(r.Body)
		require.NoError(t, err)
		var body pushRequest
		require.NoError(t, json.NewDecoder(gz).Decode(&body))

		mu.Lock()
		received = append(received, body)
		headers = r.Header.Clone()
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	pusher, err := New(context.Background(), Config{
		Url:          server.URL,
		BatchMaxWait: time.Hour,
		Labels:       map[string]string{"app": "hirenearby"},
		Username:     "user",
		Password:     "secret",
		TenantKey:    "X-Scope-OrgID",
		TenantValue:  "tenant",
	}, &MockLogger{})
	require.NoError(t, err)

	require.NoError(t, pusher.Push(LogEntry{Level: "error", Message: "first", ErrorType: "db"}))
	require.NoError(t, pusher.Push(LogEntry{Level: "info", Message: "second"}))
	pusher.Stop()
	pusher.Stop()

	assert.ErrorIs(t, pusher.Push(LogEntry{Message: "late"}), ErrStopped)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	require.Len(t, received[0].Streams, 1)
	assert.Equal(t, map[string]string{"app": "hirenearby"}, received[0].Streams[0].Stream)
	require.Len(t, received[0].Streams[0].Values, 2)

	var first LogEntry
	require.NoError(t, json.Unmarshal([]byte(received[0].Streams[0].Values[0][1]), &first))
	assert.Equal(t, LogEntry{Level: "error", Message: "first", ErrorType: "db"}, first)

	user, password, ok := (&http.Request{Header: headers}).BasicAuth()
	assert.True(t, ok)
	assert.Equal(t, "user", user)
	assert.Equal(t, "secret", password)
	assert.Equal(t, "tenant", headers.Get("X-Scope-OrgID"))
}

func Test_Pusher_ReportsRejectedBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	logger := &MockLogger{}
	pusher, err := New(context.Background(), Config{Url: server.URL, BatchMaxSize: 1}, logger)
	require.NoError(t, err)

	require.NoError(t, pusher.Push(LogEntry{Level: "error", Message: "boom"}))
	pusher.Stop()

	logger.mu.Lock()
	defer logger.mu.Unlock()
	assert.Equal(t, []string{"failed to send logs"}, logger.errors)
}
