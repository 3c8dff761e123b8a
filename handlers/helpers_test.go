package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shiftwrite/handlers"
	"shiftwrite/routes"
	"shiftwrite/session"
	"shiftwrite/storage"
)

const testSecret = "test-secret"

// fakeGenerator is a scriptable stand-in for the Gemini client.
type fakeGenerator struct {
	mu    sync.Mutex
	reply string
	err   error
	calls int

	// When set, Generate signals started and then blocks until release is
	// closed, to simulate an in-flight call.
	started chan struct{}
	release chan struct{}
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.calls++
	reply, err := f.reply, f.err
	started, release := f.started, f.release
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}
	return reply, err
}

func (f *fakeGenerator) set(reply string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reply = reply
	f.err = err
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type testEnv struct {
	app      *fiber.App
	gen      *fakeGenerator
	history  storage.HistoryStore
	sessions *session.Manager
}

func newTestEnv() *testEnv {
	return newTestEnvWithHistory(storage.NewMemoryHistoryStore())
}

func newTestEnvWithHistory(history storage.HistoryStore) *testEnv {
	gen := &fakeGenerator{reply: "Subject: EOD Report - 2024-05-01\n**Sales:** $5000"}
	sessions := session.NewManager()
	h := handlers.New(
		storage.NewMemoryUserStore(),
		history,
		gen,
		sessions,
		[]byte(testSecret),
		zap.NewNop(),
	)

	app := fiber.New()
	routes.SetupRoutes(app, h, []byte(testSecret))

	return &testEnv{app: app, gen: gen, history: history, sessions: sessions}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	decoded := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

// register creates an account and returns its bearer token.
func (e *testEnv) register(t *testing.T, email string) string {
	t.Helper()

	resp, body := e.request(t, "POST", "/api/v1/auth/register", "", fiber.Map{
		"email":    email,
		"password": "swordfish",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	token, _ := body["accessToken"].(string)
	require.NotEmpty(t, token)
	return token
}

func dataField(t *testing.T, body map[string]any, key string) any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "response has no data object: %v", body)
	return data[key]
}
