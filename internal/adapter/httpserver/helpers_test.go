package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/broadcast"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/generator"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/platform/config"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/workspace"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2025, 12, 12, 13, 51, 21, 0, time.UTC)

type testEnv struct {
	server      *Server
	broadcaster *broadcast.Broadcaster
	workspace   *workspace.Store
	clock       *clockwork.FakeClock
}

type serverOption func(*serverSetup)

type serverSetup struct {
	cfg          *config.Config
	healthChecks []HealthCheck
}

func withHealthChecks(checks ...HealthCheck) serverOption {
	return func(s *serverSetup) { s.healthChecks = checks }
}

func withRateLimit(perSecond float64, burst int) serverOption {
	return func(s *serverSetup) {
		s.cfg.RateLimitPerSecond = perSecond
		s.cfg.RateLimitBurst = burst
	}
}

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:             "development",
		Host:               "127.0.0.1",
		Port:               "8080",
		LogLevel:           "info",
		LogFormat:          "text",
		CORSOrigin:         "*",
		CatalogSize:        generator.DefaultCount,
		TickInterval:       10 * time.Second,
		MaxSubscribers:     10,
		RateLimitPerSecond: 1000,
		RateLimitBurst:     1000,
	}
}

func newTestServer(t *testing.T, opts ...serverOption) *testEnv {
	t.Helper()

	setup := &serverSetup{cfg: testConfig()}
	for _, opt := range opts {
		opt(setup)
	}

	clock := clockwork.NewFakeClockAt(testStart)
	// Ticks only happen when a test calls Tick.
	b := broadcast.NewBroadcaster(generator.Generate(generator.DefaultCount, clock.Now()), clock, broadcast.WithTickInterval(24*time.Hour))
	t.Cleanup(func() { b.Stop() })

	store := workspace.New(clock)
	wsHandler := func(c echo.Context) error { return c.String(http.StatusOK, "ws") }

	srv := NewServer(setup.cfg, clock, b, store, wsHandler, prometheus.NewRegistry(), setup.healthChecks)
	return &testEnv{server: srv, broadcaster: b, workspace: store, clock: clock}
}

// do sends a request through the full middleware chain.
func (env *testEnv) do(t *testing.T, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequestWithContext(context.Background(), method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	env.server.echo.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
