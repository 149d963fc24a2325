package httpserver

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/platform/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthOK(_ context.Context) error { return nil }

func healthErr(msg string) func(context.Context) error {
	return func(_ context.Context) error { return errors.New(msg) }
}

func TestHandleHealth(t *testing.T) {
	env := newTestServer(t)
	env.clock.Advance(5 * time.Second)

	rec := env.do(t, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","service":"supplier-hub","suppliers":150,"uptime":5}`, rec.Body.String())
}

func TestHandleLiveness(t *testing.T) {
	env := newTestServer(t)

	rec := env.do(t, http.MethodGet, "/health/live", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"status":"ok"`)
	assert.Contains(t, body, `"uptime"`)
}

func TestHandleReadiness_AllHealthy(t *testing.T) {
	env := newTestServer(t, withHealthChecks(
		HealthCheck{Name: "catalog", Check: healthOK},
		HealthCheck{Name: "broadcaster", Check: healthOK},
	))

	rec := env.do(t, http.MethodGet, "/health/ready", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
}

func TestHandleReadiness_NoChecks(t *testing.T) {
	env := newTestServer(t)

	rec := env.do(t, http.MethodGet, "/health/ready", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
}

func TestHandleReadiness_BroadcasterDown(t *testing.T) {
	env := newTestServer(t, withHealthChecks(
		HealthCheck{Name: "catalog", Check: healthOK},
		HealthCheck{Name: "broadcaster", Check: healthErr("broadcaster stopped")},
	))

	rec := env.do(t, http.MethodGet, "/health/ready", "")

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"unhealthy"`)
	assert.Contains(t, rec.Body.String(), `"failed_check":"broadcaster"`)
	assert.Contains(t, rec.Body.String(), `"error":"broadcaster stopped"`)
}

func TestHandleVersion(t *testing.T) {
	env := newTestServer(t)

	rec := env.do(t, http.MethodGet, "/version", "")

	require.Equal(t, http.StatusOK, rec.Code)
	info := decodeBody[version.Info](t, rec)
	assert.Equal(t, "supplier-hub", info.Service)
	assert.Equal(t, version.Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestServer(t)
	env.do(t, http.MethodGet, "/api/suppliers", "")

	rec := env.do(t, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "supplierhub_http_requests_total")
	assert.Contains(t, rec.Body.String(), `route="/api/suppliers"`)
}
