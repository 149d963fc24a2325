package websocket

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/adapter/metrics"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the subscriber side of the live catalog broadcaster.
type Registry interface {
	Register(sub domain.Subscriber) error
	Unregister(subscriberID string)
}

// Handler upgrades HTTP requests to WebSocket subscriptions on the live catalog.
type Handler struct {
	registry Registry
	clock    clockwork.Clock
	metrics  *metrics.WebSocketMetrics
	upgrader websocket.Upgrader
}

// NewHandler creates a Handler. checkOrigin decides which browser origins may
// connect; see NewCheckOrigin. A nil m records metrics on a private registry.
func NewHandler(registry Registry, clock clockwork.Clock, checkOrigin func(*http.Request) bool, m *metrics.WebSocketMetrics) *Handler {
	if m == nil {
		m = metrics.NewWebSocketMetrics(prometheus.NewRegistry())
	}
	return &Handler{
		registry: registry,
		clock:    clock,
		metrics:  m,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// Serve handles GET /ws. The subscriber receives an initial message with the
// current catalog, then one update per tick until either side closes.
func (h *Handler) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already written the HTTP error response
		slog.Warn("WebSocket upgrade failed", "error", err, "remote_addr", c.RealIP())
		h.metrics.ConnectionsTotal.WithLabelValues("rejected").Inc()
		return nil
	}

	writer := newClientWriter(uuid.NewString(), conn, h.clock, h.metrics)

	if err := h.registry.Register(writer); err != nil {
		slog.Warn("Subscriber registration failed", "subscriber_id", writer.ID(), "error", err)
		h.metrics.ConnectionsTotal.WithLabelValues("error").Inc()
		if errors.Is(err, domain.ErrTooManySubscribers) {
			writer.closeWith(websocket.CloseTryAgainLater, "server at capacity")
		} else {
			writer.closeWith(websocket.CloseInternalServerErr, "subscription failed")
		}
		writer.wait()
		return nil
	}

	h.metrics.ConnectionsTotal.WithLabelValues("success").Inc()
	h.metrics.ActiveConnections.Inc()
	defer h.metrics.ActiveConnections.Dec()

	slog.Info("WebSocket subscriber connected", "subscriber_id", writer.ID(), "remote_addr", c.RealIP())

	h.readPump(writer)

	h.registry.Unregister(writer.ID())
	writer.Close()
	writer.wait()

	slog.Info("WebSocket subscriber disconnected", "subscriber_id", writer.ID())
	return nil
}

// readPump drains client frames so control frames are processed, and returns
// once the connection fails or the client closes it.
func (h *Handler) readPump(writer *clientWriter) {
	for {
		if _, _, err := writer.connection.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("WebSocket read error", "subscriber_id", writer.ID(), "error", err)
			}
			return
		}
		writer.updateReadDeadline()
	}
}
