package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/adapter/metrics"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/domain"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/platform/config"
	"github.com/prometheus/client_golang/prometheus"
)

type catalogService interface {
	Snapshot() *domain.Snapshot
	GetByID(id string) (domain.Supplier, error)
	Search(req domain.SearchRequest) []domain.Supplier
	ByCategory(category string) []domain.Supplier
	Stats() domain.CatalogStats
}

type workspaceStore interface {
	Favorites(userID string) []string
	AddFavorite(userID, supplierID string) ([]string, error)
	RemoveFavorite(userID, supplierID string) ([]string, error)
	SaveNote(userID, supplierID, content string) (map[string]domain.Note, error)
	Note(userID, supplierID string) (domain.Note, bool)
	Notes(userID string) map[string]domain.Note
	AddInboxMessage(userID, title, message, supplierID string) []domain.InboxMessage
	Inbox(userID string) []domain.InboxMessage
	MarkRead(userID, messageID string) ([]domain.InboxMessage, error)
	Preferences(userID string) map[string]any
	UpdatePreferences(userID string, updates map[string]any) map[string]any
	Profile(userID string) domain.Profile
}

type Server struct {
	echo   *echo.Echo
	config *config.Config
	clock  clockwork.Clock

	catalog   catalogService
	workspace workspaceStore

	websocketHandler echo.HandlerFunc

	registry       *prometheus.Registry
	httpMetrics    *metrics.HTTPMetrics
	catalogMetrics *metrics.CatalogMetrics

	healthChecks []HealthCheck
	startTime    time.Time
}

func NewServer(
	cfg *config.Config,
	clock clockwork.Clock,
	catalog catalogService,
	workspace workspaceStore,
	websocketHandler echo.HandlerFunc,
	registry *prometheus.Registry,
	healthChecks []HealthCheck,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:             e,
		config:           cfg,
		clock:            clock,
		catalog:          catalog,
		workspace:        workspace,
		websocketHandler: websocketHandler,
		registry:         registry,
		httpMetrics:      metrics.NewHTTPMetrics(registry),
		catalogMetrics:   metrics.NewCatalogMetrics(registry),
		healthChecks:     healthChecks,
		startTime:        clock.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "addr", s.config.Addr())
	if err := s.echo.Start(s.config.Addr()); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

func (s *Server) uptime() float64 {
	return s.clock.Since(s.startTime).Seconds()
}
