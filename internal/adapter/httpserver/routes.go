package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/adapter/metrics"
)

func (s *Server) registerRoutes() {
	s.echo.HTTPErrorHandler = newHTTPErrorHandler(s.httpMetrics.ErrorsTotal)

	s.echo.Use(correlationMiddleware)
	s.echo.Use(s.setupRequestLoggerMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(s.httpMetrics.Middleware())
	s.echo.Use(ErrorHandlingMiddleware(s.httpMetrics.ErrorsTotal))
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         63072000, // 2 years; only sent over HTTPS
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{s.config.CORSOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept, headerUserID, echo.HeaderXRequestID},
	}))

	s.registerHealthRoutes()
	s.echo.GET("/metrics", echo.WrapHandler(metrics.Handler(s.registry)))
	s.echo.GET("/ws", s.websocketHandler)

	api := s.echo.Group("/api", newRateLimiter(s.config.RateLimitPerSecond, s.config.RateLimitBurst, s.httpMetrics.ErrorsTotal))
	s.registerSupplierRoutes(api)
	s.registerUserRoutes(api.Group("/user", userMiddleware))
}

func (s *Server) registerSupplierRoutes(api *echo.Group) {
	api.GET("/suppliers", s.handleListSuppliers)
	api.POST("/suppliers/search", s.handleSearchSuppliers)
	api.GET("/suppliers/category/:category", s.handleSuppliersByCategory)
	api.GET("/suppliers/:id", s.handleGetSupplier)
	api.GET("/stats", s.handleStats)
	api.GET("/categories", s.handleCategories)
}

func (s *Server) registerUserRoutes(user *echo.Group) {
	user.GET("/favorites", s.handleGetFavorites)
	user.POST("/favorites/add", s.handleAddFavorite)
	user.POST("/favorites/remove", s.handleRemoveFavorite)

	user.GET("/notes", s.handleGetNotes)
	user.GET("/notes/:supplierId", s.handleGetNote)
	user.POST("/notes/save", s.handleSaveNote)

	user.GET("/inbox", s.handleGetInbox)
	user.POST("/inbox/add", s.handleAddInboxMessage)
	user.POST("/inbox/mark-read", s.handleMarkRead)

	user.GET("/preferences", s.handleGetPreferences)
	user.POST("/preferences", s.handleUpdatePreferences)

	user.GET("/profile", s.handleProfile)
}

func (s *Server) setupRequestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/health/live" || c.Path() == "/metrics"
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			slog.InfoContext(c.Request().Context(), "Request", attrs...)
			return nil
		},
	})
}
