package httpserver

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	apperrors "github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/platform/errors"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

const rateLimiterExpiry = 5 * time.Minute

// newRateLimiter throttles the catalog and workspace API. Requests that carry
// X-User-ID share one bucket per user; the rest are bucketed by client IP.
// Denials are counted on deniedTotal (may be nil) under "rate_limited".
func newRateLimiter(ratePerSecond float64, burst int, deniedTotal *prometheus.CounterVec) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(
		middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(ratePerSecond),
			Burst:     burst,
			ExpiresIn: rateLimiterExpiry,
		},
	)

	retryAfter := ""
	if ratePerSecond > 0 {
		retryAfter = strconv.Itoa(int(math.Ceil(1 / ratePerSecond)))
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		IdentifierExtractor: rateLimitKey,
		Store:               store,
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			deny := apperrors.RateLimitedError("rate limit exceeded")
			if deniedTotal != nil {
				deniedTotal.WithLabelValues(string(deny.Type)).Inc()
			}
			if retryAfter != "" {
				c.Response().Header().Set(echo.HeaderRetryAfter, retryAfter)
			}
			return c.JSON(deny.HTTPStatus(), deny.ToResponse())
		},
	})
}

func rateLimitKey(c echo.Context) (string, error) {
	if userID := strings.TrimSpace(c.Request().Header.Get(headerUserID)); userID != "" {
		return "user:" + userID, nil
	}
	return "ip:" + c.RealIP(), nil
}
