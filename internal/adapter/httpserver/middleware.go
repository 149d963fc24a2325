package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/domain"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/platform/correlation"
	apperrors "github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/platform/errors"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/workspace"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	headerUserID = "X-User-ID"
	ctxKeyUserID = "userID"
)

// correlationMiddleware tags the request context with a correlation ID, reusing
// a well-formed X-Request-ID from the client, and echoes it in the response.
func correlationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := correlation.FromHeader(c.Request().Header.Get(echo.HeaderXRequestID))
		if !ok {
			id = correlation.NewID()
		}
		ctx := correlation.WithID(c.Request().Context(), id)
		c.SetRequest(c.Request().WithContext(ctx))
		c.Response().Header().Set(echo.HeaderXRequestID, id)
		return next(c)
	}
}

// userMiddleware resolves the workspace owner from X-User-ID.
func userMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := strings.TrimSpace(c.Request().Header.Get(headerUserID))
		if userID == "" {
			userID = workspace.AnonymousUser
		}
		c.Set(ctxKeyUserID, userID)
		return next(c)
	}
}

func currentUser(c echo.Context) string {
	if userID, ok := c.Get(ctxKeyUserID).(string); ok && userID != "" {
		return userID
	}
	return workspace.AnonymousUser
}

// ErrorHandlingMiddleware renders every handler error as a JSON error envelope
// and counts it by type. errorsTotal may be nil.
func ErrorHandlingMiddleware(errorsTotal *prometheus.CounterVec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}
			if c.Response().Committed {
				return err
			}
			return renderError(c, errorsTotal, err)
		}
	}
}

// newHTTPErrorHandler renders errors that bypass ErrorHandlingMiddleware, such
// as panics caught by the recover middleware, in the same JSON envelope.
func newHTTPErrorHandler(errorsTotal *prometheus.CounterVec) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if writeErr := renderError(c, errorsTotal, err); writeErr != nil {
			slog.ErrorContext(c.Request().Context(), "Failed to write error response", "error", writeErr)
		}
	}
}

func renderError(c echo.Context, errorsTotal *prometheus.CounterVec, err error) error {
	structuredErr := toStructuredError(err)
	if errorsTotal != nil {
		errorsTotal.WithLabelValues(string(structuredErr.Type)).Inc()
	}
	logError(c, structuredErr)

	if err := c.JSON(structuredErr.HTTPStatus(), structuredErr.ToResponse()); err != nil {
		return fmt.Errorf("failed to write error response: %w", err)
	}
	return nil
}

// toStructuredError maps domain and framework errors onto structured errors.
func toStructuredError(err error) *apperrors.Error {
	if httpErr, ok := errors.AsType[*echo.HTTPError](err); ok {
		return WrapHTTPError(httpErr)
	}

	switch {
	case errors.Is(err, domain.ErrSupplierNotFound):
		return apperrors.NotFoundError("Supplier not found")
	case errors.Is(err, workspace.ErrSupplierIDRequired), errors.Is(err, workspace.ErrMessageIDRequired):
		return apperrors.ValidationError(err.Error())
	}

	return apperrors.AsStructuredError(err)
}

func logError(c echo.Context, err *apperrors.Error) {
	attrs := []any{
		"error_type", err.Type,
		"message", err.Message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"status", err.HTTPStatus(),
	}

	for k, v := range err.Context {
		attrs = append(attrs, k, v)
	}

	if userID := c.Get(ctxKeyUserID); userID != nil {
		attrs = append(attrs, "user_id", userID)
	}

	ctx := c.Request().Context()
	switch err.Type {
	case apperrors.TypeValidation, apperrors.TypeNotFound:
		slog.InfoContext(ctx, "Client error", attrs...)
	case apperrors.TypeRateLimited:
		slog.WarnContext(ctx, "Rate limited", attrs...)
	case apperrors.TypeUnavailable:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.WarnContext(ctx, "Service unavailable", attrs...)
	default:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.ErrorContext(ctx, "Internal error", attrs...)
	}
}

// WrapHTTPError converts Echo's HTTPError to a structured error.
func WrapHTTPError(httpErr *echo.HTTPError) *apperrors.Error {
	message := http.StatusText(httpErr.Code)
	if msg, ok := httpErr.Message.(string); ok && msg != "" {
		message = msg
	}
	if message == "" {
		message = "internal server error"
	}

	var err *apperrors.Error
	switch {
	case httpErr.Code == http.StatusNotFound:
		err = apperrors.NotFoundError(message)
	case httpErr.Code == http.StatusTooManyRequests:
		err = apperrors.RateLimitedError(message)
	case httpErr.Code == http.StatusServiceUnavailable:
		err = apperrors.UnavailableError(message, nil)
	case httpErr.Code >= 400 && httpErr.Code < 500:
		// Method not allowed, unsupported media type and friends are client mistakes
		err = apperrors.ValidationError(message)
	default:
		err = apperrors.InternalError(message, nil)
	}

	if httpErr.Internal != nil {
		err.Cause = httpErr.Internal
	}
	return err
}
