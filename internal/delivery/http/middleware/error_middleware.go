package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"vendorbridge/config"
	"vendorbridge/internal/delivery/http/response"
	domainerrors "vendorbridge/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
	debug  bool
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger, cfg *config.Config) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
		debug:  cfg.Env.Debug,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	// Validation failures carry per-field messages
	var validationErr *domainerrors.ValidationError
	if errors.As(err, &validationErr) {
		fields := make([]response.FieldError, 0, len(validationErr.Fields()))
		for _, fieldErr := range validationErr.Fields() {
			fields = append(fields, response.FieldError{
				Field:   fieldErr.Field,
				Message: fieldErr.Message,
			})
		}

		if jsonErr := response.ValidationFailed(c, fields); jsonErr != nil {
			m.logger.Error("Failed to write validation error response", slog.Any("error", jsonErr))
		}

		return
	}

	// Known application errors map directly onto the envelope
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if jsonErr := response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details()); jsonErr != nil {
			m.logger.Error("Failed to write error response", slog.Any("error", jsonErr))
		}

		return
	}

	// Echo's own errors (404 route misses, body too large, etc.)
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := fmt.Sprintf("%v", httpErr.Message)
		if jsonErr := response.Error(c, httpErr.Code, "HTTP_ERROR", message, ""); jsonErr != nil {
			m.logger.Error("Failed to write error response", slog.Any("error", jsonErr))
		}

		return
	}

	// Anything else is an internal failure. The detail goes to the log; the
	// client only sees it when running in debug mode.
	m.logger.Error("Unhandled error",
		slog.String("error", err.Error()),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	details := ""
	if m.debug {
		details = err.Error()
	}

	if jsonErr := response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", details); jsonErr != nil {
		m.logger.Error("Failed to write error response", slog.Any("error", jsonErr))
	}
}
