package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	// RequestIDHeader carries the request correlation id in both directions
	RequestIDHeader = "X-Request-ID"

	// Echo context keys
	RequestIDKey = "request_id"
	LoggerKey    = "logger"
)

// RequestID adds a unique request ID to each request.
// An incoming X-Request-ID is kept, otherwise a UUID is generated.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			c.Set(RequestIDKey, requestID)
			c.Response().Header().Set(RequestIDHeader, requestID)

			return next(c)
		}
	}
}

// GetRequestID extracts the request ID from the echo context
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextLogger derives a request-scoped logger from base and stores it on
// both the echo context and the request context, so code that only sees a
// context.Context can use zerolog.Ctx.
func ContextLogger(base zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			logger := base.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			c.Set(LoggerKey, &logger)
			c.SetRequest(c.Request().WithContext(logger.WithContext(c.Request().Context())))

			return next(c)
		}
	}
}

// GetLogger retrieves the request-scoped logger, or a no-op logger when
// ContextLogger did not run
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}
	logger := zerolog.Nop()
	return &logger
}

// RequestLogger logs one line per request, at a level chosen by status.
// Errors are handed to the echo error handler first so the logged status is
// the one the client received.
func RequestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:    true,
		LogLatency:   true,
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case v.Status >= http.StatusInternalServerError:
				e = logger.Error()
			case v.Status >= http.StatusBadRequest:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.Dur("latency", v.Latency).
				Int("status", v.Status).
				Str("uri", v.URI).
				Str("route", v.RoutePath).
				Str("user_agent", c.Request().UserAgent()).
				Msg("request")
			return nil
		},
	})
}

// Recover turns a panic into a 500 problem response and logs the stack
func Recover() echo.MiddlewareFunc {
	return echomw.RecoverWithConfig(echomw.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			GetLogger(c).Error().
				Err(err).
				Str("stack", string(stack)).
				Msg("panic recovered")
			return errors.WithStack(err)
		},
	})
}

// CORS returns a middleware that handles CORS for the given origins
func CORS(allowedOrigins []string) echo.MiddlewareFunc {
	return echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderContentType, RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        86400,
	})
}
