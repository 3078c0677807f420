// Package web holds the echo server setup shared by all services.
package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v3"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

const correlationIDHeader = "X-Correlation-ID"

// NewEcho returns an echo instance with tracing, correlation ids and request
// logging wired in.
func NewEcho(serviceName string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(otelecho.Middleware(serviceName))
	e.Use(correlationID)
	e.Use(requestLogger(serviceName))

	return e
}

func correlationID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(correlationIDHeader)
		if id == "" {
			id = shortuuid.New()
			c.Request().Header.Set(correlationIDHeader, id)
		}
		c.Response().Header().Set(correlationIDHeader, id)
		return next(c)
	}
}

func requestLogger(serviceName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			entry := logrus.WithFields(logrus.Fields{
				"service":        serviceName,
				"method":         c.Request().Method,
				"path":           c.Request().URL.Path,
				"status":         c.Response().Status,
				"duration_ms":    time.Since(start).Milliseconds(),
				"correlation_id": c.Request().Header.Get(correlationIDHeader),
			})
			if err != nil {
				entry.WithError(err).Error("request failed")
			} else {
				entry.Info("request handled")
			}
			return err
		}
	}
}

// IntQuery reads a positive integer query parameter, falling back when the
// parameter is absent or malformed.
func IntQuery(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

// Run starts the server and shuts it down when ctx is canceled.
func Run(ctx context.Context, e *echo.Echo, addr string) error {
	go func() {
		<-ctx.Done()
		if err := e.Shutdown(context.Background()); err != nil {
			logrus.WithError(err).Error("failed to shutdown HTTP server")
		}
	}()

	logrus.WithField("addr", addr).Info("[HTTP] server listening")
	if err := e.Start(addr); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
