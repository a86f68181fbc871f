package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

// Logger logs every request through the slog logger.
// Failed requests are logged at warn level together with the error.
func Logger(logger *slog.Logger) echo.MiddlewareFunc {
	return echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			attrs := []any{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("duration", v.Latency.String()),
				slog.String("requestID", v.RequestID),
			}
			if v.Error != nil {
				logger.Warn("request failed", append(attrs, slog.String("error", v.Error.Error()))...)
				return nil
			}
			logger.Info("request", attrs...)
			return nil
		},
	})
}
