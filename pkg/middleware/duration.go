// Package middleware provides echo middleware for the schemock service.
package middleware

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
)

// DurationHeader carries the time spent handling the request.
const DurationHeader = "X-Schemock-Duration"

// Duration sets the DurationHeader in milliseconds right before the response is written.
func Duration() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			c.Response().Before(func() {
				duration := float64(time.Since(start).Microseconds()) / 1000
				c.Response().Header().Set(DurationHeader, fmt.Sprintf("%.3fms", duration))
			})
			return next(c)
		}
	}
}
