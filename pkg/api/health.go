package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// healthHandler handles health routes.
type healthHandler struct {
	router *Router
}

// ServiceHeader carries the configured service title on health responses.
const ServiceHeader = "X-Schemock-Service"

// health indicates that the service is running.
func (h *healthHandler) health(c echo.Context) error {
	c.Response().Header().Set(ServiceHeader, h.router.Config().App.Title)
	return c.String(http.StatusOK, "OK")
}

func CreateHealthRoutes(router *Router) {
	handler := &healthHandler{
		router: router,
	}

	router.GET("/healthz", handler.health)
}
