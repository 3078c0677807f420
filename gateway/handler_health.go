package gateway

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/huds2/rsoi-05/entity"
)

// HealthCheck probes each downstream service's health endpoint. Both a
// transport failure and a non-200 answer count as down; the gateway itself
// is up by virtue of answering.
func (s *Server) HealthCheck(c echo.Context) error {
	ctx := c.Request().Context()
	return c.JSON(http.StatusOK, entity.HealthCheckResponse{
		Gateway: true,
		Flights: s.flights.Health(ctx),
		Tickets: s.tickets.Health(ctx),
		Bonuses: s.bonuses.Health(ctx),
	})
}
