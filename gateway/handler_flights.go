package gateway

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/huds2/rsoi-05/web"
)

func (s *Server) ListFlights(c echo.Context) error {
	_, ok := s.authToken(c)
	if !ok {
		return unauthorized(c)
	}

	page := web.IntQuery(c, "page", 1)
	size := web.IntQuery(c, "size", 10)

	flights, err := s.flights.List(c.Request().Context(), page, size)
	if err != nil {
		return c.String(http.StatusInternalServerError, "Internal error")
	}
	return c.JSON(http.StatusOK, flights)
}
