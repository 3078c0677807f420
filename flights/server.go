package flights

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/huds2/rsoi-05/entity"
	"github.com/huds2/rsoi-05/web"
)

type Server struct {
	addr string
	e    *echo.Echo
	repo Repository
}

// NewServer wires the flight catalog routes. The catalog is public: no
// token is required, matching the gateway which queries it anonymously.
func NewServer(addr string, repo Repository) *Server {
	e := web.NewEcho("flights")

	s := &Server{
		addr: addr,
		e:    e,
		repo: repo,
	}

	e.GET("/flights", s.List)
	e.GET("/flights/:number", s.Get)
	e.GET("/manage/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Up and running")
	})

	return s
}

func (s *Server) Run(ctx context.Context) error {
	return web.Run(ctx, s.e, s.addr)
}

func (s *Server) toResponse(ctx context.Context, flight entity.Flight) (entity.FlightResponse, error) {
	from, err := s.repo.GetAirport(ctx, flight.FromAirportID)
	if err != nil {
		return entity.FlightResponse{}, err
	}
	to, err := s.repo.GetAirport(ctx, flight.ToAirportID)
	if err != nil {
		return entity.FlightResponse{}, err
	}
	return entity.FlightResponse{
		FlightNumber: flight.FlightNumber,
		FromAirport:  fmt.Sprintf("%s %s", from.City, from.Name),
		ToAirport:    fmt.Sprintf("%s %s", to.City, to.Name),
		Date:         flight.Datetime.Format(entity.FlightDateFormat),
		Price:        flight.Price,
	}, nil
}

func (s *Server) List(c echo.Context) error {
	ctx := c.Request().Context()

	page := web.IntQuery(c, "page", 1)
	size := web.IntQuery(c, "size", 10)

	flights, err := s.repo.List(ctx)
	if err != nil {
		return c.String(http.StatusNotFound, "Not found")
	}

	offset := (page - 1) * size
	end := min(offset+size, len(flights))
	items := make([]entity.FlightResponse, 0, size)
	for i := offset; i < end; i++ {
		item, err := s.toResponse(ctx, flights[i])
		if err != nil {
			return c.String(http.StatusNotFound, "Not found")
		}
		items = append(items, item)
	}

	return c.JSON(http.StatusOK, entity.FlightPage{
		Page:          page,
		PageSize:      size,
		TotalElements: len(flights),
		Items:         items,
	})
}

func (s *Server) Get(c echo.Context) error {
	ctx := c.Request().Context()

	flight, err := s.repo.GetFlight(ctx, c.Param("number"))
	if err != nil {
		return c.String(http.StatusNotFound, "Not found")
	}
	response, err := s.toResponse(ctx, flight)
	if err != nil {
		return c.String(http.StatusNotFound, "Not found")
	}
	return c.JSON(http.StatusOK, response)
}
