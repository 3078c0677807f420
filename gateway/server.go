// Package gateway is the platform's public face. It authenticates callers,
// fans requests out to the flight, ticket and bonus services, and keeps
// tickets and loyalty balances consistent through compensating actions
// instead of a shared transaction.
package gateway

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/huds2/rsoi-05/auth"
	"github.com/huds2/rsoi-05/clients"
	"github.com/huds2/rsoi-05/compensation"
	"github.com/huds2/rsoi-05/requester"
	"github.com/huds2/rsoi-05/web"
)

type Server struct {
	addr    string
	e       *echo.Echo
	checker *auth.Checker
	flights *clients.FlightsClient
	tickets *clients.TicketsClient
	bonuses *clients.BonusesClient
	queue   *compensation.Queue
}

func NewServer(
	addr string,
	checker *auth.Checker,
	flights *clients.FlightsClient,
	tickets *clients.TicketsClient,
	bonuses *clients.BonusesClient,
	queue *compensation.Queue,
) *Server {
	e := web.NewEcho("gateway")

	s := &Server{
		addr:    addr,
		e:       e,
		checker: checker,
		flights: flights,
		tickets: tickets,
		bonuses: bonuses,
		queue:   queue,
	}

	api := e.Group("/api/v1")
	api.GET("/flights", s.ListFlights)
	api.GET("/tickets", s.ListTickets)
	api.POST("/tickets", s.PurchaseTicket)
	api.GET("/tickets/:uid", s.GetTicket)
	api.DELETE("/tickets/:uid", s.CancelTicket)
	api.GET("/privilege", s.GetPrivilege)
	api.GET("/me", s.GetUser)

	e.GET("/manage/health", s.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.String(http.StatusUnauthorized, "Not authorized")
	})

	return s
}

func (s *Server) Run(ctx context.Context) error {
	return web.Run(ctx, s.e, s.addr)
}

// authToken verifies the caller's bearer token and returns the raw header
// value, which is forwarded downstream as-is.
func (s *Server) authToken(c echo.Context) (string, bool) {
	token := c.Request().Header.Get(echo.HeaderAuthorization)
	if _, err := s.checker.DecodeHeader(token); err != nil {
		return "", false
	}
	return token, true
}

func unauthorized(c echo.Context) error {
	return c.String(http.StatusUnauthorized, "Not authorized")
}

// downstreamError translates a downstream failure for the caller: a rejected
// response maps to 404, anything else is an internal error.
func downstreamError(c echo.Context, err error) error {
	if errors.Is(err, requester.ErrRejected) {
		return c.String(http.StatusNotFound, "Not found")
	}
	return c.String(http.StatusInternalServerError, "Internal error")
}
