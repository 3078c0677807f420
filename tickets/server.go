package tickets

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/huds2/rsoi-05/auth"
	"github.com/huds2/rsoi-05/entity"
	"github.com/huds2/rsoi-05/web"
)

type Server struct {
	addr    string
	e       *echo.Echo
	checker *auth.Checker
	repo    Repository
}

func NewServer(addr string, checker *auth.Checker, repo Repository) *Server {
	e := web.NewEcho("tickets")

	s := &Server{
		addr:    addr,
		e:       e,
		checker: checker,
		repo:    repo,
	}

	e.GET("/tickets", s.List)
	e.POST("/tickets", s.Create)
	e.GET("/tickets/:uid", s.Get)
	e.DELETE("/tickets/:uid", s.Delete)
	e.DELETE("/tickets/:uid/cancel", s.Cancel)
	e.GET("/manage/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Up and running")
	})

	return s
}

func (s *Server) Run(ctx context.Context) error {
	return web.Run(ctx, s.e, s.addr)
}

func (s *Server) username(c echo.Context) (string, bool) {
	username, err := s.checker.DecodeHeader(c.Request().Header.Get(echo.HeaderAuthorization))
	if err != nil {
		return "", false
	}
	return username, true
}

func (s *Server) List(c echo.Context) error {
	username, ok := s.username(c)
	if !ok {
		return c.String(http.StatusUnauthorized, "Not authorized")
	}

	tickets, err := s.repo.List(c.Request().Context(), username)
	if err != nil {
		return c.String(http.StatusNotFound, "Not found")
	}
	if tickets == nil {
		tickets = []entity.Ticket{}
	}
	return c.JSON(http.StatusOK, tickets)
}

func (s *Server) Get(c echo.Context) error {
	username, ok := s.username(c)
	if !ok {
		return c.String(http.StatusUnauthorized, "Not authorized")
	}

	ticketUID, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		return c.String(http.StatusNotFound, "Not found")
	}

	ticket, err := s.repo.Get(c.Request().Context(), ticketUID)
	if err != nil || ticket.Username != username {
		return c.String(http.StatusNotFound, "Not found")
	}
	return c.JSON(http.StatusOK, ticket)
}

func (s *Server) Create(c echo.Context) error {
	username, ok := s.username(c)
	if !ok {
		return c.String(http.StatusUnauthorized, "Not authorized")
	}

	var post entity.TicketPost
	if err := c.Bind(&post); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request body")
	}

	ticket, err := s.repo.Create(c.Request().Context(), post, username)
	if err != nil {
		return c.String(http.StatusInternalServerError, "Encountered an error")
	}
	return c.JSON(http.StatusCreated, ticket)
}

func (s *Server) Cancel(c echo.Context) error {
	return s.removeTicket(c, s.repo.Cancel)
}

func (s *Server) Delete(c echo.Context) error {
	return s.removeTicket(c, s.repo.Delete)
}

func (s *Server) removeTicket(c echo.Context, action func(context.Context, uuid.UUID) error) error {
	username, ok := s.username(c)
	if !ok {
		return c.String(http.StatusUnauthorized, "Not authorized")
	}

	ticketUID, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		return c.String(http.StatusNotFound, "Not found")
	}

	ctx := c.Request().Context()
	ticket, err := s.repo.Get(ctx, ticketUID)
	if err != nil || ticket.Username != username {
		return c.String(http.StatusNotFound, "Not found")
	}

	if err := action(ctx, ticketUID); err != nil {
		return c.String(http.StatusNotFound, "Not found")
	}
	return c.NoContent(http.StatusNoContent)
}
