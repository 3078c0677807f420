package gateway

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/huds2/rsoi-05/entity"
	"github.com/huds2/rsoi-05/requester"
)

func (s *Server) GetPrivilege(c echo.Context) error {
	token, ok := s.authToken(c)
	if !ok {
		return unauthorized(c)
	}

	privilege, err := s.bonuses.GetPrivilege(c.Request().Context(), token)
	if err != nil {
		return downstreamError(c, err)
	}
	return c.JSON(http.StatusOK, privilege)
}

// GetUser combines the caller's enriched tickets with their loyalty balance.
// A rejected loyalty fetch degrades to an empty balance; a rejected ticket
// list fails the whole request.
func (s *Server) GetUser(c echo.Context) error {
	token, ok := s.authToken(c)
	if !ok {
		return unauthorized(c)
	}
	ctx := c.Request().Context()

	balance := entity.Balance{Balance: 0, Status: "Generic status"}
	privilege, err := s.bonuses.GetPrivilege(ctx, token)
	switch {
	case err == nil:
		balance = entity.Balance{Balance: privilege.Balance, Status: privilege.Status}
	case errors.Is(err, requester.ErrRejected):
		// no loyalty account yet, serve the placeholder
	default:
		return c.String(http.StatusInternalServerError, "Internal error")
	}

	tickets, err := s.tickets.List(ctx, token)
	if err != nil {
		return downstreamError(c, err)
	}
	responses, err := s.enrichTickets(ctx, tickets)
	if err != nil {
		return c.String(http.StatusInternalServerError, "Internal error")
	}

	return c.JSON(http.StatusOK, entity.UserResponse{
		Tickets:   responses,
		Privilege: balance,
	})
}
