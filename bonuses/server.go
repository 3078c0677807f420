package bonuses

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

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
	e := web.NewEcho("bonuses")

	s := &Server{
		addr:    addr,
		e:       e,
		checker: checker,
		repo:    repo,
	}

	e.GET("/privilege", s.Get)
	e.POST("/privilege", s.Purchase)
	e.DELETE("/privilege", s.Refund)
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

func historyToResponse(h entity.PrivilegeHistory) entity.PrivilegeHistoryResponse {
	return entity.PrivilegeHistoryResponse{
		Date:          h.Datetime.Format(entity.HistoryDateFormat),
		TicketUID:     h.TicketUID,
		BalanceDiff:   h.BalanceDiff,
		OperationType: h.OperationType,
	}
}

func (s *Server) Get(c echo.Context) error {
	username, ok := s.username(c)
	if !ok {
		return c.String(http.StatusUnauthorized, "Not authorized")
	}
	ctx := c.Request().Context()

	privilege, err := s.repo.GetPrivilege(ctx, username)
	if err != nil {
		return c.String(http.StatusNotFound, "Could not find user")
	}
	history, err := s.repo.GetHistory(ctx, username)
	if err != nil {
		return c.String(http.StatusNotFound, "Could not find history")
	}

	return c.JSON(http.StatusOK, entity.PrivilegeResponse{
		Balance: privilege.Balance,
		Status:  privilege.Status,
		History: lo.Map(history, func(h entity.PrivilegeHistory, _ int) entity.PrivilegeHistoryResponse {
			return historyToResponse(h)
		}),
	})
}

// Purchase records the loyalty effect of a ticket purchase: either a debit
// of up to the full price from the balance, or a credit of 10% of the price.
func (s *Server) Purchase(c echo.Context) error {
	username, ok := s.username(c)
	if !ok {
		return c.String(http.StatusUnauthorized, "Not authorized")
	}
	ctx := c.Request().Context()

	var post entity.PurchasePost
	if err := c.Bind(&post); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request body")
	}

	var paidByMoney, paidByBonuses int
	if post.PaidFromBalance {
		privilege, err := s.repo.GetPrivilege(ctx, username)
		if err != nil {
			return c.String(http.StatusNotFound, "Not found")
		}
		paidByBonuses = min(privilege.Balance, post.Price)
		paidByMoney = post.Price - paidByBonuses
		err = s.repo.AddHistory(ctx, entity.PrivilegeHistoryPost{
			Username:      username,
			TicketUID:     post.TicketUID,
			BalanceDiff:   paidByBonuses,
			OperationType: entity.OperationDebitTheAccount,
		})
		if err != nil {
			return c.String(http.StatusInternalServerError, "Error")
		}
	} else {
		paidByMoney = post.Price
		err := s.repo.AddHistory(ctx, entity.PrivilegeHistoryPost{
			Username:      username,
			TicketUID:     post.TicketUID,
			BalanceDiff:   post.Price / 10,
			OperationType: entity.OperationFillInBalance,
		})
		if err != nil {
			return c.String(http.StatusInternalServerError, "Error")
		}
	}

	privilege, err := s.repo.GetPrivilege(ctx, username)
	if err != nil {
		return c.String(http.StatusNotFound, "Not found")
	}
	return c.JSON(http.StatusOK, entity.PurchaseResponse{
		PaidByMoney:   paidByMoney,
		PaidByBonuses: paidByBonuses,
		Balance:       privilege.Balance,
		Status:        privilege.Status,
	})
}

// Refund reverses every ledger entry recorded for the ticket: debits become
// refills and refills become debits. Entries belonging to another user's
// privilege are refused outright.
func (s *Server) Refund(c echo.Context) error {
	username, ok := s.username(c)
	if !ok {
		return c.String(http.StatusUnauthorized, "Not authorized")
	}
	ctx := c.Request().Context()

	ticketUID, err := uuid.Parse(c.QueryParam("ticket_uid"))
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid ticket_uid")
	}

	privilege, err := s.repo.GetPrivilege(ctx, username)
	if err != nil {
		return c.String(http.StatusNotFound, "Not found")
	}
	operations, err := s.repo.GetHistoryByTicket(ctx, ticketUID)
	if err != nil {
		return c.String(http.StatusNotFound, "Not found")
	}

	for _, operation := range operations {
		if operation.PrivilegeID != privilege.ID {
			return c.String(http.StatusForbidden, "Error")
		}

		reversed := entity.OperationDebitTheAccount
		if operation.OperationType == entity.OperationDebitTheAccount {
			reversed = entity.OperationFillInBalance
		}
		err = s.repo.AddHistory(ctx, entity.PrivilegeHistoryPost{
			Username:      username,
			TicketUID:     ticketUID,
			BalanceDiff:   operation.BalanceDiff,
			OperationType: reversed,
		})
		if err != nil {
			return c.String(http.StatusInternalServerError, "Error")
		}
	}

	return c.NoContent(http.StatusNoContent)
}
