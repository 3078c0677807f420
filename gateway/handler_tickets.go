package gateway

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/huds2/rsoi-05/compensation"
	"github.com/huds2/rsoi-05/entity"
	"github.com/huds2/rsoi-05/metrics"
	"github.com/huds2/rsoi-05/requester"
)

// Placeholder values served when a ticket's flight can no longer be
// resolved. The ticket itself is still returned.
const (
	placeholderDate        = "1970-01-01 00:00"
	placeholderFromAirport = "Departure airport"
	placeholderToAirport   = "Destination airport"
)

// enrichTicket resolves the ticket's flight details. A rejected flight
// lookup degrades to placeholders; a transport failure propagates.
func (s *Server) enrichTicket(ctx context.Context, ticket entity.Ticket) (entity.TicketResponse, error) {
	flight, err := s.flights.Get(ctx, ticket.FlightNumber)
	if err != nil {
		if errors.Is(err, requester.ErrRejected) {
			return entity.TicketResponse{
				TicketUID:    ticket.TicketUID,
				FlightNumber: ticket.FlightNumber,
				FromAirport:  placeholderFromAirport,
				ToAirport:    placeholderToAirport,
				Date:         placeholderDate,
				Price:        ticket.Price,
				Status:       ticket.Status,
			}, nil
		}
		return entity.TicketResponse{}, err
	}
	return entity.TicketResponse{
		TicketUID:    ticket.TicketUID,
		FlightNumber: flight.FlightNumber,
		FromAirport:  flight.FromAirport,
		ToAirport:    flight.ToAirport,
		Date:         flight.Date,
		Price:        flight.Price,
		Status:       ticket.Status,
	}, nil
}

func (s *Server) enrichTickets(ctx context.Context, tickets []entity.Ticket) ([]entity.TicketResponse, error) {
	responses := make([]entity.TicketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		response, err := s.enrichTicket(ctx, ticket)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}
	return responses, nil
}

func (s *Server) ListTickets(c echo.Context) error {
	token, ok := s.authToken(c)
	if !ok {
		return unauthorized(c)
	}
	ctx := c.Request().Context()

	tickets, err := s.tickets.List(ctx, token)
	if err != nil {
		return downstreamError(c, err)
	}

	responses, err := s.enrichTickets(ctx, tickets)
	if err != nil {
		return c.String(http.StatusInternalServerError, "Internal error")
	}
	return c.JSON(http.StatusOK, responses)
}

func (s *Server) GetTicket(c echo.Context) error {
	token, ok := s.authToken(c)
	if !ok {
		return unauthorized(c)
	}
	ctx := c.Request().Context()

	ticketUID, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		return c.String(http.StatusNotFound, "Not found")
	}

	ticket, err := s.tickets.Get(ctx, token, ticketUID)
	if err != nil {
		return downstreamError(c, err)
	}

	response, err := s.enrichTicket(ctx, ticket)
	if err != nil {
		return c.String(http.StatusInternalServerError, "Internal error")
	}
	return c.JSON(http.StatusOK, response)
}

// PurchaseTicket runs the purchase saga: validate the price against the
// flight catalog, create the ticket, then apply the loyalty effect. If the
// loyalty step fails the ticket is deleted again, so either both records
// exist afterwards or neither does.
func (s *Server) PurchaseTicket(c echo.Context) error {
	token, ok := s.authToken(c)
	if !ok {
		return unauthorized(c)
	}
	ctx := c.Request().Context()

	var request entity.PurchaseRequest
	if err := c.Bind(&request); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request body")
	}

	flight, err := s.flights.Get(ctx, request.FlightNumber)
	if err != nil {
		return downstreamError(c, err)
	}
	if flight.Price != request.Price {
		return c.String(http.StatusBadRequest, "Ticket price does not match")
	}

	// Nothing has been created up to here; failures are terminal.
	ticket, err := s.tickets.Create(ctx, token, entity.TicketPost{
		FlightNumber: request.FlightNumber,
		Price:        request.Price,
	})
	if err != nil {
		return downstreamError(c, err)
	}

	purchase, err := s.bonuses.Purchase(ctx, token, entity.PurchasePost{
		TicketUID:       ticket.TicketUID,
		Price:           ticket.Price,
		PaidFromBalance: request.PaidFromBalance,
	})
	if err != nil {
		// Compensate: the ticket exists but its loyalty entry does not.
		if delErr := s.tickets.Delete(ctx, token, ticket.TicketUID); delErr != nil {
			metrics.OrphanedTickets.Inc()
			logrus.WithError(delErr).
				WithField("ticket_uid", ticket.TicketUID).
				Error("compensating delete failed, ticket orphaned")
			return c.String(http.StatusInternalServerError, "Failed to return ticket")
		}
		return c.String(http.StatusInternalServerError, "Internal error")
	}

	response, err := s.enrichTicket(ctx, ticket)
	if err != nil {
		return c.String(http.StatusInternalServerError, "Internal error")
	}
	return c.JSON(http.StatusOK, entity.PurchaseTicketResponse{
		TicketUID:     response.TicketUID,
		FlightNumber:  response.FlightNumber,
		FromAirport:   response.FromAirport,
		ToAirport:     response.ToAirport,
		Date:          response.Date,
		Price:         response.Price,
		PaidByMoney:   purchase.PaidByMoney,
		PaidByBonuses: purchase.PaidByBonuses,
		Status:        response.Status,
		Privilege: entity.Balance{
			Balance: purchase.Balance,
			Status:  purchase.Status,
		},
	})
}

// CancelTicket runs the cancellation saga. The ticket-service cancel happens
// inline; the loyalty reversal is queued for the background worker, so the
// caller gets a response without waiting on the bonus service.
func (s *Server) CancelTicket(c echo.Context) error {
	token, ok := s.authToken(c)
	if !ok {
		return unauthorized(c)
	}
	ctx := c.Request().Context()

	ticketUID, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		return c.String(http.StatusNotFound, "Not found")
	}

	ticket, err := s.tickets.Get(ctx, token, ticketUID)
	if err != nil {
		return downstreamError(c, err)
	}
	if ticket.Status != entity.TicketStatusPaid {
		return c.String(http.StatusBadRequest, "Ticket already canceled")
	}

	if err := s.tickets.Cancel(ctx, token, ticketUID); err != nil {
		return downstreamError(c, err)
	}

	s.queue.Push(compensation.Request{
		TicketUID: ticketUID,
		AuthToken: token,
	})
	return c.NoContent(http.StatusNoContent)
}
