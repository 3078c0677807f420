package entity

import "github.com/google/uuid"

const (
	TicketStatusPaid     = "PAID"
	TicketStatusCanceled = "CANCELED"
)

type Ticket struct {
	ID           int       `json:"id" db:"id"`
	TicketUID    uuid.UUID `json:"ticket_uid" db:"ticket_uid"`
	Username     string    `json:"username" db:"username"`
	FlightNumber string    `json:"flight_number" db:"flight_number"`
	Price        int       `json:"price" db:"price"`
	Status       string    `json:"status" db:"status"`
}

type TicketPost struct {
	FlightNumber string `json:"flight_number"`
	Price        int    `json:"price"`
}

// PurchaseRequest is the gateway's inbound body for POST /tickets.
type PurchaseRequest struct {
	FlightNumber    string `json:"flightNumber"`
	Price           int    `json:"price"`
	PaidFromBalance bool   `json:"paidFromBalance"`
}

// TicketResponse is a ticket enriched with flight details.
type TicketResponse struct {
	TicketUID    uuid.UUID `json:"ticketUid"`
	FlightNumber string    `json:"flightNumber"`
	FromAirport  string    `json:"fromAirport"`
	ToAirport    string    `json:"toAirport"`
	Date         string    `json:"date"`
	Price        int       `json:"price"`
	Status       string    `json:"status"`
}

// PurchaseTicketResponse is the combined result of a successful purchase:
// the enriched ticket plus the money/bonus split and the updated balance.
type PurchaseTicketResponse struct {
	TicketUID     uuid.UUID `json:"ticketUid"`
	FlightNumber  string    `json:"flightNumber"`
	FromAirport   string    `json:"fromAirport"`
	ToAirport     string    `json:"toAirport"`
	Date          string    `json:"date"`
	Price         int       `json:"price"`
	PaidByMoney   int       `json:"paidByMoney"`
	PaidByBonuses int       `json:"paidByBonuses"`
	Status        string    `json:"status"`
	Privilege     Balance   `json:"privilege"`
}
