package entity

import (
	"database/sql"
	"time"
)

// FlightDateFormat is the wire format for departure timestamps.
const FlightDateFormat = "2006-01-02 15:04"

type Flight struct {
	ID            int       `db:"id"`
	FlightNumber  string    `db:"flight_number"`
	Datetime      time.Time `db:"datetime"`
	FromAirportID int       `db:"from_airport_id"`
	ToAirportID   int       `db:"to_airport_id"`
	Price         int       `db:"price"`
}

type Airport struct {
	ID      int            `db:"id"`
	Name    string         `db:"name"`
	City    string         `db:"city"`
	Country sql.NullString `db:"country"`
}

// FlightResponse is the flight as served to clients, airports resolved
// to "City Name" strings.
type FlightResponse struct {
	FlightNumber string `json:"flightNumber"`
	FromAirport  string `json:"fromAirport"`
	ToAirport    string `json:"toAirport"`
	Date         string `json:"date"`
	Price        int    `json:"price"`
}

type FlightPage struct {
	Page          int              `json:"page"`
	PageSize      int              `json:"pageSize"`
	TotalElements int              `json:"totalElements"`
	Items         []FlightResponse `json:"items"`
}
