// Package flights is the flight catalog service. Read-only from the
// platform's point of view; rows are seeded out of band.
package flights

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/huds2/rsoi-05/entity"
)

type Repository interface {
	List(ctx context.Context) ([]entity.Flight, error)
	GetFlight(ctx context.Context, flightNumber string) (entity.Flight, error)
	GetAirport(ctx context.Context, airportID int) (entity.Airport, error)
}

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func InitializeSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS airport
		(
			id      SERIAL PRIMARY KEY,
			name    VARCHAR(255),
			city    VARCHAR(255),
			country VARCHAR(255)
		)
	`)
	if err != nil {
		return fmt.Errorf("could not initialize airport schema: %w", err)
	}
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS flight
		(
			id              SERIAL PRIMARY KEY,
			flight_number   VARCHAR(20)              NOT NULL,
			datetime        TIMESTAMP WITH TIME ZONE NOT NULL,
			from_airport_id INT REFERENCES airport (id),
			to_airport_id   INT REFERENCES airport (id),
			price           INT                      NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("could not initialize flight schema: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]entity.Flight, error) {
	var flights []entity.Flight
	err := r.db.SelectContext(ctx, &flights, `
		SELECT id, flight_number, datetime, from_airport_id, to_airport_id, price
		FROM flight
		ORDER BY id
	`)
	return flights, err
}

func (r *PostgresRepository) GetFlight(ctx context.Context, flightNumber string) (entity.Flight, error) {
	var flight entity.Flight
	err := r.db.GetContext(ctx, &flight, `
		SELECT id, flight_number, datetime, from_airport_id, to_airport_id, price
		FROM flight
		WHERE flight_number = $1
	`, flightNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Flight{}, entity.ErrNotFound
	}
	return flight, err
}

func (r *PostgresRepository) GetAirport(ctx context.Context, airportID int) (entity.Airport, error) {
	var airport entity.Airport
	err := r.db.GetContext(ctx, &airport, `
		SELECT id, name, city, country
		FROM airport
		WHERE id = $1
	`, airportID)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Airport{}, entity.ErrNotFound
	}
	return airport, err
}
