// Package tickets is the ticket inventory service: a Postgres-backed record
// store behind a small HTTP surface. Tickets belong to the username baked
// into their row; the service enforces ownership, the gateway does not.
package tickets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/huds2/rsoi-05/entity"
)

type Repository interface {
	List(ctx context.Context, username string) ([]entity.Ticket, error)
	Get(ctx context.Context, ticketUID uuid.UUID) (entity.Ticket, error)
	Create(ctx context.Context, post entity.TicketPost, username string) (entity.Ticket, error)
	Cancel(ctx context.Context, ticketUID uuid.UUID) error
	Delete(ctx context.Context, ticketUID uuid.UUID) error
}

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func InitializeSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS ticket
		(
			id            SERIAL PRIMARY KEY,
			ticket_uid    uuid UNIQUE NOT NULL,
			username      VARCHAR(80) NOT NULL,
			flight_number VARCHAR(20) NOT NULL,
			price         INT         NOT NULL,
			status        VARCHAR(20) NOT NULL CHECK (status IN ('PAID', 'CANCELED'))
		)
	`)
	if err != nil {
		return fmt.Errorf("could not initialize ticket schema: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, username string) ([]entity.Ticket, error) {
	var tickets []entity.Ticket
	err := r.db.SelectContext(ctx, &tickets, `
		SELECT id, ticket_uid, username, flight_number, price, status
		FROM ticket
		WHERE username = $1
		ORDER BY id
	`, username)
	return tickets, err
}

func (r *PostgresRepository) Get(ctx context.Context, ticketUID uuid.UUID) (entity.Ticket, error) {
	var ticket entity.Ticket
	err := r.db.GetContext(ctx, &ticket, `
		SELECT id, ticket_uid, username, flight_number, price, status
		FROM ticket
		WHERE ticket_uid = $1
	`, ticketUID)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Ticket{}, entity.ErrNotFound
	}
	return ticket, err
}

func (r *PostgresRepository) Create(ctx context.Context, post entity.TicketPost, username string) (entity.Ticket, error) {
	ticketUID := uuid.New()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ticket (ticket_uid, username, flight_number, price, status)
		VALUES ($1, $2, $3, $4, $5)
	`, ticketUID, username, post.FlightNumber, post.Price, entity.TicketStatusPaid)
	if err != nil {
		return entity.Ticket{}, fmt.Errorf("could not insert ticket: %w", err)
	}
	return r.Get(ctx, ticketUID)
}

func (r *PostgresRepository) Cancel(ctx context.Context, ticketUID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE ticket
		SET status = 'CANCELED'
		WHERE ticket_uid = $1
	`, ticketUID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, ticketUID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM ticket
		WHERE ticket_uid = $1
	`, ticketUID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func requireRowAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}
