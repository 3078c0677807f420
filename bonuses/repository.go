// Package bonuses is the loyalty service. Balances are only ever changed by
// appending a ledger entry; the ledger has no deduplication key, so each
// append is one balance adjustment.
package bonuses

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/huds2/rsoi-05/entity"
)

type Repository interface {
	GetPrivilege(ctx context.Context, username string) (entity.Privilege, error)
	GetHistory(ctx context.Context, username string) ([]entity.PrivilegeHistory, error)
	GetHistoryByTicket(ctx context.Context, ticketUID uuid.UUID) ([]entity.PrivilegeHistory, error)
	AddHistory(ctx context.Context, post entity.PrivilegeHistoryPost) error
}

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func InitializeSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS privilege
		(
			id       SERIAL PRIMARY KEY,
			username VARCHAR(80) NOT NULL UNIQUE,
			status   VARCHAR(80) NOT NULL DEFAULT 'BRONZE'
				CHECK (status IN ('BRONZE', 'SILVER', 'GOLD')),
			balance  INT
		)
	`)
	if err != nil {
		return fmt.Errorf("could not initialize privilege schema: %w", err)
	}
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS privilege_history
		(
			id             SERIAL PRIMARY KEY,
			privilege_id   INT REFERENCES privilege (id),
			ticket_uid     uuid        NOT NULL,
			datetime       TIMESTAMP   NOT NULL,
			balance_diff   INT         NOT NULL,
			operation_type VARCHAR(20) NOT NULL
				CHECK (operation_type IN ('FILL_IN_BALANCE', 'DEBIT_THE_ACCOUNT'))
		)
	`)
	if err != nil {
		return fmt.Errorf("could not initialize privilege_history schema: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetPrivilege(ctx context.Context, username string) (entity.Privilege, error) {
	var privilege entity.Privilege
	err := r.db.GetContext(ctx, &privilege, `
		SELECT id, username, status, balance
		FROM privilege
		WHERE username = $1
	`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Privilege{}, entity.ErrNotFound
	}
	return privilege, err
}

func (r *PostgresRepository) GetHistory(ctx context.Context, username string) ([]entity.PrivilegeHistory, error) {
	privilege, err := r.GetPrivilege(ctx, username)
	if err != nil {
		return nil, err
	}

	var history []entity.PrivilegeHistory
	err = r.db.SelectContext(ctx, &history, `
		SELECT id, privilege_id, ticket_uid, datetime, balance_diff, operation_type
		FROM privilege_history
		WHERE privilege_id = $1
		ORDER BY id
	`, privilege.ID)
	return history, err
}

func (r *PostgresRepository) GetHistoryByTicket(ctx context.Context, ticketUID uuid.UUID) ([]entity.PrivilegeHistory, error) {
	var history []entity.PrivilegeHistory
	err := r.db.SelectContext(ctx, &history, `
		SELECT id, privilege_id, ticket_uid, datetime, balance_diff, operation_type
		FROM privilege_history
		WHERE ticket_uid = $1
		ORDER BY id
	`, ticketUID)
	return history, err
}

// AddHistory appends a ledger entry and applies it to the balance. The
// balance is clamped at zero.
func (r *PostgresRepository) AddHistory(ctx context.Context, post entity.PrivilegeHistoryPost) error {
	privilege, err := r.GetPrivilege(ctx, post.Username)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO privilege_history (privilege_id, ticket_uid, datetime, balance_diff, operation_type)
		VALUES ($1, $2, $3, $4, $5)
	`, privilege.ID, post.TicketUID, time.Now().UTC(), post.BalanceDiff, post.OperationType)
	if err != nil {
		return fmt.Errorf("could not insert history entry: %w", err)
	}

	diff := post.BalanceDiff
	if post.OperationType == entity.OperationDebitTheAccount {
		diff = -diff
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE privilege
		SET balance = GREATEST(balance + $1, 0)
		WHERE id = $2
	`, diff, privilege.ID)
	if err != nil {
		return fmt.Errorf("could not update balance: %w", err)
	}

	return tx.Commit()
}
