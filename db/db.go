package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func Open(postgresURL string) (*sqlx.DB, error) {
	conn, err := sqlx.Open("postgres", postgresURL)
	if err != nil {
		return nil, fmt.Errorf("could not open postgres connection: %w", err)
	}
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping postgres: %w", err)
	}
	return conn, nil
}
