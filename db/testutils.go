package db

import (
	"os"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

var (
	testDB    *sqlx.DB
	getDBOnce sync.Once
)

// GetDb returns a shared connection for repository tests, skipping the test
// when POSTGRES_URL is not set.
func GetDb(t *testing.T) *sqlx.DB {
	t.Helper()

	url := os.Getenv("POSTGRES_URL")
	if url == "" {
		t.Skip("POSTGRES_URL not set, skipping repository test")
	}

	getDBOnce.Do(func() {
		var err error
		testDB, err = sqlx.Open("postgres", url)
		require.NoError(t, err)
	})
	return testDB
}
