package supabase

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
)

// Sentinel errors surfaced to handlers as business conflicts.
var (
	ErrDuplicatePendingPayment = errors.New("a pending payment already covers one of the selected projects")
	ErrPaymentResolved         = errors.New("payment has already been resolved")
	ErrInvalidTransition       = errors.New("status transition not allowed")
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

// NewDatabaseClientFromConn wraps an already-open connection. Tests use it
// to run the store against a mock driver.
func NewDatabaseClientFromConn(db *sql.DB) *DatabaseClient {
	return &DatabaseClient{db: db}
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}
