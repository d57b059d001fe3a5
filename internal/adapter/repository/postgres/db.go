package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

const (
	connectTimeout  = 5 * time.Second
	maxOpenConns    = 4
	connMaxIdleTime = 5 * time.Minute
)

// DB wraps the database connection pool
type DB struct {
	*sql.DB
}

// NewDB opens a small pool and checks the server answers within connectTimeout
// connectionString is a lib/pq DSN or URL, e.g. "host=localhost port=5432 user=postgres dbname=networth sslmode=disable"
func NewDB(ctx context.Context, connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	// a single user's state; Save runs in one transaction
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxOpenConns)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}
