// Package postgres stores the state in PostgreSQL
package postgres

import (
	"context"

	"github.com/thisisprabha/networth/internal/adapter/repository/sqlstore"
)

// Open connects, migrates the schema and returns a ready store
func Open(ctx context.Context, connectionString string) (*sqlstore.Store, error) {
	db, err := NewDB(ctx, connectionString)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return sqlstore.New(db.DB, sqlstore.Postgres), nil
}
