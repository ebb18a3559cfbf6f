package database

import (
	"context"
	"database/sql"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/masteryhub/mastery-hub-be/internal/models"
)

// New opens a bun database over SQLite.
func New(dataSourceName string) (*bun.DB, error) {
	dsn := dataSourceName
	if !strings.Contains(dsn, "?") && !strings.Contains(dsn, ":memory:") {
		dsn += "?_pragma=foreign_keys(1)"
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	// In-memory databases vanish when their last connection closes, so pin
	// the pool to a single connection.
	if strings.Contains(dataSourceName, ":memory:") {
		sqldb.SetMaxOpenConns(1)
	}

	if err := sqldb.Ping(); err != nil {
		return nil, err
	}

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// Migrate creates the schema for all registered models.
func Migrate(ctx context.Context, db *bun.DB) error {
	tables := []any{
		(*models.User)(nil),
		(*models.ActivityLog)(nil),
	}
	for _, table := range tables {
		if _, err := db.NewCreateTable().Model(table).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
