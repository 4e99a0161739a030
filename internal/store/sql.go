package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/i474232898/clima/internal/history"
)

const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"
)

// The schema is portable between SQLite and MySQL; both accept ? placeholders.
const createHistoryTable = `CREATE TABLE IF NOT EXISTS historial_ciudades (
	id         VARCHAR(36)  NOT NULL PRIMARY KEY,
	ciudad     VARCHAR(255) NULL,
	created_at TIMESTAMP    NOT NULL
)`

const insertHistory = `INSERT INTO historial_ciudades (id, ciudad, created_at) VALUES (?, ?, ?)`

// SQLStore keeps history records in a relational table through database/sql.
type SQLStore struct {
	db     *sql.DB
	driver string
}

var _ history.Store = (*SQLStore)(nil)

// OpenSQL connects with driver ("sqlite3" or "mysql") and dsn, verifies the
// connection and creates the history table if needed.
func OpenSQL(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	if driver != DriverSQLite && driver != DriverMySQL {
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// SQLite allows a single writer at a time.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	if _, err := db.ExecContext(ctx, createHistoryTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history table: %w", err)
	}

	return &SQLStore{db: db, driver: driver}, nil
}

// Save inserts rec with a fresh UUID. A nil Ciudad is stored as NULL.
func (s *SQLStore) Save(ctx context.Context, rec history.Record) (history.Record, error) {
	rec.ID = uuid.NewString()

	var ciudad sql.NullString
	if rec.Ciudad != nil {
		ciudad = sql.NullString{String: *rec.Ciudad, Valid: true}
	}

	if _, err := s.db.ExecContext(ctx, insertHistory, rec.ID, ciudad, rec.CreatedAt); err != nil {
		return history.Record{}, fmt.Errorf("insert history record: %w", err)
	}
	return rec, nil
}

// DB exposes the underlying handle.
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

func (s *SQLStore) Close(context.Context) error {
	return s.db.Close()
}
