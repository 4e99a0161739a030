package store

import (
	"context"
	"fmt"

	"github.com/i474232898/clima/internal/history"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Options selects and configures a history backend.
type Options struct {
	Driver          string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	SQLDSN          string
}

// Open returns the history store named by opts.Driver.
func Open(ctx context.Context, opts Options) (history.Store, error) {
	switch opts.Driver {
	case DriverMongo:
		return OpenMongo(ctx, opts.MongoURI, opts.MongoDatabase, opts.MongoCollection)
	case DriverSQLite, DriverMySQL:
		return OpenSQL(ctx, opts.Driver, opts.SQLDSN)
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
