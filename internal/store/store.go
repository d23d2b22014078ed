// Package store persists each user's zodiac sign preference.
//
// The default backend is a single JSON object file mapping user IDs to sign
// labels. SQL backends (SQLite, PostgreSQL) are available for deployments that
// prefer a database.
package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jenbot/jenbot/internal/config"
	"github.com/jenbot/jenbot/internal/zodiac"
)

// Store defines preference storage operations. A key is present only after the
// user has completed a sign selection.
type Store interface {
	// Get returns the sign for userID and whether the user is registered.
	Get(ctx context.Context, userID string) (zodiac.Sign, bool, error)

	// All returns a snapshot of every registration. Callers own the map.
	All(ctx context.Context) (map[string]zodiac.Sign, error)

	// Put inserts or replaces the sign for userID, reporting whether a
	// registration already existed.
	Put(ctx context.Context, userID string, sign zodiac.Sign) (existed bool, err error)

	// Delete removes userID, reporting whether a registration existed.
	Delete(ctx context.Context, userID string) (existed bool, err error)

	// Close releases underlying resources.
	Close() error
}

// New opens the backend selected by cfg.Driver.
func New(cfg config.StoreConfig, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	switch cfg.Driver {
	case "", DriverJSON:
		return NewJSONStore(cfg.Path, logger)
	case DriverSQLite:
		db, err := NewDB(DriverSQLite, cfg.Path)
		if err != nil {
			return nil, err
		}
		return NewSQLStore(db, logger), nil
	case DriverPostgres:
		db, err := NewDB(DriverPostgres, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return NewSQLStore(db, logger), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

func validate(userID string, sign zodiac.Sign) error {
	if userID == "" {
		return fmt.Errorf("user_id cannot be empty")
	}
	if !sign.Valid() {
		return fmt.Errorf("invalid zodiac sign %q", sign)
	}
	return nil
}
