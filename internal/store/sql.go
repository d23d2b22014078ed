package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jenbot/jenbot/internal/zodiac"
)

type userRow struct {
	UserID string `db:"user_id"`
	Sign   string `db:"sign"`
}

// sqlxStore implements Store on a migrated SQL database.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewSQLStore wraps a connected, migrated database. Close closes db.
func NewSQLStore(db *sqlx.DB, logger *slog.Logger) Store {
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store", "driver", db.DriverName()),
	}
}

func (s *sqlxStore) Get(ctx context.Context, userID string) (zodiac.Sign, bool, error) {
	var sign string
	err := s.db.GetContext(ctx, &sign, s.db.Rebind(`SELECT sign FROM horoscope_users WHERE user_id = ?`), userID)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting sign", "user_id", userID, "error", err)
		return "", false, fmt.Errorf("failed to get sign for user %s: %w", userID, err)
	}
	return zodiac.Sign(sign), true, nil
}

func (s *sqlxStore) All(ctx context.Context) (map[string]zodiac.Sign, error) {
	var rows []userRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT user_id, sign FROM horoscope_users`); err != nil {
		s.logger.ErrorContext(ctx, "Error listing signs", "error", err)
		return nil, fmt.Errorf("failed to list signs: %w", err)
	}

	users := make(map[string]zodiac.Sign, len(rows))
	for _, r := range rows {
		users[r.UserID] = zodiac.Sign(r.Sign)
	}
	return users, nil
}

func (s *sqlxStore) Put(ctx context.Context, userID string, sign zodiac.Sign) (bool, error) {
	if err := validate(userID, sign); err != nil {
		return false, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				s.logger.WarnContext(ctx, "Error rolling back transaction", "error", rollbackErr)
			}
		}
	}()

	var count int
	if err := tx.GetContext(ctx, &count, tx.Rebind(`SELECT COUNT(1) FROM horoscope_users WHERE user_id = ?`), userID); err != nil {
		return false, fmt.Errorf("failed to check registration for user %s: %w", userID, err)
	}

	now := time.Now().UTC()
	query := tx.Rebind(`
        INSERT INTO horoscope_users (user_id, sign, created_at, updated_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT (user_id) DO UPDATE SET sign = excluded.sign, updated_at = excluded.updated_at
    `)
	if _, err := tx.ExecContext(ctx, query, userID, string(sign), now, now); err != nil {
		s.logger.ErrorContext(ctx, "Error saving sign", "user_id", userID, "error", err)
		return false, fmt.Errorf("failed to save sign for user %s: %w", userID, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	tx = nil

	return count > 0, nil
}

func (s *sqlxStore) Delete(ctx context.Context, userID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM horoscope_users WHERE user_id = ?`), userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error deleting sign", "user_id", userID, "error", err)
		return false, fmt.Errorf("failed to delete sign for user %s: %w", userID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

func (s *sqlxStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
