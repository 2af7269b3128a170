package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qmc/portal/internal/pkg/logger"
)

const documentsTable = "documents"

// PostgresStore keeps documents as jsonb rows of the documents table.
type PostgresStore struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (s *PostgresStore) Get(ctx context.Context, key string) (json.RawMessage, error) {
	sql, args, err := s.sb.Select("value").
		From(documentsTable).
		Where(squirrel.Eq{"key": key}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get document query: %w", err)
	}

	var value []byte
	if err := s.db.QueryRow(ctx, sql, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("key", key).Msg("Error reading document")
		return nil, fmt.Errorf("error reading document %s: %w", key, err)
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value json.RawMessage) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	sql, args, err := s.sb.Insert(documentsTable).
		Columns("key", "value", "updated_at").
		Values(key, string(value), squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set document query: %w", err)
	}

	if _, err := s.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Error writing document")
		return fmt.Errorf("error writing document %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, key string) error {
	sql, args, err := s.sb.Delete(documentsTable).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build remove document query: %w", err)
	}

	if _, err := s.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Error removing document")
		return fmt.Errorf("error removing document %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Keys(ctx context.Context) ([]string, error) {
	sql, args, err := s.sb.Select("key").
		From(documentsTable).
		OrderBy("key").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list keys query: %w", err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing document keys")
		return nil, fmt.Errorf("error listing document keys: %w", err)
	}

	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("error scanning document keys: %w", err)
	}
	return keys, nil
}
