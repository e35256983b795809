package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// FindMatch picks the longest pattern contained in rawItem, newest first on ties.
func (s *Store) FindMatch(ctx context.Context, rawItem string) (string, error) {
	query := `
		SELECT preferred_item
		FROM item_mappings
		WHERE $1 ILIKE '%' || raw_pattern || '%'
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var preferred string

	err := s.db.QueryRowContext(ctx, query, rawItem).Scan(&preferred)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("finding match: %w", err)
	}

	return preferred, nil
}

func (s *Store) CreateMapping(ctx context.Context, rawPattern, preferredItem string) error {
	query := `
		INSERT INTO item_mappings (raw_pattern, preferred_item, created_at)
		VALUES ($1, $2, NOW())
	`

	_, err := s.db.ExecContext(ctx, query, rawPattern, preferredItem)
	if err != nil {
		return fmt.Errorf("creating mapping: %w", err)
	}

	return nil
}
