package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/contact-finder/internal/entity"
)

// LookupHistoryRepository records and lists enrichment lookups.
type LookupHistoryRepository interface {
	Record(ctx context.Context, emailQueried string, contactID uuid.UUID) error
	Recent(ctx context.Context, limit int) ([]entity.Lookup, error)
}

// PGXLookupHistoryRepository implements LookupHistoryRepository using pgx.
type PGXLookupHistoryRepository struct {
	pool pgxPool
}

// NewPGXLookupHistoryRepository wires a pgx backed lookup history repository.
func NewPGXLookupHistoryRepository(pool *pgxpool.Pool) *PGXLookupHistoryRepository {
	return &PGXLookupHistoryRepository{pool: pool}
}

// Record appends a history row for a completed lookup.
func (r *PGXLookupHistoryRepository) Record(ctx context.Context, emailQueried string, contactID uuid.UUID) error {
	if emailQueried == "" {
		return fmt.Errorf("email queried must not be empty")
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO lookup_history (email_queried, contact_id) VALUES ($1, $2)`,
		emailQueried, contactID,
	)
	if err != nil {
		return fmt.Errorf("record lookup: %w", err)
	}
	return nil
}

// Recent returns the latest history rows, newest first.
func (r *PGXLookupHistoryRepository) Recent(ctx context.Context, limit int) ([]entity.Lookup, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, email_queried, contact_id, search_timestamp FROM lookup_history ORDER BY search_timestamp DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list lookups: %w", err)
	}
	defer rows.Close()

	var lookups []entity.Lookup
	for rows.Next() {
		var (
			l         entity.Lookup
			contactID *uuid.UUID
		)
		if err := rows.Scan(&l.ID, &l.EmailQueried, &contactID, &l.SearchTimestamp); err != nil {
			return nil, fmt.Errorf("scan lookup row: %w", err)
		}
		l.ContactID = contactID
		lookups = append(lookups, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lookups: %w", err)
	}
	return lookups, nil
}
