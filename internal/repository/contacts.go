package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/contact-finder/internal/entity"
)

// ErrContactNotFound is returned when no contact matches the lookup email.
var ErrContactNotFound = errors.New("contact not found")

// pgxPool is the subset of pgxpool.Pool the repositories rely on.
type pgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ pgxPool = (*pgxpool.Pool)(nil)

// ContactsRepository describes persistence operations for contact records.
type ContactsRepository interface {
	GetByEmail(ctx context.Context, email string) (*entity.Contact, error)
	Upsert(ctx context.Context, contact *entity.Contact) (*entity.Contact, error)
}

// PGXContactsRepository implements ContactsRepository using pgx.
type PGXContactsRepository struct {
	pool pgxPool
}

// NewPGXContactsRepository wires a pgx backed contacts repository.
func NewPGXContactsRepository(pool *pgxpool.Pool) *PGXContactsRepository {
	return &PGXContactsRepository{pool: pool}
}

const contactColumns = `
        id,
        email,
        full_name,
        first_name,
        last_name,
        company,
        position,
        location,
        github_url,
        linkedin_url,
        twitter_url,
        avatar_url,
        confidence_score,
        created_at,
        updated_at`

// GetByEmail fetches a contact by its canonical email if present.
func (r *PGXContactsRepository) GetByEmail(ctx context.Context, email string) (*entity.Contact, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+contactColumns+` FROM contacts WHERE email = $1`, email)
	contact, err := scanContact(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("query contact by email: %w", err)
	}
	return contact, nil
}

const upsertContactSQL = `
        INSERT INTO contacts (
            email,
            full_name,
            first_name,
            last_name,
            company,
            position,
            location,
            github_url,
            linkedin_url,
            twitter_url,
            avatar_url,
            confidence_score,
            updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
        ON CONFLICT (email) DO UPDATE SET
            full_name = EXCLUDED.full_name,
            first_name = EXCLUDED.first_name,
            last_name = EXCLUDED.last_name,
            company = EXCLUDED.company,
            position = EXCLUDED.position,
            location = EXCLUDED.location,
            github_url = EXCLUDED.github_url,
            linkedin_url = EXCLUDED.linkedin_url,
            twitter_url = EXCLUDED.twitter_url,
            avatar_url = EXCLUDED.avatar_url,
            confidence_score = EXCLUDED.confidence_score,
            updated_at = NOW()
        RETURNING` + contactColumns + `;
    `

// Upsert inserts or fully updates a contact keyed by the unique email column.
// The database's conflict resolution keeps concurrent writes atomic per
// email; no application-level locking is involved.
func (r *PGXContactsRepository) Upsert(ctx context.Context, contact *entity.Contact) (*entity.Contact, error) {
	if contact == nil {
		return nil, fmt.Errorf("contact payload is nil")
	}
	if contact.Email == "" {
		return nil, fmt.Errorf("contact email must not be empty")
	}

	row := r.pool.QueryRow(ctx, upsertContactSQL,
		contact.Email,
		stringOrNil(contact.FullName),
		stringOrNil(contact.FirstName),
		stringOrNil(contact.LastName),
		stringOrNil(contact.Company),
		stringOrNil(contact.Position),
		stringOrNil(contact.Location),
		stringOrNil(contact.Social.GitHub),
		stringOrNil(contact.Social.LinkedIn),
		stringOrNil(contact.Social.Twitter),
		stringOrNil(contact.AvatarURL),
		contact.ConfidenceScore,
	)

	stored, err := scanContact(row)
	if err != nil {
		return nil, fmt.Errorf("upsert contact: %w", err)
	}
	return stored, nil
}

func scanContact(row pgx.Row) (*entity.Contact, error) {
	var (
		c          entity.Contact
		fullName   sql.NullString
		firstName  sql.NullString
		lastName   sql.NullString
		company    sql.NullString
		position   sql.NullString
		location   sql.NullString
		github     sql.NullString
		linkedin   sql.NullString
		twitter    sql.NullString
		avatar     sql.NullString
		confidence sql.NullInt64
	)

	err := row.Scan(
		&c.ID,
		&c.Email,
		&fullName,
		&firstName,
		&lastName,
		&company,
		&position,
		&location,
		&github,
		&linkedin,
		&twitter,
		&avatar,
		&confidence,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.FullName = fullName.String
	c.FirstName = firstName.String
	c.LastName = lastName.String
	c.Company = company.String
	c.Position = position.String
	c.Location = location.String
	c.Social.GitHub = github.String
	c.Social.LinkedIn = linkedin.String
	c.Social.Twitter = twitter.String
	c.AvatarURL = avatar.String
	c.ConfidenceScore = int(confidence.Int64)

	return &c, nil
}

func stringOrNil(value string) any {
	if value == "" {
		return nil
	}
	return value
}
