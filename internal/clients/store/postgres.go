package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"backoffice/internal/clients/models"
	"backoffice/internal/integrations"
	"backoffice/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

const clientColumns = `id, given_name, family_name, national_id, email, phone, address, region, locality,
	accounting_id, esign_submission_id, subscriber_id, created_at, updated_at`

// externalColumns maps a system onto its column. Values are constants, never input.
var externalColumns = map[integrations.System]string{
	integrations.SystemAccounting: "accounting_id",
	integrations.SystemESign:      "esign_submission_id",
	integrations.SystemSubscriber: "subscriber_id",
}

// Postgres persists clients in the clients table.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (s *Postgres) Create(ctx context.Context, c *models.ClientRecord) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO clients (`+clientColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		c.ID, c.GivenName, c.FamilyName, c.NationalID, c.Email, c.Phone, c.Address, c.Region, c.Locality,
		c.AccountingID, c.ESignSubmissionID, c.SubscriberID, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("create client %s: %w", c.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*models.ClientRecord, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return c, nil
}

func (s *Postgres) List(ctx context.Context) ([]*models.ClientRecord, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var out []*models.ClientRecord
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return out, nil
}

func (s *Postgres) Update(ctx context.Context, c *models.ClientRecord) error {
	tag, err := s.pool.Exec(ctx, `UPDATE clients SET
			given_name = $2, family_name = $3, national_id = $4, email = $5, phone = $6,
			address = $7, region = $8, locality = $9, updated_at = $10
		WHERE id = $1`,
		c.ID, c.GivenName, c.FamilyName, c.NationalID, c.Email, c.Phone, c.Address, c.Region, c.Locality, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// AttachExternalID is a single conditional UPDATE: COALESCE keeps an id that
// is already set, and row locking serializes concurrent attaches.
func (s *Postgres) AttachExternalID(ctx context.Context, id uuid.UUID, system integrations.System, externalID string, at time.Time) error {
	col, ok := externalColumns[system]
	if !ok {
		return fmt.Errorf("attach external id: unknown system %q", system)
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE clients SET `+col+` = COALESCE(`+col+`, $2), updated_at = $3 WHERE id = $1`,
		id, externalID, at,
	)
	if err != nil {
		return fmt.Errorf("attach external id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func scanClient(row pgx.Row) (*models.ClientRecord, error) {
	var c models.ClientRecord
	err := row.Scan(
		&c.ID, &c.GivenName, &c.FamilyName, &c.NationalID, &c.Email, &c.Phone, &c.Address, &c.Region, &c.Locality,
		&c.AccountingID, &c.ESignSubmissionID, &c.SubscriberID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}
