package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"backoffice/internal/users/models"
	"backoffice/pkg/platform/sentinel"
)

const userColumns = `id, name, email, role::text, is_active, password_hash, created_at`

// Postgres persists accounts in the users table.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (s *Postgres) List(ctx context.Context) ([]*models.UserAccount, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []*models.UserAccount
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*models.UserAccount, error) {
	return s.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (s *Postgres) FindByEmail(ctx context.Context, email string) (*models.UserAccount, error) {
	return s.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
}

func (s *Postgres) findOne(ctx context.Context, query string, arg any) (*models.UserAccount, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (s *Postgres) Update(ctx context.Context, u *models.UserAccount) error {
	tag, err := s.pool.Exec(ctx, `UPDATE users
		SET name = $2, role = $3::user_role, is_active = $4, password_hash = $5
		WHERE id = $1`,
		u.ID, u.Name, string(u.Role), u.Active, u.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update user %s: %w", u.ID, sentinel.ErrNotFound)
	}
	return nil
}

func (s *Postgres) Upsert(ctx context.Context, u *models.UserAccount) (*models.UserAccount, error) {
	row := s.pool.QueryRow(ctx, `INSERT INTO users (id, name, email, role, is_active, password_hash, created_at)
		VALUES ($1, $2, $3, $4::user_role, $5, $6, $7)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name, role = EXCLUDED.role, is_active = EXCLUDED.is_active,
			password_hash = EXCLUDED.password_hash
		RETURNING `+userColumns,
		u.ID, u.Name, u.Email, string(u.Role), u.Active, u.PasswordHash, u.CreatedAt,
	)
	stored, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return stored, nil
}

func scanUser(row pgx.Row) (*models.UserAccount, error) {
	var u models.UserAccount
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &role, &u.Active, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = models.Role(role)
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}
