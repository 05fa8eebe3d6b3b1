//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"backoffice/internal/users/models"
	"backoffice/internal/users/store"
	"backoffice/pkg/platform/sentinel"
	"backoffice/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
	ctx      context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.Pool)
	s.ctx = context.Background()
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(s.ctx, "users"))
}

func newAccount(email string, role models.Role, at time.Time) *models.UserAccount {
	return &models.UserAccount{
		ID:           uuid.New(),
		Name:         "Staff",
		Email:        email,
		Role:         role,
		Active:       true,
		PasswordHash: "hash",
		CreatedAt:    at,
	}
}

func (s *PostgresStoreSuite) TestUpsertKeepsIdentity() {
	first, err := s.store.Upsert(s.ctx, newAccount("admin@kivu.com.co", models.RoleAdmin, time.Now().UTC()))
	s.Require().NoError(err)

	again := newAccount("admin@kivu.com.co", models.RoleAdmin, time.Now().UTC())
	again.PasswordHash = "rotated"
	second, err := s.store.Upsert(s.ctx, again)
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
	s.Equal("rotated", second.PasswordHash)

	byEmail, err := s.store.FindByEmail(s.ctx, "admin@kivu.com.co")
	s.Require().NoError(err)
	s.Equal(first.ID, byEmail.ID)
}

func (s *PostgresStoreSuite) TestUpdateAndList() {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older, err := s.store.Upsert(s.ctx, newAccount("a@kivu.com.co", models.RoleOperator, base))
	s.Require().NoError(err)
	_, err = s.store.Upsert(s.ctx, newAccount("b@kivu.com.co", models.RoleOperator, base.Add(time.Minute)))
	s.Require().NoError(err)

	older.Role = models.RoleAdmin
	older.Active = false
	s.Require().NoError(s.store.Update(s.ctx, older))

	got, err := s.store.FindByID(s.ctx, older.ID)
	s.Require().NoError(err)
	s.Equal(models.RoleAdmin, got.Role)
	s.False(got.Active)

	list, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(older.ID, list[0].ID)
}

func (s *PostgresStoreSuite) TestMissingUser() {
	_, err := s.store.FindByID(s.ctx, uuid.New())
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.FindByEmail(s.ctx, "nobody@kivu.com.co")
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.store.Update(s.ctx, newAccount("x@kivu.com.co", models.RoleOperator, time.Now())), sentinel.ErrNotFound)
}
