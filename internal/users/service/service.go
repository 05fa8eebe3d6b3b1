// Package service manages staff accounts from the admin screen.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"backoffice/internal/audit"
	"backoffice/internal/users/models"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/platform/sentinel"
	"backoffice/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store

type Store interface {
	List(ctx context.Context) ([]*models.UserAccount, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.UserAccount, error)
	Update(ctx context.Context, u *models.UserAccount) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, e audit.Event) error
}

type Service struct {
	store  Store
	logger *slog.Logger
	audit  AuditPublisher
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) {
		s.audit = p
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// List returns all accounts, oldest first.
func (s *Service) List(ctx context.Context) ([]*models.UserAccount, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list users")
	}
	return users, nil
}

// Update applies change to the account id on behalf of the current actor.
// The self-modification rules are checked before anything is written.
func (s *Service) Update(ctx context.Context, id uuid.UUID, change models.Change) (*models.UserAccount, error) {
	change.Normalize()
	if err := change.Validate(); err != nil {
		return nil, err
	}

	target, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}

	actor := requestcontext.Actor(ctx)
	if err := models.CanModify(actor.UserID, target, change); err != nil {
		s.logger.WarnContext(ctx, "user change rejected",
			"request_id", requestcontext.RequestID(ctx),
			"actor_id", actor.UserID.String(),
			"user_id", id.String(),
			"error", err,
		)
		return nil, err
	}

	change.Apply(target)
	if err := s.store.Update(ctx, target); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update user")
	}

	if s.audit != nil {
		err := s.audit.Emit(ctx, audit.Event{
			Action:  audit.ActionUserUpdated,
			Subject: id.String(),
			Details: map[string]string{
				"role":      string(target.Role),
				"is_active": strconv.FormatBool(target.Active),
			},
		})
		if err != nil {
			s.logger.WarnContext(ctx, "failed to emit audit event", "error", err)
		}
	}
	return target, nil
}
