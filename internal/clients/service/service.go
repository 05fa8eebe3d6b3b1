// Package service implements client onboarding and its companion operations.
//
// Onboarding moves through VALIDATING, then INVALID, DUPLICATE_BLOCKED or
// UNVERIFIED (all terminal, nothing written) or LOCAL_PERSISTED.
// Once the record exists locally the attempt always reaches COMPLETED:
// PROPAGATING tries each external system in turn and records its outcome
// without letting one failure affect the others.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"backoffice/internal/audit"
	"backoffice/internal/clients/metrics"
	"backoffice/internal/clients/models"
	"backoffice/internal/duplicates"
	"backoffice/internal/integrations"
	"backoffice/internal/integrations/accounting"
	"backoffice/internal/integrations/esign"
	"backoffice/internal/integrations/subscriber"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,DuplicateChecker,AccountingClient,ESignClient,SubscriberClient,AuditPublisher

type Store interface {
	Create(ctx context.Context, client *models.ClientRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ClientRecord, error)
	List(ctx context.Context) ([]*models.ClientRecord, error)
	Update(ctx context.Context, client *models.ClientRecord) error
	AttachExternalID(ctx context.Context, id uuid.UUID, system integrations.System, externalID string, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DuplicateChecker is the duplicate lookup, possibly answered from cache.
type DuplicateChecker interface {
	CheckAccounting(ctx context.Context, q duplicates.Query) (*duplicates.AccountingResult, error)
	CheckESign(ctx context.Context, email string) (*duplicates.ESignResult, error)
	Forget(ctx context.Context, q duplicates.Query)
}

type AccountingClient interface {
	Configured() bool
	Create(ctx context.Context, contact accounting.NewContact) (string, error)
	Delete(ctx context.Context, id string) error
}

type ESignClient interface {
	Configured() bool
	Create(ctx context.Context, sub esign.NewSubmission) (string, error)
	FindByExternalID(ctx context.Context, externalID string) (string, error)
	Archive(ctx context.Context, id string) error
}

type SubscriberClient interface {
	Configured() bool
	Create(ctx context.Context, sub subscriber.NewSubscriber) (string, error)
	Delete(ctx context.Context, id string) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, e audit.Event) error
}

// Service owns the client lifecycle.
type Service struct {
	store         Store
	duplicates    DuplicateChecker
	accounting    AccountingClient
	esign         ESignClient
	subscriber    SubscriberClient
	logger        *slog.Logger
	metrics       *metrics.Metrics
	audit         AuditPublisher
	fallbackEmail string
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) {
		s.audit = p
	}
}

// WithFallbackOperatorEmail sets the second e-signature recipient used when
// the request has no authenticated operator.
func WithFallbackOperatorEmail(email string) Option {
	return func(s *Service) {
		s.fallbackEmail = email
	}
}

// Integrations bundles the three external clients.
type Integrations struct {
	Accounting AccountingClient
	ESign      ESignClient
	Subscriber SubscriberClient
}

func New(store Store, dup DuplicateChecker, ext Integrations, opts ...Option) *Service {
	s := &Service{
		store:      store,
		duplicates: dup,
		accounting: ext.Accounting,
		esign:      ext.ESign,
		subscriber: ext.Subscriber,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

func (s *Service) emitAudit(ctx context.Context, e audit.Event) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Emit(ctx, e); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "action", string(e.Action), "error", err)
	}
}
