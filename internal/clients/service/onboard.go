package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"backoffice/internal/audit"
	"backoffice/internal/clients/models"
	"backoffice/internal/duplicates"
	"backoffice/internal/integrations"
	"backoffice/internal/integrations/accounting"
	"backoffice/internal/integrations/esign"
	"backoffice/internal/integrations/subscriber"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/requestcontext"
)

var tracer = otel.Tracer("backoffice/clients")

// State is a step of one onboarding attempt.
type State string

const (
	StateValidating       State = "VALIDATING"
	StateInvalid          State = "INVALID"
	StateDuplicateBlocked State = "DUPLICATE_BLOCKED"
	// StateUnverified means the duplicate gate could not reach accounting.
	StateUnverified     State = "UNVERIFIED"
	StatePersistFailed  State = "PERSIST_FAILED"
	StateLocalPersisted State = "LOCAL_PERSISTED"
	StatePropagating    State = "PROPAGATING"
	StateCompleted      State = "COMPLETED"
)

// Skip reasons reported with a skipped outcome.
const (
	reasonDisabled      = "disabled"
	reasonNotConfigured = "not_configured"
)

// Warning codes returned with a successful onboarding.
const (
	WarningESignExisting    = "esign_existing_submissions"
	WarningESignUnavailable = "esign_check_unavailable"
)

// Onboard validates req, blocks on an accounting duplicate, persists the
// record and then propagates it to every external system. After the local
// write it never fails: each system's result is in the returned report.
func (s *Service) Onboard(ctx context.Context, req models.CreateClientRequest) (*models.OnboardResult, error) {
	start := time.Now()
	defer s.metrics.ObserveOnboard(start)
	ctx, span := tracer.Start(ctx, "clients.onboard")
	defer span.End()

	requestID := requestcontext.RequestID(ctx)
	s.logger.DebugContext(ctx, "onboarding", "request_id", requestID, "state", string(StateValidating))

	req.Normalize()
	if err := req.Validate(); err != nil {
		s.finish(ctx, StateInvalid)
		return nil, err
	}

	warnings, err := s.duplicateGate(ctx, req)
	if err != nil {
		state := StateDuplicateBlocked
		if dErrors.HasCode(err, dErrors.CodeUnavailable) {
			state = StateUnverified
		}
		s.finish(ctx, state)
		return nil, err
	}

	now := requestcontext.Now(ctx).UTC()
	record := &models.ClientRecord{
		ID:         uuid.New(),
		GivenName:  req.GivenName,
		FamilyName: req.FamilyName,
		NationalID: req.NationalID,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		Region:     req.Region,
		Locality:   req.Locality,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Create(ctx, record); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist client",
			"request_id", requestID,
			"error", err,
		)
		s.finish(ctx, StatePersistFailed)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist client")
	}
	s.logger.InfoContext(ctx, "client persisted",
		"request_id", requestID,
		"client_id", record.ID.String(),
		"state", string(StateLocalPersisted),
	)

	// The record is committed; propagation runs to completion even if the
	// caller goes away.
	propagateCtx := context.WithoutCancel(ctx)
	report := s.propagate(propagateCtx, record, req.Integrations)

	s.duplicates.Forget(propagateCtx, duplicates.Query{NationalID: record.NationalID, Email: record.Email})

	if fresh, err := s.store.FindByID(propagateCtx, record.ID); err == nil {
		record = fresh
	}

	details := map[string]string{"cedula": record.NationalID}
	for _, o := range report {
		details["sync_"+string(o.System)] = string(o.Status)
		span.SetAttributes(attribute.String("sync."+string(o.System), string(o.Status)))
	}
	s.emitAudit(propagateCtx, audit.Event{
		Action:  audit.ActionClientCreated,
		Subject: record.ID.String(),
		Details: details,
	})
	s.finish(ctx, StateCompleted)

	return &models.OnboardResult{Client: record, Sync: report, Warnings: warnings}, nil
}

func (s *Service) finish(ctx context.Context, state State) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("onboarding.state", string(state)))
	s.metrics.IncrementOnboarding(string(state))
	s.logger.InfoContext(ctx, "onboarding finished",
		"request_id", requestcontext.RequestID(ctx),
		"state", string(state),
	)
}

// duplicateGate blocks on any accounting match and turns e-signature matches
// into warnings. An accounting lookup that fails blocks too: an unknown
// answer is never treated as clear. An unconfigured accounting system has no
// records to collide with and does not block.
func (s *Service) duplicateGate(ctx context.Context, req models.CreateClientRequest) ([]models.Warning, error) {
	q := duplicates.Query{NationalID: req.NationalID, Email: req.Email}

	res, err := s.duplicates.CheckAccounting(ctx, q)
	switch {
	case errors.Is(err, integrations.ErrNotConfigured):
		s.logger.InfoContext(ctx, "accounting not configured; duplicate gate skipped",
			"request_id", requestcontext.RequestID(ctx),
		)
	case err != nil:
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable,
			"could not verify duplicates in accounting; try again later")
	case res.ExistsByNationalID:
		return nil, dErrors.WithFields(dErrors.CodeConflict, "a client with this national id already exists",
			map[string]string{"cedula": "Ya existe un cliente con esta cédula en el sistema contable."})
	case res.ExistsByEmail:
		return nil, dErrors.WithFields(dErrors.CodeConflict, "a client with this email already exists",
			map[string]string{"correo": "Ya existe un cliente con este correo en el sistema contable."})
	}

	if !enabled(req.Integrations.ESign) {
		return nil, nil
	}
	es, err := s.duplicates.CheckESign(ctx, req.Email)
	switch {
	case errors.Is(err, integrations.ErrNotConfigured):
		return nil, nil
	case err != nil:
		return []models.Warning{{
			Code:    WarningESignUnavailable,
			Message: "No se pudo verificar si el correo ya tiene documentos en firma electrónica.",
		}}, nil
	case es.Exists:
		return []models.Warning{{
			Code:    WarningESignExisting,
			Message: "El correo ya tiene documentos enviados a firma electrónica.",
		}}, nil
	}
	return nil, nil
}

// propagate calls e-signature, accounting and subscriber in that order. Every
// call is independent; ids are attached to the record as they arrive.
func (s *Service) propagate(ctx context.Context, record *models.ClientRecord, toggles models.Toggles) models.SyncReport {
	s.logger.DebugContext(ctx, "onboarding", "client_id", record.ID.String(), "state", string(StatePropagating))

	steps := []struct {
		system     integrations.System
		enabled    bool
		configured bool
		create     func(context.Context) (string, error)
	}{
		{integrations.SystemESign, enabled(toggles.ESign), s.esign.Configured(), func(ctx context.Context) (string, error) {
			return s.esign.Create(ctx, esign.NewSubmissionFor(signerFor(record), s.operatorEmail(ctx)))
		}},
		{integrations.SystemAccounting, enabled(toggles.Accounting), s.accounting.Configured(), func(ctx context.Context) (string, error) {
			return s.accounting.Create(ctx, accounting.NewContactFor(personFor(record)))
		}},
		{integrations.SystemSubscriber, enabled(toggles.Subscriber), s.subscriber.Configured(), func(ctx context.Context) (string, error) {
			return s.subscriber.Create(ctx, subscriber.NewSubscriberFor(
				record.GivenName, record.FamilyName, record.NationalID, record.Email, record.Phone, record.Address))
		}},
	}

	report := make(models.SyncReport, 0, len(steps))
	for _, step := range steps {
		outcome := models.SyncOutcome{System: step.system}
		switch {
		case !step.enabled:
			outcome.Status, outcome.Reason = integrations.StatusSkipped, reasonDisabled
		case !step.configured:
			outcome.Status, outcome.Reason = integrations.StatusSkipped, reasonNotConfigured
		default:
			outcome = s.propagateOne(ctx, record, step.system, step.create)
		}
		s.metrics.IncrementPropagation(string(outcome.System), string(outcome.Status))
		report = append(report, outcome)
	}
	return report
}

func (s *Service) propagateOne(ctx context.Context, record *models.ClientRecord, system integrations.System,
	create func(context.Context) (string, error)) models.SyncOutcome {
	outcome := models.SyncOutcome{System: system}

	externalID, err := create(ctx)
	if err != nil {
		if errors.Is(err, integrations.ErrNotConfigured) {
			outcome.Status, outcome.Reason = integrations.StatusSkipped, reasonNotConfigured
			return outcome
		}
		outcome.Status = integrations.StatusFailed
		outcome.Reason = string(integrations.KindOf(err))
		outcome.Err = err
		s.logger.WarnContext(ctx, "propagation failed",
			"request_id", requestcontext.RequestID(ctx),
			"client_id", record.ID.String(),
			"system", string(system),
			"kind", outcome.Reason,
			"http_status", integrations.HTTPStatusOf(err),
			"body", integrations.BodyOf(err),
			"error", err,
		)
		return outcome
	}

	outcome.Status = integrations.StatusOK
	outcome.ExternalID = externalID
	if externalID != "" {
		if err := s.store.AttachExternalID(ctx, record.ID, system, externalID, requestcontext.Now(ctx).UTC()); err != nil {
			s.logger.ErrorContext(ctx, "failed to attach external id",
				"client_id", record.ID.String(),
				"system", string(system),
				"external_id", externalID,
				"error", err,
			)
		}
	}
	s.logger.InfoContext(ctx, "propagation succeeded",
		"request_id", requestcontext.RequestID(ctx),
		"client_id", record.ID.String(),
		"system", string(system),
		"external_id", externalID,
	)
	return outcome
}

func (s *Service) operatorEmail(ctx context.Context) string {
	if actor := requestcontext.Actor(ctx); actor.Email != "" {
		return actor.Email
	}
	return s.fallbackEmail
}

func enabled(toggle *bool) bool {
	return toggle == nil || *toggle
}

func signerFor(c *models.ClientRecord) esign.Signer {
	return esign.Signer{
		ClientID:   c.ID.String(),
		FullName:   c.FullName(),
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		Region:     c.Region,
		Locality:   c.Locality,
		NationalID: c.NationalID,
	}
}

func personFor(c *models.ClientRecord) accounting.Person {
	return accounting.Person{
		InternalID: c.ID.String(),
		GivenName:  c.GivenName,
		FamilyName: c.FamilyName,
		NationalID: c.NationalID,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		Region:     c.Region,
		Locality:   c.Locality,
	}
}
