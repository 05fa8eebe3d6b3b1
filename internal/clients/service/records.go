package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"backoffice/internal/audit"
	"backoffice/internal/clients/models"
	"backoffice/internal/integrations"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/platform/sentinel"
	"backoffice/pkg/requestcontext"
)

// Get returns one client.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.ClientRecord, error) {
	c, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(ctx, err, "failed to load client")
	}
	return c, nil
}

// List returns all clients, newest first.
func (s *Service) List(ctx context.Context) ([]*models.ClientRecord, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, s.translate(ctx, err, "failed to list clients")
	}
	return list, nil
}

// Update edits a client's fields. Id, creation time and external ids are not
// editable, and nothing is pushed to the external systems.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req models.UpdateClientRequest) (*models.ClientRecord, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(ctx, err, "failed to load client")
	}

	current.GivenName = req.GivenName
	current.FamilyName = req.FamilyName
	current.NationalID = req.NationalID
	current.Email = req.Email
	current.Phone = req.Phone
	current.Address = req.Address
	current.Region = req.Region
	current.Locality = req.Locality
	current.UpdatedAt = requestcontext.Now(ctx).UTC()

	if err := s.store.Update(ctx, current); err != nil {
		return nil, s.translate(ctx, err, "failed to update client")
	}
	s.emitAudit(ctx, audit.Event{Action: audit.ActionClientUpdated, Subject: id.String()})
	return current, nil
}

// Delete archives the e-signature submission and deletes the accounting
// contact on a best-effort basis, then removes the local record. External
// failures are logged and reported but never stop the local removal.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (models.SyncReport, error) {
	record, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(ctx, err, "failed to load client")
	}

	report := models.SyncReport{
		s.archiveSubmission(ctx, record),
		s.deleteContact(ctx, record),
		s.removeSubscriber(ctx, record),
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return report, s.translate(ctx, err, "failed to delete client")
	}
	details := map[string]string{"cedula": record.NationalID}
	for _, o := range report {
		details["cleanup_"+string(o.System)] = string(o.Status)
	}
	s.emitAudit(ctx, audit.Event{Action: audit.ActionClientDeleted, Subject: id.String(), Details: details})
	return report, nil
}

// archiveSubmission uses the stored submission id, falling back to a lookup
// by the client id the submission was correlated with. A submission that
// cannot be found is already gone.
func (s *Service) archiveSubmission(ctx context.Context, record *models.ClientRecord) models.SyncOutcome {
	system := integrations.SystemESign
	outcome := models.SyncOutcome{System: system}
	if !s.esign.Configured() {
		return s.cleanupSkipped(outcome, reasonNotConfigured)
	}

	subID := record.ExternalID(system)
	if subID == "" {
		found, err := s.esign.FindByExternalID(ctx, record.ID.String())
		if err != nil {
			return s.cleanupResult(ctx, record, outcome, err)
		}
		subID = found
	}
	outcome.ExternalID = subID
	return s.cleanupResult(ctx, record, outcome, s.esign.Archive(ctx, subID))
}

func (s *Service) deleteContact(ctx context.Context, record *models.ClientRecord) models.SyncOutcome {
	system := integrations.SystemAccounting
	outcome := models.SyncOutcome{System: system, ExternalID: record.ExternalID(system)}
	if outcome.ExternalID == "" {
		return s.cleanupSkipped(outcome, "no_reference")
	}
	if !s.accounting.Configured() {
		return s.cleanupSkipped(outcome, reasonNotConfigured)
	}
	return s.cleanupResult(ctx, record, outcome, s.accounting.Delete(ctx, outcome.ExternalID))
}

// removeSubscriber deletes only the subscriber this back office created and
// stored; without a stored id the subscriber system is left untouched.
func (s *Service) removeSubscriber(ctx context.Context, record *models.ClientRecord) models.SyncOutcome {
	system := integrations.SystemSubscriber
	outcome := models.SyncOutcome{System: system, ExternalID: record.ExternalID(system)}
	if outcome.ExternalID == "" {
		return s.cleanupSkipped(outcome, "no_reference")
	}
	if !s.subscriber.Configured() {
		return s.cleanupSkipped(outcome, reasonNotConfigured)
	}
	return s.cleanupResult(ctx, record, outcome, s.subscriber.Delete(ctx, outcome.ExternalID))
}

func (s *Service) cleanupSkipped(outcome models.SyncOutcome, reason string) models.SyncOutcome {
	outcome.Status, outcome.Reason = integrations.StatusSkipped, reason
	s.metrics.IncrementCleanup(string(outcome.System), reason)
	return outcome
}

func (s *Service) cleanupResult(ctx context.Context, record *models.ClientRecord, outcome models.SyncOutcome, err error) models.SyncOutcome {
	switch {
	case err == nil:
		outcome.Status = integrations.StatusOK
		s.metrics.IncrementCleanup(string(outcome.System), "ok")
	case errors.Is(err, integrations.ErrNotFound):
		return s.cleanupSkipped(outcome, "not_found")
	case errors.Is(err, integrations.ErrNotConfigured):
		return s.cleanupSkipped(outcome, reasonNotConfigured)
	default:
		outcome.Status = integrations.StatusFailed
		outcome.Reason = string(integrations.KindOf(err))
		outcome.Err = err
		s.metrics.IncrementCleanup(string(outcome.System), "failed")
		s.logger.WarnContext(ctx, "external cleanup failed",
			"request_id", requestcontext.RequestID(ctx),
			"client_id", record.ID.String(),
			"system", string(outcome.System),
			"http_status", integrations.HTTPStatusOf(err),
			"body", integrations.BodyOf(err),
			"error", err,
		)
	}
	return outcome
}

// translate maps store sentinels onto domain errors.
func (s *Service) translate(ctx context.Context, err error, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "client not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, "client already exists")
	default:
		s.logger.ErrorContext(ctx, msg, "request_id", requestcontext.RequestID(ctx), "error", err)
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}
