package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"backoffice/internal/audit"
	"backoffice/internal/clients/models"
	"backoffice/internal/clients/service/mocks"
	"backoffice/internal/clients/store"
	"backoffice/internal/integrations"
	dErrors "backoffice/pkg/domain-errors"
)

type RecordsSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	store      *store.InMemory
	accounting *mocks.MockAccountingClient
	esign      *mocks.MockESignClient
	subscriber *mocks.MockSubscriberClient
	auditSink  *audit.MemorySink
	service    *Service
	ctx        context.Context
}

func TestRecordsSuite(t *testing.T) {
	suite.Run(t, new(RecordsSuite))
}

func (s *RecordsSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = store.NewInMemory()
	s.accounting = mocks.NewMockAccountingClient(s.ctrl)
	s.esign = mocks.NewMockESignClient(s.ctrl)
	s.subscriber = mocks.NewMockSubscriberClient(s.ctrl)
	s.auditSink = audit.NewMemorySink()
	s.service = New(s.store, mocks.NewMockDuplicateChecker(s.ctrl), Integrations{
		Accounting: s.accounting,
		ESign:      s.esign,
		Subscriber: s.subscriber,
	}, WithAuditPublisher(audit.NewPublisher(s.auditSink)))
	s.ctx = context.Background()
}

func (s *RecordsSuite) seed(attach map[integrations.System]string) *models.ClientRecord {
	now := time.Now().UTC()
	c := &models.ClientRecord{
		ID: uuid.New(), GivenName: "Ana", FamilyName: "Ruiz", NationalID: "900111222",
		Email: "ana@example.com", Phone: "3001234567", Address: "Calle 1",
		CreatedAt: now, UpdatedAt: now,
	}
	s.Require().NoError(s.store.Create(s.ctx, c))
	for system, id := range attach {
		s.Require().NoError(s.store.AttachExternalID(s.ctx, c.ID, system, id, now))
	}
	return c
}

// Justification: with no stored references and no submission found, every
// external step is skipped and the local record is removed. The subscriber
// system is never searched, so an unrelated account cannot be deleted.
func (s *RecordsSuite) TestDeleteWithoutReferences() {
	c := s.seed(nil)
	s.esign.EXPECT().Configured().Return(true)
	s.esign.EXPECT().FindByExternalID(gomock.Any(), c.ID.String()).
		Return("", integrations.NotFound(integrations.SystemESign, "find"))

	report, err := s.service.Delete(s.ctx, c.ID)
	s.Require().NoError(err)

	es, _ := report.Outcome(integrations.SystemESign)
	s.Equal(integrations.StatusSkipped, es.Status)
	acc, _ := report.Outcome(integrations.SystemAccounting)
	s.Equal(integrations.StatusSkipped, acc.Status)
	sub, _ := report.Outcome(integrations.SystemSubscriber)
	s.Equal(integrations.StatusSkipped, sub.Status)
	s.Equal("no_reference", sub.Reason)

	_, err = s.store.FindByID(s.ctx, c.ID)
	s.Error(err)
	s.Require().Len(s.auditSink.Events(), 1)
	s.Equal(audit.ActionClientDeleted, s.auditSink.Events()[0].Action)
}

func (s *RecordsSuite) TestDeleteWithReferences() {
	s.Run("uses stored ids and removes locally", func() {
		c := s.seed(map[integrations.System]string{
			integrations.SystemESign:      "77",
			integrations.SystemAccounting: "12",
			integrations.SystemSubscriber: "55",
		})
		s.esign.EXPECT().Configured().Return(true)
		s.esign.EXPECT().Archive(gomock.Any(), "77").Return(nil)
		s.accounting.EXPECT().Configured().Return(true)
		s.accounting.EXPECT().Delete(gomock.Any(), "12").Return(nil)
		s.subscriber.EXPECT().Configured().Return(true)
		s.subscriber.EXPECT().Delete(gomock.Any(), "55").Return(nil)

		report, err := s.service.Delete(s.ctx, c.ID)
		s.Require().NoError(err)
		s.Equal(integrations.StatusOK, report.Statuses()[integrations.SystemESign])
		s.Equal(integrations.StatusOK, report.Statuses()[integrations.SystemAccounting])
		s.Equal(integrations.StatusOK, report.Statuses()[integrations.SystemSubscriber])
	})

	s.Run("external failures never block local removal", func() {
		c := s.seed(map[integrations.System]string{integrations.SystemAccounting: "12", integrations.SystemSubscriber: "9"})
		s.esign.EXPECT().Configured().Return(true)
		s.esign.EXPECT().FindByExternalID(gomock.Any(), c.ID.String()).Return("5", nil)
		s.esign.EXPECT().Archive(gomock.Any(), "5").
			Return(&integrations.Error{Kind: integrations.KindUpstreamUnavailable, System: integrations.SystemESign, HTTPStatus: 500})
		s.accounting.EXPECT().Configured().Return(true)
		s.accounting.EXPECT().Delete(gomock.Any(), "12").Return(integrations.NotFound(integrations.SystemAccounting, "delete"))
		s.subscriber.EXPECT().Configured().Return(true)
		s.subscriber.EXPECT().Delete(gomock.Any(), "9").
			Return(&integrations.Error{Kind: integrations.KindUpstreamUnavailable, System: integrations.SystemSubscriber, HTTPStatus: 502})

		report, err := s.service.Delete(s.ctx, c.ID)
		s.Require().NoError(err)
		s.Equal(integrations.StatusFailed, report.Statuses()[integrations.SystemESign])
		s.Equal(integrations.StatusSkipped, report.Statuses()[integrations.SystemAccounting])
		sub, _ := report.Outcome(integrations.SystemSubscriber)
		s.Equal(integrations.StatusFailed, sub.Status)
		s.Equal("9", sub.ExternalID)
		_, err = s.store.FindByID(s.ctx, c.ID)
		s.Error(err)
	})

	s.Run("unconfigured systems are skipped", func() {
		c := s.seed(map[integrations.System]string{integrations.SystemAccounting: "12", integrations.SystemSubscriber: "55"})
		s.esign.EXPECT().Configured().Return(false)
		s.accounting.EXPECT().Configured().Return(false)
		s.subscriber.EXPECT().Configured().Return(false)

		_, err := s.service.Delete(s.ctx, c.ID)
		s.Require().NoError(err)
	})
}

func (s *RecordsSuite) TestDeleteUnknownClient() {
	_, err := s.service.Delete(s.ctx, uuid.New())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *RecordsSuite) TestUpdate() {
	c := s.seed(map[integrations.System]string{integrations.SystemESign: "77"})

	s.Run("edits fields and keeps external ids", func() {
		req := models.UpdateClientRequest{ClientFields: models.ClientFields{
			GivenName: "Ana Maria", FamilyName: "Ruiz", NationalID: "900111222",
			Email: " ana.maria@example.com ", Phone: "3001234567", Address: "Calle 2",
		}}
		updated, err := s.service.Update(s.ctx, c.ID, req)
		s.Require().NoError(err)
		s.Equal("ana.maria@example.com", updated.Email)
		s.Equal("77", updated.ExternalID(integrations.SystemESign))
		s.Equal(c.CreatedAt, updated.CreatedAt)
	})

	s.Run("rejects invalid fields", func() {
		_, err := s.service.Update(s.ctx, c.ID, models.UpdateClientRequest{})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown id", func() {
		req := models.UpdateClientRequest{ClientFields: models.ClientFields{
			GivenName: "A", FamilyName: "B", NationalID: "123456", Email: "a@b.co", Phone: "3001234567", Address: "X",
		}}
		_, err := s.service.Update(s.ctx, uuid.New(), req)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *RecordsSuite) TestGetAndList() {
	c := s.seed(nil)
	got, err := s.service.Get(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(c.ID, got.ID)

	list, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Len(list, 1)

	_, err = s.service.Get(s.ctx, uuid.New())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
