package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"backoffice/internal/audit"
	"backoffice/internal/clients/metrics"
	"backoffice/internal/clients/models"
	"backoffice/internal/clients/service/mocks"
	"backoffice/internal/clients/store"
	"backoffice/internal/duplicates"
	"backoffice/internal/integrations"
	"backoffice/internal/integrations/accounting"
	"backoffice/internal/integrations/esign"
	"backoffice/internal/integrations/subscriber"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/requestcontext"
)

type OnboardSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	store      *store.InMemory
	duplicates *mocks.MockDuplicateChecker
	accounting *mocks.MockAccountingClient
	esign      *mocks.MockESignClient
	subscriber *mocks.MockSubscriberClient
	auditSink  *audit.MemorySink
	metrics    *metrics.Metrics
	service    *Service
	ctx        context.Context
}

func TestOnboardSuite(t *testing.T) {
	suite.Run(t, new(OnboardSuite))
}

func (s *OnboardSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = store.NewInMemory()
	s.duplicates = mocks.NewMockDuplicateChecker(s.ctrl)
	s.accounting = mocks.NewMockAccountingClient(s.ctrl)
	s.esign = mocks.NewMockESignClient(s.ctrl)
	s.subscriber = mocks.NewMockSubscriberClient(s.ctrl)
	s.auditSink = audit.NewMemorySink()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service = New(s.store, s.duplicates, Integrations{
		Accounting: s.accounting,
		ESign:      s.esign,
		Subscriber: s.subscriber,
	},
		WithMetrics(s.metrics),
		WithAuditPublisher(audit.NewPublisher(s.auditSink)),
		WithFallbackOperatorEmail("fallback@kivu.test"),
	)
	s.ctx = context.Background()

	s.accounting.EXPECT().Configured().Return(true).AnyTimes()
	s.esign.EXPECT().Configured().Return(true).AnyTimes()
	s.subscriber.EXPECT().Configured().Return(true).AnyTimes()
}

func (s *OnboardSuite) TearDownTest() {
	s.ctrl.Finish()
}

func validRequest() models.CreateClientRequest {
	return models.CreateClientRequest{ClientFields: models.ClientFields{
		GivenName:  "Yuli Angelica",
		FamilyName: "Espinel Lara",
		NationalID: "900111222",
		Email:      "yuli@example.com",
		Phone:      "3001234567",
		Address:    "Calle 10 # 5-20",
		Region:     "Meta",
		Locality:   "Villavicencio",
	}}
}

// expectClearGate stubs a duplicate gate that finds nothing.
func (s *OnboardSuite) expectClearGate() {
	s.duplicates.EXPECT().CheckAccounting(gomock.Any(), gomock.Any()).Return(&duplicates.AccountingResult{}, nil)
	s.duplicates.EXPECT().CheckESign(gomock.Any(), "yuli@example.com").Return(&duplicates.ESignResult{}, nil)
	s.duplicates.EXPECT().Forget(gomock.Any(), gomock.Any())
}

func (s *OnboardSuite) storedClients() []*models.ClientRecord {
	list, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	return list
}

// Justification: a malformed national id never reaches the store or any adapter.
func (s *OnboardSuite) TestValidationBlocksEverything() {
	req := validRequest()
	req.NationalID = "123"
	req.Email = "not-an-email"

	_, err := s.service.Onboard(s.ctx, req)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	fields := dErrors.FieldsOf(err)
	s.Contains(fields, "cedula")
	s.Contains(fields, "correo")
	s.Empty(s.storedClients())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Onboardings.WithLabelValues(string(StateInvalid))))
}

func (s *OnboardSuite) TestDuplicateGate() {
	s.Run("accounting national id match blocks with cedula", func() {
		s.duplicates.EXPECT().CheckAccounting(gomock.Any(), duplicates.Query{NationalID: "900111222", Email: "yuli@example.com"}).
			Return(&duplicates.AccountingResult{Exists: true, ExistsByNationalID: true,
				Matched: &accounting.Contact{ID: "1", Identification: "900111222"}}, nil)

		_, err := s.service.Onboard(s.ctx, validRequest())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Contains(dErrors.FieldsOf(err), "cedula")
		s.Empty(s.storedClients())
	})

	s.Run("accounting email match blocks with correo", func() {
		s.duplicates.EXPECT().CheckAccounting(gomock.Any(), gomock.Any()).
			Return(&duplicates.AccountingResult{Exists: true, ExistsByEmail: true}, nil)

		_, err := s.service.Onboard(s.ctx, validRequest())
		s.Require().Error(err)
		s.Contains(dErrors.FieldsOf(err), "correo")
	})

	s.Run("accounting outage blocks as unavailable", func() {
		s.duplicates.EXPECT().CheckAccounting(gomock.Any(), gomock.Any()).
			Return(nil, &integrations.Error{Kind: integrations.KindUpstreamUnavailable, System: integrations.SystemAccounting, HTTPStatus: 500})

		_, err := s.service.Onboard(s.ctx, validRequest())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
		s.Empty(s.storedClients())
		s.Equal(1.0, testutil.ToFloat64(s.metrics.Onboardings.WithLabelValues(string(StateUnverified))))
		s.Equal(2.0, testutil.ToFloat64(s.metrics.Onboardings.WithLabelValues(string(StateDuplicateBlocked))),
			"only the two real matches count as duplicates")
	})
}

func (s *OnboardSuite) TestESignMatchOnlyWarns() {
	s.duplicates.EXPECT().CheckAccounting(gomock.Any(), gomock.Any()).Return(&duplicates.AccountingResult{}, nil)
	s.duplicates.EXPECT().CheckESign(gomock.Any(), gomock.Any()).Return(&duplicates.ESignResult{Exists: true, Count: 2}, nil)
	s.duplicates.EXPECT().Forget(gomock.Any(), gomock.Any())
	s.esign.EXPECT().Create(gomock.Any(), gomock.Any()).Return("77", nil)
	s.accounting.EXPECT().Create(gomock.Any(), gomock.Any()).Return("12", nil)
	s.subscriber.EXPECT().Create(gomock.Any(), gomock.Any()).Return("55", nil)

	res, err := s.service.Onboard(s.ctx, validRequest())
	s.Require().NoError(err)
	s.Require().Len(res.Warnings, 1)
	s.Equal(WarningESignExisting, res.Warnings[0].Code)
	s.Equal("77", res.Client.ExternalID(integrations.SystemESign))
	s.Equal("12", res.Client.ExternalID(integrations.SystemAccounting))
	s.Equal("55", res.Client.ExternalID(integrations.SystemSubscriber))
}

// Justification: one failing system leaves the record and the other ids in place.
func (s *OnboardSuite) TestPartialFailureKeepsRecord() {
	s.expectClearGate()
	s.esign.EXPECT().Create(gomock.Any(), gomock.Any()).Return("77", nil)
	s.accounting.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return("", &integrations.Error{Kind: integrations.KindUpstreamUnavailable, System: integrations.SystemAccounting, HTTPStatus: http.StatusBadGateway})
	s.subscriber.EXPECT().Create(gomock.Any(), gomock.Any()).Return("55", nil)

	res, err := s.service.Onboard(s.ctx, validRequest())
	s.Require().NoError(err)

	statuses := res.Sync.Statuses()
	s.Equal(integrations.StatusOK, statuses[integrations.SystemESign])
	s.Equal(integrations.StatusFailed, statuses[integrations.SystemAccounting])
	s.Equal(integrations.StatusOK, statuses[integrations.SystemSubscriber])
	acc, _ := res.Sync.Outcome(integrations.SystemAccounting)
	s.Equal(string(integrations.KindUpstreamUnavailable), acc.Reason)

	stored, err := s.store.FindByID(s.ctx, res.Client.ID)
	s.Require().NoError(err)
	s.Equal("77", stored.ExternalID(integrations.SystemESign))
	s.Nil(stored.AccountingID)
	s.Equal("55", stored.ExternalID(integrations.SystemSubscriber))

	events := s.auditSink.Events()
	s.Require().Len(events, 1)
	s.Equal(audit.ActionClientCreated, events[0].Action)
	s.Equal("failed", events[0].Details["sync_accounting"])
}

func (s *OnboardSuite) TestPropagationOrderAndPayloads() {
	s.expectClearGate()
	ctx := requestcontext.WithActor(s.ctx, requestcontext.Principal{UserID: uuid.New(), Email: "operator@kivu.test"})

	gomock.InOrder(
		s.esign.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, sub esign.NewSubmission) (string, error) {
			s.Require().Len(sub.Submitters, 2)
			s.Equal("operator@kivu.test", sub.Submitters[1].Email)
			s.Equal("Yuli Angelica Espinel Lara", sub.Submitters[0].Name)
			s.NotEmpty(sub.ExternalID)
			return "77", nil
		}),
		s.accounting.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c accounting.NewContact) (string, error) {
			s.Equal("YULI ANGELICA ESPINEL LARA", c.Name)
			s.Equal(accounting.NameParts{FirstName: "YULI", SecondName: "ANGELICA", LastName: "ESPINEL", SecondLastName: "LARA"}, c.NameObject)
			s.Equal("Villavicencio", c.Address.City)
			return "12", nil
		}),
		s.subscriber.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, sub subscriber.NewSubscriber) (string, error) {
			s.Equal("3001234567", sub.Mobile)
			s.Empty(sub.Landline)
			return "", nil
		}),
	)

	res, err := s.service.Onboard(ctx, validRequest())
	s.Require().NoError(err)
	sub, _ := res.Sync.Outcome(integrations.SystemSubscriber)
	s.Equal(integrations.StatusOK, sub.Status)
	s.Nil(res.Client.SubscriberID)
}

func (s *OnboardSuite) TestFallbackOperatorEmail() {
	s.expectClearGate()
	s.esign.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, sub esign.NewSubmission) (string, error) {
		s.Equal("fallback@kivu.test", sub.Submitters[1].Email)
		return "1", nil
	})
	s.accounting.EXPECT().Create(gomock.Any(), gomock.Any()).Return("2", nil)
	s.subscriber.EXPECT().Create(gomock.Any(), gomock.Any()).Return("3", nil)

	_, err := s.service.Onboard(s.ctx, validRequest())
	s.Require().NoError(err)
}

func (s *OnboardSuite) TestTogglesAndUnconfiguredSystems() {
	off := false
	req := validRequest()
	req.Integrations = models.Toggles{ESign: &off}

	s.duplicates.EXPECT().CheckAccounting(gomock.Any(), gomock.Any()).Return(&duplicates.AccountingResult{}, nil)
	s.duplicates.EXPECT().Forget(gomock.Any(), gomock.Any())
	s.accounting.EXPECT().Create(gomock.Any(), gomock.Any()).Return("12", nil)
	s.subscriber.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return("", integrations.NotConfigured(integrations.SystemSubscriber, "create"))

	res, err := s.service.Onboard(s.ctx, req)
	s.Require().NoError(err)

	es, _ := res.Sync.Outcome(integrations.SystemESign)
	s.Equal(integrations.StatusSkipped, es.Status)
	s.Equal("disabled", es.Reason)
	sub, _ := res.Sync.Outcome(integrations.SystemSubscriber)
	s.Equal(integrations.StatusSkipped, sub.Status)
	s.Equal("not_configured", sub.Reason)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Propagations.WithLabelValues("accounting", "ok")))
}

// Justification: identical input twice yields two records with distinct ids.
func (s *OnboardSuite) TestRepeatedOnboardingGetsNewIDs() {
	for range 2 {
		s.expectClearGate()
		s.esign.EXPECT().Create(gomock.Any(), gomock.Any()).Return("", errors.New("offline"))
		s.accounting.EXPECT().Create(gomock.Any(), gomock.Any()).Return("", errors.New("offline"))
		s.subscriber.EXPECT().Create(gomock.Any(), gomock.Any()).Return("", errors.New("offline"))
	}

	first, err := s.service.Onboard(s.ctx, validRequest())
	s.Require().NoError(err)
	second, err := s.service.Onboard(s.ctx, validRequest())
	s.Require().NoError(err)

	s.NotEqual(first.Client.ID, second.Client.ID)
	s.Len(s.storedClients(), 2)
}

func (s *OnboardSuite) TestCreatedAtComesFromRequestClock() {
	now := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	ctx := requestcontext.WithTime(s.ctx, now)
	off := false
	req := validRequest()
	req.Integrations = models.Toggles{ESign: &off, Accounting: &off, Subscriber: &off}

	s.duplicates.EXPECT().CheckAccounting(gomock.Any(), gomock.Any()).Return(&duplicates.AccountingResult{}, nil)
	s.duplicates.EXPECT().Forget(gomock.Any(), gomock.Any())

	res, err := s.service.Onboard(ctx, req)
	s.Require().NoError(err)
	s.Equal(now, res.Client.CreatedAt)
}

func (s *OnboardSuite) TestPersistenceFailureStopsBeforePropagation() {
	failing := mocks.NewMockStore(s.ctrl)
	svc := New(failing, s.duplicates, Integrations{Accounting: s.accounting, ESign: s.esign, Subscriber: s.subscriber})

	s.duplicates.EXPECT().CheckAccounting(gomock.Any(), gomock.Any()).Return(&duplicates.AccountingResult{}, nil)
	s.duplicates.EXPECT().CheckESign(gomock.Any(), gomock.Any()).Return(&duplicates.ESignResult{}, nil)
	failing.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	_, err := svc.Onboard(s.ctx, validRequest())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
