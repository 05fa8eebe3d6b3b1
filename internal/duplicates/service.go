// Package duplicates answers whether a candidate client already exists in the
// accounting or e-signature systems. Lookups are read-only.
package duplicates

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"backoffice/internal/integrations"
	"backoffice/internal/integrations/accounting"
	"backoffice/internal/integrations/esign"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks AccountingSearcher,ESignSearcher

// AccountingSearcher runs one free-text contact search.
type AccountingSearcher interface {
	Search(ctx context.Context, query string) ([]accounting.Contact, error)
}

// ESignSearcher searches submissions by email.
type ESignSearcher interface {
	Search(ctx context.Context, email string) (*esign.SearchResult, error)
}

// DefaultTTL is how long a successful lookup may be reused.
const DefaultTTL = time.Minute

// Service runs the lookups. Only successful answers are cached.
type Service struct {
	accounting AccountingSearcher
	esign      ESignSearcher
	cache      Cache
	ttl        time.Duration
	logger     *slog.Logger
	metrics    *Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithCache enables result reuse for ttl.
func WithCache(c Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(acc AccountingSearcher, es ESignSearcher, opts ...Option) *Service {
	s := &Service{accounting: acc, esign: es, ttl: DefaultTTL}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Check runs both lookups. The returned error is only for an invalid query;
// upstream failures are reported per system inside the Report.
func (s *Service) Check(ctx context.Context, q Query) (*Report, error) {
	q.Normalize()
	if err := q.Validate(); err != nil {
		return nil, err
	}
	report := &Report{}
	report.Accounting, report.AccountingErr = s.CheckAccounting(ctx, q)
	if q.Email != "" {
		report.ESign, report.ESignErr = s.CheckESign(ctx, q.Email)
	} else {
		report.ESign = &ESignResult{}
	}
	return report, nil
}

// CheckAccounting searches once, preferring the national id, and scans every
// candidate. An upstream failure is returned as is and never as "no match".
func (s *Service) CheckAccounting(ctx context.Context, q Query) (*AccountingResult, error) {
	q.Normalize()
	if err := q.Validate(); err != nil {
		return nil, err
	}
	system := string(integrations.SystemAccounting)
	key := accountingKey(q)

	var cached AccountingResult
	if s.lookupCache(ctx, key, &cached) {
		s.metrics.hit(system)
		return &cached, nil
	}

	contacts, err := s.accounting.Search(ctx, q.searchValue())
	if err != nil {
		s.metrics.check(system, "error")
		s.logFailure(ctx, integrations.SystemAccounting, err)
		return nil, err
	}
	res := Scan(contacts, q)
	s.metrics.check(system, outcome(res.Exists))
	if res.Exists {
		s.logger.InfoContext(ctx, "accounting duplicate found",
			"request_id", requestcontext.RequestID(ctx),
			"contact_id", res.Matched.ID.String(),
			"by_national_id", res.ExistsByNationalID,
			"by_email", res.ExistsByEmail,
		)
	}
	s.storeCache(ctx, key, res)
	return res, nil
}

// CheckESign searches by email only.
func (s *Service) CheckESign(ctx context.Context, email string) (*ESignResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "email is required")
	}
	system := string(integrations.SystemESign)
	key := esignKey(email)

	var cached ESignResult
	if s.lookupCache(ctx, key, &cached) {
		s.metrics.hit(system)
		return &cached, nil
	}

	found, err := s.esign.Search(ctx, email)
	if err != nil {
		s.metrics.check(system, "error")
		s.logFailure(ctx, integrations.SystemESign, err)
		return nil, err
	}
	res := &ESignResult{Exists: found.Exists, Count: found.Count}
	s.metrics.check(system, outcome(res.Exists))
	s.storeCache(ctx, key, res)
	return res, nil
}

// Forget drops cached answers for q, used once a client with these
// identifiers has been created.
func (s *Service) Forget(ctx context.Context, q Query) {
	if s.cache == nil {
		return
	}
	q.Normalize()
	keys := []string{accountingKey(q), accountingKey(Query{NationalID: q.NationalID}), accountingKey(Query{Email: q.Email})}
	if q.Email != "" {
		keys = append(keys, esignKey(q.Email))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.WarnContext(ctx, "failed to drop cached duplicate results", "error", err)
	}
}

func (s *Service) lookupCache(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	ok, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		s.logger.WarnContext(ctx, "duplicate cache read failed", "key", key, "error", err)
		return false
	}
	return ok
}

func (s *Service) storeCache(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, v, s.ttl); err != nil {
		s.logger.WarnContext(ctx, "duplicate cache write failed", "key", key, "error", err)
	}
}

func (s *Service) logFailure(ctx context.Context, system integrations.System, err error) {
	s.logger.WarnContext(ctx, "duplicate lookup failed",
		"request_id", requestcontext.RequestID(ctx),
		"system", string(system),
		"kind", string(integrations.KindOf(err)),
		"http_status", integrations.HTTPStatusOf(err),
		"body", integrations.BodyOf(err),
		"error", err,
	)
}

func accountingKey(q Query) string {
	return "accounting:" + q.NationalID + "|" + strings.ToLower(q.Email)
}

func esignKey(email string) string {
	return "esign:" + strings.ToLower(email)
}

func outcome(exists bool) string {
	if exists {
		return "match"
	}
	return "clear"
}
