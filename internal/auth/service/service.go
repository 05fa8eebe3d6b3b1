// Package service authenticates staff members and issues session tokens.
package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"backoffice/internal/audit"
	"backoffice/internal/auth/token"
	"backoffice/internal/platform/config"
	"backoffice/internal/users/models"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/email"
	"backoffice/pkg/platform/sentinel"
	"backoffice/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks UserStore,TokenIssuer

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.UserAccount, error)
	Upsert(ctx context.Context, u *models.UserAccount) (*models.UserAccount, error)
}

type TokenIssuer interface {
	Generate(sub token.Subject, expiresIn time.Duration) (string, time.Time, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, e audit.Event) error
}

// LoginRequest is the login form.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return dErrors.New(dErrors.CodeBadRequest, "email and password are required")
	}
	return nil
}

// Session is an issued session token and who it belongs to.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *models.UserAccount
}

var errInvalidCredentials = dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")

type Service struct {
	users  UserStore
	tokens TokenIssuer
	cfg    config.AuthConfig
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

func New(users UserStore, tokens TokenIssuer, cfg config.AuthConfig, opts ...Option) *Service {
	s := &Service{users: users, tokens: tokens, cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.cfg.SessionTTL <= 0 {
		s.cfg.SessionTTL = 8 * time.Hour
	}
	return s
}

// Login accepts the configured admin credentials or an active account with a
// matching password hash. Every failure looks the same to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, reason, err := s.authenticate(ctx, req)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.logger.WarnContext(ctx, "login rejected",
			"request_id", requestcontext.RequestID(ctx),
			"email", req.Email,
			"reason", reason,
		)
		s.emit(ctx, audit.Event{Action: audit.ActionLoginFailed, Subject: req.Email,
			Details: map[string]string{"reason": reason}})
		return nil, errInvalidCredentials
	}

	signed, expiresAt, err := s.tokens.Generate(token.Subject{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	}, s.cfg.SessionTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue session")
	}

	s.logger.InfoContext(ctx, "login succeeded",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", user.ID.String(),
		"role", string(user.Role),
	)
	s.emit(ctx, audit.Event{Action: audit.ActionLoginSucceeded, Subject: user.ID.String(), ActorEmail: user.Email})
	return &Session{Token: signed, ExpiresAt: expiresAt, User: user}, nil
}

// authenticate returns the account or, when rejected, the reason.
func (s *Service) authenticate(ctx context.Context, req LoginRequest) (*models.UserAccount, string, error) {
	if s.cfg.AllowedDomain != "" && !email.InDomain(req.Email, s.cfg.AllowedDomain) {
		return nil, "domain_not_allowed", nil
	}

	if s.isConfiguredAdmin(req) {
		user, err := s.SeedAdmin(ctx)
		if err != nil {
			return nil, "", err
		}
		return user, "", nil
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return nil, "unknown_user", nil
	case err != nil:
		return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	case !user.Active:
		return nil, "inactive", nil
	case user.PasswordHash == "":
		return nil, "no_password", nil
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, "wrong_password", nil
	}
	return user, "", nil
}

func (s *Service) isConfiguredAdmin(req LoginRequest) bool {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		return false
	}
	return req.Email == s.cfg.AdminEmail &&
		subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.cfg.AdminPassword)) == 1
}

// SeedAdmin upserts the configured admin as an active ADMIN whose password
// hash matches the configured password.
func (s *Service) SeedAdmin(ctx context.Context) (*models.UserAccount, error) {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		return nil, dErrors.New(dErrors.CodeInvalidRequest, "admin credentials are not configured")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash admin password")
	}
	user, err := s.users.Upsert(ctx, &models.UserAccount{
		ID:           uuid.New(),
		Name:         email.DisplayName(s.cfg.AdminEmail),
		Email:        s.cfg.AdminEmail,
		Role:         models.RoleAdmin,
		Active:       true,
		PasswordHash: string(hash),
		CreatedAt:    requestcontext.Now(ctx).UTC(),
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store admin user")
	}
	return user, nil
}

func (s *Service) emit(ctx context.Context, e audit.Event) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Emit(ctx, e); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "action", string(e.Action), "error", err)
	}
}
