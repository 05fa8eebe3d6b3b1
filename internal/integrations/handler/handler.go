// Package handler exposes integration health and the accounting contact
// directory.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"backoffice/internal/integrations"
	"backoffice/internal/integrations/accounting"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/platform/httputil"
	"backoffice/pkg/platform/middleware/request"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks HealthChecker,ContactLister

// healthTimeout bounds the whole status check so one hung system cannot
// stall the page.
const healthTimeout = 10 * time.Second

// HealthChecker is implemented by every adapter.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// ContactLister lists every client contact in the accounting system.
type ContactLister interface {
	List(ctx context.Context) ([]accounting.Contact, error)
}

// Health status values.
const (
	HealthOK      = "ok"
	HealthError   = "error"
	HealthSkipped = "skipped"
)

// SystemHealth is one system's row on the status page.
type SystemHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type DirectoryResponse struct {
	OK      bool                     `json:"ok"`
	Clients []accounting.ContactView `json:"clients"`
}

// Handler serves the /integrations routes.
type Handler struct {
	checkers map[integrations.System]HealthChecker
	contacts ContactLister
	logger   *slog.Logger
}

func New(checkers map[integrations.System]HealthChecker, contacts ContactLister, logger *slog.Logger) *Handler {
	return &Handler{checkers: checkers, contacts: contacts, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/integrations/status", h.handleStatus)
	r.Get("/integrations/accounting/contacts", h.handleContacts)
}

// handleStatus always answers 200; failures are carried per system.
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	results := make([]SystemHealth, len(integrations.Systems))
	g, gctx := errgroup.WithContext(ctx)
	for i, system := range integrations.Systems {
		checker, ok := h.checkers[system]
		if !ok {
			results[i] = SystemHealth{Status: HealthSkipped, Message: "not configured"}
			continue
		}
		g.Go(func() error {
			results[i] = h.check(gctx, system, checker)
			return nil
		})
	}
	_ = g.Wait()

	resp := make(map[integrations.System]SystemHealth, len(results))
	for i, system := range integrations.Systems {
		resp[system] = results[i]
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) check(ctx context.Context, system integrations.System, checker HealthChecker) SystemHealth {
	err := checker.Health(ctx)
	if err == nil {
		return SystemHealth{Status: HealthOK}
	}
	if errors.Is(err, integrations.ErrNotConfigured) {
		return SystemHealth{Status: HealthSkipped, Message: "not configured"}
	}

	h.logger.WarnContext(ctx, "integration health check failed",
		"request_id", request.GetRequestID(ctx),
		"system", string(system),
		"http_status", integrations.HTTPStatusOf(err),
		"error", err,
	)
	return SystemHealth{Status: HealthError, Message: healthMessage(err)}
}

func healthMessage(err error) string {
	status := integrations.HTTPStatusOf(err)
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Sprintf("invalid credentials (HTTP %d)", status)
	case status != 0:
		return fmt.Sprintf("HTTP %d", status)
	case integrations.KindOf(err) == integrations.KindBadResponse:
		return "unexpected response; check the configured URL"
	case errors.Is(err, context.DeadlineExceeded):
		return "timed out"
	}
	return "unreachable"
}

func (h *Handler) handleContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contacts, err := h.contacts.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list accounting contacts",
			"request_id", request.GetRequestID(ctx),
			"http_status", integrations.HTTPStatusOf(err),
			"body", integrations.BodyOf(err),
			"error", err,
		)
		if errors.Is(err, integrations.ErrNotConfigured) {
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "accounting is not configured"))
			return
		}
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to list accounting contacts"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, DirectoryResponse{OK: true, Clients: accounting.Directory(contacts)})
}
