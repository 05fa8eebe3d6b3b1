package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"backoffice/internal/auth/service"
	"backoffice/internal/users/models"
	"backoffice/pkg/platform/httputil"
	authmw "backoffice/pkg/platform/middleware/auth"
	"backoffice/pkg/platform/middleware/request"
)

type Service interface {
	Login(ctx context.Context, req service.LoginRequest) (*service.Session, error)
}

// Handler serves login and logout. Both routes are public.
type Handler struct {
	service      Service
	logger       *slog.Logger
	secureCookie bool
}

func New(service Service, logger *slog.Logger, secureCookie bool) *Handler {
	return &Handler{service: service, logger: logger, secureCookie: secureCookie}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
}

type LoginResponse struct {
	OK        bool                `json:"ok"`
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expiresAt"`
	User      *models.UserAccount `json:"user"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[service.LoginRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}

	session, err := h.service.Login(ctx, *req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authmw.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	httputil.WriteJSON(w, http.StatusOK, LoginResponse{
		OK:        true,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      session.User,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authmw.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
