package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"backoffice/internal/users/models"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/platform/httputil"
	"backoffice/pkg/platform/middleware/admin"
	"backoffice/pkg/platform/middleware/request"
)

type Service interface {
	List(ctx context.Context) ([]*models.UserAccount, error)
	Update(ctx context.Context, id uuid.UUID, change models.Change) (*models.UserAccount, error)
}

// Handler serves the admin user screen. Every route requires the ADMIN role.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(admin.RequireAdmin(h.logger))
		r.Get("/admin/users", h.handleList)
		r.Put("/admin/users/{id}", h.handleUpdate)
	})
}

type ListResponse struct {
	OK    bool                  `json:"ok"`
	Users []*models.UserAccount `json:"users"`
}

type UserResponse struct {
	OK   bool                `json:"ok"`
	User *models.UserAccount `json:"user"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if users == nil {
		users = []*models.UserAccount{}
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{OK: true, Users: users})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid user id"))
		return
	}
	change, ok := httputil.DecodeAndPrepare[models.Change](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	u, err := h.service.Update(ctx, id, *change)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "user updated",
		"request_id", requestID,
		"user_id", id.String(),
		"role", string(u.Role),
		"is_active", u.Active,
	)
	httputil.WriteJSON(w, http.StatusOK, UserResponse{OK: true, User: u})
}
