package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"backoffice/internal/clients/models"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/platform/httputil"
	"backoffice/pkg/platform/middleware/request"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service is the client back office as the HTTP layer sees it.
type Service interface {
	Onboard(ctx context.Context, req models.CreateClientRequest) (*models.OnboardResult, error)
	Get(ctx context.Context, id uuid.UUID) (*models.ClientRecord, error)
	List(ctx context.Context) ([]*models.ClientRecord, error)
	Update(ctx context.Context, id uuid.UUID, req models.UpdateClientRequest) (*models.ClientRecord, error)
	Delete(ctx context.Context, id uuid.UUID) (models.SyncReport, error)
}

// Handler serves the /clients routes.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/clients", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreateClientRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.Onboard(ctx, *req)
	if err != nil {
		h.logFailure(ctx, "onboarding rejected", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "client onboarded",
		"request_id", requestID,
		"client_id", res.Client.ID.String(),
	)
	httputil.WriteJSON(w, http.StatusCreated, toCreateResponse(res))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if list == nil {
		list = []*models.ClientRecord{}
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{Clients: list})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := clientID(w, r)
	if !ok {
		return
	}
	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ClientResponse{OK: true, Client: c})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	id, ok := clientID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.UpdateClientRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	c, err := h.service.Update(ctx, id, *req)
	if err != nil {
		h.logFailure(ctx, "client update rejected", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ClientResponse{OK: true, Client: c})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := clientID(w, r)
	if !ok {
		return
	}
	report, err := h.service.Delete(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "client deleted",
		"request_id", request.GetRequestID(ctx),
		"client_id", id.String(),
	)
	httputil.WriteJSON(w, http.StatusOK, DeleteResponse{OK: true, Cleanup: report.Statuses()})
}

func (h *Handler) logFailure(ctx context.Context, msg, requestID string, err error) {
	if dErrors.HasCode(err, dErrors.CodeInternal) || dErrors.HasCode(err, dErrors.CodeUnavailable) {
		h.logger.ErrorContext(ctx, msg, "request_id", requestID, "error", err)
		return
	}
	h.logger.WarnContext(ctx, msg, "request_id", requestID, "error", err)
}

func clientID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid client id"))
		return uuid.Nil, false
	}
	return id, true
}
