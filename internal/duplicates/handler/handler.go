package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"backoffice/internal/duplicates"
	"backoffice/internal/integrations"
	"backoffice/internal/integrations/accounting"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/platform/httputil"
	"backoffice/pkg/platform/middleware/request"
)

// Service is the duplicate lookup used by the form's live validation.
type Service interface {
	Check(ctx context.Context, q duplicates.Query) (*duplicates.Report, error)
}

// Handler serves POST /duplicate-check.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/duplicate-check", h.handleCheck)
}

// CheckResponse is the live-validation answer. An e-signature failure does
// not fail the request but is reported in ESignError so it is never read as
// "no submissions".
type CheckResponse struct {
	Exists             bool                `json:"exists"`
	ExistsByNationalID bool                `json:"existsByNationalId"`
	ExistsByEmail      bool                `json:"existsByEmail"`
	ExistsESign        bool                `json:"existsEsign"`
	Count              int                 `json:"count"`
	Contact            *accounting.Contact `json:"contact,omitempty"`
	ESignError         string              `json:"esignError,omitempty"`
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[duplicates.Query](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	report, err := h.service.Check(ctx, *req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if report.AccountingErr != nil {
		h.logger.ErrorContext(ctx, "duplicate check could not reach accounting",
			"request_id", requestID,
			"kind", string(integrations.KindOf(report.AccountingErr)),
			"error", report.AccountingErr,
		)
		httputil.WriteError(w, dErrors.Wrap(report.AccountingErr, dErrors.CodeUnavailable,
			"accounting lookup failed; duplicate status is unknown"))
		return
	}

	resp := CheckResponse{
		Exists:             report.Accounting.Exists,
		ExistsByNationalID: report.Accounting.ExistsByNationalID,
		ExistsByEmail:      report.Accounting.ExistsByEmail,
		Contact:            report.Accounting.Matched,
	}
	if report.ESignErr != nil {
		resp.ESignError = string(integrations.KindOf(report.ESignErr))
	} else if report.ESign != nil {
		resp.ExistsESign = report.ESign.Exists
		resp.Count = report.ESign.Count
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
