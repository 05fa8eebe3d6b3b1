package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/duplicates"
	"backoffice/internal/integrations"
	"backoffice/internal/integrations/accounting"
)

type stubService struct {
	report *duplicates.Report
	err    error
	got    duplicates.Query
}

func (s *stubService) Check(_ context.Context, q duplicates.Query) (*duplicates.Report, error) {
	s.got = q
	return s.report, s.err
}

func newRouter(svc Service) http.Handler {
	r := chi.NewRouter()
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	return r
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/duplicate-check", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCheckReportsFlags(t *testing.T) {
	svc := &stubService{report: &duplicates.Report{
		Accounting: &duplicates.AccountingResult{Exists: true, ExistsByNationalID: true, ExistsByEmail: true,
			Matched: &accounting.Contact{ID: "12", Name: "ANA"}},
		ESign: &duplicates.ESignResult{Exists: true, Count: 2},
	}}
	rec := post(t, newRouter(svc), `{"nationalId":" 900111222 ","email":"a@b.com"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "900111222", svc.got.NationalID)

	var resp CheckResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.ExistsByNationalID)
	assert.True(t, resp.ExistsByEmail)
	assert.True(t, resp.ExistsESign)
	assert.Equal(t, 2, resp.Count)
	require.NotNil(t, resp.Contact)
	assert.Equal(t, integrations.ExternalID("12"), resp.Contact.ID)
}

func TestCheckRejectsEmptyQuery(t *testing.T) {
	svc := &stubService{}
	rec := post(t, newRouter(svc), `{"nationalId":"  ","email":""}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.got.NationalID)
}

func TestCheckAccountingFailureIs500(t *testing.T) {
	svc := &stubService{report: &duplicates.Report{
		AccountingErr: &integrations.Error{Kind: integrations.KindUpstreamUnavailable, System: integrations.SystemAccounting, HTTPStatus: 500},
		ESign:         &duplicates.ESignResult{},
	}}
	rec := post(t, newRouter(svc), `{"nationalId":"900111222"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "unavailable", body["error"])
	assert.NotContains(t, body, "existsByNationalId")
}

func TestCheckESignFailureIsSurfaced(t *testing.T) {
	svc := &stubService{report: &duplicates.Report{
		Accounting: &duplicates.AccountingResult{},
		ESignErr:   &integrations.Error{Kind: integrations.KindUpstreamUnavailable, System: integrations.SystemESign},
	}}
	rec := post(t, newRouter(svc), `{"email":"a@b.com"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CheckResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "upstream_unavailable", resp.ESignError)
	assert.False(t, resp.ExistsESign)
}

func TestCheckRejectsMalformedJSON(t *testing.T) {
	rec := post(t, newRouter(&stubService{}), `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
