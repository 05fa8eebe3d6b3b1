package app

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authhandler "backoffice/internal/auth/handler"
	clienthandler "backoffice/internal/clients/handler"
	"backoffice/internal/integrations"
	integrationhandler "backoffice/internal/integrations/handler"
	"backoffice/internal/platform/config"
	userhandler "backoffice/internal/users/handler"
	"backoffice/pkg/testutil"
)

// bareConfig has no database, cache, broker or external systems.
func bareConfig() config.Server {
	return config.Server{
		AllowedOrigins: []string{"http://localhost:3000"},
		Auth: config.AuthConfig{
			AdminEmail:    "admin@kivu.com.co",
			AdminPassword: "s3cret",
			JWTSigningKey: "test-key",
			SessionTTL:    time.Hour,
		},
		IntegrationTimeout: 10 * time.Second,
		DuplicateCacheTTL:  time.Minute,
	}
}

func build(t *testing.T) *App {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	a, err := Build(context.Background(), bareConfig(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close(context.Background()) })
	return a
}

func login(t *testing.T, router http.Handler) string {
	t.Helper()
	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/login",
		map[string]string{"email": "admin@kivu.com.co", "password": "s3cret"}))
	require.Equal(t, http.StatusOK, rr.Code)
	return testutil.UnmarshalResponse[authhandler.LoginResponse](t, rr).Token
}

func authed(t *testing.T, method, path string, body any, token string) *http.Request {
	t.Helper()
	req := testutil.NewJSONRequest(t, method, path, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestBuildServesPublicRoutes(t *testing.T) {
	a := build(t)

	rr := testutil.DoRequest(a.Router, testutil.NewJSONRequest(t, http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = testutil.DoRequest(a.Router, testutil.NewJSONRequest(t, http.MethodGet, "/clients", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestOnboardingWithoutExternalSystems(t *testing.T) {
	a := build(t)
	token := login(t, a.Router)

	rr := testutil.DoRequest(a.Router, authed(t, http.MethodPost, "/clients", map[string]any{
		"nombre":    "Ana",
		"apellido":  "Gómez",
		"cedula":    "1020304050",
		"correo":    "ana@example.com",
		"telefono":  "3001234567",
		"direccion": "Calle 1 # 2-3",
	}, token))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	created := testutil.UnmarshalResponse[clienthandler.CreateResponse](t, rr)
	for _, system := range integrations.Systems {
		assert.Equal(t, integrations.StatusSkipped, created.Sync[system], system)
	}

	rr = testutil.DoRequest(a.Router, authed(t, http.MethodGet, "/clients/"+created.Client.ID.String(), nil, token))
	require.Equal(t, http.StatusOK, rr.Code)
	got := testutil.UnmarshalResponse[clienthandler.ClientResponse](t, rr)
	assert.Equal(t, "ana@example.com", got.Client.Email)
	assert.Nil(t, got.Client.AccountingID)
}

func TestStatusReportsUnconfiguredSystems(t *testing.T) {
	a := build(t)
	token := login(t, a.Router)

	rr := testutil.DoRequest(a.Router, authed(t, http.MethodGet, "/integrations/status", nil, token))
	require.Equal(t, http.StatusOK, rr.Code)

	status := *testutil.UnmarshalResponse[map[integrations.System]integrationhandler.SystemHealth](t, rr)
	require.Len(t, status, len(integrations.Systems))
	for _, system := range integrations.Systems {
		assert.Equal(t, integrationhandler.HealthSkipped, status[system].Status, system)
	}
}

func TestAdminLoginIsListed(t *testing.T) {
	a := build(t)
	token := login(t, a.Router)

	rr := testutil.DoRequest(a.Router, authed(t, http.MethodGet, "/admin/users", nil, token))
	require.Equal(t, http.StatusOK, rr.Code)

	users := testutil.UnmarshalResponse[userhandler.ListResponse](t, rr).Users
	require.Len(t, users, 1)
	assert.Equal(t, "admin@kivu.com.co", users[0].Email)
	assert.True(t, users[0].IsAdmin())
}
