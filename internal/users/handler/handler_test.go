package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/users/models"
	"backoffice/internal/users/service"
	"backoffice/internal/users/store"
	dErrors "backoffice/pkg/domain-errors"
	"backoffice/pkg/testutil"
)

type fixture struct {
	router   http.Handler
	adminID  uuid.UUID
	operator *models.UserAccount
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := t.Context()
	users := store.NewInMemory()
	admin, err := users.Upsert(ctx, &models.UserAccount{ID: uuid.New(), Email: "admin@kivu.com.co",
		Role: models.RoleAdmin, Active: true, CreatedAt: time.Now()})
	require.NoError(t, err)
	op, err := users.Upsert(ctx, &models.UserAccount{ID: uuid.New(), Email: "op@kivu.com.co",
		Role: models.RoleOperator, Active: true, CreatedAt: time.Now().Add(time.Minute)})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	r := chi.NewRouter()
	New(service.New(users, service.WithLogger(logger)), logger).Register(r)
	return fixture{router: r, adminID: admin.ID, operator: op}
}

func asAdmin(req *http.Request, id uuid.UUID) *http.Request {
	req = testutil.WithPrincipal(req, "admin@kivu.com.co", string(models.RoleAdmin))
	return testutil.WithUserID(req, id)
}

func TestOperatorIsForbidden(t *testing.T) {
	f := newFixture(t)
	req := testutil.WithPrincipal(testutil.NewJSONRequest(t, http.MethodGet, "/admin/users", nil),
		"op@kivu.com.co", string(models.RoleOperator))

	rr := testutil.DoRequest(f.router, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestListUsersOldestFirst(t *testing.T) {
	f := newFixture(t)
	rr := testutil.DoRequest(f.router, asAdmin(testutil.NewJSONRequest(t, http.MethodGet, "/admin/users", nil), f.adminID))

	require.Equal(t, http.StatusOK, rr.Code)
	resp := testutil.UnmarshalResponse[ListResponse](t, rr)
	require.Len(t, resp.Users, 2)
	assert.Equal(t, f.adminID, resp.Users[0].ID)
	assert.NotContains(t, rr.Body.String(), "password")
}

func TestUpdateUser(t *testing.T) {
	f := newFixture(t)

	t.Run("promotes another user", func(t *testing.T) {
		req := asAdmin(testutil.NewJSONRequest(t, http.MethodPut, "/admin/users/"+f.operator.ID.String(),
			map[string]any{"role": "ADMIN"}), f.adminID)
		rr := testutil.DoRequest(f.router, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, models.RoleAdmin, testutil.UnmarshalResponse[UserResponse](t, rr).User.Role)
	})

	t.Run("cannot deactivate self", func(t *testing.T) {
		req := asAdmin(testutil.NewJSONRequest(t, http.MethodPut, "/admin/users/"+f.adminID.String(),
			map[string]any{"isActive": false}), f.adminID)
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, string(dErrors.CodeBadRequest))
	})

	t.Run("unknown user", func(t *testing.T) {
		req := asAdmin(testutil.NewJSONRequest(t, http.MethodPut, "/admin/users/"+uuid.NewString(),
			map[string]any{"isActive": true}), f.adminID)
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, string(dErrors.CodeNotFound))
	})
}
