package testutil

import (
	"net/http"

	"github.com/google/uuid"

	"backoffice/pkg/requestcontext"
)

// WithPrincipal attaches an authenticated staff member to the request, as
// the auth middleware would. The user id is random; use WithUserID to pin it.
func WithPrincipal(req *http.Request, email, role string) *http.Request {
	ctx := requestcontext.WithActor(req.Context(), requestcontext.Principal{
		UserID: uuid.New(),
		Email:  email,
		Role:   role,
	})
	return req.WithContext(ctx)
}

// WithUserID replaces the user id of the request's principal.
func WithUserID(req *http.Request, id uuid.UUID) *http.Request {
	p := requestcontext.Actor(req.Context())
	p.UserID = id
	return req.WithContext(requestcontext.WithActor(req.Context(), p))
}
