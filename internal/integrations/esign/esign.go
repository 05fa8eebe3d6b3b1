// Package esign is the client for the e-signature submissions API (DocuSeal).
package esign

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"backoffice/internal/integrations"
	"backoffice/internal/platform/config"
)

const authHeader = "X-Auth-Token"

// listKeys are the wrapper keys the submissions list has been seen under.
var listKeys = []string{"submissions", "items", "results", "data"}

var (
	errMissingID = errors.New("response carries no submission id")
	errNotJSON   = errors.New("response is not JSON")
)

// Client talks to the e-signature submissions API.
type Client struct {
	transport  *integrations.Transport
	templateID string
	configured bool
}

// New builds a client from cfg. Without an API key and template every call
// fails with integrations.ErrNotConfigured.
func New(cfg config.ESignConfig, opts ...integrations.Option) *Client {
	key := cfg.APIKey
	opts = append(opts, integrations.WithAuthorizer(func(r *http.Request) {
		r.Header.Set(authHeader, key)
	}))
	return &Client{
		transport:  integrations.NewTransport(integrations.SystemESign, cfg.BaseURL, opts...),
		templateID: strings.TrimSpace(cfg.TemplateID),
		configured: cfg.Configured(),
	}
}

// Configured reports whether credentials are present.
func (c *Client) Configured() bool {
	return c.configured
}

// Search looks submissions up by email. Count prefers an explicit total from
// the response and falls back to the list length.
func (c *Client) Search(ctx context.Context, email string) (*SearchResult, error) {
	const op = "search"
	if !c.configured {
		return nil, integrations.NotConfigured(integrations.SystemESign, op)
	}
	body, err := c.transport.Do(ctx, integrations.Request{
		Op:     op,
		Method: http.MethodGet,
		Path:   "submissions",
		Query:  url.Values{"q": {email}, "limit": {"1"}},
	})
	if err != nil {
		return nil, err
	}
	return decodeSearch(op, body)
}

// FindByExternalID returns the first submission of the configured template
// correlated with externalID, or integrations.ErrNotFound.
func (c *Client) FindByExternalID(ctx context.Context, externalID string) (string, error) {
	const op = "find"
	if !c.configured {
		return "", integrations.NotConfigured(integrations.SystemESign, op)
	}
	body, err := c.transport.Do(ctx, integrations.Request{
		Op:     op,
		Method: http.MethodGet,
		Path:   "submissions",
		Query:  url.Values{"template_id": {c.templateID}, "external_id": {externalID}},
	})
	if err != nil {
		return "", err
	}
	res, err := decodeSearch(op, body)
	if err != nil {
		return "", err
	}
	if len(res.Submissions) == 0 || res.Submissions[0].ID == "" {
		return "", integrations.NotFound(integrations.SystemESign, op)
	}
	return res.Submissions[0].ID.String(), nil
}

// Create sends a new submission of the configured template and returns its id.
func (c *Client) Create(ctx context.Context, sub NewSubmission) (string, error) {
	const op = "create"
	if !c.configured {
		return "", integrations.NotConfigured(integrations.SystemESign, op)
	}
	templateID, err := strconv.Atoi(c.templateID)
	if err != nil {
		return "", integrations.NotConfigured(integrations.SystemESign, op)
	}
	sub.TemplateID = templateID
	sub.SendEmail = true

	body, err := c.transport.Do(ctx, integrations.Request{
		Op:     op,
		Method: http.MethodPost,
		Path:   "submissions",
		Body:   sub,
	})
	if err != nil {
		return "", err
	}
	return decodeCreated(op, body)
}

// Archive archives a submission. A 404 surfaces as integrations.ErrNotFound.
func (c *Client) Archive(ctx context.Context, id string) error {
	const op = "archive"
	if !c.configured {
		return integrations.NotConfigured(integrations.SystemESign, op)
	}
	_, err := c.transport.Do(ctx, integrations.Request{
		Op:     op,
		Method: http.MethodDelete,
		Path:   "submissions/" + url.PathEscape(id),
	})
	return err
}

// Health performs the cheapest authenticated read.
func (c *Client) Health(ctx context.Context) error {
	const op = "health"
	if !c.configured {
		return integrations.NotConfigured(integrations.SystemESign, op)
	}
	_, err := c.transport.Do(ctx, integrations.Request{
		Op:     op,
		Method: http.MethodGet,
		Path:   "submissions",
		Query:  url.Values{"limit": {"1"}},
	})
	return err
}

func decodeSearch(op string, body []byte) (*SearchResult, error) {
	if !json.Valid(body) {
		return nil, integrations.BadResponse(integrations.SystemESign, op, body, errNotJSON)
	}
	// A bare list has no envelope; fields stays empty.
	var fields map[string]json.RawMessage
	_ = json.Unmarshal(body, &fields)
	var meta map[string]json.RawMessage
	_ = json.Unmarshal(fields["meta"], &meta)

	raw, _ := integrations.ExtractList(body, listKeys...)
	res := &SearchResult{Submissions: make([]Submission, 0, len(raw))}
	for _, item := range raw {
		var s Submission
		if err := json.Unmarshal(item, &s); err != nil {
			continue
		}
		res.Submissions = append(res.Submissions, s)
	}

	res.Count = len(raw)
	for _, field := range []json.RawMessage{fields["total"], fields["count"], meta["total"]} {
		if n, ok := intField(field); ok {
			res.Count = n
			break
		}
	}
	res.Exists = res.Count > 0 || len(raw) > 0
	return res, nil
}

// intField reads one envelope value; absent or mistyped values are skipped
// so they never hide the others.
func intField(field json.RawMessage) (int, bool) {
	if len(field) == 0 || string(field) == "null" {
		return 0, false
	}
	var n int
	if err := json.Unmarshal(field, &n); err != nil {
		return 0, false
	}
	return n, true
}

// decodeCreated accepts a submission object or the list of submitters the
// API returns, each carrying submission_id.
func decodeCreated(op string, body []byte) (string, error) {
	var obj struct {
		ID           integrations.ExternalID `json:"id"`
		SubmissionID integrations.ExternalID `json:"submission_id"`
	}
	if items, ok := integrations.BareList(body); ok {
		if len(items) == 0 {
			return "", integrations.BadResponse(integrations.SystemESign, op, body, errMissingID)
		}
		body = items[0]
	}
	if err := integrations.DecodeJSON(integrations.SystemESign, op, body, &obj); err != nil {
		return "", err
	}
	if obj.SubmissionID != "" {
		return obj.SubmissionID.String(), nil
	}
	if obj.ID != "" {
		return obj.ID.String(), nil
	}
	return "", integrations.BadResponse(integrations.SystemESign, op, body, errMissingID)
}
