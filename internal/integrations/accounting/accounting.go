// Package accounting is the client for the accounting contacts API (Alegra).
// It authenticates with HTTP Basic user:token credentials.
package accounting

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"backoffice/internal/integrations"
	"backoffice/internal/platform/config"
)

const (
	// PageSize is the largest page the contacts API serves.
	PageSize = 30
	// ListCeiling bounds a full directory scan.
	ListCeiling = 500
)

// Client talks to the accounting contacts API.
type Client struct {
	transport  *integrations.Transport
	configured bool
}

// New builds a client from cfg. Without credentials every call fails with
// integrations.ErrNotConfigured.
func New(cfg config.AccountingConfig, opts ...integrations.Option) *Client {
	user, token := cfg.User, cfg.Token
	opts = append(opts, integrations.WithAuthorizer(func(r *http.Request) {
		r.SetBasicAuth(user, token)
	}))
	return &Client{
		transport:  integrations.NewTransport(integrations.SystemAccounting, cfg.BaseURL, opts...),
		configured: cfg.Configured(),
	}
}

// Configured reports whether credentials are present.
func (c *Client) Configured() bool {
	return c.configured
}

// Search runs one free-text contact search and returns every candidate.
func (c *Client) Search(ctx context.Context, query string) ([]Contact, error) {
	const op = "search"
	if !c.configured {
		return nil, integrations.NotConfigured(integrations.SystemAccounting, op)
	}
	body, err := c.transport.Do(ctx, integrations.Request{
		Op:     op,
		Method: http.MethodGet,
		Path:   "contacts",
		Query:  url.Values{"metadata": {"true"}, "query": {query}},
	})
	if err != nil {
		return nil, err
	}
	return decodeContacts(op, body)
}

// List pages through all client contacts, bounded by ListCeiling.
func (c *Client) List(ctx context.Context) ([]Contact, error) {
	const op = "list"
	if !c.configured {
		return nil, integrations.NotConfigured(integrations.SystemAccounting, op)
	}
	return integrations.Paginate(ctx, PageSize, ListCeiling, func(ctx context.Context, offset, limit int) ([]Contact, error) {
		body, err := c.transport.Do(ctx, integrations.Request{
			Op:     op,
			Method: http.MethodGet,
			Path:   "contacts",
			Query: url.Values{
				"type":  {"client"},
				"limit": {strconv.Itoa(limit)},
				"start": {strconv.Itoa(offset)},
			},
		})
		if err != nil {
			return nil, err
		}
		return decodeContacts(op, body)
	})
}

// Create registers a new contact and returns the id the API assigned.
func (c *Client) Create(ctx context.Context, contact NewContact) (string, error) {
	const op = "create"
	if !c.configured {
		return "", integrations.NotConfigured(integrations.SystemAccounting, op)
	}
	body, err := c.transport.Do(ctx, integrations.Request{
		Op:     op,
		Method: http.MethodPost,
		Path:   "contacts",
		Body:   contact,
	})
	if err != nil {
		return "", err
	}
	var created struct {
		ID integrations.ExternalID `json:"id"`
	}
	if err := integrations.DecodeJSON(integrations.SystemAccounting, op, body, &created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", integrations.BadResponse(integrations.SystemAccounting, op, body, errMissingID)
	}
	return created.ID.String(), nil
}

// Delete removes a contact. A 404 surfaces as integrations.ErrNotFound.
func (c *Client) Delete(ctx context.Context, id string) error {
	const op = "delete"
	if !c.configured {
		return integrations.NotConfigured(integrations.SystemAccounting, op)
	}
	_, err := c.transport.Do(ctx, integrations.Request{
		Op:     op,
		Method: http.MethodDelete,
		Path:   "contacts/" + url.PathEscape(strings.TrimSpace(id)),
	})
	return err
}

// Health performs the cheapest authenticated read.
func (c *Client) Health(ctx context.Context) error {
	const op = "health"
	if !c.configured {
		return integrations.NotConfigured(integrations.SystemAccounting, op)
	}
	_, err := c.transport.Do(ctx, integrations.Request{
		Op:     op,
		Method: http.MethodGet,
		Path:   "contacts",
		Query:  url.Values{"limit": {"1"}},
	})
	return err
}

// decodeContacts accepts a bare array or an object wrapping it under "data".
// Valid JSON of any other shape is an empty result.
func decodeContacts(op string, body []byte) ([]Contact, error) {
	if !json.Valid(body) {
		return nil, integrations.BadResponse(integrations.SystemAccounting, op, body, errNotJSON)
	}
	raw, ok := integrations.ExtractList(body, "data")
	if !ok {
		return nil, nil
	}
	contacts := make([]Contact, 0, len(raw))
	for _, item := range raw {
		var ct Contact
		if err := json.Unmarshal(item, &ct); err != nil {
			return nil, integrations.BadResponse(integrations.SystemAccounting, op, item, err)
		}
		contacts = append(contacts, ct)
	}
	return contacts, nil
}
