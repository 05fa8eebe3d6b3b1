// Package subscriber is the client for the ISP subscriber-provisioning API
// (Mikrowisp). Every call is a JSON POST with the API token in the body.
package subscriber

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"backoffice/internal/integrations"
	"backoffice/internal/platform/config"
)

var (
	errWrongURL = errors.New("api rejected the endpoint url")
	errRejected = errors.New("api answered with an error state")
)

// wrongURLMarker is what the API answers, with 200, on a bad endpoint path.
const wrongURLMarker = "URL api es incorrecto"

// Client talks to the subscriber-provisioning API.
type Client struct {
	transport  *integrations.Transport
	newUserURL string
	baseURL    string
	token      string
	configured bool
}

// New builds a client from cfg. Without the new-user endpoint and token
// every call fails with integrations.ErrNotConfigured.
func New(cfg config.SubscriberConfig, opts ...integrations.Option) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = parentURL(cfg.NewUserURL)
	}
	return &Client{
		transport:  integrations.NewTransport(integrations.SystemSubscriber, base, opts...),
		newUserURL: cfg.NewUserURL,
		baseURL:    base,
		token:      cfg.Token,
		configured: cfg.Configured(),
	}
}

// Configured reports whether credentials are present.
func (c *Client) Configured() bool {
	return c.configured
}

// Create provisions a subscriber. The returned id is empty when the API
// accepted the request without reporting one.
func (c *Client) Create(ctx context.Context, sub NewSubscriber) (string, error) {
	const op = "create"
	if !c.configured {
		return "", integrations.NotConfigured(integrations.SystemSubscriber, op)
	}
	sub.Token = c.token
	body, err := c.transport.Do(ctx, integrations.Request{
		Op:     op,
		Method: http.MethodPost,
		Path:   c.newUserURL,
		Body:   sub,
	})
	if err != nil {
		return "", err
	}
	if bytes.Contains(body, []byte(wrongURLMarker)) {
		return "", integrations.BadResponse(integrations.SystemSubscriber, op, body, errWrongURL)
	}

	var res response
	if err := json.Unmarshal(body, &res); err != nil {
		// Non-JSON acknowledgements still mean the subscriber was created.
		return "", nil
	}
	if res.failed() {
		return "", integrations.BadResponse(integrations.SystemSubscriber, op, body, errRejected)
	}
	return res.ClientID.String(), nil
}

// Delete removes a subscriber by the id Create returned. An error state in
// the answer is read as not found.
func (c *Client) Delete(ctx context.Context, id string) error {
	const op = "delete"
	if !c.configured {
		return integrations.NotConfigured(integrations.SystemSubscriber, op)
	}
	body, err := c.transport.Do(ctx, integrations.Request{
		Op:     op,
		Method: http.MethodPost,
		Path:   "DeleteUser",
		Body:   map[string]string{"token": c.token, "idcliente": id},
	})
	if err != nil {
		return err
	}
	var res response
	if err := integrations.DecodeJSON(integrations.SystemSubscriber, op, body, &res); err != nil {
		return err
	}
	if res.failed() {
		return integrations.NotFound(integrations.SystemSubscriber, op)
	}
	return nil
}

// Health posts only the token to the new-user endpoint; a live API answers 200.
func (c *Client) Health(ctx context.Context) error {
	const op = "health"
	if !c.configured {
		return integrations.NotConfigured(integrations.SystemSubscriber, op)
	}
	body, err := c.transport.Do(ctx, integrations.Request{
		Op:     op,
		Method: http.MethodPost,
		Path:   c.newUserURL,
		Body:   map[string]string{"token": c.token},
	})
	if err != nil {
		return err
	}
	if bytes.Contains(body, []byte(wrongURLMarker)) {
		return integrations.BadResponse(integrations.SystemSubscriber, op, body, errWrongURL)
	}
	return nil
}

// parentURL drops the last path segment: .../api/v1/NewUser -> .../api/v1.
func parentURL(endpoint string) string {
	endpoint = strings.TrimRight(endpoint, "/")
	if i := strings.LastIndex(endpoint, "/"); i > len("https://") {
		return endpoint[:i]
	}
	return endpoint
}
