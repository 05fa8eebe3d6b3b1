package subscriber

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"backoffice/internal/integrations"
	"backoffice/internal/platform/config"
)

type SubscriberSuite struct {
	suite.Suite
	server  *httptest.Server
	handler http.HandlerFunc
	client  *Client
	ctx     context.Context
}

func TestSubscriberSuite(t *testing.T) {
	suite.Run(t, new(SubscriberSuite))
}

func (s *SubscriberSuite) SetupTest() {
	s.ctx = context.Background()
	s.handler = func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.handler(w, r)
	}))
	s.client = New(config.SubscriberConfig{NewUserURL: s.server.URL + "/api/v1/NewUser", Token: "tok"})
}

func (s *SubscriberSuite) TearDownTest() {
	s.server.Close()
}

func decodeBody(r *http.Request) map[string]string {
	var m map[string]string
	_ = json.NewDecoder(r.Body).Decode(&m)
	return m
}

func (s *SubscriberSuite) TestNotConfigured() {
	called := false
	s.handler = func(http.ResponseWriter, *http.Request) { called = true }
	c := New(config.SubscriberConfig{NewUserURL: s.server.URL + "/api/v1/NewUser"})

	_, err := c.Create(s.ctx, NewSubscriber{})
	s.ErrorIs(err, integrations.ErrNotConfigured)
	s.ErrorIs(c.Delete(s.ctx, "1"), integrations.ErrNotConfigured)
	s.ErrorIs(c.Health(s.ctx), integrations.ErrNotConfigured)
	s.False(called)
}

func (s *SubscriberSuite) TestCreate() {
	s.Run("returns idcliente", func() {
		s.handler = func(w http.ResponseWriter, r *http.Request) {
			s.Equal("/api/v1/NewUser", r.URL.Path)
			body := decodeBody(r)
			s.Equal("tok", body["token"])
			s.Equal("Ana Ruiz", body["nombre"])
			s.Equal("", body["telefono"])
			s.Equal("3001234567", body["movil"])
			_, _ = w.Write([]byte(`{"estado":"exito","idcliente":55}`))
		}
		id, err := s.client.Create(s.ctx, NewSubscriberFor("Ana", "Ruiz", "123456", "a@b.com", "3001234567", "Calle 1"))
		s.Require().NoError(err)
		s.Equal("55", id)
	})

	s.Run("non json acknowledgement has no id", func() {
		s.handler = func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("OK")) }
		id, err := s.client.Create(s.ctx, NewSubscriber{})
		s.Require().NoError(err)
		s.Empty(id)
	})

	s.Run("error state is bad response", func() {
		s.handler = func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"estado":"error","mensaje":"cedula duplicada"}`))
		}
		_, err := s.client.Create(s.ctx, NewSubscriber{})
		s.ErrorIs(err, integrations.ErrBadResponse)
	})

	s.Run("http failure is upstream unavailable", func() {
		s.handler = func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) }
		_, err := s.client.Create(s.ctx, NewSubscriber{})
		s.ErrorIs(err, integrations.ErrUpstreamUnavailable)
	})
}

func (s *SubscriberSuite) TestDelete() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(r)
		s.Equal("tok", body["token"])
		switch r.URL.Path {
		case "/api/v1/DeleteUser":
			if body["idcliente"] == "55" {
				_, _ = w.Write([]byte(`{"estado":"exito"}`))
				return
			}
			_, _ = w.Write([]byte(`{"estado":"error"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}

	s.NoError(s.client.Delete(s.ctx, "55"))
	s.ErrorIs(s.client.Delete(s.ctx, "56"), integrations.ErrNotFound)
}

func (s *SubscriberSuite) TestHealth() {
	s.Run("live", func() {
		s.handler = func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"estado":"error","mensaje":"faltan datos"}`))
		}
		s.NoError(s.client.Health(s.ctx))
	})
	s.Run("wrong url marker", func() {
		s.handler = func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(`URL api es incorrecto`)) }
		s.ErrorIs(s.client.Health(s.ctx), integrations.ErrBadResponse)
	})
}

func TestParentURL(t *testing.T) {
	if got := parentURL("https://isp.example/api/v1/NewUser"); got != "https://isp.example/api/v1" {
		t.Fatalf("unexpected parent %q", got)
	}
	if got := parentURL("https://isp.example"); got != "https://isp.example" {
		t.Fatalf("unexpected parent %q", got)
	}
}
