// Package store persists client records in memory or in Postgres.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"backoffice/internal/clients/models"
	"backoffice/internal/integrations"
	"backoffice/pkg/platform/sentinel"
)

// InMemory keeps clients in a map. Every method copies records in and out.
type InMemory struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*models.ClientRecord
}

func NewInMemory() *InMemory {
	return &InMemory{clients: make(map[uuid.UUID]*models.ClientRecord)}
}

func (s *InMemory) Create(_ context.Context, client *models.ClientRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[client.ID]; ok {
		return fmt.Errorf("create client %s: %w", client.ID, sentinel.ErrConflict)
	}
	s.clients[client.ID] = client.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.ClientRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return c.Clone(), nil
}

// List returns every client, newest first.
func (s *InMemory) List(_ context.Context) ([]*models.ClientRecord, error) {
	s.mu.RLock()
	out := make([]*models.ClientRecord, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, c.Clone())
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Update overwrites the editable fields. Id, creation time and external ids
// are kept from the stored record.
func (s *InMemory) Update(_ context.Context, client *models.ClientRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.clients[client.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	next := cur.Clone()
	next.GivenName = client.GivenName
	next.FamilyName = client.FamilyName
	next.NationalID = client.NationalID
	next.Email = client.Email
	next.Phone = client.Phone
	next.Address = client.Address
	next.Region = client.Region
	next.Locality = client.Locality
	next.UpdatedAt = client.UpdatedAt
	s.clients[client.ID] = next
	return nil
}

// AttachExternalID sets the id for system under the write lock, so concurrent
// attaches for different systems never lose each other. An id that is
// already set is kept.
func (s *InMemory) AttachExternalID(_ context.Context, id uuid.UUID, system integrations.System, externalID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.clients[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	if cur.SetExternalID(system, externalID) {
		cur.UpdatedAt = at
	}
	return nil
}

func (s *InMemory) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.clients, id)
	return nil
}
