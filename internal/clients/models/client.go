package models

import (
	"time"

	"github.com/google/uuid"

	"backoffice/internal/integrations"
)

// ClientRecord is the back office's own copy of a client. The external ids
// stay nil until the matching system accepted the client and are never
// cleared afterwards.
type ClientRecord struct {
	ID                uuid.UUID `json:"id"`
	GivenName         string    `json:"nombre"`
	FamilyName        string    `json:"apellido"`
	NationalID        string    `json:"cedula"`
	Email             string    `json:"correo"`
	Phone             string    `json:"telefono"`
	Address           string    `json:"direccion"`
	Region            string    `json:"departamento"`
	Locality          string    `json:"municipio"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
	AccountingID      *string   `json:"alegraId,omitempty"`
	ESignSubmissionID *string   `json:"docusealSubmissionId,omitempty"`
	SubscriberID      *string   `json:"microwispId,omitempty"`
}

// FullName joins given and family name.
func (c *ClientRecord) FullName() string {
	switch {
	case c.FamilyName == "":
		return c.GivenName
	case c.GivenName == "":
		return c.FamilyName
	}
	return c.GivenName + " " + c.FamilyName
}

// ExternalID returns the id stored for system, or "".
func (c *ClientRecord) ExternalID(system integrations.System) string {
	var p *string
	switch system {
	case integrations.SystemAccounting:
		p = c.AccountingID
	case integrations.SystemESign:
		p = c.ESignSubmissionID
	case integrations.SystemSubscriber:
		p = c.SubscriberID
	}
	if p == nil {
		return ""
	}
	return *p
}

// SetExternalID stores id for system unless one is already set. It reports
// whether the record changed.
func (c *ClientRecord) SetExternalID(system integrations.System, id string) bool {
	if id == "" || c.ExternalID(system) != "" {
		return false
	}
	v := id
	switch system {
	case integrations.SystemAccounting:
		c.AccountingID = &v
	case integrations.SystemESign:
		c.ESignSubmissionID = &v
	case integrations.SystemSubscriber:
		c.SubscriberID = &v
	default:
		return false
	}
	return true
}

// Clone returns a deep copy so callers never share external id pointers.
func (c *ClientRecord) Clone() *ClientRecord {
	out := *c
	out.AccountingID = cloneString(c.AccountingID)
	out.ESignSubmissionID = cloneString(c.ESignSubmissionID)
	out.SubscriberID = cloneString(c.SubscriberID)
	return &out
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
