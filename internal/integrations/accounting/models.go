package accounting

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"backoffice/internal/integrations"
)

var (
	errMissingID = errors.New("response carries no contact id")
	errNotJSON   = errors.New("response is not JSON")
)

// Contact is the subset of an accounting contact the back office reads.
type Contact struct {
	ID                   integrations.ExternalID `json:"id"`
	Name                 string                  `json:"name,omitempty"`
	Identification       string                  `json:"identification,omitempty"`
	IdentificationObject *Identification         `json:"identificationObject,omitempty"`
	Email                string                  `json:"email,omitempty"`
	PhonePrimary         Phone                   `json:"phonePrimary,omitempty"`
	Address              *Address                `json:"address,omitempty"`
	CreationDate         string                  `json:"creationDate,omitempty"`
}

// MatchesNationalID compares against both places the API stores the document number.
func (c Contact) MatchesNationalID(id string) bool {
	if id == "" {
		return false
	}
	if c.Identification == id {
		return true
	}
	return c.IdentificationObject != nil && c.IdentificationObject.Number == id
}

// MatchesEmail is a case-insensitive exact comparison.
func (c Contact) MatchesEmail(email string) bool {
	return email != "" && c.Email != "" && strings.EqualFold(c.Email, email)
}

type Identification struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

type Address struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	Department string `json:"department"`
}

// Phone is sent either as a plain string or as {"phone": "..."}.
type Phone string

func (p *Phone) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = Phone(s)
		return nil
	}
	var obj struct {
		Phone string `json:"phone"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decode phone: %w", err)
	}
	*p = Phone(obj.Phone)
	return nil
}

// NameParts is the structured person name the API expects.
type NameParts struct {
	FirstName      string `json:"firstName"`
	SecondName     string `json:"secondName"`
	LastName       string `json:"lastName"`
	SecondLastName string `json:"secondLastName"`
}

// NewContact is the create payload.
type NewContact struct {
	Name                 string         `json:"name"`
	Type                 string         `json:"type"`
	Status               string         `json:"status"`
	KindOfPerson         string         `json:"kindOfPerson"`
	Identification       string         `json:"identification"`
	IdentificationObject Identification `json:"identificationObject"`
	NameObject           NameParts      `json:"nameObject"`
	Email                string         `json:"email,omitempty"`
	PhonePrimary         string         `json:"phonePrimary,omitempty"`
	Address              Address        `json:"address"`
	Observations         string         `json:"observations"`
}

// Person is what the back office knows about a client when mirroring it.
type Person struct {
	InternalID string
	GivenName  string
	FamilyName string
	NationalID string
	Email      string
	Phone      string
	Address    string
	Region     string
	Locality   string
}

// NewContactFor builds the create payload for p: upper-cased names, the
// national-id document type and the local address mapped onto the API fields.
func NewContactFor(p Person) NewContact {
	first, second := splitName(p.GivenName)
	last, secondLast := splitName(p.FamilyName)
	return NewContact{
		Name:           strings.ToUpper(strings.TrimSpace(p.GivenName + " " + p.FamilyName)),
		Type:           "client",
		Status:         "active",
		KindOfPerson:   "PERSON_ENTITY",
		Identification: p.NationalID,
		IdentificationObject: Identification{
			Type:   "CC",
			Number: p.NationalID,
		},
		NameObject: NameParts{
			FirstName:      first,
			SecondName:     second,
			LastName:       last,
			SecondLastName: secondLast,
		},
		Email:        p.Email,
		PhonePrimary: p.Phone,
		Address: Address{
			Address:    p.Address,
			City:       p.Locality,
			Department: p.Region,
		},
		Observations: fmt.Sprintf("Creado desde KIVU Backoffice (id interno: %s)", p.InternalID),
	}
}

// splitName upper-cases full and returns the first token and the rest.
func splitName(full string) (first, rest string) {
	parts := strings.Fields(strings.ToUpper(full))
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
