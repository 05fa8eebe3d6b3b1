package esign

import (
	"strings"

	"backoffice/internal/integrations"
)

// OperatorName labels the internal signer on every submission.
const OperatorName = "KIVU"

// SearchResult is the reduced answer of a submissions search.
type SearchResult struct {
	Exists      bool
	Count       int
	Submissions []Submission
}

// Submission is the part of a submission the back office reads.
type Submission struct {
	ID         integrations.ExternalID `json:"id"`
	ExternalID string                  `json:"external_id,omitempty"`
	Status     string                  `json:"status,omitempty"`
}

// NewSubmission is the create payload. TemplateID and SendEmail are set by the client.
type NewSubmission struct {
	TemplateID int         `json:"template_id"`
	SendEmail  bool        `json:"send_email"`
	ExternalID string      `json:"external_id"`
	Submitters []Submitter `json:"submitters"`
}

type Submitter struct {
	Name     string            `json:"name"`
	Email    string            `json:"email"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Signer is the client side of a submission.
type Signer struct {
	ClientID   string
	FullName   string
	Email      string
	Phone      string
	Address    string
	Region     string
	Locality   string
	NationalID string
}

// NewSubmissionFor correlates the submission with the client id and adds the
// operator as second signer when an operator email is known.
func NewSubmissionFor(s Signer, operatorEmail string) NewSubmission {
	name := strings.Join(strings.Fields(s.FullName), " ")
	if name == "" {
		name = s.Email
	}
	submitters := []Submitter{{
		Name:  name,
		Email: s.Email,
		Metadata: map[string]string{
			"client_id":    s.ClientID,
			"telefono":     s.Phone,
			"direccion":    s.Address,
			"departamento": s.Region,
			"municipio":    s.Locality,
			"cedula":       s.NationalID,
		},
	}}
	if operatorEmail = strings.TrimSpace(operatorEmail); operatorEmail != "" {
		submitters = append(submitters, Submitter{Name: OperatorName, Email: operatorEmail})
	}
	return NewSubmission{
		ExternalID: s.ClientID,
		Submitters: submitters,
	}
}
