package subscriber

import (
	"strings"

	"backoffice/internal/integrations"
)

// NewSubscriber is the provisioning payload. Token is set by the client.
type NewSubscriber struct {
	Token          string `json:"token"`
	Name           string `json:"nombre"`
	NationalID     string `json:"cedula"`
	Email          string `json:"correo"`
	Landline       string `json:"telefono"`
	Mobile         string `json:"movil"`
	PrimaryAddress string `json:"direccion_principal"`
}

// NewSubscriberFor maps a client onto the provisioning payload. No landline
// is tracked, so it is always empty.
func NewSubscriberFor(givenName, familyName, nationalID, email, mobile, address string) NewSubscriber {
	return NewSubscriber{
		Name:           strings.TrimSpace(givenName + " " + familyName),
		NationalID:     nationalID,
		Email:          email,
		Mobile:         mobile,
		PrimaryAddress: address,
	}
}

// response is the envelope every endpoint answers with.
type response struct {
	State    string                  `json:"estado"`
	Message  string                  `json:"mensaje"`
	ClientID integrations.ExternalID `json:"idcliente"`
}

func (r response) failed() bool {
	return strings.EqualFold(r.State, "error")
}
