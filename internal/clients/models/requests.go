package models

import (
	"regexp"
	"strings"

	dErrors "backoffice/pkg/domain-errors"
)

var (
	nationalIDPattern = regexp.MustCompile(`^[0-9]{6,15}$`)
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Colombian mobile numbers: ten digits starting with 3.
	phonePattern = regexp.MustCompile(`^3[0-9]{9}$`)
)

// ClientFields is the editable part of a client, named as the form sends it.
type ClientFields struct {
	GivenName  string `json:"nombre"`
	FamilyName string `json:"apellido"`
	NationalID string `json:"cedula"`
	Email      string `json:"correo"`
	Phone      string `json:"telefono"`
	Address    string `json:"direccion"`
	Region     string `json:"departamento"`
	Locality   string `json:"municipio"`
}

func (f *ClientFields) Normalize() {
	f.GivenName = strings.TrimSpace(f.GivenName)
	f.FamilyName = strings.TrimSpace(f.FamilyName)
	f.NationalID = strings.TrimSpace(f.NationalID)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Address = strings.TrimSpace(f.Address)
	f.Region = strings.TrimSpace(f.Region)
	f.Locality = strings.TrimSpace(f.Locality)
}

// Validate checks every rule and reports all failing fields at once, keyed by
// the form field name.
func (f *ClientFields) Validate() error {
	fields := map[string]string{}
	if f.GivenName == "" {
		fields["nombre"] = "Nombre obligatorio"
	}
	if f.FamilyName == "" {
		fields["apellido"] = "Apellido obligatorio"
	}
	switch {
	case f.NationalID == "":
		fields["cedula"] = "Cédula obligatoria"
	case !nationalIDPattern.MatchString(f.NationalID):
		fields["cedula"] = "La cédula debe contener solo números (entre 6 y 15 dígitos)."
	}
	switch {
	case f.Email == "":
		fields["correo"] = "Correo obligatorio"
	case !emailPattern.MatchString(f.Email):
		fields["correo"] = "Ingresa un correo válido (ej: usuario@dominio.com)."
	}
	switch {
	case f.Phone == "":
		fields["telefono"] = "Teléfono obligatorio"
	case !phonePattern.MatchString(f.Phone):
		fields["telefono"] = "Teléfono inválido. Debe ser celular colombiano (10 dígitos y empezar por 3)."
	}
	if f.Address == "" {
		fields["direccion"] = "Dirección obligatoria"
	}
	if len(fields) > 0 {
		return dErrors.WithFields(dErrors.CodeValidation, "client form is invalid", fields)
	}
	return nil
}

// Toggles switch individual integrations off for one onboarding attempt.
// A nil entry means enabled.
type Toggles struct {
	Accounting *bool `json:"accounting,omitempty"`
	ESign      *bool `json:"esign,omitempty"`
	Subscriber *bool `json:"subscriber,omitempty"`
}

// CreateClientRequest is the onboarding form.
type CreateClientRequest struct {
	ClientFields
	Integrations Toggles `json:"integrations"`
}

// UpdateClientRequest edits a client's fields.
type UpdateClientRequest struct {
	ClientFields
}
