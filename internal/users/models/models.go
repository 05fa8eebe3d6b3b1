package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "backoffice/pkg/domain-errors"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleOperator Role = "OPERATOR"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleOperator
}

// UserAccount is a staff member allowed into the back office.
type UserAccount struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Active       bool      `json:"isActive"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u *UserAccount) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Change is a partial update of role and/or active flag.
type Change struct {
	Role   *Role `json:"role,omitempty"`
	Active *bool `json:"isActive,omitempty"`
}

func (c *Change) Normalize() {
	if c.Role != nil {
		r := Role(strings.ToUpper(strings.TrimSpace(string(*c.Role))))
		c.Role = &r
	}
}

func (c *Change) Validate() error {
	if c.Role != nil && !c.Role.Valid() {
		return dErrors.WithFields(dErrors.CodeValidation, "invalid role",
			map[string]string{"role": "El rol debe ser ADMIN u OPERATOR."})
	}
	return nil
}

// Apply writes the change onto u.
func (c Change) Apply(u *UserAccount) {
	if c.Role != nil {
		u.Role = *c.Role
	}
	if c.Active != nil {
		u.Active = *c.Active
	}
}

// CanModify rejects changes an actor may not make to target. An admin can
// neither demote nor deactivate their own account, so the back office never
// locks itself out.
func CanModify(actorID uuid.UUID, target *UserAccount, change Change) error {
	if actorID != target.ID {
		return nil
	}
	if change.Role != nil && *change.Role != RoleAdmin {
		return dErrors.New(dErrors.CodeBadRequest, "you cannot change your own role away from ADMIN")
	}
	if change.Active != nil && !*change.Active {
		return dErrors.New(dErrors.CodeBadRequest, "you cannot deactivate your own account")
	}
	return nil
}
