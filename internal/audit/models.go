package audit

import "time"

// Action names an audited change.
type Action string

const (
	ActionClientCreated  Action = "client_created"
	ActionClientUpdated  Action = "client_updated"
	ActionClientDeleted  Action = "client_deleted"
	ActionUserUpdated    Action = "user_updated"
	ActionLoginSucceeded Action = "login_succeeded"
	ActionLoginFailed    Action = "login_failed"
)

// Event is emitted from domain logic to capture key actions. It carries no
// transport details so any sink can serialize it.
type Event struct {
	Action     Action            `json:"action"`
	Timestamp  time.Time         `json:"timestamp"`
	Subject    string            `json:"subject"`
	ActorID    string            `json:"actor_id,omitempty"`
	ActorEmail string            `json:"actor_email,omitempty"`
	RequestID  string            `json:"request_id,omitempty"`
	Details    map[string]string `json:"details,omitempty"`
}
