package models

import "backoffice/internal/integrations"

// SyncOutcome is how one system fared during propagation.
type SyncOutcome struct {
	System     integrations.System     `json:"system"`
	Status     integrations.SyncStatus `json:"status"`
	ExternalID string                  `json:"externalId,omitempty"`
	// Reason is the error kind for failures and why a system was skipped.
	Reason string `json:"reason,omitempty"`
	Err    error  `json:"-"`
}

// SyncReport collects one outcome per system.
type SyncReport []SyncOutcome

// Statuses flattens the report into {system: status}.
func (r SyncReport) Statuses() map[integrations.System]integrations.SyncStatus {
	out := make(map[integrations.System]integrations.SyncStatus, len(r))
	for _, o := range r {
		out[o.System] = o.Status
	}
	return out
}

// Outcome returns the entry for system.
func (r SyncReport) Outcome(system integrations.System) (SyncOutcome, bool) {
	for _, o := range r {
		if o.System == system {
			return o, true
		}
	}
	return SyncOutcome{}, false
}

// Warning is advisory information returned with a successful onboarding.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OnboardResult is what the caller gets once the record exists locally.
type OnboardResult struct {
	Client   *ClientRecord
	Sync     SyncReport
	Warnings []Warning
}
