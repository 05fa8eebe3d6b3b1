package handler

import (
	"backoffice/internal/clients/models"
	"backoffice/internal/integrations"
)

// CreateResponse separates the local result from each system's outcome so
// the form never claims a system accepted a client it did not.
type CreateResponse struct {
	OK       bool                                            `json:"ok"`
	Client   *models.ClientRecord                            `json:"client"`
	Sync     map[integrations.System]integrations.SyncStatus `json:"sync"`
	Details  []SyncDetail                                    `json:"syncDetails"`
	Warnings []models.Warning                                `json:"warnings"`
}

// SyncDetail explains one system's outcome.
type SyncDetail struct {
	System     integrations.System     `json:"system"`
	Status     integrations.SyncStatus `json:"status"`
	ExternalID string                  `json:"externalId,omitempty"`
	Reason     string                  `json:"reason,omitempty"`
}

type ClientResponse struct {
	OK     bool                 `json:"ok"`
	Client *models.ClientRecord `json:"client"`
}

type ListResponse struct {
	Clients []*models.ClientRecord `json:"clients"`
}

type DeleteResponse struct {
	OK      bool                                            `json:"ok"`
	Cleanup map[integrations.System]integrations.SyncStatus `json:"cleanup"`
}

func toCreateResponse(res *models.OnboardResult) CreateResponse {
	details := make([]SyncDetail, 0, len(res.Sync))
	for _, o := range res.Sync {
		details = append(details, SyncDetail{
			System:     o.System,
			Status:     o.Status,
			ExternalID: o.ExternalID,
			Reason:     o.Reason,
		})
	}
	warnings := res.Warnings
	if warnings == nil {
		warnings = []models.Warning{}
	}
	return CreateResponse{
		OK:       true,
		Client:   res.Client,
		Sync:     res.Sync.Statuses(),
		Details:  details,
		Warnings: warnings,
	}
}
