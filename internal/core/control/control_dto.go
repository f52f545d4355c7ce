package control

import (
	"github.com/google/uuid"
	"github.com/riskstack/riskstack/internal/database/models"
)

type createRequest struct {
	ReferenceID string `json:"referenceId" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`

	FrameworkIDs        []uuid.UUID `json:"frameworkIds"`
	FrameworkControlIDs []uuid.UUID `json:"frameworkControlIds"`
	VulnerabilityIDs    []uuid.UUID `json:"vulnerabilityIds"`
}

func (r *createRequest) toModel() models.Control {
	return models.Control{
		ReferenceID: r.ReferenceID,
		Name:        r.Name,
		Description: r.Description,
	}
}

type patchRequest struct {
	ReferenceID *string `json:"referenceId"`
	Name        *string `json:"name"`
	Description *string `json:"description"`

	// nil leaves the relation untouched, an empty list clears it
	FrameworkIDs        []uuid.UUID `json:"frameworkIds"`
	FrameworkControlIDs []uuid.UUID `json:"frameworkControlIds"`
	VulnerabilityIDs    []uuid.UUID `json:"vulnerabilityIds"`
}

func (r *patchRequest) applyToModel(control *models.Control) bool {
	updated := false
	if r.ReferenceID != nil {
		control.ReferenceID = *r.ReferenceID
		updated = true
	}
	if r.Name != nil {
		control.Name = *r.Name
		updated = true
	}
	if r.Description != nil {
		control.Description = *r.Description
		updated = true
	}
	return updated
}
