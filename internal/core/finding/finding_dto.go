package finding

import (
	"time"

	"github.com/google/uuid"
	"github.com/riskstack/riskstack/internal/database/models"
)

type createRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status" validate:"omitempty,oneof=open in_progress resolved closed"`
	Owner       string     `json:"owner"`
	DueDate     *time.Time `json:"dueDate"`
	RiskID      uuid.UUID  `json:"riskId" validate:"required"`
}

func (r *createRequest) toModel() models.Finding {
	status := models.FindingStatus(r.Status)
	if status == "" {
		status = models.FindingStatusOpen
	}

	return models.Finding{
		Title:       r.Title,
		Description: r.Description,
		Status:      status,
		Owner:       r.Owner,
		DueDate:     r.DueDate,
		RiskID:      r.RiskID,
	}
}

type patchRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status" validate:"omitempty,oneof=open in_progress resolved closed"`
	Owner       *string    `json:"owner"`
	DueDate     *time.Time `json:"dueDate"`
	RiskID      *uuid.UUID `json:"riskId"`
}

func (r *patchRequest) applyToModel(finding *models.Finding) bool {
	updated := false
	if r.Title != nil {
		finding.Title = *r.Title
		updated = true
	}
	if r.Description != nil {
		finding.Description = *r.Description
		updated = true
	}
	if r.Status != nil {
		finding.Status = models.FindingStatus(*r.Status)
		updated = true
	}
	if r.Owner != nil {
		finding.Owner = *r.Owner
		updated = true
	}
	if r.DueDate != nil {
		finding.DueDate = r.DueDate
		updated = true
	}
	if r.RiskID != nil {
		finding.RiskID = *r.RiskID
		updated = true
	}
	return updated
}
