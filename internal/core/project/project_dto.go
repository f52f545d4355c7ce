package project

import (
	"time"

	"github.com/riskstack/riskstack/internal/database/models"
)

type createRequest struct {
	Name          string     `json:"name" validate:"required"`
	Description   string     `json:"description"`
	Owner         string     `json:"owner"`
	Status        string     `json:"status" validate:"omitempty,oneof=planning active paused closed"`
	StartDate     *time.Time `json:"startDate"`
	TargetEndDate *time.Time `json:"targetEndDate"`
}

func (r *createRequest) toModel() models.Project {
	status := models.ProjectStatus(r.Status)
	if status == "" {
		status = models.ProjectStatusPlanning
	}

	return models.Project{
		Name:          r.Name,
		Description:   r.Description,
		Owner:         r.Owner,
		Status:        status,
		StartDate:     r.StartDate,
		TargetEndDate: r.TargetEndDate,
	}
}

type patchRequest struct {
	Name          *string    `json:"name"`
	Description   *string    `json:"description"`
	Owner         *string    `json:"owner"`
	Status        *string    `json:"status" validate:"omitempty,oneof=planning active paused closed"`
	StartDate     *time.Time `json:"startDate"`
	TargetEndDate *time.Time `json:"targetEndDate"`
}

func (r *patchRequest) applyToModel(project *models.Project) bool {
	updated := false
	if r.Name != nil {
		project.Name = *r.Name
		updated = true
	}
	if r.Description != nil {
		project.Description = *r.Description
		updated = true
	}
	if r.Owner != nil {
		project.Owner = *r.Owner
		updated = true
	}
	if r.Status != nil {
		project.Status = models.ProjectStatus(*r.Status)
		updated = true
	}
	if r.StartDate != nil {
		project.StartDate = r.StartDate
		updated = true
	}
	if r.TargetEndDate != nil {
		project.TargetEndDate = r.TargetEndDate
		updated = true
	}
	return updated
}
