package framework

import "github.com/riskstack/riskstack/internal/database/models"

type createRequest struct {
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (r *createRequest) toModel() models.Framework {
	return models.Framework{
		Code:        r.Code,
		Name:        r.Name,
		Description: r.Description,
	}
}

type patchRequest struct {
	Code        *string `json:"code"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (r *patchRequest) applyToModel(framework *models.Framework) bool {
	updated := false
	if r.Code != nil {
		framework.Code = *r.Code
		updated = true
	}
	if r.Name != nil {
		framework.Name = *r.Name
		updated = true
	}
	if r.Description != nil {
		framework.Description = *r.Description
		updated = true
	}
	return updated
}
