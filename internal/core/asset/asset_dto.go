package asset

import (
	"github.com/google/uuid"
	"github.com/riskstack/riskstack/internal/database/models"
)

type createRequest struct {
	Name          string     `json:"name" validate:"required"`
	AssetType     string     `json:"assetType" validate:"omitempty,oneof=application infrastructure vendor process data"`
	Description   string     `json:"description"`
	BusinessOwner string     `json:"businessOwner"`
	Criticality   string     `json:"criticality"`
	ProjectID     *uuid.UUID `json:"projectId"`
}

func (r *createRequest) toModel() models.Asset {
	assetType := models.AssetType(r.AssetType)
	if assetType == "" {
		assetType = models.AssetTypeApplication
	}

	return models.Asset{
		Name:          r.Name,
		AssetType:     assetType,
		Description:   r.Description,
		BusinessOwner: r.BusinessOwner,
		Criticality:   r.Criticality,
		ProjectID:     r.ProjectID,
	}
}

type patchRequest struct {
	Name          *string    `json:"name"`
	AssetType     *string    `json:"assetType" validate:"omitempty,oneof=application infrastructure vendor process data"`
	Description   *string    `json:"description"`
	BusinessOwner *string    `json:"businessOwner"`
	Criticality   *string    `json:"criticality"`
	ProjectID     *uuid.UUID `json:"projectId"`
	ClearProject  bool       `json:"clearProject"`
}

func (r *patchRequest) applyToModel(asset *models.Asset) bool {
	updated := false
	if r.Name != nil {
		asset.Name = *r.Name
		updated = true
	}
	if r.AssetType != nil {
		asset.AssetType = models.AssetType(*r.AssetType)
		updated = true
	}
	if r.Description != nil {
		asset.Description = *r.Description
		updated = true
	}
	if r.BusinessOwner != nil {
		asset.BusinessOwner = *r.BusinessOwner
		updated = true
	}
	if r.Criticality != nil {
		asset.Criticality = *r.Criticality
		updated = true
	}
	if r.ProjectID != nil {
		asset.ProjectID = r.ProjectID
		asset.Project = nil
		updated = true
	} else if r.ClearProject {
		asset.ProjectID = nil
		asset.Project = nil
		updated = true
	}
	return updated
}
