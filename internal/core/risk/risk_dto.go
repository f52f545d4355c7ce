package risk

import (
	"time"

	"github.com/google/uuid"
	"github.com/riskstack/riskstack/internal/database/models"
	"github.com/riskstack/riskstack/internal/database/repositories"
)

type createRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"omitempty,oneof=identified analyzing mitigating accepted closed"`
	Owner       string `json:"owner"`

	Likelihood *int `json:"likelihood" validate:"omitempty,gte=1,lte=5"`
	Impact     *int `json:"impact" validate:"omitempty,gte=1,lte=5"`

	MitigationPlan       string     `json:"mitigationPlan"`
	TargetResolutionDate *time.Time `json:"targetResolutionDate"`

	ProjectID *uuid.UUID `json:"projectId"`

	AssetIDs         []uuid.UUID `json:"assetIds"`
	ControlIDs       []uuid.UUID `json:"controlIds"`
	FrameworkIDs     []uuid.UUID `json:"frameworkIds"`
	VulnerabilityIDs []uuid.UUID `json:"vulnerabilityIds"`
}

func (r *createRequest) toModel() models.Risk {
	status := models.RiskStatus(r.Status)
	if status == "" {
		status = models.RiskStatusIdentified
	}

	likelihood := 3
	if r.Likelihood != nil {
		likelihood = *r.Likelihood
	}
	impact := 3
	if r.Impact != nil {
		impact = *r.Impact
	}

	return models.Risk{
		Title:                r.Title,
		Description:          r.Description,
		Status:               status,
		Owner:                r.Owner,
		Likelihood:           likelihood,
		Impact:               impact,
		MitigationPlan:       r.MitigationPlan,
		TargetResolutionDate: r.TargetResolutionDate,
		ProjectID:            r.ProjectID,
	}
}

type patchRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=identified analyzing mitigating accepted closed"`
	Owner       *string `json:"owner"`

	Likelihood *int `json:"likelihood" validate:"omitempty,gte=1,lte=5"`
	Impact     *int `json:"impact" validate:"omitempty,gte=1,lte=5"`

	MitigationPlan       *string    `json:"mitigationPlan"`
	TargetResolutionDate *time.Time `json:"targetResolutionDate"`

	ProjectID    *uuid.UUID `json:"projectId"`
	ClearProject bool       `json:"clearProject"`

	AssetIDs         []uuid.UUID `json:"assetIds"`
	ControlIDs       []uuid.UUID `json:"controlIds"`
	FrameworkIDs     []uuid.UUID `json:"frameworkIds"`
	VulnerabilityIDs []uuid.UUID `json:"vulnerabilityIds"`
}

func (r *patchRequest) applyToModel(risk *models.Risk) bool {
	updated := false
	if r.Title != nil {
		risk.Title = *r.Title
		updated = true
	}
	if r.Description != nil {
		risk.Description = *r.Description
		updated = true
	}
	if r.Status != nil {
		risk.Status = models.RiskStatus(*r.Status)
		updated = true
	}
	if r.Owner != nil {
		risk.Owner = *r.Owner
		updated = true
	}
	if r.Likelihood != nil {
		risk.Likelihood = *r.Likelihood
		updated = true
	}
	if r.Impact != nil {
		risk.Impact = *r.Impact
		updated = true
	}
	if r.MitigationPlan != nil {
		risk.MitigationPlan = *r.MitigationPlan
		updated = true
	}
	if r.TargetResolutionDate != nil {
		risk.TargetResolutionDate = r.TargetResolutionDate
		updated = true
	}
	if r.ProjectID != nil {
		risk.ProjectID = r.ProjectID
		risk.Project = nil
		updated = true
	} else if r.ClearProject {
		risk.ProjectID = nil
		risk.Project = nil
		updated = true
	}
	return updated
}

// riskDTO embeds the entity and adds the derived fields. Score and
// severity label are computed at serialization time, never read from
// storage.
type riskDTO struct {
	models.Risk
	Score         int    `json:"score"`
	SeverityLabel string `json:"severityLabel"`
}

func toDTO(risk models.Risk) riskDTO {
	score := Score(risk.Likelihood, risk.Impact)
	return riskDTO{
		Risk:          risk,
		Score:         score,
		SeverityLabel: SeverityLabel(score),
	}
}

func toDTOs(risks []models.Risk) []riskDTO {
	dtos := make([]riskDTO, 0, len(risks))
	for _, risk := range risks {
		dtos = append(dtos, toDTO(risk))
	}
	return dtos
}

type summaryDTO struct {
	TotalRisks int64                      `json:"totalRisks"`
	ByStatus   []repositories.StatusCount `json:"byStatus"`
	BySeverity map[string]int             `json:"bySeverity"`
}
