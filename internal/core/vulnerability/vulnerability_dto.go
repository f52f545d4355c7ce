package vulnerability

import (
	"time"

	"github.com/google/uuid"
	"github.com/riskstack/riskstack/internal/database/models"
)

type createRequest struct {
	ReferenceID string `json:"referenceId" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`

	Status   string `json:"status" validate:"omitempty,oneof=open in_review mitigating accepted closed"`
	Severity string `json:"severity" validate:"omitempty,oneof=critical high medium low informational"`

	CVEID         string     `json:"cveId"`
	CVSSScore     *float64   `json:"cvssScore" validate:"omitempty,gte=0,lte=10"`
	CVSSVector    string     `json:"cvssVector"`
	PublishedDate *time.Time `json:"publishedDate"`

	ControlIDs []uuid.UUID `json:"controlIds"`
	RiskIDs    []uuid.UUID `json:"riskIds"`
}

func (r *createRequest) toModel() models.Vulnerability {
	status := models.VulnerabilityStatus(r.Status)
	if status == "" {
		status = models.VulnerabilityStatusOpen
	}
	severity := models.VulnerabilitySeverity(r.Severity)
	if severity == "" {
		severity = models.VulnerabilitySeverityMedium
	}

	return models.Vulnerability{
		ReferenceID:   r.ReferenceID,
		Title:         r.Title,
		Description:   r.Description,
		Status:        status,
		Severity:      severity,
		CVEID:         r.CVEID,
		CVSSScore:     roundScore(r.CVSSScore),
		CVSSVector:    r.CVSSVector,
		PublishedDate: r.PublishedDate,
	}
}

type patchRequest struct {
	ReferenceID *string `json:"referenceId"`
	Title       *string `json:"title"`
	Description *string `json:"description"`

	Status   *string `json:"status" validate:"omitempty,oneof=open in_review mitigating accepted closed"`
	Severity *string `json:"severity" validate:"omitempty,oneof=critical high medium low informational"`

	CVEID         *string    `json:"cveId"`
	CVSSScore     *float64   `json:"cvssScore" validate:"omitempty,gte=0,lte=10"`
	CVSSVector    *string    `json:"cvssVector"`
	PublishedDate *time.Time `json:"publishedDate"`

	ControlIDs []uuid.UUID `json:"controlIds"`
	RiskIDs    []uuid.UUID `json:"riskIds"`
}

func (r *patchRequest) applyToModel(vulnerability *models.Vulnerability) bool {
	updated := false
	if r.ReferenceID != nil {
		vulnerability.ReferenceID = *r.ReferenceID
		updated = true
	}
	if r.Title != nil {
		vulnerability.Title = *r.Title
		updated = true
	}
	if r.Description != nil {
		vulnerability.Description = *r.Description
		updated = true
	}
	if r.Status != nil {
		vulnerability.Status = models.VulnerabilityStatus(*r.Status)
		updated = true
	}
	if r.Severity != nil {
		vulnerability.Severity = models.VulnerabilitySeverity(*r.Severity)
		updated = true
	}
	if r.CVEID != nil {
		vulnerability.CVEID = *r.CVEID
		updated = true
	}
	if r.CVSSScore != nil {
		vulnerability.CVSSScore = roundScore(r.CVSSScore)
		updated = true
	}
	if r.CVSSVector != nil {
		vulnerability.CVSSVector = *r.CVSSVector
		updated = true
	}
	if r.PublishedDate != nil {
		vulnerability.PublishedDate = r.PublishedDate
		updated = true
	}
	return updated
}

// roundScore keeps CVSS scores at one decimal place, matching the column.
func roundScore(score *float64) *float64 {
	if score == nil {
		return nil
	}
	rounded := float64(int(*score*10+0.5)) / 10
	return &rounded
}
