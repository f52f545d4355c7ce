package models

import "time"

type VulnerabilityStatus string

const (
	VulnerabilityStatusOpen       VulnerabilityStatus = "open"
	VulnerabilityStatusInReview   VulnerabilityStatus = "in_review"
	VulnerabilityStatusMitigating VulnerabilityStatus = "mitigating"
	VulnerabilityStatusAccepted   VulnerabilityStatus = "accepted"
	VulnerabilityStatusClosed     VulnerabilityStatus = "closed"
)

type VulnerabilitySeverity string

const (
	VulnerabilitySeverityCritical      VulnerabilitySeverity = "critical"
	VulnerabilitySeverityHigh          VulnerabilitySeverity = "high"
	VulnerabilitySeverityMedium        VulnerabilitySeverity = "medium"
	VulnerabilitySeverityLow           VulnerabilitySeverity = "low"
	VulnerabilitySeverityInformational VulnerabilitySeverity = "informational"
)

type Vulnerability struct {
	Model
	ReferenceID string `json:"referenceId" gorm:"type:text;uniqueIndex;not null"`
	Title       string `json:"title" gorm:"type:text;not null"`
	Description string `json:"description" gorm:"type:text"`

	Status   VulnerabilityStatus   `json:"status" gorm:"type:text;default:'open';not null"`
	Severity VulnerabilitySeverity `json:"severity" gorm:"type:text;default:'medium';not null"`

	CVEID         string     `json:"cveId" gorm:"type:text"`
	CVSSScore     *float64   `json:"cvssScore" gorm:"type:numeric(3,1)"`
	CVSSVector    string     `json:"cvssVector" gorm:"type:text"`
	PublishedDate *time.Time `json:"publishedDate" gorm:"type:date"`

	Risks    []Risk    `json:"-" gorm:"many2many:risk_vulnerabilities;"`
	Controls []Control `json:"-" gorm:"many2many:control_vulnerabilities;"`
}

func (m Vulnerability) TableName() string {
	return "vulnerabilities"
}
