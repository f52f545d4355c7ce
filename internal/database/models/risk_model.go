package models

import (
	"time"

	"github.com/google/uuid"
)

type RiskStatus string

const (
	RiskStatusIdentified RiskStatus = "identified"
	RiskStatusAnalyzing  RiskStatus = "analyzing"
	RiskStatusMitigating RiskStatus = "mitigating"
	RiskStatusAccepted   RiskStatus = "accepted"
	RiskStatusClosed     RiskStatus = "closed"
)

// Risk is a tracked risk item scored by likelihood times impact. The score
// and its severity label are derived on read and never stored, so edits to
// likelihood or impact are reflected immediately.
type Risk struct {
	Model
	Title       string     `json:"title" gorm:"type:text;not null"`
	Description string     `json:"description" gorm:"type:text"`
	Status      RiskStatus `json:"status" gorm:"type:text;default:'identified';not null"`
	Owner       string     `json:"owner" gorm:"type:text"`

	// both on a 1..5 scale, constrained at the request boundary
	Likelihood int `json:"likelihood" gorm:"default:3;not null"`
	Impact     int `json:"impact" gorm:"default:3;not null"`

	MitigationPlan       string     `json:"mitigationPlan" gorm:"type:text"`
	TargetResolutionDate *time.Time `json:"targetResolutionDate" gorm:"type:date"`

	ProjectID *uuid.UUID `json:"projectId" gorm:"type:uuid"`
	Project   *Project   `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL;"`

	Assets          []Asset         `json:"assets,omitempty" gorm:"many2many:risk_assets;"`
	Controls        []Control       `json:"controls,omitempty" gorm:"many2many:risk_controls;"`
	Frameworks      []Framework     `json:"frameworks,omitempty" gorm:"many2many:risk_frameworks;"`
	Vulnerabilities []Vulnerability `json:"vulnerabilities,omitempty" gorm:"many2many:risk_vulnerabilities;"`

	Findings []Finding `json:"findings,omitempty" gorm:"foreignKey:RiskID;constraint:OnDelete:CASCADE;"`
}

func (m Risk) TableName() string {
	return "risks"
}
