package models

import (
	"time"

	"github.com/google/uuid"
)

type FindingStatus string

const (
	FindingStatusOpen       FindingStatus = "open"
	FindingStatusInProgress FindingStatus = "in_progress"
	FindingStatusResolved   FindingStatus = "resolved"
	FindingStatusClosed     FindingStatus = "closed"
)

// Finding is a remediation task tied to exactly one risk.
type Finding struct {
	Model
	Title       string        `json:"title" gorm:"type:text;not null"`
	Description string        `json:"description" gorm:"type:text"`
	Status      FindingStatus `json:"status" gorm:"type:text;default:'open';not null"`
	Owner       string        `json:"owner" gorm:"type:text"`
	DueDate     *time.Time    `json:"dueDate" gorm:"type:date"`

	RiskID uuid.UUID `json:"riskId" gorm:"type:uuid;not null"`
	Risk   Risk      `json:"-" gorm:"foreignKey:RiskID;constraint:OnDelete:CASCADE;"`
}

func (m Finding) TableName() string {
	return "findings"
}
