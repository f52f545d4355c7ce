package models

import "time"

type ProjectStatus string

const (
	ProjectStatusPlanning ProjectStatus = "planning"
	ProjectStatusActive   ProjectStatus = "active"
	ProjectStatusPaused   ProjectStatus = "paused"
	ProjectStatusClosed   ProjectStatus = "closed"
)

type Project struct {
	Model
	Name        string        `json:"name" gorm:"type:text;uniqueIndex;not null"`
	Description string        `json:"description" gorm:"type:text"`
	Owner       string        `json:"owner" gorm:"type:text"`
	Status      ProjectStatus `json:"status" gorm:"type:text;default:'planning';not null"`

	StartDate     *time.Time `json:"startDate" gorm:"type:date"`
	TargetEndDate *time.Time `json:"targetEndDate" gorm:"type:date"`

	// deleting a project orphans its assets and risks, it never deletes them
	Assets []Asset `json:"assets,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL;"`
	Risks  []Risk  `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL;"`
}

func (m Project) TableName() string {
	return "projects"
}
