package models

import "github.com/google/uuid"

// FrameworkControl is one catalog entry (control or control enhancement)
// belonging to a framework, as imported from an external control catalog.
// The catalog identifier is only unique within its framework.
type FrameworkControl struct {
	Model
	FrameworkID uuid.UUID `json:"frameworkId" gorm:"type:uuid;not null;uniqueIndex:idx_framework_control_id"`
	Framework   Framework `json:"-" gorm:"foreignKey:FrameworkID;constraint:OnDelete:CASCADE;"`

	ControlID   string `json:"controlId" gorm:"type:text;not null;uniqueIndex:idx_framework_control_id"`
	Title       string `json:"title" gorm:"type:text"`
	ElementType string `json:"elementType" gorm:"type:text"`
}

func (m FrameworkControl) TableName() string {
	return "framework_controls"
}
