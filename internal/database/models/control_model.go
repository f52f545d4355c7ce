package models

// Control is an internal control record, optionally mapped to one or more
// frameworks and to the fine-grained catalog entries of those frameworks.
type Control struct {
	Model
	ReferenceID string `json:"referenceId" gorm:"type:text;uniqueIndex;not null"`
	Name        string `json:"name" gorm:"type:text;not null"`
	Description string `json:"description" gorm:"type:text"`

	Frameworks        []Framework        `json:"frameworks,omitempty" gorm:"many2many:control_frameworks;"`
	FrameworkControls []FrameworkControl `json:"frameworkControls,omitempty" gorm:"many2many:control_framework_controls;constraint:OnDelete:CASCADE;"`
	Vulnerabilities   []Vulnerability    `json:"vulnerabilities,omitempty" gorm:"many2many:control_vulnerabilities;"`
	Risks             []Risk             `json:"-" gorm:"many2many:risk_controls;"`
}

func (m Control) TableName() string {
	return "controls"
}
