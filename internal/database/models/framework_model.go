package models

// Framework is a named compliance or security standard, e.g. NIST-CSF.
type Framework struct {
	Model
	Code        string `json:"code" gorm:"type:text;uniqueIndex;not null"`
	Name        string `json:"name" gorm:"type:text;not null"`
	Description string `json:"description" gorm:"type:text"`

	// catalog entries imported from an external export. They live and die
	// with the framework.
	FrameworkControls []FrameworkControl `json:"frameworkControls,omitempty" gorm:"foreignKey:FrameworkID;constraint:OnDelete:CASCADE;"`

	Controls []Control `json:"controls,omitempty" gorm:"many2many:control_frameworks;"`
	Risks    []Risk    `json:"-" gorm:"many2many:risk_frameworks;"`
}

func (m Framework) TableName() string {
	return "frameworks"
}
