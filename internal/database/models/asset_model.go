package models

import "github.com/google/uuid"

type AssetType string

const (
	AssetTypeApplication    AssetType = "application"
	AssetTypeInfrastructure AssetType = "infrastructure"
	AssetTypeVendor         AssetType = "vendor"
	AssetTypeProcess        AssetType = "process"
	AssetTypeData           AssetType = "data"
)

// Asset is anything worth protecting. The name is only unique within the
// owning project - two projects may both have a "Customer Portal".
type Asset struct {
	Model
	Name          string    `json:"name" gorm:"type:text;not null;uniqueIndex:idx_asset_name_project"`
	AssetType     AssetType `json:"assetType" gorm:"type:text;default:'application';not null"`
	Description   string    `json:"description" gorm:"type:text"`
	BusinessOwner string    `json:"businessOwner" gorm:"type:text"`
	Criticality   string    `json:"criticality" gorm:"type:text"`

	ProjectID *uuid.UUID `json:"projectId" gorm:"type:uuid;uniqueIndex:idx_asset_name_project"`
	Project   *Project   `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL;"`

	Risks []Risk `json:"-" gorm:"many2many:risk_assets;"`
}

func (m Asset) TableName() string {
	return "assets"
}
