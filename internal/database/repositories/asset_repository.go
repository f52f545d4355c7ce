package repositories

import (
	"github.com/google/uuid"
	"github.com/riskstack/riskstack/internal/database"
	"github.com/riskstack/riskstack/internal/database/models"
	"github.com/riskstack/riskstack/internal/shared"
)

type AssetFilter struct {
	AssetType string
	ProjectID *uuid.UUID
}

type assetRepository struct {
	db shared.DB
	*database.GormRepository[uuid.UUID, models.Asset]
}

func NewAssetRepository(db shared.DB) *assetRepository {
	if err := db.AutoMigrate(&models.Asset{}); err != nil {
		panic(err)
	}
	return &assetRepository{
		db:             db,
		GormRepository: database.NewGormRepository[uuid.UUID, models.Asset](db),
	}
}

func (g *assetRepository) ReadWithProject(id uuid.UUID) (models.Asset, error) {
	var t models.Asset
	err := g.db.Preload("Project").First(&t, "id = ?", id).Error
	return t, err
}

func (g *assetRepository) GetByProjectID(projectID uuid.UUID) ([]models.Asset, error) {
	var ts []models.Asset
	err := g.db.Where("project_id = ?", projectID).Order("name").Find(&ts).Error
	return ts, err
}

func (g *assetRepository) ListFiltered(filter AssetFilter) ([]models.Asset, error) {
	q := g.db.Model(&models.Asset{}).Preload("Project")

	if filter.AssetType != "" {
		q = q.Where("asset_type = ?", filter.AssetType)
	}
	if filter.ProjectID != nil {
		q = q.Where("project_id = ?", *filter.ProjectID)
	}

	var ts []models.Asset
	err := q.Order("name").Find(&ts).Error
	return ts, err
}
