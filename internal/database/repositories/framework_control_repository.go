package repositories

import (
	"github.com/google/uuid"
	"github.com/riskstack/riskstack/internal/database"
	"github.com/riskstack/riskstack/internal/database/models"
	"github.com/riskstack/riskstack/internal/shared"
)

// FrameworkControlFilter narrows the framework-control listing. Framework
// accepts either the framework code (matched case-insensitively) or its id.
type FrameworkControlFilter struct {
	Framework   string
	ElementType string
}

type frameworkControlRepository struct {
	db shared.DB
	*database.GormRepository[uuid.UUID, models.FrameworkControl]
}

func NewFrameworkControlRepository(db shared.DB) *frameworkControlRepository {
	if err := db.AutoMigrate(&models.FrameworkControl{}); err != nil {
		panic(err)
	}
	return &frameworkControlRepository{
		db:             db,
		GormRepository: database.NewGormRepository[uuid.UUID, models.FrameworkControl](db),
	}
}

func (g *frameworkControlRepository) FindByFrameworkAndControlID(tx shared.DB, frameworkID uuid.UUID, controlID string) (models.FrameworkControl, error) {
	var t models.FrameworkControl
	err := g.GetDB(tx).Where("framework_id = ? AND control_id = ?", frameworkID, controlID).First(&t).Error
	return t, err
}

func (g *frameworkControlRepository) ReadWithFramework(id uuid.UUID) (models.FrameworkControl, error) {
	var t models.FrameworkControl
	err := g.db.Preload("Framework").First(&t, "id = ?", id).Error
	return t, err
}

func (g *frameworkControlRepository) CountByFrameworkID(frameworkID uuid.UUID) (int64, error) {
	var count int64
	err := g.db.Model(&models.FrameworkControl{}).Where("framework_id = ?", frameworkID).Count(&count).Error
	return count, err
}

func (g *frameworkControlRepository) ListFiltered(filter FrameworkControlFilter) ([]models.FrameworkControl, error) {
	q := g.db.Model(&models.FrameworkControl{}).Preload("Framework")

	if filter.Framework != "" {
		if id, err := uuid.Parse(filter.Framework); err == nil {
			q = q.Where("framework_id = ?", id)
		} else {
			q = q.Joins("JOIN frameworks ON frameworks.id = framework_controls.framework_id").
				Where("LOWER(frameworks.code) = LOWER(?)", filter.Framework)
		}
	}
	if filter.ElementType != "" {
		q = q.Where("element_type = ?", filter.ElementType)
	}

	var ts []models.FrameworkControl
	err := q.Order("control_id").Find(&ts).Error
	return ts, err
}
