package repositories

import (
	"github.com/google/uuid"
	"github.com/riskstack/riskstack/internal/database"
	"github.com/riskstack/riskstack/internal/database/models"
	"github.com/riskstack/riskstack/internal/shared"
)

type ControlFilter struct {
	Framework        string
	FrameworkControl *uuid.UUID
}

type controlRepository struct {
	db shared.DB
	*database.GormRepository[uuid.UUID, models.Control]
}

func NewControlRepository(db shared.DB) *controlRepository {
	if err := db.AutoMigrate(&models.Control{}); err != nil {
		panic(err)
	}
	return &controlRepository{
		db:             db,
		GormRepository: database.NewGormRepository[uuid.UUID, models.Control](db),
	}
}

func (g *controlRepository) ReadWithRelations(id uuid.UUID) (models.Control, error) {
	var t models.Control
	err := g.db.
		Preload("Frameworks").
		Preload("FrameworkControls").
		Preload("Vulnerabilities").
		First(&t, "id = ?", id).Error
	return t, err
}

// ListFiltered returns controls narrowed by framework code and/or a single
// framework-control mapping. Matches via the many2many tables are
// deduplicated so a control linked through several rows appears once.
func (g *controlRepository) ListFiltered(filter ControlFilter) ([]models.Control, error) {
	q := g.db.Model(&models.Control{}).
		Preload("Frameworks").
		Preload("FrameworkControls").
		Preload("Vulnerabilities").
		Distinct("controls.*")

	if filter.Framework != "" {
		q = q.Joins("JOIN control_frameworks cf ON cf.control_id = controls.id").
			Joins("JOIN frameworks ON frameworks.id = cf.framework_id").
			Where("LOWER(frameworks.code) = LOWER(?)", filter.Framework)
	}
	if filter.FrameworkControl != nil {
		q = q.Joins("JOIN control_framework_controls cfc ON cfc.control_id = controls.id").
			Where("cfc.framework_control_id = ?", *filter.FrameworkControl)
	}

	var ts []models.Control
	err := q.Order("controls.reference_id").Find(&ts).Error
	return ts, err
}

func (g *controlRepository) ReplaceFrameworks(tx shared.DB, control *models.Control, frameworks []models.Framework) error {
	return g.GetDB(tx).Model(control).Association("Frameworks").Replace(frameworks)
}

func (g *controlRepository) ReplaceFrameworkControls(tx shared.DB, control *models.Control, frameworkControls []models.FrameworkControl) error {
	return g.GetDB(tx).Model(control).Association("FrameworkControls").Replace(frameworkControls)
}

func (g *controlRepository) ReplaceVulnerabilities(tx shared.DB, control *models.Control, vulnerabilities []models.Vulnerability) error {
	return g.GetDB(tx).Model(control).Association("Vulnerabilities").Replace(vulnerabilities)
}
