package repositories

import (
	"github.com/google/uuid"
	"github.com/riskstack/riskstack/internal/database"
	"github.com/riskstack/riskstack/internal/database/models"
	"github.com/riskstack/riskstack/internal/shared"
)

// RiskFilter narrows the risk listing and the summary aggregation. All
// present fields compose with AND; framework matches go through the
// many2many table and are deduplicated.
type RiskFilter struct {
	Status        string
	FrameworkCode string
	ProjectID     *uuid.UUID
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type riskRepository struct {
	db shared.DB
	*database.GormRepository[uuid.UUID, models.Risk]
}

func NewRiskRepository(db shared.DB) *riskRepository {
	if err := db.AutoMigrate(&models.Risk{}); err != nil {
		panic(err)
	}
	return &riskRepository{
		db:             db,
		GormRepository: database.NewGormRepository[uuid.UUID, models.Risk](db),
	}
}

func (g *riskRepository) filteredQuery(filter RiskFilter) shared.DB {
	q := g.db.Model(&models.Risk{})

	if filter.Status != "" {
		q = q.Where("risks.status = ?", filter.Status)
	}
	if filter.FrameworkCode != "" {
		q = q.Joins("JOIN risk_frameworks rf ON rf.risk_id = risks.id").
			Joins("JOIN frameworks ON frameworks.id = rf.framework_id").
			Where("LOWER(frameworks.code) = LOWER(?)", filter.FrameworkCode)
	}
	if filter.ProjectID != nil {
		q = q.Where("risks.project_id = ?", *filter.ProjectID)
	}

	return q
}

func (g *riskRepository) ReadWithRelations(id uuid.UUID) (models.Risk, error) {
	var t models.Risk
	err := g.db.
		Preload("Project").
		Preload("Assets").
		Preload("Controls").
		Preload("Frameworks").
		Preload("Vulnerabilities").
		Preload("Findings").
		First(&t, "id = ?", id).Error
	return t, err
}

func (g *riskRepository) ListFiltered(filter RiskFilter) ([]models.Risk, error) {
	var ts []models.Risk
	err := g.filteredQuery(filter).
		Distinct("risks.*").
		Preload("Project").
		Preload("Assets").
		Preload("Controls").
		Preload("Frameworks").
		Preload("Vulnerabilities").
		Preload("Findings").
		Order("risks.updated_at DESC").
		Find(&ts).Error
	return ts, err
}

// CountFiltered counts distinct risks matching the filter.
func (g *riskRepository) CountFiltered(filter RiskFilter) (int64, error) {
	var count int64
	err := g.filteredQuery(filter).Distinct("risks.id").Count(&count).Error
	return count, err
}

// CountByStatus groups the filtered risks by status, ordered by status.
func (g *riskRepository) CountByStatus(filter RiskFilter) ([]StatusCount, error) {
	var counts []StatusCount
	err := g.filteredQuery(filter).
		Select("risks.status AS status, COUNT(DISTINCT risks.id) AS count").
		Group("risks.status").
		Order("risks.status").
		Scan(&counts).Error
	return counts, err
}

func (g *riskRepository) ReplaceAssets(tx shared.DB, risk *models.Risk, assets []models.Asset) error {
	return g.GetDB(tx).Model(risk).Association("Assets").Replace(assets)
}

func (g *riskRepository) ReplaceControls(tx shared.DB, risk *models.Risk, controls []models.Control) error {
	return g.GetDB(tx).Model(risk).Association("Controls").Replace(controls)
}

func (g *riskRepository) ReplaceFrameworks(tx shared.DB, risk *models.Risk, frameworks []models.Framework) error {
	return g.GetDB(tx).Model(risk).Association("Frameworks").Replace(frameworks)
}

func (g *riskRepository) ReplaceVulnerabilities(tx shared.DB, risk *models.Risk, vulnerabilities []models.Vulnerability) error {
	return g.GetDB(tx).Model(risk).Association("Vulnerabilities").Replace(vulnerabilities)
}

// Delete removes the risk and its findings. The CASCADE constraint does
// the same on postgres; the explicit delete keeps the invariant on
// databases without enforced foreign keys.
func (g *riskRepository) Delete(tx shared.DB, id uuid.UUID) error {
	db := g.GetDB(tx)
	if err := db.Delete(&models.Finding{}, "risk_id = ?", id).Error; err != nil {
		return err
	}
	return db.Select("Assets", "Controls", "Frameworks", "Vulnerabilities").Delete(&models.Risk{Model: models.Model{ID: id}}).Error
}
