package repositories

import (
	"github.com/google/uuid"
	"github.com/riskstack/riskstack/internal/database"
	"github.com/riskstack/riskstack/internal/database/models"
	"github.com/riskstack/riskstack/internal/shared"
)

type findingRepository struct {
	db shared.DB
	*database.GormRepository[uuid.UUID, models.Finding]
}

func NewFindingRepository(db shared.DB) *findingRepository {
	if err := db.AutoMigrate(&models.Finding{}); err != nil {
		panic(err)
	}
	return &findingRepository{
		db:             db,
		GormRepository: database.NewGormRepository[uuid.UUID, models.Finding](db),
	}
}

func (g *findingRepository) GetByRiskID(riskID uuid.UUID) ([]models.Finding, error) {
	var ts []models.Finding
	err := g.db.Where("risk_id = ?", riskID).Order("due_date DESC").Find(&ts).Error
	return ts, err
}

func (g *findingRepository) All() ([]models.Finding, error) {
	var ts []models.Finding
	err := g.db.Order("due_date DESC").Find(&ts).Error
	return ts, err
}

// CountOpen counts findings that are neither resolved nor closed.
func (g *findingRepository) CountOpen() (int64, error) {
	var count int64
	err := g.db.Model(&models.Finding{}).
		Where("status NOT IN ?", []models.FindingStatus{models.FindingStatusResolved, models.FindingStatusClosed}).
		Count(&count).Error
	return count, err
}
