package repositories

import (
	"github.com/google/uuid"
	"github.com/riskstack/riskstack/internal/database"
	"github.com/riskstack/riskstack/internal/database/models"
	"github.com/riskstack/riskstack/internal/shared"
)

type vulnerabilityRepository struct {
	db shared.DB
	*database.GormRepository[uuid.UUID, models.Vulnerability]
}

func NewVulnerabilityRepository(db shared.DB) *vulnerabilityRepository {
	if err := db.AutoMigrate(&models.Vulnerability{}); err != nil {
		panic(err)
	}
	return &vulnerabilityRepository{
		db:             db,
		GormRepository: database.NewGormRepository[uuid.UUID, models.Vulnerability](db),
	}
}

func (g *vulnerabilityRepository) ReadWithRelations(id uuid.UUID) (models.Vulnerability, error) {
	var t models.Vulnerability
	err := g.db.Preload("Controls").Preload("Risks").First(&t, "id = ?", id).Error
	return t, err
}

func (g *vulnerabilityRepository) All() ([]models.Vulnerability, error) {
	var ts []models.Vulnerability
	err := g.db.Preload("Controls").Preload("Risks").Order("reference_id").Find(&ts).Error
	return ts, err
}

func (g *vulnerabilityRepository) ReplaceControls(tx shared.DB, vulnerability *models.Vulnerability, controls []models.Control) error {
	return g.GetDB(tx).Model(vulnerability).Association("Controls").Replace(controls)
}

func (g *vulnerabilityRepository) ReplaceRisks(tx shared.DB, vulnerability *models.Vulnerability, risks []models.Risk) error {
	return g.GetDB(tx).Model(vulnerability).Association("Risks").Replace(risks)
}
