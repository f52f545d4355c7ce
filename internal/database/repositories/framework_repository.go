package repositories

import (
	"github.com/google/uuid"
	"github.com/riskstack/riskstack/internal/database"
	"github.com/riskstack/riskstack/internal/database/models"
	"github.com/riskstack/riskstack/internal/shared"
)

type frameworkRepository struct {
	db shared.DB
	*database.GormRepository[uuid.UUID, models.Framework]
}

func NewFrameworkRepository(db shared.DB) *frameworkRepository {
	if err := db.AutoMigrate(&models.Framework{}); err != nil {
		panic(err)
	}
	return &frameworkRepository{
		db:             db,
		GormRepository: database.NewGormRepository[uuid.UUID, models.Framework](db),
	}
}

func (g *frameworkRepository) ReadByCode(code string) (models.Framework, error) {
	var t models.Framework
	err := g.db.Where("code = ?", code).First(&t).Error
	return t, err
}

func (g *frameworkRepository) All() ([]models.Framework, error) {
	var ts []models.Framework
	err := g.db.Preload("Controls").Order("code").Find(&ts).Error
	return ts, err
}

func (g *frameworkRepository) ReadWithControls(id uuid.UUID) (models.Framework, error) {
	var t models.Framework
	err := g.db.Preload("Controls").First(&t, "id = ?", id).Error
	return t, err
}

// Delete removes the framework together with its imported catalog rows.
// Linked controls survive, only the mapping rows disappear.
func (g *frameworkRepository) Delete(tx shared.DB, id uuid.UUID) error {
	db := g.GetDB(tx)
	if err := db.Delete(&models.FrameworkControl{}, "framework_id = ?", id).Error; err != nil {
		return err
	}
	return db.Select("Controls", "Risks").Delete(&models.Framework{Model: models.Model{ID: id}}).Error
}
