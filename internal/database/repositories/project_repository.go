package repositories

import (
	"github.com/google/uuid"
	"github.com/riskstack/riskstack/internal/database"
	"github.com/riskstack/riskstack/internal/database/models"
	"github.com/riskstack/riskstack/internal/shared"
)

type projectRepository struct {
	db shared.DB
	*database.GormRepository[uuid.UUID, models.Project]
}

func NewProjectRepository(db shared.DB) *projectRepository {
	if err := db.AutoMigrate(&models.Project{}); err != nil {
		panic(err)
	}
	return &projectRepository{
		db:             db,
		GormRepository: database.NewGormRepository[uuid.UUID, models.Project](db),
	}
}

func (g *projectRepository) ReadByName(name string) (models.Project, error) {
	var t models.Project
	err := g.db.Where("name = ?", name).First(&t).Error
	return t, err
}

func (g *projectRepository) All() ([]models.Project, error) {
	var ts []models.Project
	err := g.db.Order("name").Find(&ts).Error
	return ts, err
}

// Delete detaches assets and risks before removing the project. The SET
// NULL constraint does the same on postgres; doing it in the repository
// keeps the behavior identical on databases without enforced foreign keys.
func (g *projectRepository) Delete(tx shared.DB, id uuid.UUID) error {
	db := g.GetDB(tx)
	if err := db.Model(&models.Asset{}).Where("project_id = ?", id).Update("project_id", nil).Error; err != nil {
		return err
	}
	if err := db.Model(&models.Risk{}).Where("project_id = ?", id).Update("project_id", nil).Error; err != nil {
		return err
	}
	return db.Delete(&models.Project{}, "id = ?", id).Error
}
