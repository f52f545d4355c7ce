package repositories

import (
	"github.com/google/uuid"
	"github.com/riskstack/riskstack/internal/database"
	"github.com/riskstack/riskstack/internal/database/models"
	"github.com/riskstack/riskstack/internal/shared"
)

type userRepository struct {
	db shared.DB
	*database.GormRepository[uuid.UUID, models.User]
}

func NewUserRepository(db shared.DB) *userRepository {
	if err := db.AutoMigrate(&models.User{}); err != nil {
		panic(err)
	}
	return &userRepository{
		db:             db,
		GormRepository: database.NewGormRepository[uuid.UUID, models.User](db),
	}
}

func (g *userRepository) All() ([]models.User, error) {
	var ts []models.User
	err := g.db.Order("username").Find(&ts).Error
	return ts, err
}

func (g *userRepository) ReadByUsername(username string) (models.User, error) {
	var t models.User
	err := g.db.Where("username = ?", username).First(&t).Error
	return t, err
}

// ReadByToken resolves an api token to its user. The presented token is
// hashed before querying.
func (g *userRepository) ReadByToken(token string) (models.User, error) {
	var t models.User
	err := g.db.Where("token_hash = ?", t.HashToken(token)).First(&t).Error
	return t, err
}

// SearchByTerm does a case-insensitive substring match over username,
// first name, last name and email, ordered by username.
func (g *userRepository) SearchByTerm(term string, limit int) ([]models.User, error) {
	pattern := "%" + term + "%"
	var ts []models.User
	err := g.db.
		Where("LOWER(username) LIKE LOWER(?) OR LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)",
			pattern, pattern, pattern, pattern).
		Order("username").
		Limit(limit).
		Find(&ts).Error
	return ts, err
}
