package catalog

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/riskstack/riskstack/internal/database/models"
	"github.com/riskstack/riskstack/internal/shared"
	"gorm.io/gorm"
)

type frameworkControlRepository interface {
	FindByFrameworkAndControlID(tx shared.DB, frameworkID uuid.UUID, controlID string) (models.FrameworkControl, error)
	Create(tx shared.DB, t *models.FrameworkControl) error
	Save(tx shared.DB, t *models.FrameworkControl) error
	Transaction(func(tx shared.DB) error) error
}

type frameworkRepository interface {
	ReadByCode(code string) (models.Framework, error)
	Create(tx shared.DB, t *models.Framework) error
	Save(tx shared.DB, t *models.Framework) error
}

// EnsureFramework returns the framework with the given code, creating it
// on first import. An existing framework gets its name and description
// refreshed when a non-empty value differs from the stored one.
func EnsureFramework(repository frameworkRepository, code, name, description string) (models.Framework, bool, error) {
	framework, err := repository.ReadByCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if name == "" {
			name = code
		}
		framework = models.Framework{Code: code, Name: name, Description: description}
		if err := repository.Create(nil, &framework); err != nil {
			return models.Framework{}, false, errors.Wrapf(err, "could not create framework %s", code)
		}
		return framework, true, nil
	} else if err != nil {
		return models.Framework{}, false, errors.Wrapf(err, "could not read framework %s", code)
	}

	changed := false
	if name != "" && framework.Name != name {
		framework.Name = name
		changed = true
	}
	if description != "" && framework.Description != description {
		framework.Description = description
		changed = true
	}
	if changed {
		if err := repository.Save(nil, &framework); err != nil {
			return models.Framework{}, false, errors.Wrapf(err, "could not update framework %s", code)
		}
	}

	return framework, false, nil
}

type ImportService struct {
	frameworkControlRepository frameworkControlRepository
}

func NewImportService(frameworkControlRepository frameworkControlRepository) *ImportService {
	return &ImportService{
		frameworkControlRepository: frameworkControlRepository,
	}
}

// ImportCatalog reconciles a catalog export into the framework's control
// rows inside a single transaction: unknown (framework, control id) pairs
// are created, known ones get title and element type overwritten. A
// re-import of an identical file therefore reports every row as updated,
// and any failure rolls the whole import back.
func (s *ImportService) ImportCatalog(path string, framework models.Framework, elementTypes []string) (created int, updated int, err error) {
	records, err := LoadCatalog(path, elementTypes)
	if err != nil {
		return 0, 0, err
	}

	err = s.frameworkControlRepository.Transaction(func(tx shared.DB) error {
		for _, record := range records {
			existing, err := s.frameworkControlRepository.FindByFrameworkAndControlID(tx, framework.ID, record.ControlID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				frameworkControl := models.FrameworkControl{
					FrameworkID: framework.ID,
					ControlID:   record.ControlID,
					Title:       record.Title,
					ElementType: record.ElementType,
				}
				if err := s.frameworkControlRepository.Create(tx, &frameworkControl); err != nil {
					return errors.Wrapf(err, "could not create framework control %s", record.ControlID)
				}
				created++
				continue
			} else if err != nil {
				return errors.Wrapf(err, "could not look up framework control %s", record.ControlID)
			}

			existing.Title = record.Title
			existing.ElementType = record.ElementType
			if err := s.frameworkControlRepository.Save(tx, &existing); err != nil {
				return errors.Wrapf(err, "could not update framework control %s", record.ControlID)
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return created, updated, nil
}
