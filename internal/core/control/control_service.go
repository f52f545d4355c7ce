package control

import (
	"github.com/google/uuid"
	"github.com/riskstack/riskstack/internal/database/models"
)

type frameworkResolveRepository interface {
	Read(id uuid.UUID) (models.Framework, error)
	List(ids []uuid.UUID) ([]models.Framework, error)
}

// unionFrameworks merges the explicitly requested frameworks with the
// owners of the mapped framework controls, so mapping a catalog entry
// always links its framework too.
func unionFrameworks(explicit []models.Framework, frameworkControls []models.FrameworkControl, frameworkRepository frameworkResolveRepository) ([]models.Framework, error) {
	byID := make(map[uuid.UUID]models.Framework, len(explicit))
	for _, framework := range explicit {
		byID[framework.ID] = framework
	}

	for _, frameworkControl := range frameworkControls {
		if _, ok := byID[frameworkControl.FrameworkID]; ok {
			continue
		}
		framework, err := frameworkRepository.Read(frameworkControl.FrameworkID)
		if err != nil {
			return nil, err
		}
		byID[framework.ID] = framework
	}

	frameworks := make([]models.Framework, 0, len(byID))
	for _, framework := range byID {
		frameworks = append(frameworks, framework)
	}
	return frameworks, nil
}
