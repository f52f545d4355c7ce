package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/riskstack/riskstack/internal/database/models"
)

type frameworkControlDTO struct {
	ID            uuid.UUID `json:"id"`
	FrameworkID   uuid.UUID `json:"frameworkId"`
	FrameworkCode string    `json:"frameworkCode"`
	FrameworkName string    `json:"frameworkName"`
	ControlID     string    `json:"controlId"`
	Title         string    `json:"title"`
	ElementType   string    `json:"elementType"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toDTO(frameworkControl models.FrameworkControl) frameworkControlDTO {
	return frameworkControlDTO{
		ID:            frameworkControl.ID,
		FrameworkID:   frameworkControl.FrameworkID,
		FrameworkCode: frameworkControl.Framework.Code,
		FrameworkName: frameworkControl.Framework.Name,
		ControlID:     frameworkControl.ControlID,
		Title:         frameworkControl.Title,
		ElementType:   frameworkControl.ElementType,
		CreatedAt:     frameworkControl.CreatedAt,
		UpdatedAt:     frameworkControl.UpdatedAt,
	}
}

func toDTOs(frameworkControls []models.FrameworkControl) []frameworkControlDTO {
	dtos := make([]frameworkControlDTO, 0, len(frameworkControls))
	for _, frameworkControl := range frameworkControls {
		dtos = append(dtos, toDTO(frameworkControl))
	}
	return dtos
}
