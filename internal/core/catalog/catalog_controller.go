package catalog

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/riskstack/riskstack/internal/database/models"
	"github.com/riskstack/riskstack/internal/database/repositories"
	"github.com/riskstack/riskstack/internal/shared"
	"gorm.io/gorm"
)

type frameworkControlReadRepository interface {
	ReadWithFramework(id uuid.UUID) (models.FrameworkControl, error)
	ListFiltered(filter repositories.FrameworkControlFilter) ([]models.FrameworkControl, error)
}

// Controller serves the read-only framework-controls listing. Rows are
// created by the importer, never through the API.
type Controller struct {
	frameworkControlRepository frameworkControlReadRepository
}

func NewHTTPController(frameworkControlRepository frameworkControlReadRepository) *Controller {
	return &Controller{
		frameworkControlRepository: frameworkControlRepository,
	}
}

func (c *Controller) List(ctx shared.Context) error {
	filter := repositories.FrameworkControlFilter{
		Framework:   ctx.QueryParam("framework"),
		ElementType: ctx.QueryParam("element_type"),
	}

	frameworkControls, err := c.frameworkControlRepository.ListFiltered(filter)
	if err != nil {
		return echo.NewHTTPError(500, "could not list framework controls").WithInternal(err)
	}

	return ctx.JSON(200, toDTOs(frameworkControls))
}

func (c *Controller) Read(ctx shared.Context) error {
	id, err := shared.ParseID(ctx, "frameworkControlID")
	if err != nil {
		return err
	}

	frameworkControl, err := c.frameworkControlRepository.ReadWithFramework(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(404, "framework control not found")
	} else if err != nil {
		return echo.NewHTTPError(500, "could not read framework control").WithInternal(err)
	}

	return ctx.JSON(200, toDTO(frameworkControl))
}
