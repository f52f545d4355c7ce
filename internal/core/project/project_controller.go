package project

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/riskstack/riskstack/internal/database"
	"github.com/riskstack/riskstack/internal/database/models"
	"github.com/riskstack/riskstack/internal/shared"
	"gorm.io/gorm"
)

type projectRepository interface {
	Read(id uuid.UUID) (models.Project, error)
	All() ([]models.Project, error)
	Create(tx shared.DB, t *models.Project) error
	Save(tx shared.DB, t *models.Project) error
	Delete(tx shared.DB, id uuid.UUID) error
}

type assetRepository interface {
	GetByProjectID(projectID uuid.UUID) ([]models.Asset, error)
}

type Controller struct {
	projectRepository projectRepository
	assetRepository   assetRepository
}

func NewHTTPController(projectRepository projectRepository, assetRepository assetRepository) *Controller {
	return &Controller{
		projectRepository: projectRepository,
		assetRepository:   assetRepository,
	}
}

func (c *Controller) List(ctx shared.Context) error {
	projects, err := c.projectRepository.All()
	if err != nil {
		return echo.NewHTTPError(500, "could not list projects").WithInternal(err)
	}
	return ctx.JSON(200, projects)
}

func (c *Controller) Read(ctx shared.Context) error {
	id, err := shared.ParseID(ctx, "projectID")
	if err != nil {
		return err
	}

	project, err := c.projectRepository.Read(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(404, "project not found")
	} else if err != nil {
		return echo.NewHTTPError(500, "could not read project").WithInternal(err)
	}

	assets, err := c.assetRepository.GetByProjectID(project.ID)
	if err != nil {
		return echo.NewHTTPError(500, "could not read project assets").WithInternal(err)
	}
	project.Assets = assets

	return ctx.JSON(200, project)
}

func (c *Controller) Create(ctx shared.Context) error {
	var req createRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return shared.ValidationError(err)
	}

	project := req.toModel()
	if err := c.projectRepository.Create(nil, &project); err != nil {
		if database.IsDuplicateKeyError(err) {
			return echo.NewHTTPError(409, "a project with this name already exists").WithInternal(err)
		}
		return echo.NewHTTPError(500, "could not create project").WithInternal(err)
	}

	return ctx.JSON(201, project)
}

func (c *Controller) Update(ctx shared.Context) error {
	id, err := shared.ParseID(ctx, "projectID")
	if err != nil {
		return err
	}

	project, err := c.projectRepository.Read(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(404, "project not found")
	} else if err != nil {
		return echo.NewHTTPError(500, "could not read project").WithInternal(err)
	}

	var req patchRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return shared.ValidationError(err)
	}

	req.applyToModel(&project)
	if err := c.projectRepository.Save(nil, &project); err != nil {
		if database.IsDuplicateKeyError(err) {
			return echo.NewHTTPError(409, "a project with this name already exists").WithInternal(err)
		}
		return echo.NewHTTPError(500, "could not update project").WithInternal(err)
	}

	return ctx.JSON(200, project)
}

func (c *Controller) Delete(ctx shared.Context) error {
	id, err := shared.ParseID(ctx, "projectID")
	if err != nil {
		return err
	}

	if _, err := c.projectRepository.Read(id); errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(404, "project not found")
	} else if err != nil {
		return echo.NewHTTPError(500, "could not read project").WithInternal(err)
	}

	if err := c.projectRepository.Delete(nil, id); err != nil {
		return echo.NewHTTPError(500, "could not delete project").WithInternal(err)
	}

	return ctx.NoContent(204)
}
