package asset

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/riskstack/riskstack/internal/database"
	"github.com/riskstack/riskstack/internal/database/models"
	"github.com/riskstack/riskstack/internal/database/repositories"
	"github.com/riskstack/riskstack/internal/shared"
	"gorm.io/gorm"
)

type assetRepository interface {
	Read(id uuid.UUID) (models.Asset, error)
	ReadWithProject(id uuid.UUID) (models.Asset, error)
	ListFiltered(filter repositories.AssetFilter) ([]models.Asset, error)
	Create(tx shared.DB, t *models.Asset) error
	Save(tx shared.DB, t *models.Asset) error
	Delete(tx shared.DB, id uuid.UUID) error
}

type projectRepository interface {
	Read(id uuid.UUID) (models.Project, error)
}

type Controller struct {
	assetRepository   assetRepository
	projectRepository projectRepository
}

func NewHTTPController(assetRepository assetRepository, projectRepository projectRepository) *Controller {
	return &Controller{
		assetRepository:   assetRepository,
		projectRepository: projectRepository,
	}
}

func (c *Controller) List(ctx shared.Context) error {
	filter := repositories.AssetFilter{
		AssetType: ctx.QueryParam("asset_type"),
	}
	if raw := ctx.QueryParam("project"); raw != "" {
		projectID, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(400, "invalid project filter").WithInternal(err)
		}
		filter.ProjectID = &projectID
	}

	assets, err := c.assetRepository.ListFiltered(filter)
	if err != nil {
		return echo.NewHTTPError(500, "could not list assets").WithInternal(err)
	}
	return ctx.JSON(200, assets)
}

func (c *Controller) Read(ctx shared.Context) error {
	id, err := shared.ParseID(ctx, "assetID")
	if err != nil {
		return err
	}

	asset, err := c.assetRepository.ReadWithProject(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(404, "asset not found")
	} else if err != nil {
		return echo.NewHTTPError(500, "could not read asset").WithInternal(err)
	}

	return ctx.JSON(200, asset)
}

// resolveProject verifies a referenced project exists before writing.
func (c *Controller) resolveProject(projectID *uuid.UUID) error {
	if projectID == nil {
		return nil
	}
	if _, err := c.projectRepository.Read(*projectID); errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(404, "referenced project not found")
	} else if err != nil {
		return echo.NewHTTPError(500, "could not resolve project").WithInternal(err)
	}
	return nil
}

func (c *Controller) Create(ctx shared.Context) error {
	var req createRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return shared.ValidationError(err)
	}

	if err := c.resolveProject(req.ProjectID); err != nil {
		return err
	}

	asset := req.toModel()
	if err := c.assetRepository.Create(nil, &asset); err != nil {
		if database.IsDuplicateKeyError(err) {
			return echo.NewHTTPError(409, "an asset with this name already exists in the project").WithInternal(err)
		}
		return echo.NewHTTPError(500, "could not create asset").WithInternal(err)
	}

	return ctx.JSON(201, asset)
}

func (c *Controller) Update(ctx shared.Context) error {
	id, err := shared.ParseID(ctx, "assetID")
	if err != nil {
		return err
	}

	asset, err := c.assetRepository.Read(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(404, "asset not found")
	} else if err != nil {
		return echo.NewHTTPError(500, "could not read asset").WithInternal(err)
	}

	var req patchRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return shared.ValidationError(err)
	}

	if err := c.resolveProject(req.ProjectID); err != nil {
		return err
	}

	req.applyToModel(&asset)
	if err := c.assetRepository.Save(nil, &asset); err != nil {
		if database.IsDuplicateKeyError(err) {
			return echo.NewHTTPError(409, "an asset with this name already exists in the project").WithInternal(err)
		}
		return echo.NewHTTPError(500, "could not update asset").WithInternal(err)
	}

	return ctx.JSON(200, asset)
}

func (c *Controller) Delete(ctx shared.Context) error {
	id, err := shared.ParseID(ctx, "assetID")
	if err != nil {
		return err
	}

	if _, err := c.assetRepository.Read(id); errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(404, "asset not found")
	} else if err != nil {
		return echo.NewHTTPError(500, "could not read asset").WithInternal(err)
	}

	if err := c.assetRepository.Delete(nil, id); err != nil {
		return echo.NewHTTPError(500, "could not delete asset").WithInternal(err)
	}

	return ctx.NoContent(204)
}
