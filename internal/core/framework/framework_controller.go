package framework

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/riskstack/riskstack/internal/database"
	"github.com/riskstack/riskstack/internal/database/models"
	"github.com/riskstack/riskstack/internal/shared"
	"gorm.io/gorm"
)

type frameworkRepository interface {
	Read(id uuid.UUID) (models.Framework, error)
	ReadWithControls(id uuid.UUID) (models.Framework, error)
	All() ([]models.Framework, error)
	Create(tx shared.DB, t *models.Framework) error
	Save(tx shared.DB, t *models.Framework) error
	Delete(tx shared.DB, id uuid.UUID) error
}

type Controller struct {
	frameworkRepository frameworkRepository
}

func NewHTTPController(frameworkRepository frameworkRepository) *Controller {
	return &Controller{
		frameworkRepository: frameworkRepository,
	}
}

func (c *Controller) List(ctx shared.Context) error {
	frameworks, err := c.frameworkRepository.All()
	if err != nil {
		return echo.NewHTTPError(500, "could not list frameworks").WithInternal(err)
	}
	return ctx.JSON(200, frameworks)
}

func (c *Controller) Read(ctx shared.Context) error {
	id, err := shared.ParseID(ctx, "frameworkID")
	if err != nil {
		return err
	}

	framework, err := c.frameworkRepository.ReadWithControls(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(404, "framework not found")
	} else if err != nil {
		return echo.NewHTTPError(500, "could not read framework").WithInternal(err)
	}

	return ctx.JSON(200, framework)
}

func (c *Controller) Create(ctx shared.Context) error {
	var req createRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return shared.ValidationError(err)
	}

	framework := req.toModel()
	if err := c.frameworkRepository.Create(nil, &framework); err != nil {
		if database.IsDuplicateKeyError(err) {
			return echo.NewHTTPError(409, "a framework with this code already exists").WithInternal(err)
		}
		return echo.NewHTTPError(500, "could not create framework").WithInternal(err)
	}

	return ctx.JSON(201, framework)
}

func (c *Controller) Update(ctx shared.Context) error {
	id, err := shared.ParseID(ctx, "frameworkID")
	if err != nil {
		return err
	}

	framework, err := c.frameworkRepository.Read(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(404, "framework not found")
	} else if err != nil {
		return echo.NewHTTPError(500, "could not read framework").WithInternal(err)
	}

	var req patchRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return shared.ValidationError(err)
	}

	req.applyToModel(&framework)
	if err := c.frameworkRepository.Save(nil, &framework); err != nil {
		if database.IsDuplicateKeyError(err) {
			return echo.NewHTTPError(409, "a framework with this code already exists").WithInternal(err)
		}
		return echo.NewHTTPError(500, "could not update framework").WithInternal(err)
	}

	return ctx.JSON(200, framework)
}

func (c *Controller) Delete(ctx shared.Context) error {
	id, err := shared.ParseID(ctx, "frameworkID")
	if err != nil {
		return err
	}

	if _, err := c.frameworkRepository.Read(id); errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(404, "framework not found")
	} else if err != nil {
		return echo.NewHTTPError(500, "could not read framework").WithInternal(err)
	}

	if err := c.frameworkRepository.Delete(nil, id); err != nil {
		return echo.NewHTTPError(500, "could not delete framework").WithInternal(err)
	}

	return ctx.NoContent(204)
}
