package control

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/riskstack/riskstack/internal/database"
	"github.com/riskstack/riskstack/internal/database/models"
	"github.com/riskstack/riskstack/internal/database/repositories"
	"github.com/riskstack/riskstack/internal/shared"
	"github.com/riskstack/riskstack/internal/utils"
	"gorm.io/gorm"
)

type controlRepository interface {
	Read(id uuid.UUID) (models.Control, error)
	ReadWithRelations(id uuid.UUID) (models.Control, error)
	ListFiltered(filter repositories.ControlFilter) ([]models.Control, error)
	Create(tx shared.DB, t *models.Control) error
	Save(tx shared.DB, t *models.Control) error
	Delete(tx shared.DB, id uuid.UUID) error
	ReplaceFrameworks(tx shared.DB, control *models.Control, frameworks []models.Framework) error
	ReplaceFrameworkControls(tx shared.DB, control *models.Control, frameworkControls []models.FrameworkControl) error
	ReplaceVulnerabilities(tx shared.DB, control *models.Control, vulnerabilities []models.Vulnerability) error
}

type frameworkRepository interface {
	Read(id uuid.UUID) (models.Framework, error)
	List(ids []uuid.UUID) ([]models.Framework, error)
}

type frameworkControlRepository interface {
	List(ids []uuid.UUID) ([]models.FrameworkControl, error)
}

type vulnerabilityRepository interface {
	List(ids []uuid.UUID) ([]models.Vulnerability, error)
}

type Controller struct {
	controlRepository          controlRepository
	frameworkRepository        frameworkRepository
	frameworkControlRepository frameworkControlRepository
	vulnerabilityRepository    vulnerabilityRepository
}

func NewHTTPController(controlRepository controlRepository, frameworkRepository frameworkRepository, frameworkControlRepository frameworkControlRepository, vulnerabilityRepository vulnerabilityRepository) *Controller {
	return &Controller{
		controlRepository:          controlRepository,
		frameworkRepository:        frameworkRepository,
		frameworkControlRepository: frameworkControlRepository,
		vulnerabilityRepository:    vulnerabilityRepository,
	}
}

func (c *Controller) List(ctx shared.Context) error {
	filter := repositories.ControlFilter{
		Framework: ctx.QueryParam("framework"),
	}
	if raw := ctx.QueryParam("framework_control"); raw != "" {
		frameworkControlID, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(400, "invalid framework_control filter").WithInternal(err)
		}
		filter.FrameworkControl = &frameworkControlID
	}

	controls, err := c.controlRepository.ListFiltered(filter)
	if err != nil {
		return echo.NewHTTPError(500, "could not list controls").WithInternal(err)
	}
	return ctx.JSON(200, controls)
}

func (c *Controller) Read(ctx shared.Context) error {
	id, err := shared.ParseID(ctx, "controlID")
	if err != nil {
		return err
	}

	control, err := c.controlRepository.ReadWithRelations(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(404, "control not found")
	} else if err != nil {
		return echo.NewHTTPError(500, "could not read control").WithInternal(err)
	}

	return ctx.JSON(200, control)
}

func (c *Controller) Create(ctx shared.Context) error {
	var req createRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return shared.ValidationError(err)
	}

	frameworks, ok, err := utils.ResolveAll(req.FrameworkIDs, c.frameworkRepository.List)
	if err != nil {
		return echo.NewHTTPError(500, "could not resolve frameworks").WithInternal(err)
	} else if !ok {
		return echo.NewHTTPError(404, "unknown framework id in frameworkIds")
	}

	frameworkControls, ok, err := utils.ResolveAll(req.FrameworkControlIDs, c.frameworkControlRepository.List)
	if err != nil {
		return echo.NewHTTPError(500, "could not resolve framework controls").WithInternal(err)
	} else if !ok {
		return echo.NewHTTPError(404, "unknown framework control id in frameworkControlIds")
	}

	vulnerabilities, ok, err := utils.ResolveAll(req.VulnerabilityIDs, c.vulnerabilityRepository.List)
	if err != nil {
		return echo.NewHTTPError(500, "could not resolve vulnerabilities").WithInternal(err)
	} else if !ok {
		return echo.NewHTTPError(404, "unknown vulnerability id in vulnerabilityIds")
	}

	control := req.toModel()
	if err := c.controlRepository.Create(nil, &control); err != nil {
		if database.IsDuplicateKeyError(err) {
			return echo.NewHTTPError(409, "a control with this reference id already exists").WithInternal(err)
		}
		return echo.NewHTTPError(500, "could not create control").WithInternal(err)
	}

	if err := c.applyRelations(&control, frameworks, frameworkControls, vulnerabilities); err != nil {
		return err
	}

	created, err := c.controlRepository.ReadWithRelations(control.ID)
	if err != nil {
		return echo.NewHTTPError(500, "could not read control").WithInternal(err)
	}
	return ctx.JSON(201, created)
}

// applyRelations replaces the requested relation sets. Framework controls
// pull their owning frameworks into the framework set as well.
func (c *Controller) applyRelations(control *models.Control, frameworks []models.Framework, frameworkControls []models.FrameworkControl, vulnerabilities []models.Vulnerability) error {
	if frameworkControls != nil {
		if err := c.controlRepository.ReplaceFrameworkControls(nil, control, frameworkControls); err != nil {
			return echo.NewHTTPError(500, "could not update framework control mappings").WithInternal(err)
		}
	}

	if frameworks != nil || frameworkControls != nil {
		explicit := frameworks
		if explicit == nil {
			explicit = control.Frameworks
		}
		merged, err := unionFrameworks(explicit, frameworkControls, c.frameworkRepository)
		if err != nil {
			return echo.NewHTTPError(500, "could not resolve framework owners").WithInternal(err)
		}
		if err := c.controlRepository.ReplaceFrameworks(nil, control, merged); err != nil {
			return echo.NewHTTPError(500, "could not update framework links").WithInternal(err)
		}
	}

	if vulnerabilities != nil {
		if err := c.controlRepository.ReplaceVulnerabilities(nil, control, vulnerabilities); err != nil {
			return echo.NewHTTPError(500, "could not update vulnerability links").WithInternal(err)
		}
	}

	return nil
}

func (c *Controller) Update(ctx shared.Context) error {
	id, err := shared.ParseID(ctx, "controlID")
	if err != nil {
		return err
	}

	control, err := c.controlRepository.ReadWithRelations(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(404, "control not found")
	} else if err != nil {
		return echo.NewHTTPError(500, "could not read control").WithInternal(err)
	}

	var req patchRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return shared.ValidationError(err)
	}

	frameworks, ok, err := utils.ResolveAll(req.FrameworkIDs, c.frameworkRepository.List)
	if err != nil {
		return echo.NewHTTPError(500, "could not resolve frameworks").WithInternal(err)
	} else if !ok {
		return echo.NewHTTPError(404, "unknown framework id in frameworkIds")
	}

	frameworkControls, ok, err := utils.ResolveAll(req.FrameworkControlIDs, c.frameworkControlRepository.List)
	if err != nil {
		return echo.NewHTTPError(500, "could not resolve framework controls").WithInternal(err)
	} else if !ok {
		return echo.NewHTTPError(404, "unknown framework control id in frameworkControlIds")
	}

	vulnerabilities, ok, err := utils.ResolveAll(req.VulnerabilityIDs, c.vulnerabilityRepository.List)
	if err != nil {
		return echo.NewHTTPError(500, "could not resolve vulnerabilities").WithInternal(err)
	} else if !ok {
		return echo.NewHTTPError(404, "unknown vulnerability id in vulnerabilityIds")
	}

	if req.applyToModel(&control) {
		if err := c.controlRepository.Save(nil, &control); err != nil {
			if database.IsDuplicateKeyError(err) {
				return echo.NewHTTPError(409, "a control with this reference id already exists").WithInternal(err)
			}
			return echo.NewHTTPError(500, "could not update control").WithInternal(err)
		}
	}

	if err := c.applyRelations(&control, frameworks, frameworkControls, vulnerabilities); err != nil {
		return err
	}

	updated, err := c.controlRepository.ReadWithRelations(control.ID)
	if err != nil {
		return echo.NewHTTPError(500, "could not read control").WithInternal(err)
	}
	return ctx.JSON(200, updated)
}

func (c *Controller) Delete(ctx shared.Context) error {
	id, err := shared.ParseID(ctx, "controlID")
	if err != nil {
		return err
	}

	if _, err := c.controlRepository.Read(id); errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(404, "control not found")
	} else if err != nil {
		return echo.NewHTTPError(500, "could not read control").WithInternal(err)
	}

	if err := c.controlRepository.Delete(nil, id); err != nil {
		return echo.NewHTTPError(500, "could not delete control").WithInternal(err)
	}

	return ctx.NoContent(204)
}
