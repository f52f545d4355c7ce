package vulnerability

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/riskstack/riskstack/internal/database"
	"github.com/riskstack/riskstack/internal/database/models"
	"github.com/riskstack/riskstack/internal/shared"
	"github.com/riskstack/riskstack/internal/utils"
	"gorm.io/gorm"
)

type vulnerabilityRepository interface {
	Read(id uuid.UUID) (models.Vulnerability, error)
	ReadWithRelations(id uuid.UUID) (models.Vulnerability, error)
	All() ([]models.Vulnerability, error)
	Create(tx shared.DB, t *models.Vulnerability) error
	Save(tx shared.DB, t *models.Vulnerability) error
	Delete(tx shared.DB, id uuid.UUID) error
	ReplaceControls(tx shared.DB, vulnerability *models.Vulnerability, controls []models.Control) error
	ReplaceRisks(tx shared.DB, vulnerability *models.Vulnerability, risks []models.Risk) error
}

type controlRepository interface {
	List(ids []uuid.UUID) ([]models.Control, error)
}

type riskRepository interface {
	List(ids []uuid.UUID) ([]models.Risk, error)
}

type Controller struct {
	vulnerabilityRepository vulnerabilityRepository
	controlRepository       controlRepository
	riskRepository          riskRepository
}

func NewHTTPController(vulnerabilityRepository vulnerabilityRepository, controlRepository controlRepository, riskRepository riskRepository) *Controller {
	return &Controller{
		vulnerabilityRepository: vulnerabilityRepository,
		controlRepository:       controlRepository,
		riskRepository:          riskRepository,
	}
}

func (c *Controller) List(ctx shared.Context) error {
	vulnerabilities, err := c.vulnerabilityRepository.All()
	if err != nil {
		return echo.NewHTTPError(500, "could not list vulnerabilities").WithInternal(err)
	}
	return ctx.JSON(200, vulnerabilities)
}

func (c *Controller) Read(ctx shared.Context) error {
	id, err := shared.ParseID(ctx, "vulnerabilityID")
	if err != nil {
		return err
	}

	vulnerability, err := c.vulnerabilityRepository.ReadWithRelations(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(404, "vulnerability not found")
	} else if err != nil {
		return echo.NewHTTPError(500, "could not read vulnerability").WithInternal(err)
	}

	return ctx.JSON(200, vulnerability)
}

func (c *Controller) resolveRelations(controlIDs, riskIDs []uuid.UUID) ([]models.Control, []models.Risk, error) {
	controls, ok, err := utils.ResolveAll(controlIDs, c.controlRepository.List)
	if err != nil {
		return nil, nil, echo.NewHTTPError(500, "could not resolve controls").WithInternal(err)
	} else if !ok {
		return nil, nil, echo.NewHTTPError(404, "unknown control id in controlIds")
	}

	risks, ok, err := utils.ResolveAll(riskIDs, c.riskRepository.List)
	if err != nil {
		return nil, nil, echo.NewHTTPError(500, "could not resolve risks").WithInternal(err)
	} else if !ok {
		return nil, nil, echo.NewHTTPError(404, "unknown risk id in riskIds")
	}

	return controls, risks, nil
}

func (c *Controller) applyRelations(vulnerability *models.Vulnerability, controls []models.Control, risks []models.Risk) error {
	if controls != nil {
		if err := c.vulnerabilityRepository.ReplaceControls(nil, vulnerability, controls); err != nil {
			return echo.NewHTTPError(500, "could not update control links").WithInternal(err)
		}
	}
	if risks != nil {
		if err := c.vulnerabilityRepository.ReplaceRisks(nil, vulnerability, risks); err != nil {
			return echo.NewHTTPError(500, "could not update risk links").WithInternal(err)
		}
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

	controls, risks, err := c.resolveRelations(req.ControlIDs, req.RiskIDs)
	if err != nil {
		return err
	}

	vulnerability := req.toModel()
	if err := c.vulnerabilityRepository.Create(nil, &vulnerability); err != nil {
		if database.IsDuplicateKeyError(err) {
			return echo.NewHTTPError(409, "a vulnerability with this reference id already exists").WithInternal(err)
		}
		return echo.NewHTTPError(500, "could not create vulnerability").WithInternal(err)
	}

	if err := c.applyRelations(&vulnerability, controls, risks); err != nil {
		return err
	}

	created, err := c.vulnerabilityRepository.ReadWithRelations(vulnerability.ID)
	if err != nil {
		return echo.NewHTTPError(500, "could not read vulnerability").WithInternal(err)
	}
	return ctx.JSON(201, created)
}

func (c *Controller) Update(ctx shared.Context) error {
	id, err := shared.ParseID(ctx, "vulnerabilityID")
	if err != nil {
		return err
	}

	vulnerability, err := c.vulnerabilityRepository.Read(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(404, "vulnerability not found")
	} else if err != nil {
		return echo.NewHTTPError(500, "could not read vulnerability").WithInternal(err)
	}

	var req patchRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return shared.ValidationError(err)
	}

	controls, risks, err := c.resolveRelations(req.ControlIDs, req.RiskIDs)
	if err != nil {
		return err
	}

	if req.applyToModel(&vulnerability) {
		if err := c.vulnerabilityRepository.Save(nil, &vulnerability); err != nil {
			if database.IsDuplicateKeyError(err) {
				return echo.NewHTTPError(409, "a vulnerability with this reference id already exists").WithInternal(err)
			}
			return echo.NewHTTPError(500, "could not update vulnerability").WithInternal(err)
		}
	}

	if err := c.applyRelations(&vulnerability, controls, risks); err != nil {
		return err
	}

	updated, err := c.vulnerabilityRepository.ReadWithRelations(vulnerability.ID)
	if err != nil {
		return echo.NewHTTPError(500, "could not read vulnerability").WithInternal(err)
	}
	return ctx.JSON(200, updated)
}

func (c *Controller) Delete(ctx shared.Context) error {
	id, err := shared.ParseID(ctx, "vulnerabilityID")
	if err != nil {
		return err
	}

	if _, err := c.vulnerabilityRepository.Read(id); errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(404, "vulnerability not found")
	} else if err != nil {
		return echo.NewHTTPError(500, "could not read vulnerability").WithInternal(err)
	}

	if err := c.vulnerabilityRepository.Delete(nil, id); err != nil {
		return echo.NewHTTPError(500, "could not delete vulnerability").WithInternal(err)
	}

	return ctx.NoContent(204)
}
