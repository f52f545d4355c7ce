package finding

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/riskstack/riskstack/internal/database/models"
	"github.com/riskstack/riskstack/internal/shared"
	"gorm.io/gorm"
)

type findingRepository interface {
	Read(id uuid.UUID) (models.Finding, error)
	All() ([]models.Finding, error)
	GetByRiskID(riskID uuid.UUID) ([]models.Finding, error)
	Create(tx shared.DB, t *models.Finding) error
	Save(tx shared.DB, t *models.Finding) error
	Delete(tx shared.DB, id uuid.UUID) error
}

type riskRepository interface {
	Read(id uuid.UUID) (models.Risk, error)
}

type Controller struct {
	findingRepository findingRepository
	riskRepository    riskRepository
}

func NewHTTPController(findingRepository findingRepository, riskRepository riskRepository) *Controller {
	return &Controller{
		findingRepository: findingRepository,
		riskRepository:    riskRepository,
	}
}

func (c *Controller) resolveRisk(riskID uuid.UUID) error {
	if _, err := c.riskRepository.Read(riskID); errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(404, "referenced risk not found")
	} else if err != nil {
		return echo.NewHTTPError(500, "could not read risk").WithInternal(err)
	}
	return nil
}

func (c *Controller) List(ctx shared.Context) error {
	if risk := ctx.QueryParam("risk"); risk != "" {
		riskID, err := uuid.Parse(risk)
		if err != nil {
			return echo.NewHTTPError(400, "invalid risk filter").WithInternal(err)
		}
		findings, err := c.findingRepository.GetByRiskID(riskID)
		if err != nil {
			return echo.NewHTTPError(500, "could not list findings").WithInternal(err)
		}
		return ctx.JSON(200, findings)
	}

	findings, err := c.findingRepository.All()
	if err != nil {
		return echo.NewHTTPError(500, "could not list findings").WithInternal(err)
	}
	return ctx.JSON(200, findings)
}

func (c *Controller) Read(ctx shared.Context) error {
	id, err := shared.ParseID(ctx, "findingID")
	if err != nil {
		return err
	}

	finding, err := c.findingRepository.Read(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(404, "finding not found")
	} else if err != nil {
		return echo.NewHTTPError(500, "could not read finding").WithInternal(err)
	}

	return ctx.JSON(200, finding)
}

func (c *Controller) Create(ctx shared.Context) error {
	var req createRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return shared.ValidationError(err)
	}

	if err := c.resolveRisk(req.RiskID); err != nil {
		return err
	}

	finding := req.toModel()
	if err := c.findingRepository.Create(nil, &finding); err != nil {
		return echo.NewHTTPError(500, "could not create finding").WithInternal(err)
	}

	return ctx.JSON(201, finding)
}

func (c *Controller) Update(ctx shared.Context) error {
	id, err := shared.ParseID(ctx, "findingID")
	if err != nil {
		return err
	}

	finding, err := c.findingRepository.Read(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(404, "finding not found")
	} else if err != nil {
		return echo.NewHTTPError(500, "could not read finding").WithInternal(err)
	}

	var req patchRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return shared.ValidationError(err)
	}

	if req.RiskID != nil {
		if err := c.resolveRisk(*req.RiskID); err != nil {
			return err
		}
	}

	if req.applyToModel(&finding) {
		if err := c.findingRepository.Save(nil, &finding); err != nil {
			return echo.NewHTTPError(500, "could not update finding").WithInternal(err)
		}
	}

	return ctx.JSON(200, finding)
}

func (c *Controller) Delete(ctx shared.Context) error {
	id, err := shared.ParseID(ctx, "findingID")
	if err != nil {
		return err
	}

	if _, err := c.findingRepository.Read(id); errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(404, "finding not found")
	} else if err != nil {
		return echo.NewHTTPError(500, "could not read finding").WithInternal(err)
	}

	if err := c.findingRepository.Delete(nil, id); err != nil {
		return echo.NewHTTPError(500, "could not delete finding").WithInternal(err)
	}

	return ctx.NoContent(204)
}
