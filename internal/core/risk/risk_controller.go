package risk

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/riskstack/riskstack/internal/database/models"
	"github.com/riskstack/riskstack/internal/database/repositories"
	"github.com/riskstack/riskstack/internal/shared"
	"github.com/riskstack/riskstack/internal/utils"
	"gorm.io/gorm"
)

type riskRepository interface {
	Read(id uuid.UUID) (models.Risk, error)
	ReadWithRelations(id uuid.UUID) (models.Risk, error)
	ListFiltered(filter repositories.RiskFilter) ([]models.Risk, error)
	CountFiltered(filter repositories.RiskFilter) (int64, error)
	CountByStatus(filter repositories.RiskFilter) ([]repositories.StatusCount, error)
	Create(tx shared.DB, t *models.Risk) error
	Save(tx shared.DB, t *models.Risk) error
	Delete(tx shared.DB, id uuid.UUID) error
	ReplaceAssets(tx shared.DB, risk *models.Risk, assets []models.Asset) error
	ReplaceControls(tx shared.DB, risk *models.Risk, controls []models.Control) error
	ReplaceFrameworks(tx shared.DB, risk *models.Risk, frameworks []models.Framework) error
	ReplaceVulnerabilities(tx shared.DB, risk *models.Risk, vulnerabilities []models.Vulnerability) error
}

type projectRepository interface {
	Read(id uuid.UUID) (models.Project, error)
}

type assetRepository interface {
	List(ids []uuid.UUID) ([]models.Asset, error)
}

type controlRepository interface {
	List(ids []uuid.UUID) ([]models.Control, error)
}

type frameworkRepository interface {
	List(ids []uuid.UUID) ([]models.Framework, error)
}

type vulnerabilityRepository interface {
	List(ids []uuid.UUID) ([]models.Vulnerability, error)
}

type Controller struct {
	riskRepository          riskRepository
	projectRepository       projectRepository
	assetRepository         assetRepository
	controlRepository       controlRepository
	frameworkRepository     frameworkRepository
	vulnerabilityRepository vulnerabilityRepository
}

func NewHTTPController(riskRepository riskRepository, projectRepository projectRepository, assetRepository assetRepository, controlRepository controlRepository, frameworkRepository frameworkRepository, vulnerabilityRepository vulnerabilityRepository) *Controller {
	return &Controller{
		riskRepository:          riskRepository,
		projectRepository:       projectRepository,
		assetRepository:         assetRepository,
		controlRepository:       controlRepository,
		frameworkRepository:     frameworkRepository,
		vulnerabilityRepository: vulnerabilityRepository,
	}
}

func filterFromQuery(ctx shared.Context) (repositories.RiskFilter, error) {
	filter := repositories.RiskFilter{
		Status:        ctx.QueryParam("status"),
		FrameworkCode: ctx.QueryParam("framework"),
	}

	if project := ctx.QueryParam("project"); project != "" {
		projectID, err := uuid.Parse(project)
		if err != nil {
			return filter, echo.NewHTTPError(400, "invalid project filter").WithInternal(err)
		}
		filter.ProjectID = &projectID
	}

	return filter, nil
}

func (c *Controller) List(ctx shared.Context) error {
	filter, err := filterFromQuery(ctx)
	if err != nil {
		return err
	}

	risks, err := c.riskRepository.ListFiltered(filter)
	if err != nil {
		return echo.NewHTTPError(500, "could not list risks").WithInternal(err)
	}
	return ctx.JSON(200, toDTOs(risks))
}

func (c *Controller) Read(ctx shared.Context) error {
	id, err := shared.ParseID(ctx, "riskID")
	if err != nil {
		return err
	}

	risk, err := c.riskRepository.ReadWithRelations(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(404, "risk not found")
	} else if err != nil {
		return echo.NewHTTPError(500, "could not read risk").WithInternal(err)
	}

	return ctx.JSON(200, toDTO(risk))
}

// Summary aggregates the filtered risk set. Status counts come from the
// database, severity counts from the scoring engine over the matching
// rows.
func (c *Controller) Summary(ctx shared.Context) error {
	filter, err := filterFromQuery(ctx)
	if err != nil {
		return err
	}

	total, err := c.riskRepository.CountFiltered(filter)
	if err != nil {
		return echo.NewHTTPError(500, "could not summarize risks").WithInternal(err)
	}

	byStatus, err := c.riskRepository.CountByStatus(filter)
	if err != nil {
		return echo.NewHTTPError(500, "could not summarize risks").WithInternal(err)
	}
	if byStatus == nil {
		byStatus = []repositories.StatusCount{}
	}

	risks, err := c.riskRepository.ListFiltered(filter)
	if err != nil {
		return echo.NewHTTPError(500, "could not summarize risks").WithInternal(err)
	}

	bySeverity := map[string]int{}
	for _, risk := range risks {
		bySeverity[SeverityLabel(Score(risk.Likelihood, risk.Impact))]++
	}

	return ctx.JSON(200, summaryDTO{
		TotalRisks: total,
		ByStatus:   byStatus,
		BySeverity: bySeverity,
	})
}

type resolvedRelations struct {
	assets          []models.Asset
	controls        []models.Control
	frameworks      []models.Framework
	vulnerabilities []models.Vulnerability
}

func (c *Controller) resolveProject(projectID *uuid.UUID) error {
	if projectID == nil {
		return nil
	}
	if _, err := c.projectRepository.Read(*projectID); errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(404, "referenced project not found")
	} else if err != nil {
		return echo.NewHTTPError(500, "could not read project").WithInternal(err)
	}
	return nil
}

func (c *Controller) resolveRelations(assetIDs, controlIDs, frameworkIDs, vulnerabilityIDs []uuid.UUID) (resolvedRelations, error) {
	var relations resolvedRelations

	assets, ok, err := utils.ResolveAll(assetIDs, c.assetRepository.List)
	if err != nil {
		return relations, echo.NewHTTPError(500, "could not resolve assets").WithInternal(err)
	} else if !ok {
		return relations, echo.NewHTTPError(404, "unknown asset id in assetIds")
	}
	relations.assets = assets

	controls, ok, err := utils.ResolveAll(controlIDs, c.controlRepository.List)
	if err != nil {
		return relations, echo.NewHTTPError(500, "could not resolve controls").WithInternal(err)
	} else if !ok {
		return relations, echo.NewHTTPError(404, "unknown control id in controlIds")
	}
	relations.controls = controls

	frameworks, ok, err := utils.ResolveAll(frameworkIDs, c.frameworkRepository.List)
	if err != nil {
		return relations, echo.NewHTTPError(500, "could not resolve frameworks").WithInternal(err)
	} else if !ok {
		return relations, echo.NewHTTPError(404, "unknown framework id in frameworkIds")
	}
	relations.frameworks = frameworks

	vulnerabilities, ok, err := utils.ResolveAll(vulnerabilityIDs, c.vulnerabilityRepository.List)
	if err != nil {
		return relations, echo.NewHTTPError(500, "could not resolve vulnerabilities").WithInternal(err)
	} else if !ok {
		return relations, echo.NewHTTPError(404, "unknown vulnerability id in vulnerabilityIds")
	}
	relations.vulnerabilities = vulnerabilities

	return relations, nil
}

func (c *Controller) applyRelations(risk *models.Risk, relations resolvedRelations) error {
	if relations.assets != nil {
		if err := c.riskRepository.ReplaceAssets(nil, risk, relations.assets); err != nil {
			return echo.NewHTTPError(500, "could not update asset links").WithInternal(err)
		}
	}
	if relations.controls != nil {
		if err := c.riskRepository.ReplaceControls(nil, risk, relations.controls); err != nil {
			return echo.NewHTTPError(500, "could not update control links").WithInternal(err)
		}
	}
	if relations.frameworks != nil {
		if err := c.riskRepository.ReplaceFrameworks(nil, risk, relations.frameworks); err != nil {
			return echo.NewHTTPError(500, "could not update framework links").WithInternal(err)
		}
	}
	if relations.vulnerabilities != nil {
		if err := c.riskRepository.ReplaceVulnerabilities(nil, risk, relations.vulnerabilities); err != nil {
			return echo.NewHTTPError(500, "could not update vulnerability links").WithInternal(err)
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

	if err := c.resolveProject(req.ProjectID); err != nil {
		return err
	}

	relations, err := c.resolveRelations(req.AssetIDs, req.ControlIDs, req.FrameworkIDs, req.VulnerabilityIDs)
	if err != nil {
		return err
	}

	risk := req.toModel()
	if err := c.riskRepository.Create(nil, &risk); err != nil {
		return echo.NewHTTPError(500, "could not create risk").WithInternal(err)
	}

	if err := c.applyRelations(&risk, relations); err != nil {
		return err
	}

	created, err := c.riskRepository.ReadWithRelations(risk.ID)
	if err != nil {
		return echo.NewHTTPError(500, "could not read risk").WithInternal(err)
	}
	return ctx.JSON(201, toDTO(created))
}

func (c *Controller) Update(ctx shared.Context) error {
	id, err := shared.ParseID(ctx, "riskID")
	if err != nil {
		return err
	}

	risk, err := c.riskRepository.Read(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(404, "risk not found")
	} else if err != nil {
		return echo.NewHTTPError(500, "could not read risk").WithInternal(err)
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

	relations, err := c.resolveRelations(req.AssetIDs, req.ControlIDs, req.FrameworkIDs, req.VulnerabilityIDs)
	if err != nil {
		return err
	}

	if req.applyToModel(&risk) {
		if err := c.riskRepository.Save(nil, &risk); err != nil {
			return echo.NewHTTPError(500, "could not update risk").WithInternal(err)
		}
	}

	if err := c.applyRelations(&risk, relations); err != nil {
		return err
	}

	updated, err := c.riskRepository.ReadWithRelations(risk.ID)
	if err != nil {
		return echo.NewHTTPError(500, "could not read risk").WithInternal(err)
	}
	return ctx.JSON(200, toDTO(updated))
}

func (c *Controller) Delete(ctx shared.Context) error {
	id, err := shared.ParseID(ctx, "riskID")
	if err != nil {
		return err
	}

	if _, err := c.riskRepository.Read(id); errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(404, "risk not found")
	} else if err != nil {
		return echo.NewHTTPError(500, "could not read risk").WithInternal(err)
	}

	if err := c.riskRepository.Delete(nil, id); err != nil {
		return echo.NewHTTPError(500, "could not delete risk").WithInternal(err)
	}

	return ctx.NoContent(204)
}
