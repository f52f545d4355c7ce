package dashboard

import (
	"github.com/labstack/echo/v4"
	"github.com/riskstack/riskstack/internal/shared"
)

type counter interface {
	Count() (int64, error)
}

type openFindingCounter interface {
	CountOpen() (int64, error)
}

type statsDTO struct {
	Projects     int64 `json:"projects"`
	Risks        int64 `json:"risks"`
	OpenFindings int64 `json:"openFindings"`
	Assets       int64 `json:"assets"`
	Controls     int64 `json:"controls"`
	Frameworks   int64 `json:"frameworks"`
}

type Controller struct {
	projectRepository   counter
	riskRepository      counter
	findingRepository   openFindingCounter
	assetRepository     counter
	controlRepository   counter
	frameworkRepository counter
}

func NewHTTPController(projectRepository counter, riskRepository counter, findingRepository openFindingCounter, assetRepository counter, controlRepository counter, frameworkRepository counter) *Controller {
	return &Controller{
		projectRepository:   projectRepository,
		riskRepository:      riskRepository,
		findingRepository:   findingRepository,
		assetRepository:     assetRepository,
		controlRepository:   controlRepository,
		frameworkRepository: frameworkRepository,
	}
}

// Stats returns fresh counts on every call. Nothing here is cached.
func (c *Controller) Stats(ctx shared.Context) error {
	var stats statsDTO
	var err error

	if stats.Projects, err = c.projectRepository.Count(); err != nil {
		return echo.NewHTTPError(500, "could not count projects").WithInternal(err)
	}
	if stats.Risks, err = c.riskRepository.Count(); err != nil {
		return echo.NewHTTPError(500, "could not count risks").WithInternal(err)
	}
	if stats.OpenFindings, err = c.findingRepository.CountOpen(); err != nil {
		return echo.NewHTTPError(500, "could not count findings").WithInternal(err)
	}
	if stats.Assets, err = c.assetRepository.Count(); err != nil {
		return echo.NewHTTPError(500, "could not count assets").WithInternal(err)
	}
	if stats.Controls, err = c.controlRepository.Count(); err != nil {
		return echo.NewHTTPError(500, "could not count controls").WithInternal(err)
	}
	if stats.Frameworks, err = c.frameworkRepository.Count(); err != nil {
		return echo.NewHTTPError(500, "could not count frameworks").WithInternal(err)
	}

	return ctx.JSON(200, stats)
}
