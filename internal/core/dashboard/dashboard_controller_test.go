package dashboard_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskstack/riskstack/internal/core/dashboard"
	"github.com/riskstack/riskstack/internal/database/models"
	"github.com/riskstack/riskstack/internal/database/repositories"
	"github.com/riskstack/riskstack/internal/shared"
	"github.com/riskstack/riskstack/internal/testutil"
)

type fixture struct {
	controller        *dashboard.Controller
	riskRepository    interface{ Create(tx shared.DB, t *models.Risk) error }
	findingRepository interface {
		Create(tx shared.DB, t *models.Finding) error
	}
}

func newFixture(t *testing.T) (*fixture, shared.DB) {
	db := testutil.InMemoryDatabase(t)

	projectRepository := repositories.NewProjectRepository(db)
	riskRepository := repositories.NewRiskRepository(db)
	findingRepository := repositories.NewFindingRepository(db)
	assetRepository := repositories.NewAssetRepository(db)
	controlRepository := repositories.NewControlRepository(db)
	frameworkRepository := repositories.NewFrameworkRepository(db)

	return &fixture{
		controller:        dashboard.NewHTTPController(projectRepository, riskRepository, findingRepository, assetRepository, controlRepository, frameworkRepository),
		riskRepository:    riskRepository,
		findingRepository: findingRepository,
	}, db
}

type stats struct {
	Projects     int64 `json:"projects"`
	Risks        int64 `json:"risks"`
	OpenFindings int64 `json:"openFindings"`
	Assets       int64 `json:"assets"`
	Controls     int64 `json:"controls"`
	Frameworks   int64 `json:"frameworks"`
}

func readStats(t *testing.T, f *fixture) stats {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, f.controller.Stats(e.NewContext(req, rec)))

	var s stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	return s
}

func TestStatsCountsEveryEntityKind(t *testing.T) {
	f, db := newFixture(t)

	require.NoError(t, db.Create(&models.Project{Name: "cloud migration", Status: models.ProjectStatusActive}).Error)
	require.NoError(t, db.Create(&models.Asset{Name: "billing service", AssetType: models.AssetTypeApplication}).Error)
	require.NoError(t, db.Create(&models.Control{ReferenceID: "CTRL-01", Name: "Access reviews"}).Error)
	require.NoError(t, db.Create(&models.Framework{Code: "SOC2", Name: "SOC 2"}).Error)

	risk := models.Risk{Title: "stale credentials", Likelihood: 3, Impact: 3, Status: models.RiskStatusIdentified}
	require.NoError(t, f.riskRepository.Create(nil, &risk))
	require.NoError(t, f.findingRepository.Create(nil, &models.Finding{Title: "rotate accounts", RiskID: risk.ID, Status: models.FindingStatusOpen}))

	s := readStats(t, f)
	assert.Equal(t, stats{Projects: 1, Risks: 1, OpenFindings: 1, Assets: 1, Controls: 1, Frameworks: 1}, s)
}

func TestStatsExcludesResolvedAndClosedFindings(t *testing.T) {
	f, _ := newFixture(t)

	risk := models.Risk{Title: "stale credentials", Likelihood: 3, Impact: 3, Status: models.RiskStatusIdentified}
	require.NoError(t, f.riskRepository.Create(nil, &risk))

	for _, status := range []models.FindingStatus{
		models.FindingStatusOpen,
		models.FindingStatusInProgress,
		models.FindingStatusResolved,
		models.FindingStatusClosed,
	} {
		finding := models.Finding{Title: "finding " + string(status), RiskID: risk.ID, Status: status}
		require.NoError(t, f.findingRepository.Create(nil, &finding))
	}

	s := readStats(t, f)
	assert.EqualValues(t, 2, s.OpenFindings)
}

func TestStatsReflectNewEntitiesImmediately(t *testing.T) {
	f, _ := newFixture(t)

	before := readStats(t, f)
	assert.Zero(t, before.Risks)

	risk := models.Risk{Title: "migration downtime", Likelihood: 2, Impact: 4, Status: models.RiskStatusIdentified}
	require.NoError(t, f.riskRepository.Create(nil, &risk))

	after := readStats(t, f)
	assert.EqualValues(t, 1, after.Risks)
}
