package risk_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskstack/riskstack/internal/core/risk"
	"github.com/riskstack/riskstack/internal/database/models"
	"github.com/riskstack/riskstack/internal/database/repositories"
	"github.com/riskstack/riskstack/internal/shared"
	"github.com/riskstack/riskstack/internal/testutil"
)

type fixture struct {
	controller          *risk.Controller
	riskRepository      interface{ Create(tx shared.DB, t *models.Risk) error }
	frameworkRepository interface {
		Create(tx shared.DB, t *models.Framework) error
	}
	db shared.DB
}

func newFixture(t *testing.T) *fixture {
	db := testutil.InMemoryDatabase(t)

	riskRepository := repositories.NewRiskRepository(db)
	projectRepository := repositories.NewProjectRepository(db)
	assetRepository := repositories.NewAssetRepository(db)
	controlRepository := repositories.NewControlRepository(db)
	frameworkRepository := repositories.NewFrameworkRepository(db)
	vulnerabilityRepository := repositories.NewVulnerabilityRepository(db)
	// migrates the findings table, which List/Summary preload
	_ = repositories.NewFindingRepository(db)

	return &fixture{
		controller:          risk.NewHTTPController(riskRepository, projectRepository, assetRepository, controlRepository, frameworkRepository, vulnerabilityRepository),
		riskRepository:      riskRepository,
		frameworkRepository: frameworkRepository,
		db:                  db,
	}
}

func newContext(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newJSONContext(t *testing.T, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func seedRisk(t *testing.T, f *fixture, title string, status models.RiskStatus, likelihood, impact int) models.Risk {
	t.Helper()
	r := models.Risk{
		Title:      title,
		Status:     status,
		Likelihood: likelihood,
		Impact:     impact,
	}
	require.NoError(t, f.riskRepository.Create(nil, &r))
	return r
}

func TestListDerivesScoreAndSeverity(t *testing.T) {
	f := newFixture(t)
	seedRisk(t, f, "database exposed", models.RiskStatusIdentified, 5, 5)

	ctx, rec := newContext(t, "/risks/")
	require.NoError(t, f.controller.List(ctx))

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, float64(25), body[0]["score"])
	assert.Equal(t, "Critical", body[0]["severityLabel"])
}

func TestListFiltersByStatus(t *testing.T) {
	f := newFixture(t)
	seedRisk(t, f, "open risk", models.RiskStatusIdentified, 3, 3)
	seedRisk(t, f, "closed risk", models.RiskStatusClosed, 3, 3)

	ctx, rec := newContext(t, "/risks/?status=closed")
	require.NoError(t, f.controller.List(ctx))

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "closed risk", body[0]["title"])
}

func TestListFiltersByFrameworkCode(t *testing.T) {
	f := newFixture(t)

	framework := models.Framework{Code: "ISO-27001", Name: "ISO 27001"}
	require.NoError(t, f.frameworkRepository.Create(nil, &framework))

	tagged := seedRisk(t, f, "tagged risk", models.RiskStatusIdentified, 2, 2)
	seedRisk(t, f, "untagged risk", models.RiskStatusIdentified, 2, 2)
	require.NoError(t, f.db.Model(&tagged).Association("Frameworks").Append(&framework))

	// case-insensitive code match
	ctx, rec := newContext(t, "/risks/?framework=iso-27001")
	require.NoError(t, f.controller.List(ctx))

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "tagged risk", body[0]["title"])
}

func TestListRejectsMalformedProjectFilter(t *testing.T) {
	f := newFixture(t)

	ctx, _ := newContext(t, "/risks/?project=not-a-uuid")
	err := f.controller.List(ctx)

	httpErr := &echo.HTTPError{}
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}

func TestCreateReportsFieldLevelValidationErrors(t *testing.T) {
	f := newFixture(t)

	ctx, _ := newJSONContext(t, "/risks/", `{"impact": 99}`)
	err := f.controller.Create(ctx)

	httpErr := &echo.HTTPError{}
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)

	message, ok := httpErr.Message.(echo.Map)
	require.True(t, ok)
	assert.Equal(t, "validation failed", message["message"])

	fields, ok := message["fields"].(echo.Map)
	require.True(t, ok)
	assert.Equal(t, "failed on the required rule", fields["title"])
	assert.Equal(t, "failed on the lte=5 rule", fields["impact"])
}

func TestSummaryAggregatesStatusAndSeverity(t *testing.T) {
	f := newFixture(t)
	seedRisk(t, f, "critical one", models.RiskStatusIdentified, 5, 5)
	seedRisk(t, f, "critical two", models.RiskStatusMitigating, 4, 5)
	seedRisk(t, f, "very low", models.RiskStatusIdentified, 1, 1)

	ctx, rec := newContext(t, "/risks/summary/")
	require.NoError(t, f.controller.Summary(ctx))

	var body struct {
		TotalRisks int64 `json:"totalRisks"`
		ByStatus   []struct {
			Status string `json:"status"`
			Count  int64  `json:"count"`
		} `json:"byStatus"`
		BySeverity map[string]int `json:"bySeverity"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, int64(3), body.TotalRisks)
	require.Len(t, body.ByStatus, 2)
	assert.Equal(t, "identified", body.ByStatus[0].Status)
	assert.Equal(t, int64(2), body.ByStatus[0].Count)
	assert.Equal(t, "mitigating", body.ByStatus[1].Status)
	assert.Equal(t, int64(1), body.ByStatus[1].Count)
	assert.Equal(t, 2, body.BySeverity["Critical"])
	assert.Equal(t, 1, body.BySeverity["Very Low"])
}

func TestSummaryOnEmptyDatabase(t *testing.T) {
	f := newFixture(t)

	ctx, rec := newContext(t, "/risks/summary/")
	require.NoError(t, f.controller.Summary(ctx))

	var body struct {
		TotalRisks int64            `json:"totalRisks"`
		ByStatus   []map[string]any `json:"byStatus"`
		BySeverity map[string]int   `json:"bySeverity"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Zero(t, body.TotalRisks)
	assert.Empty(t, body.ByStatus)
	assert.NotNil(t, body.ByStatus)
	assert.Empty(t, body.BySeverity)
}

func TestSummaryRespectsFilters(t *testing.T) {
	f := newFixture(t)
	seedRisk(t, f, "open critical", models.RiskStatusIdentified, 5, 5)
	seedRisk(t, f, "closed critical", models.RiskStatusClosed, 5, 5)

	ctx, rec := newContext(t, "/risks/summary/?status=identified")
	require.NoError(t, f.controller.Summary(ctx))

	var body struct {
		TotalRisks int64          `json:"totalRisks"`
		BySeverity map[string]int `json:"bySeverity"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, int64(1), body.TotalRisks)
	assert.Equal(t, 1, body.BySeverity["Critical"])
}
