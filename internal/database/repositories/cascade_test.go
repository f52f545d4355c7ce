package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/riskstack/riskstack/internal/database/models"
	"github.com/riskstack/riskstack/internal/database/repositories"
	"github.com/riskstack/riskstack/internal/testutil"
)

func TestFrameworkDeleteCascadesToFrameworkControls(t *testing.T) {
	db := testutil.InMemoryDatabase(t)
	frameworkRepository := repositories.NewFrameworkRepository(db)
	frameworkControlRepository := repositories.NewFrameworkControlRepository(db)
	controlRepository := repositories.NewControlRepository(db)

	framework := models.Framework{Code: "NIST-800-53", Name: "NIST SP 800-53"}
	require.NoError(t, frameworkRepository.Create(nil, &framework))

	frameworkControl := models.FrameworkControl{
		FrameworkID: framework.ID,
		ControlID:   "AC-01",
		Title:       "Policy and Procedures",
		ElementType: "control",
	}
	require.NoError(t, frameworkControlRepository.Create(nil, &frameworkControl))

	control := models.Control{ReferenceID: "CTRL-01", Name: "Access reviews"}
	require.NoError(t, controlRepository.Create(nil, &control))
	require.NoError(t, db.Model(&control).Association("Frameworks").Append(&framework))

	require.NoError(t, frameworkRepository.Delete(nil, framework.ID))

	// catalog entries go down with the framework
	count, err := frameworkControlRepository.CountByFrameworkID(framework.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// organization controls survive, only the link is gone
	kept, err := controlRepository.Read(control.ID)
	require.NoError(t, err)
	assert.Equal(t, "CTRL-01", kept.ReferenceID)

	var links int64
	require.NoError(t, db.Table("control_frameworks").Where("control_id = ?", control.ID).Count(&links).Error)
	assert.Zero(t, links)
}

func TestRiskDeleteCascadesToFindings(t *testing.T) {
	db := testutil.InMemoryDatabase(t)
	riskRepository := repositories.NewRiskRepository(db)
	findingRepository := repositories.NewFindingRepository(db)

	risk := models.Risk{Title: "stale credentials", Likelihood: 3, Impact: 3, Status: models.RiskStatusIdentified}
	require.NoError(t, riskRepository.Create(nil, &risk))

	finding := models.Finding{Title: "rotate service accounts", RiskID: risk.ID, Status: models.FindingStatusOpen}
	require.NoError(t, findingRepository.Create(nil, &finding))

	require.NoError(t, riskRepository.Delete(nil, risk.ID))

	_, err := findingRepository.Read(finding.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProjectDeleteDetachesAssetsAndRisks(t *testing.T) {
	db := testutil.InMemoryDatabase(t)
	projectRepository := repositories.NewProjectRepository(db)
	assetRepository := repositories.NewAssetRepository(db)
	riskRepository := repositories.NewRiskRepository(db)

	project := models.Project{Name: "cloud migration", Status: models.ProjectStatusActive}
	require.NoError(t, projectRepository.Create(nil, &project))

	asset := models.Asset{Name: "billing service", AssetType: models.AssetTypeApplication, ProjectID: &project.ID}
	require.NoError(t, assetRepository.Create(nil, &asset))

	risk := models.Risk{Title: "migration downtime", Likelihood: 2, Impact: 4, Status: models.RiskStatusIdentified, ProjectID: &project.ID}
	require.NoError(t, riskRepository.Create(nil, &risk))

	require.NoError(t, projectRepository.Delete(nil, project.ID))

	keptAsset, err := assetRepository.Read(asset.ID)
	require.NoError(t, err)
	assert.Nil(t, keptAsset.ProjectID)

	keptRisk, err := riskRepository.Read(risk.ID)
	require.NoError(t, err)
	assert.Nil(t, keptRisk.ProjectID)
}

func TestDuplicateFrameworkCodeIsRejected(t *testing.T) {
	db := testutil.InMemoryDatabase(t)
	frameworkRepository := repositories.NewFrameworkRepository(db)

	first := models.Framework{Code: "SOC2", Name: "SOC 2"}
	require.NoError(t, frameworkRepository.Create(nil, &first))

	second := models.Framework{Code: "SOC2", Name: "SOC 2 again"}
	err := frameworkRepository.Create(nil, &second)
	require.Error(t, err)
}
