package catalog_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskstack/riskstack/internal/core/catalog"
	"github.com/riskstack/riskstack/internal/database/models"
	"github.com/riskstack/riskstack/internal/database/repositories"
	"github.com/riskstack/riskstack/internal/testutil"
)

func writeSampleCatalog(t *testing.T, controlTitle string) string {
	t.Helper()

	payload := map[string]any{
		"response": map[string]any{
			"elements": map[string]any{
				"elements": []map[string]any{
					{
						"element_type":       "control",
						"element_identifier": "AC-01",
						"title":              controlTitle,
					},
					{
						"element_type":       "control_enhancement",
						"element_identifier": "AC-01(01)",
						"title":              "Access Control Enhancement",
					},
					{
						"element_type":       "discussion",
						"element_identifier": "AC-01-discussion",
						"title":              "Narrative text",
					},
					{
						"element_type":       "control",
						"element_identifier": "   ",
						"title":              "Identifier is blank",
					},
				},
			},
		},
	}

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func TestLoadCatalogFiltersByElementType(t *testing.T) {
	path := writeSampleCatalog(t, "Access Control Policy")

	records, err := catalog.LoadCatalog(path, []string{"control"})
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "AC-01", records[0].ControlID)
	assert.Equal(t, "control", records[0].ElementType)
	assert.Equal(t, "Access Control Policy", records[0].Title)
}

func TestLoadCatalogDefaultsSkipDiscussionAndBlankIdentifiers(t *testing.T) {
	path := writeSampleCatalog(t, "Access Control Policy")

	records, err := catalog.LoadCatalog(path, nil)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "AC-01", records[0].ControlID)
	assert.Equal(t, "AC-01(01)", records[1].ControlID)
}

func TestLoadCatalogRejectsMalformedFiles(t *testing.T) {
	dir := t.TempDir()

	malformed := filepath.Join(dir, "malformed.json")
	require.NoError(t, os.WriteFile(malformed, []byte("{not json"), 0600))
	_, err := catalog.LoadCatalog(malformed, nil)
	assert.ErrorContains(t, err, "malformed catalog json")

	missingStructure := filepath.Join(dir, "missing.json")
	require.NoError(t, os.WriteFile(missingStructure, []byte(`{"response": {}}`), 0600))
	_, err = catalog.LoadCatalog(missingStructure, nil)
	assert.ErrorContains(t, err, "response.elements.elements")

	_, err = catalog.LoadCatalog(filepath.Join(dir, "does-not-exist.json"), nil)
	assert.ErrorContains(t, err, "could not read catalog file")
}

func TestImportCatalogCreatesThenUpdates(t *testing.T) {
	db := testutil.InMemoryDatabase(t)

	frameworkRepository := repositories.NewFrameworkRepository(db)
	frameworkControlRepository := repositories.NewFrameworkControlRepository(db)
	service := catalog.NewImportService(frameworkControlRepository)

	framework := models.Framework{Code: "TEST-FW", Name: "Test Framework"}
	require.NoError(t, frameworkRepository.Create(nil, &framework))

	path := writeSampleCatalog(t, "Access Control Policy")
	created, updated, err := service.ImportCatalog(path, framework, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Equal(t, 0, updated)

	count, err := frameworkControlRepository.CountByFrameworkID(framework.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	// an identical re-import reports every row as updated and creates nothing
	revised := writeSampleCatalog(t, "Access Control Policy (Revised)")
	created, updated, err = service.ImportCatalog(revised, framework, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Equal(t, 2, updated)

	count, err = frameworkControlRepository.CountByFrameworkID(framework.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	refreshed, err := frameworkControlRepository.FindByFrameworkAndControlID(nil, framework.ID, "AC-01")
	require.NoError(t, err)
	assert.Equal(t, "Access Control Policy (Revised)", refreshed.Title)
}

func TestImportCatalogFailsAtomically(t *testing.T) {
	db := testutil.InMemoryDatabase(t)

	frameworkRepository := repositories.NewFrameworkRepository(db)
	frameworkControlRepository := repositories.NewFrameworkControlRepository(db)
	service := catalog.NewImportService(frameworkControlRepository)

	framework := models.Framework{Code: "TEST-FW", Name: "Test Framework"}
	require.NoError(t, frameworkRepository.Create(nil, &framework))

	malformed := filepath.Join(t.TempDir(), "malformed.json")
	require.NoError(t, os.WriteFile(malformed, []byte("{not json"), 0600))

	created, updated, err := service.ImportCatalog(malformed, framework, nil)
	assert.Error(t, err)
	assert.Zero(t, created)
	assert.Zero(t, updated)

	count, err := frameworkControlRepository.CountByFrameworkID(framework.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestEnsureFrameworkCreatesOnFirstImport(t *testing.T) {
	db := testutil.InMemoryDatabase(t)
	frameworkRepository := repositories.NewFrameworkRepository(db)

	framework, created, err := catalog.EnsureFramework(frameworkRepository, "NIST-800-53", "NIST SP 800-53", "Security and privacy controls")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "NIST SP 800-53", framework.Name)
	assert.Equal(t, "Security and privacy controls", framework.Description)

	// the code doubles as the name when none is given
	fallback, created, err := catalog.EnsureFramework(frameworkRepository, "SOC2", "", "")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "SOC2", fallback.Name)
}

func TestEnsureFrameworkUpdatesChangedFields(t *testing.T) {
	db := testutil.InMemoryDatabase(t)
	frameworkRepository := repositories.NewFrameworkRepository(db)

	existing := models.Framework{Code: "NIST-800-53", Name: "NIST 800-53", Description: "old description"}
	require.NoError(t, frameworkRepository.Create(nil, &existing))

	framework, created, err := catalog.EnsureFramework(frameworkRepository, "NIST-800-53", "NIST SP 800-53 Rev 5", "Security and privacy controls")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing.ID, framework.ID)

	stored, err := frameworkRepository.ReadByCode("NIST-800-53")
	require.NoError(t, err)
	assert.Equal(t, "NIST SP 800-53 Rev 5", stored.Name)
	assert.Equal(t, "Security and privacy controls", stored.Description)
}

func TestEnsureFrameworkLeavesOmittedFieldsAlone(t *testing.T) {
	db := testutil.InMemoryDatabase(t)
	frameworkRepository := repositories.NewFrameworkRepository(db)

	existing := models.Framework{Code: "NIST-800-53", Name: "NIST SP 800-53", Description: "Security and privacy controls"}
	require.NoError(t, frameworkRepository.Create(nil, &existing))

	_, created, err := catalog.EnsureFramework(frameworkRepository, "NIST-800-53", "", "")
	require.NoError(t, err)
	assert.False(t, created)

	stored, err := frameworkRepository.ReadByCode("NIST-800-53")
	require.NoError(t, err)
	assert.Equal(t, "NIST SP 800-53", stored.Name)
	assert.Equal(t, "Security and privacy controls", stored.Description)
}
