package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
)

func writeRecipe(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunCmd_YAML(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeRecipe(t, "climate.yaml", `source: twitter
folder: "2020"
stages:
  - name: text
    terms: [climate]
export: climate.csv
`)

	stdout, stderr, err := execute(t, "run", path)

	require.NoError(t, err)
	assert.Equal(t, "2020", mocks.dataset.lastOpts.Folder)
	assert.Equal(t, "climate.csv", mocks.export.lastPath)
	assert.Contains(t, stderr, "Exported 1 records to climate.csv")
	assert.Contains(t, stdout, "1 of 2 records kept by 1 stages")
}

func TestRunCmd_TOMLWithExportOverride(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeRecipe(t, "sample.toml", `source = "twitter"
export = "ignored.csv"

[[stages]]
name = "sample"
size = 1
seed = 9
`)

	stdout, _, err := execute(t, "run", path, "-o", "override.json")

	require.NoError(t, err)
	assert.Equal(t, "override.json", mocks.export.lastPath)
	assert.Equal(t, int64(9), mocks.sample.lastOpts.Seed)
	assert.Contains(t, stdout, "1 of 2 records kept by 1 stages")
}

func TestRunCmd_UnknownStage(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeRecipe(t, "bad.yaml", "source: twitter\nstages:\n  - name: translate\n")

	_, _, err := execute(t, "run", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "stages[0]")
}

func TestRunCmd_StageError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeRecipe(t, "big.yaml", "source: twitter\nstages:\n  - name: sample\n    size: 10\n")

	_, _, err := execute(t, "run", path)

	assert.ErrorIs(t, err, domain.ErrSampleOutOfRange)
	assert.Contains(t, err.Error(), "stage sample")
}

func TestRunCmd_MissingRecipe(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute(t, "run", filepath.Join(t.TempDir(), "none.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read recipe")
}
