package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
)

func TestFilterCmd_RequiresSource(t *testing.T) {
	_, _, err := execute(t, "filter")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestFilterCmd_Criteria(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	stdout, _, err := execute(t, "filter", "twitter",
		"-t", "climate", "-t", "strike", "--words", "--any",
		"--author", "alice", "--domain", "example.com",
		"--after", "2020-01-01", "--before", "2020-12-31",
		"--where", "len(text_content) > 3", "--folder", "2020")

	require.NoError(t, err)
	assert.Equal(t, domain.FilterCriteria{
		Text:    domain.TextQuery{Terms: []string{"climate", "strike"}, Substrings: false, Inclusive: false},
		Authors: []string{"alice"},
		Domains: []string{"example.com"},
		After:   "2020-01-01",
		Before:  "2020-12-31",
		Where:   "len(text_content) > 3",
	}, mocks.filter.lastCriteria)
	assert.Equal(t, "2020", mocks.dataset.lastOpts.Folder)
	assert.Contains(t, stdout, "alice")
	assert.Contains(t, stdout, "example.com")
	assert.Contains(t, stdout, "Showing 1 of 1 records (2 loaded)")
}

func TestFilterCmd_TermsKeepCommas(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute(t, "filter", "twitter",
		"-t", "well, actually", "-a", "Doe, Jane", "-a", "bob")

	require.NoError(t, err)
	assert.Equal(t, []string{"well, actually"}, mocks.filter.lastCriteria.Text.Terms)
	assert.Equal(t, []string{"Doe, Jane", "bob"}, mocks.filter.lastCriteria.Authors)
}

func TestFilterCmd_DateFlagsHelp(t *testing.T) {
	assert.Equal(t, "keep records published after this time", filterCmd.Flags().Lookup("after").Usage)
	assert.Equal(t, "keep records published before this time", filterCmd.Flags().Lookup("before").Usage)
}

func TestFilterCmd_NoCriteriaPassesThrough(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	stdout, _, err := execute(t, "filter", "twitter")

	require.NoError(t, err)
	assert.Equal(t, 0, mocks.filter.applyCalls)
	assert.Equal(t, 1, mocks.filter.textCalls)
	assert.Contains(t, stdout, "Showing 2 of 2 records (2 loaded)")
}

func TestFilterCmd_JSONWithLimit(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	stdout, _, err := execute(t, "filter", "twitter", "--json", "--limit", "1")
	require.NoError(t, err)

	var got []domain.Record
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestFilterCmd_NoMatches(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	stdout, _, err := execute(t, "filter", "twitter", "-t", "nothing")

	require.NoError(t, err)
	assert.Contains(t, stdout, "No matching records.")
}

func TestFilterCmd_UnknownSource(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute(t, "filter", "myspace")

	assert.ErrorIs(t, err, domain.ErrUnknownSource)
}

func TestFilterCmd_FilterError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mocks.filter.err = domain.ErrInvalidInput

	_, _, err := execute(t, "filter", "twitter", "--where", "(")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFilterCmd_SampleUsesSettingsSeed(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mocks.settings.settings.Sample.Seed = 42

	stdout, _, err := execute(t, "filter", "twitter", "--sample", "1")

	require.NoError(t, err)
	assert.Equal(t, domain.SampleOptions{Size: 1, Seed: 42}, mocks.sample.lastOpts)
	assert.Contains(t, stdout, "Showing 1 of 1 records (2 loaded)")
}

func TestFilterCmd_SampleExplicitSeed(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute(t, "filter", "twitter", "--sample", "2", "--seed", "7")

	require.NoError(t, err)
	assert.Equal(t, int64(7), mocks.sample.lastOpts.Seed)
}

func TestFilterCmd_SampleTooLarge(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute(t, "filter", "twitter", "--sample", "5")

	assert.ErrorIs(t, err, domain.ErrSampleOutOfRange)
}

func TestFilterCmd_Export(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, stderr, err := execute(t, "filter", "twitter", "-t", "climate", "-o", "out.csv")

	require.NoError(t, err)
	assert.Equal(t, "out.csv", mocks.export.lastPath)
	assert.Equal(t, 1, mocks.export.lastRecords)
	assert.Contains(t, stderr, "Exported 1 records to out.csv")
}

func TestFilterCmd_ExportFailure(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mocks.export.err = domain.ErrUnsupportedFormat

	_, _, err := execute(t, "filter", "twitter", "-o", "out.pdf")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "exporting to out.pdf")
}
