package pipeline

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
	"github.com/custodia-labs/hybra-cli/internal/core/services"
	"github.com/custodia-labs/hybra-cli/internal/logger"
)

type dateOnlyParser struct{}

func (dateOnlyParser) Parse(s string) (time.Time, bool) {
	t, err := time.Parse(time.DateOnly, s)
	return t, err == nil
}

func defaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r, Services{
		Filter: services.NewFilterService(dateOnlyParser{}),
		Sample: services.NewSampleService(nil),
		Seed:   domain.DefaultSampleSeed,
	})
	return r
}

func corpus() []domain.Record {
	day := func(d int) time.Time { return time.Date(2021, 3, d, 12, 0, 0, 0, time.UTC) }
	return []domain.Record{
		{ID: "1", TextContent: "cats and dogs", Creator: "alice", URL: "https://www.yle.fi/a", Timestamp: day(1)},
		{ID: "2", TextContent: "only cats", Creator: "bob", URL: "https://hs.fi/b", Timestamp: day(2)},
		{ID: "3", TextContent: "dogs", Creator: "alice", URL: "https://yle.fi/c", Timestamp: day(3)},
		{ID: "4", TextContent: "birds", Creator: "carol", URL: "https://hs.fi/d", Timestamp: day(4)},
	}
}

func runStage(t *testing.T, name string, cfg map[string]any) []string {
	t.Helper()
	stage, err := defaultRegistry().Build(name, cfg)
	require.NoError(t, err)

	out, err := stage.Run(context.Background(), corpus())
	require.NoError(t, err)

	ids := make([]string, len(out))
	for i, r := range out {
		ids[i] = r.ID
	}
	return ids
}

func TestRegisterDefaults_Names(t *testing.T) {
	assert.Equal(t,
		[]string{"author", "datetime", "domain", "sample", "text", "where"},
		defaultRegistry().Names())
}

func TestDefaultStages(t *testing.T) {
	tests := []struct {
		name  string
		stage string
		cfg   map[string]any
		want  []string
	}{
		{"text defaults", StageText, map[string]any{"terms": []any{"cat", "dog"}}, []string{"1"}},
		{"text any", StageText, map[string]any{"terms": []any{"cat", "dog"}, "inclusive": false}, []string{"1", "2", "3"}},
		{"text words", StageText, map[string]any{"terms": "cat", "substrings": false}, []string{}},
		{"author", StageAuthor, map[string]any{"authors": []any{"alice"}}, []string{"1", "3"}},
		{"domain", StageDomain, map[string]any{"domains": []string{"www.yle.fi"}}, []string{"1", "3"}},
		{"datetime", StageDatetime, map[string]any{"after": "2021-03-02", "before": "2021-03-04"}, []string{"2", "3"}},
		{"where", StageWhere, map[string]any{"expr": `creator != "alice"`}, []string{"2", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runStage(t, tt.stage, tt.cfg))
		})
	}
}

func TestDefaultStages_EmptyCriteriaPassThrough(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	assert.Equal(t, []string{"1", "2", "3", "4"}, runStage(t, StageAuthor, nil))
	assert.Equal(t, "No authors given for filtering!\n", buf.String())
}

func TestSampleStage(t *testing.T) {
	first := runStage(t, StageSample, map[string]any{"size": 2})
	second := runStage(t, StageSample, map[string]any{"size": int64(2)})
	seeded := runStage(t, StageSample, map[string]any{"size": 4, "seed": 5})

	assert.Len(t, first, 2)
	assert.Equal(t, first, second)
	assert.ElementsMatch(t, []string{"1", "2", "3", "4"}, seeded)
}

func TestSampleStage_OutOfRange(t *testing.T) {
	stage, err := defaultRegistry().Build(StageSample, map[string]any{"size": 10})
	require.NoError(t, err)

	_, err = NewPipeline(stage).Run(context.Background(), corpus())

	assert.ErrorIs(t, err, domain.ErrSampleOutOfRange)
}

func TestDefaultStages_InvalidConfig(t *testing.T) {
	r := defaultRegistry()

	_, err := r.Build(StageSample, map[string]any{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = r.Build(StageWhere, map[string]any{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = r.Build(StageWhere, map[string]any{"expr": "creator =="})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
