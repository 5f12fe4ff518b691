package pipeline

import (
	"context"
	"fmt"
	"strconv"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
	"github.com/custodia-labs/hybra-cli/internal/core/ports/driving"
)

// Built-in stage names.
const (
	StageText     = "text"
	StageAuthor   = "author"
	StageDomain   = "domain"
	StageDatetime = "datetime"
	StageWhere    = "where"
	StageSample   = "sample"
)

// Services are the core services the built-in stages delegate to.
type Services struct {
	Filter driving.FilterService
	Sample driving.SampleService

	// Seed is used by sample stages that do not set one.
	Seed int64
}

// RegisterDefaults registers all built-in stages with the registry.
func RegisterDefaults(r *Registry, svc Services) {
	r.Register(StageText, func(cfg map[string]any) (Stage, error) {
		return buildText(svc.Filter, cfg)
	})
	r.Register(StageAuthor, func(cfg map[string]any) (Stage, error) {
		authors := getStrings(cfg, "authors")
		return filterStage(StageAuthor, func(records []domain.Record) []domain.Record {
			return svc.Filter.FilterAuthor(records, authors)
		}), nil
	})
	r.Register(StageDomain, func(cfg map[string]any) (Stage, error) {
		domains := getStrings(cfg, "domains")
		return filterStage(StageDomain, func(records []domain.Record) []domain.Record {
			return svc.Filter.FilterDomain(records, domains)
		}), nil
	})
	r.Register(StageDatetime, func(cfg map[string]any) (Stage, error) {
		after, before := getString(cfg, "after"), getString(cfg, "before")
		return filterStage(StageDatetime, func(records []domain.Record) []domain.Record {
			return svc.Filter.FilterDatetime(records, after, before)
		}), nil
	})
	r.Register(StageWhere, func(cfg map[string]any) (Stage, error) {
		return buildWhere(svc.Filter, cfg)
	})
	r.Register(StageSample, func(cfg map[string]any) (Stage, error) {
		return buildSample(svc.Sample, svc.Seed, cfg)
	})
}

// buildText creates a text stage.
// Supported config keys:
//   - terms ([]string): words or phrases to look for
//   - substrings (bool): match anywhere in the text (default: true)
//   - inclusive (bool): require every term (default: true)
func buildText(filter driving.FilterService, cfg map[string]any) (Stage, error) {
	query := domain.NewTextQuery(getStrings(cfg, "terms")...)
	query.Substrings = getBool(cfg, "substrings", true)
	query.Inclusive = getBool(cfg, "inclusive", true)

	return filterStage(StageText, func(records []domain.Record) []domain.Record {
		return filter.FilterText(records, query)
	}), nil
}

// buildWhere creates an expression stage. The expression is checked
// when the stage is built.
// Supported config keys:
//   - expr (string): boolean expression over the record fields
func buildWhere(filter driving.FilterService, cfg map[string]any) (Stage, error) {
	expression := getString(cfg, "expr")
	if expression == "" {
		return nil, fmt.Errorf("%w: expr is required", domain.ErrInvalidInput)
	}
	if _, err := filter.FilterWhere(nil, expression); err != nil {
		return nil, err
	}

	return NewStageFunc(StageWhere, func(_ context.Context, records []domain.Record) ([]domain.Record, error) {
		return filter.FilterWhere(records, expression)
	}), nil
}

// buildSample creates a sampling stage.
// Supported config keys:
//   - size (int): number of records to draw (required)
//   - seed (int): random seed (default: the configured seed)
//   - export (string): file the sample is also written to
func buildSample(sampler driving.SampleService, seed int64, cfg map[string]any) (Stage, error) {
	size, ok := getInt(cfg, "size")
	if !ok {
		return nil, fmt.Errorf("%w: size is required", domain.ErrInvalidInput)
	}

	opts := domain.SampleOptions{Size: size, Seed: seed, ExportFile: getString(cfg, "export")}
	if s, ok := getInt(cfg, "seed"); ok {
		opts.Seed = int64(s)
	}

	return NewStageFunc(StageSample, func(ctx context.Context, records []domain.Record) ([]domain.Record, error) {
		return sampler.Sample(ctx, records, opts)
	}), nil
}

func filterStage(name string, fn func([]domain.Record) []domain.Record) Stage {
	return NewStageFunc(name, func(_ context.Context, records []domain.Record) ([]domain.Record, error) {
		return fn(records), nil
	})
}

// getString extracts a string from generic config.
func getString(cfg map[string]any, key string) string {
	s, _ := cfg[key].(string)
	return s
}

// getStrings extracts a string list from generic config. A single
// string is treated as a one-element list.
func getStrings(cfg map[string]any, key string) []string {
	switch v := cfg[key].(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	}
	return nil
}

// getBool extracts a bool from generic config, or def when unset.
func getBool(cfg map[string]any, key string, def bool) bool {
	if b, ok := cfg[key].(bool); ok {
		return b
	}
	return def
}

// getInt extracts an int from generic config.
// Handles int, int64, float64 and numeric strings from YAML/TOML parsing.
func getInt(cfg map[string]any, key string) (int, bool) {
	switch v := cfg[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(v)
		return n, err == nil
	}
	return 0, false
}
