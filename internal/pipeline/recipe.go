package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
)

// Recipe describes a complete run: which records to load, the stages
// to pass them through, and where to write the result.
type Recipe struct {
	// Source is the data source to load, e.g. "twitter".
	Source string

	// Folder optionally narrows the source to one sub-folder.
	Folder string

	// Stages run in order.
	Stages []StageConfig

	// Export is the output file. Empty leaves the result unwritten.
	Export string
}

// StageConfig names a stage and carries its settings.
type StageConfig struct {
	Name   string
	Config map[string]any
}

// LoadRecipe reads a recipe from a YAML (.yaml, .yml) or TOML (.toml) file.
func LoadRecipe(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipe: %w", err)
	}
	return ParseRecipe(data, strings.TrimPrefix(filepath.Ext(path), "."))
}

// ParseRecipe decodes a recipe in the given format ("yaml", "yml" or "toml").
func ParseRecipe(data []byte, format string) (*Recipe, error) {
	raw := make(map[string]any)

	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: parse yaml recipe: %v", domain.ErrInvalidInput, err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: parse toml recipe: %v", domain.ErrInvalidInput, err)
		}
	default:
		return nil, fmt.Errorf("%w: recipe format %q", domain.ErrUnsupportedFormat, format)
	}

	return decodeRecipe(raw)
}

// Build creates the recipe's pipeline from the registry.
func (r *Recipe) Build(registry *Registry) (*Pipeline, error) {
	p := NewPipeline()
	for i, sc := range r.Stages {
		stage, err := registry.Build(sc.Name, sc.Config)
		if err != nil {
			return nil, fmt.Errorf("stages[%d]: %w", i, err)
		}
		p.Add(stage)
	}
	return p, nil
}

func decodeRecipe(raw map[string]any) (*Recipe, error) {
	r := &Recipe{
		Source: getString(raw, "source"),
		Folder: fmt.Sprint(valueOr(raw["folder"], "")),
		Export: getString(raw, "export"),
	}
	if r.Source == "" {
		return nil, fmt.Errorf("%w: recipe needs a source", domain.ErrInvalidInput)
	}

	var stages []any
	switch v := raw["stages"].(type) {
	case nil:
	case []any:
		stages = v
	case []map[string]any:
		for _, m := range v {
			stages = append(stages, m)
		}
	default:
		return nil, fmt.Errorf("%w: stages must be a list", domain.ErrInvalidInput)
	}

	for i, item := range stages {
		cfg, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: stages[%d] must be a table", domain.ErrInvalidInput, i)
		}
		name := getString(cfg, "name")
		if name == "" {
			return nil, fmt.Errorf("%w: stages[%d] needs a name", domain.ErrInvalidInput, i)
		}

		settings := make(map[string]any, len(cfg)-1)
		for k, v := range cfg {
			if k != "name" {
				settings[k] = v
			}
		}
		r.Stages = append(r.Stages, StageConfig{Name: name, Config: settings})
	}

	return r, nil
}

func valueOr(v any, def any) any {
	if v == nil {
		return def
	}
	return v
}
