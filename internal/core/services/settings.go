package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
	"github.com/custodia-labs/hybra-cli/internal/core/ports/driven"
	"github.com/custodia-labs/hybra-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDataDir         = "data.dir"
	keySampleSeed      = "sample.seed"
	keyAnalysisCommand = "analysis.command"
	keyOutputLimit     = "output.limit"

	// sourcesPrefix starts per-source field mapping keys,
	// e.g. "sources.twitter.creator".
	sourcesPrefix = "sources."
)

// Field names accepted after sources.<name>.
const (
	fieldID          = "id"
	fieldTextContent = "text_content"
	fieldCreator     = "creator"
	fieldTimestamp   = "timestamp"
	fieldURL         = "url"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, filling unset values
// with defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	return &domain.AppSettings{
		Data: domain.DataSettings{
			Dir: s.configStore.GetString(keyDataDir),
		},
		Sample: domain.SampleSettings{
			Seed: s.getSeed(defaults.Sample.Seed),
		},
		Analysis: domain.AnalysisSettings{
			Command: s.getString(keyAnalysisCommand, defaults.Analysis.Command),
		},
		Output: domain.OutputSettings{
			Limit: s.getInt(keyOutputLimit, defaults.Output.Limit),
		},
	}, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings.Data.Dir != "" {
		if err := s.configStore.Set(keyDataDir, settings.Data.Dir); err != nil {
			return fmt.Errorf("save data dir: %w", err)
		}
	}
	if err := s.configStore.Set(keySampleSeed, settings.Sample.Seed); err != nil {
		return fmt.Errorf("save sample seed: %w", err)
	}
	if err := s.configStore.Set(keyAnalysisCommand, settings.Analysis.Command); err != nil {
		return fmt.Errorf("save analysis command: %w", err)
	}
	if err := s.configStore.Set(keyOutputLimit, settings.Output.Limit); err != nil {
		return fmt.Errorf("save output limit: %w", err)
	}
	return nil
}

// Set updates a single setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	switch key {
	case keyDataDir, keyAnalysisCommand:
		return s.configStore.Set(key, value)
	case keySampleSeed:
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, seed)
	case keyOutputLimit:
		limit, err := strconv.Atoi(value)
		if err != nil || limit < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, limit)
	}

	if source, field, ok := splitSourceKey(key); ok && source != "" && isMappingField(field) {
		return s.configStore.Set(key, value)
	}
	return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
}

// Keys returns the settable keys, sorted. Per-source mapping keys are
// listed once as a pattern.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keyAnalysisCommand,
		keyDataDir,
		keyOutputLimit,
		keySampleSeed,
		sourcesPrefix + "<name>.{" + strings.Join(mappingFields(), ",") + "}",
	}
	sort.Strings(keys)
	return keys
}

// FieldMapping returns the configured overrides for a source's field
// mapping. Unset fields are empty.
func (s *SettingsService) FieldMapping(source string) domain.FieldMapping {
	prefix := sourcesPrefix + source + "."
	return domain.FieldMapping{
		ID:          s.configStore.GetString(prefix + fieldID),
		TextContent: s.configStore.GetString(prefix + fieldTextContent),
		Creator:     s.configStore.GetString(prefix + fieldCreator),
		Timestamp:   s.configStore.GetString(prefix + fieldTimestamp),
		URL:         s.configStore.GetString(prefix + fieldURL),
	}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getSeed(defaultVal int64) int64 {
	val, exists := s.configStore.Get(keySampleSeed)
	if !exists {
		return defaultVal
	}
	switch v := val.(type) {
	case int64:
		return v
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
		return defaultVal
	}
	return int64(s.configStore.GetInt(keySampleSeed))
}

// splitSourceKey splits "sources.<name>.<field>".
func splitSourceKey(key string) (source, field string, ok bool) {
	rest, ok := strings.CutPrefix(key, sourcesPrefix)
	if !ok {
		return "", "", false
	}
	i := strings.LastIndex(rest, ".")
	if i < 0 {
		return "", "", false
	}
	return rest[:i], rest[i+1:], true
}

func mappingFields() []string {
	return []string{fieldTextContent, fieldCreator, fieldTimestamp, fieldURL, fieldID}
}

func isMappingField(field string) bool {
	for _, f := range mappingFields() {
		if f == field {
			return true
		}
	}
	return false
}
