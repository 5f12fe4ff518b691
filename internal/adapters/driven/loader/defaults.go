package loader

import (
	"github.com/custodia-labs/hybra-cli/internal/core/domain"
	"github.com/custodia-labs/hybra-cli/internal/core/ports/driven"
)

// Built-in source names.
const (
	SourceTwitter  = "twitter"
	SourceFacebook = "facebook"
	SourceMedia    = "media"
)

// DefaultMappings returns the field mappings of the built-in sources.
func DefaultMappings() map[string]domain.FieldMapping {
	return map[string]domain.FieldMapping{
		SourceTwitter: {
			ID:          "id_str",
			TextContent: "text || full_text",
			Creator:     "user.screen_name",
			Timestamp:   "created_at",
			URL:         "entities.urls[0].expanded_url",
		},
		SourceFacebook: {
			ID:          "id",
			TextContent: "message",
			Creator:     "from.name",
			Timestamp:   "created_time",
			URL:         "link || permalink_url",
		},
		SourceMedia: {
			ID:          "id",
			TextContent: "body || content",
			Creator:     "author || source",
			Timestamp:   "published || date",
			URL:         "url",
		},
	}
}

// RegisterDefaults registers a JSON loader for every built-in source.
// overrides, when not nil, returns configured mapping overrides for a
// source; its non-empty expressions replace the defaults.
func RegisterDefaults(r driven.LoaderRegistry, dates driven.DateParser, overrides func(source string) domain.FieldMapping) error {
	for name, mapping := range DefaultMappings() {
		if overrides != nil {
			mapping = mapping.Merge(overrides(name))
		}

		opts := []Option{WithDateParser(dates)}
		if name == SourceMedia {
			opts = append(opts, WithHTMLText())
		}

		l, err := NewJSONLoader(name, mapping, opts...)
		if err != nil {
			return err
		}
		r.Register(l)
	}
	return nil
}
