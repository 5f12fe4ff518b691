package domain

// AppSettings holds all user-configurable application settings.
type AppSettings struct {
	Data     DataSettings
	Sample   SampleSettings
	Analysis AnalysisSettings
	Output   OutputSettings
}

// DataSettings locates the datasets on disk.
type DataSettings struct {
	// Dir is the root data directory. Each data source lives in a
	// sub-folder named after it, e.g. <Dir>/twitter.
	Dir string
}

// IsConfigured returns true if a data directory is set.
func (d DataSettings) IsConfigured() bool {
	return d.Dir != ""
}

// SampleSettings configures random sampling.
type SampleSettings struct {
	// Seed is used when a sample does not name one.
	Seed int64
}

// AnalysisSettings configures external statistical scripts.
type AnalysisSettings struct {
	// Command runs analysis scripts, e.g. "Rscript".
	Command string
}

// OutputSettings configures how records are printed.
type OutputSettings struct {
	// Limit caps the number of records printed by list commands.
	// Zero prints everything.
	Limit int
}

// FieldMapping holds the JMESPath expressions that pull record fields
// out of a raw dataset entry. An empty expression leaves the field unset.
type FieldMapping struct {
	ID          string
	TextContent string
	Creator     string
	Timestamp   string
	URL         string
}

// Merge returns m with every non-empty expression of override applied.
func (m FieldMapping) Merge(override FieldMapping) FieldMapping {
	if override.ID != "" {
		m.ID = override.ID
	}
	if override.TextContent != "" {
		m.TextContent = override.TextContent
	}
	if override.Creator != "" {
		m.Creator = override.Creator
	}
	if override.Timestamp != "" {
		m.Timestamp = override.Timestamp
	}
	if override.URL != "" {
		m.URL = override.URL
	}
	return m
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Sample: SampleSettings{
			Seed: DefaultSampleSeed,
		},
		Analysis: AnalysisSettings{
			Command: "Rscript",
		},
		Output: OutputSettings{
			Limit: 20,
		},
	}
}
