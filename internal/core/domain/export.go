package domain

// ExportResult reports the outcome of an export.
// A failed export is not an error to the caller; the failure is
// carried here alongside the formats that would have worked.
type ExportResult struct {
	// Path is the requested output path.
	Path string

	// Format is the extension the exporter was chosen by.
	Format string

	// Records is the number of records written.
	Records int

	// Err is the failure, if any.
	Err error

	// Supported lists every registered format.
	Supported []string
}

// OK reports whether the export succeeded.
func (r ExportResult) OK() bool {
	return r.Err == nil
}
