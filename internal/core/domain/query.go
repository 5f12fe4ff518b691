package domain

// DefaultSampleSeed is the seed used when a sample does not name one.
const DefaultSampleSeed int64 = 100

// TextQuery selects records by the words or phrases in their text.
type TextQuery struct {
	// Terms are the words or phrases looked for.
	Terms []string

	// Substrings accepts a term found anywhere in the text.
	// When false, a term must equal a whole word of the text.
	Substrings bool

	// Inclusive requires every term to match.
	// When false, any single matching term is enough.
	Inclusive bool
}

// NewTextQuery returns an inclusive substring query for the given terms.
func NewTextQuery(terms ...string) TextQuery {
	return TextQuery{
		Terms:      terms,
		Substrings: true,
		Inclusive:  true,
	}
}

// IsZero reports whether the query has no terms.
func (q TextQuery) IsZero() bool {
	return len(q.Terms) == 0
}

// FilterCriteria combines every filter into one selection.
// Unset criteria are skipped.
type FilterCriteria struct {
	Text    TextQuery
	Authors []string
	Domains []string
	After   string
	Before  string
	Where   string
}

// IsZero reports whether no criterion is set.
func (c FilterCriteria) IsZero() bool {
	return c.Text.IsZero() &&
		len(c.Authors) == 0 &&
		len(c.Domains) == 0 &&
		c.After == "" &&
		c.Before == "" &&
		c.Where == ""
}

// SampleOptions configures a random sample.
type SampleOptions struct {
	// Size is the number of records to draw.
	Size int

	// Seed makes the draw reproducible.
	Seed int64

	// ExportFile, when set, receives the drawn sample.
	ExportFile string
}

// NewSampleOptions returns options for a sample of the given size
// using DefaultSampleSeed.
func NewSampleOptions(size int) SampleOptions {
	return SampleOptions{Size: size, Seed: DefaultSampleSeed}
}

// LoadOptions narrows what a loader reads from a source.
type LoadOptions struct {
	// Folder is a sub-folder of the source directory, e.g. "yle".
	// Empty reads the whole source directory.
	Folder string
}
