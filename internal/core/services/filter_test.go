package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
)

func newTestFilterService() *FilterService {
	return NewFilterService(mockDateParser{})
}

func TestFilterService_FilterText(t *testing.T) {
	tests := []struct {
		name  string
		query domain.TextQuery
		want  []string
	}{
		{"substring all", domain.NewTextQuery("cat", "dog"), []string{"1", "3"}},
		{"substring any", domain.TextQuery{Terms: []string{"cat", "dog"}, Substrings: true}, []string{"1", "2", "3", "5"}},
		{"case insensitive", domain.NewTextQuery("CAT"), []string{"1", "2", "3"}},
		{"duplicates collapse", domain.NewTextQuery("cat", "CAT", "cat"), []string{"1", "2", "3"}},
		{"whole words", domain.TextQuery{Terms: []string{"cats"}, Inclusive: true}, []string{"1", "2"}},
		{"whole words reject partial", domain.TextQuery{Terms: []string{"dog"}, Inclusive: true}, []string{}},
		{"whole words all", domain.TextQuery{Terms: []string{"dogs", "nice"}, Inclusive: true}, []string{"1"}},
		{"whole words any", domain.TextQuery{Terms: []string{"dogs", "nice"}}, []string{"1", "5"}},
		{"empty term always matches", domain.NewTextQuery(""), []string{"1", "2", "3", "4", "5"}},
		{"no terms inclusive keeps all", domain.TextQuery{Substrings: true, Inclusive: true}, []string{"1", "2", "3", "4", "5"}},
		{"no terms exclusive keeps none", domain.TextQuery{Substrings: true}, []string{}},
	}

	svc := newTestFilterService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.FilterText(fixtureRecords(), tt.query)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterService_FilterText_EndToEnd(t *testing.T) {
	records := []domain.Record{
		{ID: "a", TextContent: "cats and dogs are nice", Creator: "alice", URL: "http://www.example.com/a", Timestamp: ts("2021-01-01T00:00:00Z")},
		{ID: "b", TextContent: "only cats", Creator: "bob", URL: "http://other.org/b", Timestamp: ts("2021-01-02T00:00:00Z")},
	}
	svc := newTestFilterService()

	assert.Equal(t, []string{"a"}, ids(svc.FilterText(records, domain.NewTextQuery("cat", "dog"))))
	assert.Equal(t, []string{"a", "b"}, ids(svc.FilterText(records, domain.NewTextQuery("cat"))))
}

func TestFilterService_FilterText_UnicodeNormalisation(t *testing.T) {
	records := []domain.Record{
		{ID: "1", TextContent: "Un caf\u00e9 cr\u00e8me"},
		{ID: "2", TextContent: "Un cafe creme"},
	}
	svc := newTestFilterService()

	// "cafe" + combining acute accent is the decomposed form of "café".
	decomposed := "cafe\u0301"
	assert.Equal(t, []string{"1"}, ids(svc.FilterText(records, domain.NewTextQuery(decomposed))))
	assert.Equal(t, []string{"1"}, ids(svc.FilterText(records, domain.TextQuery{Terms: []string{decomposed}, Inclusive: true})))
}

func TestFilterService_FilterText_InclusiveSubsetOfExclusive(t *testing.T) {
	svc := newTestFilterService()
	termSets := [][]string{{"cat"}, {"cat", "dog"}, {"nice", "everywhere", "only"}, {"zzz", "cat"}}

	for _, terms := range termSets {
		for _, substrings := range []bool{true, false} {
			all := svc.FilterText(fixtureRecords(), domain.TextQuery{Terms: terms, Substrings: substrings, Inclusive: true})
			anyOf := svc.FilterText(fixtureRecords(), domain.TextQuery{Terms: terms, Substrings: substrings})
			assert.Subset(t, ids(anyOf), ids(all), "terms %v substrings %t", terms, substrings)
		}
	}
}

func TestFilterService_FilterDatetime(t *testing.T) {
	tests := []struct {
		name          string
		after, before string
		want          []string
	}{
		{"after is strict", "2020-01-01T10:00:00Z", "", []string{"2", "3", "5"}},
		{"before is strict", "", "2020-01-03T10:00:00Z", []string{"1", "2"}},
		{"between", "2020-01-01", "2020-01-03T10:00:00Z", []string{"1", "2"}},
		{"unparseable bound ignored", "garbage", "2020-01-02", []string{"1"}},
		{"empty range", "2020-03-01", "2020-01-01", []string{}},
	}

	svc := newTestFilterService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureNotices(t)
			got := svc.FilterDatetime(fixtureRecords(), tt.after, tt.before)
			assert.Equal(t, tt.want, ids(got))
			assert.Empty(t, buf.String())
		})
	}
}

func TestFilterService_FilterDatetime_NoBounds(t *testing.T) {
	svc := newTestFilterService()

	for _, bounds := range [][2]string{{"", ""}, {"garbage", "nonsense"}} {
		buf := captureNotices(t)
		got := svc.FilterDatetime(fixtureRecords(), bounds[0], bounds[1])

		assert.Equal(t, fixtureRecords(), got)
		assert.Equal(t, "No dates given for filtering!\n", buf.String())
	}
}

func TestFilterService_FilterAuthor(t *testing.T) {
	svc := newTestFilterService()

	assert.Equal(t, []string{"1", "4"}, ids(svc.FilterAuthor(fixtureRecords(), []string{"alice"})))
	assert.Equal(t, []string{"1", "4"}, ids(svc.FilterAuthor(fixtureRecords(), []string{"alice", "alice"})))
	assert.Equal(t, []string{"2", "5"}, ids(svc.FilterAuthor(fixtureRecords(), []string{"bob", "carol", "dave"})))
	assert.Empty(t, svc.FilterAuthor(fixtureRecords(), []string{"Alice"}))
}

func TestFilterService_FilterAuthor_NormalisesEncoding(t *testing.T) {
	svc := newTestFilterService()

	got := svc.FilterAuthor(fixtureRecords(), []string{"Jose\u0301"})

	assert.Equal(t, []string{"3"}, ids(got))
}

func TestFilterService_FilterAuthor_EmptyPassThrough(t *testing.T) {
	svc := newTestFilterService()
	buf := captureNotices(t)
	records := fixtureRecords()

	got := svc.FilterAuthor(records, nil)

	assert.Equal(t, records, got)
	assert.Equal(t, "No authors given for filtering!\n", buf.String())

	// The pass-through is a new slice.
	got[0].ID = "changed"
	assert.Equal(t, "1", records[0].ID)
}

func TestFilterService_FilterDomain(t *testing.T) {
	svc := newTestFilterService()

	withWWW := svc.FilterDomain(fixtureRecords(), []string{"www.example.com"})
	without := svc.FilterDomain(fixtureRecords(), []string{"example.com"})

	assert.Equal(t, []string{"1", "3"}, ids(withWWW))
	assert.Equal(t, withWWW, without)
	assert.Equal(t, []string{"1", "3"}, ids(svc.FilterDomain(fixtureRecords(), []string{"EXAMPLE.com"})))
	assert.Equal(t, []string{"2", "5"}, ids(svc.FilterDomain(fixtureRecords(), []string{"other.org", "news.example.com"})))
}

func TestFilterService_FilterDomain_MalformedURLNeverMatches(t *testing.T) {
	svc := newTestFilterService()
	records := []domain.Record{
		{ID: "1", URL: "::not a url"},
		{ID: "2", URL: "relative/path"},
		{ID: "3", URL: ""},
		{ID: "4", URL: "https://example.com:8080/x"},
	}

	assert.Empty(t, svc.FilterDomain(records, []string{"example.com", ""}))
	assert.Equal(t, []string{"4"}, ids(svc.FilterDomain(records, []string{"example.com:8080"})))
}

func TestFilterService_FilterDomain_EmptyPassThrough(t *testing.T) {
	svc := newTestFilterService()
	buf := captureNotices(t)

	got := svc.FilterDomain(fixtureRecords(), []string{})

	assert.Equal(t, fixtureRecords(), got)
	assert.Equal(t, "No domains given for filtering!\n", buf.String())
}

func TestFilterService_FilterWhere(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []string
	}{
		{"creator", `creator == "alice"`, []string{"1", "4"}},
		{"domain", `domain == "example.com"`, []string{"1", "3"}},
		{"fields", `"likes" in fields && fields.likes > 5`, []string{"4"}},
		{"source and text", `source == "media" && text_content contains "dogs"`, []string{"5"}},
		{"timestamp", `timestamp.Year() == 2020 && timestamp.YearDay() > 31`, []string{"5"}},
	}

	svc := newTestFilterService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.FilterWhere(fixtureRecords(), tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterService_FilterWhere_MissingField(t *testing.T) {
	svc := newTestFilterService()
	records := []domain.Record{
		{ID: "a", Fields: map[string]any{"retweet_count": 150}},
		{ID: "b"},
		{ID: "c", Fields: map[string]any{"retweet_count": 5}},
		{ID: "d", Fields: map[string]any{"likes": 7}},
	}

	got, err := svc.FilterWhere(records, `fields.retweet_count > 100`)

	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(got))
}

func TestFilterService_FilterWhere_CoalesceMissingField(t *testing.T) {
	svc := newTestFilterService()
	records := []domain.Record{
		{ID: "a", Fields: map[string]any{"retweet_count": 150}},
		{ID: "b"},
	}

	got, err := svc.FilterWhere(records, `(fields.retweet_count ?? 0) < 100`)

	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids(got))
}

func TestFilterService_FilterWhere_InvalidExpression(t *testing.T) {
	svc := newTestFilterService()

	for _, expression := range []string{`creator ==`, `creator`} {
		_, err := svc.FilterWhere(fixtureRecords(), expression)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, expression)
	}
}

func TestFilterService_Apply(t *testing.T) {
	svc := newTestFilterService()
	buf := captureNotices(t)

	got, err := svc.Apply(fixtureRecords(), domain.FilterCriteria{
		Text:    domain.NewTextQuery("dog"),
		Domains: []string{"www.example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, ids(got))

	got, err = svc.Apply(fixtureRecords(), domain.FilterCriteria{
		Text:    domain.NewTextQuery("dog"),
		Domains: []string{"example.com"},
		After:   "2020-01-02",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, ids(got))

	got, err = svc.Apply(fixtureRecords(), domain.FilterCriteria{
		Authors: []string{"alice"},
		Where:   `text_content != ""`,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids(got))

	assert.Empty(t, buf.String())
}

func TestFilterService_Apply_UnsetCriteria(t *testing.T) {
	svc := newTestFilterService()
	buf := captureNotices(t)

	got, err := svc.Apply(fixtureRecords(), domain.FilterCriteria{After: "garbage"})

	require.NoError(t, err)
	assert.Equal(t, fixtureRecords(), got)
	assert.Empty(t, buf.String())
}

func TestFilterService_Apply_WhereError(t *testing.T) {
	svc := newTestFilterService()

	_, err := svc.Apply(fixtureRecords(), domain.FilterCriteria{Where: "(("})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFilterService_Idempotent(t *testing.T) {
	svc := newTestFilterService()
	captureNotices(t)

	filters := map[string]func([]domain.Record) []domain.Record{
		"text": func(r []domain.Record) []domain.Record {
			return svc.FilterText(r, domain.TextQuery{Terms: []string{"cat", "dog"}, Substrings: true})
		},
		"datetime": func(r []domain.Record) []domain.Record {
			return svc.FilterDatetime(r, "2020-01-01T12:00:00Z", "")
		},
		"author": func(r []domain.Record) []domain.Record {
			return svc.FilterAuthor(r, []string{"alice", "carol"})
		},
		"domain": func(r []domain.Record) []domain.Record {
			return svc.FilterDomain(r, []string{"example.com"})
		},
	}

	for name, filter := range filters {
		t.Run(name, func(t *testing.T) {
			once := filter(fixtureRecords())
			assert.Equal(t, once, filter(once))
		})
	}
}

func TestFilterService_StableAndNonMutating(t *testing.T) {
	svc := newTestFilterService()
	captureNotices(t)
	records := fixtureRecords()

	results := [][]domain.Record{
		svc.FilterText(records, domain.TextQuery{Terms: []string{"s"}, Substrings: true}),
		svc.FilterDatetime(records, "2019-01-01", ""),
		svc.FilterAuthor(records, []string{"carol", "alice"}),
		svc.FilterDomain(records, []string{"other.org", "example.com"}),
	}

	for _, got := range results {
		pos := -1
		for _, r := range got {
			i := indexOf(records, r.ID)
			assert.Greater(t, i, pos, "order not preserved")
			pos = i
		}
	}
	assert.Equal(t, fixtureRecords(), records)
}

func indexOf(records []domain.Record, id string) int {
	for i := range records {
		if records[i].ID == id {
			return i
		}
	}
	return -1
}
