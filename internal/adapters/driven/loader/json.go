package loader

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/jmespath/go-jmespath"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
	"github.com/custodia-labs/hybra-cli/internal/core/ports/driven"
	"github.com/custodia-labs/hybra-cli/internal/logger"
)

// Ensure JSONLoader implements the interface.
var _ driven.Loader = (*JSONLoader)(nil)

// maxLineSize bounds a single JSON Lines entry.
const maxLineSize = 16 << 20

var (
	// recordNamespace derives deterministic record IDs.
	recordNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/custodia-labs/hybra-cli/record"))

	htmlTag    = regexp.MustCompile(`<[a-zA-Z/][^>]*>`)
	identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// JSONLoader reads .json and .jsonl/.ndjson files below a directory.
// A .json file holds one entry, an array of entries, or an object
// whose "data" member is an array of entries.
type JSONLoader struct {
	name     string
	mapping  domain.FieldMapping
	compiled compiledMapping
	dates    driven.DateParser
	html     bool
}

type compiledMapping struct {
	id, text, creator, timestamp, url *jmespath.JMESPath
}

// Option configures a JSONLoader.
type Option func(*JSONLoader)

// WithDateParser sets the parser for string timestamps.
// Without one, only RFC 3339 timestamps are understood.
func WithDateParser(p driven.DateParser) Option {
	return func(l *JSONLoader) {
		l.dates = p
	}
}

// WithHTMLText reduces text that contains HTML markup to plain text.
func WithHTMLText() Option {
	return func(l *JSONLoader) {
		l.html = true
	}
}

// NewJSONLoader creates a loader for source using mapping.
// Returns ErrInvalidInput if an expression does not compile.
func NewJSONLoader(source string, mapping domain.FieldMapping, opts ...Option) (*JSONLoader, error) {
	l := &JSONLoader{name: source, mapping: mapping}
	for _, opt := range opts {
		opt(l)
	}

	var err error
	compile := func(field, expr string) *jmespath.JMESPath {
		if expr == "" || err != nil {
			return nil
		}
		var c *jmespath.JMESPath
		c, err = jmespath.Compile(expr)
		if err != nil {
			err = fmt.Errorf("%w: %s mapping for %s: %v", domain.ErrInvalidInput, field, source, err)
		}
		return c
	}
	l.compiled = compiledMapping{
		id:        compile("id", mapping.ID),
		text:      compile("text_content", mapping.TextContent),
		creator:   compile("creator", mapping.Creator),
		timestamp: compile("timestamp", mapping.Timestamp),
		url:       compile("url", mapping.URL),
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Name returns the source name.
func (l *JSONLoader) Name() string {
	return l.name
}

// Mapping returns the field mapping in use.
func (l *JSONLoader) Mapping() domain.FieldMapping {
	return l.mapping
}

// Load reads every entry of every data file under dir, in path order.
// Hidden files and directories are skipped.
func (l *JSONLoader) Load(ctx context.Context, dir string) ([]domain.Record, error) {
	var records []domain.Record

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		entries, err := readEntries(path)
		if err != nil {
			return err
		}
		if entries == nil {
			return nil
		}

		logger.Debug("%s: %d entries in %s", l.name, len(entries), path)
		for i, entry := range entries {
			r, err := l.toRecord(entry)
			if err != nil {
				return fmt.Errorf("%s entry %d: %w", path, i, err)
			}
			records = append(records, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if records == nil {
		records = []domain.Record{}
	}
	return records, nil
}

// readEntries decodes the entries of one data file. It returns nil
// without error for files that are not JSON data.
func readEntries(path string) ([]map[string]any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return decodeDocument(path, data)
	case ".jsonl", ".ndjson":
		return decodeLines(path)
	}
	return nil, nil
}

func decodeDocument(path string, data []byte) ([]map[string]any, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, path, err)
	}

	if obj, ok := doc.(map[string]any); ok {
		if list, ok := obj["data"].([]any); ok {
			doc = list
		} else {
			return []map[string]any{obj}, nil
		}
	}

	list, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s: expected an object or array", domain.ErrInvalidInput, path)
	}
	entries := make([]map[string]any, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s: entry %d is not an object", domain.ErrInvalidInput, path, i)
		}
		entries = append(entries, obj)
	}
	return entries, nil
}

func decodeLines(path string) ([]map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries := []map[string]any{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal(text, &obj); err != nil {
			return nil, fmt.Errorf("%w: %s:%d: %v", domain.ErrInvalidInput, path, line, err)
		}
		entries = append(entries, obj)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return entries, nil
}

// toRecord maps one raw entry onto a record.
func (l *JSONLoader) toRecord(entry map[string]any) (domain.Record, error) {
	r := domain.Record{Source: l.name}

	var err error
	if r.TextContent, err = l.search(l.compiled.text, entry); err != nil {
		return r, err
	}
	if r.Creator, err = l.search(l.compiled.creator, entry); err != nil {
		return r, err
	}
	if r.URL, err = l.search(l.compiled.url, entry); err != nil {
		return r, err
	}
	if r.ID, err = l.search(l.compiled.id, entry); err != nil {
		return r, err
	}
	if r.Timestamp, err = l.timestamp(entry); err != nil {
		return r, err
	}

	if l.html && htmlTag.MatchString(r.TextContent) {
		r.TextContent = htmlToText(r.TextContent)
	}
	if r.ID == "" {
		r.ID = recordID(&r)
	}
	r.Fields = l.extraFields(entry)
	return r, nil
}

func (l *JSONLoader) search(expr *jmespath.JMESPath, entry map[string]any) (string, error) {
	if expr == nil {
		return "", nil
	}
	v, err := expr.Search(entry)
	if err != nil {
		return "", fmt.Errorf("%s mapping: %w", l.name, err)
	}
	return stringify(v), nil
}

func (l *JSONLoader) timestamp(entry map[string]any) (time.Time, error) {
	if l.compiled.timestamp == nil {
		return time.Time{}, nil
	}
	v, err := l.compiled.timestamp.Search(entry)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s timestamp mapping: %w", l.name, err)
	}

	switch ts := v.(type) {
	case float64:
		return epoch(ts), nil
	case string:
		if n, err := strconv.ParseFloat(ts, 64); err == nil {
			return epoch(n), nil
		}
		if l.dates != nil {
			t, _ := l.dates.Parse(ts)
			return t, nil
		}
		t, _ := time.Parse(time.RFC3339, ts)
		return t, nil
	}
	return time.Time{}, nil
}

// extraFields copies the entry without the top-level keys that were
// mapped onto record fields.
func (l *JSONLoader) extraFields(entry map[string]any) map[string]any {
	mapped := make(map[string]struct{})
	for _, expr := range []string{l.mapping.ID, l.mapping.TextContent, l.mapping.Creator, l.mapping.Timestamp, l.mapping.URL} {
		for _, part := range strings.Split(expr, "||") {
			if part = strings.TrimSpace(part); identifier.MatchString(part) {
				mapped[part] = struct{}{}
			}
		}
	}

	fields := make(map[string]any, len(entry))
	for k, v := range entry {
		if _, ok := mapped[k]; !ok {
			fields[k] = v
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// epoch converts Unix seconds, or milliseconds for large values, to UTC.
func epoch(n float64) time.Time {
	if n > 1e12 {
		return time.UnixMilli(int64(n)).UTC()
	}
	return time.Unix(int64(n), 0).UTC()
}

func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// htmlToText returns the visible text of an HTML fragment with
// whitespace collapsed.
func htmlToText(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	doc.Find("script, style").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// recordID derives a stable ID from the record's identifying fields.
func recordID(r *domain.Record) string {
	var ts string
	if r.HasTimestamp() {
		ts = r.Timestamp.UTC().Format(time.RFC3339Nano)
	}
	key := strings.Join([]string{r.Source, r.URL, ts, r.TextContent}, "\x00")
	return uuid.NewSHA1(recordNamespace, []byte(key)).String()
}
