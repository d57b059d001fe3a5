package csvio

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thisisprabha/networth/internal/domain"
)

// Header is the column layout of the CSV exchange format
var Header = []string{"id", "category", "name", "icon", "color", "values", "createdAt", "updatedAt"}

// ErrHeaderMismatch is returned when the first row is not Header
var ErrHeaderMismatch = errors.New("csv header does not match expected columns")

const (
	colID = iota
	colCategory
	colName
	colIcon
	colColor
	colValues
	colCreatedAt
	colUpdatedAt
)

// Result reports what an import produced
type Result struct {
	Entries  []domain.Entry
	Imported int
	Skipped  int
}

// Export writes the header and one row per entry
func Export(w io.Writer, entries []domain.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, e := range entries {
		def := e.Definition()
		values := e.Values
		if values == nil {
			values = map[string]domain.FieldValue{}
		}
		raw, err := json.Marshal(values)
		if err != nil {
			return fmt.Errorf("failed to encode values of entry %s: %w", e.ID, err)
		}
		row := []string{
			e.ID,
			string(e.Category),
			e.Name,
			def.SymbolName,
			def.Color,
			string(raw),
			e.CreatedAt.UTC().Format(time.RFC3339),
			e.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row for entry %s: %w", e.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Import reads entries from r
// Logic:
//   - An empty input yields no entries
//   - The first row must equal Header
//   - Rows that are too short or have an unknown category are skipped
//   - Malformed values JSON yields an empty value map
//   - Empty id gets a new UUID, empty name gets the category name
//   - Unparsable timestamps fall back to now
//
// Only a header mismatch or a read failure is returned as an error
func Import(r io.Reader, now time.Time) (Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Result{}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("failed to read csv header: %w", err)
	}
	if !headerMatches(header) {
		return Result{}, ErrHeaderMismatch
	}

	var res Result
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				res.Skipped++
				continue
			}
			return Result{}, fmt.Errorf("failed to read csv row: %w", err)
		}

		entry, ok := parseRow(row, now)
		if !ok {
			res.Skipped++
			continue
		}
		res.Entries = append(res.Entries, entry)
		res.Imported++
	}
	return res, nil
}

func headerMatches(header []string) bool {
	if len(header) != len(Header) {
		return false
	}
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if h != Header[i] {
			return false
		}
	}
	return true
}

func parseRow(row []string, now time.Time) (domain.Entry, bool) {
	if len(row) < len(Header) {
		return domain.Entry{}, false
	}
	category, ok := domain.ParseCategory(strings.TrimSpace(row[colCategory]))
	if !ok {
		return domain.Entry{}, false
	}

	id := strings.TrimSpace(row[colID])
	if id == "" {
		id = uuid.NewString()
	}
	name := row[colName]
	if strings.TrimSpace(name) == "" {
		name = category.Definition().Name
	}

	return domain.Entry{
		ID:        id,
		Category:  category,
		Name:      name,
		Values:    ParseValues(row[colValues]),
		CreatedAt: parseTime(row[colCreatedAt], now),
		UpdatedAt: parseTime(row[colUpdatedAt], now),
	}, true
}

func parseTime(s string, fallback time.Time) time.Time {
	t, err := domain.ParseTimestamp(s)
	if err != nil {
		return fallback
	}
	return t
}

// ParseValues decodes a values column
// Tagged {type, value} objects and untagged numbers or strings are both accepted;
// untagged strings that parse as timestamps become dates
func ParseValues(raw string) map[string]domain.FieldValue {
	values := map[string]domain.FieldValue{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return values
	}

	for key, msg := range fields {
		if v, ok := parseValue(msg); ok {
			values[key] = v
		}
	}
	return values
}

func parseValue(msg json.RawMessage) (domain.FieldValue, bool) {
	trimmed := strings.TrimSpace(string(msg))
	if trimmed == "" {
		return domain.FieldValue{}, false
	}

	switch trimmed[0] {
	case '{':
		var v domain.FieldValue
		if err := json.Unmarshal(msg, &v); err != nil {
			return domain.FieldValue{}, false
		}
		return v, true
	case '"':
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return domain.FieldValue{}, false
		}
		if t, err := domain.ParseTimestamp(s); err == nil {
			return domain.DateValue(t), true
		}
		return domain.TextValue(s), true
	default:
		var n float64
		if err := json.Unmarshal(msg, &n); err != nil {
			return domain.FieldValue{}, false
		}
		return domain.NumberValue(n), true
	}
}
