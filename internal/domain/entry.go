package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is a user-recorded asset, liability or coverage item
// Values are keyed by FieldDefinition.Key
// Calculators treat entries as immutable
type Entry struct {
	ID        string
	Category  Category
	Name      string
	Values    map[string]FieldValue
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Definition returns the registry definition of the entry's category
func (e Entry) Definition() CategoryDefinition {
	return Definition(e.Category)
}

// Number reads a numeric field
// Text is parsed; anything else reads as 0
func (e Entry) Number(key string) float64 {
	v, ok := e.Values[key]
	if !ok {
		return 0
	}
	n, ok := v.AsNumber()
	if !ok {
		return 0
	}
	return n
}

// Text reads a text field
// Numbers are formatted; anything else reads as ""
func (e Entry) Text(key string) string {
	v, ok := e.Values[key]
	if !ok {
		return ""
	}
	s, _ := v.AsText()
	return s
}

// Date reads a date field
func (e Entry) Date(key string) (time.Time, bool) {
	v, ok := e.Values[key]
	if !ok || v.Type != ValueTypeDate {
		return time.Time{}, false
	}
	return v.Date, true
}

// Clone returns a copy that shares no map with the receiver
func (e Entry) Clone() Entry {
	out := e
	out.Values = make(map[string]FieldValue, len(e.Values))
	for k, v := range e.Values {
		out.Values[k] = v
	}
	return out
}

// Validate checks the invariants a stored entry must satisfy
func (e Entry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: id cannot be empty", ErrInvalidEntry)
	}
	if _, ok := ParseCategory(string(e.Category)); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, e.Category)
	}
	return nil
}

// NewDraft builds a new entry for category seeded with every field's default value
// For personal belongings the selected option's default number seeds the amount field
func NewDraft(category Category, now time.Time) Entry {
	def := Definition(category)
	values := make(map[string]FieldValue, len(def.Fields))
	for _, f := range def.Fields {
		values[f.Key] = f.DefaultValue(now)
	}

	if category == CategoryPersonalAssets {
		if typeField, ok := def.Field(FieldAssetType); ok {
			selected, _ := values[FieldAssetType].AsText()
			if opt, ok := typeField.Option(selected); ok && opt.DefaultNumber != nil {
				values[FieldAssetValue] = NumberValue(*opt.DefaultNumber)
			}
		}
	}

	return Entry{
		ID:        uuid.NewString(),
		Category:  def.Category,
		Name:      def.Name,
		Values:    values,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// WithValues returns a copy of the entry with values overlaid on top of the existing ones
func (e Entry) WithValues(values map[string]FieldValue) Entry {
	out := e.Clone()
	for k, v := range values {
		out.Values[k] = v
	}
	return out
}
