package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ValueType tags the payload carried by a FieldValue
type ValueType string

const (
	ValueTypeNumber ValueType = "number"
	ValueTypeText   ValueType = "text"
	ValueTypeDate   ValueType = "date"
)

// FieldValue is a tagged union over number, text and date
// Only the payload matching Type is meaningful
// The tag travels with the value so a stored value stays readable after its field definition changes
type FieldValue struct {
	Type   ValueType
	Number float64
	Text   string
	Date   time.Time
}

// NumberValue builds a number FieldValue
func NumberValue(v float64) FieldValue {
	return FieldValue{Type: ValueTypeNumber, Number: v}
}

// TextValue builds a text FieldValue
func TextValue(s string) FieldValue {
	return FieldValue{Type: ValueTypeText, Text: s}
}

// DateValue builds a date FieldValue
func DateValue(t time.Time) FieldValue {
	return FieldValue{Type: ValueTypeDate, Date: t}
}

// AsNumber reads the value as a finite number
// Text is parsed; dates, unparsable text and NaN or infinities yield ok=false
func (v FieldValue) AsNumber() (float64, bool) {
	var n float64
	switch v.Type {
	case ValueTypeNumber:
		n = v.Number
	case ValueTypeText:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// AsText reads the value as text
// Numbers are formatted, dates are not text
func (v FieldValue) AsText() (string, bool) {
	switch v.Type {
	case ValueTypeText:
		return v.Text, true
	case ValueTypeNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64), true
	default:
		return "", false
	}
}

// Equal compares tag and payload
func (v FieldValue) Equal(o FieldValue) bool {
	if v.Type != o.Type {
		return false
	}
	switch v.Type {
	case ValueTypeNumber:
		return v.Number == o.Number
	case ValueTypeText:
		return v.Text == o.Text
	case ValueTypeDate:
		return v.Date.Equal(o.Date)
	}
	return true
}

// String renders the payload for logs and reports
func (v FieldValue) String() string {
	switch v.Type {
	case ValueTypeNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case ValueTypeText:
		return v.Text
	case ValueTypeDate:
		return v.Date.Format(time.RFC3339)
	}
	return ""
}

type taggedValue struct {
	Type  ValueType       `json:"type"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON encodes the value as {"type": ..., "value": ...}; dates use RFC 3339
func (v FieldValue) MarshalJSON() ([]byte, error) {
	var payload any
	switch v.Type {
	case ValueTypeNumber:
		if math.IsNaN(v.Number) || math.IsInf(v.Number, 0) {
			payload = 0
		} else {
			payload = v.Number
		}
	case ValueTypeText:
		payload = v.Text
	case ValueTypeDate:
		payload = v.Date.UTC().Format(time.RFC3339Nano)
	default:
		return json.Marshal(taggedValue{Type: ValueTypeText, Value: json.RawMessage(`""`)})
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(taggedValue{Type: v.Type, Value: raw})
}

// UnmarshalJSON decodes the tagged form
// An unknown tag decodes to empty text
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var tv taggedValue
	if err := json.Unmarshal(data, &tv); err != nil {
		return err
	}
	switch tv.Type {
	case ValueTypeNumber:
		var n float64
		if err := json.Unmarshal(tv.Value, &n); err != nil {
			return fmt.Errorf("decode number value: %w", err)
		}
		*v = NumberValue(n)
	case ValueTypeText:
		var s string
		if err := json.Unmarshal(tv.Value, &s); err != nil {
			return fmt.Errorf("decode text value: %w", err)
		}
		*v = TextValue(s)
	case ValueTypeDate:
		var s string
		if err := json.Unmarshal(tv.Value, &s); err != nil {
			return fmt.Errorf("decode date value: %w", err)
		}
		t, err := ParseTimestamp(s)
		if err != nil {
			return fmt.Errorf("decode date value: %w", err)
		}
		*v = DateValue(t)
	default:
		*v = TextValue("")
	}
	return nil
}

// ParseTimestamp accepts RFC 3339 timestamps and plain yyyy-mm-dd dates
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}
