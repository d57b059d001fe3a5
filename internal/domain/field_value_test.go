package domain

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldValue_AsNumber(t *testing.T) {
	tests := []struct {
		name   string
		value  FieldValue
		want   float64
		wantOK bool
	}{
		{name: "number", value: NumberValue(42.5), want: 42.5, wantOK: true},
		{name: "numeric text", value: TextValue(" 1200 "), want: 1200, wantOK: true},
		{name: "non-numeric text", value: TextValue("abc"), wantOK: false},
		{name: "date", value: DateValue(time.Now()), wantOK: false},
		{name: "NaN", value: NumberValue(math.NaN()), wantOK: false},
		{name: "infinite text", value: TextValue("Inf"), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.value.AsNumber()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldValue_JSON(t *testing.T) {
	t.Run("tagged wire form", func(t *testing.T) {
		at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
		raw, err := json.Marshal(map[string]FieldValue{
			"amount": NumberValue(10),
			"note":   TextValue("hi"),
			"due":    DateValue(at),
		})
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"amount": {"type": "number", "value": 10},
			"note": {"type": "text", "value": "hi"},
			"due": {"type": "date", "value": "2024-03-01T09:00:00Z"}
		}`, string(raw))
	})

	t.Run("unknown tag decodes to empty text", func(t *testing.T) {
		var v FieldValue
		require.NoError(t, json.Unmarshal([]byte(`{"type":"blob","value":[1,2]}`), &v))
		assert.Equal(t, TextValue(""), v)
	})

	t.Run("date only value", func(t *testing.T) {
		var v FieldValue
		require.NoError(t, json.Unmarshal([]byte(`{"type":"date","value":"2025-01-31"}`), &v))
		assert.Equal(t, ValueTypeDate, v.Type)
		assert.Equal(t, 31, v.Date.Day())
	})

	t.Run("mismatched payload fails", func(t *testing.T) {
		var v FieldValue
		assert.Error(t, json.Unmarshal([]byte(`{"type":"number","value":"ten"}`), &v))
	})
}
