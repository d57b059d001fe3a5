package csvio

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thisisprabha/networth/internal/domain"
)

var now = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

const header = "id,category,name,icon,color,values,createdAt,updatedAt\n"

func TestExportImport(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	due := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	entries := []domain.Entry{
		{
			ID:       "card-1",
			Category: domain.CategoryCreditCard,
			Name:     "Travel, rewards \"gold\"",
			Values: map[string]domain.FieldValue{
				domain.FieldDebtBalance:    domain.NumberValue(12500.5),
				domain.FieldIssuer:         domain.TextValue("HDFC"),
				domain.FieldPaymentDueDate: domain.DateValue(due),
			},
			CreatedAt: created,
			UpdatedAt: created.Add(time.Hour),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, entries))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.TrimSpace(header), lines[0])
	assert.Contains(t, lines[1], "creditcard,pink")

	res, err := Import(&buf, now)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 0, res.Skipped)
	require.Len(t, res.Entries, 1)

	got := res.Entries[0]
	assert.Equal(t, "card-1", got.ID)
	assert.Equal(t, "Travel, rewards \"gold\"", got.Name)
	assert.Equal(t, 12500.5, got.Number(domain.FieldDebtBalance))
	assert.Equal(t, "HDFC", got.Text(domain.FieldIssuer))
	gotDue, ok := got.Date(domain.FieldPaymentDueDate)
	require.True(t, ok)
	assert.True(t, due.Equal(gotDue))
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestImport_SkipsBadRows(t *testing.T) {
	input := header +
		`a,stocks,Index fund,,,"{""stockValue"":{""type"":""number"",""value"":1000}}",2024-01-01T00:00:00Z,2024-01-01T00:00:00Z` + "\n" +
		`b,crypto,Coins,,,"{}",2024-01-01T00:00:00Z,2024-01-01T00:00:00Z` + "\n" +
		`c,gold,short row` + "\n" +
		`d,savings,Broken json,,,"{not json",2024-01-01T00:00:00Z,2024-01-01T00:00:00Z` + "\n"

	res, err := Import(strings.NewReader(input), now)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 2, res.Skipped)

	require.Len(t, res.Entries, 2)
	assert.Equal(t, 1000.0, res.Entries[0].Number(domain.FieldStockValue))
	assert.Equal(t, "d", res.Entries[1].ID)
	assert.Empty(t, res.Entries[1].Values)
}

func TestImport_Defaults(t *testing.T) {
	input := header + `,bonds,,,,"{}",yesterday,` + "\n"

	res, err := Import(strings.NewReader(input), now)
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)

	e := res.Entries[0]
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "Bonds", e.Name)
	assert.Equal(t, now, e.CreatedAt)
	assert.Equal(t, now, e.UpdatedAt)
}

func TestImport_LegacyUntaggedValues(t *testing.T) {
	input := header +
		`x,fixedDeposits,FD,,,"{""principalAmount"":50000,""maturityDate"":""2026-03-31"",""note"":""renew"",""bad"":[1]}",2024-01-01,2024-01-01` + "\n"

	res, err := Import(strings.NewReader(input), now)
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)

	e := res.Entries[0]
	assert.Equal(t, 50000.0, e.Number(domain.FieldPrincipalAmount))
	maturity, ok := e.Date(domain.FieldMaturityDate)
	require.True(t, ok)
	assert.Equal(t, 2026, maturity.Year())
	assert.Equal(t, "renew", e.Text("note"))
	assert.NotContains(t, e.Values, "bad")
}

func TestImport_HeaderMismatch(t *testing.T) {
	_, err := Import(strings.NewReader("id,category,name\n"), now)
	assert.ErrorIs(t, err, ErrHeaderMismatch)
}

func TestImport_Empty(t *testing.T) {
	res, err := Import(strings.NewReader(""), now)
	require.NoError(t, err)
	assert.Zero(t, res.Imported)
	assert.Empty(t, res.Entries)
}
