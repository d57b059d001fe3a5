// Package sqlstore implements domain.StateStore over database/sql
// The sqlite and postgres packages open the connection, run their migrations
// and hand the handle here together with their placeholder dialect
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/thisisprabha/networth/internal/adapter/repository/record"
	"github.com/thisisprabha/networth/internal/domain"
)

const settingCurrencyCode = "currency_code"

// Dialect abstracts the differences between the supported SQL engines
type Dialect struct {
	Name string
	// Placeholder returns the bind marker for the n-th argument, starting at 1
	Placeholder func(n int) string
}

var (
	// SQLite uses ? markers
	SQLite = Dialect{Name: "sqlite", Placeholder: func(int) string { return "?" }}
	// Postgres uses $n markers
	Postgres = Dialect{Name: "postgres", Placeholder: func(n int) string { return fmt.Sprintf("$%d", n) }}
)

// Store implements domain.StateStore
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// New wraps an open, migrated database
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// bind rewrites ? markers into the dialect's placeholders
func (s *Store) bind(query string) string {
	if s.dialect.Name == SQLite.Name {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString(s.dialect.Placeholder(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// LoadEntries retrieves every entry in saved order
func (s *Store) LoadEntries(ctx context.Context) ([]domain.Entry, error) {
	query := `
		SELECT id, category, name, field_values, created_at, updated_at
		FROM entries
		ORDER BY position
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.Entry{}
	for rows.Next() {
		var (
			rec    record.Entry
			values []byte
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.Category,
			&rec.Name,
			&values,
			&timestamp{&rec.CreatedAt},
			&timestamp{&rec.UpdatedAt},
		); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		if err := json.Unmarshal(values, &rec.Values); err != nil {
			return nil, fmt.Errorf("failed to decode values of entry %s: %w", rec.ID, err)
		}
		entries = append(entries, rec.Domain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}
	return entries, nil
}

// LoadSettings returns DefaultSettings when nothing has been saved
func (s *Store) LoadSettings(ctx context.Context) (domain.Settings, error) {
	rates := map[string]float64{}
	rows, err := s.db.QueryContext(ctx, `SELECT category, rate FROM growth_rates`)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("failed to query growth rates: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			category string
			rate     float64
		)
		if err := rows.Scan(&category, &rate); err != nil {
			return domain.Settings{}, fmt.Errorf("failed to scan growth rate: %w", err)
		}
		rates[category] = rate
	}
	if err := rows.Err(); err != nil {
		return domain.Settings{}, fmt.Errorf("error iterating growth rates: %w", err)
	}

	var currency string
	err = s.db.QueryRowContext(ctx,
		s.bind(`SELECT value FROM settings WHERE key = ?`),
		settingCurrencyCode,
	).Scan(&currency)
	if err != nil && err != sql.ErrNoRows {
		return domain.Settings{}, fmt.Errorf("failed to query currency: %w", err)
	}

	if len(rates) == 0 && currency == "" {
		return domain.DefaultSettings(), nil
	}
	return record.Settings{CurrencyCode: currency, GrowthRates: rates}.Domain(), nil
}

// LoadSnapshots retrieves the history oldest first
func (s *Store) LoadSnapshots(ctx context.Context) ([]domain.NetWorthSnapshot, error) {
	query := `
		SELECT id, taken_at, net_worth, entry_count, category_totals
		FROM snapshots
		ORDER BY position
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := []domain.NetWorthSnapshot{}
	for rows.Next() {
		var (
			rec    record.Snapshot
			totals []byte
		)
		if err := rows.Scan(
			&rec.ID,
			&timestamp{&rec.Timestamp},
			&rec.NetWorth,
			&rec.EntryCount,
			&totals,
		); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		if err := json.Unmarshal(totals, &rec.CategoryTotals); err != nil {
			return nil, fmt.Errorf("failed to decode totals of snapshot %s: %w", rec.ID, err)
		}
		snapshots = append(snapshots, rec.Domain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}
	return snapshots, nil
}

// Save replaces every table's contents in one transaction
func (s *Store) Save(ctx context.Context, state domain.State) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"entries", "growth_rates", "settings", "snapshots"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	insertEntry := s.bind(`
		INSERT INTO entries (id, position, category, name, field_values, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	for i, e := range state.Entries {
		rec := record.FromEntry(e)
		values, err := json.Marshal(rec.Values)
		if err != nil {
			return fmt.Errorf("failed to encode values of entry %s: %w", e.ID, err)
		}
		if _, err := tx.ExecContext(ctx, insertEntry,
			rec.ID,
			i,
			rec.Category,
			rec.Name,
			string(values),
			formatTime(rec.CreatedAt),
			formatTime(rec.UpdatedAt),
		); err != nil {
			return fmt.Errorf("failed to insert entry %s: %w", e.ID, err)
		}
	}

	insertRate := s.bind(`INSERT INTO growth_rates (category, rate) VALUES (?, ?)`)
	for c, rate := range state.Settings.GrowthRates {
		if _, err := tx.ExecContext(ctx, insertRate, string(c), rate); err != nil {
			return fmt.Errorf("failed to insert growth rate for %s: %w", c, err)
		}
	}

	if state.Settings.CurrencyCode != "" {
		if _, err := tx.ExecContext(ctx,
			s.bind(`INSERT INTO settings (key, value) VALUES (?, ?)`),
			settingCurrencyCode,
			state.Settings.CurrencyCode,
		); err != nil {
			return fmt.Errorf("failed to insert currency: %w", err)
		}
	}

	insertSnapshot := s.bind(`
		INSERT INTO snapshots (id, position, taken_at, net_worth, entry_count, category_totals)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	for i, snap := range state.Snapshots {
		rec := record.FromSnapshot(snap)
		totals, err := json.Marshal(rec.CategoryTotals)
		if err != nil {
			return fmt.Errorf("failed to encode totals of snapshot %s: %w", snap.ID, err)
		}
		if _, err := tx.ExecContext(ctx, insertSnapshot,
			rec.ID,
			i,
			formatTime(rec.Timestamp),
			rec.NetWorth,
			rec.EntryCount,
			string(totals),
		); err != nil {
			return fmt.Errorf("failed to insert snapshot %s: %w", snap.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// timestamp scans TEXT (sqlite) and TIMESTAMPTZ (postgres) columns alike
type timestamp struct {
	t *time.Time
}

func (ts *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*ts.t = v.UTC()
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	case nil:
		*ts.t = time.Time{}
		return nil
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (ts *timestamp) parse(s string) error {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	*ts.t = t
	return nil
}
