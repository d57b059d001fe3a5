// Package record holds the persisted shape of entries, settings and snapshots
package record

import (
	"time"

	"github.com/thisisprabha/networth/internal/domain"
)

// Entry is the stored form of domain.Entry
type Entry struct {
	ID        string                       `json:"id"`
	Category  string                       `json:"category"`
	Name      string                       `json:"name"`
	Values    map[string]domain.FieldValue `json:"values"`
	CreatedAt time.Time                    `json:"createdAt"`
	UpdatedAt time.Time                    `json:"updatedAt"`
}

// Settings is the stored form of domain.Settings
type Settings struct {
	CurrencyCode string             `json:"currencyCode,omitempty"`
	GrowthRates  map[string]float64 `json:"growthRates"`
}

// Snapshot is the stored form of domain.NetWorthSnapshot
type Snapshot struct {
	ID             string             `json:"id"`
	Timestamp      time.Time          `json:"timestamp"`
	NetWorth       float64            `json:"netWorth"`
	EntryCount     int                `json:"entryCount"`
	CategoryTotals map[string]float64 `json:"categoryTotals"`
}

// Document is the whole persisted state as one JSON object
type Document struct {
	Assets    []Entry    `json:"assets"`
	Settings  *Settings  `json:"settings,omitempty"`
	Snapshots []Snapshot `json:"snapshots"`
}

func FromEntry(e domain.Entry) Entry {
	return Entry{
		ID:        e.ID,
		Category:  string(e.Category),
		Name:      e.Name,
		Values:    e.Clone().Values,
		CreatedAt: e.CreatedAt.UTC(),
		UpdatedAt: e.UpdatedAt.UTC(),
	}
}

func (r Entry) Domain() domain.Entry {
	values := make(map[string]domain.FieldValue, len(r.Values))
	for k, v := range r.Values {
		values[k] = v
	}
	return domain.Entry{
		ID:        r.ID,
		Category:  domain.Category(r.Category),
		Name:      r.Name,
		Values:    values,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func FromSettings(s domain.Settings) Settings {
	rates := make(map[string]float64, len(s.GrowthRates))
	for c, r := range s.GrowthRates {
		rates[string(c)] = r
	}
	return Settings{CurrencyCode: s.CurrencyCode, GrowthRates: rates}
}

// Domain converts back, filling any category without a stored rate with its default
func (r Settings) Domain() domain.Settings {
	s := domain.Settings{
		CurrencyCode: r.CurrencyCode,
		GrowthRates:  make(map[domain.Category]float64, len(r.GrowthRates)),
	}
	for c, rate := range r.GrowthRates {
		s.GrowthRates[domain.Category(c)] = rate
	}
	s.FillDefaults()
	return s
}

func FromSnapshot(s domain.NetWorthSnapshot) Snapshot {
	return Snapshot{
		ID:             s.ID,
		Timestamp:      s.Timestamp.UTC(),
		NetWorth:       s.NetWorth,
		EntryCount:     s.EntryCount,
		CategoryTotals: TotalsFromDomain(s.CategoryTotals),
	}
}

func (r Snapshot) Domain() domain.NetWorthSnapshot {
	return domain.NetWorthSnapshot{
		ID:             r.ID,
		Timestamp:      r.Timestamp,
		NetWorth:       r.NetWorth,
		EntryCount:     r.EntryCount,
		CategoryTotals: TotalsToDomain(r.CategoryTotals),
	}
}

func TotalsFromDomain(totals map[domain.Category]float64) map[string]float64 {
	out := make(map[string]float64, len(totals))
	for c, v := range totals {
		out[string(c)] = v
	}
	return out
}

func TotalsToDomain(totals map[string]float64) map[domain.Category]float64 {
	out := make(map[domain.Category]float64, len(totals))
	for c, v := range totals {
		out[domain.Category(c)] = v
	}
	return out
}

// FromState converts the whole state
func FromState(state domain.State) Document {
	settings := FromSettings(state.Settings)
	doc := Document{
		Assets:    make([]Entry, len(state.Entries)),
		Settings:  &settings,
		Snapshots: make([]Snapshot, len(state.Snapshots)),
	}
	for i, e := range state.Entries {
		doc.Assets[i] = FromEntry(e)
	}
	for i, s := range state.Snapshots {
		doc.Snapshots[i] = FromSnapshot(s)
	}
	return doc
}

func (d Document) Entries() []domain.Entry {
	out := make([]domain.Entry, len(d.Assets))
	for i, r := range d.Assets {
		out[i] = r.Domain()
	}
	return out
}

// SettingsOrDefault returns the stored settings, or the defaults when none were saved
func (d Document) SettingsOrDefault() domain.Settings {
	if d.Settings == nil {
		return domain.DefaultSettings()
	}
	return d.Settings.Domain()
}

func (d Document) History() []domain.NetWorthSnapshot {
	out := make([]domain.NetWorthSnapshot, len(d.Snapshots))
	for i, r := range d.Snapshots {
		out[i] = r.Domain()
	}
	return out
}
