package grpc

import (
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/thisisprabha/networth/internal/adapter/repository/record"
	"github.com/thisisprabha/networth/internal/domain"
	"github.com/thisisprabha/networth/internal/usecase/dashboard"
	"github.com/thisisprabha/networth/internal/usecase/valuation"
)

// Request and response bodies travel as google.protobuf.Struct
// These types give them a shape on both ends

type Entry struct {
	ID        string                       `json:"id"`
	Category  string                       `json:"category"`
	Name      string                       `json:"name"`
	Values    map[string]domain.FieldValue `json:"values"`
	CreatedAt time.Time                    `json:"createdAt"`
	UpdatedAt time.Time                    `json:"updatedAt"`
	// Value is the resolved value; ignored on input
	Value float64 `json:"value"`
}

type FieldOption struct {
	Value         string   `json:"value"`
	Label         string   `json:"label"`
	DefaultNumber *float64 `json:"defaultNumber,omitempty"`
}

type Field struct {
	Key     string            `json:"key"`
	Label   string            `json:"label"`
	Kind    string            `json:"kind"`
	Min     *float64          `json:"min,omitempty"`
	Max     *float64          `json:"max,omitempty"`
	Step    *float64          `json:"step,omitempty"`
	Default domain.FieldValue `json:"default"`
	Format  string            `json:"format"`
	Options []FieldOption     `json:"options,omitempty"`
}

type RateRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Category struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	SymbolName         string     `json:"symbolName"`
	Color              string     `json:"color"`
	Fields             []Field    `json:"fields"`
	GrowthRateDefault  float64    `json:"growthRateDefault"`
	GrowthRate         float64    `json:"growthRate"`
	GrowthRateRange    *RateRange `json:"growthRateRange,omitempty"`
	IncludesInNetWorth bool       `json:"includesInNetWorth"`
	IsLiability        bool       `json:"isLiability"`
}

type CategorySummary struct {
	Category   string   `json:"category"`
	Name       string   `json:"name"`
	Total      float64  `json:"total"`
	Percentage *float64 `json:"percentage"`
}

type ProjectionPoint struct {
	Month int     `json:"month"`
	Value float64 `json:"value"`
}

type Change struct {
	Absolute float64   `json:"absolute"`
	Percent  *float64  `json:"percent"`
	Since    time.Time `json:"since"`
}

type Driver struct {
	Category string  `json:"category"`
	Change   float64 `json:"change"`
}

type Dashboard struct {
	NetWorth          float64              `json:"netWorth"`
	OneYearProjection float64              `json:"oneYearProjection"`
	PercentGrowth     *float64             `json:"percentGrowth"`
	Wealth            []CategorySummary    `json:"wealth"`
	Liabilities       []CategorySummary    `json:"liabilities"`
	Protection        []CategorySummary    `json:"protection"`
	TotalWealth       float64              `json:"totalWealth"`
	TotalLiabilities  float64              `json:"totalLiabilities"`
	TotalProtection   float64              `json:"totalProtection"`
	Projection        []ProjectionPoint    `json:"projection"`
	CategorySeries    map[string][]float64 `json:"categorySeries"`
	LatestChange      *Change              `json:"latestChange"`
	Drivers           []Driver             `json:"drivers"`
	Trend             []record.Snapshot    `json:"trend"`
	TopEntries        []Entry              `json:"topEntries"`
	LastUpdated       *time.Time           `json:"lastUpdated"`
	CurrencyCode      string               `json:"currencyCode"`
}

type ListCategoriesResponse struct {
	Categories []Category `json:"categories"`
}

type ListEntriesRequest struct {
	Category string `json:"category,omitempty"`
}

type ListEntriesResponse struct {
	Entries []Entry `json:"entries"`
}

type CreateEntryRequest struct {
	Category string                       `json:"category"`
	Name     string                       `json:"name"`
	Values   map[string]domain.FieldValue `json:"values"`
}

type EntryRequest struct {
	Entry Entry `json:"entry"`
}

type EntryResponse struct {
	Entry Entry `json:"entry"`
}

type DeleteEntryRequest struct {
	ID string `json:"id"`
}

type SetGrowthRateRequest struct {
	Category string  `json:"category"`
	Rate     float64 `json:"rate"`
}

type SettingsResponse struct {
	CurrencyCode string             `json:"currencyCode"`
	GrowthRates  map[string]float64 `json:"growthRates"`
}

type GetProjectionRequest struct {
	Months int `json:"months"`
}

type GetProjectionResponse struct {
	Points            []ProjectionPoint `json:"points"`
	OneYearProjection float64           `json:"oneYearProjection"`
	PercentGrowth     *float64          `json:"percentGrowth"`
}

type ListSnapshotsRequest struct {
	Limit int `json:"limit,omitempty"`
}

type ListSnapshotsResponse struct {
	Snapshots []record.Snapshot `json:"snapshots"`
}

type CSVMessage struct {
	CSV string `json:"csv"`
}

type ImportCSVResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Inserted int `json:"inserted"`
	Replaced int `json:"replaced"`
	Ignored  int `json:"ignored"`
}

type Empty struct{}

// toStruct encodes v through its JSON form
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}
	return out, nil
}

// fromStruct decodes s into v; a nil struct leaves v untouched
func fromStruct(s *structpb.Struct, v any) error {
	if s == nil {
		return nil
	}
	raw, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}
	return nil
}

func entryToMessage(e domain.Entry) Entry {
	rec := record.FromEntry(e)
	return Entry{
		ID:        rec.ID,
		Category:  rec.Category,
		Name:      rec.Name,
		Values:    rec.Values,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
		Value:     valuation.ValueOf(e),
	}
}

func (m Entry) toDomain() domain.Entry {
	return record.Entry{
		ID:        m.ID,
		Category:  m.Category,
		Name:      m.Name,
		Values:    m.Values,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}.Domain()
}

func entriesToMessages(entries []domain.Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = entryToMessage(e)
	}
	return out
}

func categoryToMessage(def domain.CategoryDefinition, settings domain.Settings) Category {
	msg := Category{
		ID:                 string(def.Category),
		Name:               def.Name,
		SymbolName:         def.SymbolName,
		Color:              def.Color,
		Fields:             make([]Field, len(def.Fields)),
		GrowthRateDefault:  def.GrowthRateDefault,
		GrowthRate:         settings.GrowthRate(def.Category),
		IncludesInNetWorth: def.IncludesInNetWorth,
		IsLiability:        def.IsLiability,
	}
	if def.GrowthRateRange != nil {
		msg.GrowthRateRange = &RateRange{Min: def.GrowthRateRange.Min, Max: def.GrowthRateRange.Max}
	}
	for i, f := range def.Fields {
		field := Field{
			Key:     f.Key,
			Label:   f.Label,
			Kind:    string(f.Kind),
			Min:     f.Min,
			Max:     f.Max,
			Step:    f.Step,
			Default: f.Default,
			Format:  string(f.Format),
		}
		for _, o := range f.Options {
			field.Options = append(field.Options, FieldOption{Value: o.Value, Label: o.Label, DefaultNumber: o.DefaultNumber})
		}
		msg.Fields[i] = field
	}
	return msg
}

func summariesToMessages(summaries []domain.CategorySummary) []CategorySummary {
	out := make([]CategorySummary, len(summaries))
	for i, s := range summaries {
		out[i] = CategorySummary{
			Category:   string(s.Category),
			Name:       s.Category.Definition().Name,
			Total:      s.Total,
			Percentage: s.Percentage,
		}
	}
	return out
}

func pointsToMessages(points []domain.ProjectionPoint) []ProjectionPoint {
	out := make([]ProjectionPoint, len(points))
	for i, p := range points {
		out[i] = ProjectionPoint{Month: p.Month, Value: p.Value}
	}
	return out
}

func snapshotsToMessages(snapshots []domain.NetWorthSnapshot) []record.Snapshot {
	out := make([]record.Snapshot, len(snapshots))
	for i, s := range snapshots {
		out[i] = record.FromSnapshot(s)
	}
	return out
}

func dashboardToMessage(d *dashboard.Dashboard) Dashboard {
	msg := Dashboard{
		NetWorth:          d.NetWorth,
		OneYearProjection: d.OneYearProjection,
		PercentGrowth:     d.PercentGrowth,
		Wealth:            summariesToMessages(d.Wealth),
		Liabilities:       summariesToMessages(d.Liabilities),
		Protection:        summariesToMessages(d.Protection),
		TotalWealth:       d.TotalWealth,
		TotalLiabilities:  d.TotalLiabilities,
		TotalProtection:   d.TotalProtection,
		Projection:        pointsToMessages(d.Projection),
		CategorySeries:    make(map[string][]float64, len(d.CategorySeries)),
		Drivers:           make([]Driver, len(d.Drivers)),
		Trend:             snapshotsToMessages(d.Trend),
		TopEntries:        make([]Entry, len(d.TopEntries)),
		LastUpdated:       d.LastUpdated,
		CurrencyCode:      d.CurrencyCode,
	}
	for c, series := range d.CategorySeries {
		msg.CategorySeries[string(c)] = series
	}
	if d.LatestChange != nil {
		msg.LatestChange = &Change{
			Absolute: d.LatestChange.Absolute,
			Percent:  d.LatestChange.Percent,
			Since:    d.LatestChange.Since,
		}
	}
	for i, dr := range d.Drivers {
		msg.Drivers[i] = Driver{Category: string(dr.Category), Change: dr.Change}
	}
	for i, r := range d.TopEntries {
		msg.TopEntries[i] = entryToMessage(r.Entry)
	}
	return msg
}
