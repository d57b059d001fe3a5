package grpc

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/thisisprabha/networth/internal/adapter/csvio"
	"github.com/thisisprabha/networth/internal/domain"
	"github.com/thisisprabha/networth/internal/usecase/dashboard"
	"github.com/thisisprabha/networth/internal/usecase/portfolio"
	"github.com/thisisprabha/networth/internal/usecase/projector"
)

// Server implements the NetWorthService gRPC server
type Server struct {
	PortfolioService *portfolio.PortfolioService
	DashboardService *dashboard.DashboardService
}

// NewServer creates a new gRPC server instance
func NewServer(
	portfolioService *portfolio.PortfolioService,
	dashboardService *dashboard.DashboardService,
) *Server {
	return &Server{
		PortfolioService: portfolioService,
		DashboardService: dashboardService,
	}
}

// GetDashboard handles the GetDashboard RPC
func (s *Server) GetDashboard(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return respond(dashboardToMessage(s.DashboardService.GetDashboard()))
}

// ListCategories returns every category in display order with the effective growth rate
func (s *Server) ListCategories(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	settings := s.PortfolioService.Settings()
	ordered := domain.OrderedCategories()

	resp := ListCategoriesResponse{Categories: make([]Category, len(ordered))}
	for i, c := range ordered {
		resp.Categories[i] = categoryToMessage(c.Definition(), settings)
	}
	return respond(resp)
}

// ListEntries handles the ListEntries RPC; an empty category lists everything
func (s *Server) ListEntries(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in ListEntriesRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	entries := s.PortfolioService.Entries()
	if in.Category != "" {
		category, ok := domain.ParseCategory(in.Category)
		if !ok {
			return nil, status.Errorf(codes.InvalidArgument, "unknown category %q", in.Category)
		}
		filtered := entries[:0]
		for _, e := range entries {
			if e.Category == category {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	return respond(ListEntriesResponse{Entries: entriesToMessages(entries)})
}

// CreateEntry handles the CreateEntry RPC
func (s *Server) CreateEntry(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in CreateEntryRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	entry, err := s.PortfolioService.Create(ctx, portfolio.CreateEntryInput{
		Category: domain.Category(in.Category),
		Name:     in.Name,
		Values:   in.Values,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return respond(EntryResponse{Entry: entryToMessage(entry)})
}

// UpdateEntry handles the UpdateEntry RPC
func (s *Server) UpdateEntry(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in EntryRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	if in.Entry.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "entry id is required")
	}

	entry, err := s.PortfolioService.Update(ctx, in.Entry.toDomain())
	if err != nil {
		return nil, mapError(err)
	}
	return respond(EntryResponse{Entry: entryToMessage(entry)})
}

// DeleteEntry handles the DeleteEntry RPC
func (s *Server) DeleteEntry(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in DeleteEntryRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	if in.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "entry id is required")
	}

	if err := s.PortfolioService.Delete(ctx, in.ID); err != nil {
		return nil, mapError(err)
	}
	return respond(Empty{})
}

// SetGrowthRate handles the SetGrowthRate RPC
func (s *Server) SetGrowthRate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in SetGrowthRateRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	if err := s.PortfolioService.SetGrowthRate(ctx, domain.Category(in.Category), in.Rate); err != nil {
		return nil, mapError(err)
	}

	settings := s.PortfolioService.Settings()
	resp := SettingsResponse{
		CurrencyCode: settings.Currency(),
		GrowthRates:  make(map[string]float64, len(settings.GrowthRates)),
	}
	for c, r := range settings.GrowthRates {
		resp.GrowthRates[string(c)] = r
	}
	return respond(resp)
}

// GetProjection handles the GetProjection RPC; months defaults to a year
func (s *Server) GetProjection(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in GetProjectionRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	if in.Months < 0 {
		return nil, status.Error(codes.InvalidArgument, "months must be non-negative")
	}
	if in.Months == 0 {
		in.Months = projector.DefaultMonths
	}

	entries := s.PortfolioService.Entries()
	settings := s.PortfolioService.Settings()
	current := projector.Projection(entries, settings, 0)[0].Value
	oneYear := projector.OneYearProjection(entries, settings)

	return respond(GetProjectionResponse{
		Points:            pointsToMessages(projector.Projection(entries, settings, in.Months)),
		OneYearProjection: oneYear,
		PercentGrowth:     projector.PercentGrowth(current, oneYear),
	})
}

// ListSnapshots returns the newest limit snapshots, oldest first; zero means all
func (s *Server) ListSnapshots(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in ListSnapshotsRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}
	if in.Limit < 0 {
		return nil, status.Error(codes.InvalidArgument, "limit must be non-negative")
	}

	history := s.PortfolioService.Snapshots()
	if in.Limit > 0 && len(history) > in.Limit {
		history = history[len(history)-in.Limit:]
	}
	return respond(ListSnapshotsResponse{Snapshots: snapshotsToMessages(history)})
}

// ImportCSV handles the ImportCSV RPC
func (s *Server) ImportCSV(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in CSVMessage
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	res, err := s.PortfolioService.Import(ctx, strings.NewReader(in.CSV))
	if err != nil {
		return nil, mapError(err)
	}
	return respond(ImportCSVResponse{
		Imported: res.Imported,
		Skipped:  res.Skipped,
		Inserted: res.Merge.Inserted,
		Replaced: res.Merge.Replaced,
		Ignored:  res.Merge.Ignored,
	})
}

// ExportCSV handles the ExportCSV RPC
func (s *Server) ExportCSV(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var buf bytes.Buffer
	if err := s.PortfolioService.Export(&buf); err != nil {
		return nil, mapError(err)
	}
	return respond(CSVMessage{CSV: buf.String()})
}

func decode(req *structpb.Struct, v any) error {
	if err := fromStruct(req, v); err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	return nil
}

func respond(v any) (*structpb.Struct, error) {
	out, err := toStruct(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "%v", err)
	}
	return out, nil
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrEntryNotFound):
		return status.Errorf(codes.NotFound, "%s", err.Error())
	case errors.Is(err, domain.ErrUnknownCategory),
		errors.Is(err, domain.ErrInvalidEntry),
		errors.Is(err, domain.ErrInvalidGrowthRate),
		errors.Is(err, csvio.ErrHeaderMismatch):
		return status.Errorf(codes.InvalidArgument, "%s", err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", err.Error())
}
