package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/thisisprabha/networth/internal/domain"
)

// Client calls NetWorthService over any connection
type Client struct {
	conn grpc.ClientConnInterface
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) call(ctx context.Context, method string, req, resp any, opts ...grpc.CallOption) error {
	in, err := toStruct(req)
	if err != nil {
		return err
	}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return err
	}
	if resp == nil {
		return nil
	}
	if err := fromStruct(out, resp); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	return nil
}

func (c *Client) GetDashboard(ctx context.Context, opts ...grpc.CallOption) (*Dashboard, error) {
	var resp Dashboard
	if err := c.call(ctx, MethodGetDashboard, Empty{}, &resp, opts...); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListCategories(ctx context.Context, opts ...grpc.CallOption) ([]Category, error) {
	var resp ListCategoriesResponse
	if err := c.call(ctx, MethodListCategories, Empty{}, &resp, opts...); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// ListEntries lists entries of category, or all entries when category is empty
func (c *Client) ListEntries(ctx context.Context, category domain.Category, opts ...grpc.CallOption) ([]Entry, error) {
	var resp ListEntriesResponse
	if err := c.call(ctx, MethodListEntries, ListEntriesRequest{Category: string(category)}, &resp, opts...); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

func (c *Client) CreateEntry(ctx context.Context, req CreateEntryRequest, opts ...grpc.CallOption) (*Entry, error) {
	var resp EntryResponse
	if err := c.call(ctx, MethodCreateEntry, req, &resp, opts...); err != nil {
		return nil, err
	}
	return &resp.Entry, nil
}

func (c *Client) UpdateEntry(ctx context.Context, entry Entry, opts ...grpc.CallOption) (*Entry, error) {
	var resp EntryResponse
	if err := c.call(ctx, MethodUpdateEntry, EntryRequest{Entry: entry}, &resp, opts...); err != nil {
		return nil, err
	}
	return &resp.Entry, nil
}

func (c *Client) DeleteEntry(ctx context.Context, id string, opts ...grpc.CallOption) error {
	return c.call(ctx, MethodDeleteEntry, DeleteEntryRequest{ID: id}, nil, opts...)
}

func (c *Client) SetGrowthRate(ctx context.Context, category domain.Category, rate float64, opts ...grpc.CallOption) (*SettingsResponse, error) {
	var resp SettingsResponse
	req := SetGrowthRateRequest{Category: string(category), Rate: rate}
	if err := c.call(ctx, MethodSetGrowthRate, req, &resp, opts...); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetProjection(ctx context.Context, months int, opts ...grpc.CallOption) (*GetProjectionResponse, error) {
	var resp GetProjectionResponse
	if err := c.call(ctx, MethodGetProjection, GetProjectionRequest{Months: months}, &resp, opts...); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListSnapshots(ctx context.Context, limit int, opts ...grpc.CallOption) (*ListSnapshotsResponse, error) {
	var resp ListSnapshotsResponse
	if err := c.call(ctx, MethodListSnapshots, ListSnapshotsRequest{Limit: limit}, &resp, opts...); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ImportCSV(ctx context.Context, csv string, opts ...grpc.CallOption) (*ImportCSVResponse, error) {
	var resp ImportCSVResponse
	if err := c.call(ctx, MethodImportCSV, CSVMessage{CSV: csv}, &resp, opts...); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ExportCSV(ctx context.Context, opts ...grpc.CallOption) (string, error) {
	var resp CSVMessage
	if err := c.call(ctx, MethodExportCSV, Empty{}, &resp, opts...); err != nil {
		return "", err
	}
	return resp.CSV, nil
}
