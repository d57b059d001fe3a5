package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "networth.v1.NetWorthService"

const (
	MethodGetDashboard   = "GetDashboard"
	MethodListCategories = "ListCategories"
	MethodListEntries    = "ListEntries"
	MethodCreateEntry    = "CreateEntry"
	MethodUpdateEntry    = "UpdateEntry"
	MethodDeleteEntry    = "DeleteEntry"
	MethodSetGrowthRate  = "SetGrowthRate"
	MethodGetProjection  = "GetProjection"
	MethodListSnapshots  = "ListSnapshots"
	MethodImportCSV      = "ImportCSV"
	MethodExportCSV      = "ExportCSV"
)

// NetWorthServiceServer is the server API for NetWorthService
type NetWorthServiceServer interface {
	GetDashboard(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListCategories(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListEntries(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateEntry(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateEntry(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteEntry(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetGrowthRate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetProjection(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListSnapshots(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ImportCSV(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ExportCSV(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(NetWorthServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(NetWorthServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod(name),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(NetWorthServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// ServiceDesc describes NetWorthService for grpc.Server.RegisterService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*NetWorthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodGetDashboard, NetWorthServiceServer.GetDashboard),
		unary(MethodListCategories, NetWorthServiceServer.ListCategories),
		unary(MethodListEntries, NetWorthServiceServer.ListEntries),
		unary(MethodCreateEntry, NetWorthServiceServer.CreateEntry),
		unary(MethodUpdateEntry, NetWorthServiceServer.UpdateEntry),
		unary(MethodDeleteEntry, NetWorthServiceServer.DeleteEntry),
		unary(MethodSetGrowthRate, NetWorthServiceServer.SetGrowthRate),
		unary(MethodGetProjection, NetWorthServiceServer.GetProjection),
		unary(MethodListSnapshots, NetWorthServiceServer.ListSnapshots),
		unary(MethodImportCSV, NetWorthServiceServer.ImportCSV),
		unary(MethodExportCSV, NetWorthServiceServer.ExportCSV),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "networth/v1/networth.proto",
}

// RegisterNetWorthServiceServer registers srv on s
func RegisterNetWorthServiceServer(s grpc.ServiceRegistrar, srv NetWorthServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
