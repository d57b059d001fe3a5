package grpc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/thisisprabha/networth/internal/log"
)

func TestAuthInterceptor(t *testing.T) {
	const apiToken = "networth-test-token"
	interceptor := AuthInterceptor(apiToken)
	info := &grpc.UnaryServerInfo{FullMethod: fullMethod(MethodListEntries)}

	tests := []struct {
		name    string
		md      metadata.MD // nil sends no incoming metadata at all
		allowed bool
		errMsg  string
	}{
		{name: "raw token", md: metadata.Pairs("authorization", apiToken), allowed: true},
		{name: "bearer token", md: metadata.Pairs("authorization", "Bearer "+apiToken), allowed: true},
		{name: "lowercase bearer", md: metadata.Pairs("authorization", "bearer "+apiToken), allowed: true},
		{name: "wrong token", md: metadata.Pairs("authorization", "stale-token"), errMsg: "invalid token"},
		{name: "bearer with wrong token", md: metadata.Pairs("authorization", "Bearer nope"), errMsg: "invalid token"},
		{name: "token prefix only", md: metadata.Pairs("authorization", apiToken[:5]), errMsg: "invalid token"},
		{name: "no metadata", errMsg: "missing metadata"},
		{name: "no authorization header", md: metadata.Pairs("x-request-id", "42"), errMsg: "missing authorization header"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.md != nil {
				ctx = metadata.NewIncomingContext(ctx, tt.md)
			}
			called := false
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				called = true
				return &ListEntriesResponse{}, nil
			}

			resp, err := interceptor(ctx, &ListEntriesRequest{}, info, handler)

			assert.Equal(t, tt.allowed, called)
			if tt.allowed {
				require.NoError(t, err)
				assert.IsType(t, &ListEntriesResponse{}, resp)
				return
			}
			st, ok := status.FromError(err)
			require.True(t, ok, "error should be a gRPC status")
			assert.Equal(t, codes.Unauthenticated, st.Code())
			assert.Contains(t, st.Message(), tt.errMsg)
			assert.Nil(t, resp)
		})
	}
}

func TestAuthInterceptor_PublicMethod(t *testing.T) {
	const healthCheck = "/grpc.health.v1.Health/Check"
	interceptor := AuthInterceptor("secret", healthCheck)
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return "healthy", nil
	}

	resp, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: healthCheck}, handler)
	require.NoError(t, err)
	assert.Equal(t, "healthy", resp)

	_, err = interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: fullMethod(MethodGetDashboard)}, handler)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestLoggingInterceptor(t *testing.T) {
	interceptor := LoggingInterceptor(log.Discard())
	info := &grpc.UnaryServerInfo{FullMethod: fullMethod(MethodGetDashboard)}

	t.Run("passes response through", func(t *testing.T) {
		resp, err := interceptor(context.Background(), "req", info, func(ctx context.Context, req interface{}) (interface{}, error) {
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", resp)
	})

	t.Run("passes error through", func(t *testing.T) {
		want := status.Error(codes.NotFound, "missing")
		_, err := interceptor(context.Background(), "req", info, func(ctx context.Context, req interface{}) (interface{}, error) {
			return nil, want
		})
		assert.Equal(t, want, err)
	})
}

func TestTokenCredentials(t *testing.T) {
	creds := TokenCredentials{Token: "abc", Insecure: true}
	md, err := creds.GetRequestMetadata(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", md["authorization"])
	assert.False(t, creds.RequireTransportSecurity())
	assert.True(t, TokenCredentials{Token: "abc"}.RequireTransportSecurity())
}
