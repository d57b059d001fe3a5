package grpc

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/thisisprabha/networth/internal/log"
)

// AuthInterceptor returns a gRPC unary server interceptor that validates
// the authorization token from request metadata
// The token may carry a "Bearer " prefix
// If the token is missing or invalid, it returns status.Unauthenticated
// If valid, it calls the handler with the original context
// Methods listed in public (full method names) skip the check
func AuthInterceptor(validToken string, public ...string) grpc.UnaryServerInterceptor {
	open := make(map[string]bool, len(public))
	for _, m := range public {
		open[m] = true
	}

	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		if open[info.FullMethod] {
			return handler(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		authHeaders := md.Get("authorization")
		if len(authHeaders) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing authorization header")
		}

		token := strings.TrimSpace(authHeaders[0])
		if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
			token = strings.TrimSpace(token[7:])
		}
		if subtle.ConstantTimeCompare([]byte(token), []byte(validToken)) != 1 {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}

		return handler(ctx, req)
	}
}

// LoggingInterceptor logs every unary call with its status code and duration
func LoggingInterceptor(logger *log.Logger) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentGRPC)

	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)

		args := []any{
			log.FieldMethod, info.FullMethod,
			log.FieldCode, code.String(),
			log.FieldDuration, time.Since(start).Milliseconds(),
		}
		switch code {
		case codes.OK:
			logger.DebugContext(ctx, "rpc completed", args...)
		case codes.Internal, codes.Unknown, codes.DataLoss:
			logger.ErrorContext(ctx, "rpc failed", append(args, log.FieldError, err)...)
		default:
			logger.WarnContext(ctx, "rpc rejected", append(args, log.FieldError, err)...)
		}
		return resp, err
	}
}

// TokenCredentials attaches the API token to every outgoing call
type TokenCredentials struct {
	Token string
	// Insecure allows sending the token over a plaintext connection
	Insecure bool
}

func (c TokenCredentials) GetRequestMetadata(ctx context.Context, uri ...string) (map[string]string, error) {
	return map[string]string{"authorization": "Bearer " + c.Token}, nil
}

func (c TokenCredentials) RequireTransportSecurity() bool {
	return !c.Insecure
}
