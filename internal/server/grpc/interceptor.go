package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/server/identity"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// AuthorizationKey is the metadata key carrying "Bearer <token>".
const AuthorizationKey = common.AuthorizationHeaderName

// identityInterceptor attaches the caller to the context. A missing or bad
// credential leaves the call anonymous; handlers decide whether that is
// allowed.
func (s *GRPCServer) identityInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	var token string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(AuthorizationKey); len(values) > 0 {
			token = values[0]
		}
	}

	if token != "" && s.resolver != nil {
		ctx = identity.WithUser(ctx, s.resolver.Resolve(ctx, token))
	}

	return handler(ctx, req)
}

func (s *GRPCServer) observeInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	code := status.Code(err)
	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.ObserveGRPC(info.FullMethod, code.String(), elapsed)
	}
	s.logger.Debug(ctx, "grpc call", "method", info.FullMethod, "code", code.String(), "duration", elapsed)

	return resp, err
}
