package server

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/godilite/helpdesk-portal/pkg/requestid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// RequestIDInterceptor takes the caller's x-request-id metadata, or mints
// one, stores it in the context and echoes it back in the response header.
func RequestIDInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if ids := md.Get(requestid.MetadataKey); len(ids) > 0 && ids[0] != "" {
				ctx = requestid.With(ctx, ids[0])
			}
		}
		ctx, id := requestid.Ensure(ctx)
		_ = grpc.SetHeader(ctx, metadata.Pairs(requestid.MetadataKey, id))
		return handler(ctx, req)
	}
}

// LoggingInterceptor creates a gRPC unary interceptor for request/response logging.
func LoggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		fields := []zap.Field{zap.String("method", info.FullMethod)}
		if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
			fields = append(fields, zap.String("client_addr", p.Addr.String()))
		}
		if id := requestid.From(ctx); id != "" {
			fields = append(fields, zap.String("request_id", id))
		}

		logger.Debug("gRPC request started", fields...)

		resp, err := handler(ctx, req)
		fields = append(fields, zap.Duration("duration", time.Since(start)))

		if err != nil {
			st, _ := status.FromError(err)
			fields = append(fields,
				zap.String("status_code", st.Code().String()),
				zap.String("status_message", st.Message()))
			if isClientFault(st.Code()) {
				logger.Warn("gRPC request rejected", fields...)
			} else {
				logger.Error("gRPC request failed", fields...)
			}
		} else {
			logger.Info("gRPC request completed", append(fields, zap.String("status_code", codes.OK.String()))...)
		}

		return resp, err
	}
}

func isClientFault(code codes.Code) bool {
	switch code {
	case codes.InvalidArgument, codes.NotFound, codes.FailedPrecondition, codes.Canceled:
		return true
	}
	return false
}

// RecoveryInterceptor turns a handler panic into codes.Internal.
func RecoveryInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("gRPC handler panic",
					zap.String("method", info.FullMethod),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()))
				resp, err = nil, status.Error(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}
