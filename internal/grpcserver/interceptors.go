package grpcserver

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const authorizationHeader = "authorization"

// ServerOptions installs recovery, logging and, when tokens are configured, bearer authentication.
func ServerOptions(logger *zap.Logger, apiTokens []string) []grpc.ServerOption {
	if logger == nil {
		logger = zap.NewNop()
	}
	interceptors := []grpc.UnaryServerInterceptor{
		loggingUnaryInterceptor(logger),
		recoveryUnaryInterceptor(logger),
	}
	if tokens := normalizeTokens(apiTokens); len(tokens) > 0 {
		interceptors = append(interceptors, authUnaryInterceptor(tokens))
	}
	return []grpc.ServerOption{grpc.ChainUnaryInterceptor(interceptors...)}
}

func loggingUnaryInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, request any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (_ any, err error) {
		start := time.Now()
		defer func() {
			code := status.Code(err)
			fields := []zap.Field{
				zap.String("method", info.FullMethod),
				zap.String("code", code.String()),
				zap.Duration("duration", time.Since(start)),
			}
			if code == codes.Internal || code == codes.Unknown {
				logger.Error("grpc unary", append(fields, zap.Error(err))...)
				return
			}
			logger.Debug("grpc unary", fields...)
		}()
		return handler(ctx, request)
	}
}

func recoveryUnaryInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, request any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (_ any, err error) {
		defer func() {
			if recovered := recover(); recovered != nil {
				logger.Error("panic in unary handler", zap.String("method", info.FullMethod), zap.Any("panic", recovered))
				err = status.Error(codes.Internal, "internal server error")
			}
		}()
		return handler(ctx, request)
	}
}

func authUnaryInterceptor(tokens [][]byte) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, request any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		incoming, _ := metadata.FromIncomingContext(ctx)
		for _, value := range incoming.Get(authorizationHeader) {
			presented := []byte(strings.TrimSpace(strings.TrimPrefix(value, "Bearer ")))
			for _, token := range tokens {
				if subtle.ConstantTimeCompare(presented, token) == 1 {
					return handler(ctx, request)
				}
			}
		}
		return nil, status.Error(codes.Unauthenticated, "missing or invalid api token")
	}
}

func normalizeTokens(raw []string) [][]byte {
	tokens := make([][]byte, 0, len(raw))
	for _, token := range raw {
		if trimmed := strings.TrimSpace(token); trimmed != "" {
			tokens = append(tokens, []byte(trimmed))
		}
	}
	return tokens
}
