package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestUnaryAuthInterceptor(t *testing.T) {
	svc := newTestJWTService(t, time.Hour)
	userID := uuid.New()
	token, err := svc.GenerateToken(userID, "", nil)
	require.NoError(t, err)

	interceptor := UnaryAuthInterceptor(svc, []string{"/grpc.health.v1.Health/Check"})
	handler := func(ctx context.Context, _ interface{}) (interface{}, error) {
		claims, ok := ClaimsFromContext(ctx)
		if !ok {
			return "anonymous", nil
		}
		return claims.UserID.String(), nil
	}

	t.Run("skipped method", func(t *testing.T) {
		resp, err := interceptor(context.Background(), nil,
			&grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}, handler)
		require.NoError(t, err)
		assert.Equal(t, "anonymous", resp)
	})

	t.Run("missing metadata", func(t *testing.T) {
		_, err := interceptor(context.Background(), nil,
			&grpc.UnaryServerInfo{FullMethod: "/prequal.v1.PrequalService/Prequalify"}, handler)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("valid bearer", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))
		resp, err := interceptor(ctx, nil,
			&grpc.UnaryServerInfo{FullMethod: "/prequal.v1.PrequalService/Prequalify"}, handler)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), resp)
	})

	t.Run("invalid token", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer junk"))
		_, err := interceptor(ctx, nil,
			&grpc.UnaryServerInfo{FullMethod: "/prequal.v1.PrequalService/Prequalify"}, handler)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})
}
