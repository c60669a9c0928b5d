package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scenic-route-service/internal/config"
	"github.com/scenic-route-service/internal/pkg/errors"
	"github.com/scenic-route-service/internal/usecase"
	"github.com/scenic-route-service/internal/usecase/dto"
)

// Путь (38.5,-120.2) -> (40.7,-120.95) -> (43.252,-126.453)
const validEncodedPath = "_p~iF~ps|U_ulLnnqC_mqNvxq`@"

func newValidateLocationUseCase() *usecase.ValidateLocationUseCase {
	cfg := config.RouteConfig{OnRouteToleranceMeters: 150}
	return usecase.NewValidateLocationUseCase(cfg, zap.NewNop())
}

func TestValidateLocationUseCase_Validate(t *testing.T) {
	uc := newValidateLocationUseCase()
	ctx := context.Background()

	t.Run("point on path vertex is on route", func(t *testing.T) {
		resp, err := uc.Validate(ctx, dto.ValidateLocationRequest{
			EncodedPath: validEncodedPath,
			Lat:         38.5,
			Lon:         -120.2,
		})
		require.NoError(t, err)
		assert.True(t, resp.OnRoute)
		assert.InDelta(t, 0, resp.DistanceMeters, 1)
		assert.InDelta(t, 38.5, resp.NearestPoint.Lat, 1e-9)
		assert.InDelta(t, -120.2, resp.NearestPoint.Lon, 1e-9)
	})

	t.Run("distant point is off route", func(t *testing.T) {
		resp, err := uc.Validate(ctx, dto.ValidateLocationRequest{
			EncodedPath: validEncodedPath,
			Lat:         36.0,
			Lon:         -118.0,
		})
		require.NoError(t, err)
		assert.False(t, resp.OnRoute)
		assert.Greater(t, resp.DistanceMeters, 150.0)
	})

	t.Run("explicit tolerance overrides default", func(t *testing.T) {
		// Точка в сотнях километров от пути проходит только с
		// заведомо огромным допуском
		resp, err := uc.Validate(ctx, dto.ValidateLocationRequest{
			EncodedPath:     validEncodedPath,
			Lat:             36.0,
			Lon:             -118.0,
			ToleranceMeters: 1_000_000,
		})
		require.NoError(t, err)
		assert.True(t, resp.OnRoute)
	})

	t.Run("corrupt polyline returns decode error", func(t *testing.T) {
		_, err := uc.Validate(ctx, dto.ValidateLocationRequest{
			EncodedPath: "_p~iF~ps", // обрывается посреди дельты
			Lat:         38.5,
			Lon:         -120.2,
		})
		require.Error(t, err)
		appErr, ok := err.(*errors.AppError)
		require.True(t, ok)
		assert.Equal(t, errors.ErrDecodeFailed.Code, appErr.Code)
	})

	t.Run("empty path is invalid request", func(t *testing.T) {
		_, err := uc.Validate(ctx, dto.ValidateLocationRequest{
			EncodedPath: "",
			Lat:         38.5,
			Lon:         -120.2,
		})
		require.Error(t, err)
		appErr, ok := err.(*errors.AppError)
		require.True(t, ok)
		assert.Equal(t, errors.ErrInvalidRequest.Code, appErr.Code)
	})

	t.Run("invalid coordinates rejected before decoding", func(t *testing.T) {
		_, err := uc.Validate(ctx, dto.ValidateLocationRequest{
			EncodedPath: validEncodedPath,
			Lat:         91,
			Lon:         0,
		})
		assert.Equal(t, errors.ErrInvalidCoordinates, err)
	})
}
