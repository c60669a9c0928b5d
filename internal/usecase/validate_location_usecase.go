package usecase

import (
	"context"

	"github.com/scenic-route-service/internal/config"
	"github.com/scenic-route-service/internal/domain"
	"github.com/scenic-route-service/internal/pkg/errors"
	"github.com/scenic-route-service/internal/pkg/polyline"
	"github.com/scenic-route-service/internal/pkg/utils"
	"github.com/scenic-route-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// ValidateLocationUseCase - проверка "путешественник ещё на маршруте?"
type ValidateLocationUseCase struct {
	logger *zap.Logger
	cfg    config.RouteConfig
}

// NewValidateLocationUseCase создает новый ValidateLocationUseCase
func NewValidateLocationUseCase(cfg config.RouteConfig, logger *zap.Logger) *ValidateLocationUseCase {
	return &ValidateLocationUseCase{
		logger: logger,
		cfg:    cfg,
	}
}

// Validate декодирует путь и сравнивает расстояние от точки до пути
// с допуском. Битая polyline - ошибка декодирования, не пустой путь.
func (uc *ValidateLocationUseCase) Validate(
	ctx context.Context,
	req dto.ValidateLocationRequest,
) (*dto.ValidateLocationResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	path, err := polyline.Decode(req.EncodedPath)
	if err != nil {
		return nil, errors.ErrDecodeFailed.WithReason(err.Error())
	}
	if len(path) == 0 {
		return nil, errors.ErrInvalidRequest.WithReason("encoded path contains no points")
	}

	tolerance := req.ToleranceMeters
	if tolerance == 0 {
		tolerance = uc.cfg.OnRouteToleranceMeters
	}

	point := domain.Coordinate{Lat: req.Lat, Lon: req.Lon}
	onRoute, proj := utils.IsOnPath(point, path, tolerance)

	uc.logger.Debug("Location validated",
		zap.Bool("on_route", onRoute),
		zap.Float64("distance_meters", proj.DistanceMeters),
		zap.Float64("tolerance_meters", tolerance))

	return &dto.ValidateLocationResponse{
		OnRoute:        onRoute,
		DistanceMeters: proj.DistanceMeters,
		NearestPoint:   proj.NearestPoint,
	}, nil
}
