package repository

import (
	"context"

	"github.com/scenic-route-service/internal/domain"
)

// DirectionsRepository - внешний directions-сервис
type DirectionsRepository interface {
	// GetDirections строит маршрут origin -> destination через waypoints
	// (в переданном порядке). Возвращает errors.ErrNoViableRoute, если
	// проезжаемого маршрута не существует.
	GetDirections(
		ctx context.Context,
		origin, destination domain.Coordinate,
		waypoints []domain.Coordinate,
	) (*domain.DirectionsResult, error)
}
