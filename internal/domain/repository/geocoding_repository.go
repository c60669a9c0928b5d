package repository

import (
	"context"

	"github.com/scenic-route-service/internal/domain"
)

// GeocodingRepository - внешний геокодер (адрес -> координаты)
type GeocodingRepository interface {
	// Geocode резолвит текстовый адрес в координаты.
	// Возвращает errors.ErrLocationNotFound, если адрес не найден.
	Geocode(ctx context.Context, address string) (domain.Coordinate, error)
}
