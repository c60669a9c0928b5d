package repository

import (
	"context"

	"github.com/scenic-route-service/internal/domain"
)

// PlacesRepository - внешний nearby-поиск точек интереса
type PlacesRepository interface {
	// GetNearby возвращает кандидатов в радиусе radiusMeters от центра,
	// отфильтрованных по категориям. Пустой результат - не ошибка.
	GetNearby(
		ctx context.Context,
		center domain.Coordinate,
		radiusMeters float64,
		categories []string,
	) ([]domain.CandidatePOI, error)
}
