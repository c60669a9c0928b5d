package repository

import (
	"context"
	"time"

	"github.com/scenic-route-service/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// Exists проверяет существование ключа
	Exists(ctx context.Context, key string) (bool, error)

	// GetGeocode получает закешированный результат геокодирования
	GetGeocode(ctx context.Context, address string) (*domain.Coordinate, error)

	// SetGeocode сохраняет результат геокодирования
	SetGeocode(ctx context.Context, address string, coord domain.Coordinate, ttl time.Duration) error

	// GetDirections получает закешированный ответ directions-сервиса
	GetDirections(ctx context.Context, key string) (*domain.DirectionsResult, error)

	// SetDirections сохраняет ответ directions-сервиса
	SetDirections(ctx context.Context, key string, result *domain.DirectionsResult, ttl time.Duration) error
}
