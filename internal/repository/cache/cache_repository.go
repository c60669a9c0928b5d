package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/scenic-route-service/internal/domain"
	"github.com/scenic-route-service/internal/domain/repository"
	"go.uber.org/zap"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

// GetGeocode получает закешированный результат геокодирования
func (r *cacheRepository) GetGeocode(ctx context.Context, address string) (*domain.Coordinate, error) {
	data, err := r.Get(ctx, geocodeKey(address))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var coord domain.Coordinate
	if err := json.Unmarshal(data, &coord); err != nil {
		r.logger.Error("Failed to unmarshal geocode from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal geocode: %w", err)
	}

	return &coord, nil
}

// SetGeocode сохраняет результат геокодирования
func (r *cacheRepository) SetGeocode(ctx context.Context, address string, coord domain.Coordinate, ttl time.Duration) error {
	data, err := json.Marshal(coord)
	if err != nil {
		r.logger.Error("Failed to marshal geocode", zap.Error(err))
		return fmt.Errorf("marshal geocode: %w", err)
	}

	return r.Set(ctx, geocodeKey(address), data, ttl)
}

// GetDirections получает закешированный ответ directions-сервиса
func (r *cacheRepository) GetDirections(ctx context.Context, key string) (*domain.DirectionsResult, error) {
	data, err := r.Get(ctx, directionsKey(key))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var result domain.DirectionsResult
	if err := json.Unmarshal(data, &result); err != nil {
		r.logger.Error("Failed to unmarshal directions from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal directions: %w", err)
	}

	return &result, nil
}

// SetDirections сохраняет ответ directions-сервиса
func (r *cacheRepository) SetDirections(ctx context.Context, key string, result *domain.DirectionsResult, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		r.logger.Error("Failed to marshal directions", zap.Error(err))
		return fmt.Errorf("marshal directions: %w", err)
	}

	return r.Set(ctx, directionsKey(key), data, ttl)
}

func geocodeKey(address string) string {
	return "geocode:" + address
}

func directionsKey(key string) string {
	return "directions:" + key
}
