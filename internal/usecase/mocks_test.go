package usecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/scenic-route-service/internal/domain"
)

// MockGeocodingRepository is a mock of GeocodingRepository
type MockGeocodingRepository struct {
	mock.Mock
}

func (m *MockGeocodingRepository) Geocode(ctx context.Context, address string) (domain.Coordinate, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(domain.Coordinate), args.Error(1)
}

// MockDirectionsRepository is a mock of DirectionsRepository
type MockDirectionsRepository struct {
	mock.Mock
}

func (m *MockDirectionsRepository) GetDirections(
	ctx context.Context,
	origin, destination domain.Coordinate,
	waypoints []domain.Coordinate,
) (*domain.DirectionsResult, error) {
	args := m.Called(ctx, origin, destination, waypoints)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DirectionsResult), args.Error(1)
}

// MockPlacesRepository is a mock of PlacesRepository
type MockPlacesRepository struct {
	mock.Mock
}

func (m *MockPlacesRepository) GetNearby(
	ctx context.Context,
	center domain.Coordinate,
	radiusMeters float64,
	categories []string,
) ([]domain.CandidatePOI, error) {
	args := m.Called(ctx, center, radiusMeters, categories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandidatePOI), args.Error(1)
}

// MockGenerationRepository is a mock of GenerationRepository
type MockGenerationRepository struct {
	mock.Mock
}

func (m *MockGenerationRepository) Create(ctx context.Context, id uuid.UUID, progress int) error {
	args := m.Called(ctx, id, progress)
	return args.Error(0)
}

func (m *MockGenerationRepository) UpdateProgress(ctx context.Context, id uuid.UUID, progress int) error {
	args := m.Called(ctx, id, progress)
	return args.Error(0)
}

func (m *MockGenerationRepository) Complete(ctx context.Context, id uuid.UUID, variant *domain.RouteVariant) error {
	args := m.Called(ctx, id, variant)
	return args.Error(0)
}

func (m *MockGenerationRepository) Fail(ctx context.Context, id uuid.UUID, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *MockGenerationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Generation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Generation), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetGeocode(ctx context.Context, address string) (*domain.Coordinate, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coordinate), args.Error(1)
}

func (m *MockCacheRepository) SetGeocode(ctx context.Context, address string, coord domain.Coordinate, ttl time.Duration) error {
	args := m.Called(ctx, address, coord, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetDirections(ctx context.Context, key string) (*domain.DirectionsResult, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DirectionsResult), args.Error(1)
}

func (m *MockCacheRepository) SetDirections(ctx context.Context, key string, result *domain.DirectionsResult, ttl time.Duration) error {
	args := m.Called(ctx, key, result, ttl)
	return args.Error(0)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}
