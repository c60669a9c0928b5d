package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scenic-route-service/internal/config"
	"github.com/scenic-route-service/internal/domain"
	"github.com/scenic-route-service/internal/usecase"
)

func discoveryConfig() config.RouteConfig {
	return config.RouteConfig{
		SampleCount:        3,
		SearchRadiusMeters: 3000,
		POICategories:      domain.DefaultPOICategories(),
	}
}

// testPath - 5 вершин, при 3 выборках опрашиваются индексы 0, 2, 4
func testPath() []domain.Coordinate {
	return []domain.Coordinate{
		{Lat: 37.44, Lon: -122.14},
		{Lat: 37.42, Lon: -122.12},
		{Lat: 37.40, Lon: -122.10},
		{Lat: 37.38, Lon: -122.07},
		{Lat: 37.37, Lon: -122.04},
	}
}

func TestPOIDiscovery_DeduplicatesByPlaceID(t *testing.T) {
	logger := zap.NewNop()
	mockPlaces := &MockPlacesRepository{}
	path := testPath()

	shared := domain.CandidatePOI{PlaceID: "dup", Name: "Seen twice"}

	// Один и тот же place_id возвращается с первой и последней выборки
	mockPlaces.On("GetNearby", mock.Anything, path[0], 3000.0, mock.Anything).
		Return([]domain.CandidatePOI{shared, {PlaceID: "a", Name: "A"}}, nil)
	mockPlaces.On("GetNearby", mock.Anything, path[2], 3000.0, mock.Anything).
		Return([]domain.CandidatePOI{{PlaceID: "b", Name: "B"}}, nil)
	mockPlaces.On("GetNearby", mock.Anything, path[4], 3000.0, mock.Anything).
		Return([]domain.CandidatePOI{shared}, nil)

	uc := usecase.NewPOIDiscoveryUseCase(mockPlaces, discoveryConfig(), logger)
	merged := uc.Discover(context.Background(), path, nil)

	require.Len(t, merged, 3)

	byID := make(map[string]domain.CandidatePOI)
	for _, poi := range merged {
		byID[poi.PlaceID] = poi
	}

	// Дубль сохранён ровно один раз, с меньшим индексом выборки
	require.Contains(t, byID, "dup")
	assert.Equal(t, 0, byID["dup"].SampleIndex)
	assert.Equal(t, 1, byID["b"].SampleIndex)
}

func TestPOIDiscovery_SampleFailureDoesNotAbortOthers(t *testing.T) {
	logger := zap.NewNop()
	mockPlaces := &MockPlacesRepository{}
	path := testPath()

	mockPlaces.On("GetNearby", mock.Anything, path[0], 3000.0, mock.Anything).
		Return(nil, errors.New("upstream timeout"))
	mockPlaces.On("GetNearby", mock.Anything, path[2], 3000.0, mock.Anything).
		Return([]domain.CandidatePOI{{PlaceID: "b", Name: "B"}}, nil)
	mockPlaces.On("GetNearby", mock.Anything, path[4], 3000.0, mock.Anything).
		Return([]domain.CandidatePOI{{PlaceID: "c", Name: "C"}}, nil)

	uc := usecase.NewPOIDiscoveryUseCase(mockPlaces, discoveryConfig(), logger)
	merged := uc.Discover(context.Background(), path, nil)

	require.Len(t, merged, 2)
	assert.Equal(t, "b", merged[0].PlaceID)
	assert.Equal(t, "c", merged[1].PlaceID)
}

func TestPOIDiscovery_EmptyResultsIsNotAnError(t *testing.T) {
	logger := zap.NewNop()
	mockPlaces := &MockPlacesRepository{}

	mockPlaces.On("GetNearby", mock.Anything, mock.Anything, 3000.0, mock.Anything).
		Return([]domain.CandidatePOI{}, nil)

	uc := usecase.NewPOIDiscoveryUseCase(mockPlaces, discoveryConfig(), logger)
	merged := uc.Discover(context.Background(), testPath(), nil)

	assert.Empty(t, merged)
}

func TestPOIDiscovery_EmptyPath(t *testing.T) {
	logger := zap.NewNop()
	mockPlaces := &MockPlacesRepository{}

	uc := usecase.NewPOIDiscoveryUseCase(mockPlaces, discoveryConfig(), logger)
	merged := uc.Discover(context.Background(), nil, nil)

	assert.Empty(t, merged)
	mockPlaces.AssertNotCalled(t, "GetNearby")
}

func TestPOIDiscovery_DeterministicMergeOrder(t *testing.T) {
	logger := zap.NewNop()
	mockPlaces := &MockPlacesRepository{}
	path := testPath()

	mockPlaces.On("GetNearby", mock.Anything, path[0], 3000.0, mock.Anything).
		Return([]domain.CandidatePOI{{PlaceID: "a1"}, {PlaceID: "a2"}}, nil)
	mockPlaces.On("GetNearby", mock.Anything, path[2], 3000.0, mock.Anything).
		Return([]domain.CandidatePOI{{PlaceID: "b1"}}, nil)
	mockPlaces.On("GetNearby", mock.Anything, path[4], 3000.0, mock.Anything).
		Return([]domain.CandidatePOI{{PlaceID: "c1"}}, nil)

	uc := usecase.NewPOIDiscoveryUseCase(mockPlaces, discoveryConfig(), logger)

	// Порядок слияния не зависит от порядка завершения горутин
	for i := 0; i < 10; i++ {
		merged := uc.Discover(context.Background(), path, nil)
		require.Len(t, merged, 4)
		assert.Equal(t, "a1", merged[0].PlaceID)
		assert.Equal(t, "a2", merged[1].PlaceID)
		assert.Equal(t, "b1", merged[2].PlaceID)
		assert.Equal(t, "c1", merged[3].PlaceID)
	}
}
