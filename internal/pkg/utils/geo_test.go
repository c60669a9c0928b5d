package utils_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenic-route-service/internal/domain"
	"github.com/scenic-route-service/internal/pkg/utils"
)

func TestHaversineDistance_KnownPairs(t *testing.T) {
	// Барселона - Мадрид, около 505 км по прямой
	d := utils.HaversineDistance(41.3851, 2.1734, 40.4168, -3.7038)
	assert.InDelta(t, 505, d, 5)

	// Нулевое расстояние до самой себя
	assert.Zero(t, utils.HaversineDistance(41.3851, 2.1734, 41.3851, 2.1734))
}

func TestDistanceToPath_PointOnVertex(t *testing.T) {
	path := []domain.Coordinate{
		{Lat: 37.4419, Lon: -122.1430},
		{Lat: 37.4000, Lon: -122.1000},
		{Lat: 37.3688, Lon: -122.0363},
	}

	proj := utils.DistanceToPath(path[1], path)
	assert.InDelta(t, 0, proj.DistanceMeters, 1e-6)
	assert.Equal(t, path[1], proj.NearestPoint)
}

func TestDistanceToPath_ProjectsOntoSegmentInterior(t *testing.T) {
	// Горизонтальный сегмент на широте 37, точка строго над серединой
	path := []domain.Coordinate{
		{Lat: 37.0, Lon: -122.0},
		{Lat: 37.0, Lon: -121.9},
	}
	p := domain.Coordinate{Lat: 37.001, Lon: -121.95}

	proj := utils.DistanceToPath(p, path)

	// Ближайшая точка лежит внутри сегмента, не на вершине
	assert.InDelta(t, 37.0, proj.NearestPoint.Lat, 1e-9)
	assert.InDelta(t, -121.95, proj.NearestPoint.Lon, 1e-4)

	// 0.001 градуса широты - примерно 111 метров
	assert.InDelta(t, 111, proj.DistanceMeters, 2)
}

func TestDistanceToPath_BeyondSegmentEndClampsToVertex(t *testing.T) {
	path := []domain.Coordinate{
		{Lat: 37.0, Lon: -122.0},
		{Lat: 37.0, Lon: -121.9},
	}
	// Точка западнее начала сегмента, проекция должна прижаться к вершине
	p := domain.Coordinate{Lat: 37.0, Lon: -122.1}

	proj := utils.DistanceToPath(p, path)
	assert.Equal(t, path[0], proj.NearestPoint)
}

func TestDistanceToPath_EmptyPath(t *testing.T) {
	proj := utils.DistanceToPath(domain.Coordinate{Lat: 1, Lon: 1}, nil)
	assert.True(t, math.IsInf(proj.DistanceMeters, 1))
}

func TestIsOnPath_ToleranceBoundary(t *testing.T) {
	path := []domain.Coordinate{
		{Lat: 37.0, Lon: -122.0},
		{Lat: 37.0, Lon: -121.9},
	}

	// ~150 м севернее пути: 0.00135 градуса широты
	near := domain.Coordinate{Lat: 37.00135, Lon: -121.95}
	onRoute, proj := utils.IsOnPath(near, path, 200)
	require.True(t, onRoute)
	assert.InDelta(t, 150, proj.DistanceMeters, 5)

	// ~250 м севернее пути
	far := domain.Coordinate{Lat: 37.00225, Lon: -121.95}
	onRoute, proj = utils.IsOnPath(far, path, 200)
	require.False(t, onRoute)
	assert.InDelta(t, 250, proj.DistanceMeters, 5)
}

func TestPathLengthMeters(t *testing.T) {
	path := []domain.Coordinate{
		{Lat: 37.0, Lon: -122.0},
		{Lat: 37.0, Lon: -121.9},
		{Lat: 37.0, Lon: -121.8},
	}

	// 0.2 градуса долготы на широте 37: ~17.8 км
	total := utils.PathLengthMeters(path)
	assert.InDelta(t, 17760, total, 100)

	assert.Zero(t, utils.PathLengthMeters(nil))
	assert.Zero(t, utils.PathLengthMeters(path[:1]))
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, utils.ValidateCoordinates(37.4419, -122.1430))
	assert.True(t, utils.ValidateCoordinates(-90, 180))
	assert.False(t, utils.ValidateCoordinates(90.1, 0))
	assert.False(t, utils.ValidateCoordinates(0, -180.5))
}
