package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scenic-route-service/internal/domain"
	"github.com/scenic-route-service/internal/pkg/errors"
	"github.com/scenic-route-service/internal/usecase"
)

var (
	selOrigin      = domain.Coordinate{Lat: 37.4419, Lon: -122.1430}
	selDestination = domain.Coordinate{Lat: 37.3688, Lon: -122.0363}
)

func baselineResult(durationSeconds float64) *domain.DirectionsResult {
	return &domain.DirectionsResult{
		Path: domain.Path{
			Points:          []domain.Coordinate{selOrigin, selDestination},
			DistanceMeters:  17000,
			DurationSeconds: durationSeconds,
		},
	}
}

func directionsWithDuration(durationSeconds float64) *domain.DirectionsResult {
	return &domain.DirectionsResult{
		Path: domain.Path{
			Points:          []domain.Coordinate{selOrigin, selDestination},
			DurationSeconds: durationSeconds,
		},
	}
}

func scoredPOI(id string, score int, sampleIndex int, distance float64) domain.ScoredPOI {
	return domain.ScoredPOI{
		CandidatePOI: domain.CandidatePOI{
			PlaceID: id,
			Name:    id,
			Location: domain.Coordinate{
				Lat: 37.4 + float64(sampleIndex)*0.01,
				Lon: -122.1 + float64(len(id))*0.001,
			},
			SampleIndex: sampleIndex,
		},
		Score:                score,
		DistanceToPathMeters: distance,
	}
}

func TestVariantSelector_NeverExceedsBudget(t *testing.T) {
	logger := zap.NewNop()
	mockDirections := &MockDirectionsRepository{}
	sel := usecase.NewVariantSelectorUseCase(mockDirections, logger)

	baseline := baselineResult(1000)
	ranked := []domain.ScoredPOI{
		scoredPOI("top", 90, 0, 100),
		scoredPOI("second", 80, 1, 200),
	}

	// top укладывается в бюджет, second - нет
	mockDirections.On("GetDirections", mock.Anything, selOrigin, selDestination,
		mock.MatchedBy(func(wps []domain.Coordinate) bool { return len(wps) == 1 })).
		Return(directionsWithDuration(1150), nil)
	mockDirections.On("GetDirections", mock.Anything, selOrigin, selDestination,
		mock.MatchedBy(func(wps []domain.Coordinate) bool { return len(wps) == 2 })).
		Return(directionsWithDuration(1500), nil)

	variant, err := sel.Select(context.Background(), selOrigin, selDestination, baseline, ranked, 20, 0, 8)
	require.NoError(t, err)

	require.Len(t, variant.Waypoints, 1)
	assert.Equal(t, "top", variant.Waypoints[0].PlaceID)
	assert.LessOrEqual(t, variant.DurationSeconds, 1200.0)
	assert.InDelta(t, 15.0, variant.TimeIncreasePercent, 0.001)
}

func TestVariantSelector_SkipsOverBudgetAndContinues(t *testing.T) {
	logger := zap.NewNop()
	mockDirections := &MockDirectionsRepository{}
	sel := usecase.NewVariantSelectorUseCase(mockDirections, logger)

	baseline := baselineResult(1000)
	far := scoredPOI("far-detour", 95, 0, 1900)
	near := scoredPOI("near", 70, 1, 100)

	// Лучший по оценке кандидат пробивает бюджет, следующий - нет
	mockDirections.On("GetDirections", mock.Anything, selOrigin, selDestination,
		mock.MatchedBy(func(wps []domain.Coordinate) bool {
			return len(wps) == 1 && wps[0] == far.Location
		})).Return(directionsWithDuration(1400), nil).Once()
	mockDirections.On("GetDirections", mock.Anything, selOrigin, selDestination,
		mock.MatchedBy(func(wps []domain.Coordinate) bool {
			return len(wps) == 1 && wps[0] == near.Location
		})).Return(directionsWithDuration(1100), nil).Once()

	variant, err := sel.Select(context.Background(), selOrigin, selDestination, baseline,
		[]domain.ScoredPOI{far, near}, 20, 0, 8)
	require.NoError(t, err)

	require.Len(t, variant.Waypoints, 1)
	assert.Equal(t, "near", variant.Waypoints[0].PlaceID)
}

func TestVariantSelector_StopsAtMaxStops(t *testing.T) {
	logger := zap.NewNop()
	mockDirections := &MockDirectionsRepository{}
	sel := usecase.NewVariantSelectorUseCase(mockDirections, logger)

	baseline := baselineResult(1000)
	ranked := []domain.ScoredPOI{
		scoredPOI("p1", 90, 0, 100),
		scoredPOI("p2", 85, 1, 100),
		scoredPOI("p3", 80, 2, 100),
	}

	// Каждое добавление дешёвое, но maxStops равен 2
	mockDirections.On("GetDirections", mock.Anything, selOrigin, selDestination, mock.Anything).
		Return(directionsWithDuration(1050), nil)

	variant, err := sel.Select(context.Background(), selOrigin, selDestination, baseline, ranked, 20, 0, 2)
	require.NoError(t, err)

	assert.Len(t, variant.Waypoints, 2)
	// Третий кандидат даже не пробовался
	mockDirections.AssertNumberOfCalls(t, "GetDirections", 2)
}

func TestVariantSelector_FewerThanMinStopsIsNotAnError(t *testing.T) {
	logger := zap.NewNop()
	mockDirections := &MockDirectionsRepository{}
	sel := usecase.NewVariantSelectorUseCase(mockDirections, logger)

	baseline := baselineResult(1000)
	ranked := []domain.ScoredPOI{
		scoredPOI("p1", 90, 0, 100),
		scoredPOI("p2", 85, 1, 100),
	}

	// Ни один кандидат не помещается в бюджет
	mockDirections.On("GetDirections", mock.Anything, selOrigin, selDestination, mock.Anything).
		Return(directionsWithDuration(2000), nil)

	variant, err := sel.Select(context.Background(), selOrigin, selDestination, baseline, ranked, 20, 3, 8)
	require.NoError(t, err)

	// Возвращается baseline без остановок, а не ошибка
	assert.Empty(t, variant.Waypoints)
	assert.Equal(t, 1000.0, variant.DurationSeconds)
	assert.Zero(t, variant.TimeIncreasePercent)
}

func TestVariantSelector_DirectionsFailureSkipsCandidate(t *testing.T) {
	logger := zap.NewNop()
	mockDirections := &MockDirectionsRepository{}
	sel := usecase.NewVariantSelectorUseCase(mockDirections, logger)

	baseline := baselineResult(1000)
	unreachable := scoredPOI("island", 95, 0, 100)
	reachable := scoredPOI("mainland", 80, 1, 100)

	mockDirections.On("GetDirections", mock.Anything, selOrigin, selDestination,
		mock.MatchedBy(func(wps []domain.Coordinate) bool {
			return len(wps) == 1 && wps[0] == unreachable.Location
		})).Return(nil, errors.ErrNoViableRoute).Once()
	mockDirections.On("GetDirections", mock.Anything, selOrigin, selDestination,
		mock.MatchedBy(func(wps []domain.Coordinate) bool {
			return len(wps) == 1 && wps[0] == reachable.Location
		})).Return(directionsWithDuration(1100), nil).Once()

	variant, err := sel.Select(context.Background(), selOrigin, selDestination, baseline,
		[]domain.ScoredPOI{unreachable, reachable}, 20, 0, 8)
	require.NoError(t, err)

	require.Len(t, variant.Waypoints, 1)
	assert.Equal(t, "mainland", variant.Waypoints[0].PlaceID)
}

func TestVariantSelector_WaypointsOrderedAlongPath(t *testing.T) {
	logger := zap.NewNop()
	mockDirections := &MockDirectionsRepository{}
	sel := usecase.NewVariantSelectorUseCase(mockDirections, logger)

	baseline := baselineResult(1000)
	// Лучший по оценке кандидат лежит дальше по маршруту
	late := scoredPOI("late", 95, 3, 100)
	early := scoredPOI("early", 90, 0, 100)

	mockDirections.On("GetDirections", mock.Anything, selOrigin, selDestination, mock.Anything).
		Return(directionsWithDuration(1100), nil)

	variant, err := sel.Select(context.Background(), selOrigin, selDestination, baseline,
		[]domain.ScoredPOI{late, early}, 20, 0, 8)
	require.NoError(t, err)

	require.Len(t, variant.Waypoints, 2)
	assert.Equal(t, "early", variant.Waypoints[0].PlaceID)
	assert.Equal(t, "late", variant.Waypoints[1].PlaceID)
}

func TestRankPOIs_TieBreaking(t *testing.T) {
	a := scoredPOI("far", 80, 0, 900)
	b := scoredPOI("close", 80, 1, 100)
	c := scoredPOI("best", 95, 2, 500)
	d := scoredPOI("same-as-close", 80, 3, 100)

	ranked := usecase.RankPOIs([]domain.ScoredPOI{a, b, c, d})

	require.Len(t, ranked, 4)
	assert.Equal(t, "best", ranked[0].PlaceID)
	// Равная оценка: ближе к пути выигрывает
	assert.Equal(t, "close", ranked[1].PlaceID)
	// Равная оценка и расстояние: порядок обнаружения стабилен
	assert.Equal(t, "same-as-close", ranked[2].PlaceID)
	assert.Equal(t, "far", ranked[3].PlaceID)
}
