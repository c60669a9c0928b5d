package usecase

import (
	"context"
	"sort"

	"github.com/scenic-route-service/internal/domain"
	"github.com/scenic-route-service/internal/domain/repository"
	"go.uber.org/zap"
)

// VariantSelectorUseCase подбирает подмножество POI-остановок в рамках
// бюджета прироста времени.
//
// Жадная стратегия: кандидаты пробуются в порядке убывания оценки, после
// каждого добавления у directions-сервиса запрашивается новый маршрут,
// добавление принимается только если прирост длительности укладывается
// в бюджет. Это сознательное упрощение комбинаторного оптимума, а не
// оптимальный решатель.
type VariantSelectorUseCase struct {
	directionsRepo repository.DirectionsRepository
	logger         *zap.Logger
}

// NewVariantSelectorUseCase создает новый VariantSelectorUseCase
func NewVariantSelectorUseCase(
	directionsRepo repository.DirectionsRepository,
	logger *zap.Logger,
) *VariantSelectorUseCase {
	return &VariantSelectorUseCase{
		directionsRepo: directionsRepo,
		logger:         logger,
	}
}

// RankPOIs упорядочивает оценённых кандидатов: по убыванию оценки,
// при равенстве - ближе к пути, затем по порядку обнаружения (стабильно)
func RankPOIs(pois []domain.ScoredPOI) []domain.ScoredPOI {
	ranked := make([]domain.ScoredPOI, len(pois))
	copy(ranked, pois)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].DistanceToPathMeters < ranked[j].DistanceToPathMeters
	})

	return ranked
}

// Select строит итоговый вариант маршрута. ranked должен быть отсортирован
// по убыванию оценки (RankPOIs). Если в бюджет помещается меньше minStops
// остановок, возвращается вариант с тем количеством, что поместилось.
func (uc *VariantSelectorUseCase) Select(
	ctx context.Context,
	origin, destination domain.Coordinate,
	baseline *domain.DirectionsResult,
	ranked []domain.ScoredPOI,
	maxTimeIncreasePercent float64,
	minStops, maxStops int,
) (*domain.RouteVariant, error) {
	baselineDuration := baseline.Path.DurationSeconds
	budgetSeconds := baselineDuration * (1 + maxTimeIncreasePercent/100)

	best := &domain.RouteVariant{
		Path:                baseline.Path,
		Steps:               baseline.Steps,
		Waypoints:           []domain.ScoredPOI{},
		DurationSeconds:     baselineDuration,
		TimeIncreasePercent: 0,
	}

	accepted := make([]domain.ScoredPOI, 0, maxStops)

	for _, poi := range ranked {
		if len(accepted) >= maxStops {
			break
		}

		tentative := orderAlongPath(append(append([]domain.ScoredPOI{}, accepted...), poi))
		result, err := uc.directionsRepo.GetDirections(
			ctx, origin, destination, waypointCoordinates(tentative))
		if err != nil {
			// Нет маршрута через этого кандидата - пробуем следующего
			uc.logger.Warn("Directions failed for tentative waypoint set, skipping POI",
				zap.String("place_id", poi.PlaceID),
				zap.Int("stops", len(tentative)),
				zap.Error(err))
			continue
		}

		if result.Path.DurationSeconds > budgetSeconds {
			uc.logger.Debug("POI breaches time budget, skipping",
				zap.String("place_id", poi.PlaceID),
				zap.Float64("duration_seconds", result.Path.DurationSeconds),
				zap.Float64("budget_seconds", budgetSeconds))
			continue
		}

		accepted = tentative
		best = &domain.RouteVariant{
			Path:            result.Path,
			Steps:           result.Steps,
			Waypoints:       accepted,
			DurationSeconds: result.Path.DurationSeconds,
		}
		if baselineDuration > 0 {
			best.TimeIncreasePercent = (result.Path.DurationSeconds - baselineDuration) / baselineDuration * 100
		}
	}

	if len(accepted) < minStops {
		uc.logger.Info("Fewer stops than requested minimum fit the time budget",
			zap.Int("accepted", len(accepted)),
			zap.Int("min_stops", minStops),
			zap.Float64("budget_percent", maxTimeIncreasePercent))
	}

	return best, nil
}

// orderAlongPath упорядочивает остановки вдоль baseline-пути: по индексу
// выборки, при равенстве - стабильно по порядку добавления. Directions-сервис
// не переставляет waypoint'ы сам, порядок посещения задаём мы.
func orderAlongPath(pois []domain.ScoredPOI) []domain.ScoredPOI {
	ordered := make([]domain.ScoredPOI, len(pois))
	copy(ordered, pois)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SampleIndex < ordered[j].SampleIndex
	})
	return ordered
}

func waypointCoordinates(pois []domain.ScoredPOI) []domain.Coordinate {
	coords := make([]domain.Coordinate, len(pois))
	for i, poi := range pois {
		coords[i] = poi.Location
	}
	return coords
}
