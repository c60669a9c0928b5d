package usecase

import (
	"context"
	"sync"

	"github.com/scenic-route-service/internal/config"
	"github.com/scenic-route-service/internal/domain"
	"github.com/scenic-route-service/internal/domain/repository"
	"go.uber.org/zap"
)

// POIDiscoveryUseCase агрегирует кандидатов POI вдоль baseline-пути
type POIDiscoveryUseCase struct {
	placesRepo repository.PlacesRepository
	logger     *zap.Logger
	cfg        config.RouteConfig
}

// NewPOIDiscoveryUseCase создает новый POIDiscoveryUseCase
func NewPOIDiscoveryUseCase(
	placesRepo repository.PlacesRepository,
	cfg config.RouteConfig,
	logger *zap.Logger,
) *POIDiscoveryUseCase {
	return &POIDiscoveryUseCase{
		placesRepo: placesRepo,
		logger:     logger,
		cfg:        cfg,
	}
}

// Discover выбирает точки на пути, опрашивает nearby-поиск вокруг каждой
// и сливает результаты. Сбой отдельной выборки логируется и пропускается:
// одна упавшая точка не отменяет discovery по остальным. Пустой итог -
// валидный результат, не ошибка.
func (uc *POIDiscoveryUseCase) Discover(
	ctx context.Context,
	path []domain.Coordinate,
	categories []string,
) []domain.CandidatePOI {
	samples := samplePathPoints(path, uc.cfg.SampleCount)
	if len(samples) == 0 {
		return nil
	}
	if len(categories) == 0 {
		categories = uc.cfg.POICategories
	}

	// Запросы по точкам выборки независимы и выполняются параллельно.
	// Результаты складываются по индексу выборки, поэтому итоговый
	// порядок детерминирован независимо от порядка ответов.
	perSample := make([][]domain.CandidatePOI, len(samples))

	var wg sync.WaitGroup
	for i, center := range samples {
		wg.Add(1)
		go func(sampleIdx int, center domain.Coordinate) {
			defer wg.Done()

			found, err := uc.placesRepo.GetNearby(ctx, center, uc.cfg.SearchRadiusMeters, categories)
			if err != nil {
				uc.logger.Warn("POI sample query failed, skipping sample",
					zap.Int("sample_index", sampleIdx),
					zap.Float64("lat", center.Lat),
					zap.Float64("lon", center.Lon),
					zap.Error(err))
				return
			}

			for j := range found {
				found[j].SampleIndex = sampleIdx
			}
			perSample[sampleIdx] = found
		}(i, center)
	}
	wg.Wait()

	// Слияние: первый встреченный place_id побеждает, то есть сохраняется
	// кандидат с меньшим индексом выборки
	seen := make(map[string]struct{})
	merged := make([]domain.CandidatePOI, 0, 32)
	for _, found := range perSample {
		for _, poi := range found {
			if _, ok := seen[poi.PlaceID]; ok {
				continue
			}
			seen[poi.PlaceID] = struct{}{}
			merged = append(merged, poi)
		}
	}

	uc.logger.Debug("POI discovery finished",
		zap.Int("samples", len(samples)),
		zap.Int("candidates", len(merged)))

	return merged
}

// samplePathPoints возвращает count точек, равномерно распределённых
// по индексам вершин пути. Равномерность по индексу, а не по дистанции:
// плотные участки геометрии сэмплируются чаще. Унаследованное смещение,
// оставлено сознательно.
func samplePathPoints(path []domain.Coordinate, count int) []domain.Coordinate {
	if len(path) == 0 || count <= 0 {
		return nil
	}
	if len(path) <= count {
		return path
	}
	if count == 1 {
		return []domain.Coordinate{path[len(path)/2]}
	}

	samples := make([]domain.Coordinate, 0, count)
	for i := 0; i < count; i++ {
		idx := i * (len(path) - 1) / (count - 1)
		samples = append(samples, path[idx])
	}
	return samples
}
