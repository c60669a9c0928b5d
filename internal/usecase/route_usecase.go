package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/scenic-route-service/internal/config"
	"github.com/scenic-route-service/internal/domain"
	"github.com/scenic-route-service/internal/domain/repository"
	"github.com/scenic-route-service/internal/pkg/errors"
	"github.com/scenic-route-service/internal/pkg/utils"
	"github.com/scenic-route-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// RouteUseCase - пайплайн генерации живописного маршрута:
// геокодирование -> baseline-путь -> discovery POI -> скоринг ->
// выбор варианта в бюджете времени.
type RouteUseCase struct {
	geocodingRepo  repository.GeocodingRepository
	directionsRepo repository.DirectionsRepository
	generationRepo repository.GenerationRepository
	cacheRepo      repository.CacheRepository
	streamRepo     repository.StreamRepository
	discoveryUC    *POIDiscoveryUseCase
	selectorUC     *VariantSelectorUseCase
	logger         *zap.Logger
	routeCfg       config.RouteConfig
	cacheCfg       config.CacheConfig
}

// NewRouteUseCase создает новый RouteUseCase
func NewRouteUseCase(
	geocodingRepo repository.GeocodingRepository,
	directionsRepo repository.DirectionsRepository,
	generationRepo repository.GenerationRepository,
	cacheRepo repository.CacheRepository,
	streamRepo repository.StreamRepository,
	discoveryUC *POIDiscoveryUseCase,
	selectorUC *VariantSelectorUseCase,
	routeCfg config.RouteConfig,
	cacheCfg config.CacheConfig,
	logger *zap.Logger,
) *RouteUseCase {
	return &RouteUseCase{
		geocodingRepo:  geocodingRepo,
		directionsRepo: directionsRepo,
		generationRepo: generationRepo,
		cacheRepo:      cacheRepo,
		streamRepo:     streamRepo,
		discoveryUC:    discoveryUC,
		selectorUC:     selectorUC,
		logger:         logger,
		routeCfg:       routeCfg,
		cacheCfg:       cacheCfg,
	}
}

// Generate - синхронная генерация: создаёт запись, прогоняет пайплайн
// и возвращает выбранный вариант
func (uc *RouteUseCase) Generate(ctx context.Context, req dto.GenerateRouteRequest) (*dto.GenerateRouteResponse, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, err
	}

	id := uuid.New()
	if err := uc.generationRepo.Create(ctx, id, domain.ProgressAccepted); err != nil {
		uc.logger.Error("Failed to create generation record", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	tracker := NewProgressTracker(id, uc.generationRepo, uc.logger)
	tracker.Checkpoint(ctx, domain.ProgressAccepted)

	variant, err := uc.runPipeline(ctx, tracker, req)
	if err != nil {
		return nil, err
	}

	return &dto.GenerateRouteResponse{
		RouteID: id,
		Status:  domain.StatusCompleted,
		Variant: variant,
	}, nil
}

// Enqueue - асинхронная генерация: создаёт запись и публикует событие
// в стрим; пайплайн выполнит воркер
func (uc *RouteUseCase) Enqueue(ctx context.Context, req dto.GenerateRouteRequest) (*dto.EnqueueRouteResponse, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, err
	}

	id := uuid.New()
	if err := uc.generationRepo.Create(ctx, id, domain.ProgressAccepted); err != nil {
		uc.logger.Error("Failed to create generation record", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	event := dto.RouteGenerateEvent{GenerationID: id, Request: req}
	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamRouteGenerate, event); err != nil {
		uc.logger.Error("Failed to publish generation event",
			zap.String("generation_id", id.String()),
			zap.Error(err))
		// Запись уже создана - фиксируем сбой, чтобы клиент не ждал вечно
		if failErr := uc.generationRepo.Fail(ctx, id, "failed to enqueue generation request"); failErr != nil {
			uc.logger.Error("Failed to mark generation failed", zap.Error(failErr))
		}
		return nil, errors.ErrInternalServer
	}

	return &dto.EnqueueRouteResponse{
		RouteID:  id,
		Status:   domain.StatusProcessing,
		Progress: domain.ProgressAccepted,
	}, nil
}

// Process выполняет пайплайн для уже созданной записи генерации.
// Используется воркером асинхронной очереди.
func (uc *RouteUseCase) Process(ctx context.Context, event dto.RouteGenerateEvent) error {
	tracker := NewProgressTracker(event.GenerationID, uc.generationRepo, uc.logger)
	tracker.Checkpoint(ctx, domain.ProgressAccepted)

	_, err := uc.runPipeline(ctx, tracker, event.Request)
	return err
}

// runPipeline - общее тело пайплайна. Любая фатальная ошибка переводит
// генерацию в failed до возврата наружу.
func (uc *RouteUseCase) runPipeline(
	ctx context.Context,
	tracker *ProgressTracker,
	req dto.GenerateRouteRequest,
) (*domain.RouteVariant, error) {
	// 1. Resolve locations
	origin, err := uc.resolveLocation(ctx, req.Start)
	if err != nil {
		tracker.Fail(ctx, fmt.Sprintf("failed to resolve start location: %v", err))
		return nil, err
	}
	destination, err := uc.resolveLocation(ctx, req.End)
	if err != nil {
		tracker.Fail(ctx, fmt.Sprintf("failed to resolve end location: %v", err))
		return nil, err
	}

	// 2. Baseline path
	baseline, err := uc.baselineDirections(ctx, origin, destination)
	if err != nil {
		tracker.Fail(ctx, fmt.Sprintf("failed to get baseline path: %v", err))
		return nil, err
	}
	tracker.Checkpoint(ctx, domain.ProgressBaseline)

	uc.logger.Info("Baseline path obtained",
		zap.String("generation_id", tracker.ID().String()),
		zap.Float64("distance_meters", baseline.Path.DistanceMeters),
		zap.Float64("duration_seconds", baseline.Path.DurationSeconds),
		zap.Int("points", len(baseline.Path.Points)))

	// 3. Discover and score POIs. Discovery не фатален: пустой список
	// кандидатов означает baseline-маршрут без остановок.
	candidates := uc.discoveryUC.Discover(ctx, baseline.Path.Points, uc.interestCategories(req.Preferences.Interests))
	scored := uc.scoreCandidates(candidates, baseline.Path.Points)
	ranked := RankPOIs(scored)

	// Потолок кандидатов применяется после скоринга, чтобы скоринг
	// видел весь найденный набор
	if len(ranked) > uc.routeCfg.MaxCandidates {
		ranked = ranked[:uc.routeCfg.MaxCandidates]
	}
	tracker.Checkpoint(ctx, domain.ProgressDiscovery)

	// 4. Select variant
	prefs := uc.effectivePreferences(req.Preferences)
	variant, err := uc.selectorUC.Select(
		ctx, origin, destination, baseline, ranked,
		*prefs.MaxTimeIncreasePercent, *prefs.MinStops, *prefs.MaxStops)
	if err != nil {
		tracker.Fail(ctx, fmt.Sprintf("failed to select route variant: %v", err))
		return nil, err
	}

	if err := tracker.Complete(ctx, variant); err != nil {
		return nil, errors.ErrDatabaseError
	}

	uc.logger.Info("Route generation completed",
		zap.String("generation_id", tracker.ID().String()),
		zap.Int("waypoints", len(variant.Waypoints)),
		zap.Float64("duration_seconds", variant.DurationSeconds),
		zap.Float64("time_increase_percent", variant.TimeIncreasePercent))

	return variant, nil
}

// GetProgress возвращает состояние генерации для поллинга
func (uc *RouteUseCase) GetProgress(ctx context.Context, id uuid.UUID) (*dto.ProgressResponse, error) {
	gen, err := uc.generationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.ProgressResponse{
		RouteID:       gen.ID,
		Status:        gen.Status,
		Progress:      gen.Progress,
		FailureReason: gen.FailureReason,
	}, nil
}

// GetGeneration возвращает генерацию целиком, включая выбранный вариант
func (uc *RouteUseCase) GetGeneration(ctx context.Context, id uuid.UUID) (*domain.Generation, error) {
	return uc.generationRepo.GetByID(ctx, id)
}

// validateRequest отбрасывает некорректный ввод до любых внешних вызовов
func (uc *RouteUseCase) validateRequest(req dto.GenerateRouteRequest) error {
	for _, loc := range []dto.LocationInput{req.Start, req.End} {
		if loc.Address == "" && !loc.HasCoordinates() {
			return errors.ErrMissingLocation
		}
		if loc.HasCoordinates() && !utils.ValidateCoordinates(*loc.Lat, *loc.Lon) {
			return errors.ErrInvalidCoordinates
		}
	}

	p := req.Preferences
	if p.MinStops != nil && p.MaxStops != nil && *p.MinStops > *p.MaxStops {
		return errors.ErrInvalidRequest.WithReason("min_stops exceeds max_stops")
	}

	return nil
}

// resolveLocation приводит вход к координатам, геокодируя адрес при
// необходимости (с кешем)
func (uc *RouteUseCase) resolveLocation(ctx context.Context, loc dto.LocationInput) (domain.Coordinate, error) {
	if loc.HasCoordinates() {
		return domain.Coordinate{Lat: *loc.Lat, Lon: *loc.Lon}, nil
	}

	if cached, err := uc.cacheRepo.GetGeocode(ctx, loc.Address); err == nil && cached != nil {
		return *cached, nil
	}

	coord, err := uc.geocodingRepo.Geocode(ctx, loc.Address)
	if err != nil {
		return domain.Coordinate{}, err
	}

	if err := uc.cacheRepo.SetGeocode(ctx, loc.Address, coord, uc.cacheCfg.GeocodeCacheTTL); err != nil {
		uc.logger.Warn("Failed to cache geocode result", zap.Error(err))
	}

	return coord, nil
}

// baselineDirections получает baseline-путь, сначала заглядывая в кеш
func (uc *RouteUseCase) baselineDirections(ctx context.Context, origin, destination domain.Coordinate) (*domain.DirectionsResult, error) {
	key := fmt.Sprintf("%f,%f|%f,%f", origin.Lat, origin.Lon, destination.Lat, destination.Lon)

	if cached, err := uc.cacheRepo.GetDirections(ctx, key); err == nil && cached != nil {
		return cached, nil
	}

	result, err := uc.directionsRepo.GetDirections(ctx, origin, destination, nil)
	if err != nil {
		return nil, err
	}

	if err := uc.cacheRepo.SetDirections(ctx, key, result, uc.cacheCfg.DirectionsCacheTTL); err != nil {
		uc.logger.Warn("Failed to cache directions result", zap.Error(err))
	}

	return result, nil
}

// scoreCandidates считает оценку и расстояние до пути для каждого кандидата
func (uc *RouteUseCase) scoreCandidates(candidates []domain.CandidatePOI, path []domain.Coordinate) []domain.ScoredPOI {
	scored := make([]domain.ScoredPOI, 0, len(candidates))
	for _, c := range candidates {
		proj := utils.DistanceToPath(c.Location, path)
		scored = append(scored, domain.ScoredPOI{
			CandidatePOI:         c,
			Score:                ScorePOI(c, proj.DistanceMeters),
			DistanceToPathMeters: proj.DistanceMeters,
		})
	}
	return scored
}

// interestCategories сводит интересы пользователя к известным категориям;
// пустой ввод означает allow-list по умолчанию
func (uc *RouteUseCase) interestCategories(interests []string) []string {
	if len(interests) == 0 {
		return nil
	}

	known := make(map[string]struct{}, len(uc.routeCfg.POICategories))
	for _, c := range uc.routeCfg.POICategories {
		known[c] = struct{}{}
	}

	result := make([]string, 0, len(interests))
	for _, interest := range interests {
		if _, ok := known[interest]; ok {
			result = append(result, interest)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// effectivePreferences накладывает дефолты конфигурации на предпочтения
func (uc *RouteUseCase) effectivePreferences(p dto.RoutePreferences) dto.RoutePreferences {
	if p.MaxTimeIncreasePercent == nil {
		v := uc.routeCfg.MaxTimeIncreasePercent
		p.MaxTimeIncreasePercent = &v
	}
	if p.MinStops == nil {
		v := uc.routeCfg.MinStops
		p.MinStops = &v
	}
	if p.MaxStops == nil {
		v := uc.routeCfg.MaxStops
		p.MaxStops = &v
	}
	return p
}
