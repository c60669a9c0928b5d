package usecase

import (
	"math"

	"github.com/scenic-route-service/internal/domain"
)

// Веса компонент композитной оценки POI. Оценка считается только здесь;
// слой хранения сохраняет готовые значения и никогда их не пересчитывает.
const (
	ratingWeight     = 25.0
	popularityWeight = 20.0
	// Константные baseline-компоненты. Заглушки под будущие сигналы
	// (уникальность, историческая значимость), не реальные дифференциаторы.
	uniquenessBaseline = 7.5
	historicalBaseline = 5.0

	// Насыщение популярности: 1000 отзывов дают полный вес
	popularitySaturation = 1000.0
)

// categoryWeights - фиксированная таблица вес-за-категорию.
// Покрывает весь allow-list обнаружения; категории вне таблицы
// получают unknownCategoryWeight.
var categoryWeights = map[string]float64{
	domain.CategoryTouristAttraction: 20,
	domain.CategoryMuseum:            18,
	domain.CategoryHistoricalSite:    16,
	domain.CategoryLandmark:          15,
	domain.CategoryNaturalFeature:    14,
	domain.CategoryPark:              12,
	domain.CategoryRestaurant:        10,
}

const unknownCategoryWeight = 8.0

// ScorePOI вычисляет композитную оценку кандидата в диапазоне [0, 100].
// Функция чистая и тотальная: детерминирована для любого валидного
// кандидата, включая кандидата без рейтинга и отзывов (константные
// компоненты дают ненулевой пол).
func ScorePOI(poi domain.CandidatePOI, distanceToPathMeters float64) int {
	score := ratingComponent(poi.Rating) +
		popularityComponent(poi.ReviewCount) +
		categoryComponent(poi.Category) +
		proximityComponent(distanceToPathMeters) +
		uniquenessBaseline +
		historicalBaseline

	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

func ratingComponent(rating float64) float64 {
	if rating <= 0 {
		return 0
	}
	return (rating / 5.0) * ratingWeight
}

func popularityComponent(reviewCount int) float64 {
	if reviewCount <= 0 {
		return 0
	}
	saturated := math.Min(math.Log(float64(reviewCount))/math.Log(popularitySaturation), 1.0)
	return saturated * popularityWeight
}

func categoryComponent(category string) float64 {
	if w, ok := categoryWeights[category]; ok {
		return w
	}
	return unknownCategoryWeight
}

// proximityComponent - ступенчатая функция расстояния до baseline-пути
func proximityComponent(distanceMeters float64) float64 {
	switch {
	case distanceMeters <= 500:
		return 10
	case distanceMeters <= 1000:
		return 8
	case distanceMeters <= 2000:
		return 5
	default:
		return 2
	}
}
