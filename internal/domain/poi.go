package domain

// CandidatePOI - точка интереса, найденная рядом с baseline-путём.
// Создаётся один раз при discovery и дальше не изменяется.
type CandidatePOI struct {
	PlaceID     string     `json:"place_id"`
	Name        string     `json:"name"`
	Location    Coordinate `json:"location"`
	Category    string     `json:"category"`
	Rating      float64    `json:"rating"`       // 0..5, 0 если рейтинга нет
	ReviewCount int        `json:"review_count"` // 0 если отзывов нет

	// SampleIndex - индекс точки выборки на пути, обнаружившей этот POI.
	// Используется для детерминированного порядка и упорядочивания waypoint'ов.
	SampleIndex int `json:"sample_index"`
}

// ScoredPOI - кандидат с композитной оценкой и расстоянием до baseline-пути
type ScoredPOI struct {
	CandidatePOI
	Score                int     `json:"score"` // 0..100
	DistanceToPathMeters float64 `json:"distance_to_path_meters"`
}

// Категории POI, участвующие в discovery по умолчанию
const (
	CategoryTouristAttraction = "tourist_attraction"
	CategoryMuseum            = "museum"
	CategoryHistoricalSite    = "historical_site"
	CategoryLandmark          = "landmark"
	CategoryPark              = "park"
	CategoryRestaurant        = "restaurant"
	CategoryNaturalFeature    = "natural_feature"
)

// DefaultPOICategories - allow-list категорий для nearby-поиска
func DefaultPOICategories() []string {
	return []string{
		CategoryTouristAttraction,
		CategoryMuseum,
		CategoryHistoricalSite,
		CategoryLandmark,
		CategoryPark,
		CategoryNaturalFeature,
	}
}
