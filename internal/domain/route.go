package domain

import (
	"time"

	"github.com/google/uuid"
)

// Coordinate - географическая точка (широта/долгота)
// Порядок всегда latitude-first на всех границах системы
type Coordinate struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

// TurnStep - один шаг маршрута (манёвр) из directions-сервиса
type TurnStep struct {
	Instruction     string     `json:"instruction"`
	DistanceMeters  float64    `json:"distance_meters"`
	DurationSeconds float64    `json:"duration_seconds"`
	StartPoint      Coordinate `json:"start_point"`
	EndPoint        Coordinate `json:"end_point"`
}

// Path - упорядоченная последовательность точек маршрута
// Неизменяема после получения от directions-сервиса
type Path struct {
	Points          []Coordinate `json:"points"`
	EncodedPolyline string       `json:"encoded_polyline"`
	DistanceMeters  float64      `json:"distance_meters"`
	DurationSeconds float64      `json:"duration_seconds"`
}

// DirectionsResult - ответ directions-сервиса: путь плюс пошаговые инструкции
type DirectionsResult struct {
	Path  Path
	Steps []TurnStep
}

// RouteVariant - итоговый вариант маршрута: путь, выбранные остановки
// и прирост времени относительно baseline
type RouteVariant struct {
	Path                Path        `json:"path"`
	Steps               []TurnStep  `json:"steps"`
	Waypoints           []ScoredPOI `json:"waypoints"`
	DurationSeconds     float64     `json:"duration_seconds"`
	TimeIncreasePercent float64     `json:"time_increase_percent"`
}

// GenerationStatus - статус генерации маршрута
type GenerationStatus string

const (
	StatusProcessing GenerationStatus = "processing"
	StatusCompleted  GenerationStatus = "completed"
	StatusFailed     GenerationStatus = "failed"
)

// Контрольные точки прогресса генерации.
// Прогресс монотонно не убывает, пока статус processing.
const (
	ProgressAccepted  = 10  // запрос принят
	ProgressBaseline  = 40  // baseline-путь получен
	ProgressDiscovery = 70  // POI найдены и оценены
	ProgressDone      = 100 // вариант выбран, финальный путь получен
)

// Generation - запись одной генерации маршрута
type Generation struct {
	ID            uuid.UUID        `json:"id" db:"id"`
	Status        GenerationStatus `json:"status" db:"status"`
	Progress      int              `json:"progress" db:"progress"`
	Variant       *RouteVariant    `json:"variant,omitempty" db:"-"`
	FailureReason *string          `json:"failure_reason,omitempty" db:"failure_reason"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at" db:"updated_at"`
}

// IsTerminal сообщает, покинула ли генерация статус processing
func (g *Generation) IsTerminal() bool {
	return g.Status != StatusProcessing
}

// StreamRouteGenerate - имя Redis-стрима с запросами на генерацию
const StreamRouteGenerate = "routes:generate"

// StreamMessage - сообщение из Redis-стрима
type StreamMessage struct {
	ID   string
	Data string
}
