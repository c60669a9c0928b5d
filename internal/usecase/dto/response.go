package dto

import (
	"github.com/google/uuid"
	"github.com/scenic-route-service/internal/domain"
)

// GenerateRouteResponse - результат синхронной генерации
type GenerateRouteResponse struct {
	RouteID uuid.UUID               `json:"route_id"`
	Status  domain.GenerationStatus `json:"status"`
	Variant *domain.RouteVariant    `json:"variant,omitempty"`
}

// EnqueueRouteResponse - подтверждение постановки запроса в очередь
type EnqueueRouteResponse struct {
	RouteID  uuid.UUID               `json:"route_id"`
	Status   domain.GenerationStatus `json:"status"`
	Progress int                     `json:"progress"`
}

// ProgressResponse - состояние генерации для поллинга
type ProgressResponse struct {
	RouteID       uuid.UUID               `json:"route_id"`
	Status        domain.GenerationStatus `json:"status"`
	Progress      int                     `json:"progress"`
	FailureReason *string                 `json:"failure_reason,omitempty"`
}

// ValidateLocationResponse - результат проверки нахождения на маршруте
type ValidateLocationResponse struct {
	OnRoute        bool              `json:"on_route"`
	DistanceMeters float64           `json:"distance_meters"`
	NearestPoint   domain.Coordinate `json:"nearest_point"`
}

// RouteGenerateEvent - сообщение очереди на асинхронную генерацию
type RouteGenerateEvent struct {
	GenerationID uuid.UUID            `json:"generation_id"`
	Request      GenerateRouteRequest `json:"request"`
}
