package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/scenic-route-service/internal/domain"
)

// GenerationRepository определяет методы для работы с записями генераций.
// Запись генерации пишется единственным логическим воркером запроса.
type GenerationRepository interface {
	// Create создаёт запись генерации в статусе processing
	Create(ctx context.Context, id uuid.UUID, progress int) error

	// UpdateProgress обновляет прогресс. Понижение прогресса и запись
	// в терминальный статус игнорируются на уровне хранилища.
	UpdateProgress(ctx context.Context, id uuid.UUID, progress int) error

	// Complete переводит генерацию в completed и сохраняет выбранный вариант
	Complete(ctx context.Context, id uuid.UUID, variant *domain.RouteVariant) error

	// Fail переводит генерацию в failed, прогресс замораживается
	Fail(ctx context.Context, id uuid.UUID, reason string) error

	// GetByID возвращает генерацию по идентификатору
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Generation, error)
}
