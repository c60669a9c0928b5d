package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/scenic-route-service/internal/domain"
	"github.com/scenic-route-service/internal/domain/repository"
	"go.uber.org/zap"
)

// ProgressTracker ведёт состояние одной генерации: монотонный прогресс
// в статусе processing и единственный переход в терминальный статус.
// Писатель всегда один - воркер, обрабатывающий запрос; конкурентная
// запись одной генерации не поддерживается.
type ProgressTracker struct {
	id       uuid.UUID
	repo     repository.GenerationRepository
	logger   *zap.Logger
	current  int
	terminal bool
}

// NewProgressTracker создает трекер для существующей записи генерации
func NewProgressTracker(
	id uuid.UUID,
	repo repository.GenerationRepository,
	logger *zap.Logger,
) *ProgressTracker {
	return &ProgressTracker{
		id:     id,
		repo:   repo,
		logger: logger,
	}
}

// ID возвращает идентификатор генерации
func (t *ProgressTracker) ID() uuid.UUID {
	return t.id
}

// Checkpoint продвигает прогресс к контрольной точке. Понижение прогресса
// и запись после терминального статуса игнорируются.
func (t *ProgressTracker) Checkpoint(ctx context.Context, progress int) {
	if t.terminal || progress <= t.current {
		return
	}

	if err := t.repo.UpdateProgress(ctx, t.id, progress); err != nil {
		// Потеря одного обновления прогресса не фатальна для пайплайна
		t.logger.Warn("Failed to persist progress checkpoint",
			zap.String("generation_id", t.id.String()),
			zap.Int("progress", progress),
			zap.Error(err))
		return
	}

	t.current = progress
}

// Complete переводит генерацию в completed с прогрессом 100
func (t *ProgressTracker) Complete(ctx context.Context, variant *domain.RouteVariant) error {
	if t.terminal {
		return nil
	}

	if err := t.repo.Complete(ctx, t.id, variant); err != nil {
		t.logger.Error("Failed to mark generation completed",
			zap.String("generation_id", t.id.String()),
			zap.Error(err))
		return err
	}

	t.current = domain.ProgressDone
	t.terminal = true
	return nil
}

// Fail переводит генерацию в failed; прогресс замораживается на последнем
// достигнутом значении
func (t *ProgressTracker) Fail(ctx context.Context, reason string) {
	if t.terminal {
		return
	}

	if err := t.repo.Fail(ctx, t.id, reason); err != nil {
		t.logger.Error("Failed to mark generation failed",
			zap.String("generation_id", t.id.String()),
			zap.String("reason", reason),
			zap.Error(err))
		return
	}

	t.terminal = true
}
