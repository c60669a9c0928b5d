package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/scenic-route-service/internal/domain"
	"github.com/scenic-route-service/internal/domain/repository"
	"github.com/scenic-route-service/internal/pkg/errors"
	"go.uber.org/zap"
)

type generationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewGenerationRepository(db *DB) repository.GenerationRepository {
	return &generationRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *generationRepository) Create(ctx context.Context, id uuid.UUID, progress int) error {
	query := `
		INSERT INTO route_generations (id, status, progress, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`

	if _, err := r.db.ExecContext(ctx, query, id, domain.StatusProcessing, progress); err != nil {
		r.logger.Error("Failed to create generation",
			zap.String("id", id.String()),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

// UpdateProgress повышает прогресс. Монотонность гарантирует предикат:
// строка с большим прогрессом или в терминальном статусе не трогается.
func (r *generationRepository) UpdateProgress(ctx context.Context, id uuid.UUID, progress int) error {
	query := `
		UPDATE route_generations
		SET progress = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3 AND progress < $2
	`

	if _, err := r.db.ExecContext(ctx, query, id, progress, domain.StatusProcessing); err != nil {
		r.logger.Error("Failed to update generation progress",
			zap.String("id", id.String()),
			zap.Int("progress", progress),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *generationRepository) Complete(ctx context.Context, id uuid.UUID, variant *domain.RouteVariant) error {
	variantJSON, err := json.Marshal(variant)
	if err != nil {
		r.logger.Error("Failed to marshal route variant",
			zap.String("id", id.String()),
			zap.Error(err))
		return errors.ErrInternalServer
	}

	query := `
		UPDATE route_generations
		SET status = $2, progress = $3, variant = $4, updated_at = NOW()
		WHERE id = $1 AND status = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		id, domain.StatusCompleted, domain.ProgressDone, variantJSON, domain.StatusProcessing)
	if err != nil {
		r.logger.Error("Failed to complete generation",
			zap.String("id", id.String()),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		// Уже терминальна либо не существует
		r.logger.Warn("Complete skipped: generation not in processing state",
			zap.String("id", id.String()))
	}

	return nil
}

func (r *generationRepository) Fail(ctx context.Context, id uuid.UUID, reason string) error {
	query := `
		UPDATE route_generations
		SET status = $2, failure_reason = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4
	`

	if _, err := r.db.ExecContext(ctx, query, id, domain.StatusFailed, reason, domain.StatusProcessing); err != nil {
		r.logger.Error("Failed to mark generation failed",
			zap.String("id", id.String()),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *generationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Generation, error) {
	query := `
		SELECT id, status, progress, variant, failure_reason, created_at, updated_at
		FROM route_generations
		WHERE id = $1
	`

	var gen domain.Generation
	var variantJSON []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&gen.ID, &gen.Status, &gen.Progress, &variantJSON,
		&gen.FailureReason, &gen.CreatedAt, &gen.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.ErrGenerationNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get generation by ID",
			zap.String("id", id.String()),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	if len(variantJSON) > 0 {
		var variant domain.RouteVariant
		if err := json.Unmarshal(variantJSON, &variant); err != nil {
			r.logger.Warn("Failed to unmarshal route variant",
				zap.String("id", id.String()),
				zap.Error(err))
		} else {
			gen.Variant = &variant
		}
	}

	return &gen, nil
}
