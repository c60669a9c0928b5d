package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/scenic-route-service/internal/domain/repository"
	"github.com/scenic-route-service/internal/repository/postgres"
)

// NewGenerationRepositoryForTest wraps a raw test connection into the
// repository under test
func NewGenerationRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.GenerationRepository {
	return postgres.NewGenerationRepository(postgres.NewDBForTest(db, logger))
}
