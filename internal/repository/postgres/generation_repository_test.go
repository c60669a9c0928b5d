package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/scenic-route-service/internal/domain"
	"github.com/scenic-route-service/internal/domain/repository"
	"github.com/scenic-route-service/internal/pkg/errors"
	"github.com/scenic-route-service/internal/repository/postgres/testhelpers"
)

// GenerationRepositorySuite tests the generation repository with real database
type GenerationRepositorySuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.GenerationRepository
	ctx    context.Context
}

// SetupSuite runs once before all tests
func (s *GenerationRepositorySuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	err := testhelpers.ApplyMigrations(s.testDB.DB.DB, "../../../migrations")
	s.NoError(err, "Failed to apply migrations")

	s.repo = testhelpers.NewGenerationRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

// TearDownSuite runs once after all tests
func (s *GenerationRepositorySuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

// SetupTest runs before each test
func (s *GenerationRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.NoError(s.testDB.Cleanup(s.ctx))
}

func (s *GenerationRepositorySuite) TestCreateAndGet() {
	id := uuid.New()
	s.NoError(s.repo.Create(s.ctx, id, domain.ProgressAccepted))

	gen, err := s.repo.GetByID(s.ctx, id)
	s.NoError(err)
	s.Equal(id, gen.ID)
	s.Equal(domain.StatusProcessing, gen.Status)
	s.Equal(domain.ProgressAccepted, gen.Progress)
	s.Nil(gen.Variant)
	s.Nil(gen.FailureReason)
}

func (s *GenerationRepositorySuite) TestGetByID_NotFound() {
	_, err := s.repo.GetByID(s.ctx, uuid.New())
	s.ErrorIs(err, errors.ErrGenerationNotFound)
}

func (s *GenerationRepositorySuite) TestUpdateProgress_Monotonic() {
	id := uuid.New()
	s.NoError(s.repo.Create(s.ctx, id, domain.ProgressAccepted))

	s.NoError(s.repo.UpdateProgress(s.ctx, id, domain.ProgressBaseline))

	// Откат на меньшее значение не применяется
	s.NoError(s.repo.UpdateProgress(s.ctx, id, domain.ProgressAccepted))

	gen, err := s.repo.GetByID(s.ctx, id)
	s.NoError(err)
	s.Equal(domain.ProgressBaseline, gen.Progress)
}

func (s *GenerationRepositorySuite) TestComplete_StoresVariant() {
	id := uuid.New()
	s.NoError(s.repo.Create(s.ctx, id, domain.ProgressAccepted))

	variant := &domain.RouteVariant{
		Path: domain.Path{
			Points: []domain.Coordinate{
				{Lat: 37.4419, Lon: -122.1430},
				{Lat: 37.3688, Lon: -122.0363},
			},
			DurationSeconds: 1250,
		},
		Waypoints: []domain.ScoredPOI{
			{
				CandidatePOI: domain.CandidatePOI{
					PlaceID:  "museum-1",
					Name:     "Computer History Museum",
					Category: domain.CategoryMuseum,
				},
				Score: 88,
			},
		},
		DurationSeconds:     1250,
		TimeIncreasePercent: 15.7,
	}

	s.NoError(s.repo.Complete(s.ctx, id, variant))

	gen, err := s.repo.GetByID(s.ctx, id)
	s.NoError(err)
	s.Equal(domain.StatusCompleted, gen.Status)
	s.Equal(domain.ProgressDone, gen.Progress)
	s.Require().NotNil(gen.Variant)
	s.Equal(variant.DurationSeconds, gen.Variant.DurationSeconds)
	s.Require().Len(gen.Variant.Waypoints, 1)
	s.Equal("museum-1", gen.Variant.Waypoints[0].PlaceID)
	s.Equal(88, gen.Variant.Waypoints[0].Score)
}

func (s *GenerationRepositorySuite) TestFail_IsTerminal() {
	id := uuid.New()
	s.NoError(s.repo.Create(s.ctx, id, domain.ProgressAccepted))

	s.NoError(s.repo.Fail(s.ctx, id, "no viable route"))

	gen, err := s.repo.GetByID(s.ctx, id)
	s.NoError(err)
	s.Equal(domain.StatusFailed, gen.Status)
	s.Require().NotNil(gen.FailureReason)
	s.Equal("no viable route", *gen.FailureReason)

	// Терминальная запись больше не меняется
	s.NoError(s.repo.UpdateProgress(s.ctx, id, domain.ProgressDiscovery))
	s.NoError(s.repo.Complete(s.ctx, id, &domain.RouteVariant{}))

	gen, err = s.repo.GetByID(s.ctx, id)
	s.NoError(err)
	s.Equal(domain.StatusFailed, gen.Status)
	s.Equal(domain.ProgressAccepted, gen.Progress)
}

func TestGenerationRepositorySuite(t *testing.T) {
	suite.Run(t, new(GenerationRepositorySuite))
}
