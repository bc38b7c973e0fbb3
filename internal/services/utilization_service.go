package services

import (
	"context"
	"sync"

	"github.com/pacsboard/pacsboard/internal/models"
	"github.com/pacsboard/pacsboard/internal/query"
	"github.com/pacsboard/pacsboard/internal/repository"
)

// UtilizationService composes the filter engine with the storage
// utilization summary.
type UtilizationService struct {
	utilizationRepo *repository.UtilizationRepository
}

// NewUtilizationService creates a new utilization service
func NewUtilizationService(utilizationRepo *repository.UtilizationRepository) *UtilizationService {
	return &UtilizationService{utilizationRepo: utilizationRepo}
}

// List runs the count and data queries concurrently with shared
// predicates.
func (s *UtilizationService) List(ctx context.Context, spec query.Spec) ([]models.UtilizationSummary, int64, error) {
	var (
		wg       sync.WaitGroup
		rows     []models.UtilizationSummary
		total    int64
		listErr  error
		countErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		rows, listErr = s.utilizationRepo.List(ctx, spec)
	}()
	go func() {
		defer wg.Done()
		total, countErr = s.utilizationRepo.Count(ctx, spec)
	}()
	wg.Wait()

	if listErr != nil {
		return nil, 0, listErr
	}
	if countErr != nil {
		return nil, 0, countErr
	}
	return rows, total, nil
}

// Modalities lists the distinct modalities in the summary table.
func (s *UtilizationService) Modalities(ctx context.Context) ([]string, error) {
	return s.utilizationRepo.Modalities(ctx)
}

// SourceAEs lists the distinct source AE titles in the summary table.
func (s *UtilizationService) SourceAEs(ctx context.Context) ([]string, error) {
	return s.utilizationRepo.SourceAEs(ctx)
}
