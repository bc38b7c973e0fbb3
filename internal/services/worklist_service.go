package services

import (
	"context"
	"sync"

	"github.com/pacsboard/pacsboard/internal/models"
	"github.com/pacsboard/pacsboard/internal/query"
	"github.com/pacsboard/pacsboard/internal/repository"
)

// WorklistService composes the filter engine with the worklist table.
type WorklistService struct {
	worklistRepo *repository.WorklistRepository
}

// NewWorklistService creates a new worklist service
func NewWorklistService(worklistRepo *repository.WorklistRepository) *WorklistService {
	return &WorklistService{worklistRepo: worklistRepo}
}

// List runs the count query and the data query concurrently; they share
// the same predicates, so the total always reflects the filtered set.
func (s *WorklistService) List(ctx context.Context, spec query.Spec) ([]models.WorklistEntry, int64, error) {
	var (
		wg       sync.WaitGroup
		entries  []models.WorklistEntry
		total    int64
		listErr  error
		countErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		entries, listErr = s.worklistRepo.List(ctx, spec)
	}()
	go func() {
		defer wg.Done()
		total, countErr = s.worklistRepo.Count(ctx, spec)
	}()
	wg.Wait()

	if listErr != nil {
		return nil, 0, listErr
	}
	if countErr != nil {
		return nil, 0, countErr
	}
	return entries, total, nil
}

// Statuses lists the distinct performed statuses for the filter dropdown.
func (s *WorklistService) Statuses(ctx context.Context) ([]string, error) {
	return s.worklistRepo.Statuses(ctx)
}
