package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pacsboard/pacsboard/internal/models"
	"github.com/pacsboard/pacsboard/internal/repository"
)

const (
	chartBars      = 7
	recentStudyMax = 5
)

// DashboardService assembles the composite daily statistics view.
type DashboardService struct {
	dashboardRepo *repository.DashboardRepository
	now           func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(dashboardRepo *repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo, now: time.Now}
}

// Overview runs the six aggregate queries concurrently. A failed
// aggregate is logged and reported as zero so the dashboard still
// renders; there is no ordering dependency between the queries.
func (s *DashboardService) Overview(ctx context.Context) *models.DashboardResponse {
	today := s.today()

	resp := &models.DashboardResponse{
		ModalityChartData: []models.ModalityCount{},
		SourceAEChartData: []models.SourceAECount{},
		RecentStudies:     []models.RecentStudy{},
	}

	var wg sync.WaitGroup
	wg.Add(6)

	go func() {
		defer wg.Done()
		count, err := s.dashboardRepo.StudyCount(ctx, today)
		if err != nil {
			log.Error().Err(err).Msg("Dashboard study count failed")
			return
		}
		resp.Stats.TotalStudies = count
	}()

	go func() {
		defer wg.Done()
		images, sizeBytes, err := s.dashboardRepo.ImageTotals(ctx, today)
		if err != nil {
			log.Error().Err(err).Msg("Dashboard image totals failed")
			return
		}
		resp.Stats.TotalImages = images
		resp.Stats.TotalSizeMB = float64(sizeBytes) / 1024 / 1024
	}()

	go func() {
		defer wg.Done()
		rows, err := s.dashboardRepo.StudiesByModality(ctx, today, chartBars)
		if err != nil {
			log.Error().Err(err).Msg("Dashboard modality chart failed")
			return
		}
		resp.ModalityChartData = rows
	}()

	go func() {
		defer wg.Done()
		rows, err := s.dashboardRepo.ImagesBySourceAE(ctx, today, chartBars)
		if err != nil {
			log.Error().Err(err).Msg("Dashboard source AE chart failed")
			return
		}
		resp.SourceAEChartData = rows
	}()

	go func() {
		defer wg.Done()
		rows, err := s.dashboardRepo.RecentStudies(ctx, recentStudyMax)
		if err != nil {
			log.Error().Err(err).Msg("Dashboard recent studies failed")
			return
		}
		resp.RecentStudies = rows
	}()

	go func() {
		defer wg.Done()
		counts, err := s.dashboardRepo.WorklistStatusCounts(ctx, today)
		if err != nil {
			log.Error().Err(err).Msg("Dashboard worklist status counts failed")
			return
		}
		resp.WorklistStats = counts
	}()

	wg.Wait()
	return resp
}

// LiveModalities lists distinct modalities from the live series table.
func (s *DashboardService) LiveModalities(ctx context.Context) ([]string, error) {
	return s.dashboardRepo.LiveModalities(ctx)
}

func (s *DashboardService) today() int {
	t := s.now()
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}
