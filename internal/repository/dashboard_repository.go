package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pacsboard/pacsboard/internal/models"
	"github.com/pacsboard/pacsboard/internal/query"
)

// DashboardRepository runs the fixed aggregate queries behind the
// dashboard, against the live patient/study/series/image tables.
type DashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// StudyCount returns the number of studies received on the given day.
func (r *DashboardRepository) StudyCount(ctx context.Context, day int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM study1 WHERE study_date = ?", day).
		Scan(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count studies: %w", err)
	}
	return count, nil
}

type imageTotals struct {
	TotalImages    int64 `gorm:"column:total_images"`
	TotalSizeBytes int64 `gorm:"column:total_size_bytes"`
}

// ImageTotals returns the image count and byte volume received on the
// given day.
func (r *DashboardRepository) ImageTotals(ctx context.Context, day int) (images int64, sizeBytes int64, err error) {
	var totals imageTotals
	err = r.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) AS total_images, COALESCE(SUM(file_size), 0) AS total_size_bytes
		     FROM image1 WHERE rcvd_date = ?`, day).
		Scan(&totals).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to total images: %w", err)
	}
	return totals.TotalImages, totals.TotalSizeBytes, nil
}

// StudiesByModality returns the top modalities by distinct study count for
// the given day.
func (r *DashboardRepository) StudiesByModality(ctx context.Context, day int, limit int) ([]models.ModalityCount, error) {
	rows := []models.ModalityCount{}
	err := r.db.WithContext(ctx).
		Raw(`SELECT se.modality AS modality, COUNT(DISTINCT s.study_uid) AS study_count
		     FROM study1 s
		     JOIN series1 se ON s.study_uid_id = se.study_uid_id
		     WHERE s.study_date = ?
		     GROUP BY se.modality
		     ORDER BY study_count DESC
		     LIMIT ?`, day, limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group studies by modality: %w", err)
	}
	return rows, nil
}

// ImagesBySourceAE returns the top source AE titles by image count for the
// given day.
func (r *DashboardRepository) ImagesBySourceAE(ctx context.Context, day int, limit int) ([]models.SourceAECount, error) {
	rows := []models.SourceAECount{}
	err := r.db.WithContext(ctx).
		Raw(`SELECT i.source_ae AS source_ae, COUNT(*) AS image_count
		     FROM image1 i
		     WHERE i.rcvd_date = ? AND i.source_ae IS NOT NULL
		     GROUP BY i.source_ae
		     ORDER BY image_count DESC
		     LIMIT ?`, day, limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group images by source AE: %w", err)
	}
	return rows, nil
}

// RecentStudies returns the latest studies across all days.
func (r *DashboardRepository) RecentStudies(ctx context.Context, limit int) ([]models.RecentStudy, error) {
	rows := []models.RecentStudy{}
	err := r.db.WithContext(ctx).
		Raw(`SELECT p.ptn_name AS ptn_name, s.study_desc AS study_desc,
		            s.accession_number AS accession_number,
		            s.study_date AS study_date, s.study_time AS study_time
		     FROM study1 s
		     JOIN patient1 p ON s.ptn_id_id = p.ptn_id_id
		     ORDER BY s.study_date DESC, s.study_time DESC
		     LIMIT ?`, limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent studies: %w", err)
	}
	return rows, nil
}

type statusCount struct {
	Status      string `gorm:"column:status"`
	StatusCount int64  `gorm:"column:status_count"`
}

// WorklistStatusCounts buckets the given day's worklist entries by
// performed status, folding NULL and empty values into SCHEDULED.
func (r *DashboardRepository) WorklistStatusCounts(ctx context.Context, day int) (models.WorklistStatusCounts, error) {
	rows := []statusCount{}
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(NULLIF(perfrmd_status, ''), 'SCHEDULED') AS status, COUNT(*) AS status_count
		     FROM worklist
		     WHERE sched_start_date = ?
		     GROUP BY COALESCE(NULLIF(perfrmd_status, ''), 'SCHEDULED')`, day).
		Scan(&rows).Error
	if err != nil {
		return models.WorklistStatusCounts{}, fmt.Errorf("failed to count worklist statuses: %w", err)
	}

	var counts models.WorklistStatusCounts
	for _, row := range rows {
		switch row.Status {
		case query.StatusScheduled:
			counts.Scheduled = row.StatusCount
		case "IN PROGRESS":
			counts.InProgress = row.StatusCount
		case "COMPLETED":
			counts.Completed = row.StatusCount
		}
	}
	return counts, nil
}

// LiveModalities returns the distinct modalities from the live series
// table, as opposed to the utilization summary.
func (r *DashboardRepository) LiveModalities(ctx context.Context) ([]string, error) {
	var modalities []string
	err := r.db.WithContext(ctx).
		Raw(`SELECT DISTINCT modality FROM series1
		     WHERE modality IS NOT NULL AND modality <> ''
		     ORDER BY modality ASC`).
		Scan(&modalities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list live modalities: %w", err)
	}
	return modalities, nil
}
