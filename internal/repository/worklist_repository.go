package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pacsboard/pacsboard/internal/models"
	"github.com/pacsboard/pacsboard/internal/query"
)

// worklistColumns maps filter fields onto the worklist table.
var worklistColumns = query.Columns{
	PatientID: "patient_id",
	Accession: "accession_num",
	Modality:  "modality",
	Status:    "perfrmd_status",
	Date:      "sched_start_date",
	Time:      "sched_start_time",
	Tiebreak:  "accession_num",
}

// WorklistRepository reads the external modality worklist table.
type WorklistRepository struct {
	db *gorm.DB
}

// NewWorklistRepository creates a new worklist repository
func NewWorklistRepository(db *gorm.DB) *WorklistRepository {
	return &WorklistRepository{db: db}
}

// List returns the page of worklist entries matching the filter.
func (r *WorklistRepository) List(ctx context.Context, spec query.Spec) ([]models.WorklistEntry, error) {
	entries := []models.WorklistEntry{}
	err := r.db.WithContext(ctx).
		Model(&models.WorklistEntry{}).
		Scopes(spec.Scope(worklistColumns), spec.Paginate(worklistColumns)).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list worklist entries: %w", err)
	}
	return entries, nil
}

// Count returns the total number of entries matching the filter,
// independent of pagination.
func (r *WorklistRepository) Count(ctx context.Context, spec query.Spec) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.WorklistEntry{}).
		Scopes(spec.Scope(worklistColumns)).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count worklist entries: %w", err)
	}
	return total, nil
}

// Statuses returns the distinct performed statuses present in the table,
// with NULL and empty values excluded.
func (r *WorklistRepository) Statuses(ctx context.Context) ([]string, error) {
	var statuses []string
	err := r.db.WithContext(ctx).
		Model(&models.WorklistEntry{}).
		Where("perfrmd_status IS NOT NULL AND perfrmd_status <> ''").
		Distinct("perfrmd_status").
		Order("perfrmd_status ASC").
		Pluck("perfrmd_status", &statuses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list worklist statuses: %w", err)
	}
	return statuses, nil
}
