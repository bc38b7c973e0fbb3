package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pacsboard/pacsboard/internal/models"
	"github.com/pacsboard/pacsboard/internal/query"
)

// utilizationColumns maps filter fields onto the precomputed per-study
// storage summary table.
var utilizationColumns = query.Columns{
	PatientID: "ptn_id",
	Accession: "accession_number",
	Modality:  "modality",
	SourceAE:  "source_ae",
	Date:      "study_date",
	Time:      "study_time",
	Tiebreak:  "ptn_id",
}

// UtilizationRepository reads the storage utilization summary maintained
// by the PACS archive.
type UtilizationRepository struct {
	db *gorm.DB
}

// NewUtilizationRepository creates a new utilization repository
func NewUtilizationRepository(db *gorm.DB) *UtilizationRepository {
	return &UtilizationRepository{db: db}
}

// List returns the page of summary rows matching the filter.
func (r *UtilizationRepository) List(ctx context.Context, spec query.Spec) ([]models.UtilizationSummary, error) {
	rows := []models.UtilizationSummary{}
	err := r.db.WithContext(ctx).
		Model(&models.UtilizationSummary{}).
		Scopes(spec.Scope(utilizationColumns), spec.Paginate(utilizationColumns)).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list utilization rows: %w", err)
	}
	return rows, nil
}

// Count returns the filtered total.
func (r *UtilizationRepository) Count(ctx context.Context, spec query.Spec) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.UtilizationSummary{}).
		Scopes(spec.Scope(utilizationColumns)).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count utilization rows: %w", err)
	}
	return total, nil
}

// Modalities returns the distinct modalities in the summary table.
func (r *UtilizationRepository) Modalities(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "modality")
}

// SourceAEs returns the distinct source AE titles in the summary table.
func (r *UtilizationRepository) SourceAEs(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "source_ae")
}

func (r *UtilizationRepository) distinct(ctx context.Context, column string) ([]string, error) {
	var values []string
	err := r.db.WithContext(ctx).
		Model(&models.UtilizationSummary{}).
		Where(column+" IS NOT NULL AND "+column+" <> ''").
		Distinct(column).
		Order(column + " ASC").
		Pluck(column, &values).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list distinct %s values: %w", column, err)
	}
	return values, nil
}
