// Package repository persists evaluations and the food catalog with gorm.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pageza/nutriplan/backend/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// PlanFilter narrows ListPlans.
type PlanFilter struct {
	ProfileHash string
	Limit       int
	Offset      int
}

// PlanRepository stores evaluations.
type PlanRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new PlanRepository
func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// Create inserts record and fills in its id and timestamps.
func (r *PlanRepository) Create(ctx context.Context, record *models.PlanRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create plan record: %w", err)
	}
	return nil
}

// Get fetches one record by id.
func (r *PlanRepository) Get(ctx context.Context, id uuid.UUID) (*models.PlanRecord, error) {
	var record models.PlanRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan record: %w", err)
	}
	return &record, nil
}

// List returns records newest first, with the total count before paging.
func (r *PlanRepository) List(ctx context.Context, f PlanFilter) ([]models.PlanRecord, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.PlanRecord{})
	if f.ProfileHash != "" {
		q = q.Where("profile_hash = ?", f.ProfileHash)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count plan records: %w", err)
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var records []models.PlanRecord
	err := q.Order("created_at DESC").Order("id").Limit(limit).Offset(f.Offset).Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list plan records: %w", err)
	}
	return records, total, nil
}

// Delete soft-deletes a record.
func (r *PlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.PlanRecord{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete plan record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
