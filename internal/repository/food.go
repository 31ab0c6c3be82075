package repository

import (
	"context"
	"fmt"

	"github.com/pageza/nutriplan/backend/internal/catalog"
	"github.com/pageza/nutriplan/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FoodRepository stores the food catalog. It doubles as a catalog.Source.
type FoodRepository struct {
	db *gorm.DB
}

var _ catalog.Source = (*FoodRepository)(nil)

// NewFoodRepository creates a new FoodRepository
func NewFoodRepository(db *gorm.DB) *FoodRepository {
	return &FoodRepository{db: db}
}

// Seed upserts every item of ds by name, keeping dataset order in Position.
func (r *FoodRepository) Seed(ctx context.Context, ds *catalog.Dataset) (int, error) {
	items := ds.Items()
	records := make([]models.FoodRecord, len(items))
	for i, it := range items {
		records[i] = models.FoodRecord{
			Position: i,
			Name:     it.Name,
			Category: string(it.Category),
			Tags:     models.JSONStringArray(it.Tags),
			Calories: it.Calories,
			Protein:  it.Protein,
			Carbs:    it.Carbs,
			Fat:      it.Fat,
			Fiber:    it.Fiber,
			Sodium:   it.Sodium,
		}
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"position", "category", "tags", "calories", "protein", "carbs", "fat", "fiber", "sodium", "updated_at",
		}),
	}).CreateInBatches(records, 100).Error
	if err != nil {
		return 0, fmt.Errorf("failed to seed food items: %w", err)
	}
	return len(records), nil
}

// Load reads the stored catalog in position order.
func (r *FoodRepository) Load(ctx context.Context) (*catalog.Dataset, error) {
	var records []models.FoodRecord
	if err := r.db.WithContext(ctx).Order("position").Order("name").Find(&records).Error; err != nil {
		return nil, &catalog.DatasetError{Source: "database", Err: err}
	}

	items := make([]catalog.FoodItem, len(records))
	for i, rec := range records {
		items[i] = catalog.FoodItem{
			Name:     rec.Name,
			Category: catalog.Slot(rec.Category),
			Tags:     []string(rec.Tags),
			Calories: rec.Calories,
			Protein:  rec.Protein,
			Carbs:    rec.Carbs,
			Fat:      rec.Fat,
			Fiber:    rec.Fiber,
			Sodium:   rec.Sodium,
		}
	}
	return catalog.NewDataset("database", items)
}
