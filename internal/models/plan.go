package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlanRecord is a stored evaluation. Evaluation holds the full JSON result;
// ProfileHash identifies the normalized input that produced it.
type PlanRecord struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
	ProfileHash string          `gorm:"size:64;not null;index" json:"profile_hash"`
	Tags        JSONStringArray `gorm:"type:jsonb;not null" json:"tags"`
	Calories    int             `gorm:"not null" json:"daily_calories"`
	Evaluation  JSONDocument    `gorm:"type:jsonb;not null" json:"evaluation"`
}

func (PlanRecord) TableName() string {
	return "plan_records"
}

// BeforeCreate assigns an id when the caller did not.
func (p *PlanRecord) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// FoodRecord is one catalog entry stored in the database.
type FoodRecord struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Position  int             `gorm:"not null;index" json:"position"`
	Name      string          `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Category  string          `gorm:"size:20;not null;index" json:"category"`
	Tags      JSONStringArray `gorm:"type:jsonb;not null" json:"tags"`
	Calories  float64         `gorm:"type:float" json:"calories"`
	Protein   float64         `gorm:"type:float" json:"protein_g"`
	Carbs     float64         `gorm:"type:float" json:"carbs_g"`
	Fat       float64         `gorm:"type:float" json:"fat_g"`
	Fiber     float64         `gorm:"type:float" json:"fiber_g"`
	Sodium    float64         `gorm:"type:float" json:"sodium_mg"`
}

func (FoodRecord) TableName() string {
	return "food_items"
}

// BeforeCreate assigns an id when the caller did not.
func (f *FoodRecord) BeforeCreate(*gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
