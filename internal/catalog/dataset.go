// Package catalog holds the static food dataset the planner draws from.
package catalog

import (
	"errors"
	"fmt"
)

// Slot is a meal slot.
type Slot string

const (
	Breakfast Slot = "breakfast"
	Lunch     Slot = "lunch"
	Dinner    Slot = "dinner"
	Snack     Slot = "snack"
)

// Slots lists the meal slots in plan order.
var Slots = []Slot{Breakfast, Lunch, Dinner, Snack}

// ParseSlot accepts a slot name; "snacks" is read as snack.
func ParseSlot(s string) (Slot, bool) {
	switch s {
	case "breakfast":
		return Breakfast, true
	case "lunch":
		return Lunch, true
	case "dinner":
		return Dinner, true
	case "snack", "snacks":
		return Snack, true
	}
	return "", false
}

// FoodItem is one dataset entry. Nutrition is per serving.
type FoodItem struct {
	Name     string   `json:"name" yaml:"name"`
	Category Slot     `json:"category" yaml:"category"`
	Tags     []string `json:"tags" yaml:"tags"`
	Calories float64  `json:"calories" yaml:"calories"`
	Protein  float64  `json:"protein_g" yaml:"protein_g"`
	Carbs    float64  `json:"carbs_g" yaml:"carbs_g"`
	Fat      float64  `json:"fat_g" yaml:"fat_g"`
	Fiber    float64  `json:"fiber_g" yaml:"fiber_g"`
	Sodium   float64  `json:"sodium_mg" yaml:"sodium_mg"`
}

// HasTag reports whether the food carries tag.
func (f FoodItem) HasTag(tag string) bool {
	for _, t := range f.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (f FoodItem) clone() FoodItem {
	f.Tags = append([]string(nil), f.Tags...)
	return f
}

// ErrEmptyDataset is returned when a source yields no foods.
var ErrEmptyDataset = errors.New("dataset contains no food items")

// DatasetError reports a missing or malformed food dataset. It is fatal to
// the run and meant for the operator, not the end user.
type DatasetError struct {
	Source string
	Err    error
}

func (e *DatasetError) Error() string {
	return fmt.Sprintf("food dataset %s: %v", e.Source, e.Err)
}

func (e *DatasetError) Unwrap() error {
	return e.Err
}

// Dataset is an immutable, ordered collection of foods. It is safe for
// concurrent use since nothing mutates it after construction.
type Dataset struct {
	source string
	items  []FoodItem
}

// NewDataset copies items into a dataset. Items must have a name and a known
// meal slot; anything else cannot be placed into a plan.
func NewDataset(source string, items []FoodItem) (*Dataset, error) {
	if len(items) == 0 {
		return nil, &DatasetError{Source: source, Err: ErrEmptyDataset}
	}

	out := make([]FoodItem, len(items))
	for i, it := range items {
		if it.Name == "" {
			return nil, &DatasetError{Source: source, Err: fmt.Errorf("item %d has no name", i)}
		}
		slot, ok := ParseSlot(string(it.Category))
		if !ok {
			return nil, &DatasetError{Source: source, Err: fmt.Errorf("item %q has unknown category %q", it.Name, it.Category)}
		}
		it = it.clone()
		it.Category = slot
		out[i] = it
	}
	return &Dataset{source: source, items: out}, nil
}

// Source names where the dataset was loaded from.
func (d *Dataset) Source() string {
	return d.source
}

// Len is the number of foods.
func (d *Dataset) Len() int {
	return len(d.items)
}

// Items returns a copy of every food in dataset order.
func (d *Dataset) Items() []FoodItem {
	out := make([]FoodItem, len(d.items))
	for i, it := range d.items {
		out[i] = it.clone()
	}
	return out
}

// BySlot returns copies of the foods for one slot, in dataset order.
func (d *Dataset) BySlot(slot Slot) []FoodItem {
	var out []FoodItem
	for _, it := range d.items {
		if it.Category == slot {
			out = append(out, it.clone())
		}
	}
	return out
}
