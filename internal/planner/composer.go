// Package planner assembles a meal-wise diet plan from constraint tags and the
// food catalog, plus the energy targets and tips that go with it.
package planner

import (
	"math"
	"sort"
	"strings"

	"github.com/pageza/nutriplan/backend/internal/catalog"
	"github.com/pageza/nutriplan/backend/internal/rules"
)

// DefaultPerSlot is how many foods each meal slot recommends.
const DefaultPerSlot = 3

// Options tune the composer. Likes and Dislikes are lower-case food name
// fragments.
type Options struct {
	PerSlot  int
	Likes    []string
	Dislikes []string
}

func matchesAny(name string, fragments []string) bool {
	name = strings.ToLower(name)
	for _, f := range fragments {
		if strings.Contains(name, f) {
			return true
		}
	}
	return false
}

// Recommended is a food picked for a slot with the constraints it satisfies.
type Recommended struct {
	catalog.FoodItem
	Satisfies []rules.Tag `json:"satisfies"`
}

// MealPlan is the recommendation for one slot.
type MealPlan struct {
	Slot  catalog.Slot  `json:"slot"`
	Items []Recommended `json:"items"`
}

// Conflict pairs an active constraint with the food tag that violates it.
type Conflict struct {
	Constraint rules.Tag `json:"constraint"`
	FoodTag    string    `json:"food_tag"`
}

// AvoidedFood is a food excluded from the plan. Reason is the first active
// constraint it conflicts with; Conflicts lists all of them.
type AvoidedFood struct {
	catalog.FoodItem
	Reason    rules.Tag  `json:"reason"`
	Conflicts []Conflict `json:"conflicts"`
}

// NutritionSummary aggregates the recommended foods.
type NutritionSummary struct {
	Items           int     `json:"items"`
	Calories        float64 `json:"calories"`
	Protein         float64 `json:"protein_g"`
	Carbs           float64 `json:"carbs_g"`
	Fat             float64 `json:"fat_g"`
	Fiber           float64 `json:"fiber_g"`
	Sodium          float64 `json:"sodium_mg"`
	AverageCalories float64 `json:"average_calories"`
}

// DietPlan is the composed plan: slots in plan order, the avoid list and the
// nutrition summary.
type DietPlan struct {
	Meals   []MealPlan       `json:"meals"`
	Avoid   []AvoidedFood    `json:"avoid"`
	Summary NutritionSummary `json:"summary"`
}

// Meal returns the plan for one slot.
func (p DietPlan) Meal(slot catalog.Slot) MealPlan {
	for _, m := range p.Meals {
		if m.Slot == slot {
			return m
		}
	}
	return MealPlan{Slot: slot}
}

// Recommended flattens every recommended food in slot order.
func (p DietPlan) Recommended() []Recommended {
	var out []Recommended
	for _, m := range p.Meals {
		out = append(out, m.Items...)
	}
	return out
}

type candidate struct {
	food      catalog.FoodItem
	satisfies []rules.Tag
	liked     bool
}

// Compose builds the plan for tags. A food conflicting with any active tag goes
// to the avoid list. Disliked foods are left out without being listed. The
// rest are ranked by how many active tags they satisfy, then liked foods
// first, then dataset order, and the first PerSlot of each slot are kept.
func Compose(tags rules.TagSet, ds *catalog.Dataset, tax Taxonomy, opts Options) DietPlan {
	perSlot := opts.PerSlot
	if perSlot <= 0 {
		perSlot = DefaultPerSlot
	}

	plan := DietPlan{Avoid: []AvoidedFood{}}
	for _, slot := range catalog.Slots {
		var cands []candidate
		for _, food := range ds.BySlot(slot) {
			var conflicts []Conflict
			for _, tag := range tags {
				if ft, ok := tax.Conflict(food, tag); ok {
					conflicts = append(conflicts, Conflict{Constraint: tag, FoodTag: ft})
				}
			}
			if len(conflicts) > 0 {
				plan.Avoid = append(plan.Avoid, AvoidedFood{
					FoodItem:  food,
					Reason:    conflicts[0].Constraint,
					Conflicts: conflicts,
				})
				continue
			}

			if matchesAny(food.Name, opts.Dislikes) {
				continue
			}

			c := candidate{food: food, satisfies: []rules.Tag{}, liked: matchesAny(food.Name, opts.Likes)}
			for _, tag := range tags {
				if tax.Satisfies(food, tag) {
					c.satisfies = append(c.satisfies, tag)
				}
			}
			cands = append(cands, c)
		}

		sort.SliceStable(cands, func(i, j int) bool {
			if len(cands[i].satisfies) != len(cands[j].satisfies) {
				return len(cands[i].satisfies) > len(cands[j].satisfies)
			}
			return cands[i].liked && !cands[j].liked
		})
		if len(cands) > perSlot {
			cands = cands[:perSlot]
		}

		meal := MealPlan{Slot: slot, Items: make([]Recommended, 0, len(cands))}
		for _, c := range cands {
			meal.Items = append(meal.Items, Recommended{FoodItem: c.food, Satisfies: c.satisfies})
		}
		plan.Meals = append(plan.Meals, meal)
	}

	plan.Summary = summarize(plan.Recommended())
	return plan
}

func summarize(items []Recommended) NutritionSummary {
	var s NutritionSummary
	for _, it := range items {
		s.Calories += it.Calories
		s.Protein += it.Protein
		s.Carbs += it.Carbs
		s.Fat += it.Fat
		s.Fiber += it.Fiber
		s.Sodium += it.Sodium
	}
	s.Items = len(items)
	if s.Items > 0 {
		s.AverageCalories = s.Calories / float64(s.Items)
	}

	s.Calories = round1(s.Calories)
	s.Protein = round1(s.Protein)
	s.Carbs = round1(s.Carbs)
	s.Fat = round1(s.Fat)
	s.Fiber = round1(s.Fiber)
	s.Sodium = round1(s.Sodium)
	s.AverageCalories = round1(s.AverageCalories)
	return s
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
