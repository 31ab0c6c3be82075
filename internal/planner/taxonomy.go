package planner

import (
	"github.com/pageza/nutriplan/backend/config"
	"github.com/pageza/nutriplan/backend/internal/catalog"
	"github.com/pageza/nutriplan/backend/internal/rules"
)

// Policy lists the food tags that satisfy a constraint and the ones that
// conflict with it.
type Policy struct {
	Prefers   []string `json:"prefers"`
	Conflicts []string `json:"conflicts"`
}

// Taxonomy maps constraint tags to their food policies.
type Taxonomy map[rules.Tag]Policy

// DefaultTaxonomy is the built-in tag policy table.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		rules.Diabetic: {
			Prefers:   []string{"low-gi", "high-fiber", "whole-grain"},
			Conflicts: []string{"high-sugar", "high-gi", "refined-carbs"},
		},
		rules.PreDiabetic: {
			Prefers:   []string{"low-gi", "high-fiber"},
			Conflicts: []string{"high-sugar", "high-gi"},
		},
		rules.LowSodium: {
			Prefers:   []string{"low-sodium", "high-potassium"},
			Conflicts: []string{"high-sodium", "processed"},
		},
		rules.HeartHealthy: {
			Prefers:   []string{"omega3", "high-fiber", "low-saturated-fat", "anti-inflammatory"},
			Conflicts: []string{"high-saturated-fat", "fried"},
		},
		rules.WeightLoss: {
			Prefers:   []string{"low-calorie", "high-fiber", "lean-protein"},
			Conflicts: []string{"calorie-dense", "fried", "high-sugar"},
		},
		rules.WeightGain: {
			Prefers: []string{"calorie-dense", "healthy-fat", "protein", "plant-protein"},
		},
		rules.LowActivity: {
			Prefers:   []string{"low-calorie", "high-fiber"},
			Conflicts: []string{"fried"},
		},
		rules.HighProtein: {
			Prefers: []string{"lean-protein", "protein", "plant-protein"},
		},
		rules.StressRelief: {
			Prefers:   []string{"anti-inflammatory", "omega3", "magnesium-rich"},
			Conflicts: []string{"caffeine"},
		},
		rules.SleepSupport: {
			Prefers:   []string{"magnesium-rich", "probiotic", "calcium-rich"},
			Conflicts: []string{"caffeine"},
		},
		rules.Senior: {
			Prefers:   []string{"calcium-rich", "soft-texture", "high-fiber"},
			Conflicts: []string{"high-sodium"},
		},
		rules.Vegetarian: {
			Conflicts: []string{"meat", "fish", "egg"},
		},
		rules.Vegan: {
			Conflicts: []string{"meat", "fish", "egg", "dairy", "honey"},
		},
		rules.Renal: {
			Prefers:   []string{"low-sodium", "low-calorie"},
			Conflicts: []string{"high-potassium", "high-phosphorus", "high-sodium", "processed"},
		},
		rules.PCOS: {
			Prefers:   []string{"low-gi", "high-fiber", "anti-inflammatory"},
			Conflicts: []string{"high-sugar", "refined-carbs", "fried"},
		},
		rules.GastricFriendly: {
			Prefers:   []string{"soft-texture", "probiotic"},
			Conflicts: []string{"spicy", "fried"},
		},
		rules.ThyroidCare: {
			Conflicts: []string{"soy"},
		},
		rules.GlutenFree: {
			Conflicts: []string{"gluten"},
		},
		rules.LactoseFree: {
			Conflicts: []string{"dairy"},
		},
		rules.NutFree: {
			Conflicts: []string{"nuts"},
		},
		rules.SoyFree: {
			Conflicts: []string{"soy"},
		},
		rules.EggFree: {
			Conflicts: []string{"egg"},
		},
		rules.SeafoodFree: {
			Conflicts: []string{"fish", "seafood"},
		},
		rules.GeneralHealthy: {
			Prefers:   []string{"whole-grain", "high-fiber", "lean-protein", "low-sodium"},
			Conflicts: []string{"processed"},
		},
	}
}

// WithOverrides returns a copy of t where each configured tag policy replaces
// the built-in one.
func (t Taxonomy) WithOverrides(overrides map[string]config.TagPolicy) Taxonomy {
	out := make(Taxonomy, len(t)+len(overrides))
	for tag, p := range t {
		out[tag] = p
	}
	for tag, p := range overrides {
		out[rules.Tag(tag)] = Policy{
			Prefers:   append([]string(nil), p.Prefers...),
			Conflicts: append([]string(nil), p.Conflicts...),
		}
	}
	return out
}

// Conflict returns the first food tag that conflicts with constraint.
func (t Taxonomy) Conflict(food catalog.FoodItem, constraint rules.Tag) (string, bool) {
	for _, ft := range t[constraint].Conflicts {
		if food.HasTag(ft) {
			return ft, true
		}
	}
	return "", false
}

// Satisfies reports whether the food carries the constraint tag itself or one
// of the tags the constraint prefers.
func (t Taxonomy) Satisfies(food catalog.FoodItem, constraint rules.Tag) bool {
	if food.HasTag(string(constraint)) {
		return true
	}
	for _, ft := range t[constraint].Prefers {
		if food.HasTag(ft) {
			return true
		}
	}
	return false
}
