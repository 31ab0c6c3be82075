package planner

import (
	"math"

	"github.com/pageza/nutriplan/backend/internal/catalog"
	"github.com/pageza/nutriplan/backend/internal/profile"
	"github.com/pageza/nutriplan/backend/internal/rules"
)

var activityFactors = map[profile.Activity]float64{
	profile.Sedentary: 1.2,
	profile.Moderate:  1.55,
	profile.Active:    1.725,
}

var stressFactors = map[profile.Stress]float64{
	profile.LowStress:    1.0,
	profile.MediumStress: 1.03,
	profile.HighStress:   1.06,
}

// MealSplit is the share of daily calories per slot.
var MealSplit = map[catalog.Slot]float64{
	catalog.Breakfast: 0.25,
	catalog.Lunch:     0.35,
	catalog.Dinner:    0.30,
	catalog.Snack:     0.10,
}

// Macros is the daily macronutrient split in percent of energy and grams.
type Macros struct {
	ProteinPct int     `json:"protein_pct"`
	CarbsPct   int     `json:"carbs_pct"`
	FatPct     int     `json:"fat_pct"`
	ProteinG   float64 `json:"protein_g"`
	CarbsG     float64 `json:"carbs_g"`
	FatG       float64 `json:"fat_g"`
}

// Targets are the daily energy and intake targets for a profile.
type Targets struct {
	BMR           float64 `json:"bmr"`
	DailyCalories int     `json:"daily_calories"`
	Macros        Macros  `json:"macros"`
	WaterLiters   float64 `json:"water_liters"`
	SodiumLimitMg int     `json:"sodium_limit_mg"`
	SugarLimitG   int     `json:"sugar_limit_g"`
}

// MealTarget compares the calorie target of a slot with what the plan provides.
type MealTarget struct {
	Slot            catalog.Slot `json:"slot"`
	TargetCalories  int          `json:"target_calories"`
	PlannedCalories float64      `json:"planned_calories"`
}

// BMR is the Mifflin-St Jeor basal metabolic rate. Other uses the midpoint of
// the male and female constants.
func BMR(p profile.UserProfile) float64 {
	base := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	switch p.Gender {
	case profile.Male:
		return base + 5
	case profile.Female:
		return base - 161
	default:
		return base - 78
	}
}

// ComputeTargets derives energy, macro, water, sodium and sugar targets. A
// daily calorie figure on the profile replaces the estimate.
func ComputeTargets(p profile.UserProfile, tags rules.TagSet) Targets {
	bmr := BMR(p)
	tdee := bmr * activityFactors[p.ActivityLevel] * stressFactors[p.StressLevel]
	switch {
	case tags.Has(rules.WeightLoss) && !tags.Has(rules.WeightGain):
		tdee *= 0.85
	case tags.Has(rules.WeightGain) && !tags.Has(rules.WeightLoss):
		tdee *= 1.15
	}
	calories := int(math.Round(tdee))
	if p.DailyCalories > 0 {
		calories = p.DailyCalories
	}

	t := Targets{
		BMR:           round1(bmr),
		DailyCalories: calories,
		Macros:        macros(tags, calories),
		WaterLiters:   water(p),
		SodiumLimitMg: 2000,
	}
	if tags.Has(rules.LowSodium) || tags.Has(rules.Renal) {
		t.SodiumLimitMg = 1500
	}
	switch {
	case tags.Has(rules.Diabetic), tags.Has(rules.PreDiabetic), tags.Has(rules.WeightLoss), tags.Has(rules.PCOS):
		t.SugarLimitG = 25
	case p.Gender == profile.Male:
		t.SugarLimitG = 36
	default:
		t.SugarLimitG = 30
	}
	return t
}

func macros(tags rules.TagSet, calories int) Macros {
	p, c, f := 20, 50, 30
	if tags.Has(rules.Diabetic) || tags.Has(rules.PreDiabetic) {
		p, c, f = 25, 45, 30
	}
	if tags.Has(rules.HighProtein) {
		p, c, f = 30, 40, 30
	}
	if tags.Has(rules.WeightLoss) {
		p = max(p, 30)
		c = min(c, 45)
		f = 100 - p - c
	}
	if tags.Has(rules.HeartHealthy) {
		f = min(f, 30)
		c = min(c, 50)
		p = 100 - f - c
	}

	kcal := float64(calories)
	return Macros{
		ProteinPct: p,
		CarbsPct:   c,
		FatPct:     f,
		ProteinG:   round1(kcal * float64(p) / 100 / 4),
		CarbsG:     round1(kcal * float64(c) / 100 / 4),
		FatG:       round1(kcal * float64(f) / 100 / 9),
	}
}

// water is 30 ml/kg plus half a litre for moderate or active users, kept within 2 to 4 litres.
func water(p profile.UserProfile) float64 {
	l := 0.03 * p.WeightKg
	if activityFactors[p.ActivityLevel] >= 1.55 {
		l += 0.5
	}
	l = math.Max(2, math.Min(4, l))
	return math.Round(l*100) / 100
}

// MealTargets splits the daily calories across slots and reports what the
// plan actually provides for each.
func MealTargets(t Targets, plan DietPlan) []MealTarget {
	out := make([]MealTarget, 0, len(catalog.Slots))
	for _, slot := range catalog.Slots {
		var planned float64
		for _, it := range plan.Meal(slot).Items {
			planned += it.Calories
		}
		out = append(out, MealTarget{
			Slot:            slot,
			TargetCalories:  int(math.Round(MealSplit[slot] * float64(t.DailyCalories))),
			PlannedCalories: round1(planned),
		})
	}
	return out
}
