package planner

import (
	"testing"

	"github.com/pageza/nutriplan/backend/internal/catalog"
	"github.com/pageza/nutriplan/backend/internal/profile"
	"github.com/pageza/nutriplan/backend/internal/rules"
	"github.com/stretchr/testify/assert"
)

func baseProfile() profile.UserProfile {
	return profile.UserProfile{
		Age:           30,
		Gender:        profile.Male,
		HeightCm:      175,
		WeightKg:      70,
		Diet:          profile.NonVeg,
		ActivityLevel: profile.Moderate,
		SleepHours:    7,
		StressLevel:   profile.MediumStress,
	}
}

func TestComputeTargets(t *testing.T) {
	got := ComputeTargets(baseProfile(), rules.NewTagSet(rules.GeneralHealthy))

	assert.InDelta(t, 1648.8, got.BMR, 0.05)
	assert.Equal(t, 2632, got.DailyCalories)
	assert.Equal(t, Macros{
		ProteinPct: 20, CarbsPct: 50, FatPct: 30,
		ProteinG: 131.6, CarbsG: 329, FatG: 87.7,
	}, got.Macros)
	assert.InDelta(t, 2.6, got.WaterLiters, 1e-9)
	assert.Equal(t, 2000, got.SodiumLimitMg)
	assert.Equal(t, 36, got.SugarLimitG)
}

func TestBMRByGender(t *testing.T) {
	p := baseProfile()
	male := BMR(p)
	p.Gender = profile.Female
	female := BMR(p)
	p.Gender = profile.Other
	other := BMR(p)

	assert.InDelta(t, 166, male-female, 1e-9)
	assert.InDelta(t, (male+female)/2, other, 1e-9)
}

func TestComputeTargetsAdjustments(t *testing.T) {
	p := baseProfile()
	plain := ComputeTargets(p, rules.NewTagSet(rules.GeneralHealthy))

	loss := ComputeTargets(p, rules.NewTagSet(rules.WeightLoss, rules.LowSodium))
	assert.Less(t, loss.DailyCalories, plain.DailyCalories)
	assert.Equal(t, 1500, loss.SodiumLimitMg)
	assert.Equal(t, 25, loss.SugarLimitG)
	assert.Equal(t, 30, loss.Macros.ProteinPct)
	assert.Equal(t, 45, loss.Macros.CarbsPct)
	assert.Equal(t, 25, loss.Macros.FatPct)

	gain := ComputeTargets(p, rules.NewTagSet(rules.WeightGain))
	assert.Greater(t, gain.DailyCalories, plain.DailyCalories)

	pre := ComputeTargets(p, rules.NewTagSet(rules.PreDiabetic, rules.HeartHealthy))
	assert.Equal(t, 25, pre.SugarLimitG)
	assert.Equal(t, 25, pre.Macros.ProteinPct)
	assert.Equal(t, 45, pre.Macros.CarbsPct)
	assert.Equal(t, 30, pre.Macros.FatPct)

	p.Gender = profile.Female
	assert.Equal(t, 30, ComputeTargets(p, rules.NewTagSet(rules.GeneralHealthy)).SugarLimitG)
}

func TestComputeTargetsDailyCaloriesOverride(t *testing.T) {
	p := baseProfile()
	p.DailyCalories = 1800

	got := ComputeTargets(p, rules.NewTagSet(rules.WeightLoss))
	assert.Equal(t, 1800, got.DailyCalories)
	assert.Equal(t, 135.0, got.Macros.ProteinG)
	assert.Equal(t, 450, MealTargets(got, DietPlan{})[0].TargetCalories)

	renal := ComputeTargets(baseProfile(), rules.NewTagSet(rules.Renal, rules.PCOS))
	assert.Equal(t, 1500, renal.SodiumLimitMg)
	assert.Equal(t, 25, renal.SugarLimitG)
}

func TestMacroPercentsAddUp(t *testing.T) {
	for _, tags := range []rules.TagSet{
		rules.NewTagSet(rules.GeneralHealthy),
		rules.NewTagSet(rules.Diabetic, rules.WeightLoss),
		rules.NewTagSet(rules.HighProtein, rules.HeartHealthy),
		rules.NewTagSet(rules.WeightLoss, rules.HeartHealthy),
	} {
		m := ComputeTargets(baseProfile(), tags).Macros
		assert.Equal(t, 100, m.ProteinPct+m.CarbsPct+m.FatPct, "%v", tags)
	}
}

func TestWaterIsClamped(t *testing.T) {
	p := baseProfile()
	p.ActivityLevel = profile.Sedentary
	p.WeightKg = 40
	assert.Equal(t, 2.0, ComputeTargets(p, nil).WaterLiters)

	p.ActivityLevel = profile.Active
	p.WeightKg = 150
	assert.Equal(t, 4.0, ComputeTargets(p, nil).WaterLiters)
}

func TestMealTargets(t *testing.T) {
	plan := Compose(rules.NewTagSet(rules.Diabetic, rules.Vegetarian), testDataset(t), DefaultTaxonomy(), Options{})
	got := MealTargets(Targets{DailyCalories: 2000}, plan)

	assert.Equal(t, []MealTarget{
		{Slot: catalog.Breakfast, TargetCalories: 500, PlannedCalories: 590},
		{Slot: catalog.Lunch, TargetCalories: 700, PlannedCalories: 420},
		{Slot: catalog.Dinner, TargetCalories: 600, PlannedCalories: 350},
		{Slot: catalog.Snack, TargetCalories: 200, PlannedCalories: 150},
	}, got)
}

func TestBuildTips(t *testing.T) {
	p := baseProfile()
	tips := BuildTips(p, rules.NewTagSet(rules.GeneralHealthy), Targets{WaterLiters: 2.6})
	assert.Len(t, tips.Preparation, 3)
	assert.Equal(t, []string{"Drink about 2.6 L of water a day, spread evenly and more around activity."}, tips.Lifestyle)

	p.SleepHours = 5
	p.ActivityLevel = profile.Sedentary
	p.StressLevel = profile.HighStress
	tips = BuildTips(p, rules.NewTagSet(rules.Diabetic, rules.LowSodium, rules.HeartHealthy, rules.Senior), Targets{WaterLiters: 2})
	assert.Len(t, tips.Preparation, 7)
	assert.Len(t, tips.Lifestyle, 4)

	tips = BuildTips(baseProfile(), rules.NewTagSet(rules.Renal, rules.GastricFriendly, rules.NutFree, rules.GlutenFree), Targets{WaterLiters: 2})
	assert.Len(t, tips.Preparation, 6)
	assert.Contains(t, tips.Preparation, "Read ingredient labels on packaged foods for hidden allergens.")
}
