package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/nutriplan/backend/config"
	"github.com/pageza/nutriplan/backend/internal/profile"
)

func defaultEngine() *Engine {
	return NewEngine(config.DefaultRulesConfig().Thresholds)
}

// baseline triggers no rule: normal weight, non-veg, moderate activity.
func baseline() profile.UserProfile {
	return profile.UserProfile{
		Age:           35,
		Gender:        profile.Female,
		HeightCm:      165,
		WeightKg:      60,
		BloodSugar:    90,
		Systolic:      115,
		Diastolic:     75,
		Cholesterol:   170,
		Diet:          profile.NonVeg,
		ActivityLevel: profile.Moderate,
		SleepHours:    7.5,
		StressLevel:   profile.LowStress,
	}
}

func TestEvaluateGeneralHealthy(t *testing.T) {
	res := defaultEngine().Evaluate(baseline())

	assert.Equal(t, TagSet{GeneralHealthy}, res.Tags)
	require.Len(t, res.Trace, 1)
	assert.Equal(t, DefaultRationale, res.Trace[0].Rationale)
}

func TestEvaluateBloodSugarBoundary(t *testing.T) {
	e := defaultEngine()

	at := baseline()
	at.BloodSugar = 126
	below := baseline()
	below.BloodSugar = 125

	atTags := e.Evaluate(at).Tags
	belowTags := e.Evaluate(below).Tags

	assert.NotEqual(t, atTags, belowTags)
	assert.True(t, atTags.Has(Diabetic))
	assert.False(t, atTags.Has(PreDiabetic))
	assert.False(t, belowTags.Has(Diabetic))
	assert.True(t, belowTags.Has(PreDiabetic))
}

func TestEvaluateBoundariesCountAsHigherRisk(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*profile.UserProfile)
		tag    Tag
	}{
		{"prediabetic lower bound", func(p *profile.UserProfile) { p.BloodSugar = 100 }, PreDiabetic},
		{"systolic bound", func(p *profile.UserProfile) { p.Systolic = 130 }, LowSodium},
		{"diastolic bound", func(p *profile.UserProfile) { p.Diastolic = 80 }, LowSodium},
		{"cholesterol bound", func(p *profile.UserProfile) { p.Cholesterol = 200 }, HeartHealthy},
		// 68.1 kg at 165 cm is BMI 25.01
		{"overweight bound", func(p *profile.UserProfile) { p.WeightKg = 68.1 }, WeightLoss},
		// 50.3 kg at 165 cm is BMI 18.48
		{"underweight bound", func(p *profile.UserProfile) { p.WeightKg = 50.3 }, WeightGain},
		{"short sleep bound", func(p *profile.UserProfile) { p.SleepHours = 6 }, SleepSupport},
		{"senior bound", func(p *profile.UserProfile) { p.Age = 65 }, Senior},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseline()
			tt.mutate(&p)
			res := defaultEngine().Evaluate(p)
			assert.Equal(t, TagSet{tt.tag}, res.Tags)
		})
	}
}

func TestEvaluateBMIUsesUnroundedValue(t *testing.T) {
	// 72.2 kg at 170 cm is BMI 24.98, charted as 25.0.
	justBelow := baseline()
	justBelow.HeightCm = 170
	justBelow.WeightKg = 72.2
	assert.Equal(t, TagSet{GeneralHealthy}, defaultEngine().Evaluate(justBelow).Tags)

	// 50.4 kg at 165 cm is BMI 18.51, charted as 18.5.
	above := baseline()
	above.WeightKg = 50.4
	assert.Equal(t, TagSet{GeneralHealthy}, defaultEngine().Evaluate(above).Tags)

	over := baseline()
	over.HeightCm = 170
	over.WeightKg = 80
	res := defaultEngine().Evaluate(over)
	require.Equal(t, TagSet{WeightLoss}, res.Tags)
	assert.Equal(t, "BMI of 27.7 is at or above 25; a moderate calorie deficit is recommended.", res.Trace[0].Rationale)
}

func TestEvaluateCategoricalRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*profile.UserProfile)
		tag    Tag
	}{
		{"sedentary", func(p *profile.UserProfile) { p.ActivityLevel = profile.Sedentary }, LowActivity},
		{"active", func(p *profile.UserProfile) { p.ActivityLevel = profile.Active }, HighProtein},
		{"high stress", func(p *profile.UserProfile) { p.StressLevel = profile.HighStress }, StressRelief},
		{"veg", func(p *profile.UserProfile) { p.Diet = profile.Veg }, Vegetarian},
		{"vegan", func(p *profile.UserProfile) { p.Diet = profile.Vegan }, Vegan},
		{"renal", withConditions(profile.KidneyDisease), Renal},
		{"pcos", withConditions(profile.PCOS), PCOS},
		{"gastric", withConditions(profile.Gastric), GastricFriendly},
		{"thyroid", withConditions(profile.Thyroid), ThyroidCare},
		{"celiac", withConditions(profile.Celiac), GlutenFree},
		{"diabetes reported", withConditions(profile.Diabetes), Diabetic},
		{"hypertension reported", withConditions(profile.Hypertension), LowSodium},
		{"heart disease reported", withConditions(profile.HeartDisease), HeartHealthy},
		{"gluten allergy", withAllergies(profile.Gluten), GlutenFree},
		{"lactose intolerance", withAllergies(profile.Lactose), LactoseFree},
		{"nut allergy", withAllergies(profile.Nuts), NutFree},
		{"soy allergy", withAllergies(profile.Soy), SoyFree},
		{"egg allergy", withAllergies(profile.Egg), EggFree},
		{"seafood allergy", withAllergies(profile.Seafood), SeafoodFree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseline()
			tt.mutate(&p)
			assert.Equal(t, TagSet{tt.tag}, defaultEngine().Evaluate(p).Tags)
		})
	}
}

func withConditions(cs ...profile.Condition) func(*profile.UserProfile) {
	return func(p *profile.UserProfile) { p.Conditions = cs }
}

func withAllergies(as ...profile.Allergen) func(*profile.UserProfile) {
	return func(p *profile.UserProfile) { p.Allergies = as }
}

func TestEvaluateReportedConditions(t *testing.T) {
	p := baseline()
	p.BloodSugar = 110
	p.Conditions = []profile.Condition{profile.Diabetes, profile.Gastric, profile.KidneyDisease}
	p.Allergies = []profile.Allergen{profile.Gluten}

	res := defaultEngine().Evaluate(p)
	assert.Equal(t, TagSet{Diabetic, Renal, GastricFriendly, GlutenFree}, res.Tags)
	require.Len(t, res.Trace, len(res.Tags))
	assert.Equal(t, "Diabetes reported; limit sugars and high-GI carbohydrates.", res.Trace[0].Rationale)
	assert.Contains(t, res.Trace[1].Rationale, "banana")
	assert.Equal(t, "Gluten intolerance reported; wheat, barley and other gluten grains are excluded.", res.Trace[3].Rationale)
}

func TestEvaluateEndToEndExample(t *testing.T) {
	p, err := profile.Validate(profile.RawInput{
		"age":              "45",
		"gender":           "male",
		"height_cm":        "175",
		"weight_kg":        "70",
		"blood_sugar_mgdl": "140",
		"blood_pressure":   "130/85",
		"diet_preference":  "veg",
		"activity_level":   "sedentary",
	})
	require.NoError(t, err)

	res := defaultEngine().Evaluate(p)

	assert.True(t, res.Tags.Has(Diabetic))
	assert.True(t, res.Tags.Has(LowActivity))
	assert.True(t, res.Tags.Has(LowSodium))
	assert.True(t, res.Tags.Has(Vegetarian))
	assert.False(t, res.Tags.Has(GeneralHealthy))
}

func TestEvaluateTraceMatchesTags(t *testing.T) {
	p := baseline()
	p.BloodSugar = 150
	p.Systolic = 145
	p.Age = 70
	p.Diet = profile.Vegan
	p.StressLevel = profile.HighStress

	res := defaultEngine().Evaluate(p)

	require.Len(t, res.Trace, len(res.Tags))
	for i, f := range res.Trace {
		assert.Equal(t, res.Tags[i], f.Tag)
		assert.NotEmpty(t, f.Rationale)
		assert.NotEmpty(t, f.RuleID)
	}
	assert.Equal(t, TagSet{Diabetic, LowSodium, StressRelief, Senior, Vegan}, res.Tags)
	assert.Contains(t, res.Trace[0].Rationale, "150 mg/dL")
}

func TestEvaluateIsDeterministic(t *testing.T) {
	p := baseline()
	p.Cholesterol = 240
	p.SleepHours = 5
	e := defaultEngine()

	first := e.Evaluate(p)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, e.Evaluate(p))
	}
}

func TestEvaluateCustomThresholds(t *testing.T) {
	th := config.DefaultRulesConfig().Thresholds
	th.SeniorAge = 30

	res := NewEngine(th).Evaluate(baseline())
	assert.Equal(t, TagSet{Senior}, res.Tags)
}

func TestEngineWithDuplicateTagRules(t *testing.T) {
	always := func(profile.UserProfile) bool { return true }
	why := func(profile.UserProfile) string { return "x" }
	e := NewEngineWithRules([]Rule{
		{ID: "a", Tag: LowSodium, Predicate: always, Rationale: why},
		{ID: "b", Tag: LowSodium, Predicate: always, Rationale: why},
	})

	res := e.Evaluate(baseline())
	assert.Equal(t, TagSet{LowSodium}, res.Tags)
	assert.Len(t, res.Trace, 2)
}

func TestTagSet(t *testing.T) {
	s := NewTagSet(Diabetic, LowSodium, Diabetic)
	assert.Equal(t, TagSet{Diabetic, LowSodium}, s)

	grown := s.With(Senior)
	assert.Len(t, s, 2, "With must not modify the receiver")
	assert.Equal(t, []string{"diabetic", "low-sodium", "senior"}, grown.Strings())
}
