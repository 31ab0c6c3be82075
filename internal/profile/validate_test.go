package profile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() RawInput {
	return RawInput{
		"age":              "45",
		"gender":           "Male",
		"height_cm":        "172.5",
		"weight_kg":        "80",
		"blood_sugar_mgdl": "140",
		"blood_pressure":   "130/85",
		"cholesterol_mgdl": "190",
		"diet_preference":  "VEG",
		"activity_level":   "Sedentary",
		"sleep_hours":      "6.5",
		"stress_level":     "high",
	}
}

func TestValidate(t *testing.T) {
	p, err := Validate(validInput())
	require.NoError(t, err)

	assert.Equal(t, 45, p.Age)
	assert.Equal(t, Male, p.Gender)
	assert.Equal(t, 172.5, p.HeightCm)
	assert.Equal(t, 80.0, p.WeightKg)
	assert.Equal(t, 140.0, p.BloodSugar)
	assert.Equal(t, 130, p.Systolic)
	assert.Equal(t, 85, p.Diastolic)
	assert.Equal(t, 190.0, p.Cholesterol)
	assert.Equal(t, Veg, p.Diet)
	assert.Equal(t, Sedentary, p.ActivityLevel)
	assert.Equal(t, 6.5, p.SleepHours)
	assert.Equal(t, HighStress, p.StressLevel)
	assert.InDelta(t, 26.885, p.BMI(), 0.001)
	assert.Nil(t, p.Conditions)
	assert.Nil(t, p.Allergies)
	assert.Zero(t, p.DailyCalories)
}

func TestBMIIsUnrounded(t *testing.T) {
	p := UserProfile{HeightCm: 170, WeightKg: 72.2}
	assert.InDelta(t, 24.983, p.BMI(), 0.001)
	assert.Less(t, p.BMI(), 25.0)

	assert.Zero(t, UserProfile{WeightKg: 70}.BMI())
}

func TestValidateOptionalDefaults(t *testing.T) {
	p, err := Validate(RawInput{
		"age":             "30",
		"gender":          "f",
		"height_cm":       "160",
		"weight_kg":       "55",
		"diet_preference": "vegan",
		"activity_level":  "active",
	})
	require.NoError(t, err)

	assert.Equal(t, Female, p.Gender)
	assert.Zero(t, p.BloodSugar)
	assert.Zero(t, p.Systolic)
	assert.Zero(t, p.Diastolic)
	assert.Zero(t, p.Cholesterol)
	assert.Equal(t, DefaultSleepHours, p.SleepHours)
	assert.Equal(t, DefaultStress, p.StressLevel)
}

func TestValidateAliases(t *testing.T) {
	tests := []struct {
		field, value string
		check        func(UserProfile) bool
	}{
		{"diet_preference", "Vegetarian", func(p UserProfile) bool { return p.Diet == Veg }},
		{"diet_preference", "non_veg", func(p UserProfile) bool { return p.Diet == NonVeg }},
		{"diet_preference", "NON-VEG", func(p UserProfile) bool { return p.Diet == NonVeg }},
		{"stress_level", "Moderate", func(p UserProfile) bool { return p.StressLevel == MediumStress }},
		{"gender", " OTHER ", func(p UserProfile) bool { return p.Gender == Other }},
	}

	for _, tt := range tests {
		t.Run(tt.field+"="+tt.value, func(t *testing.T) {
			raw := validInput()
			raw[tt.field] = tt.value
			p, err := Validate(raw)
			require.NoError(t, err)
			assert.True(t, tt.check(p))
		})
	}
}

func TestValidateEnumeratesEveryField(t *testing.T) {
	raw := RawInput{
		"age":              "0",
		"gender":           "robot",
		"height_cm":        "-3",
		"weight_kg":        "heavy",
		"blood_sugar_mgdl": "-1",
		"blood_pressure":   "high",
		"cholesterol_mgdl": "NaN",
		"diet_preference":  "keto",
		"sleep_hours":      "25",
		"stress_level":     "extreme",
	}

	_, err := Validate(raw)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	var fields []string
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{
		"age", "gender", "height_cm", "weight_kg", "blood_sugar_mgdl", "blood_pressure",
		"cholesterol_mgdl", "diet_preference", "activity_level", "sleep_hours", "stress_level",
	}, fields)
	assert.Contains(t, err.Error(), "activity_level: is required")
	assert.Contains(t, err.Error(), "gender: must be one of female, male, other")
}

func TestValidateRanges(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		wantErr bool
	}{
		{"age lower bound", "age", "1", false},
		{"age upper bound", "age", "120", false},
		{"age above range", "age", "121", true},
		{"age fractional", "age", "30.5", true},
		{"zero height", "height_cm", "0", true},
		{"tiny height", "height_cm", "0.1", false},
		{"zero weight", "weight_kg", "0", true},
		{"sleep zero", "sleep_hours", "0", false},
		{"sleep full day", "sleep_hours", "24", false},
		{"sleep negative", "sleep_hours", "-0.5", true},
		{"systolic out of range", "blood_pressure_systolic", "301", true},
		{"infinite sugar", "blood_sugar_mgdl", "Inf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validInput()
			raw[tt.field] = tt.value
			_, err := Validate(raw)
			if tt.wantErr {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.True(t, verr.Has(tt.field))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSeparateBloodPressureWins(t *testing.T) {
	raw := validInput()
	raw["blood_pressure_systolic"] = "118"
	raw["blood_pressure_diastolic"] = "76"

	p, err := Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, 118, p.Systolic)
	assert.Equal(t, 76, p.Diastolic)
}

func TestValidateMalformedShorthandWithSeparateFields(t *testing.T) {
	raw := validInput()
	raw["blood_pressure_systolic"] = "118"
	raw["blood_pressure_diastolic"] = "76"
	raw["blood_pressure"] = "high"

	_, err := Validate(raw)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []FieldError{{Field: "blood_pressure", Message: "must look like 120/80"}}, verr.Fields)

	raw["blood_pressure"] = "400/90"
	_, err = Validate(raw)
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("blood_pressure"))
}

func TestValidateConditionsAndAllergies(t *testing.T) {
	raw := validInput()
	raw["conditions"] = "Renal, gastric issues,PCOD, renal, none"
	raw["allergies"] = "Peanuts,milk"
	raw["gluten_free"] = "yes"
	raw["lactose_free"] = "true"

	p, err := Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, []Condition{Gastric, KidneyDisease, PCOS}, p.Conditions)
	assert.Equal(t, []Allergen{Gluten, Lactose, Nuts}, p.Allergies)
	assert.True(t, p.HasCondition(KidneyDisease))
	assert.False(t, p.HasCondition(Thyroid))
	assert.True(t, p.HasAllergy(Gluten))
	assert.False(t, p.HasAllergy(Soy))
}

func TestValidateListErrors(t *testing.T) {
	tests := []struct {
		field string
		value string
	}{
		{"conditions", "diabetes, flu"},
		{"allergies", "pollen"},
		{"gluten_free", "sometimes"},
		{"daily_calories", "500"},
		{"daily_calories", "2000.5"},
		{"likes", strings.Repeat("x", MaxPreferenceChars+1)},
	}

	for _, tt := range tests {
		t.Run(tt.field+"="+tt.value, func(t *testing.T) {
			raw := validInput()
			raw[tt.field] = tt.value
			_, err := Validate(raw)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.True(t, verr.Has(tt.field))
		})
	}

	raw := validInput()
	raw["conditions"] = "flu"
	_, err := Validate(raw)
	assert.ErrorContains(t, err, `unknown entry "flu"`)
}

func TestValidatePreferencesAndCalories(t *testing.T) {
	raw := validInput()
	raw["likes"] = " Paneer , oats,paneer"
	raw["dislikes"] = "Banana"
	raw["daily_calories"] = "1800"
	raw["gluten_free"] = "no"

	p, err := Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"oats", "paneer"}, p.Likes)
	assert.Equal(t, []string{"banana"}, p.Dislikes)
	assert.Equal(t, 1800, p.DailyCalories)
	assert.Nil(t, p.Allergies)
}

func TestFieldsRoundTrip(t *testing.T) {
	withLists := validInput()
	withLists["conditions"] = "thyroid,Kidney Disease"
	withLists["allergies"] = "soy"
	withLists["lactose_free"] = "1"
	withLists["likes"] = "Dal"
	withLists["dislikes"] = "bitter gourd,okra"
	withLists["daily_calories"] = "2200"

	inputs := []RawInput{
		validInput(),
		withLists,
		{
			"age": "88", "gender": "other", "height_cm": "149.25", "weight_kg": "41.3",
			"diet_preference": "non-veg", "activity_level": "moderate",
		},
	}

	for _, raw := range inputs {
		p, err := Validate(raw)
		require.NoError(t, err)

		again, err := Validate(p.Fields())
		require.NoError(t, err)
		assert.Equal(t, p, again)
		assert.Equal(t, p.Fields(), again.Fields())
	}
}
