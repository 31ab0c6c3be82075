// Package profile turns raw form values into a validated UserProfile.
package profile

import (
	"strconv"
	"strings"
)

// Gender of the user, used by the energy and sugar estimates.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)

// Diet is the user's dietary preference.
type Diet string

const (
	Veg    Diet = "veg"
	NonVeg Diet = "non-veg"
	Vegan  Diet = "vegan"
)

// Activity is the user's habitual activity level.
type Activity string

const (
	Sedentary Activity = "sedentary"
	Moderate  Activity = "moderate"
	Active    Activity = "active"
)

// Stress is the self-reported stress level.
type Stress string

const (
	LowStress    Stress = "low"
	MediumStress Stress = "medium"
	HighStress   Stress = "high"
)

// Condition is a health condition the user reports.
type Condition string

const (
	Diabetes      Condition = "diabetes"
	Hypertension  Condition = "hypertension"
	HeartDisease  Condition = "heart-disease"
	KidneyDisease Condition = "kidney-disease"
	PCOS          Condition = "pcos"
	Gastric       Condition = "gastric"
	Thyroid       Condition = "thyroid"
	Celiac        Condition = "celiac"
)

// Allergen is a food group the user must not eat.
type Allergen string

const (
	Gluten  Allergen = "gluten"
	Lactose Allergen = "lactose"
	Nuts    Allergen = "nuts"
	Soy     Allergen = "soy"
	Egg     Allergen = "egg"
	Seafood Allergen = "seafood"
)

// Field names accepted in a RawInput.
const (
	FieldAge           = "age"
	FieldGender        = "gender"
	FieldHeight        = "height_cm"
	FieldWeight        = "weight_kg"
	FieldBloodSugar    = "blood_sugar_mgdl"
	FieldBloodPressure = "blood_pressure"
	FieldSystolic      = "blood_pressure_systolic"
	FieldDiastolic     = "blood_pressure_diastolic"
	FieldCholesterol   = "cholesterol_mgdl"
	FieldDiet          = "diet_preference"
	FieldActivity      = "activity_level"
	FieldSleep         = "sleep_hours"
	FieldStress        = "stress_level"
	FieldConditions    = "conditions"
	FieldAllergies     = "allergies"
	FieldGlutenFree    = "gluten_free"
	FieldLactoseFree   = "lactose_free"
	FieldLikes         = "likes"
	FieldDislikes      = "dislikes"
	FieldDailyCalories = "daily_calories"
)

// ListSeparator joins the values of list fields in a RawInput.
const ListSeparator = ","

// FieldNames lists every field Validate reads, in form order.
var FieldNames = []string{
	FieldAge, FieldGender, FieldHeight, FieldWeight,
	FieldBloodSugar, FieldBloodPressure, FieldSystolic, FieldDiastolic,
	FieldCholesterol, FieldDiet, FieldActivity, FieldSleep, FieldStress,
	FieldConditions, FieldAllergies, FieldGlutenFree, FieldLactoseFree,
	FieldLikes, FieldDislikes, FieldDailyCalories,
}

// RawInput is a form submission: field name to raw string value.
type RawInput map[string]string

// UserProfile is a validated profile. Callers treat it as immutable: the list
// fields are sorted, deduplicated and never modified after Validate returns.
// Zero blood measurements and a zero DailyCalories mean the value was not
// provided. The gluten_free and lactose_free toggles are folded into Allergies.
type UserProfile struct {
	Age           int      `json:"age"`
	Gender        Gender   `json:"gender"`
	HeightCm      float64  `json:"height_cm"`
	WeightKg      float64  `json:"weight_kg"`
	BloodSugar    float64  `json:"blood_sugar_mgdl"`
	Systolic      int      `json:"blood_pressure_systolic"`
	Diastolic     int      `json:"blood_pressure_diastolic"`
	Cholesterol   float64  `json:"cholesterol_mgdl"`
	Diet          Diet     `json:"diet_preference"`
	ActivityLevel Activity `json:"activity_level"`
	SleepHours    float64  `json:"sleep_hours"`
	StressLevel   Stress   `json:"stress_level"`

	Conditions    []Condition `json:"conditions,omitempty"`
	Allergies     []Allergen  `json:"allergies,omitempty"`
	Likes         []string    `json:"likes,omitempty"`
	Dislikes      []string    `json:"dislikes,omitempty"`
	DailyCalories int         `json:"daily_calories,omitempty"`
}

// BMI is weight over height squared in kg/m², unrounded.
func (p UserProfile) BMI() float64 {
	if p.HeightCm <= 0 {
		return 0
	}
	m := p.HeightCm / 100
	return p.WeightKg / (m * m)
}

// HasCondition reports whether c was reported.
func (p UserProfile) HasCondition(c Condition) bool {
	for _, x := range p.Conditions {
		if x == c {
			return true
		}
	}
	return false
}

// HasAllergy reports whether a is among the allergies.
func (p UserProfile) HasAllergy(a Allergen) bool {
	for _, x := range p.Allergies {
		if x == a {
			return true
		}
	}
	return false
}

// Fields re-serializes the normalized profile. Validate(p.Fields()) returns p.
func (p UserProfile) Fields() RawInput {
	return RawInput{
		FieldAge:           strconv.Itoa(p.Age),
		FieldGender:        string(p.Gender),
		FieldHeight:        formatFloat(p.HeightCm),
		FieldWeight:        formatFloat(p.WeightKg),
		FieldBloodSugar:    formatFloat(p.BloodSugar),
		FieldSystolic:      strconv.Itoa(p.Systolic),
		FieldDiastolic:     strconv.Itoa(p.Diastolic),
		FieldCholesterol:   formatFloat(p.Cholesterol),
		FieldDiet:          string(p.Diet),
		FieldActivity:      string(p.ActivityLevel),
		FieldSleep:         formatFloat(p.SleepHours),
		FieldStress:        string(p.StressLevel),
		FieldConditions:    joinList(p.Conditions),
		FieldAllergies:     joinList(p.Allergies),
		FieldLikes:         joinList(p.Likes),
		FieldDislikes:      joinList(p.Dislikes),
		FieldDailyCalories: optionalInt(p.DailyCalories),
	}
}

func optionalInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func joinList[T ~string](items []T) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = string(it)
	}
	return strings.Join(parts, ListSeparator)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
