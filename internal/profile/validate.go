package profile

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Defaults for optional fields left blank.
const (
	DefaultSleepHours = 7.0
	DefaultStress     = MediumStress
)

// FieldError describes one offending input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every offending field of a submission.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "invalid profile: " + strings.Join(parts, "; ")
}

// Has reports whether field is among the offending fields.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

var (
	genders = map[string]Gender{
		"male": Male, "m": Male,
		"female": Female, "f": Female,
		"other": Other,
	}
	diets = map[string]Diet{
		"veg": Veg, "vegetarian": Veg,
		"non-veg": NonVeg, "nonveg": NonVeg, "non_veg": NonVeg, "non-vegetarian": NonVeg,
		"vegan": Vegan,
	}
	activities = map[string]Activity{
		"sedentary": Sedentary,
		"moderate":  Moderate,
		"active":    Active,
	}
	stresses = map[string]Stress{
		"low":    LowStress,
		"medium": MediumStress, "moderate": MediumStress,
		"high": HighStress,
	}
	// Keys are in listKey form.
	conditions = map[string]Condition{
		"diabetes": Diabetes, "diabetic": Diabetes,
		"hypertension": Hypertension, "high-blood-pressure": Hypertension, "low-sodium": Hypertension,
		"heart-disease": HeartDisease, "cardiac": HeartDisease,
		"kidney-disease": KidneyDisease, "renal": KidneyDisease, "ckd": KidneyDisease,
		"pcos": PCOS, "pcod": PCOS,
		"gastric": Gastric, "gastric-issues": Gastric, "acidity": Gastric, "gerd": Gastric,
		"thyroid": Thyroid, "hypothyroidism": Thyroid,
		"celiac": Celiac, "coeliac": Celiac,
	}
	allergens = map[string]Allergen{
		"gluten":  Gluten,
		"lactose": Lactose, "dairy": Lactose, "milk": Lactose,
		"nuts": Nuts, "nut": Nuts, "peanut": Nuts, "peanuts": Nuts, "tree-nuts": Nuts,
		"soy": Soy, "soya": Soy,
		"egg": Egg, "eggs": Egg,
		"seafood": Seafood, "fish": Seafood, "shellfish": Seafood,
	}
	toggles = map[string]bool{
		"true": true, "yes": true, "y": true, "1": true, "on": true,
		"false": false, "no": false, "n": false, "0": false, "off": false,
	}
)

// Limits on the free-text preference lists.
const (
	MaxPreferences     = 20
	MaxPreferenceChars = 40
)

// validator accumulates field errors while parsing.
type validator struct {
	raw  RawInput
	errs []FieldError
}

func (v *validator) fail(field, format string, args ...any) {
	v.errs = append(v.errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) value(field string) string {
	return strings.TrimSpace(v.raw[field])
}

func (v *validator) integer(field string, required bool, lo, hi int) int {
	s := v.value(field)
	if s == "" {
		if required {
			v.fail(field, "is required")
		}
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		v.fail(field, "must be a whole number")
		return 0
	}
	if n < lo || n > hi {
		v.fail(field, "must be between %d and %d", lo, hi)
		return 0
	}
	return n
}

// number parses a float in [lo, hi]; when exclusiveLo is set the value must be above lo.
func (v *validator) number(field string, required bool, def, lo, hi float64, exclusiveLo bool) float64 {
	s := v.value(field)
	if s == "" {
		if required {
			v.fail(field, "is required")
		}
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		v.fail(field, "must be a number")
		return def
	}
	if exclusiveLo && f <= lo {
		v.fail(field, "must be greater than %s and at most %s", formatFloat(lo), formatFloat(hi))
		return def
	}
	if f < lo || f > hi {
		v.fail(field, "must be between %s and %s", formatFloat(lo), formatFloat(hi))
		return def
	}
	return f
}

func choice[T ~string](v *validator, field string, required bool, def T, options map[string]T) T {
	s := strings.ToLower(v.value(field))
	if s == "" {
		if required {
			v.fail(field, "is required")
		}
		return def
	}
	if t, ok := options[s]; ok {
		return t
	}
	v.fail(field, "must be one of %s", strings.Join(canonical(options), ", "))
	return def
}

// canonical lists the distinct option values in a stable order for messages.
func canonical[T ~string](options map[string]T) []string {
	seen := map[T]bool{}
	var out []string
	for k, t := range options {
		if string(t) == k && !seen[t] {
			seen[t] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// bloodPressure reads the separate systolic/diastolic fields, or the
// "130/85" shorthand when both are blank. A shorthand sent alongside the
// separate fields must still be well formed.
func (v *validator) bloodPressure() (int, int) {
	if v.value(FieldSystolic) != "" || v.value(FieldDiastolic) != "" {
		sys := v.integer(FieldSystolic, false, 0, 300)
		dia := v.integer(FieldDiastolic, false, 0, 300)
		if v.value(FieldBloodPressure) != "" {
			v.shorthand()
		}
		return sys, dia
	}
	if v.value(FieldBloodPressure) == "" {
		return 0, 0
	}
	return v.shorthand()
}

func (v *validator) shorthand() (int, int) {
	sys, dia, ok := strings.Cut(v.value(FieldBloodPressure), "/")
	if !ok {
		v.fail(FieldBloodPressure, "must look like 120/80")
		return 0, 0
	}
	a, errA := strconv.Atoi(strings.TrimSpace(sys))
	b, errB := strconv.Atoi(strings.TrimSpace(dia))
	if errA != nil || errB != nil {
		v.fail(FieldBloodPressure, "must look like 120/80")
		return 0, 0
	}
	if a < 0 || a > 300 || b < 0 || b > 300 {
		v.fail(FieldBloodPressure, "readings must be between 0 and 300")
		return 0, 0
	}
	return a, b
}

// listKey folds case, spacing and underscores so "Gastric Issues" and
// "gastric_issues" read the same.
func listKey(s string) string {
	return strings.Join(strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ' ' || r == '_' || r == '-' || r == '\t'
	}), "-")
}

// items splits a list field on ListSeparator, dropping blanks.
func (v *validator) items(field string) []string {
	var out []string
	for _, part := range strings.Split(v.value(field), ListSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// list parses a list of known options. "none" is accepted and ignored. The
// result is sorted and deduplicated, nil when empty.
func list[T ~string](v *validator, field string, options map[string]T) []T {
	seen := map[T]bool{}
	var out []T
	for _, item := range v.items(field) {
		key := listKey(item)
		if key == "none" {
			continue
		}
		t, ok := options[key]
		if !ok {
			v.fail(field, "unknown entry %q, must be among %s", item, strings.Join(canonical(options), ", "))
			continue
		}
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (v *validator) toggle(field string) bool {
	s := strings.ToLower(v.value(field))
	if s == "" {
		return false
	}
	b, ok := toggles[s]
	if !ok {
		v.fail(field, "must be true or false")
	}
	return b
}

// preferences reads a free-text food name list, lower-cased.
func (v *validator) preferences(field string) []string {
	seen := map[string]bool{}
	var out []string
	for _, item := range v.items(field) {
		item = strings.ToLower(item)
		if len(item) > MaxPreferenceChars {
			v.fail(field, "entries must be at most %d characters", MaxPreferenceChars)
			return nil
		}
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	if len(out) > MaxPreferences {
		v.fail(field, "must list at most %d entries", MaxPreferences)
		return nil
	}
	sort.Strings(out)
	return out
}

// withAllergen adds a to the sorted allergy list unless present.
func withAllergen(as []Allergen, a Allergen) []Allergen {
	for _, x := range as {
		if x == a {
			return as
		}
	}
	as = append(as, a)
	sort.Slice(as, func(i, j int) bool { return as[i] < as[j] })
	return as
}

// Validate normalizes and range-checks raw. On failure the error is a
// *ValidationError naming every offending field.
func Validate(raw RawInput) (UserProfile, error) {
	v := &validator{raw: raw}

	var p UserProfile
	p.Age = v.integer(FieldAge, true, 1, 120)
	p.Gender = choice(v, FieldGender, true, "", genders)
	p.HeightCm = v.number(FieldHeight, true, 0, 0, 300, true)
	p.WeightKg = v.number(FieldWeight, true, 0, 0, 500, true)
	p.BloodSugar = v.number(FieldBloodSugar, false, 0, 0, 1000, false)
	p.Systolic, p.Diastolic = v.bloodPressure()
	p.Cholesterol = v.number(FieldCholesterol, false, 0, 0, 1000, false)
	p.Diet = choice(v, FieldDiet, true, "", diets)
	p.ActivityLevel = choice(v, FieldActivity, true, "", activities)
	p.SleepHours = v.number(FieldSleep, false, DefaultSleepHours, 0, 24, false)
	p.StressLevel = choice(v, FieldStress, false, DefaultStress, stresses)
	p.Conditions = list(v, FieldConditions, conditions)
	p.Allergies = list(v, FieldAllergies, allergens)
	if v.toggle(FieldGlutenFree) {
		p.Allergies = withAllergen(p.Allergies, Gluten)
	}
	if v.toggle(FieldLactoseFree) {
		p.Allergies = withAllergen(p.Allergies, Lactose)
	}
	p.Likes = v.preferences(FieldLikes)
	p.Dislikes = v.preferences(FieldDislikes)
	if v.value(FieldDailyCalories) != "" {
		p.DailyCalories = v.integer(FieldDailyCalories, false, 800, 6000)
	}

	if len(v.errs) > 0 {
		return UserProfile{}, &ValidationError{Fields: v.errs}
	}
	return p, nil
}
