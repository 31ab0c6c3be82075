// Package rules maps a validated profile to dietary constraint tags through a
// fixed list of independent predicate rules. Every tag in a result can be traced
// back to the one rule that produced it.
package rules

import (
	"fmt"
	"strconv"

	"github.com/pageza/nutriplan/backend/config"
	"github.com/pageza/nutriplan/backend/internal/profile"
)

// DefaultRationale explains the general-healthy fallback.
const DefaultRationale = "No rule matched this profile; a general balanced diet applies."

// Rule adds Tag when Predicate holds for the profile.
type Rule struct {
	ID          string
	Tag         Tag
	Description string
	Predicate   func(profile.UserProfile) bool
	Rationale   func(profile.UserProfile) string
}

// Firing records one rule that matched and why.
type Firing struct {
	RuleID    string `json:"rule_id"`
	Tag       Tag    `json:"tag"`
	Rationale string `json:"rationale"`
}

// Result is the outcome of one evaluation.
type Result struct {
	Tags  TagSet   `json:"tags"`
	Trace []Firing `json:"trace"`
}

// Engine evaluates an ordered, immutable rule list.
type Engine struct {
	rules []Rule
}

// NewEngine builds the standard rule list for the given thresholds.
func NewEngine(t config.Thresholds) *Engine {
	return &Engine{rules: standardRules(t)}
}

// NewEngineWithRules is used when callers need a custom rule list.
func NewEngineWithRules(rules []Rule) *Engine {
	return &Engine{rules: append([]Rule(nil), rules...)}
}

// Rules returns a copy of the rule list in evaluation order.
func (e *Engine) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

// Evaluate runs every rule against the same profile snapshot. Rules never see
// each other's output. When nothing matches the result is exactly
// {general-healthy}.
func (e *Engine) Evaluate(p profile.UserProfile) Result {
	var res Result
	for _, r := range e.rules {
		if !r.Predicate(p) {
			continue
		}
		res.Tags = res.Tags.With(r.Tag)
		res.Trace = append(res.Trace, Firing{RuleID: r.ID, Tag: r.Tag, Rationale: r.Rationale(p)})
	}

	if len(res.Tags) == 0 {
		res.Tags = TagSet{GeneralHealthy}
		res.Trace = []Firing{{RuleID: "default", Tag: GeneralHealthy, Rationale: DefaultRationale}}
	}
	return res
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// bmi formats a BMI the way it is charted, to one decimal.
func bmi(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// allergyRule excludes one allergen group.
func allergyRule(id string, tag Tag, a profile.Allergen, why string) Rule {
	return Rule{
		ID:          id,
		Tag:         tag,
		Description: fmt.Sprintf("%s allergy reported", a),
		Predicate:   func(p profile.UserProfile) bool { return p.HasAllergy(a) },
		Rationale:   func(profile.UserProfile) string { return why },
	}
}

func standardRules(t config.Thresholds) []Rule {
	return []Rule{
		{
			ID:          "blood-sugar-diabetic",
			Tag:         Diabetic,
			Description: fmt.Sprintf("fasting blood sugar >= %s mg/dL or diabetes reported", num(t.DiabeticBloodSugar)),
			Predicate: func(p profile.UserProfile) bool {
				return p.BloodSugar >= t.DiabeticBloodSugar || p.HasCondition(profile.Diabetes)
			},
			Rationale: func(p profile.UserProfile) string {
				if p.BloodSugar < t.DiabeticBloodSugar {
					return "Diabetes reported; limit sugars and high-GI carbohydrates."
				}
				return fmt.Sprintf("Blood sugar of %s mg/dL is at or above the diabetic threshold of %s mg/dL; limit sugars and high-GI carbohydrates.",
					num(p.BloodSugar), num(t.DiabeticBloodSugar))
			},
		},
		{
			ID:  "blood-sugar-prediabetic",
			Tag: PreDiabetic,
			Description: fmt.Sprintf("fasting blood sugar from %s to below %s mg/dL, diabetes not reported",
				num(t.PrediabeticBloodSugar), num(t.DiabeticBloodSugar)),
			Predicate: func(p profile.UserProfile) bool {
				return p.BloodSugar >= t.PrediabeticBloodSugar && p.BloodSugar < t.DiabeticBloodSugar &&
					!p.HasCondition(profile.Diabetes)
			},
			Rationale: func(p profile.UserProfile) string {
				return fmt.Sprintf("Blood sugar of %s mg/dL is in the pre-diabetic range (%s to below %s mg/dL); favour low-GI, high-fibre foods.",
					num(p.BloodSugar), num(t.PrediabeticBloodSugar), num(t.DiabeticBloodSugar))
			},
		},
		{
			ID:  "blood-pressure-high",
			Tag: LowSodium,
			Description: fmt.Sprintf("systolic >= %d or diastolic >= %d mmHg, or hypertension reported",
				t.HypertensionSystolic, t.HypertensionDiastolic),
			Predicate: func(p profile.UserProfile) bool {
				return p.Systolic >= t.HypertensionSystolic || p.Diastolic >= t.HypertensionDiastolic ||
					p.HasCondition(profile.Hypertension)
			},
			Rationale: func(p profile.UserProfile) string {
				if p.Systolic < t.HypertensionSystolic && p.Diastolic < t.HypertensionDiastolic {
					return "Hypertension reported; keep sodium low."
				}
				return fmt.Sprintf("Blood pressure of %d/%d mmHg reaches the hypertension threshold of %d/%d mmHg; keep sodium low.",
					p.Systolic, p.Diastolic, t.HypertensionSystolic, t.HypertensionDiastolic)
			},
		},
		{
			ID:          "cholesterol-high",
			Tag:         HeartHealthy,
			Description: fmt.Sprintf("total cholesterol >= %s mg/dL or heart disease reported", num(t.HighCholesterol)),
			Predicate: func(p profile.UserProfile) bool {
				return p.Cholesterol >= t.HighCholesterol || p.HasCondition(profile.HeartDisease)
			},
			Rationale: func(p profile.UserProfile) string {
				if p.Cholesterol < t.HighCholesterol {
					return "Heart disease reported; prefer unsaturated fats and fibre, avoid fried food."
				}
				return fmt.Sprintf("Cholesterol of %s mg/dL is at or above %s mg/dL; prefer unsaturated fats and fibre, avoid fried food.",
					num(p.Cholesterol), num(t.HighCholesterol))
			},
		},
		{
			ID:          "bmi-overweight",
			Tag:         WeightLoss,
			Description: fmt.Sprintf("BMI >= %s", num(t.OverweightBMI)),
			Predicate:   func(p profile.UserProfile) bool { return p.BMI() >= t.OverweightBMI },
			Rationale: func(p profile.UserProfile) string {
				return fmt.Sprintf("BMI of %s is at or above %s; a moderate calorie deficit is recommended.",
					bmi(p.BMI()), num(t.OverweightBMI))
			},
		},
		{
			ID:          "bmi-underweight",
			Tag:         WeightGain,
			Description: fmt.Sprintf("BMI <= %s", num(t.UnderweightBMI)),
			Predicate:   func(p profile.UserProfile) bool { return p.BMI() <= t.UnderweightBMI },
			Rationale: func(p profile.UserProfile) string {
				return fmt.Sprintf("BMI of %s is at or below %s; a calorie surplus with nutrient-dense foods is recommended.",
					bmi(p.BMI()), num(t.UnderweightBMI))
			},
		},
		{
			ID:          "activity-sedentary",
			Tag:         LowActivity,
			Description: "activity level is sedentary",
			Predicate:   func(p profile.UserProfile) bool { return p.ActivityLevel == profile.Sedentary },
			Rationale: func(profile.UserProfile) string {
				return "Sedentary activity level; portions are kept light and fried food is avoided."
			},
		},
		{
			ID:          "activity-active",
			Tag:         HighProtein,
			Description: "activity level is active",
			Predicate:   func(p profile.UserProfile) bool { return p.ActivityLevel == profile.Active },
			Rationale: func(profile.UserProfile) string {
				return "Active lifestyle; extra protein supports recovery."
			},
		},
		{
			ID:          "stress-high",
			Tag:         StressRelief,
			Description: "stress level is high",
			Predicate:   func(p profile.UserProfile) bool { return p.StressLevel == profile.HighStress },
			Rationale: func(profile.UserProfile) string {
				return "High stress; favour anti-inflammatory foods and limit caffeine."
			},
		},
		{
			ID:          "sleep-short",
			Tag:         SleepSupport,
			Description: fmt.Sprintf("sleep <= %s hours", num(t.ShortSleepHours)),
			Predicate:   func(p profile.UserProfile) bool { return p.SleepHours <= t.ShortSleepHours },
			Rationale: func(p profile.UserProfile) string {
				return fmt.Sprintf("Sleeping %s hours is at or below %s hours; avoid caffeine and prefer magnesium-rich foods.",
					num(p.SleepHours), num(t.ShortSleepHours))
			},
		},
		{
			ID:          "age-senior",
			Tag:         Senior,
			Description: fmt.Sprintf("age >= %d", t.SeniorAge),
			Predicate:   func(p profile.UserProfile) bool { return p.Age >= t.SeniorAge },
			Rationale: func(p profile.UserProfile) string {
				return fmt.Sprintf("Age %d is at or above %d; prefer calcium-rich, easy-to-digest food and limit sodium.", p.Age, t.SeniorAge)
			},
		},
		{
			ID:          "diet-vegetarian",
			Tag:         Vegetarian,
			Description: "diet preference is veg",
			Predicate:   func(p profile.UserProfile) bool { return p.Diet == profile.Veg },
			Rationale: func(profile.UserProfile) string {
				return "Vegetarian preference; meat, fish and egg are excluded."
			},
		},
		{
			ID:          "diet-vegan",
			Tag:         Vegan,
			Description: "diet preference is vegan",
			Predicate:   func(p profile.UserProfile) bool { return p.Diet == profile.Vegan },
			Rationale: func(profile.UserProfile) string {
				return "Vegan preference; all animal products are excluded."
			},
		},
		{
			ID:          "condition-renal",
			Tag:         Renal,
			Description: "kidney disease reported",
			Predicate:   func(p profile.UserProfile) bool { return p.HasCondition(profile.KidneyDisease) },
			Rationale: func(profile.UserProfile) string {
				return "Kidney disease reported; limit potassium-rich foods such as banana and rajma, and keep sodium low."
			},
		},
		{
			ID:          "condition-pcos",
			Tag:         PCOS,
			Description: "PCOS reported",
			Predicate:   func(p profile.UserProfile) bool { return p.HasCondition(profile.PCOS) },
			Rationale: func(profile.UserProfile) string {
				return "PCOS reported; favour low-GI, anti-inflammatory foods and avoid refined sugar and fried food."
			},
		},
		{
			ID:          "condition-gastric",
			Tag:         GastricFriendly,
			Description: "gastric issues reported",
			Predicate:   func(p profile.UserProfile) bool { return p.HasCondition(profile.Gastric) },
			Rationale: func(profile.UserProfile) string {
				return "Gastric issues reported; avoid spicy and fried food."
			},
		},
		{
			ID:          "condition-thyroid",
			Tag:         ThyroidCare,
			Description: "thyroid condition reported",
			Predicate:   func(p profile.UserProfile) bool { return p.HasCondition(profile.Thyroid) },
			Rationale: func(profile.UserProfile) string {
				return "Thyroid condition reported; limit soy foods such as tofu and soy milk."
			},
		},
		{
			ID:          "allergy-gluten",
			Tag:         GlutenFree,
			Description: "gluten allergy or celiac disease reported",
			Predicate: func(p profile.UserProfile) bool {
				return p.HasAllergy(profile.Gluten) || p.HasCondition(profile.Celiac)
			},
			Rationale: func(p profile.UserProfile) string {
				if !p.HasAllergy(profile.Gluten) {
					return "Celiac disease reported; wheat, barley and other gluten grains are excluded."
				}
				return "Gluten intolerance reported; wheat, barley and other gluten grains are excluded."
			},
		},
		allergyRule("allergy-lactose", LactoseFree, profile.Lactose,
			"Lactose intolerance reported; milk and dairy foods are excluded."),
		allergyRule("allergy-nuts", NutFree, profile.Nuts,
			"Nut allergy reported; foods containing nuts are excluded."),
		allergyRule("allergy-soy", SoyFree, profile.Soy,
			"Soy allergy reported; tofu and soy milk are excluded."),
		allergyRule("allergy-egg", EggFree, profile.Egg,
			"Egg allergy reported; egg dishes are excluded."),
		allergyRule("allergy-seafood", SeafoodFree, profile.Seafood,
			"Seafood allergy reported; fish and shellfish are excluded."),
	}
}
