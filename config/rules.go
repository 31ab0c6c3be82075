package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Thresholds are the numeric cut-offs used by the rule engine. Each one is
// inclusive on the higher-risk side.
type Thresholds struct {
	// ADA fasting plasma glucose criteria, mg/dL
	DiabeticBloodSugar    float64 `mapstructure:"diabetic_blood_sugar"`
	PrediabeticBloodSugar float64 `mapstructure:"prediabetic_blood_sugar"`
	// ACC/AHA 2017 stage 1 hypertension, mmHg
	HypertensionSystolic  int `mapstructure:"hypertension_systolic"`
	HypertensionDiastolic int `mapstructure:"hypertension_diastolic"`
	// NCEP ATP III borderline-high total cholesterol, mg/dL
	HighCholesterol float64 `mapstructure:"high_cholesterol"`
	// WHO adult BMI classes
	OverweightBMI  float64 `mapstructure:"overweight_bmi"`
	UnderweightBMI float64 `mapstructure:"underweight_bmi"`
	// AASM recommends at least 7 hours for adults
	ShortSleepHours float64 `mapstructure:"short_sleep_hours"`
	SeniorAge       int     `mapstructure:"senior_age"`
}

// TagPolicy lists the food tags that satisfy or conflict with one constraint tag.
type TagPolicy struct {
	Prefers   []string `mapstructure:"prefers"`
	Conflicts []string `mapstructure:"conflicts"`
}

// RulesConfig is the tunable part of the rule engine and the plan composer.
type RulesConfig struct {
	Thresholds Thresholds `mapstructure:"thresholds"`
	PerSlot    int        `mapstructure:"per_slot"`
	// Taxonomy entries replace the built-in policy of the same tag.
	Taxonomy map[string]TagPolicy `mapstructure:"taxonomy"`
}

// LoadRulesConfig reads the rules file at path (YAML, JSON or TOML) on top of
// the built-in defaults. An empty path yields the defaults. Any value can be
// overridden from the environment, e.g. NUTRIPLAN_RULES_THRESHOLDS_SENIOR_AGE=60.
func LoadRulesConfig(path string) (*RulesConfig, error) {
	v := viper.New()
	setRuleDefaults(v)

	v.SetEnvPrefix("NUTRIPLAN_RULES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
		}
	}

	var rc RulesConfig
	if err := v.Unmarshal(&rc); err != nil {
		return nil, fmt.Errorf("failed to decode rules config: %w", err)
	}
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	return &rc, nil
}

func setRuleDefaults(v *viper.Viper) {
	v.SetDefault("thresholds.diabetic_blood_sugar", 126.0)
	v.SetDefault("thresholds.prediabetic_blood_sugar", 100.0)
	v.SetDefault("thresholds.hypertension_systolic", 130)
	v.SetDefault("thresholds.hypertension_diastolic", 80)
	v.SetDefault("thresholds.high_cholesterol", 200.0)
	v.SetDefault("thresholds.overweight_bmi", 25.0)
	v.SetDefault("thresholds.underweight_bmi", 18.5)
	v.SetDefault("thresholds.short_sleep_hours", 6.0)
	v.SetDefault("thresholds.senior_age", 65)
	v.SetDefault("per_slot", 3)
}

// DefaultRulesConfig returns the built-in configuration.
func DefaultRulesConfig() *RulesConfig {
	v := viper.New()
	setRuleDefaults(v)
	var rc RulesConfig
	// defaults always decode
	_ = v.Unmarshal(&rc)
	return &rc
}

// Validate reports every inconsistent value.
func (rc *RulesConfig) Validate() error {
	t := rc.Thresholds
	var errs []error
	check := func(ok bool, field, msg string) {
		if !ok {
			errs = append(errs, ValidationError{Field: field, Message: msg})
		}
	}

	check(t.PrediabeticBloodSugar > 0, "thresholds.prediabetic_blood_sugar", "must be positive")
	check(t.DiabeticBloodSugar > t.PrediabeticBloodSugar, "thresholds.diabetic_blood_sugar", "must be above the pre-diabetic threshold")
	check(t.HypertensionSystolic > 0, "thresholds.hypertension_systolic", "must be positive")
	check(t.HypertensionDiastolic > 0, "thresholds.hypertension_diastolic", "must be positive")
	check(t.HighCholesterol > 0, "thresholds.high_cholesterol", "must be positive")
	check(t.UnderweightBMI > 0, "thresholds.underweight_bmi", "must be positive")
	check(t.OverweightBMI > t.UnderweightBMI, "thresholds.overweight_bmi", "must be above the underweight threshold")
	check(t.ShortSleepHours > 0 && t.ShortSleepHours < 24, "thresholds.short_sleep_hours", "must be between 0 and 24")
	check(t.SeniorAge > 0 && t.SeniorAge <= 120, "thresholds.senior_age", "must be between 1 and 120")
	check(rc.PerSlot > 0, "per_slot", "must be at least 1")

	return errors.Join(errs...)
}
