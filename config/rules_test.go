package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRulesConfigDefaults(t *testing.T) {
	rc, err := LoadRulesConfig("")
	require.NoError(t, err)

	assert.Equal(t, 126.0, rc.Thresholds.DiabeticBloodSugar)
	assert.Equal(t, 100.0, rc.Thresholds.PrediabeticBloodSugar)
	assert.Equal(t, 130, rc.Thresholds.HypertensionSystolic)
	assert.Equal(t, 80, rc.Thresholds.HypertensionDiastolic)
	assert.Equal(t, 200.0, rc.Thresholds.HighCholesterol)
	assert.Equal(t, 25.0, rc.Thresholds.OverweightBMI)
	assert.Equal(t, 18.5, rc.Thresholds.UnderweightBMI)
	assert.Equal(t, 6.0, rc.Thresholds.ShortSleepHours)
	assert.Equal(t, 65, rc.Thresholds.SeniorAge)
	assert.Equal(t, 3, rc.PerSlot)
	assert.Empty(t, rc.Taxonomy)

	assert.Equal(t, rc, DefaultRulesConfig())
}

func TestLoadRulesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	yaml := `
thresholds:
  senior_age: 60
  high_cholesterol: 240
per_slot: 2
taxonomy:
  low-sodium:
    prefers: [low-sodium]
    conflicts: [high-sodium, pickled]
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	rc, err := LoadRulesConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 60, rc.Thresholds.SeniorAge)
	assert.Equal(t, 240.0, rc.Thresholds.HighCholesterol)
	assert.Equal(t, 126.0, rc.Thresholds.DiabeticBloodSugar, "unset keys keep their default")
	assert.Equal(t, 2, rc.PerSlot)
	require.Contains(t, rc.Taxonomy, "low-sodium")
	assert.Equal(t, []string{"high-sodium", "pickled"}, rc.Taxonomy["low-sodium"].Conflicts)
}

func TestLoadRulesConfigEnvOverride(t *testing.T) {
	t.Setenv("NUTRIPLAN_RULES_THRESHOLDS_SENIOR_AGE", "70")
	t.Setenv("NUTRIPLAN_RULES_PER_SLOT", "4")

	rc, err := LoadRulesConfig("")
	require.NoError(t, err)
	assert.Equal(t, 70, rc.Thresholds.SeniorAge)
	assert.Equal(t, 4, rc.PerSlot)
}

func TestLoadRulesConfigRejectsInconsistentThresholds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	yaml := `
thresholds:
  diabetic_blood_sugar: 90
  underweight_bmi: 30
per_slot: 0
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	_, err := LoadRulesConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "thresholds.diabetic_blood_sugar")
	assert.Contains(t, err.Error(), "thresholds.overweight_bmi")
	assert.Contains(t, err.Error(), "per_slot")
}

func TestLoadRulesConfigMissingFile(t *testing.T) {
	_, err := LoadRulesConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
