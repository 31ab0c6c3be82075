// Package evaluator is the single entry point of the planning core: raw form
// values in, an explained diet plan or a validation error out.
package evaluator

import (
	"math"

	"github.com/pageza/nutriplan/backend/config"
	"github.com/pageza/nutriplan/backend/internal/catalog"
	"github.com/pageza/nutriplan/backend/internal/planner"
	"github.com/pageza/nutriplan/backend/internal/profile"
	"github.com/pageza/nutriplan/backend/internal/rules"
)

// Evaluation is everything one run produces.
type Evaluation struct {
	Profile     profile.UserProfile  `json:"profile"`
	BMI         float64              `json:"bmi"`
	Tags        rules.TagSet         `json:"tags"`
	Trace       []rules.Firing       `json:"trace"`
	Plan        planner.DietPlan     `json:"plan"`
	Targets     planner.Targets      `json:"targets"`
	MealTargets []planner.MealTarget `json:"meal_targets"`
	Week        []planner.DayPlan    `json:"week"`
	Tips        planner.Tips         `json:"tips"`
}

// Evaluator wires the rule engine, the dataset and the taxonomy together.
// It holds no mutable state and is safe for concurrent use.
type Evaluator struct {
	engine   *rules.Engine
	dataset  *catalog.Dataset
	taxonomy planner.Taxonomy
	options  planner.Options
}

// New builds an Evaluator from its parts.
func New(engine *rules.Engine, ds *catalog.Dataset, tax planner.Taxonomy, opts planner.Options) *Evaluator {
	return &Evaluator{engine: engine, dataset: ds, taxonomy: tax, options: opts}
}

// NewFromConfig builds an Evaluator from the rules configuration.
func NewFromConfig(rc *config.RulesConfig, ds *catalog.Dataset) *Evaluator {
	return New(
		rules.NewEngine(rc.Thresholds),
		ds,
		planner.DefaultTaxonomy().WithOverrides(rc.Taxonomy),
		planner.Options{PerSlot: rc.PerSlot},
	)
}

// Evaluate validates raw and plans for the resulting profile. The only error
// it returns is *profile.ValidationError.
func (e *Evaluator) Evaluate(raw profile.RawInput) (*Evaluation, error) {
	p, err := profile.Validate(raw)
	if err != nil {
		return nil, err
	}
	return e.EvaluateProfile(p), nil
}

// EvaluateProfile plans for an already validated profile.
func (e *Evaluator) EvaluateProfile(p profile.UserProfile) *Evaluation {
	res := e.engine.Evaluate(p)
	opts := e.options
	opts.Likes = p.Likes
	opts.Dislikes = p.Dislikes
	plan := planner.Compose(res.Tags, e.dataset, e.taxonomy, opts)
	targets := planner.ComputeTargets(p, res.Tags)

	return &Evaluation{
		Profile:     p,
		BMI:         math.Round(p.BMI()*10) / 10,
		Tags:        res.Tags,
		Trace:       res.Trace,
		Plan:        plan,
		Targets:     targets,
		MealTargets: planner.MealTargets(targets, plan),
		Week:        planner.WeeklyRotation(plan),
		Tips:        planner.BuildTips(p, res.Tags, targets),
	}
}

// Rules returns the rule list in evaluation order.
func (e *Evaluator) Rules() []rules.Rule {
	return e.engine.Rules()
}

// Taxonomy returns the tag policies in use.
func (e *Evaluator) Taxonomy() planner.Taxonomy {
	return e.taxonomy
}

// Dataset returns the food catalog in use.
func (e *Evaluator) Dataset() *catalog.Dataset {
	return e.dataset
}
