package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/nutriplan/backend/internal/catalog"
	"github.com/pageza/nutriplan/backend/internal/evaluator"
	"github.com/pageza/nutriplan/backend/internal/models"
	"github.com/pageza/nutriplan/backend/internal/planner"
	"github.com/pageza/nutriplan/backend/internal/profile"
	"github.com/pageza/nutriplan/backend/internal/repository"
	"github.com/pageza/nutriplan/backend/internal/rules"
	"github.com/rs/zerolog"
)

// SavedPlan is a stored evaluation.
type SavedPlan struct {
	ID         uuid.UUID             `json:"id"`
	CreatedAt  time.Time             `json:"created_at"`
	Evaluation *evaluator.Evaluation `json:"evaluation"`
}

// PlanSummary is the list view of a stored evaluation.
type PlanSummary struct {
	ID            uuid.UUID `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	ProfileHash   string    `json:"profile_hash"`
	Tags          []string  `json:"tags"`
	DailyCalories int       `json:"daily_calories"`
}

// RuleInfo describes one rule for the explanation endpoint.
type RuleInfo struct {
	ID          string    `json:"id"`
	Tag         rules.Tag `json:"tag"`
	Description string    `json:"description"`
}

// RecommendationService runs evaluations, caching them by normalized profile
// and storing them on request.
type RecommendationService struct {
	evaluator *evaluator.Evaluator
	cache     EvaluationCache
	store     PlanStore
	logger    zerolog.Logger
}

var _ IRecommendationService = (*RecommendationService)(nil)

func NewRecommendationService(ev *evaluator.Evaluator, cache EvaluationCache, store PlanStore, logger zerolog.Logger) *RecommendationService {
	return &RecommendationService{
		evaluator: ev,
		cache:     cache,
		store:     store,
		logger:    logger.With().Str("component", "recommendation").Logger(),
	}
}

// ProfileKey hashes the normalized profile. Two raw inputs that validate to
// the same profile share a key.
func ProfileKey(p profile.UserProfile) string {
	fields := p.Fields()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := sha256.New()
	for _, k := range keys {
		fmt.Fprintf(h, "%s=%s\n", k, fields[k])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Evaluate validates raw and returns its plan. Invalid input yields a
// *profile.ValidationError. Cache failures are logged and never fail the call.
func (s *RecommendationService) Evaluate(ctx context.Context, raw profile.RawInput) (*evaluator.Evaluation, error) {
	ev, _, err := s.evaluate(ctx, raw)
	return ev, err
}

func (s *RecommendationService) evaluate(ctx context.Context, raw profile.RawInput) (*evaluator.Evaluation, string, error) {
	p, err := profile.Validate(raw)
	if err != nil {
		return nil, "", err
	}
	key := ProfileKey(p)

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("evaluation cache read failed")
		} else if ok {
			s.logger.Debug().Str("key", key).Msg("evaluation cache hit")
			return cached, key, nil
		}
	}

	ev := s.evaluator.EvaluateProfile(p)
	s.logger.Info().
		Strs("tags", ev.Tags.Strings()).
		Int("recommended", ev.Plan.Summary.Items).
		Int("avoided", len(ev.Plan.Avoid)).
		Msg("profile evaluated")

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, ev); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("evaluation cache write failed")
		}
	}
	return ev, key, nil
}

// EvaluateAndSave evaluates raw and stores the result.
func (s *RecommendationService) EvaluateAndSave(ctx context.Context, raw profile.RawInput) (*SavedPlan, error) {
	ev, key, err := s.evaluate(ctx, raw)
	if err != nil {
		return nil, err
	}

	doc, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to encode evaluation: %w", err)
	}
	record := &models.PlanRecord{
		ProfileHash: key,
		Tags:        models.JSONStringArray(ev.Tags.Strings()),
		Calories:    ev.Targets.DailyCalories,
		Evaluation:  models.JSONDocument(doc),
	}
	if err := s.store.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}

	s.logger.Info().Str("plan_id", record.ID.String()).Msg("plan saved")
	return &SavedPlan{ID: record.ID, CreatedAt: record.CreatedAt, Evaluation: ev}, nil
}

// GetPlan loads a stored evaluation. A missing plan is repository.ErrNotFound.
func (s *RecommendationService) GetPlan(ctx context.Context, id uuid.UUID) (*SavedPlan, error) {
	record, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	var ev evaluator.Evaluation
	if err := json.Unmarshal(record.Evaluation, &ev); err != nil {
		return nil, fmt.Errorf("failed to decode stored plan: %w", err)
	}
	return &SavedPlan{ID: record.ID, CreatedAt: record.CreatedAt, Evaluation: &ev}, nil
}

// ListPlans returns stored evaluations newest first.
func (s *RecommendationService) ListPlans(ctx context.Context, filter repository.PlanFilter) ([]PlanSummary, int64, error) {
	records, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list plans: %w", err)
	}

	out := make([]PlanSummary, len(records))
	for i, r := range records {
		out[i] = PlanSummary{
			ID:            r.ID,
			CreatedAt:     r.CreatedAt,
			ProfileHash:   r.ProfileHash,
			Tags:          []string(r.Tags),
			DailyCalories: r.Calories,
		}
	}
	return out, total, nil
}

// Foods returns the catalog, or one slot of it when slot is set.
func (s *RecommendationService) Foods(slot catalog.Slot) []catalog.FoodItem {
	if slot == "" {
		return s.evaluator.Dataset().Items()
	}
	return s.evaluator.Dataset().BySlot(slot)
}

// Rules lists the rules in evaluation order.
func (s *RecommendationService) Rules() []RuleInfo {
	rs := s.evaluator.Rules()
	out := make([]RuleInfo, len(rs))
	for i, r := range rs {
		out[i] = RuleInfo{ID: r.ID, Tag: r.Tag, Description: r.Description}
	}
	return out
}

// Taxonomy returns the tag policies in use.
func (s *RecommendationService) Taxonomy() planner.Taxonomy {
	return s.evaluator.Taxonomy()
}
