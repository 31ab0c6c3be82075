package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/nutriplan/backend/internal/catalog"
	"github.com/pageza/nutriplan/backend/internal/evaluator"
	"github.com/pageza/nutriplan/backend/internal/models"
	"github.com/pageza/nutriplan/backend/internal/planner"
	"github.com/pageza/nutriplan/backend/internal/profile"
	"github.com/pageza/nutriplan/backend/internal/repository"
	"github.com/pageza/nutriplan/backend/internal/types"
)

// IRecommendationService defines the interface for plan evaluation
type IRecommendationService interface {
	Evaluate(ctx context.Context, raw profile.RawInput) (*evaluator.Evaluation, error)
	EvaluateAndSave(ctx context.Context, raw profile.RawInput) (*SavedPlan, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*SavedPlan, error)
	ListPlans(ctx context.Context, filter repository.PlanFilter) ([]PlanSummary, int64, error)
	Foods(slot catalog.Slot) []catalog.FoodItem
	Rules() []RuleInfo
	Taxonomy() planner.Taxonomy
}

// IOperatorAuthService defines the interface for operator tokens
type IOperatorAuthService interface {
	IssueToken(operator, role string) (string, error)
	ValidateToken(token string) (*types.OperatorClaims, error)
}

// EvaluationCache keeps evaluations by profile key.
type EvaluationCache interface {
	Get(ctx context.Context, key string) (*evaluator.Evaluation, bool, error)
	Set(ctx context.Context, key string, ev *evaluator.Evaluation) error
}

// PlanStore persists evaluations.
type PlanStore interface {
	Create(ctx context.Context, record *models.PlanRecord) error
	Get(ctx context.Context, id uuid.UUID) (*models.PlanRecord, error)
	List(ctx context.Context, filter repository.PlanFilter) ([]models.PlanRecord, int64, error)
}
