package service

import (
	"context"
	"errors"

	"gymdesk/gym-app/internal/domain"
	"gymdesk/gym-app/internal/repository"
	"gymdesk/gym-app/internal/schedule"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound          = errors.New("diet plan not found")
	ErrPlanAccessDenied      = errors.New("access denied to modify this diet plan")
	ErrPlanNameRequired      = errors.New("plan name is required")
	ErrInvalidPrivacyMode    = errors.New("privacy mode must be Public or Private")
	ErrPlanEmpty             = schedule.ErrNoMeals
	ErrMemberNotFound        = errors.New("member not found")
	ErrMemberAlreadyAssigned = errors.New("member is already assigned to this plan")
	ErrMemberNotAssigned     = errors.New("member is not assigned to this plan")
)

// CopyInput stages a day copy to be applied when the plan is built.
// Targets naming the source day or unknown days are dropped.
type CopyInput struct {
	Source  domain.Weekday
	Targets []domain.Weekday
}

// PlanInput is the draft content of a create or update request. The
// weekly plan may be sparse or hold incomplete cards; normalization and
// filtering happen during submission, mirroring how the editor only
// validates at submit time.
type PlanInput struct {
	Name        string
	PrivacyMode domain.PrivacyMode
	WeeklyPlan  []domain.DaySchedule
	MemberIDs   []primitive.ObjectID // buffered assignments, create only
	Copy        *CopyInput           // staged day copy, create only
}

// --- Service Interface ---
type DietPlanService interface {
	CreatePlan(ctx context.Context, trainerID primitive.ObjectID, input PlanInput) (*domain.DietPlan, error)
	UpdatePlan(ctx context.Context, trainerID, planID primitive.ObjectID, input PlanInput) (*domain.DietPlan, error)
	DeletePlan(ctx context.Context, trainerID, planID primitive.ObjectID) error
	GetPlanByID(ctx context.Context, planID primitive.ObjectID) (*domain.DietPlan, error)
	GetPlansByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.DietPlan, error)
	GetAllPlans(ctx context.Context) ([]domain.DietPlan, error)
	AssignMember(ctx context.Context, trainerID, planID, memberID primitive.ObjectID) (*domain.DietPlan, error)
	UnassignMember(ctx context.Context, trainerID, planID, memberID primitive.ObjectID) (*domain.DietPlan, error)
}

// --- Service Implementation ---

type dietPlanService struct {
	planRepo   repository.DietPlanRepository
	memberRepo repository.MemberRepository
}

// NewDietPlanService creates a new instance of dietPlanService.
func NewDietPlanService(planRepo repository.DietPlanRepository, memberRepo repository.MemberRepository) DietPlanService {
	return &dietPlanService{
		planRepo:   planRepo,
		memberRepo: memberRepo,
	}
}

// buildWeeklyPlan normalizes a draft to the persistable 7-day form:
// seed all days, apply the staged copy if any, then filter incomplete
// cards. ErrPlanEmpty means nothing would survive and no persistence
// call should be made.
func buildWeeklyPlan(input PlanInput) ([]domain.DaySchedule, error) {
	week := schedule.NewWeek(input.WeeklyPlan)

	var source domain.Weekday
	copies := schedule.CopySet{}
	if input.Copy != nil {
		source = input.Copy.Source
		for _, day := range input.Copy.Targets {
			if day != source {
				copies.Toggle(day)
			}
		}
	}
	return schedule.Build(week, source, copies)
}

// dedupeMembers keeps the first occurrence of each member id, preserving
// the order assignments were made in for display.
func dedupeMembers(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(ids))
	var out []primitive.ObjectID
	for _, id := range ids {
		if id == primitive.NilObjectID || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// CreatePlan validates and persists a new plan draft. Buffered member
// selections travel with the create payload; they are deduplicated, not
// rejected, since the draft ledger had no persisted state to check
// against.
func (s *dietPlanService) CreatePlan(ctx context.Context, trainerID primitive.ObjectID, input PlanInput) (*domain.DietPlan, error) {
	if trainerID == primitive.NilObjectID {
		return nil, errors.New("trainer ID is required")
	}
	if input.Name == "" {
		return nil, ErrPlanNameRequired
	}
	if !input.PrivacyMode.IsValid() {
		return nil, ErrInvalidPrivacyMode
	}

	weekly, err := buildWeeklyPlan(input)
	if err != nil {
		return nil, err
	}

	plan := &domain.DietPlan{
		TrainerID:       trainerID,
		Name:            input.Name,
		PrivacyMode:     input.PrivacyMode,
		WeeklyPlan:      weekly,
		AssignedMembers: dedupeMembers(input.MemberIDs),
		// ID, CreatedAt, UpdatedAt set by repository
	}

	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = planID
	return plan, nil
}

// UpdatePlan replaces a persisted plan's content wholesale. Assigned
// members are not touched here; the assignment endpoints own that set.
func (s *dietPlanService) UpdatePlan(ctx context.Context, trainerID, planID primitive.ObjectID, input PlanInput) (*domain.DietPlan, error) {
	if input.Name == "" {
		return nil, ErrPlanNameRequired
	}
	if !input.PrivacyMode.IsValid() {
		return nil, ErrInvalidPrivacyMode
	}

	plan, err := s.getOwnedPlan(ctx, trainerID, planID)
	if err != nil {
		return nil, err
	}

	weekly, err := buildWeeklyPlan(input)
	if err != nil {
		return nil, err
	}

	plan.Name = input.Name
	plan.PrivacyMode = input.PrivacyMode
	plan.WeeklyPlan = weekly

	if err := s.planRepo.Replace(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// DeletePlan removes a plan owned by the trainer. No soft delete.
func (s *dietPlanService) DeletePlan(ctx context.Context, trainerID, planID primitive.ObjectID) error {
	if trainerID == primitive.NilObjectID || planID == primitive.NilObjectID {
		return errors.New("trainer ID and plan ID are required")
	}
	err := s.planRepo.Delete(ctx, planID, trainerID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPlanNotFound
	}
	return err
}

func (s *dietPlanService) GetPlanByID(ctx context.Context, planID primitive.ObjectID) (*domain.DietPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *dietPlanService) GetPlansByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.DietPlan, error) {
	if trainerID == primitive.NilObjectID {
		return nil, errors.New("trainer ID is required")
	}
	return s.planRepo.GetByTrainerID(ctx, trainerID)
}

func (s *dietPlanService) GetAllPlans(ctx context.Context) ([]domain.DietPlan, error) {
	return s.planRepo.GetAll(ctx)
}

// AssignMember adds a member to a persisted plan. A duplicate attempt is
// rejected before any write; otherwise the whole document is replaced
// immediately (read-modify-write, no staging once the plan exists).
func (s *dietPlanService) AssignMember(ctx context.Context, trainerID, planID, memberID primitive.ObjectID) (*domain.DietPlan, error) {
	plan, err := s.getOwnedPlan(ctx, trainerID, planID)
	if err != nil {
		return nil, err
	}

	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	if plan.IsAssigned(memberID) {
		return nil, ErrMemberAlreadyAssigned
	}

	plan.AssignedMembers = append(plan.AssignedMembers, memberID)
	if err := s.planRepo.Replace(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// UnassignMember removes a member from a persisted plan with the same
// immediate-persist behavior as AssignMember.
func (s *dietPlanService) UnassignMember(ctx context.Context, trainerID, planID, memberID primitive.ObjectID) (*domain.DietPlan, error) {
	plan, err := s.getOwnedPlan(ctx, trainerID, planID)
	if err != nil {
		return nil, err
	}

	found := false
	kept := plan.AssignedMembers[:0]
	for _, id := range plan.AssignedMembers {
		if id == memberID {
			found = true
			continue
		}
		kept = append(kept, id)
	}
	if !found {
		return nil, ErrMemberNotAssigned
	}
	plan.AssignedMembers = kept

	if err := s.planRepo.Replace(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// getOwnedPlan fetches a plan and verifies trainer ownership.
func (s *dietPlanService) getOwnedPlan(ctx context.Context, trainerID, planID primitive.ObjectID) (*domain.DietPlan, error) {
	if trainerID == primitive.NilObjectID || planID == primitive.NilObjectID {
		return nil, errors.New("trainer ID and plan ID are required")
	}
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.TrainerID != trainerID {
		return nil, ErrPlanAccessDenied
	}
	return plan, nil
}
