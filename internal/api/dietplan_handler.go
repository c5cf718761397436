package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"gymdesk/gym-app/internal/domain"
	"gymdesk/gym-app/internal/schedule"
	"gymdesk/gym-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DietPlanHandler struct {
	planService service.DietPlanService
}

func NewDietPlanHandler(planService service.DietPlanService) *DietPlanHandler {
	return &DietPlanHandler{planService: planService}
}

// --- DTOs ---

// MealCardRequest is one meal entry as sent by the editor. Missing
// fields fall back to the editor defaults; ItemName may be empty for
// draft cards, which are dropped at submission.
type MealCardRequest struct {
	ID          string `json:"id"`
	FoodType    string `json:"foodType"`
	MealType    string `json:"mealType"`
	Quantity    string `json:"quantity"`
	Unit        string `json:"unit"`
	Timing      string `json:"timing"`
	ItemName    string `json:"itemName"`
	Description string `json:"description"`
}

type DayScheduleRequest struct {
	Day   string            `json:"day" binding:"required"`
	Meals []MealCardRequest `json:"meals"`
}

// CopyRequest stages a day copy that the server applies at submit time.
type CopyRequest struct {
	Source  string   `json:"source" binding:"required"`
	Targets []string `json:"targets" binding:"required"`
}

type CreateDietPlanRequest struct {
	Name        string               `json:"name" binding:"required"`
	PrivacyMode string               `json:"privacyMode" binding:"required,oneof=Public Private"`
	WeeklyPlan  []DayScheduleRequest `json:"weeklyPlan"`
	MemberIDs   []string             `json:"memberIds"`
	Copy        *CopyRequest         `json:"copy"`
}

type UpdateDietPlanRequest struct {
	Name        string               `json:"name" binding:"required"`
	PrivacyMode string               `json:"privacyMode" binding:"required,oneof=Public Private"`
	WeeklyPlan  []DayScheduleRequest `json:"weeklyPlan"`
}

type AssignMemberRequest struct {
	MemberID string `json:"memberId" binding:"required"`
}

type DietPlanResponse struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	PrivacyMode     string               `json:"privacyMode"`
	TrainerID       string               `json:"trainerId"`
	WeeklyPlan      []domain.DaySchedule `json:"weeklyPlan"`
	AssignedMembers []string             `json:"assignedMembers"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// MapDietPlanToResponse converts a domain DietPlan to its DTO.
func MapDietPlanToResponse(plan *domain.DietPlan) DietPlanResponse {
	if plan == nil {
		return DietPlanResponse{}
	}
	members := make([]string, len(plan.AssignedMembers))
	for i, id := range plan.AssignedMembers {
		members[i] = id.Hex()
	}
	return DietPlanResponse{
		ID:              plan.ID.Hex(),
		Name:            plan.Name,
		PrivacyMode:     string(plan.PrivacyMode),
		TrainerID:       plan.TrainerID.Hex(),
		WeeklyPlan:      plan.WeeklyPlan,
		AssignedMembers: members,
		CreatedAt:       plan.CreatedAt,
		UpdatedAt:       plan.UpdatedAt,
	}
}

func MapDietPlansToResponse(plans []domain.DietPlan) []DietPlanResponse {
	out := make([]DietPlanResponse, len(plans))
	for i := range plans {
		out[i] = MapDietPlanToResponse(&plans[i])
	}
	return out
}

// --- Request mapping helpers ---

// mapMealCard overlays a request card onto editor defaults. Enum fields
// must parse when present; a typo in a day or enum name is a 400, never
// silently dropped state.
func mapMealCard(req MealCardRequest) (domain.MealCard, error) {
	card := schedule.NewCard()
	if req.ID != "" {
		card.ID = req.ID
	}
	if req.FoodType != "" {
		ft := domain.FoodType(req.FoodType)
		if !ft.IsValid() {
			return domain.MealCard{}, fmt.Errorf("invalid foodType %q", req.FoodType)
		}
		card.FoodType = ft
	}
	if req.MealType != "" {
		mt, ok := domain.ParseMealType(req.MealType)
		if !ok {
			return domain.MealCard{}, fmt.Errorf("invalid mealType %q", req.MealType)
		}
		card.MealType = mt
	}
	if req.Quantity != "" {
		card.Quantity = req.Quantity
	}
	if req.Unit != "" {
		u := domain.Unit(req.Unit)
		if !u.IsValid() {
			return domain.MealCard{}, fmt.Errorf("invalid unit %q", req.Unit)
		}
		card.Unit = u
	}
	if req.Timing != "" {
		card.Timing = req.Timing
	}
	card.ItemName = req.ItemName
	card.Description = req.Description
	return card, nil
}

func mapWeeklyPlan(days []DayScheduleRequest) ([]domain.DaySchedule, error) {
	weekly := make([]domain.DaySchedule, 0, len(days))
	for _, dayReq := range days {
		day, ok := domain.ParseWeekday(dayReq.Day)
		if !ok {
			return nil, fmt.Errorf("invalid day %q", dayReq.Day)
		}
		meals := make([]domain.MealCard, 0, len(dayReq.Meals))
		for _, cardReq := range dayReq.Meals {
			card, err := mapMealCard(cardReq)
			if err != nil {
				return nil, err
			}
			meals = append(meals, card)
		}
		weekly = append(weekly, domain.DaySchedule{Day: day, Meals: meals})
	}
	return weekly, nil
}

func mapCopy(req *CopyRequest) (*service.CopyInput, error) {
	if req == nil {
		return nil, nil
	}
	source, ok := domain.ParseWeekday(req.Source)
	if !ok {
		return nil, fmt.Errorf("invalid copy source %q", req.Source)
	}
	targets := make([]domain.Weekday, 0, len(req.Targets))
	for _, t := range req.Targets {
		day, ok := domain.ParseWeekday(t)
		if !ok {
			return nil, fmt.Errorf("invalid copy target %q", t)
		}
		targets = append(targets, day)
	}
	return &service.CopyInput{Source: source, Targets: targets}, nil
}

func mapObjectIDs(ids []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, fmt.Errorf("invalid member id %q", id)
		}
		out = append(out, oid)
	}
	return out, nil
}

func trainerIDFromContext(c *gin.Context) (primitive.ObjectID, bool) {
	idStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format in token.")
		return primitive.NilObjectID, false
	}
	return id, true
}

func planIDFromPath(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid diet plan ID format.")
		return primitive.NilObjectID, false
	}
	return id, true
}

// --- Handler Methods ---

// CreatePlan godoc
// @Summary Create a diet plan
// @Description Creates a weekly diet plan from the editor draft. Staged day
// @Description copies are applied server-side and incomplete cards dropped;
// @Description a plan with no complete meal on any day is rejected.
// @Tags DietPlans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plan body CreateDietPlanRequest true "Plan draft"
// @Success 201 {object} DietPlanResponse "The persisted canonical plan"
// @Failure 400 {object} gin.H "Validation error or empty plan"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /diet-plans [post]
func (h *DietPlanHandler) CreatePlan(c *gin.Context) {
	var req CreateDietPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	trainerID, ok := trainerIDFromContext(c)
	if !ok {
		return
	}

	input, err := h.buildPlanInput(req.Name, req.PrivacyMode, req.WeeklyPlan)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if input.Copy, err = mapCopy(req.Copy); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if input.MemberIDs, err = mapObjectIDs(req.MemberIDs); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), trainerID, input)
	if err != nil {
		h.mapPlanError(c, err, "Failed to create diet plan.")
		return
	}
	c.JSON(http.StatusCreated, MapDietPlanToResponse(plan))
}

// GetPlans returns all plans for admins and the trainer's own plans otherwise.
func (h *DietPlanHandler) GetPlans(c *gin.Context) {
	role, _ := getUserRoleFromContext(c)

	var (
		plans []domain.DietPlan
		err   error
	)
	if role == domain.RoleAdmin {
		plans, err = h.planService.GetAllPlans(c.Request.Context())
	} else {
		trainerID, ok := trainerIDFromContext(c)
		if !ok {
			return
		}
		plans, err = h.planService.GetPlansByTrainer(c.Request.Context(), trainerID)
	}
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve diet plans.")
		return
	}
	c.JSON(http.StatusOK, MapDietPlansToResponse(plans))
}

func (h *DietPlanHandler) GetPlanByID(c *gin.Context) {
	planID, ok := planIDFromPath(c)
	if !ok {
		return
	}
	plan, err := h.planService.GetPlanByID(c.Request.Context(), planID)
	if err != nil {
		h.mapPlanError(c, err, "Failed to retrieve diet plan.")
		return
	}
	c.JSON(http.StatusOK, MapDietPlanToResponse(plan))
}

// UpdatePlan godoc
// @Summary Update a diet plan
// @Description Whole-document replace: the stored weekly plan is swapped for
// @Description the submitted one after the same filter-and-flatten transform
// @Description as creation. Assigned members are managed via the member routes.
// @Tags DietPlans
// @Security BearerAuth
// @Router /diet-plans/{id} [put]
func (h *DietPlanHandler) UpdatePlan(c *gin.Context) {
	var req UpdateDietPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	trainerID, ok := trainerIDFromContext(c)
	if !ok {
		return
	}
	planID, ok := planIDFromPath(c)
	if !ok {
		return
	}

	input, err := h.buildPlanInput(req.Name, req.PrivacyMode, req.WeeklyPlan)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := h.planService.UpdatePlan(c.Request.Context(), trainerID, planID, input)
	if err != nil {
		h.mapPlanError(c, err, "Failed to update diet plan.")
		return
	}
	c.JSON(http.StatusOK, MapDietPlanToResponse(plan))
}

func (h *DietPlanHandler) DeletePlan(c *gin.Context) {
	trainerID, ok := trainerIDFromContext(c)
	if !ok {
		return
	}
	planID, ok := planIDFromPath(c)
	if !ok {
		return
	}
	if err := h.planService.DeletePlan(c.Request.Context(), trainerID, planID); err != nil {
		h.mapPlanError(c, err, "Failed to delete diet plan.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Diet plan deleted"})
}

// AssignMember godoc
// @Summary Assign a member to a persisted plan
// @Description Assignment persists immediately. A member already on the plan
// @Description is rejected with 409 and the stored set is left unchanged.
// @Tags DietPlans
// @Security BearerAuth
// @Router /diet-plans/{id}/members [post]
func (h *DietPlanHandler) AssignMember(c *gin.Context) {
	var req AssignMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	trainerID, ok := trainerIDFromContext(c)
	if !ok {
		return
	}
	planID, ok := planIDFromPath(c)
	if !ok {
		return
	}
	memberID, err := primitive.ObjectIDFromHex(req.MemberID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid member ID format.")
		return
	}

	plan, err := h.planService.AssignMember(c.Request.Context(), trainerID, planID, memberID)
	if err != nil {
		h.mapPlanError(c, err, "Failed to assign member.")
		return
	}
	c.JSON(http.StatusOK, MapDietPlanToResponse(plan))
}

func (h *DietPlanHandler) UnassignMember(c *gin.Context) {
	trainerID, ok := trainerIDFromContext(c)
	if !ok {
		return
	}
	planID, ok := planIDFromPath(c)
	if !ok {
		return
	}
	memberID, err := primitive.ObjectIDFromHex(c.Param("memberId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid member ID format.")
		return
	}

	plan, err := h.planService.UnassignMember(c.Request.Context(), trainerID, planID, memberID)
	if err != nil {
		h.mapPlanError(c, err, "Failed to unassign member.")
		return
	}
	c.JSON(http.StatusOK, MapDietPlanToResponse(plan))
}

func (h *DietPlanHandler) buildPlanInput(name, privacyMode string, days []DayScheduleRequest) (service.PlanInput, error) {
	weekly, err := mapWeeklyPlan(days)
	if err != nil {
		return service.PlanInput{}, err
	}
	return service.PlanInput{
		Name:        name,
		PrivacyMode: domain.PrivacyMode(privacyMode),
		WeeklyPlan:  weekly,
	}, nil
}

// mapPlanError maps service errors to HTTP status codes.
func (h *DietPlanHandler) mapPlanError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrPlanEmpty),
		errors.Is(err, service.ErrPlanNameRequired),
		errors.Is(err, service.ErrInvalidPrivacyMode):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrMemberNotFound),
		errors.Is(err, service.ErrMemberNotAssigned):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPlanAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrMemberAlreadyAssigned):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
