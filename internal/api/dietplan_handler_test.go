package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gymdesk/gym-app/internal/domain"
	"gymdesk/gym-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubPlanService lets each test pin the service outcome.
type stubPlanService struct {
	plan      *domain.DietPlan
	err       error
	gotInput  service.PlanInput
	wasCalled bool
}

func (s *stubPlanService) CreatePlan(_ context.Context, _ primitive.ObjectID, input service.PlanInput) (*domain.DietPlan, error) {
	s.wasCalled = true
	s.gotInput = input
	return s.plan, s.err
}

func (s *stubPlanService) UpdatePlan(_ context.Context, _, _ primitive.ObjectID, input service.PlanInput) (*domain.DietPlan, error) {
	s.wasCalled = true
	s.gotInput = input
	return s.plan, s.err
}

func (s *stubPlanService) DeletePlan(context.Context, primitive.ObjectID, primitive.ObjectID) error {
	s.wasCalled = true
	return s.err
}

func (s *stubPlanService) GetPlanByID(context.Context, primitive.ObjectID) (*domain.DietPlan, error) {
	return s.plan, s.err
}

func (s *stubPlanService) GetPlansByTrainer(context.Context, primitive.ObjectID) ([]domain.DietPlan, error) {
	if s.plan == nil {
		return []domain.DietPlan{}, s.err
	}
	return []domain.DietPlan{*s.plan}, s.err
}

func (s *stubPlanService) GetAllPlans(ctx context.Context) ([]domain.DietPlan, error) {
	return s.GetPlansByTrainer(ctx, primitive.NilObjectID)
}

func (s *stubPlanService) AssignMember(context.Context, primitive.ObjectID, primitive.ObjectID, primitive.ObjectID) (*domain.DietPlan, error) {
	s.wasCalled = true
	return s.plan, s.err
}

func (s *stubPlanService) UnassignMember(context.Context, primitive.ObjectID, primitive.ObjectID, primitive.ObjectID) (*domain.DietPlan, error) {
	s.wasCalled = true
	return s.plan, s.err
}

// identity middleware stand-in so handler tests skip real JWT parsing.
func fakeAuth(userID primitive.ObjectID, role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserIDKey, userID.Hex())
		c.Set(ContextUserRoleKey, role)
		c.Next()
	}
}

func newPlanRouter(svc service.DietPlanService, role domain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewDietPlanHandler(svc)
	group := router.Group("/api/v1", fakeAuth(primitive.NewObjectID(), role))
	group.POST("/diet-plans", handler.CreatePlan)
	group.GET("/diet-plans", handler.GetPlans)
	group.POST("/diet-plans/:id/members", handler.AssignMember)
	group.DELETE("/diet-plans/:id", handler.DeletePlan)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreatePlanHandler(t *testing.T) {
	validBody := CreateDietPlanRequest{
		Name:        "Cutting Phase",
		PrivacyMode: "Private",
		WeeklyPlan: []DayScheduleRequest{
			{Day: "Monday", Meals: []MealCardRequest{{
				MealType: "Breakfast", ItemName: "Oats", Quantity: "1", Unit: "Bowl", Timing: "08:00",
			}}},
		},
		Copy: &CopyRequest{Source: "Monday", Targets: []string{"Tuesday", "Wednesday"}},
	}

	t.Run("Created", func(t *testing.T) {
		svc := &stubPlanService{plan: &domain.DietPlan{
			ID:          primitive.NewObjectID(),
			Name:        "Cutting Phase",
			PrivacyMode: domain.PrivacyPrivate,
		}}
		rec := doJSON(t, newPlanRouter(svc, domain.RoleTrainer), http.MethodPost, "/api/v1/diet-plans", validBody)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
		}
		if svc.gotInput.Copy == nil || svc.gotInput.Copy.Source != domain.Monday {
			t.Errorf("copy selection not forwarded: %+v", svc.gotInput.Copy)
		}
		if len(svc.gotInput.WeeklyPlan) != 1 || svc.gotInput.WeeklyPlan[0].Meals[0].ID == "" {
			t.Errorf("meal cards should get generated ids: %+v", svc.gotInput.WeeklyPlan)
		}
	})

	t.Run("EmptyPlanIs400", func(t *testing.T) {
		svc := &stubPlanService{err: service.ErrPlanEmpty}
		rec := doJSON(t, newPlanRouter(svc, domain.RoleTrainer), http.MethodPost, "/api/v1/diet-plans", validBody)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if resp["error"] != "add at least one meal" {
			t.Errorf("error message = %q", resp["error"])
		}
	})

	t.Run("UnknownDayIs400", func(t *testing.T) {
		svc := &stubPlanService{}
		body := validBody
		body.WeeklyPlan = []DayScheduleRequest{{Day: "Funday"}}
		body.Copy = nil
		rec := doJSON(t, newPlanRouter(svc, domain.RoleTrainer), http.MethodPost, "/api/v1/diet-plans", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if svc.wasCalled {
			t.Error("service was called despite invalid day name")
		}
	})

	t.Run("InvalidPrivacyModeFailsBinding", func(t *testing.T) {
		svc := &stubPlanService{}
		body := validBody
		body.PrivacyMode = "Secret"
		rec := doJSON(t, newPlanRouter(svc, domain.RoleTrainer), http.MethodPost, "/api/v1/diet-plans", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestAssignMemberHandler(t *testing.T) {
	planID := primitive.NewObjectID()
	path := "/api/v1/diet-plans/" + planID.Hex() + "/members"
	body := AssignMemberRequest{MemberID: primitive.NewObjectID().Hex()}

	t.Run("DuplicateIs409", func(t *testing.T) {
		svc := &stubPlanService{err: service.ErrMemberAlreadyAssigned}
		rec := doJSON(t, newPlanRouter(svc, domain.RoleTrainer), http.MethodPost, path, body)
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", rec.Code)
		}
	})

	t.Run("UnknownMemberIs404", func(t *testing.T) {
		svc := &stubPlanService{err: service.ErrMemberNotFound}
		rec := doJSON(t, newPlanRouter(svc, domain.RoleTrainer), http.MethodPost, path, body)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("ForeignPlanIs403", func(t *testing.T) {
		svc := &stubPlanService{err: service.ErrPlanAccessDenied}
		rec := doJSON(t, newPlanRouter(svc, domain.RoleTrainer), http.MethodPost, path, body)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("BadMemberIDIs400", func(t *testing.T) {
		svc := &stubPlanService{}
		rec := doJSON(t, newPlanRouter(svc, domain.RoleTrainer), http.MethodPost, path, AssignMemberRequest{MemberID: "nope"})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if svc.wasCalled {
			t.Error("service was called with a malformed member id")
		}
	})
}

func TestDeletePlanHandler(t *testing.T) {
	planID := primitive.NewObjectID()

	t.Run("MissingPlanIs404", func(t *testing.T) {
		svc := &stubPlanService{err: service.ErrPlanNotFound}
		rec := doJSON(t, newPlanRouter(svc, domain.RoleTrainer), http.MethodDelete, "/api/v1/diet-plans/"+planID.Hex(), nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("Deleted", func(t *testing.T) {
		svc := &stubPlanService{}
		rec := doJSON(t, newPlanRouter(svc, domain.RoleTrainer), http.MethodDelete, "/api/v1/diet-plans/"+planID.Hex(), nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	})
}
