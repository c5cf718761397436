package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"gymdesk/gym-app/internal/domain"
	"gymdesk/gym-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubMemberService struct {
	members     []domain.Member
	searched    string
	listedAll   bool
	createdName string
}

func (s *stubMemberService) CreateMember(_ context.Context, name, email, phone string, _ *time.Time) (*domain.Member, error) {
	if name == "" {
		return nil, service.ErrMemberNameRequired
	}
	s.createdName = name
	return &domain.Member{ID: primitive.NewObjectID(), Name: name, Email: email, Phone: phone}, nil
}

func (s *stubMemberService) GetMembers(context.Context) ([]domain.Member, error) {
	s.listedAll = true
	return s.members, nil
}

func (s *stubMemberService) SearchMembers(_ context.Context, keyword string) ([]domain.Member, error) {
	if len(keyword) < 2 {
		return nil, service.ErrKeywordTooShort
	}
	s.searched = keyword
	return s.members, nil
}

func newMemberRouter(svc service.MemberService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewMemberHandler(svc)
	group := router.Group("/api/v1", fakeAuth(primitive.NewObjectID(), domain.RoleTrainer))
	group.GET("/members", handler.GetMembers)
	group.POST("/members", handler.CreateMember)
	return router
}

func TestGetMembersHandler(t *testing.T) {
	t.Run("NoKeywordListsAll", func(t *testing.T) {
		svc := &stubMemberService{members: []domain.Member{{ID: primitive.NewObjectID(), Name: "Priya"}}}
		rec := doJSON(t, newMemberRouter(svc), http.MethodGet, "/api/v1/members", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if !svc.listedAll {
			t.Error("expected the full directory listing")
		}
		var resp struct {
			Members []MemberResponse `json:"members"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if len(resp.Members) != 1 || resp.Members[0].Name != "Priya" {
			t.Errorf("unexpected members payload: %+v", resp.Members)
		}
	})

	t.Run("KeywordSearches", func(t *testing.T) {
		svc := &stubMemberService{}
		rec := doJSON(t, newMemberRouter(svc), http.MethodGet, "/api/v1/members?keyword=pr", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if svc.searched != "pr" {
			t.Errorf("search keyword = %q, want pr", svc.searched)
		}
	})

	t.Run("ShortKeywordIs400", func(t *testing.T) {
		svc := &stubMemberService{}
		rec := doJSON(t, newMemberRouter(svc), http.MethodGet, "/api/v1/members?keyword=p", nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestCreateMemberHandler(t *testing.T) {
	svc := &stubMemberService{}
	rec := doJSON(t, newMemberRouter(svc), http.MethodPost, "/api/v1/members", CreateMemberRequest{Name: "Priya Shah"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}
	if svc.createdName != "Priya Shah" {
		t.Errorf("created name = %q", svc.createdName)
	}
}
