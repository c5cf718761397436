package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"gymdesk/gym-app/internal/domain"
	"gymdesk/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	memberService service.MemberService
}

func NewMemberHandler(memberService service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// --- DTOs ---

type CreateMemberRequest struct {
	Name     string     `json:"name" binding:"required"`
	Email    string     `json:"email" binding:"omitempty,email"`
	Phone    string     `json:"phone"`
	JoinedAt *time.Time `json:"joinedAt"`
}

type MemberResponse struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email,omitempty"`
	Phone    string    `json:"phone,omitempty"`
	JoinedAt time.Time `json:"joinedAt"`
}

func MapMemberToResponse(member *domain.Member) MemberResponse {
	if member == nil {
		return MemberResponse{}
	}
	return MemberResponse{
		ID:       member.ID.Hex(),
		Name:     member.Name,
		Email:    member.Email,
		Phone:    member.Phone,
		JoinedAt: member.JoinedAt,
	}
}

func MapMembersToResponse(members []domain.Member) []MemberResponse {
	out := make([]MemberResponse, len(members))
	for i := range members {
		out[i] = MapMemberToResponse(&members[i])
	}
	return out
}

// --- Handler Methods ---

func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	member, err := h.memberService.CreateMember(c.Request.Context(), req.Name, req.Email, req.Phone, req.JoinedAt)
	if err != nil {
		if errors.Is(err, service.ErrMemberNameRequired) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create member.")
		}
		return
	}
	c.JSON(http.StatusCreated, MapMemberToResponse(member))
}

// GetMembers godoc
// @Summary List or search gym members
// @Description Without a keyword the whole directory is returned. With a
// @Description keyword (min 2 characters) it searches name, email and phone
// @Description for the plan assignment picker.
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param keyword query string false "Search keyword"
// @Success 200 {object} gin.H "{\"members\": [...]}"
// @Failure 400 {object} gin.H "Keyword too short"
// @Router /members [get]
func (h *MemberHandler) GetMembers(c *gin.Context) {
	keyword := c.Query("keyword")

	var (
		members []domain.Member
		err     error
	)
	if keyword == "" {
		members, err = h.memberService.GetMembers(c.Request.Context())
	} else {
		members, err = h.memberService.SearchMembers(c.Request.Context(), keyword)
	}
	if err != nil {
		if errors.Is(err, service.ErrKeywordTooShort) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve members.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": MapMembersToResponse(members)})
}
