package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gymdesk/gym-app/internal/domain"
	"gymdesk/gym-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrMemberNameRequired = errors.New("member name is required")
	ErrKeywordTooShort    = errors.New("search keyword must be at least 2 characters")
)

// Minimum keyword length before a search hits the directory. Shorter
// keywords would match nearly everything and are rejected up front.
const minSearchKeyword = 2

// --- Service Interface ---
type MemberService interface {
	CreateMember(ctx context.Context, name, email, phone string, joinedAt *time.Time) (*domain.Member, error)
	GetMembers(ctx context.Context) ([]domain.Member, error)
	SearchMembers(ctx context.Context, keyword string) ([]domain.Member, error)
}

// --- Service Implementation ---

type memberService struct {
	memberRepo repository.MemberRepository
}

// NewMemberService creates a new instance of memberService.
func NewMemberService(memberRepo repository.MemberRepository) MemberService {
	return &memberService{memberRepo: memberRepo}
}

// CreateMember adds a member to the directory.
func (s *memberService) CreateMember(ctx context.Context, name, email, phone string, joinedAt *time.Time) (*domain.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMemberNameRequired
	}

	member := &domain.Member{
		Name:  name,
		Email: strings.TrimSpace(email),
		Phone: strings.TrimSpace(phone),
	}
	if joinedAt != nil {
		member.JoinedAt = *joinedAt
	}

	memberID, err := s.memberRepo.Create(ctx, member)
	if err != nil {
		return nil, err
	}
	member.ID = memberID
	return member, nil
}

// GetMembers returns the whole directory.
func (s *memberService) GetMembers(ctx context.Context) ([]domain.Member, error) {
	return s.memberRepo.GetAll(ctx)
}

// SearchMembers looks up members for the assignment picker.
func (s *memberService) SearchMembers(ctx context.Context, keyword string) ([]domain.Member, error) {
	keyword = strings.TrimSpace(keyword)
	if len(keyword) < minSearchKeyword {
		return nil, ErrKeywordTooShort
	}
	return s.memberRepo.Search(ctx, keyword)
}
