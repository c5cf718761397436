package repository

import (
	"context"

	"gymdesk/gym-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with staff accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// MemberRepository defines the interface for interacting with the gym
// member directory.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Member, error)
	GetAll(ctx context.Context) ([]domain.Member, error)
	Search(ctx context.Context, keyword string) ([]domain.Member, error)
}

// DietPlanRepository defines the interface for interacting with diet
// plan documents. Updates go through Replace: the whole document is
// swapped, there is no per-field or per-meal patch path.
type DietPlanRepository interface {
	Create(ctx context.Context, plan *domain.DietPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.DietPlan, error)
	GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.DietPlan, error)
	GetAll(ctx context.Context) ([]domain.DietPlan, error)
	Replace(ctx context.Context, plan *domain.DietPlan) error
	Delete(ctx context.Context, id primitive.ObjectID, trainerID primitive.ObjectID) error
}
