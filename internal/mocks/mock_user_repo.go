package mocks

import (
	"context"

	"github.com/studyhall/seat-reservation-system/internal/domain"
)

type MockUserRepo struct {
	domain.UserRepository
	CreateWithProfileFunc func(ctx context.Context, user *domain.User, profile *domain.Profile) (bool, error)
	GetByEmailFunc        func(ctx context.Context, email string) (*domain.User, error)
	GetByIdFunc           func(ctx context.Context, id int) (*domain.User, error)
	GetProfileFunc        func(ctx context.Context, userID int) (*domain.Profile, error)
}

func (m *MockUserRepo) CreateWithProfile(ctx context.Context, user *domain.User, profile *domain.Profile) (bool, error) {
	return m.CreateWithProfileFunc(ctx, user, profile)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *MockUserRepo) GetById(ctx context.Context, id int) (*domain.User, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockUserRepo) GetProfile(ctx context.Context, userID int) (*domain.Profile, error) {
	return m.GetProfileFunc(ctx, userID)
}
