package mocks

import (
	"context"

	"github.com/studyhall/seat-reservation-system/internal/domain"
)

type MockSeatRepo struct {
	domain.SeatRepository
	GetAllFunc  func(ctx context.Context) ([]domain.Seat, error)
	GetByIdFunc func(ctx context.Context, id int) (*domain.Seat, error)
}

func (m *MockSeatRepo) GetAll(ctx context.Context) ([]domain.Seat, error) {
	return m.GetAllFunc(ctx)
}

func (m *MockSeatRepo) GetById(ctx context.Context, id int) (*domain.Seat, error) {
	return m.GetByIdFunc(ctx, id)
}
