package mocks

import (
	"context"

	"github.com/studyhall/seat-reservation-system/internal/domain"
)

type MockBookingRepo struct {
	domain.BookingRepository
	CreateWithPaymentFunc    func(ctx context.Context, booking *domain.Booking, checkoutSessionID string) error
	GetActiveBySeatFunc      func(ctx context.Context, seatID int) ([]domain.Booking, error)
	GetActiveOverlappingFunc func(ctx context.Context, period domain.TimeRange) ([]domain.Booking, error)
	GetByIdAndUserIdFunc     func(ctx context.Context, id, userID int) (*domain.Booking, error)
	GetSummariesByUserIdFunc func(ctx context.Context, userID int, pagination domain.Pagination) ([]domain.BookingSummary, *domain.Metadata, error)
	CancelFunc               func(ctx context.Context, booking *domain.Booking) error
	GetAdminListFunc         func(ctx context.Context, filter domain.AdminBookingFilter) ([]domain.AdminBooking, *domain.Metadata, error)
	GetRevenueSummaryFunc    func(ctx context.Context) (*domain.RevenueSummary, error)
}

func (m *MockBookingRepo) CreateWithPayment(ctx context.Context, booking *domain.Booking, checkoutSessionID string) error {
	return m.CreateWithPaymentFunc(ctx, booking, checkoutSessionID)
}

func (m *MockBookingRepo) GetActiveBySeat(ctx context.Context, seatID int) ([]domain.Booking, error) {
	return m.GetActiveBySeatFunc(ctx, seatID)
}

func (m *MockBookingRepo) GetActiveOverlapping(ctx context.Context, period domain.TimeRange) ([]domain.Booking, error) {
	return m.GetActiveOverlappingFunc(ctx, period)
}

func (m *MockBookingRepo) GetByIdAndUserId(ctx context.Context, id, userID int) (*domain.Booking, error) {
	return m.GetByIdAndUserIdFunc(ctx, id, userID)
}

func (m *MockBookingRepo) GetSummariesByUserId(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.BookingSummary, *domain.Metadata, error) {

	return m.GetSummariesByUserIdFunc(ctx, userID, pagination)
}

func (m *MockBookingRepo) Cancel(ctx context.Context, booking *domain.Booking) error {
	return m.CancelFunc(ctx, booking)
}

func (m *MockBookingRepo) GetAdminList(
	ctx context.Context,
	filter domain.AdminBookingFilter) ([]domain.AdminBooking, *domain.Metadata, error) {

	return m.GetAdminListFunc(ctx, filter)
}

func (m *MockBookingRepo) GetRevenueSummary(ctx context.Context) (*domain.RevenueSummary, error) {
	return m.GetRevenueSummaryFunc(ctx)
}
