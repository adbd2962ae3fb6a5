package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v82"
	"github.com/studyhall/seat-reservation-system/internal/domain"
)

type MockPaymentProvider struct {
	mock.Mock
	domain.PaymentProvider
}

func (m *MockPaymentProvider) CreateCheckoutSession(
	user *domain.User,
	seat *domain.Seat,
	price domain.Price,
	payment *domain.Payment) (*stripe.CheckoutSession, error) {

	args := m.Called(user, seat, price, payment)

	checkoutSession, _ := args.Get(0).(*stripe.CheckoutSession)
	return checkoutSession, args.Error(1)
}
