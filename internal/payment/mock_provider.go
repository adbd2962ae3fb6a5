package payment

import (
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/studyhall/seat-reservation-system/internal/domain"
)

// MockPaymentProvider stands in for Stripe in tests. When CheckoutSession is
// not set it fabricates one whose ID is derived from the payment ID.
type MockPaymentProvider struct {
	CheckoutSession *stripe.CheckoutSession
	Err             error
}

func NewMockPaymentProvider() *MockPaymentProvider {
	return &MockPaymentProvider{}
}

func (m *MockPaymentProvider) CreateCheckoutSession(
	user *domain.User,
	seat *domain.Seat,
	price domain.Price,
	payment *domain.Payment) (*stripe.CheckoutSession, error) {

	if m.Err != nil {
		return nil, m.Err
	}

	if m.CheckoutSession != nil {
		return m.CheckoutSession, nil
	}

	return &stripe.CheckoutSession{
		ID:  fmt.Sprintf("cs_test_%d", payment.ID),
		URL: "https://checkout.stripe.example/pay",
	}, nil
}
