package domain

import "github.com/stripe/stripe-go/v82"

type PaymentProvider interface {
	CreateCheckoutSession(user *User, seat *Seat, price Price, payment *Payment) (*stripe.CheckoutSession, error)
}
