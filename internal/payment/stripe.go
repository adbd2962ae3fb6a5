package payment

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/studyhall/seat-reservation-system/internal/domain"
)

type StripePaymentProvider struct {
	failureUrl string
	successUrl string
}

func NewStripePaymentProvider(failureUrl, successUrl string) *StripePaymentProvider {
	return &StripePaymentProvider{
		failureUrl: failureUrl,
		successUrl: successUrl,
	}
}

func (s *StripePaymentProvider) CreateCheckoutSession(
	user *domain.User,
	seat *domain.Seat,
	price domain.Price,
	payment *domain.Payment) (*stripe.CheckoutSession, error) {

	lineItem := &stripe.CheckoutSessionLineItemParams{
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(strings.ToLower(price.Currency)),
			UnitAmount: stripe.Int64(price.AmountMinorUnits()),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String(fmt.Sprintf("%s (%s zone)", seat.Label, seat.Zone)),
				Description: stripe.String(fmt.Sprintf(
					"%s to %s (%d hour(s))",
					payment.Period.Start.Format("Jan 2, 2006 15:04"),
					payment.Period.End.Format("Jan 2, 2006 15:04"),
					price.Hours,
				)),
			},
		},
		Quantity: stripe.Int64(1),
	}

	params := &stripe.CheckoutSessionParams{
		LineItems:  []*stripe.CheckoutSessionLineItemParams{lineItem},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.successUrl),
		CancelURL:  stripe.String(s.failureUrl),
		// Carried as opaque notes so the webhook and any manual reconciliation
		// can tie the charge back to the requested seat and window.
		Metadata: map[string]string{
			"payment_id": strconv.Itoa(payment.ID),
			"user_id":    strconv.Itoa(user.ID),
			"seat_id":    strconv.Itoa(seat.ID),
			"start_time": payment.Period.Start.Format("2006-01-02T15:04:05Z07:00"),
			"end_time":   payment.Period.End.Format("2006-01-02T15:04:05Z07:00"),
		},
		CustomerEmail:     &user.Email,
		ClientReferenceID: stripe.String(strconv.Itoa(user.ID)),
	}
	params.IdempotencyKey = stripe.String(uuid.New().String())

	return session.New(params)
}
