package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"github.com/studyhall/seat-reservation-system/api"
	"github.com/studyhall/seat-reservation-system/internal/domain"
)

const maxWebhookBodyBytes = 65536

func (app *Application) StripeWebhookHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes))
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("failed to read webhook body"))
		return
	}

	event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), app.config.Stripe.WebhookSecret)
	if err != nil {
		logger.Warn("webhook signature verification failed", "error", err)
		app.badRequestResponse(w, r, fmt.Errorf("invalid webhook signature"))
		return
	}

	var checkoutSession stripe.CheckoutSession

	switch event.Type {
	case "checkout.session.completed":
		err = json.Unmarshal(event.Data.Raw, &checkoutSession)
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("malformed checkout session payload"))
			return
		}

		err = app.handleCheckoutCompleted(r.Context(), checkoutSession.ID, logger)
		if err != nil {
			// Respond with 5xx so the provider redelivers the event. For a
			// failed booking write the redelivery is what completes the
			// reconciliation.
			app.serverErrorResponse(w, r, err)
			return
		}

	case "checkout.session.expired":
		err = json.Unmarshal(event.Data.Raw, &checkoutSession)
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("malformed checkout session payload"))
			return
		}

		err = app.paymentRepo.UpdateStatus(
			r.Context(),
			checkoutSession.ID,
			domain.PaymentStatusCanceled,
			"checkout session expired before payment",
		)
		if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
			app.serverErrorResponse(w, r, err)
			return
		}

	default:
		logger.Info("ignoring unhandled webhook event", "event_type", event.Type)
	}

	w.WriteHeader(http.StatusOK)
}

// handleCheckoutCompleted records the booking for a captured payment. The two
// failure modes after capture diverge: a seat conflict means the money must go
// back (refund_required), while any other persistence failure means money was
// taken without a booking row (reconcile_required) and is reported upstream as
// ErrPersistAfterPayment.
func (app *Application) handleCheckoutCompleted(ctx context.Context, checkoutSessionID string, logger *slog.Logger) error {
	payment, err := app.paymentRepo.GetByCheckoutSessionId(ctx, checkoutSessionID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			logger.Error("completed checkout session has no payment record")
		}

		return err
	}

	switch payment.Status {
	case domain.PaymentStatusCompleted:
		// Duplicate delivery of an already processed event.
		logger.Info("checkout session already processed")
		return nil

	case domain.PaymentStatusRefundRequired, domain.PaymentStatusCanceled, domain.PaymentStatusFailed:
		// The payment already reached a terminal state. Retrying the booking
		// write here would overwrite that state, so acknowledge and stop.
		logger.Info("checkout session already resolved", "payment_status", payment.Status)
		return nil
	}

	booking := domain.Booking{
		UserID:     payment.UserID,
		SeatID:     payment.SeatID,
		Period:     payment.Period,
		AmountPaid: payment.Amount,
	}

	err = app.bookingRepo.CreateWithPayment(ctx, &booking, checkoutSessionID)

	switch {
	case errors.Is(err, domain.ErrBookingConflict):
		logger.Warn("seat was booked concurrently, payment flagged for refund",
			"payment_id", payment.ID,
			"seat_id", payment.SeatID,
		)

		updateErr := app.paymentRepo.UpdateStatus(
			ctx,
			checkoutSessionID,
			domain.PaymentStatusRefundRequired,
			"booking lost the persistence-time conflict check",
		)
		if updateErr != nil {
			return updateErr
		}

		// The event itself is handled; redelivery cannot win the seat back.
		return nil

	case err != nil:
		logger.Error("booking write failed after payment capture, manual reconciliation required",
			"payment_id", payment.ID,
			"seat_id", payment.SeatID,
			"error", err,
		)

		updateErr := app.paymentRepo.UpdateStatus(
			ctx,
			checkoutSessionID,
			domain.PaymentStatusReconcileRequired,
			err.Error(),
		)
		if updateErr != nil {
			logger.Error("failed to flag payment for reconciliation", "error", updateErr)
		}

		return domain.ErrPersistAfterPayment
	}

	logger.Info("booking confirmed", "booking_id", booking.ID, "seat_id", booking.SeatID)

	app.publishBookingEvent(ctx, api.BookingEvent{
		Type:      BookingEventCreated,
		BookingId: booking.ID,
		SeatId:    booking.SeatID,
		StartTime: booking.Period.Start,
		EndTime:   booking.Period.End,
	})

	app.sendBookingConfirmation(ctx, &booking, logger)

	return nil
}

func (app *Application) sendBookingConfirmation(ctx context.Context, booking *domain.Booking, logger *slog.Logger) {
	user, err := app.userRepo.GetById(ctx, booking.UserID)
	if err != nil {
		logger.Error("failed to load user for booking confirmation mail", "error", err)
		return
	}

	seat, err := app.seatRepo.GetById(ctx, booking.SeatID)
	if err != nil {
		logger.Error("failed to load seat for booking confirmation mail", "error", err)
		return
	}

	go func() {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic occurred during sending booking confirmation mail", "panic", err)
			}
		}()

		data := map[string]any{
			"firstName":  user.FirstName,
			"seatLabel":  seat.Label,
			"startTime":  booking.Period.Start,
			"endTime":    booking.Period.End,
			"amountPaid": booking.AmountPaid.String(),
		}

		err := app.mailer.Send(user.Email, "booking_confirmation.tmpl", data)
		if err != nil {
			logger.Error("failed to send booking confirmation email", "error", err)
		} else {
			logger.Info("booking confirmation email sent successfully")
		}
	}()
}
