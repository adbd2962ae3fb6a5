package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/studyhall/seat-reservation-system/api"
	"github.com/studyhall/seat-reservation-system/internal/domain"
)

func (app *Application) CreateCheckoutSessionHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CheckoutRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	period, err := domain.NewTimeRange(input.StartTime, input.EndTime)
	if err != nil {
		app.bookingRuleViolationResponse(w, r, err)
		return
	}

	err = app.policy.ValidateWindow(time.Now(), period)
	if err != nil {
		app.bookingRuleViolationResponse(w, r, err)
		return
	}

	seat, err := app.seatRepo.GetById(r.Context(), input.SeatId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, fmt.Errorf("checkout for unknown seat %d: %w", input.SeatId, err))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	userId := app.contextGetUserId(r)

	// Advisory availability check. The GiST exclusion constraint re-checks this
	// atomically when the booking is persisted after payment.
	seatBookings, err := app.bookingRepo.GetActiveBySeat(r.Context(), seat.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	availability := domain.CheckSeatAvailability(seat.ID, period, seatBookings, userId)
	if !availability.Available {
		logger.Warn("checkout attempt for unavailable seat", "seat_id", seat.ID)
		app.bookingRuleViolationResponse(w, r, domain.ErrSeatUnavailable)
		return
	}

	user, err := app.userRepo.GetById(r.Context(), userId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	price := app.pricer.Quote(period)

	payment := domain.Payment{
		UserID:   userId,
		SeatID:   seat.ID,
		Period:   period,
		Amount:   price.Amount,
		Currency: price.Currency,
		Status:   domain.PaymentStatusPending,
	}

	err = app.paymentRepo.Create(r.Context(), &payment)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	checkoutSession, err := app.paymentProvider.CreateCheckoutSession(user, seat, price, &payment)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.paymentRepo.AttachCheckoutSession(r.Context(), payment.ID, checkoutSession.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.CheckoutSessionResponse{
		RedirectUrl: checkoutSession.URL,
		PaymentId:   payment.ID,
		Amount:      price.Amount,
		Currency:    price.Currency,
		Hours:       price.Hours,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// bookingRuleViolationResponse maps booking rule errors onto HTTP statuses.
// Seat contention is a conflict; everything else is a rejected request.
func (app *Application) bookingRuleViolationResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrSeatUnavailable), errors.Is(err, domain.ErrBookingConflict):
		app.errorResponse(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrPastStartTime),
		errors.Is(err, domain.ErrExcessiveDuration),
		errors.Is(err, domain.ErrTooFarInAdvance):
		app.errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetUserBookingsHandler(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	pagination, err := readQueryPagination(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	summaries, metadata, err := app.bookingRepo.GetSummariesByUserId(r.Context(), userId, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	bookings := make([]api.BookingSummary, len(summaries))
	for i, v := range summaries {
		bookings[i] = api.BookingSummary{
			Id:         v.BookingID,
			SeatLabel:  v.SeatLabel,
			StartTime:  v.StartTime,
			EndTime:    v.EndTime,
			AmountPaid: v.AmountPaid,
			IsActive:   v.IsActive,
			CreatedAt:  v.CreatedAt,
		}
	}

	resp := api.UserBookingsResponse{
		Bookings: bookings,
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelBookingHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	bookingId, err := app.readIntParam(r, "bookingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	booking, err := app.bookingRepo.GetByIdAndUserId(r.Context(), bookingId, userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, fmt.Errorf("cancellation for booking %d not owned or not present: %w", bookingId, err))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if !booking.IsActive {
		app.editConflictResponse(w, r)
		return
	}

	err = app.policy.ValidateCancellation(time.Now(), booking.Period.Start)
	if err != nil {
		logger.Warn("cancellation rejected by grace period", "booking_id", booking.ID)
		app.errorResponse(w, r, http.StatusConflict, err.Error())
		return
	}

	err = app.bookingRepo.Cancel(r.Context(), booking)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEditConflict):
			app.editConflictResponseWithErr(w, r, fmt.Errorf("cancellation of booking %d: %w", booking.ID, err))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.publishBookingEvent(r.Context(), api.BookingEvent{
		Type:      BookingEventCancelled,
		BookingId: booking.ID,
		SeatId:    booking.SeatID,
		StartTime: booking.Period.Start,
		EndTime:   booking.Period.End,
	})

	w.WriteHeader(http.StatusNoContent)
}

// GetPaymentStatusHandler lets the client poll the outcome of a checkout after
// returning from the payment page. Degraded states (refund or reconciliation
// pending) are reported with an actionable message instead of a generic error.
func (app *Application) GetPaymentStatusHandler(w http.ResponseWriter, r *http.Request) {
	paymentId, err := app.readIntParam(r, "paymentId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	payment, err := app.paymentRepo.GetById(r.Context(), paymentId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, fmt.Errorf("status poll for unknown payment %d: %w", paymentId, err))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if payment.UserID != app.contextGetUserId(r) {
		app.notFoundResponse(w, r)
		return
	}

	resp := api.PaymentStatusResponse{
		Id:      payment.ID,
		Status:  string(payment.Status),
		Message: paymentStatusMessage(payment.Status),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func paymentStatusMessage(status domain.PaymentStatus) string {
	switch status {
	case domain.PaymentStatusPending:
		return "Your payment has not been completed yet"
	case domain.PaymentStatusCompleted:
		return "Your booking is confirmed"
	case domain.PaymentStatusCanceled:
		return "The checkout was canceled, you have not been charged"
	case domain.PaymentStatusFailed:
		return "The payment failed, you have not been charged"
	case domain.PaymentStatusRefundRequired:
		return "The seat was taken while your payment completed, your payment will be refunded"
	case domain.PaymentStatusReconcileRequired:
		return "Your payment completed but the booking could not be recorded, support has been notified"
	default:
		return ""
	}
}

func toApiMetadata(metadata *domain.Metadata) api.Metadata {
	if metadata == nil {
		return api.Metadata{}
	}

	return api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
