package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Booking struct {
	ID         int
	UserID     int
	SeatID     int
	Period     TimeRange
	PaymentID  int
	AmountPaid decimal.Decimal
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Version    int
}

type BookingSummary struct {
	BookingID  int
	SeatLabel  string
	StartTime  time.Time
	EndTime    time.Time
	AmountPaid decimal.Decimal
	IsActive   bool
	CreatedAt  time.Time
}

// BookingPolicy holds the business constraints applied to every booking
// attempt. All values are injected configuration.
type BookingPolicy struct {
	MaxDuration       time.Duration
	MaxAdvance        time.Duration
	CancellationGrace time.Duration
}

// ValidateWindow checks a requested booking window against the policy,
// evaluated at the given instant.
func (p BookingPolicy) ValidateWindow(now time.Time, period TimeRange) error {
	if !period.Start.After(now) {
		return ErrPastStartTime
	}

	if period.Duration() > p.MaxDuration {
		return ErrExcessiveDuration
	}

	if p.MaxAdvance > 0 && period.Start.After(now.Add(p.MaxAdvance)) {
		return ErrTooFarInAdvance
	}

	return nil
}

// ValidateCancellation checks whether a booking starting at the given time can
// still be cancelled: cancellation closes CancellationGrace before the start.
func (p BookingPolicy) ValidateCancellation(now, start time.Time) error {
	if !now.Before(start.Add(-p.CancellationGrace)) {
		return ErrCancellationWindowExpired
	}

	return nil
}

// SeatAvailability is the outcome of checking one seat against a booking
// snapshot for a requested window.
type SeatAvailability struct {
	Available   bool
	OwnedByUser bool
}

// CheckSeatAvailability decides whether the seat is free for the requested
// window given a snapshot of active bookings, and whether the requesting user
// already holds an active booking on that seat. The snapshot may be stale, so
// the result is advisory: the authoritative overlap check happens again at the
// persistence boundary.
func CheckSeatAvailability(seatID int, period TimeRange, bookings []Booking, userID int) SeatAvailability {
	result := SeatAvailability{Available: true}

	for _, b := range bookings {
		if b.SeatID != seatID || !b.IsActive {
			continue
		}

		if b.UserID == userID {
			result.OwnedByUser = true
		}

		if b.Period.Overlaps(period) {
			result.Available = false
		}
	}

	return result
}

type BookingRepository interface {
	// CreateWithPayment atomically completes the payment identified by the
	// checkout session and inserts the booking row. A rejection of the insert
	// caused by an overlapping active booking is reported as ErrBookingConflict.
	CreateWithPayment(ctx context.Context, booking *Booking, checkoutSessionID string) error

	GetActiveBySeat(ctx context.Context, seatID int) ([]Booking, error)
	GetActiveOverlapping(ctx context.Context, period TimeRange) ([]Booking, error)
	GetByIdAndUserId(ctx context.Context, id, userID int) (*Booking, error)
	GetSummariesByUserId(ctx context.Context, userID int, pagination Pagination) ([]BookingSummary, *Metadata, error)

	// Cancel soft-cancels the booking, guarded by its version.
	Cancel(ctx context.Context, booking *Booking) error

	GetAdminList(ctx context.Context, filter AdminBookingFilter) ([]AdminBooking, *Metadata, error)
	GetRevenueSummary(ctx context.Context) (*RevenueSummary, error)
}
