package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatusFilter string

const (
	BookingFilterAll      BookingStatusFilter = "all"
	BookingFilterUpcoming BookingStatusFilter = "upcoming"
	BookingFilterPast     BookingStatusFilter = "past"
)

// AdminBookingFilter narrows the admin booking list. Term matches against the
// member's name, email, or the seat label.
type AdminBookingFilter struct {
	Pagination
	Term   string
	Status BookingStatusFilter
}

type AdminBooking struct {
	BookingID  int
	UserName   string
	UserEmail  string
	SeatLabel  string
	StartTime  time.Time
	EndTime    time.Time
	AmountPaid decimal.Decimal
	IsActive   bool
	CreatedAt  time.Time
}

type SeatRevenue struct {
	SeatLabel string
	Bookings  int
	Revenue   decimal.Decimal
}

type RevenueSummary struct {
	TotalRevenue   decimal.Decimal
	TotalBookings  int
	ActiveBookings int
	PerSeat        []SeatRevenue
}
