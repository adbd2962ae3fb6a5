// Package api defines the request and response shapes of the HTTP surface.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,alpha,min=2,max=50"`
	LastName  string `json:"lastName" validate:"required,alpha,min=2,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,password"`
	Phone     string `json:"phone" validate:"omitempty,e164"`
}

type UserResponse struct {
	Id              int       `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email"`
	CreatedAt       time.Time `json:"createdAt"`
	ProfileComplete bool      `json:"profileComplete"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AlreadyLoggedInResponse struct {
	Message string `json:"message"`
}

type Seat struct {
	Id        int    `json:"id"`
	Row       int    `json:"row"`
	Column    int    `json:"column"`
	Label     string `json:"label"`
	Zone      string `json:"zone"`
	Available bool   `json:"available"`
	Mine      bool   `json:"mine"`
}

type SeatRow struct {
	Row   int    `json:"row"`
	Seats []Seat `json:"seats"`
}

type BookingWindow struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

type SeatMapResponse struct {
	Window   BookingWindow `json:"window"`
	SeatRows []SeatRow     `json:"seatRows"`
}

type CheckoutRequest struct {
	SeatId    int       `json:"seatId" validate:"required,gt=0"`
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required"`
}

type CheckoutSessionResponse struct {
	RedirectUrl string          `json:"redirectUrl"`
	PaymentId   int             `json:"paymentId"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Hours       int             `json:"hours"`
}

type PaymentStatusResponse struct {
	Id      int    `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type BookingSummary struct {
	Id         int             `json:"id"`
	SeatLabel  string          `json:"seatLabel"`
	StartTime  time.Time       `json:"startTime"`
	EndTime    time.Time       `json:"endTime"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
	IsActive   bool            `json:"isActive"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type UserBookingsResponse struct {
	Bookings []BookingSummary `json:"bookings"`
	Metadata Metadata         `json:"metadata"`
}

type AdminBooking struct {
	Id         int             `json:"id"`
	UserName   string          `json:"userName"`
	UserEmail  string          `json:"userEmail"`
	SeatLabel  string          `json:"seatLabel"`
	StartTime  time.Time       `json:"startTime"`
	EndTime    time.Time       `json:"endTime"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
	IsActive   bool            `json:"isActive"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type AdminBookingsResponse struct {
	Bookings []AdminBooking `json:"bookings"`
	Metadata Metadata       `json:"metadata"`
}

type SeatRevenue struct {
	SeatLabel string          `json:"seatLabel"`
	Bookings  int             `json:"bookings"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type RevenueResponse struct {
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	TotalBookings  int             `json:"totalBookings"`
	ActiveBookings int             `json:"activeBookings"`
	Seats          []SeatRevenue   `json:"seats"`
}

type BookingEvent struct {
	Type      string    `json:"type"`
	BookingId int       `json:"bookingId"`
	SeatId    int       `json:"seatId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}
