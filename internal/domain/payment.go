package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCanceled  PaymentStatus = "canceled"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCompleted PaymentStatus = "completed"

	// PaymentStatusRefundRequired marks a captured payment whose booking lost
	// the persistence-time conflict check. Refunds are an out-of-band process.
	PaymentStatusRefundRequired PaymentStatus = "refund_required"

	// PaymentStatusReconcileRequired marks a captured payment whose booking
	// write failed. A financial discrepancy exists until it is reconciled.
	PaymentStatusReconcileRequired PaymentStatus = "reconcile_required"
)

type Payment struct {
	ID                int
	UserID            int
	CheckoutSessionId *string
	SeatID            int
	Period            TimeRange
	Amount            decimal.Decimal
	Currency          string
	Status            PaymentStatus
	ErrorMsg          *string
	PaymentDate       *time.Time
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	GetById(ctx context.Context, id int) (*Payment, error)
	GetByCheckoutSessionId(ctx context.Context, checkoutSessionID string) (*Payment, error)
	AttachCheckoutSession(ctx context.Context, paymentID int, checkoutSessionID string) error
	UpdateStatus(ctx context.Context, checkoutSessionID string, status PaymentStatus, errMsg string) error
}
