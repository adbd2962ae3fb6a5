package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studyhall/seat-reservation-system/internal/domain"
)

type PostgresPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPaymentRepository(db *pgxpool.Pool) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{
		db: db,
	}
}

func (p *PostgresPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (user_id, seat_id, start_time, end_time, amount, currency, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := p.db.QueryRow(
		ctx,
		query,
		payment.UserID,
		payment.SeatID,
		payment.Period.Start,
		payment.Period.End,
		payment.Amount,
		payment.Currency,
		payment.Status,
	).Scan(&payment.ID, &payment.CreatedAt)

	return err
}

func (p *PostgresPaymentRepository) GetById(ctx context.Context, id int) (*domain.Payment, error) {
	query := `
		SELECT id, user_id, checkout_session_id, seat_id, start_time, end_time,
			amount, currency, status, error_message, payment_date, created_at, updated_at
		FROM payments
		WHERE id = $1
	`

	return p.getOne(ctx, query, id)
}

func (p *PostgresPaymentRepository) GetByCheckoutSessionId(
	ctx context.Context,
	checkoutSessionID string) (*domain.Payment, error) {

	query := `
		SELECT id, user_id, checkout_session_id, seat_id, start_time, end_time,
			amount, currency, status, error_message, payment_date, created_at, updated_at
		FROM payments
		WHERE checkout_session_id = $1
	`

	return p.getOne(ctx, query, checkoutSessionID)
}

func (p *PostgresPaymentRepository) getOne(ctx context.Context, query string, arg any) (*domain.Payment, error) {
	var payment domain.Payment

	err := p.db.QueryRow(ctx, query, arg).Scan(
		&payment.ID,
		&payment.UserID,
		&payment.CheckoutSessionId,
		&payment.SeatID,
		&payment.Period.Start,
		&payment.Period.End,
		&payment.Amount,
		&payment.Currency,
		&payment.Status,
		&payment.ErrorMsg,
		&payment.PaymentDate,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &payment, nil
}

// AttachCheckoutSession stores the provider's checkout session id once the
// session has been created.
func (p *PostgresPaymentRepository) AttachCheckoutSession(
	ctx context.Context,
	paymentID int,
	checkoutSessionID string) error {

	query := `
		UPDATE payments
		SET checkout_session_id = $1, updated_at = NOW()
		WHERE id = $2
	`

	_, err := p.db.Exec(ctx, query, checkoutSessionID, paymentID)
	return err
}

func (p *PostgresPaymentRepository) UpdateStatus(
	ctx context.Context,
	checkoutSessionID string,
	status domain.PaymentStatus,
	errMsg string) error {

	query := `
		UPDATE payments
		SET status = $1, error_message = $2, updated_at = NOW()
		WHERE checkout_session_id = $3
	`

	_, err := p.db.Exec(ctx, query, status, errMsg, checkoutSessionID)
	return err
}
