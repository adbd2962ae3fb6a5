package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studyhall/seat-reservation-system/internal/domain"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

// CreateWithPayment completes the pending payment and inserts the booking in
// one transaction. The bookings table carries an exclusion constraint on
// (seat_id, active window), so an overlapping insert that slipped past the
// advisory availability check is rejected here and rolls the payment update
// back with it.
func (p *PostgresBookingRepository) CreateWithPayment(
	ctx context.Context,
	booking *domain.Booking,
	checkoutSessionID string) error {

	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		// 'reconcile_required' is retryable: a webhook redelivery after a
		// failed booking write completes the reconciliation.
		query := `
			UPDATE payments
			SET status = 'completed', payment_date = NOW(), updated_at = NOW()
			WHERE checkout_session_id = $1 AND status IN ('pending', 'reconcile_required')
			RETURNING id
		`

		err := tx.QueryRow(ctx, query, checkoutSessionID).Scan(&booking.PaymentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		query = `
			INSERT INTO bookings (user_id, seat_id, start_time, end_time, payment_id, amount_paid)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, is_active, created_at, updated_at, version
		`

		err = tx.QueryRow(
			ctx,
			query,
			booking.UserID,
			booking.SeatID,
			booking.Period.Start,
			booking.Period.End,
			booking.PaymentID,
			booking.AmountPaid,
		).Scan(
			&booking.ID,
			&booking.IsActive,
			&booking.CreatedAt,
			&booking.UpdatedAt,
			&booking.Version,
		)

		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
				return domain.ErrBookingConflict
			}

			return err
		}

		return nil
	})
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}

func (p *PostgresBookingRepository) GetActiveBySeat(ctx context.Context, seatID int) ([]domain.Booking, error) {
	query := `
		SELECT id, user_id, seat_id, start_time, end_time, payment_id, amount_paid,
			is_active, created_at, updated_at, version
		FROM bookings
		WHERE seat_id = $1 AND is_active AND end_time > NOW()
		ORDER BY start_time
	`

	rows, err := p.db.Query(ctx, query, seatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (p *PostgresBookingRepository) GetActiveOverlapping(
	ctx context.Context,
	period domain.TimeRange) ([]domain.Booking, error) {

	query := `
		SELECT id, user_id, seat_id, start_time, end_time, payment_id, amount_paid,
			is_active, created_at, updated_at, version
		FROM bookings
		WHERE is_active AND start_time < $2 AND end_time > $1
		ORDER BY seat_id, start_time
	`

	rows, err := p.db.Query(ctx, query, period.Start, period.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

func scanBookings(rows pgx.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking

		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.SeatID,
			&booking.Period.Start,
			&booking.Period.End,
			&booking.PaymentID,
			&booking.AmountPaid,
			&booking.IsActive,
			&booking.CreatedAt,
			&booking.UpdatedAt,
			&booking.Version,
		)
		if err != nil {
			return nil, err
		}

		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (p *PostgresBookingRepository) GetByIdAndUserId(ctx context.Context, id, userID int) (*domain.Booking, error) {
	query := `
		SELECT id, user_id, seat_id, start_time, end_time, payment_id, amount_paid,
			is_active, created_at, updated_at, version
		FROM bookings
		WHERE id = $1 AND user_id = $2
	`

	var booking domain.Booking

	err := p.db.QueryRow(ctx, query, id, userID).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.SeatID,
		&booking.Period.Start,
		&booking.Period.End,
		&booking.PaymentID,
		&booking.AmountPaid,
		&booking.IsActive,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&booking.Version,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &booking, nil
}

func (p *PostgresBookingRepository) GetSummariesByUserId(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.BookingSummary, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			b.id,
			s.label,
			b.start_time,
			b.end_time,
			b.amount_paid,
			b.is_active,
			b.created_at
		FROM bookings b
		JOIN seats s ON b.seat_id = s.id
		WHERE b.user_id = $1
		ORDER BY b.start_time DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, userID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	summaries := make([]domain.BookingSummary, 0)
	totalRecords := 0

	for rows.Next() {
		var summary domain.BookingSummary

		err := rows.Scan(
			&totalRecords,
			&summary.BookingID,
			&summary.SeatLabel,
			&summary.StartTime,
			&summary.EndTime,
			&summary.AmountPaid,
			&summary.IsActive,
			&summary.CreatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return summaries, metadata, nil
}

// Cancel soft-cancels the booking. The version guard turns a concurrent
// cancel into ErrEditConflict instead of a silent last-write-wins.
func (p *PostgresBookingRepository) Cancel(ctx context.Context, booking *domain.Booking) error {
	query := `
		UPDATE bookings
		SET is_active = FALSE, updated_at = NOW(), version = version + 1
		WHERE id = $1 AND user_id = $2 AND is_active AND version = $3
		RETURNING version
	`

	err := p.db.QueryRow(ctx, query, booking.ID, booking.UserID, booking.Version).Scan(&booking.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrEditConflict
		}

		return err
	}

	booking.IsActive = false

	return nil
}

func (p *PostgresBookingRepository) GetAdminList(
	ctx context.Context,
	filter domain.AdminBookingFilter) ([]domain.AdminBooking, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			b.id,
			u.first_name || ' ' || u.last_name,
			u.email,
			s.label,
			b.start_time,
			b.end_time,
			b.amount_paid,
			b.is_active,
			b.created_at
		FROM bookings b
		JOIN users u ON b.user_id = u.id
		JOIN seats s ON b.seat_id = s.id
		WHERE ($1 = '' OR u.first_name || ' ' || u.last_name ILIKE '%' || $1 || '%'
			OR u.email ILIKE '%' || $1 || '%'
			OR s.label ILIKE '%' || $1 || '%')
		AND ($2 = 'all'
			OR ($2 = 'upcoming' AND b.start_time > NOW())
			OR ($2 = 'past' AND b.start_time <= NOW()))
		ORDER BY b.start_time DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := p.db.Query(
		ctx,
		query,
		filter.Term,
		string(filter.Status),
		filter.Limit(),
		filter.Offset(),
	)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	bookings := make([]domain.AdminBooking, 0)
	totalRecords := 0

	for rows.Next() {
		var booking domain.AdminBooking

		err := rows.Scan(
			&totalRecords,
			&booking.BookingID,
			&booking.UserName,
			&booking.UserEmail,
			&booking.SeatLabel,
			&booking.StartTime,
			&booking.EndTime,
			&booking.AmountPaid,
			&booking.IsActive,
			&booking.CreatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filter.Page, filter.PageSize)

	return bookings, metadata, nil
}

func (p *PostgresBookingRepository) GetRevenueSummary(ctx context.Context) (*domain.RevenueSummary, error) {
	var summary domain.RevenueSummary

	query := `
		SELECT
			COALESCE(SUM(amount_paid), 0),
			COUNT(*),
			COUNT(*) FILTER (WHERE is_active)
		FROM bookings
	`

	err := p.db.QueryRow(ctx, query).Scan(
		&summary.TotalRevenue,
		&summary.TotalBookings,
		&summary.ActiveBookings,
	)
	if err != nil {
		return nil, err
	}

	query = `
		SELECT s.label, COUNT(b.id), COALESCE(SUM(b.amount_paid), 0)
		FROM seats s
		LEFT JOIN bookings b ON b.seat_id = s.id
		GROUP BY s.id, s.label
		ORDER BY s.id
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary.PerSeat = make([]domain.SeatRevenue, 0)

	for rows.Next() {
		var seatRevenue domain.SeatRevenue

		err := rows.Scan(&seatRevenue.SeatLabel, &seatRevenue.Bookings, &seatRevenue.Revenue)
		if err != nil {
			return nil, err
		}

		summary.PerSeat = append(summary.PerSeat, seatRevenue)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &summary, nil
}
