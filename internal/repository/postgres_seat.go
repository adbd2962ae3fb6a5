package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studyhall/seat-reservation-system/internal/domain"
)

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

func (p *PostgresSeatRepository) GetAll(ctx context.Context) ([]domain.Seat, error) {
	query := `
		SELECT id, seat_row, seat_col, label, zone
		FROM seats
		ORDER BY seat_row, seat_col
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat

		err = rows.Scan(&seat.ID, &seat.Row, &seat.Col, &seat.Label, &seat.Zone)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

func (p *PostgresSeatRepository) GetById(ctx context.Context, id int) (*domain.Seat, error) {
	query := `
		SELECT id, seat_row, seat_col, label, zone
		FROM seats
		WHERE id = $1
	`

	var seat domain.Seat

	err := p.db.QueryRow(ctx, query, id).Scan(&seat.ID, &seat.Row, &seat.Col, &seat.Label, &seat.Zone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &seat, nil
}
