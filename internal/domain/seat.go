package domain

import "context"

// Seat is a bookable desk in the reading hall, identified by its position on
// the grid. Seats are seeded out of band; availability is always derived from
// the bookings table, never stored on the seat itself.
type Seat struct {
	ID    int
	Row   int
	Col   int
	Label string
	Zone  string
}

type SeatRepository interface {
	GetAll(ctx context.Context) ([]Seat, error)
	GetById(ctx context.Context, id int) (*Seat, error)
}
