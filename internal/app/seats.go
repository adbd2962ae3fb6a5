package app

import (
	"net/http"
	"time"

	"github.com/studyhall/seat-reservation-system/api"
	"github.com/studyhall/seat-reservation-system/internal/domain"
)

const defaultSeatMapWindow = 2 * time.Hour

// GetSeatMap returns the seat grid with per-seat availability for a booking
// window. The window defaults to the next two hours when no range is given.
// The map is advisory: the authoritative conflict check runs when the booking
// is persisted.
func (app *Application) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	start, err := readQueryTime(r, "start", now)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	end, err := readQueryTime(r, "end", start.Add(defaultSeatMapWindow))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	period, err := domain.NewTimeRange(start, end)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	seats, err := app.seatRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if len(seats) == 0 {
		app.contextGetLogger(r).Warn("seat map requested but no seats are configured")
		app.notFoundResponse(w, r)
		return
	}

	bookings, err := app.bookingRepo.GetActiveOverlapping(r.Context(), period)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	// Zero when the caller is not logged in; no seat is "mine" then.
	userId := app.sessionManager.GetInt(r.Context(), SessionKeyUserId.String())

	resp := api.SeatMapResponse{
		Window: api.BookingWindow{
			StartTime: period.Start,
			EndTime:   period.End,
		},
		SeatRows: toSeatRows(seats, period, bookings, userId),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toSeatRows(seats []domain.Seat, period domain.TimeRange, bookings []domain.Booking, userId int) []api.SeatRow {
	// Seats are pre-sorted by Row,Col (ascending).
	// This allows us to process them in a single pass without additional sorting or mapping.

	var seatRows []api.SeatRow
	currentRow := api.SeatRow{Row: seats[0].Row}

	for _, v := range seats {
		if v.Row != currentRow.Row {
			seatRows = append(seatRows, currentRow)
			currentRow = api.SeatRow{Row: v.Row}
		}

		availability := domain.CheckSeatAvailability(v.ID, period, bookings, userId)

		currentRow.Seats = append(currentRow.Seats, api.Seat{
			Id:        v.ID,
			Row:       v.Row,
			Column:    v.Col,
			Label:     v.Label,
			Zone:      v.Zone,
			Available: availability.Available,
			Mine:      availability.OwnedByUser,
		})
	}

	seatRows = append(seatRows, currentRow)

	return seatRows
}
