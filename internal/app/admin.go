package app

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/studyhall/seat-reservation-system/api"
	"github.com/studyhall/seat-reservation-system/internal/domain"
)

// exportPageSize caps CSV exports. Reading halls have tens of seats, so even a
// year of bookings fits comfortably under this.
const exportPageSize = 10_000

func (app *Application) AdminListBookingsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := readAdminBookingFilter(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	bookings, metadata, err := app.bookingRepo.GetAdminList(r.Context(), filter)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.AdminBookingsResponse{
		Bookings: toAdminBookings(bookings),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) AdminExportBookingsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := readAdminBookingFilter(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	filter.Pagination = domain.Pagination{Page: 1, PageSize: exportPageSize}

	bookings, _, err := app.bookingRepo.GetAdminList(r.Context(), filter)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	filename := fmt.Sprintf("bookings-%s.csv", time.Now().Format("2006-01-02"))

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	writer := csv.NewWriter(w)

	record := []string{"User Name", "Email", "Seat", "Start Time", "End Time", "Amount Paid", "Status"}
	if err := writer.Write(record); err != nil {
		app.logError(r, err)
		return
	}

	for _, b := range bookings {
		status := "cancelled"
		if b.IsActive {
			status = "active"
		}

		record = []string{
			b.UserName,
			b.UserEmail,
			b.SeatLabel,
			b.StartTime.Format(time.RFC3339),
			b.EndTime.Format(time.RFC3339),
			b.AmountPaid.String(),
			status,
		}

		if err := writer.Write(record); err != nil {
			app.logError(r, err)
			return
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		app.logError(r, err)
	}
}

func (app *Application) AdminRevenueHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := app.bookingRepo.GetRevenueSummary(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	seats := make([]api.SeatRevenue, len(summary.PerSeat))
	for i, v := range summary.PerSeat {
		seats[i] = api.SeatRevenue{
			SeatLabel: v.SeatLabel,
			Bookings:  v.Bookings,
			Revenue:   v.Revenue,
		}
	}

	resp := api.RevenueResponse{
		TotalRevenue:   summary.TotalRevenue,
		TotalBookings:  summary.TotalBookings,
		ActiveBookings: summary.ActiveBookings,
		Seats:          seats,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func readAdminBookingFilter(r *http.Request) (domain.AdminBookingFilter, error) {
	pagination, err := readQueryPagination(r)
	if err != nil {
		return domain.AdminBookingFilter{}, err
	}

	filter := domain.AdminBookingFilter{
		Pagination: pagination,
		Term:       r.URL.Query().Get("term"),
		Status:     domain.BookingFilterAll,
	}

	if status := r.URL.Query().Get("status"); status != "" {
		switch domain.BookingStatusFilter(status) {
		case domain.BookingFilterAll, domain.BookingFilterUpcoming, domain.BookingFilterPast:
			filter.Status = domain.BookingStatusFilter(status)
		default:
			return filter, fmt.Errorf("status must be one of: all, upcoming, past")
		}
	}

	return filter, nil
}

func toAdminBookings(bookings []domain.AdminBooking) []api.AdminBooking {
	adminBookings := make([]api.AdminBooking, len(bookings))

	for i, v := range bookings {
		adminBookings[i] = api.AdminBooking{
			Id:         v.BookingID,
			UserName:   v.UserName,
			UserEmail:  v.UserEmail,
			SeatLabel:  v.SeatLabel,
			StartTime:  v.StartTime,
			EndTime:    v.EndTime,
			AmountPaid: v.AmountPaid,
			IsActive:   v.IsActive,
			CreatedAt:  v.CreatedAt,
		}
	}

	return adminBookings
}
