package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/studyhall/seat-reservation-system/api"
)

const (
	bookingEventsChannel = "booking_events"

	BookingEventCreated   = "booking.created"
	BookingEventCancelled = "booking.cancelled"
)

// publishBookingEvent fans a seat state change out to connected clients via
// Redis pub/sub. Delivery is best effort; the seat map endpoint remains the
// source of truth.
func (app *Application) publishBookingEvent(ctx context.Context, event api.BookingEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		app.logger.Error("failed to marshal booking event", "error", err)
		return
	}

	err = app.redis.Publish(ctx, bookingEventsChannel, payload).Err()
	if err != nil {
		app.logger.Error("failed to publish booking event", "error", err, "event_type", event.Type)
	}
}

// BookingEventsHandler streams booking events to the client over SSE so seat
// maps can refresh without polling.
func (app *Application) BookingEventsHandler(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		app.serverErrorResponse(w, r, fmt.Errorf("streaming unsupported by the underlying writer"))
		return
	}

	pubsub := app.redis.Subscribe(r.Context(), bookingEventsChannel)
	defer pubsub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := pubsub.Channel()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			fmt.Fprintf(w, "data: %s\n\n", msg.Payload)
			flusher.Flush()
		}
	}
}
