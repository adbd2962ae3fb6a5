package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/studyhall/seat-reservation-system/api"
	"github.com/studyhall/seat-reservation-system/internal/domain"
	"github.com/studyhall/seat-reservation-system/internal/mailer"
	"github.com/studyhall/seat-reservation-system/internal/mocks"
	"github.com/studyhall/seat-reservation-system/internal/validator"
)

func newTestApplication(opts ...func(*Application)) *Application {
	app := &Application{
		validator: validator.NewValidator(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		userRepo:  &mocks.MockUserRepo{},
		mailer:    mailer.NewMockMailer(),
		policy: domain.BookingPolicy{
			MaxDuration:       8 * time.Hour,
			MaxAdvance:        7 * 24 * time.Hour,
			CancellationGrace: time.Hour,
		},
		pricer: domain.NewPricer(decimal.NewFromInt(60), "INR"),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

func setupTestSession(t *testing.T, app *Application, r *http.Request, userId int) *http.Request {
	ctx, err := app.sessionManager.Load(r.Context(), "session")
	if err != nil {
		t.Errorf("Failed to load session: %v", err)
	}

	app.sessionManager.Put(ctx, SessionKeyUserId.String(), userId)

	return r.WithContext(ctx)
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(method, url, bytes.NewReader(jsonData))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		// Rule violations that are not field-level also land on 422.
		if validationResp.Message != "" && validationResp.Message == tt.wantErrMessage {
			return
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
