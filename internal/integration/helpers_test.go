package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"golang.org/x/crypto/bcrypt"
)

// Time fields are excluded from comparison: timestamps scanned back from the
// database can render with a numeric UTC offset instead of "Z".
var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"startTime": {},
	"endTime":   {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, c := range cookies {
		req.AddCookie(&c)
	}

	return req, nil
}

func compareResponse(t testing.TB, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		switch v := m[k].(type) {
		case map[string]any:
			cleanMap(v)
		case []any:
			for _, elem := range v {
				if nested, ok := elem.(map[string]any); ok {
					cleanMap(nested)
				}
			}
		}
	}
}

type testUser struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
	IsAdmin   bool
}

func defaultTestUser() testUser {
	return testUser{
		FirstName: TestUserFirstName,
		LastName:  TestUserLastName,
		Email:     TestUserEmail,
		Password:  TestUserPassword,
		Phone:     TestUserPhone,
	}
}

func insertTestUser(t testing.TB, db *pgxpool.Pool, user testUser) int {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), 12)
	require.NoError(t, err)

	var id int
	err = db.QueryRow(
		context.Background(),
		`INSERT INTO users (first_name, last_name, email, password_hash, is_admin)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (email) DO UPDATE SET is_admin = EXCLUDED.is_admin
		 RETURNING id`,
		user.FirstName, user.LastName, user.Email, hash, user.IsAdmin,
	).Scan(&id)
	require.NoError(t, err)

	_, err = db.Exec(
		context.Background(),
		`INSERT INTO profiles (user_id, phone) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`,
		id, user.Phone,
	)
	require.NoError(t, err)

	return id
}

func (app *TestApp) loginCookies(t testing.TB, email, password string) []http.Cookie {
	body := fmt.Sprintf(`{"email": %q, "password": %q}`, email, password)

	req := httptest.NewRequest("POST", "/sessions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code, "login should succeed")

	res := rec.Result()
	defer res.Body.Close()

	cookies := make([]http.Cookie, 0, len(res.Cookies()))
	for _, c := range res.Cookies() {
		cookies = append(cookies, *c)
	}

	return cookies
}

func (app *TestApp) authenticatedUserCookies(t testing.TB) []http.Cookie {
	insertTestUser(t, app.DB, defaultTestUser())
	return app.loginCookies(t, TestUserEmail, TestUserPassword)
}

func (app *TestApp) adminUserCookies(t testing.TB) []http.Cookie {
	admin := defaultTestUser()
	admin.Email = TestAdminEmail
	admin.IsAdmin = true
	insertTestUser(t, app.DB, admin)

	return app.loginCookies(t, TestAdminEmail, TestUserPassword)
}

func truncateUsers(t testing.TB, db *pgxpool.Pool) {
	_, err := db.Exec(context.Background(), "TRUNCATE users RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}

func truncateBookingData(t testing.TB, db *pgxpool.Pool) {
	_, err := db.Exec(context.Background(), "TRUNCATE bookings, payments RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}

// insertBooking seeds a completed payment and an active booking for it.
func insertBooking(t testing.TB, db *pgxpool.Pool, userID, seatID int, start, end time.Time) int {
	var paymentID int
	err := db.QueryRow(
		context.Background(),
		`INSERT INTO payments (user_id, seat_id, start_time, end_time, amount, currency, status, payment_date)
		 VALUES ($1, $2, $3, $4, $5, $6, 'completed', NOW())
		 RETURNING id`,
		userID, seatID, start, end, "120.00", "INR",
	).Scan(&paymentID)
	require.NoError(t, err)

	var bookingID int
	err = db.QueryRow(
		context.Background(),
		`INSERT INTO bookings (user_id, seat_id, start_time, end_time, payment_id, amount_paid)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		userID, seatID, start, end, paymentID, "120.00",
	).Scan(&bookingID)
	require.NoError(t, err)

	return bookingID
}

func seatIdByLabel(t testing.TB, db *pgxpool.Pool, label string) int {
	var id int
	err := db.QueryRow(context.Background(), "SELECT id FROM seats WHERE label = $1", label).Scan(&id)
	require.NoError(t, err)

	return id
}

// signedWebhookEvent builds a provider event body and the matching signature header.
func signedWebhookEvent(eventType, checkoutSessionID string) (io.Reader, map[string]string) {
	payload := fmt.Sprintf(
		`{"api_version": %q, "type": %q, "data": {"object": {"id": %q}}}`,
		stripe.APIVersion, eventType, checkoutSessionID,
	)

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    TestWebhookSecret,
		Timestamp: time.Now(),
	})

	headers := map[string]string{"Stripe-Signature": signed.Header}

	return bytes.NewReader(signed.Payload), headers
}
