package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/studyhall/seat-reservation-system/internal/domain"
	"github.com/studyhall/seat-reservation-system/internal/mailer"
	"github.com/studyhall/seat-reservation-system/internal/mocks"
)

type WebhookTestSuite struct {
	suite.Suite
	app         *Application
	userRepo    *mocks.MockUserRepo
	seatRepo    *mocks.MockSeatRepo
	bookingRepo *mocks.MockBookingRepo
	paymentRepo *mocks.MockPaymentRepo
	redisClient *mocks.MockRedisClient
	mockMailer  *mailer.MockMailer
}

func (s *WebhookTestSuite) SetupTest() {
	s.userRepo = &mocks.MockUserRepo{}
	s.seatRepo = &mocks.MockSeatRepo{}
	s.bookingRepo = &mocks.MockBookingRepo{}
	s.paymentRepo = new(mocks.MockPaymentRepo)
	s.redisClient = new(mocks.MockRedisClient)
	s.mockMailer = mailer.NewMockMailer()

	s.app = newTestApplication(func(a *Application) {
		a.userRepo = s.userRepo
		a.seatRepo = s.seatRepo
		a.bookingRepo = s.bookingRepo
		a.paymentRepo = s.paymentRepo
		a.redis = s.redisClient
		a.mailer = s.mockMailer
	})
}

func TestWebhookSuite(t *testing.T) {
	suite.Run(t, new(WebhookTestSuite))
}

func (s *WebhookTestSuite) capturedPayment() *domain.Payment {
	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)

	return &domain.Payment{
		ID:                42,
		UserID:            1,
		CheckoutSessionId: ptr("cs_test_123"),
		SeatID:            3,
		Period:            domain.TimeRange{Start: start, End: start.Add(2 * time.Hour)},
		Amount:            decimal.NewFromInt(120),
		Currency:          "INR",
		Status:            domain.PaymentStatusPending,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *WebhookTestSuite) TestHandleCheckoutCompleted_Success() {
	payment := s.capturedPayment()

	s.paymentRepo.On("GetByCheckoutSessionId", mock.Anything, "cs_test_123").Return(payment, nil)

	s.bookingRepo.CreateWithPaymentFunc = func(ctx context.Context, booking *domain.Booking, checkoutSessionID string) error {
		s.Equal("cs_test_123", checkoutSessionID)
		s.Equal(payment.UserID, booking.UserID)
		s.Equal(payment.SeatID, booking.SeatID)
		s.True(payment.Amount.Equal(booking.AmountPaid))

		booking.ID = 7
		booking.IsActive = true
		return nil
	}

	s.userRepo.GetByIdFunc = func(ctx context.Context, id int) (*domain.User, error) {
		return &domain.User{ID: 1, FirstName: "Asha", Email: "asha@example.com"}, nil
	}
	s.seatRepo.GetByIdFunc = func(ctx context.Context, id int) (*domain.Seat, error) {
		return &domain.Seat{ID: 3, Label: "A3", Zone: "quiet"}, nil
	}

	s.redisClient.On("Publish", mock.Anything, bookingEventsChannel, mock.Anything).
		Return(redis.NewIntResult(1, nil))

	err := s.app.handleCheckoutCompleted(context.Background(), "cs_test_123", testLogger())
	s.NoError(err)

	s.redisClient.AssertExpectations(s.T())
	s.paymentRepo.AssertExpectations(s.T())

	s.Eventually(func() bool {
		return len(s.mockMailer.GetSentEmails()) == 1
	}, time.Second, 10*time.Millisecond)

	sent := s.mockMailer.GetSentEmails()
	s.Equal("booking_confirmation.tmpl", sent[0].TemplateFile)
	s.Equal("asha@example.com", sent[0].Recipient)
}

func (s *WebhookTestSuite) TestHandleCheckoutCompleted_SeatConflictFlagsRefund() {
	payment := s.capturedPayment()

	s.paymentRepo.On("GetByCheckoutSessionId", mock.Anything, "cs_test_123").Return(payment, nil)

	s.bookingRepo.CreateWithPaymentFunc = func(ctx context.Context, booking *domain.Booking, checkoutSessionID string) error {
		return domain.ErrBookingConflict
	}

	s.paymentRepo.On(
		"UpdateStatus",
		mock.Anything,
		"cs_test_123",
		domain.PaymentStatusRefundRequired,
		mock.Anything,
	).Return(nil)

	// The conflict is final: the webhook must be acknowledged, not retried.
	err := s.app.handleCheckoutCompleted(context.Background(), "cs_test_123", testLogger())
	s.NoError(err)

	s.paymentRepo.AssertExpectations(s.T())
	s.Empty(s.mockMailer.GetSentEmails())
}

func (s *WebhookTestSuite) TestHandleCheckoutCompleted_PersistFailureFlagsReconciliation() {
	payment := s.capturedPayment()

	s.paymentRepo.On("GetByCheckoutSessionId", mock.Anything, "cs_test_123").Return(payment, nil)

	s.bookingRepo.CreateWithPaymentFunc = func(ctx context.Context, booking *domain.Booking, checkoutSessionID string) error {
		return errors.New("connection reset")
	}

	s.paymentRepo.On(
		"UpdateStatus",
		mock.Anything,
		"cs_test_123",
		domain.PaymentStatusReconcileRequired,
		"connection reset",
	).Return(nil)

	err := s.app.handleCheckoutCompleted(context.Background(), "cs_test_123", testLogger())

	// The distinct error drives a 5xx so the provider redelivers the event.
	s.ErrorIs(err, domain.ErrPersistAfterPayment)

	s.paymentRepo.AssertExpectations(s.T())
	s.Empty(s.mockMailer.GetSentEmails())
}

func (s *WebhookTestSuite) TestHandleCheckoutCompleted_DuplicateDeliveryIsIdempotent() {
	payment := s.capturedPayment()
	payment.Status = domain.PaymentStatusCompleted

	s.paymentRepo.On("GetByCheckoutSessionId", mock.Anything, "cs_test_123").Return(payment, nil)

	called := false
	s.bookingRepo.CreateWithPaymentFunc = func(ctx context.Context, booking *domain.Booking, checkoutSessionID string) error {
		called = true
		return nil
	}

	err := s.app.handleCheckoutCompleted(context.Background(), "cs_test_123", testLogger())
	s.NoError(err)
	s.False(called, "a processed payment must not create a second booking")
}

func (s *WebhookTestSuite) TestHandleCheckoutCompleted_RedeliveryKeepsTerminalStatus() {
	for _, status := range []domain.PaymentStatus{
		domain.PaymentStatusRefundRequired,
		domain.PaymentStatusCanceled,
		domain.PaymentStatusFailed,
	} {
		s.Run(string(status), func() {
			s.SetupTest()

			payment := s.capturedPayment()
			payment.Status = status

			s.paymentRepo.On("GetByCheckoutSessionId", mock.Anything, "cs_test_123").Return(payment, nil)

			called := false
			s.bookingRepo.CreateWithPaymentFunc = func(ctx context.Context, booking *domain.Booking, checkoutSessionID string) error {
				called = true
				return nil
			}

			// Must be acknowledged without touching the booking table or the
			// payment status: a redelivered event cannot reopen a resolved payment.
			err := s.app.handleCheckoutCompleted(context.Background(), "cs_test_123", testLogger())
			s.NoError(err)
			s.False(called, "a resolved payment must not retry the booking write")
			s.paymentRepo.AssertNotCalled(s.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func (s *WebhookTestSuite) TestHandleCheckoutCompleted_UnknownSession() {
	s.paymentRepo.On("GetByCheckoutSessionId", mock.Anything, "cs_test_999").
		Return(nil, domain.ErrRecordNotFound)

	err := s.app.handleCheckoutCompleted(context.Background(), "cs_test_999", testLogger())
	s.ErrorIs(err, domain.ErrRecordNotFound)
}
