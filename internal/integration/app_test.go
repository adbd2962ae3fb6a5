package integration_test

import (
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/studyhall/seat-reservation-system/internal/app"
	"github.com/studyhall/seat-reservation-system/internal/mailer"
	"github.com/studyhall/seat-reservation-system/internal/payment"
	"github.com/studyhall/seat-reservation-system/internal/repository"
	appvalidator "github.com/studyhall/seat-reservation-system/internal/validator"
)

type TestApp struct {
	App             *app.Application
	DB              *pgxpool.Pool
	Redis           *redis.Client
	Mailer          *mailer.MockMailer
	PaymentProvider *payment.MockPaymentProvider
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	mockMailer := mailer.NewMockMailer()
	mockPaymentProvider := payment.NewMockPaymentProvider()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	application, err := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		mockMailer,
		app.NewSessionManager(redisClient),
		repository.NewPostgresUserRepository(db),
		repository.NewPostgresSeatRepository(db),
		repository.NewPostgresBookingRepository(db),
		repository.NewPostgresPaymentRepository(db),
		mockPaymentProvider,
	)
	if err != nil {
		db.Close()
		redisClient.Close()
		return nil, err
	}

	return &TestApp{
		App:             application,
		DB:              db,
		Redis:           redisClient,
		Mailer:          mockMailer,
		PaymentProvider: mockPaymentProvider,
	}, nil
}
