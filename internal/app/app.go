package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/studyhall/seat-reservation-system/internal/domain"
	"github.com/studyhall/seat-reservation-system/internal/mailer"
	"github.com/studyhall/seat-reservation-system/internal/payment"
	"github.com/studyhall/seat-reservation-system/internal/repository"
	appvalidator "github.com/studyhall/seat-reservation-system/internal/validator"
	"github.com/studyhall/seat-reservation-system/internal/vcs"
)

var (
	version = vcs.Version()
)

type Application struct {
	config         Config
	logger         *slog.Logger
	db             *pgxpool.Pool
	redis          redis.UniversalClient
	validator      *validator.Validate
	mailer         mailer.Mailer
	sessionManager *scs.SessionManager

	policy domain.BookingPolicy
	pricer domain.Pricer

	userRepo    domain.UserRepository
	seatRepo    domain.SeatRepository
	bookingRepo domain.BookingRepository
	paymentRepo domain.PaymentRepository

	paymentProvider domain.PaymentProvider
}

type Config struct {
	Port             int
	Env              string
	OtelCollectorUrl string

	DB      DBConfig
	Redis   RedisConfig
	SMTP    SMTPConfig
	Stripe  StripeConfig
	Booking BookingConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	SuccessUrl    string
	FailureUrl    string
}

type BookingConfig struct {
	HourlyRate        string
	Currency          string
	MaxDuration       time.Duration
	MaxAdvance        time.Duration
	CancellationGrace time.Duration
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")
	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", os.Getenv("OTEL_COLLECTOR_URL"), "OpenTelemetry collector URL")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", os.Getenv("DB_DSN"), "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", os.Getenv("REDIS_URL"), "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.SMTP.Host, "smtp-host", "sandbox.smtp.mailtrap.io", "SMTP host")
	flag.IntVar(&cfg.SMTP.Port, "smtp-port", 2525, "SMTP port")
	flag.StringVar(&cfg.SMTP.Username, "smtp-username", os.Getenv("SMTP_USERNAME"), "SMTP username")
	flag.StringVar(&cfg.SMTP.Password, "smtp-password", os.Getenv("SMTP_PASSWORD"), "SMTP password")
	flag.StringVar(&cfg.SMTP.Sender, "smtp-sender", "StudyHall <no-reply@studyhall.example>", "SMTP sender")

	flag.StringVar(&cfg.Stripe.SecretKey, "stripe-key", os.Getenv("STRIPE_SECRET_KEY"), "Stripe secret key")
	flag.StringVar(&cfg.Stripe.WebhookSecret, "stripe-webhook-secret", os.Getenv("STRIPE_WEBHOOK_SECRET"), "Stripe webhook secret")
	flag.StringVar(&cfg.Stripe.SuccessUrl, "stripe-success-url", "https://studyhall.example/booking/success", "Stripe payment success page")
	flag.StringVar(&cfg.Stripe.FailureUrl, "stripe-failure-url", "https://studyhall.example/booking/failure", "Stripe payment failure page")

	flag.StringVar(&cfg.Booking.HourlyRate, "hourly-rate", "60", "Hourly seat rate in major currency units")
	flag.StringVar(&cfg.Booking.Currency, "currency", "INR", "Billing currency (ISO 4217)")
	flag.DurationVar(&cfg.Booking.MaxDuration, "max-booking-duration", 8*time.Hour, "Maximum booking duration")
	flag.DurationVar(&cfg.Booking.MaxAdvance, "max-booking-advance", 7*24*time.Hour, "How far ahead bookings may start")
	flag.DurationVar(&cfg.Booking.CancellationGrace, "cancellation-grace", time.Hour, "Minimum lead time before start for free cancellation")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	stripe.Key = cfg.Stripe.SecretKey

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := NewDatabasePool(cfg)
	if err != nil {
		logger.Error("failed to open database pool", "error", err)
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		logger.Error("failed to open redis client", "error", err)
		return err
	}
	defer redisClient.Close()

	app, err := NewApp(
		cfg,
		logger,
		db,
		redisClient,
		appvalidator.NewValidator(),
		mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender),
		NewSessionManager(redisClient),
		repository.NewPostgresUserRepository(db),
		repository.NewPostgresSeatRepository(db),
		repository.NewPostgresBookingRepository(db),
		repository.NewPostgresPaymentRepository(db),
		payment.NewStripePaymentProvider(cfg.Stripe.FailureUrl, cfg.Stripe.SuccessUrl),
	)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		return err
	}

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	return app.Serve()
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	validator *validator.Validate,
	appMailer mailer.Mailer,
	sessionManager *scs.SessionManager,
	userRepo domain.UserRepository,
	seatRepo domain.SeatRepository,
	bookingRepo domain.BookingRepository,
	paymentRepo domain.PaymentRepository,
	paymentProvider domain.PaymentProvider) (*Application, error) {

	hourlyRate, err := decimal.NewFromString(cfg.Booking.HourlyRate)
	if err != nil {
		return nil, fmt.Errorf("invalid hourly rate %q: %w", cfg.Booking.HourlyRate, err)
	}

	app := &Application{
		config:         cfg,
		logger:         logger,
		db:             db,
		redis:          redisClient,
		validator:      validator,
		mailer:         appMailer,
		sessionManager: sessionManager,
		policy: domain.BookingPolicy{
			MaxDuration:       cfg.Booking.MaxDuration,
			MaxAdvance:        cfg.Booking.MaxAdvance,
			CancellationGrace: cfg.Booking.CancellationGrace,
		},
		pricer:          domain.NewPricer(hourlyRate, cfg.Booking.Currency),
		userRepo:        userRepo,
		seatRepo:        seatRepo,
		bookingRepo:     bookingRepo,
		paymentRepo:     paymentRepo,
		paymentProvider: paymentProvider,
	}

	return app, nil
}

func NewSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"

	return sessionManager
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	if err := redisotel.InstrumentMetrics(rdb); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) Serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("seat-reservation-api", otelchi.WithChiRoutes(r)))
	r.Use(app.logRequest)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/health", app.GetHealth)

	r.Post("/users", app.RegisterUser)
	r.Post("/sessions", app.Login)
	r.Delete("/sessions", app.Logout)

	r.Get("/seats", app.GetSeatMap)
	r.Get("/bookings/events", app.BookingEventsHandler)

	r.Route("/webhook", func(r chi.Router) {
		r.Post("/", app.StripeWebhookHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(app.requireAuthentication)

		r.Get("/users/me", app.GetCurrentUser)

		r.Post("/bookings/checkout", app.CreateCheckoutSessionHandler)
		r.Get("/bookings", app.GetUserBookingsHandler)
		r.Delete("/bookings/{bookingId}", app.CancelBookingHandler)

		r.Get("/payments/{paymentId}", app.GetPaymentStatusHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(app.requireAuthentication, app.requireAdmin)

		r.Get("/admin/bookings", app.AdminListBookingsHandler)
		r.Get("/admin/bookings/export", app.AdminExportBookingsHandler)
		r.Get("/admin/revenue", app.AdminRevenueHandler)
	})

	return r
}
