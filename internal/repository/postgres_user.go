package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/studyhall/seat-reservation-system/internal/domain"
)

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

// CreateWithProfile inserts the user and then its profile row. The user insert
// is the authoritative one: if the profile insert fails the account still
// exists, and the error wraps ErrProfileNotCreated so the caller can report
// the degraded state with its cause.
func (p *PostgresUserRepository) CreateWithProfile(
	ctx context.Context,
	user *domain.User,
	profile *domain.Profile) (bool, error) {

	query := `
		INSERT INTO users (first_name, last_name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_admin, created_at, version
	`

	err := p.db.QueryRow(
		ctx,
		query,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Password.Hash,
	).Scan(&user.ID, &user.IsAdmin, &user.CreatedAt, &user.Version)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return false, domain.ErrUserAlreadyExists
		}

		return false, err
	}

	profile.UserID = user.ID

	query = `
		INSERT INTO profiles (user_id, phone, avatar_url)
		VALUES ($1, $2, $3)
	`

	_, err = p.db.Exec(ctx, query, profile.UserID, profile.Phone, profile.AvatarURL)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrProfileNotCreated, err)
	}

	return true, nil
}

func (p *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, first_name, last_name, email, password_hash, is_admin, created_at, version
		FROM users
		WHERE email = $1
	`

	return p.getOne(ctx, query, email)
}

func (p *PostgresUserRepository) GetById(ctx context.Context, id int) (*domain.User, error) {
	query := `
		SELECT id, first_name, last_name, email, password_hash, is_admin, created_at, version
		FROM users
		WHERE id = $1
	`

	return p.getOne(ctx, query, id)
}

func (p *PostgresUserRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User

	err := p.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Password.Hash,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.Version,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &user, nil
}

func (p *PostgresUserRepository) GetProfile(ctx context.Context, userID int) (*domain.Profile, error) {
	query := `
		SELECT user_id, phone, avatar_url
		FROM profiles
		WHERE user_id = $1
	`

	var profile domain.Profile

	err := p.db.QueryRow(ctx, query, userID).Scan(&profile.UserID, &profile.Phone, &profile.AvatarURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &profile, nil
}
