package domain

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID        int
	FirstName string
	LastName  string
	Email     string
	Password  password
	IsAdmin   bool
	CreatedAt time.Time
	Version   int
}

// Profile carries the optional contact details shown on the member dashboard.
// A missing profile row never blocks the account itself.
type Profile struct {
	UserID    int
	Phone     string
	AvatarURL string
}

type password struct {
	plaintext *string
	Hash      []byte
}

func (p *password) Set(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}

	p.plaintext = &plaintext
	p.Hash = hash

	return nil
}

func (p *password) Matches(plaintext string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.Hash, []byte(plaintext))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}

	return true, nil
}

type UserRepository interface {
	// CreateWithProfile creates the user and then its profile row. The user
	// insert is authoritative; a profile insert failure is reported through
	// the returned flag so callers can surface the degraded state instead of
	// swallowing it.
	CreateWithProfile(ctx context.Context, user *User, profile *Profile) (profileComplete bool, err error)

	GetByEmail(ctx context.Context, email string) (*User, error)
	GetById(ctx context.Context, id int) (*User, error)
	GetProfile(ctx context.Context, userID int) (*Profile, error)
}
