// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/crackenhq/cracken/internal/app/store/sqldb"
	"github.com/crackenhq/cracken/internal/domain/models"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
)

// Store provides user persistence for the auth feature. The group/task core
// only ever reads users through joins and ids.
type Store struct {
	db *sqldb.DB
}

func New(db *sqldb.DB) *Store {
	return &Store{db: db}
}

// Create inserts a new user and returns it with its assigned id.
func (s *Store) Create(ctx context.Context, email, hashedPassword, name string) (models.User, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (email, hashed_password, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		email, hashedPassword, name, now, now,
	)
	if sqldb.IsUniqueViolation(err, "users.email") {
		return models.User{}, ErrDuplicateEmail
	}
	if err != nil {
		return models.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	return models.User{
		ID:             id,
		Email:          email,
		HashedPassword: hashedPassword,
		Name:           name,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// GetByID returns the user with the given id.
func (s *Store) GetByID(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, "SELECT * FROM users WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return u, err
}

// GetByEmail returns the user registered under email.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, "SELECT * FROM users WHERE email = ?", email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return u, err
}
