package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"zurnaWorkshop/internal/models"
)

// ErrWrongPassword is returned by VerifyPassword when the hash does not match.
var ErrWrongPassword = errors.New("wrong password")

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	user.UserID = uuid.New().String()
	user.PasswordHash = string(hashedPassword)
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO users (user_id, email, password_hash, confirmed_at, confirmation_token, created_at)
		VALUES (:user_id, :email, :password_hash, :confirmed_at, :confirmation_token, :created_at)
	`

	_, err = r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("error fetching user by email: %w", err)
	}

	return &user, nil
}

func (r *userRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, ErrWrongPassword
	}

	return user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	query := `
		UPDATE users
		SET password_hash = $1, recovery_token = NULL, recovery_sent_at = NULL
		WHERE user_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, string(hashedPassword), userID)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	return nil
}

func (r *userRepository) ConfirmEmail(ctx context.Context, token string) (*models.User, error) {
	var user models.User

	query := `
		UPDATE users
		SET confirmed_at = now(), confirmation_token = NULL
		WHERE confirmation_token = $1
		RETURNING *
	`

	err := r.db.GetContext(ctx, &user, query, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("confirmation token: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("error confirming email: %w", err)
	}

	return &user, nil
}

func (r *userRepository) SetRecoveryToken(ctx context.Context, userID, token string, sentAt time.Time) error {
	query := `
		UPDATE users
		SET recovery_token = $1, recovery_sent_at = $2
		WHERE user_id = $3
	`

	_, err := r.db.ExecContext(ctx, query, token, sentAt, userID)
	if err != nil {
		return fmt.Errorf("error saving recovery token: %w", err)
	}

	return nil
}

// ConsumeRecoveryToken clears the token in the same statement that reads it,
// so a recovery link works once.
func (r *userRepository) ConsumeRecoveryToken(ctx context.Context, token string, issuedAfter time.Time) (*models.User, error) {
	var user models.User

	query := `
		UPDATE users
		SET recovery_token = NULL
		WHERE recovery_token = $1 AND recovery_sent_at > $2
		RETURNING *
	`

	err := r.db.GetContext(ctx, &user, query, token, issuedAfter)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("recovery token: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("error consuming recovery token: %w", err)
	}

	return &user, nil
}
