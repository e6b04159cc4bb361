package models

import (
	"time"

	"github.com/lib/pq"
)

const RoleAdmin = "admin"

type User struct {
	UserID            string     `json:"userId" db:"user_id"`
	Email             string     `json:"email" db:"email"`
	PasswordHash      string     `json:"-" db:"password_hash"`
	ConfirmedAt       *time.Time `json:"confirmedAt" db:"confirmed_at"`
	ConfirmationToken *string    `json:"-" db:"confirmation_token"`
	RecoveryToken     *string    `json:"-" db:"recovery_token"`
	RecoverySentAt    *time.Time `json:"-" db:"recovery_sent_at"`
	CreatedAt         time.Time  `json:"createdAt" db:"created_at"`
}

type UserRole struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Product struct {
	ID          string         `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Description string         `json:"description" db:"description"`
	Features    pq.StringArray `json:"features" db:"features"`
	Price       string         `json:"price" db:"price"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
}

// ProductSummary is the id/name pair used by the image picker.
type ProductSummary struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type ProductImage struct {
	ID          string    `json:"id" db:"id"`
	ProductID   string    `json:"productId" db:"product_id"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	IsMain      bool      `json:"isMain" db:"is_main"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

type ContactMessage struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Phone     string    `json:"phone" db:"phone"`
	Email     string    `json:"email" db:"email"`
	Subject   string    `json:"subject" db:"subject"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Notice is a user-facing toast. It travels between requests as a session
// flash, so it must stay gob-encodable.
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Destructive bool   `json:"destructive,omitempty"`
}
