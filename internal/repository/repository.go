package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"zurnaWorkshop/internal/models"
)

// ErrNotFound is returned when a lookup by key matches no row.
var ErrNotFound = errors.New("record not found")

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID, password string) error
	ConfirmEmail(ctx context.Context, token string) (*models.User, error)
	SetRecoveryToken(ctx context.Context, userID, token string, sentAt time.Time) error
	ConsumeRecoveryToken(ctx context.Context, token string, issuedAfter time.Time) (*models.User, error)
}

type RoleRepository interface {
	HasRole(ctx context.Context, userID, role string) (bool, error)
	Grant(ctx context.Context, userID, role string) error
}

type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	ListSummaries(ctx context.Context) ([]models.ProductSummary, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, productID string) error
}

type ImageRepository interface {
	List(ctx context.Context) ([]models.ProductImage, error)
	GetByID(ctx context.Context, imageID string) (*models.ProductImage, error)
	Create(ctx context.Context, image *models.ProductImage) error
	Delete(ctx context.Context, imageID string) error
}

type MessageRepository interface {
	Create(ctx context.Context, message *models.ContactMessage) error
}

type TablesRepository interface {
	CountTablesDB() (int, error)
}

// Repository bundles every table the application talks to.
type Repository struct {
	User    UserRepository
	Role    RoleRepository
	Product ProductRepository
	Image   ImageRepository
	Message MessageRepository
	Tables  TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Role:    NewRoleRepository(db),
		Product: NewProductRepository(db),
		Image:   NewImageRepository(db),
		Message: NewMessageRepository(db),
		Tables:  NewTablesRepository(db),
	}
}
