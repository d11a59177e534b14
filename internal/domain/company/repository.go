package company

import (
	"context"
	"errors"

	"itapp/internal/pkg/pagination"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("company not found")
	ErrEmailTaken = errors.New("company email already registered")
)

type Repository interface {
	Create(ctx context.Context, c Company) error
	GetByID(ctx context.Context, id uuid.UUID) (Company, error)
	GetByEmail(ctx context.Context, email string) (Company, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, p ProfileUpdate) (Company, error)
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) (Company, error)
	List(ctx context.Context, page pagination.Page) ([]Company, int, error)
}
