package student

import (
	"context"
	"errors"

	"itapp/internal/pkg/pagination"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("student not found")
	ErrEmailTaken = errors.New("student email already registered")
)

type Repository interface {
	Create(ctx context.Context, s Student) error
	GetByID(ctx context.Context, id uuid.UUID) (Student, error)
	GetByEmail(ctx context.Context, email string) (Student, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, p ProfileUpdate) (Student, error)
	List(ctx context.Context, f ListFilter, page pagination.Page) ([]Student, int, error)
	Count(ctx context.Context, f ListFilter) (int, error)
}
