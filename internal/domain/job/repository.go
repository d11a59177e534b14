package job

import (
	"context"
	"errors"

	"itapp/internal/pkg/pagination"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")

type Repository interface {
	Create(ctx context.Context, j Job) error
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	Update(ctx context.Context, companyID, id uuid.UUID, p Patch) (Job, error)
	List(ctx context.Context, f ListFilter, page pagination.Page) ([]Job, int, error)
	Search(ctx context.Context, f SearchFilter, page pagination.Page) ([]Job, int, error)
}
