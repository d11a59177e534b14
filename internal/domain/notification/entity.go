package notification

import (
	"context"
	"errors"
	"time"

	"itapp/internal/pkg/pagination"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("notification not found")

type Notification struct {
	ID        uuid.UUID
	StudentID uuid.UUID
	Title     string
	Body      string
	CreatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, n Notification) error
	List(ctx context.Context, studentID uuid.UUID, page pagination.Page) ([]Notification, int, error)
	Count(ctx context.Context, studentID uuid.UUID) (int, error)
	Get(ctx context.Context, studentID, id uuid.UUID) (Notification, error)
}
