package notification

import (
	"context"
	"errors"
	"fmt"

	"itapp/internal/domain/notification"
	"itapp/internal/pkg/pagination"
	"itapp/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("notification not found")
	ErrInternal     = errors.New("internal error")
)

type Page struct {
	Notifications []notification.Notification
	Total         int
}

// Service reads a student's notifications. Writes happen inside the
// application workflow.
type Service struct {
	repo notification.Repository
}

func NewService(repo notification.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, studentID uuid.UUID, q pagination.Query) (Page, error) {
	page, err := pagination.Resolve(q, repository.NotificationOrderColumns())
	if err != nil {
		return Page{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	rows, total, err := s.repo.List(ctx, studentID, page)
	if err != nil {
		return Page{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return Page{Notifications: rows, Total: total}, nil
}

func (s *Service) Count(ctx context.Context, studentID uuid.UUID) (int, error) {
	n, err := s.repo.Count(ctx, studentID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return n, nil
}

// Get returns ErrNotFound for ids that belong to another student.
func (s *Service) Get(ctx context.Context, studentID, id uuid.UUID) (notification.Notification, error) {
	if id == uuid.Nil {
		return notification.Notification{}, ErrInvalidInput
	}
	n, err := s.repo.Get(ctx, studentID, id)
	if err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			return notification.Notification{}, ErrNotFound
		}
		return notification.Notification{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return n, nil
}
