package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"itapp/internal/domain/notification"
	"itapp/internal/pkg/pagination"

	"github.com/google/uuid"
)

func TestGet_OnlyOwnNotifications(t *testing.T) {
	repo := &fakeNotifications{}
	owner, other := uuid.New(), uuid.New()
	n := notification.Notification{ID: uuid.New(), StudentID: owner, Title: "Application accepted", CreatedAt: time.Now()}
	repo.rows = append(repo.rows, n)

	s := NewService(repo)
	ctx := context.Background()

	got, err := s.Get(ctx, owner, n.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != n.Title {
		t.Fatalf("unexpected notification %+v", got)
	}
	if _, err := s.Get(ctx, other, n.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another student, got %v", err)
	}
}

func TestListAndCount(t *testing.T) {
	repo := &fakeNotifications{}
	st := uuid.New()
	for i := 0; i < 3; i++ {
		repo.rows = append(repo.rows, notification.Notification{ID: uuid.New(), StudentID: st})
	}
	repo.rows = append(repo.rows, notification.Notification{ID: uuid.New(), StudentID: uuid.New()})

	s := NewService(repo)
	ctx := context.Background()

	page, err := s.List(ctx, st, pagination.Query{PageNumber: 1, Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Notifications) != 2 || page.Total != 3 {
		t.Fatalf("expected 2 of 3, got %d of %d", len(page.Notifications), page.Total)
	}

	n, err := s.Count(ctx, st)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3, got %d", n)
	}

	if _, err := s.List(ctx, st, pagination.Query{PageNumber: 1, Limit: 0}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

type fakeNotifications struct {
	rows []notification.Notification
}

func (f *fakeNotifications) Create(_ context.Context, n notification.Notification) error {
	f.rows = append(f.rows, n)
	return nil
}

func (f *fakeNotifications) owned(studentID uuid.UUID) []notification.Notification {
	var out []notification.Notification
	for _, n := range f.rows {
		if n.StudentID == studentID {
			out = append(out, n)
		}
	}
	return out
}

func (f *fakeNotifications) List(_ context.Context, studentID uuid.UUID, page pagination.Page) ([]notification.Notification, int, error) {
	all := f.owned(studentID)
	end := page.Skip + page.Take
	if end > len(all) {
		end = len(all)
	}
	if page.Skip >= len(all) {
		return nil, len(all), nil
	}
	return all[page.Skip:end], len(all), nil
}

func (f *fakeNotifications) Count(_ context.Context, studentID uuid.UUID) (int, error) {
	return len(f.owned(studentID)), nil
}

func (f *fakeNotifications) Get(_ context.Context, studentID, id uuid.UUID) (notification.Notification, error) {
	for _, n := range f.owned(studentID) {
		if n.ID == id {
			return n, nil
		}
	}
	return notification.Notification{}, notification.ErrNotFound
}
