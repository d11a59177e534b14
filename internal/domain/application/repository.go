package application

import (
	"context"
	"errors"
	"time"

	"itapp/internal/domain/job"
	"itapp/internal/domain/notification"
	"itapp/internal/pkg/pagination"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("application not found")
	ErrDuplicate = errors.New("application already exists")
)

// Repository is the statement set the workflow runs inside one transaction.
// Inserts return ErrDuplicate when the (student, job) pair already exists.
type Repository interface {
	LockJob(ctx context.Context, jobID uuid.UUID) (job.Job, error)
	GetApplication(ctx context.Context, studentID, jobID uuid.UUID) (Application, error)
	InsertApplication(ctx context.Context, a Application) error
	DeleteApplication(ctx context.Context, studentID, jobID uuid.UUID) error
	MarkAccepted(ctx context.Context, studentID, jobID uuid.UUID) error
	IsShortlisted(ctx context.Context, studentID, jobID uuid.UUID) (bool, error)
	InsertAccepted(ctx context.Context, a Accepted) error
	InsertShortlisted(ctx context.Context, s Shortlisted) error
	AdjustJobCounters(ctx context.Context, jobID uuid.UUID, d job.Counters) error
	InsertSaved(ctx context.Context, s Saved) error
	DeleteSaved(ctx context.Context, studentID, jobID uuid.UUID) (bool, error)
	AppendNotification(ctx context.Context, n notification.Notification) error
}

type Store interface {
	Repository

	// InTx runs fn in a transaction and commits when fn returns nil.
	InTx(ctx context.Context, fn func(r Repository) error) error

	ListByStudent(ctx context.Context, studentID uuid.UUID, saved bool, page pagination.Page) ([]Entry, int, error)
	CurrentPlacement(ctx context.Context, studentID uuid.UUID, now time.Time) (Placement, error)
}

type ReportRepository interface {
	ListAccepted(ctx context.Context, companyID uuid.UUID, page pagination.Page) ([]Applicant, int, error)
	ListShortlisted(ctx context.Context, companyID uuid.UUID, page pagination.Page) ([]Applicant, int, error)
	ListApplied(ctx context.Context, companyID uuid.UUID) ([]Applicant, error)
	ListAllAccepted(ctx context.Context, companyID uuid.UUID) ([]Applicant, error)
	ListAllShortlisted(ctx context.Context, companyID uuid.UUID) ([]Applicant, error)
}
