package application

import (
	"time"

	"itapp/internal/domain/job"

	"github.com/google/uuid"
)

type Application struct {
	ID        uuid.UUID
	StudentID uuid.UUID
	JobID     uuid.UUID
	Accepted  bool
	CreatedAt time.Time
}

type Accepted struct {
	ID        uuid.UUID
	StudentID uuid.UUID
	JobID     uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
}

type Shortlisted struct {
	ID        uuid.UUID
	StudentID uuid.UUID
	JobID     uuid.UUID
	CreatedAt time.Time
}

type Saved struct {
	ID        uuid.UUID
	StudentID uuid.UUID
	JobID     uuid.UUID
	CreatedAt time.Time
}

// Entry is one row of a student's applied or saved list.
type Entry struct {
	ID        uuid.UUID
	Job       job.Job
	Accepted  bool
	CreatedAt time.Time
}

// Placement is an accepted application together with its job.
type Placement struct {
	Accepted
	Job job.Job
}

// Applicant is one row of a company report.
type Applicant struct {
	StudentID    uuid.UUID
	StudentName  string
	StudentEmail string
	JobID        uuid.UUID
	JobTitle     string
	Industry     string
	Accepted     bool
	StartDate    *time.Time
	EndDate      *time.Time
	CreatedAt    time.Time
}

type ByCategory struct {
	Applied     []Applicant
	Accepted    []Applicant
	Shortlisted []Applicant
}
