package job

import (
	"time"

	"github.com/google/uuid"
)

type Job struct {
	ID               uuid.UUID
	CompanyID        uuid.UUID
	Title            string
	Level            string
	DurationMonths   int
	Address          string
	City             string
	State            string
	Description      string
	Industry         string
	TotalApplicants  int
	AcceptedCount    int
	ShortlistedCount int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Patch holds the updatable job fields; nil leaves a column as is.
type Patch struct {
	Title          *string
	Level          *string
	DurationMonths *int
	Address        *string
	City           *string
	State          *string
	Description    *string
	Industry       *string
}

type ListFilter struct {
	CompanyID *uuid.UUID
}

// SearchFilter matches Industry and City by case-sensitive substring and
// DurationMonths by an inclusive range. Zero values disable a criterion.
type SearchFilter struct {
	Field       string
	Location    string
	MinDuration int
	MaxDuration int
	Order       string
}

// Counters is a delta applied to the denormalized job counters.
type Counters struct {
	Total       int
	Accepted    int
	Shortlisted int
}
