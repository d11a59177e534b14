package company

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID                 uuid.UUID
	Name               string
	Email              string
	PasswordHash       string
	RegistrationNumber string
	YearFounded        string
	Address            string
	Phone              *string
	Website            *string
	Description        *string
	Capacity           *int
	ProfileImageURL    *string
	BackgroundImageURL *string
	Verified           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ProfileUpdate holds the editable profile fields; nil leaves a column as is.
type ProfileUpdate struct {
	Phone              *string
	Website            *string
	Address            *string
	Description        *string
	Capacity           *int
	ProfileImageURL    *string
	BackgroundImageURL *string
}

func (p ProfileUpdate) Empty() bool {
	return p.Phone == nil && p.Website == nil && p.Address == nil && p.Description == nil &&
		p.Capacity == nil && p.ProfileImageURL == nil && p.BackgroundImageURL == nil
}
