package student

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID                  uuid.UUID
	MatriculationNumber string
	School              string
	FirstName           string
	LastName            string
	Email               string
	PasswordHash        string
	Phone               *string
	Bio                 *string
	Skills              []string
	Goals               []string
	PreferredIndustry   *string
	ProfileImageURL     *string
	DocumentURLs        []string
	Searching           bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// ProfileUpdate holds the editable profile fields; nil leaves a column as is.
// NewDocumentURLs are appended to the stored documents.
type ProfileUpdate struct {
	FirstName         *string
	LastName          *string
	Phone             *string
	Bio               *string
	Skills            []string
	Goals             []string
	PreferredIndustry *string
	Searching         *bool
	ProfileImageURL   *string
	NewDocumentURLs   []string
}

type ListFilter struct {
	Searching *bool
}
