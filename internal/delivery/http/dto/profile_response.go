package dto

import (
	"time"

	"itapp/internal/domain/company"
	"itapp/internal/domain/student"

	"github.com/google/uuid"
)

type CompanyResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	RegistrationNumber string    `json:"registrationNumber"`
	YearFounded        string    `json:"yearFounded"`
	Address            string    `json:"address"`
	Phone              *string   `json:"phone"`
	Website            *string   `json:"website"`
	Description        *string   `json:"description"`
	Capacity           *int      `json:"capacity"`
	ProfileImageURL    *string   `json:"profileImageUrl"`
	BackgroundImageURL *string   `json:"backgroundImageUrl"`
	Verified           bool      `json:"verified"`
	Role               string    `json:"role"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func FromCompany(c company.Company) CompanyResponse {
	return CompanyResponse{
		ID:                 c.ID,
		Name:               c.Name,
		Email:              c.Email,
		RegistrationNumber: c.RegistrationNumber,
		YearFounded:        c.YearFounded,
		Address:            c.Address,
		Phone:              c.Phone,
		Website:            c.Website,
		Description:        c.Description,
		Capacity:           c.Capacity,
		ProfileImageURL:    c.ProfileImageURL,
		BackgroundImageURL: c.BackgroundImageURL,
		Verified:           c.Verified,
		Role:               "company",
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func FromCompanies(cs []company.Company) []CompanyResponse {
	out := make([]CompanyResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, FromCompany(c))
	}
	return out
}

type CompanyAccountResponse struct {
	Company CompanyResponse `json:"company"`
	Token   string          `json:"token"`
}

type StudentResponse struct {
	ID                  uuid.UUID `json:"id"`
	MatriculationNumber string    `json:"matriculationNumber"`
	School              string    `json:"school"`
	FirstName           string    `json:"firstName"`
	LastName            string    `json:"lastName"`
	Email               string    `json:"email"`
	Phone               *string   `json:"phone"`
	Bio                 *string   `json:"bio"`
	Skills              []string  `json:"skills"`
	Goals               []string  `json:"goals"`
	PreferredIndustry   *string   `json:"preferredIndustry"`
	ProfileImageURL     *string   `json:"profileImageUrl"`
	DocumentURLs        []string  `json:"documentUrls"`
	Searching           bool      `json:"searching"`
	Role                string    `json:"role"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func FromStudent(s student.Student) StudentResponse {
	return StudentResponse{
		ID:                  s.ID,
		MatriculationNumber: s.MatriculationNumber,
		School:              s.School,
		FirstName:           s.FirstName,
		LastName:            s.LastName,
		Email:               s.Email,
		Phone:               s.Phone,
		Bio:                 s.Bio,
		Skills:              nonNil(s.Skills),
		Goals:               nonNil(s.Goals),
		PreferredIndustry:   s.PreferredIndustry,
		ProfileImageURL:     s.ProfileImageURL,
		DocumentURLs:        nonNil(s.DocumentURLs),
		Searching:           s.Searching,
		Role:                "student",
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

func FromStudents(ss []student.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(ss))
	for _, s := range ss {
		out = append(out, FromStudent(s))
	}
	return out
}

type StudentAccountResponse struct {
	Student StudentResponse `json:"student"`
	Token   string          `json:"token"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
