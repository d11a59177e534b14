package dto

import (
	"time"

	"itapp/internal/domain/job"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID               uuid.UUID `json:"id"`
	CompanyID        uuid.UUID `json:"companyId"`
	Title            string    `json:"title"`
	Level            string    `json:"level"`
	DurationMonths   int       `json:"durationMonths"`
	Address          string    `json:"address"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	Description      string    `json:"description"`
	Industry         string    `json:"industry"`
	TotalApplicants  int       `json:"totalApplicants"`
	AcceptedCount    int       `json:"acceptedCount"`
	ShortlistedCount int       `json:"shortlistedCount"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func FromJob(j job.Job) JobResponse {
	return JobResponse{
		ID:               j.ID,
		CompanyID:        j.CompanyID,
		Title:            j.Title,
		Level:            j.Level,
		DurationMonths:   j.DurationMonths,
		Address:          j.Address,
		City:             j.City,
		State:            j.State,
		Description:      j.Description,
		Industry:         j.Industry,
		TotalApplicants:  j.TotalApplicants,
		AcceptedCount:    j.AcceptedCount,
		ShortlistedCount: j.ShortlistedCount,
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
	}
}

func FromJobs(jobs []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, FromJob(j))
	}
	return out
}
