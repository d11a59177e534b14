package dto

import (
	"time"

	"itapp/internal/domain/application"
	"itapp/internal/domain/notification"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID        uuid.UUID `json:"id"`
	StudentID uuid.UUID `json:"studentId"`
	JobID     uuid.UUID `json:"jobId"`
	Accepted  bool      `json:"accepted"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromApplication(a application.Application) ApplicationResponse {
	return ApplicationResponse{ID: a.ID, StudentID: a.StudentID, JobID: a.JobID, Accepted: a.Accepted, CreatedAt: a.CreatedAt}
}

type AcceptedResponse struct {
	ID        uuid.UUID `json:"id"`
	StudentID uuid.UUID `json:"studentId"`
	JobID     uuid.UUID `json:"jobId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromAccepted(a application.Accepted) AcceptedResponse {
	return AcceptedResponse{ID: a.ID, StudentID: a.StudentID, JobID: a.JobID, StartDate: a.StartDate, EndDate: a.EndDate, CreatedAt: a.CreatedAt}
}

// MarkResponse is returned for shortlist and save, which only record a pair.
type MarkResponse struct {
	ID        uuid.UUID `json:"id"`
	StudentID uuid.UUID `json:"studentId"`
	JobID     uuid.UUID `json:"jobId"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromShortlisted(s application.Shortlisted) MarkResponse {
	return MarkResponse{ID: s.ID, StudentID: s.StudentID, JobID: s.JobID, CreatedAt: s.CreatedAt}
}

func FromSaved(s application.Saved) MarkResponse {
	return MarkResponse{ID: s.ID, StudentID: s.StudentID, JobID: s.JobID, CreatedAt: s.CreatedAt}
}

type EntryResponse struct {
	ID        uuid.UUID   `json:"id"`
	Accepted  bool        `json:"accepted"`
	CreatedAt time.Time   `json:"createdAt"`
	Job       JobResponse `json:"job"`
}

func FromEntries(es []application.Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(es))
	for _, e := range es {
		out = append(out, EntryResponse{ID: e.ID, Accepted: e.Accepted, CreatedAt: e.CreatedAt, Job: FromJob(e.Job)})
	}
	return out
}

type PlacementResponse struct {
	AcceptedResponse
	Job JobResponse `json:"job"`
}

func FromPlacement(p application.Placement) PlacementResponse {
	return PlacementResponse{AcceptedResponse: FromAccepted(p.Accepted), Job: FromJob(p.Job)}
}

type ApplicantResponse struct {
	StudentID    uuid.UUID  `json:"studentId"`
	StudentName  string     `json:"studentName"`
	StudentEmail string     `json:"studentEmail"`
	JobID        uuid.UUID  `json:"jobId"`
	JobTitle     string     `json:"jobTitle"`
	Industry     string     `json:"industry"`
	Accepted     bool       `json:"accepted"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func FromApplicants(as []application.Applicant) []ApplicantResponse {
	out := make([]ApplicantResponse, 0, len(as))
	for _, a := range as {
		out = append(out, ApplicantResponse{
			StudentID:    a.StudentID,
			StudentName:  a.StudentName,
			StudentEmail: a.StudentEmail,
			JobID:        a.JobID,
			JobTitle:     a.JobTitle,
			Industry:     a.Industry,
			Accepted:     a.Accepted,
			StartDate:    a.StartDate,
			EndDate:      a.EndDate,
			CreatedAt:    a.CreatedAt,
		})
	}
	return out
}

type ByCategoryResponse struct {
	Applied     []ApplicantResponse `json:"applied"`
	Accepted    []ApplicantResponse `json:"accepted"`
	Shortlisted []ApplicantResponse `json:"shortlisted"`
}

func FromByCategory(b application.ByCategory) ByCategoryResponse {
	return ByCategoryResponse{
		Applied:     FromApplicants(b.Applied),
		Accepted:    FromApplicants(b.Accepted),
		Shortlisted: FromApplicants(b.Shortlisted),
	}
}

type NotificationResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromNotification(n notification.Notification) NotificationResponse {
	return NotificationResponse{ID: n.ID, Title: n.Title, Body: n.Body, CreatedAt: n.CreatedAt}
}

func FromNotifications(ns []notification.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(ns))
	for _, n := range ns {
		out = append(out, FromNotification(n))
	}
	return out
}
