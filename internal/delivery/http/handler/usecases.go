package handler

import (
	"context"

	"itapp/internal/domain/application"
	"itapp/internal/domain/company"
	"itapp/internal/domain/job"
	"itapp/internal/domain/notification"
	"itapp/internal/domain/student"
	"itapp/internal/pkg/pagination"
	ucapp "itapp/internal/usecase/application"
	ucjob "itapp/internal/usecase/job"
	ucnotification "itapp/internal/usecase/notification"
	"itapp/internal/usecase/profile"
	ucreport "itapp/internal/usecase/report"

	"github.com/google/uuid"
)

type ProfileUsecase interface {
	GetCompany(ctx context.Context, id uuid.UUID) (company.Company, error)
	UpdateCompany(ctx context.Context, id uuid.UUID, in profile.CompanyInput) (company.Company, error)
	GetStudent(ctx context.Context, id uuid.UUID) (student.Student, error)
	UpdateStudent(ctx context.Context, id uuid.UUID, in profile.StudentInput) (student.Student, error)
}

type JobUsecase interface {
	Create(ctx context.Context, companyID uuid.UUID, in ucjob.CreateInput) (job.Job, error)
	Update(ctx context.Context, companyID, jobID uuid.UUID, p job.Patch) (job.Job, error)
	List(ctx context.Context, f job.ListFilter, q pagination.Query) (ucjob.Page, error)
	ListForCompany(ctx context.Context, companyID uuid.UUID, q pagination.Query) (ucjob.Page, error)
	Search(ctx context.Context, in ucjob.SearchInput) (ucjob.Page, error)
}

type WorkflowUsecase interface {
	Apply(ctx context.Context, studentID, jobID uuid.UUID) (application.Application, error)
	Accept(ctx context.Context, companyID, studentID, jobID uuid.UUID) (application.Accepted, error)
	Shortlist(ctx context.Context, companyID, studentID, jobID uuid.UUID) (application.Shortlisted, error)
	Decline(ctx context.Context, companyID, studentID, jobID uuid.UUID) error
	Save(ctx context.Context, studentID, jobID uuid.UUID) (application.Saved, error)
	Unsave(ctx context.Context, studentID, jobID uuid.UUID) error
	List(ctx context.Context, studentID uuid.UUID, saved bool, q pagination.Query) (ucapp.ListPage, error)
	CurrentPlacement(ctx context.Context, studentID uuid.UUID) (application.Placement, error)
}

type ReportUsecase interface {
	Accepted(ctx context.Context, companyID uuid.UUID, q pagination.Query) (ucreport.ApplicantPage, error)
	Shortlisted(ctx context.Context, companyID uuid.UUID, q pagination.Query) (ucreport.ApplicantPage, error)
	ByCategory(ctx context.Context, companyID uuid.UUID) (application.ByCategory, error)
	Companies(ctx context.Context, q pagination.Query) (ucreport.CompanyPage, error)
	Students(ctx context.Context, f student.ListFilter, q pagination.Query) (ucreport.StudentPage, error)
	CountStudents(ctx context.Context, f student.ListFilter) (int, error)
}

type NotificationUsecase interface {
	List(ctx context.Context, studentID uuid.UUID, q pagination.Query) (ucnotification.Page, error)
	Count(ctx context.Context, studentID uuid.UUID) (int, error)
	Get(ctx context.Context, studentID, id uuid.UUID) (notification.Notification, error)
}
