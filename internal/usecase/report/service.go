package report

import (
	"context"
	"errors"
	"fmt"

	"itapp/internal/domain/application"
	"itapp/internal/domain/company"
	"itapp/internal/domain/student"
	"itapp/internal/pkg/pagination"
	"itapp/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

type CompanyLister interface {
	List(ctx context.Context, page pagination.Page) ([]company.Company, int, error)
}

type StudentLister interface {
	List(ctx context.Context, f student.ListFilter, page pagination.Page) ([]student.Student, int, error)
	Count(ctx context.Context, f student.ListFilter) (int, error)
}

type ApplicantPage struct {
	Applicants []application.Applicant
	Total      int
}

type CompanyPage struct {
	Companies []company.Company
	Total     int
}

type StudentPage struct {
	Students []student.Student
	Total    int
}

// Service serves the company applicant reports and the admin listings.
type Service struct {
	reports   application.ReportRepository
	companies CompanyLister
	students  StudentLister
	logger    zerolog.Logger
}

func NewService(reports application.ReportRepository, companies CompanyLister, students StudentLister, logger zerolog.Logger) *Service {
	return &Service{reports: reports, companies: companies, students: students, logger: logger}
}

func (s *Service) Accepted(ctx context.Context, companyID uuid.UUID, q pagination.Query) (ApplicantPage, error) {
	page, err := resolve(q, repository.ApplicantOrderColumns())
	if err != nil {
		return ApplicantPage{}, err
	}
	rows, total, err := s.reports.ListAccepted(ctx, companyID, page)
	if err != nil {
		return ApplicantPage{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return ApplicantPage{Applicants: rows, Total: total}, nil
}

func (s *Service) Shortlisted(ctx context.Context, companyID uuid.UUID, q pagination.Query) (ApplicantPage, error) {
	page, err := resolve(q, repository.ApplicantOrderColumns())
	if err != nil {
		return ApplicantPage{}, err
	}
	rows, total, err := s.reports.ListShortlisted(ctx, companyID, page)
	if err != nil {
		return ApplicantPage{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return ApplicantPage{Applicants: rows, Total: total}, nil
}

// ByCategory loads the three applicant groups of a company concurrently. The
// first failing query cancels the others.
func (s *Service) ByCategory(ctx context.Context, companyID uuid.UUID) (application.ByCategory, error) {
	var out application.ByCategory

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.reports.ListApplied(gctx, companyID)
		if err != nil {
			return fmt.Errorf("applied: %w", err)
		}
		out.Applied = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.reports.ListAllAccepted(gctx, companyID)
		if err != nil {
			return fmt.Errorf("accepted: %w", err)
		}
		out.Accepted = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.reports.ListAllShortlisted(gctx, companyID)
		if err != nil {
			return fmt.Errorf("shortlisted: %w", err)
		}
		out.Shortlisted = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("company_id", companyID.String()).Msg("applicants by category failed")
		return application.ByCategory{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return out, nil
}

func (s *Service) Companies(ctx context.Context, q pagination.Query) (CompanyPage, error) {
	page, err := resolve(q, repository.CompanyOrderColumns())
	if err != nil {
		return CompanyPage{}, err
	}
	rows, total, err := s.companies.List(ctx, page)
	if err != nil {
		return CompanyPage{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return CompanyPage{Companies: rows, Total: total}, nil
}

func (s *Service) Students(ctx context.Context, f student.ListFilter, q pagination.Query) (StudentPage, error) {
	page, err := resolve(q, repository.StudentOrderColumns())
	if err != nil {
		return StudentPage{}, err
	}
	rows, total, err := s.students.List(ctx, f, page)
	if err != nil {
		return StudentPage{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return StudentPage{Students: rows, Total: total}, nil
}

func (s *Service) CountStudents(ctx context.Context, f student.ListFilter) (int, error) {
	n, err := s.students.Count(ctx, f)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return n, nil
}

func resolve(q pagination.Query, columns map[string]string) (pagination.Page, error) {
	page, err := pagination.Resolve(q, columns)
	if err != nil {
		return pagination.Page{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return page, nil
}
