package report

import (
	"context"
	"errors"
	"testing"

	"itapp/internal/domain/application"
	"itapp/internal/domain/company"
	"itapp/internal/domain/student"
	"itapp/internal/pkg/logger"
	"itapp/internal/pkg/pagination"

	"github.com/google/uuid"
)

func TestByCategory_MergesThreeGroups(t *testing.T) {
	reports := &fakeReports{
		applied:     []application.Applicant{{StudentName: "a"}, {StudentName: "b"}},
		accepted:    []application.Applicant{{StudentName: "a", Accepted: true}},
		shortlisted: []application.Applicant{{StudentName: "b"}},
	}
	s := NewService(reports, nil, nil, logger.Nop())

	got, err := s.ByCategory(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("by category: %v", err)
	}
	if len(got.Applied) != 2 || len(got.Accepted) != 1 || len(got.Shortlisted) != 1 {
		t.Fatalf("unexpected groups %+v", got)
	}
}

func TestByCategory_FailureIsInternal(t *testing.T) {
	reports := &fakeReports{failShortlisted: errors.New("connection reset")}
	s := NewService(reports, nil, nil, logger.Nop())

	if _, err := s.ByCategory(context.Background(), uuid.New()); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestAccepted_ValidatesOrdering(t *testing.T) {
	reports := &fakeReports{accepted: []application.Applicant{{StudentName: "a"}}}
	s := NewService(reports, nil, nil, logger.Nop())
	ctx := context.Background()
	company := uuid.New()

	if _, err := s.Accepted(ctx, company, pagination.Query{PageNumber: 1, Limit: 10, OrderBy: "password", Order: "ASC"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	res, err := s.Accepted(ctx, company, pagination.Query{PageNumber: 2, Limit: 5, OrderBy: "lastName", Order: "desc"})
	if err != nil {
		t.Fatalf("accepted: %v", err)
	}
	if res.Total != 1 {
		t.Fatalf("expected total 1, got %d", res.Total)
	}
	if reports.lastPage.Skip != 5 || reports.lastPage.Take != 5 || reports.lastPage.OrderColumn != "s.last_name" || reports.lastPage.Order != "DESC" {
		t.Fatalf("unexpected page %+v", reports.lastPage)
	}
}

func TestStudents_FilterAndCount(t *testing.T) {
	yes, no := true, false
	students := &fakeStudents{rows: []student.Student{
		{FirstName: "a", Searching: true},
		{FirstName: "b", Searching: false},
		{FirstName: "c", Searching: true},
	}}
	s := NewService(nil, &fakeCompanies{}, students, logger.Nop())
	ctx := context.Background()

	res, err := s.Students(ctx, student.ListFilter{Searching: &yes}, pagination.Query{PageNumber: 1, Limit: 10})
	if err != nil {
		t.Fatalf("students: %v", err)
	}
	if res.Total != 2 {
		t.Fatalf("expected 2 searching students, got %d", res.Total)
	}

	n, err := s.CountStudents(ctx, student.ListFilter{Searching: &no})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 idle student, got %d", n)
	}
}

func TestCompanies_RejectsBadDate(t *testing.T) {
	s := NewService(nil, &fakeCompanies{}, nil, logger.Nop())
	if _, err := s.Companies(context.Background(), pagination.Query{PageNumber: 1, Limit: 10, Date: "2024/01/01"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

// --- fakes ---

type fakeReports struct {
	applied, accepted, shortlisted []application.Applicant
	failShortlisted                error
	lastPage                       pagination.Page
}

func (f *fakeReports) ListAccepted(_ context.Context, _ uuid.UUID, page pagination.Page) ([]application.Applicant, int, error) {
	f.lastPage = page
	return f.accepted, len(f.accepted), nil
}

func (f *fakeReports) ListShortlisted(_ context.Context, _ uuid.UUID, page pagination.Page) ([]application.Applicant, int, error) {
	f.lastPage = page
	return f.shortlisted, len(f.shortlisted), nil
}

func (f *fakeReports) ListApplied(context.Context, uuid.UUID) ([]application.Applicant, error) {
	return f.applied, nil
}

func (f *fakeReports) ListAllAccepted(context.Context, uuid.UUID) ([]application.Applicant, error) {
	return f.accepted, nil
}

func (f *fakeReports) ListAllShortlisted(context.Context, uuid.UUID) ([]application.Applicant, error) {
	return f.shortlisted, f.failShortlisted
}

type fakeCompanies struct {
	rows []company.Company
}

func (f *fakeCompanies) List(context.Context, pagination.Page) ([]company.Company, int, error) {
	return f.rows, len(f.rows), nil
}

type fakeStudents struct {
	rows []student.Student
}

func (f *fakeStudents) filter(lf student.ListFilter) []student.Student {
	var out []student.Student
	for _, s := range f.rows {
		if lf.Searching != nil && s.Searching != *lf.Searching {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (f *fakeStudents) List(_ context.Context, lf student.ListFilter, _ pagination.Page) ([]student.Student, int, error) {
	out := f.filter(lf)
	return out, len(out), nil
}

func (f *fakeStudents) Count(_ context.Context, lf student.ListFilter) (int, error) {
	return len(f.filter(lf)), nil
}
