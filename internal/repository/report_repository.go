package repository

import (
	"context"
	"fmt"

	"itapp/internal/database"
	"itapp/internal/domain/application"
	"itapp/internal/pkg/pagination"

	"github.com/google/uuid"
)

const (
	acceptedReportFrom = ` FROM accepted_applicants x
		JOIN jobs j ON j.id = x.job_id
		JOIN students s ON s.id = x.student_id`
	acceptedReportSelect = `SELECT s.id, s.first_name || ' ' || s.last_name, s.email, j.id, j.title, j.industry,
		true, x.start_date, x.end_date, x.created_at`

	shortlistedReportFrom = ` FROM shortlisted_applicants x
		JOIN jobs j ON j.id = x.job_id
		JOIN students s ON s.id = x.student_id
		LEFT JOIN applications ap ON ap.student_id = x.student_id AND ap.job_id = x.job_id`
	shortlistedReportSelect = `SELECT s.id, s.first_name || ' ' || s.last_name, s.email, j.id, j.title, j.industry,
		COALESCE(ap.accepted, false), NULL::timestamptz, NULL::timestamptz, x.created_at`

	appliedReportFrom = ` FROM applications x
		JOIN jobs j ON j.id = x.job_id
		JOIN students s ON s.id = x.student_id
		LEFT JOIN accepted_applicants acc ON acc.student_id = x.student_id AND acc.job_id = x.job_id`
	appliedReportSelect = `SELECT s.id, s.first_name || ' ' || s.last_name, s.email, j.id, j.title, j.industry,
		x.accepted, acc.start_date, acc.end_date, x.created_at`
)

var applicantOrderColumns = map[string]string{
	"createdAt": "x.created_at",
	"jobTitle":  "j.title",
	"lastName":  "s.last_name",
}

func ApplicantOrderColumns() map[string]string { return applicantOrderColumns }

type PostgresReportRepository struct {
	db database.DB
}

func NewPostgresReportRepository(db database.DB) *PostgresReportRepository {
	return &PostgresReportRepository{db: db}
}

func (r *PostgresReportRepository) ListAccepted(ctx context.Context, companyID uuid.UUID, page pagination.Page) ([]application.Applicant, int, error) {
	return r.paged(ctx, acceptedReportSelect, acceptedReportFrom, companyID, page)
}

func (r *PostgresReportRepository) ListShortlisted(ctx context.Context, companyID uuid.UUID, page pagination.Page) ([]application.Applicant, int, error) {
	return r.paged(ctx, shortlistedReportSelect, shortlistedReportFrom, companyID, page)
}

func (r *PostgresReportRepository) ListApplied(ctx context.Context, companyID uuid.UUID) ([]application.Applicant, error) {
	return r.all(ctx, appliedReportSelect, appliedReportFrom, companyID)
}

func (r *PostgresReportRepository) ListAllAccepted(ctx context.Context, companyID uuid.UUID) ([]application.Applicant, error) {
	return r.all(ctx, acceptedReportSelect, acceptedReportFrom, companyID)
}

func (r *PostgresReportRepository) ListAllShortlisted(ctx context.Context, companyID uuid.UUID) ([]application.Applicant, error) {
	return r.all(ctx, shortlistedReportSelect, shortlistedReportFrom, companyID)
}

func (r *PostgresReportRepository) paged(ctx context.Context, sel, from string, companyID uuid.UUID, page pagination.Page) ([]application.Applicant, int, error) {
	var conds conditions
	conds.add("j.company_id = ?", companyID)
	conds.onDay("x.created_at", page)

	total, err := scanCount(r.db.QueryRow(ctx, `SELECT COUNT(1)`+from+conds.where(), conds.args...))
	if err != nil {
		return nil, 0, fmt.Errorf("count applicants: %w", err)
	}

	limit, args := conds.window(page)
	out, err := r.query(ctx, sel+from+conds.where()+page.OrderClause("x.created_at DESC")+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresReportRepository) all(ctx context.Context, sel, from string, companyID uuid.UUID) ([]application.Applicant, error) {
	return r.query(ctx, sel+from+` WHERE j.company_id = $1 ORDER BY x.created_at DESC`, companyID)
}

func (r *PostgresReportRepository) query(ctx context.Context, q string, args ...any) ([]application.Applicant, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}
	defer rows.Close()

	out := make([]application.Applicant, 0)
	for rows.Next() {
		var a application.Applicant
		if err := rows.Scan(
			&a.StudentID, &a.StudentName, &a.StudentEmail, &a.JobID, &a.JobTitle, &a.Industry,
			&a.Accepted, &a.StartDate, &a.EndDate, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
