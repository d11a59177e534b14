package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"itapp/internal/database"
	"itapp/internal/domain/application"
	"itapp/internal/domain/job"
	"itapp/internal/domain/notification"
	"itapp/internal/pkg/pagination"

	"github.com/google/uuid"
)

// PostgresApplicationStore runs the application workflow statements, either
// directly on the pool or inside InTx.
type PostgresApplicationStore struct {
	applicationQueries
	db database.DB
}

func NewPostgresApplicationStore(db database.DB) *PostgresApplicationStore {
	return &PostgresApplicationStore{applicationQueries: applicationQueries{q: db}, db: db}
}

func (s *PostgresApplicationStore) InTx(ctx context.Context, fn func(r application.Repository) error) error {
	return database.WithTx(ctx, s.db, func(q database.Querier) error {
		return fn(applicationQueries{q: q})
	})
}

func (s *PostgresApplicationStore) ListByStudent(ctx context.Context, studentID uuid.UUID, saved bool, page pagination.Page) ([]application.Entry, int, error) {
	table, accepted := "applications", "x.accepted"
	if saved {
		table, accepted = "saved_applications", "false"
	}

	var conds conditions
	conds.add("x.student_id = ?", studentID)
	conds.onDay("x.created_at", page)

	from := ` FROM ` + table + ` x JOIN jobs j ON j.id = x.job_id`
	total, err := scanCount(s.db.QueryRow(ctx, `SELECT COUNT(1)`+from+conds.where(), conds.args...))
	if err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", table, err)
	}

	limit, args := conds.window(page)
	rows, err := s.db.Query(ctx,
		`SELECT x.id, `+accepted+`, x.created_at, `+qualify(jobColumns, "j")+from+conds.where()+
			page.OrderClause("x.created_at DESC")+limit,
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	out := make([]application.Entry, 0)
	for rows.Next() {
		var e application.Entry
		j := &e.Job
		if err := rows.Scan(
			&e.ID, &e.Accepted, &e.CreatedAt,
			&j.ID, &j.CompanyID, &j.Title, &j.Level, &j.DurationMonths, &j.Address, &j.City, &j.State,
			&j.Description, &j.Industry, &j.TotalApplicants, &j.AcceptedCount, &j.ShortlistedCount,
			&j.CreatedAt, &j.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *PostgresApplicationStore) CurrentPlacement(ctx context.Context, studentID uuid.UUID, now time.Time) (application.Placement, error) {
	row := s.db.QueryRow(ctx,
		`SELECT a.id, a.student_id, a.job_id, a.start_date, a.end_date, a.created_at, `+qualify(jobColumns, "j")+`
		 FROM accepted_applicants a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE a.student_id = $1 AND a.start_date <= $2 AND a.end_date >= $2
		 ORDER BY a.start_date DESC
		 LIMIT 1`,
		studentID, now,
	)

	var p application.Placement
	j := &p.Job
	err := row.Scan(
		&p.ID, &p.StudentID, &p.JobID, &p.StartDate, &p.EndDate, &p.CreatedAt,
		&j.ID, &j.CompanyID, &j.Title, &j.Level, &j.DurationMonths, &j.Address, &j.City, &j.State,
		&j.Description, &j.Industry, &j.TotalApplicants, &j.AcceptedCount, &j.ShortlistedCount,
		&j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return application.Placement{}, application.ErrNotFound
		}
		return application.Placement{}, err
	}
	return p, nil
}

type applicationQueries struct {
	q database.Querier
}

// LockJob reads the job FOR UPDATE so counter changes on one job serialize.
func (a applicationQueries) LockJob(ctx context.Context, jobID uuid.UUID) (job.Job, error) {
	return scanJob(a.q.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1 FOR UPDATE`, jobID))
}

func (a applicationQueries) GetApplication(ctx context.Context, studentID, jobID uuid.UUID) (application.Application, error) {
	var app application.Application
	err := a.q.QueryRow(ctx,
		`SELECT id, student_id, job_id, accepted, created_at FROM applications WHERE student_id = $1 AND job_id = $2`,
		studentID, jobID,
	).Scan(&app.ID, &app.StudentID, &app.JobID, &app.Accepted, &app.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	return app, nil
}

func (a applicationQueries) InsertApplication(ctx context.Context, app application.Application) error {
	_, err := a.q.Exec(ctx,
		`INSERT INTO applications (id, student_id, job_id, accepted, created_at) VALUES ($1, $2, $3, $4, $5)`,
		app.ID, app.StudentID, app.JobID, app.Accepted, app.CreatedAt,
	)
	return duplicateOr(err)
}

func (a applicationQueries) DeleteApplication(ctx context.Context, studentID, jobID uuid.UUID) error {
	n, err := a.q.Exec(ctx, `DELETE FROM applications WHERE student_id = $1 AND job_id = $2`, studentID, jobID)
	if err != nil {
		return err
	}
	if n == 0 {
		return application.ErrNotFound
	}
	return nil
}

func (a applicationQueries) MarkAccepted(ctx context.Context, studentID, jobID uuid.UUID) error {
	n, err := a.q.Exec(ctx,
		`UPDATE applications SET accepted = true WHERE student_id = $1 AND job_id = $2`, studentID, jobID)
	if err != nil {
		return err
	}
	if n == 0 {
		return application.ErrNotFound
	}
	return nil
}

func (a applicationQueries) IsShortlisted(ctx context.Context, studentID, jobID uuid.UUID) (bool, error) {
	var ok bool
	err := a.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM shortlisted_applicants WHERE student_id = $1 AND job_id = $2)`,
		studentID, jobID,
	).Scan(&ok)
	return ok, err
}

func (a applicationQueries) InsertAccepted(ctx context.Context, acc application.Accepted) error {
	_, err := a.q.Exec(ctx,
		`INSERT INTO accepted_applicants (id, student_id, job_id, start_date, end_date, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		acc.ID, acc.StudentID, acc.JobID, acc.StartDate, acc.EndDate, acc.CreatedAt,
	)
	return duplicateOr(err)
}

func (a applicationQueries) InsertShortlisted(ctx context.Context, s application.Shortlisted) error {
	_, err := a.q.Exec(ctx,
		`INSERT INTO shortlisted_applicants (id, student_id, job_id, created_at) VALUES ($1, $2, $3, $4)`,
		s.ID, s.StudentID, s.JobID, s.CreatedAt,
	)
	return duplicateOr(err)
}

func (a applicationQueries) AdjustJobCounters(ctx context.Context, jobID uuid.UUID, d job.Counters) error {
	n, err := a.q.Exec(ctx,
		`UPDATE jobs SET
			total_applicants = total_applicants + $2,
			accepted_count = accepted_count + $3,
			shortlisted_count = shortlisted_count + $4,
			updated_at = now()
		 WHERE id = $1`,
		jobID, d.Total, d.Accepted, d.Shortlisted,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (a applicationQueries) InsertSaved(ctx context.Context, s application.Saved) error {
	_, err := a.q.Exec(ctx,
		`INSERT INTO saved_applications (id, student_id, job_id, created_at) VALUES ($1, $2, $3, $4)`,
		s.ID, s.StudentID, s.JobID, s.CreatedAt,
	)
	return duplicateOr(err)
}

func (a applicationQueries) DeleteSaved(ctx context.Context, studentID, jobID uuid.UUID) (bool, error) {
	n, err := a.q.Exec(ctx, `DELETE FROM saved_applications WHERE student_id = $1 AND job_id = $2`, studentID, jobID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (a applicationQueries) AppendNotification(ctx context.Context, n notification.Notification) error {
	return insertNotification(ctx, a.q, n)
}

func duplicateOr(err error) error {
	if isUnique(err) {
		return application.ErrDuplicate
	}
	return err
}

// qualify prefixes every column of a comma separated list with alias.
func qualify(columns, alias string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

var studentApplicationOrderColumns = map[string]string{
	"createdAt": "x.created_at",
	"jobTitle":  "j.title",
}

func StudentApplicationOrderColumns() map[string]string { return studentApplicationOrderColumns }
