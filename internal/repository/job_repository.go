package repository

import (
	"context"
	"fmt"

	"itapp/internal/database"
	"itapp/internal/domain/job"
	"itapp/internal/pkg/pagination"

	"github.com/google/uuid"
)

const jobColumns = `id, company_id, title, level, duration_months, address, city, state, description,
	industry, total_applicants, accepted_count, shortlisted_count, created_at, updated_at`

var jobOrderColumns = map[string]string{
	"createdAt": "created_at",
	"title":     "title",
	"duration":  "duration_months",
}

func JobOrderColumns() map[string]string { return jobOrderColumns }

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, company_id, title, level, duration_months, address, city, state, description, industry)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		j.ID, j.CompanyID, j.Title, j.Level, j.DurationMonths, j.Address, j.City, j.State, j.Description, j.Industry,
	)
	return err
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	return scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
}

// Update applies p to the job only when it belongs to companyID.
func (r *PostgresJobRepository) Update(ctx context.Context, companyID, id uuid.UUID, p job.Patch) (job.Job, error) {
	return scanJob(r.db.QueryRow(ctx,
		`UPDATE jobs SET
			title = COALESCE($3, title),
			level = COALESCE($4, level),
			duration_months = COALESCE($5, duration_months),
			address = COALESCE($6, address),
			city = COALESCE($7, city),
			state = COALESCE($8, state),
			description = COALESCE($9, description),
			industry = COALESCE($10, industry),
			updated_at = now()
		 WHERE id = $1 AND company_id = $2
		 RETURNING `+jobColumns,
		id, companyID, p.Title, p.Level, p.DurationMonths, p.Address, p.City, p.State, p.Description, p.Industry,
	))
}

func (r *PostgresJobRepository) List(ctx context.Context, f job.ListFilter, page pagination.Page) ([]job.Job, int, error) {
	var conds conditions
	if f.CompanyID != nil {
		conds.add("company_id = ?", *f.CompanyID)
	}
	conds.onDay("created_at", page)
	return r.page(ctx, conds, page, page.OrderClause("created_at DESC"))
}

// Search matches with strpos so user input is never treated as a pattern.
func (r *PostgresJobRepository) Search(ctx context.Context, f job.SearchFilter, page pagination.Page) ([]job.Job, int, error) {
	var conds conditions
	if f.Field != "" {
		conds.add("strpos(industry, ?) > 0", f.Field)
	}
	if f.Location != "" {
		conds.add("strpos(city, ?) > 0", f.Location)
	}
	if f.MinDuration > 0 {
		conds.add("duration_months >= ?", f.MinDuration)
	}
	if f.MaxDuration > 0 {
		conds.add("duration_months <= ?", f.MaxDuration)
	}
	conds.onDay("created_at", page)

	order := pagination.OrderDESC
	if f.Order == pagination.OrderASC {
		order = pagination.OrderASC
	}
	return r.page(ctx, conds, page, " ORDER BY created_at "+order)
}

func (r *PostgresJobRepository) page(ctx context.Context, conds conditions, page pagination.Page, orderBy string) ([]job.Job, int, error) {
	total, err := scanCount(r.db.QueryRow(ctx, `SELECT COUNT(1) FROM jobs`+conds.where(), conds.args...))
	if err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	limit, args := conds.window(page)
	rows, err := r.db.Query(ctx, `SELECT `+jobColumns+` FROM jobs`+conds.where()+orderBy+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func scanJob(row database.Row) (job.Job, error) {
	var j job.Job
	err := row.Scan(
		&j.ID, &j.CompanyID, &j.Title, &j.Level, &j.DurationMonths, &j.Address, &j.City, &j.State,
		&j.Description, &j.Industry, &j.TotalApplicants, &j.AcceptedCount, &j.ShortlistedCount,
		&j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}
