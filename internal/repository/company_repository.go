package repository

import (
	"context"
	"fmt"
	"strings"

	"itapp/internal/database"
	"itapp/internal/domain/company"
	"itapp/internal/pkg/pagination"

	"github.com/google/uuid"
)

const companyColumns = `id, name, email, password_hash, registration_number, year_founded, address,
	phone, website, description, capacity, profile_image_url, background_image_url, verified,
	created_at, updated_at`

type PostgresCompanyRepository struct {
	db database.DB
}

func NewPostgresCompanyRepository(db database.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

func (r *PostgresCompanyRepository) Create(ctx context.Context, c company.Company) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO companies (id, name, email, password_hash, registration_number, year_founded, address, verified)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.Name, c.Email, c.PasswordHash, c.RegistrationNumber, c.YearFounded, c.Address, c.Verified,
	)
	if isUnique(err) {
		return company.ErrEmailTaken
	}
	return err
}

func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (company.Company, error) {
	return scanCompany(r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
}

func (r *PostgresCompanyRepository) GetByEmail(ctx context.Context, email string) (company.Company, error) {
	return scanCompany(r.db.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE lower(email) = $1`, strings.ToLower(email)))
}

func (r *PostgresCompanyRepository) UpdateProfile(ctx context.Context, id uuid.UUID, p company.ProfileUpdate) (company.Company, error) {
	return scanCompany(r.db.QueryRow(ctx,
		`UPDATE companies SET
			phone = COALESCE($2, phone),
			website = COALESCE($3, website),
			address = COALESCE($4, address),
			description = COALESCE($5, description),
			capacity = COALESCE($6, capacity),
			profile_image_url = COALESCE($7, profile_image_url),
			background_image_url = COALESCE($8, background_image_url),
			updated_at = now()
		 WHERE id = $1
		 RETURNING `+companyColumns,
		id, p.Phone, p.Website, p.Address, p.Description, p.Capacity, p.ProfileImageURL, p.BackgroundImageURL,
	))
}

func (r *PostgresCompanyRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) (company.Company, error) {
	return scanCompany(r.db.QueryRow(ctx,
		`UPDATE companies SET verified = $2, updated_at = now() WHERE id = $1 RETURNING `+companyColumns,
		id, verified))
}

var companyOrderColumns = map[string]string{
	"createdAt": "created_at",
	"name":      "name",
}

func CompanyOrderColumns() map[string]string { return companyOrderColumns }

func (r *PostgresCompanyRepository) List(ctx context.Context, page pagination.Page) ([]company.Company, int, error) {
	var conds conditions
	conds.onDay("created_at", page)

	total, err := scanCount(r.db.QueryRow(ctx, `SELECT COUNT(1) FROM companies`+conds.where(), conds.args...))
	if err != nil {
		return nil, 0, fmt.Errorf("count companies: %w", err)
	}

	limit, args := conds.window(page)
	rows, err := r.db.Query(ctx,
		`SELECT `+companyColumns+` FROM companies`+conds.where()+page.OrderClause("created_at DESC")+limit,
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	out := make([]company.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func scanCompany(row database.Row) (company.Company, error) {
	var c company.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.RegistrationNumber, &c.YearFounded, &c.Address,
		&c.Phone, &c.Website, &c.Description, &c.Capacity, &c.ProfileImageURL, &c.BackgroundImageURL,
		&c.Verified, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return company.Company{}, company.ErrNotFound
		}
		return company.Company{}, err
	}
	return c, nil
}
