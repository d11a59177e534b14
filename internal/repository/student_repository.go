package repository

import (
	"context"
	"fmt"
	"strings"

	"itapp/internal/database"
	"itapp/internal/domain/student"
	"itapp/internal/pkg/pagination"

	"github.com/google/uuid"
)

const studentColumns = `id, matriculation_number, school, first_name, last_name, email, password_hash,
	phone, bio, skills, goals, preferred_industry, profile_image_url, document_urls, searching,
	created_at, updated_at`

type PostgresStudentRepository struct {
	db database.DB
}

func NewPostgresStudentRepository(db database.DB) *PostgresStudentRepository {
	return &PostgresStudentRepository{db: db}
}

func (r *PostgresStudentRepository) Create(ctx context.Context, s student.Student) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO students (id, matriculation_number, school, first_name, last_name, email, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.MatriculationNumber, s.School, s.FirstName, s.LastName, s.Email, s.PasswordHash,
	)
	if isUnique(err) {
		return student.ErrEmailTaken
	}
	return err
}

func (r *PostgresStudentRepository) GetByID(ctx context.Context, id uuid.UUID) (student.Student, error) {
	return scanStudent(r.db.QueryRow(ctx, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id))
}

func (r *PostgresStudentRepository) GetByEmail(ctx context.Context, email string) (student.Student, error) {
	return scanStudent(r.db.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE lower(email) = $1`, strings.ToLower(email)))
}

func (r *PostgresStudentRepository) UpdateProfile(ctx context.Context, id uuid.UUID, p student.ProfileUpdate) (student.Student, error) {
	newDocs := p.NewDocumentURLs
	if newDocs == nil {
		newDocs = []string{}
	}
	return scanStudent(r.db.QueryRow(ctx,
		`UPDATE students SET
			first_name = COALESCE($2, first_name),
			last_name = COALESCE($3, last_name),
			phone = COALESCE($4, phone),
			bio = COALESCE($5, bio),
			skills = COALESCE($6, skills),
			goals = COALESCE($7, goals),
			preferred_industry = COALESCE($8, preferred_industry),
			searching = COALESCE($9, searching),
			profile_image_url = COALESCE($10, profile_image_url),
			document_urls = document_urls || $11::text[],
			updated_at = now()
		 WHERE id = $1
		 RETURNING `+studentColumns,
		id, p.FirstName, p.LastName, p.Phone, p.Bio, p.Skills, p.Goals, p.PreferredIndustry,
		p.Searching, p.ProfileImageURL, newDocs,
	))
}

var studentOrderColumns = map[string]string{
	"createdAt": "created_at",
	"firstName": "first_name",
	"lastName":  "last_name",
}

func StudentOrderColumns() map[string]string { return studentOrderColumns }

func (r *PostgresStudentRepository) List(ctx context.Context, f student.ListFilter, page pagination.Page) ([]student.Student, int, error) {
	conds := studentConditions(f)
	conds.onDay("created_at", page)

	total, err := scanCount(r.db.QueryRow(ctx, `SELECT COUNT(1) FROM students`+conds.where(), conds.args...))
	if err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}

	limit, args := conds.window(page)
	rows, err := r.db.Query(ctx,
		`SELECT `+studentColumns+` FROM students`+conds.where()+page.OrderClause("created_at DESC")+limit,
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	out := make([]student.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresStudentRepository) Count(ctx context.Context, f student.ListFilter) (int, error) {
	conds := studentConditions(f)
	return scanCount(r.db.QueryRow(ctx, `SELECT COUNT(1) FROM students`+conds.where(), conds.args...))
}

func studentConditions(f student.ListFilter) conditions {
	var conds conditions
	if f.Searching != nil {
		conds.add("searching = ?", *f.Searching)
	}
	return conds
}

func scanStudent(row database.Row) (student.Student, error) {
	var s student.Student
	err := row.Scan(
		&s.ID, &s.MatriculationNumber, &s.School, &s.FirstName, &s.LastName, &s.Email, &s.PasswordHash,
		&s.Phone, &s.Bio, &s.Skills, &s.Goals, &s.PreferredIndustry, &s.ProfileImageURL, &s.DocumentURLs,
		&s.Searching, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, err
	}
	return s, nil
}
