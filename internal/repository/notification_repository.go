package repository

import (
	"context"
	"fmt"

	"itapp/internal/database"
	"itapp/internal/domain/notification"
	"itapp/internal/pkg/pagination"

	"github.com/google/uuid"
)

type PostgresNotificationRepository struct {
	db database.DB
}

func NewPostgresNotificationRepository(db database.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

func (r *PostgresNotificationRepository) Create(ctx context.Context, n notification.Notification) error {
	return insertNotification(ctx, r.db, n)
}

func (r *PostgresNotificationRepository) List(ctx context.Context, studentID uuid.UUID, page pagination.Page) ([]notification.Notification, int, error) {
	var conds conditions
	conds.add("student_id = ?", studentID)
	conds.onDay("created_at", page)

	total, err := scanCount(r.db.QueryRow(ctx, `SELECT COUNT(1) FROM notifications`+conds.where(), conds.args...))
	if err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	limit, args := conds.window(page)
	rows, err := r.db.Query(ctx,
		`SELECT id, student_id, title, body, created_at FROM notifications`+conds.where()+
			page.OrderClause("created_at DESC")+limit,
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	out := make([]notification.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresNotificationRepository) Count(ctx context.Context, studentID uuid.UUID) (int, error) {
	return scanCount(r.db.QueryRow(ctx, `SELECT COUNT(1) FROM notifications WHERE student_id = $1`, studentID))
}

func (r *PostgresNotificationRepository) Get(ctx context.Context, studentID, id uuid.UUID) (notification.Notification, error) {
	return scanNotification(r.db.QueryRow(ctx,
		`SELECT id, student_id, title, body, created_at FROM notifications WHERE id = $1 AND student_id = $2`,
		id, studentID))
}

var notificationOrderColumns = map[string]string{
	"createdAt": "created_at",
	"title":     "title",
}

func NotificationOrderColumns() map[string]string { return notificationOrderColumns }

func insertNotification(ctx context.Context, q database.Querier, n notification.Notification) error {
	_, err := q.Exec(ctx,
		`INSERT INTO notifications (id, student_id, title, body, created_at) VALUES ($1, $2, $3, $4, $5)`,
		n.ID, n.StudentID, n.Title, n.Body, n.CreatedAt,
	)
	return err
}

func scanNotification(row database.Row) (notification.Notification, error) {
	var n notification.Notification
	if err := row.Scan(&n.ID, &n.StudentID, &n.Title, &n.Body, &n.CreatedAt); err != nil {
		if isNoRows(err) {
			return notification.Notification{}, notification.ErrNotFound
		}
		return notification.Notification{}, err
	}
	return n, nil
}
