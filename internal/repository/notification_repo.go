package repository

import (
	"context"
	"errors"
	"time"

	"github.com/renohub/bidding-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationRepository - интерфейс для работы с уведомлениями.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification models.Notification) (*models.Notification, error)
	GetUserNotifications(ctx context.Context, userID string, limit, offset int, unreadOnly bool) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, notificationID, userID string) (*models.Notification, error)
	MarkAllAsRead(ctx context.Context, userID string) (int64, error)
}

// PostgresNotificationRepository - реализация NotificationRepository для базы данных.
type PostgresNotificationRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresNotificationRepository создает новый экземпляр PostgresNotificationRepository.
func NewPostgresNotificationRepository(db *pgxpool.Pool) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{DB: db}
}

const notificationColumns = `id, user_id, type, title, message, project_id, bid_id, read, created_at`

func scanNotification(row pgx.Row) (*models.Notification, error) {
	var notification models.Notification
	err := row.Scan(
		&notification.ID,
		&notification.UserID,
		&notification.Type,
		&notification.Title,
		&notification.Message,
		&notification.ProjectID,
		&notification.BidID,
		&notification.Read,
		&notification.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

// CreateNotification создает новое непрочитанное уведомление.
func (r *PostgresNotificationRepository) CreateNotification(ctx context.Context, notification models.Notification) (*models.Notification, error) {
	notification.ID = uuid.New().String()
	notification.Read = false
	notification.CreatedAt = time.Now().UTC()

	insertQuery := `INSERT INTO notification (id, user_id, type, title, message, project_id, bid_id, read, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		notification.ID,
		notification.UserID,
		notification.Type,
		notification.Title,
		notification.Message,
		notification.ProjectID,
		notification.BidID,
		notification.Read,
		notification.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

// GetUserNotifications возвращает уведомления пользователя, новые первыми.
func (r *PostgresNotificationRepository) GetUserNotifications(ctx context.Context, userID string, limit, offset int, unreadOnly bool) ([]models.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notification WHERE user_id = $1`
	args := []interface{}{userID}
	if unreadOnly {
		query += ` AND read = false`
	}
	query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	args = append(args, limit, offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		notification, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, *notification)
	}
	return notifications, rows.Err()
}

// MarkAsRead помечает уведомление прочитанным. Обновление ограничено
// получателем: чужое уведомление выглядит как отсутствующее.
func (r *PostgresNotificationRepository) MarkAsRead(ctx context.Context, notificationID, userID string) (*models.Notification, error) {
	updateQuery := `UPDATE notification SET read = true WHERE id = $1 AND user_id = $2 RETURNING ` + notificationColumns
	notification, err := scanNotification(r.DB.QueryRow(ctx, updateQuery, notificationID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return notification, err
}

// MarkAllAsRead помечает все уведомления пользователя прочитанными.
func (r *PostgresNotificationRepository) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	updateQuery := `UPDATE notification SET read = true WHERE user_id = $1 AND read = false`
	tag, err := r.DB.Exec(ctx, updateQuery, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
