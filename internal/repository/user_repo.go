package repository

import (
	"context"
	"errors"

	"github.com/renohub/bidding-service/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository - интерфейс для чтения пользователей.
// Регистрация и учетные данные живут во внешнем сервисе аутентификации.
type UserRepository interface {
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
}

// PostgresUserRepository - реализация UserRepository для базы данных.
type PostgresUserRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresUserRepository создает новый экземпляр PostgresUserRepository.
func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// GetUserByID возвращает пользователя по ID или nil, если он не найден.
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	var roles []string
	query := `SELECT id, name, email, roles, created_at FROM app_user WHERE id = $1`
	err := r.DB.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&roles,
		&user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		user.Roles = append(user.Roles, models.UserRole(role))
	}
	return &user, nil
}
