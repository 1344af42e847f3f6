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

// MilestoneRepository - интерфейс для работы с этапами работ.
type MilestoneRepository interface {
	CreateMilestone(ctx context.Context, milestoneReq models.MilestoneRequest) (*models.Milestone, error)
	GetMilestoneByID(ctx context.Context, milestoneID string) (*models.Milestone, error)
	UpdateMilestoneStatus(ctx context.Context, milestoneID string, status models.MilestoneStatus) (*models.Milestone, error)
	GetProjectMilestones(ctx context.Context, projectID string) ([]models.Milestone, error)
}

// PostgresMilestoneRepository - реализация MilestoneRepository для базы данных.
type PostgresMilestoneRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresMilestoneRepository создает новый экземпляр PostgresMilestoneRepository.
func NewPostgresMilestoneRepository(db *pgxpool.Pool) *PostgresMilestoneRepository {
	return &PostgresMilestoneRepository{DB: db}
}

const milestoneColumns = `id, project_id, title, description, due_date, status, created_at`

func scanMilestone(row pgx.Row) (*models.Milestone, error) {
	var milestone models.Milestone
	err := row.Scan(
		&milestone.ID,
		&milestone.ProjectID,
		&milestone.Title,
		&milestone.Description,
		&milestone.DueDate,
		&milestone.Status,
		&milestone.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &milestone, nil
}

// CreateMilestone создает новый этап работ в статусе PENDING.
func (r *PostgresMilestoneRepository) CreateMilestone(ctx context.Context, milestoneReq models.MilestoneRequest) (*models.Milestone, error) {
	newMilestone := models.Milestone{
		ID:          uuid.New().String(),
		ProjectID:   milestoneReq.ProjectID,
		Title:       milestoneReq.Title,
		Description: milestoneReq.Description,
		DueDate:     milestoneReq.DueDate,
		Status:      models.PendingMilestone,
		CreatedAt:   time.Now().UTC(),
	}
	insertQuery := `INSERT INTO milestone (id, project_id, title, description, due_date, status, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newMilestone.ID,
		newMilestone.ProjectID,
		newMilestone.Title,
		newMilestone.Description,
		newMilestone.DueDate,
		newMilestone.Status,
		newMilestone.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &newMilestone, nil
}

// GetMilestoneByID возвращает этап работ по ID или nil, если он не найден.
func (r *PostgresMilestoneRepository) GetMilestoneByID(ctx context.Context, milestoneID string) (*models.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestone WHERE id = $1`
	milestone, err := scanMilestone(r.DB.QueryRow(ctx, query, milestoneID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return milestone, err
}

// UpdateMilestoneStatus меняет статус этапа работ.
func (r *PostgresMilestoneRepository) UpdateMilestoneStatus(ctx context.Context, milestoneID string, status models.MilestoneStatus) (*models.Milestone, error) {
	updateQuery := `UPDATE milestone SET status = $1 WHERE id = $2 RETURNING ` + milestoneColumns
	return scanMilestone(r.DB.QueryRow(ctx, updateQuery, status, milestoneID))
}

// GetProjectMilestones возвращает этапы работ проекта по сроку исполнения.
func (r *PostgresMilestoneRepository) GetProjectMilestones(ctx context.Context, projectID string) ([]models.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestone WHERE project_id = $1 ORDER BY due_date`
	rows, err := r.DB.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var milestones []models.Milestone
	for rows.Next() {
		milestone, err := scanMilestone(rows)
		if err != nil {
			return nil, err
		}
		milestones = append(milestones, *milestone)
	}
	return milestones, rows.Err()
}
