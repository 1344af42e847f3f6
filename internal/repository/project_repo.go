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

// ProjectRepository - интерфейс для работы с проектами.
type ProjectRepository interface {
	CreateProject(ctx context.Context, ownerID string, projectReq models.ProjectRequest) (*models.Project, error)
	GetProjectByID(ctx context.Context, projectID string) (*models.Project, error)
	UpdateProjectStatus(ctx context.Context, projectID string, status models.ProjectStatus) (*models.Project, error)
	PublishProject(ctx context.Context, projectID string, bidsCloseAt time.Time) (*models.Project, error)
	GetOwnedOrOpenProjects(ctx context.Context, ownerID string) ([]models.Project, error)
	GetOpenProjects(ctx context.Context) ([]models.Project, error)
}

// PostgresProjectRepository - реализация ProjectRepository для базы данных.
type PostgresProjectRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresProjectRepository создает новый экземпляр PostgresProjectRepository.
func NewPostgresProjectRepository(db *pgxpool.Pool) *PostgresProjectRepository {
	return &PostgresProjectRepository{DB: db}
}

const projectColumns = `id, title, description, owner_id, contractor_id, status, budget, address,
	start_date, end_date, bids_close_at, selected_bid_id, accepted_amount, created_at`

func scanProject(row pgx.Row) (*models.Project, error) {
	var project models.Project
	err := row.Scan(
		&project.ID,
		&project.Title,
		&project.Description,
		&project.OwnerID,
		&project.ContractorID,
		&project.Status,
		&project.Budget,
		&project.Address,
		&project.StartDate,
		&project.EndDate,
		&project.BidsCloseAt,
		&project.SelectedBidID,
		&project.AcceptedAmount,
		&project.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject создает новый проект в статусе DRAFT.
func (r *PostgresProjectRepository) CreateProject(ctx context.Context, ownerID string, projectReq models.ProjectRequest) (*models.Project, error) {
	newProject := models.Project{
		ID:          uuid.New().String(),
		Title:       projectReq.Title,
		Description: projectReq.Description,
		OwnerID:     ownerID,
		Status:      models.DraftProject,
		Budget:      projectReq.Budget,
		Address:     projectReq.Address,
		StartDate:   projectReq.StartDate,
		EndDate:     projectReq.EndDate,
		CreatedAt:   time.Now().UTC(),
	}
	insertQuery := `INSERT INTO project (id, title, description, owner_id, status, budget, address, start_date, end_date, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newProject.ID,
		newProject.Title,
		newProject.Description,
		newProject.OwnerID,
		newProject.Status,
		newProject.Budget,
		newProject.Address,
		newProject.StartDate,
		newProject.EndDate,
		newProject.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &newProject, nil
}

// GetProjectByID возвращает проект по ID или nil, если проект не найден.
func (r *PostgresProjectRepository) GetProjectByID(ctx context.Context, projectID string) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM project WHERE id = $1`
	project, err := scanProject(r.DB.QueryRow(ctx, query, projectID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return project, err
}

// UpdateProjectStatus меняет статус проекта.
func (r *PostgresProjectRepository) UpdateProjectStatus(ctx context.Context, projectID string, status models.ProjectStatus) (*models.Project, error) {
	updateQuery := `UPDATE project SET status = $1 WHERE id = $2 RETURNING ` + projectColumns
	return scanProject(r.DB.QueryRow(ctx, updateQuery, status, projectID))
}

// PublishProject переводит проект в статус OPEN_FOR_BIDS и фиксирует срок приема предложений.
func (r *PostgresProjectRepository) PublishProject(ctx context.Context, projectID string, bidsCloseAt time.Time) (*models.Project, error) {
	updateQuery := `UPDATE project SET status = $1, bids_close_at = $2 WHERE id = $3 RETURNING ` + projectColumns
	return scanProject(r.DB.QueryRow(ctx, updateQuery, models.OpenForBidsProject, bidsCloseAt, projectID))
}

// GetOwnedOrOpenProjects возвращает проекты пользователя вместе с открытыми для предложений.
func (r *PostgresProjectRepository) GetOwnedOrOpenProjects(ctx context.Context, ownerID string) ([]models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM project
	          WHERE owner_id = $1 OR status = $2
	          ORDER BY created_at DESC`
	return r.queryProjects(ctx, query, ownerID, models.OpenForBidsProject)
}

// GetOpenProjects возвращает проекты, открытые для предложений.
func (r *PostgresProjectRepository) GetOpenProjects(ctx context.Context) ([]models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM project
	          WHERE status = $1
	          ORDER BY created_at DESC`
	return r.queryProjects(ctx, query, models.OpenForBidsProject)
}

func (r *PostgresProjectRepository) queryProjects(ctx context.Context, query string, args ...interface{}) ([]models.Project, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}
