package repository

import (
	"context"
	"errors"
	"time"

	"github.com/renohub/bidding-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AssignBidParams - параметры атомарного назначения предложения.
type AssignBidParams struct {
	ProjectID    string
	BidID        string
	ContractorID string
	Amount       float64
}

// BidRepository - интерфейс для работы с предложениями.
type BidRepository interface {
	CreateBid(ctx context.Context, contractorID string, bidReq models.BidRequest) (*models.Bid, error)
	GetBidByID(ctx context.Context, bidID string) (*models.Bid, error)
	GetBidByProjectAndContractor(ctx context.Context, projectID, contractorID string) (*models.Bid, error)
	GetProjectBids(ctx context.Context, projectID string) ([]models.Bid, error)
	AssignBidTx(ctx context.Context, params AssignBidParams) (*models.Project, error)
}

// PostgresBidRepository - реализация BidRepository для базы данных.
type PostgresBidRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresBidRepository создает новый экземпляр PostgresBidRepository.
func NewPostgresBidRepository(db *pgxpool.Pool) *PostgresBidRepository {
	return &PostgresBidRepository{DB: db}
}

const bidColumns = `id, project_id, contractor_id, amount, proposal, estimated_duration,
	estimated_start_date, estimated_end_date, status, created_at`

func scanBid(row pgx.Row) (*models.Bid, error) {
	var bid models.Bid
	err := row.Scan(
		&bid.ID,
		&bid.ProjectID,
		&bid.ContractorID,
		&bid.Amount,
		&bid.Proposal,
		&bid.EstimatedDuration,
		&bid.EstimatedStartDate,
		&bid.EstimatedEndDate,
		&bid.Status,
		&bid.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

// CreateBid создает новое предложение в статусе PENDING.
// Нарушение уникальности (project_id, contractor_id) переводится в Conflict:
// проверка дубликата в сервисе - лишь предварительная, арбитр - база данных.
func (r *PostgresBidRepository) CreateBid(ctx context.Context, contractorID string, bidReq models.BidRequest) (*models.Bid, error) {
	newBid := models.Bid{
		ID:                 uuid.New().String(),
		ProjectID:          bidReq.ProjectID,
		ContractorID:       contractorID,
		Amount:             bidReq.Amount,
		Proposal:           bidReq.Proposal,
		EstimatedDuration:  bidReq.EstimatedDuration,
		EstimatedStartDate: bidReq.EstimatedStartDate,
		EstimatedEndDate:   bidReq.EstimatedEndDate,
		Status:             models.PendingBid,
		CreatedAt:          time.Now().UTC(),
	}
	insertQuery := `INSERT INTO bid (id, project_id, contractor_id, amount, proposal, estimated_duration, estimated_start_date, estimated_end_date, status, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newBid.ID,
		newBid.ProjectID,
		newBid.ContractorID,
		newBid.Amount,
		newBid.Proposal,
		newBid.EstimatedDuration,
		newBid.EstimatedStartDate,
		newBid.EstimatedEndDate,
		newBid.Status,
		newBid.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, models.NewErrorResponse(models.KindConflict, "you have already submitted a bid for this project")
		}
		return nil, err
	}
	return &newBid, nil
}

// GetBidByID возвращает предложение по ID или nil, если оно не найдено.
func (r *PostgresBidRepository) GetBidByID(ctx context.Context, bidID string) (*models.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bid WHERE id = $1`
	bid, err := scanBid(r.DB.QueryRow(ctx, query, bidID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return bid, err
}

// GetBidByProjectAndContractor возвращает предложение подрядчика по проекту или nil.
func (r *PostgresBidRepository) GetBidByProjectAndContractor(ctx context.Context, projectID, contractorID string) (*models.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bid WHERE project_id = $1 AND contractor_id = $2`
	bid, err := scanBid(r.DB.QueryRow(ctx, query, projectID, contractorID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return bid, err
}

// GetProjectBids возвращает список предложений по проекту в порядке подачи.
func (r *PostgresBidRepository) GetProjectBids(ctx context.Context, projectID string) ([]models.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bid WHERE project_id = $1 ORDER BY created_at`
	rows, err := r.DB.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []models.Bid
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return nil, err
		}
		bids = append(bids, *bid)
	}
	return bids, rows.Err()
}

// AssignBidTx выполняет назначение предложения одной транзакцией:
// блокирует строку проекта, перепроверяет статус под блокировкой,
// переводит проект в ACTIVE и разом закрывает все предложения проекта.
// Из двух конкурирующих назначений ровно одно увидит OPEN_FOR_BIDS;
// второе получит InvalidState, а не общий конфликт.
func (r *PostgresBidRepository) AssignBidTx(ctx context.Context, params AssignBidParams) (*models.Project, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var status models.ProjectStatus
	lockQuery := `SELECT status FROM project WHERE id = $1 FOR UPDATE`
	err = tx.QueryRow(ctx, lockQuery, params.ProjectID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewErrorResponse(models.KindNotFound, "project not found")
	}
	if err != nil {
		return nil, err
	}
	if status != models.OpenForBidsProject {
		return nil, models.NewErrorResponse(models.KindInvalidState, "project is not in bidding phase")
	}

	updateProjectQuery := `UPDATE project
	                       SET status = $1, contractor_id = $2, selected_bid_id = $3, accepted_amount = $4
	                       WHERE id = $5 RETURNING ` + projectColumns
	project, err := scanProject(tx.QueryRow(
		ctx,
		updateProjectQuery,
		models.ActiveProject,
		params.ContractorID,
		params.BidID,
		params.Amount,
		params.ProjectID))
	if err != nil {
		return nil, err
	}

	updateBidsQuery := `UPDATE bid
	                    SET status = CASE WHEN id = $1 THEN $2::text ELSE $3::text END
	                    WHERE project_id = $4`
	_, err = tx.Exec(ctx, updateBidsQuery, params.BidID, models.AcceptedBid, models.RejectedBid, params.ProjectID)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return project, nil
}
