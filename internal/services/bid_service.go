package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/renohub/bidding-service/internal/auth"
	"github.com/renohub/bidding-service/internal/models"
	"github.com/renohub/bidding-service/internal/repository"
)

type BidService struct {
	Repo     repository.BidRepository
	Projects repository.ProjectRepository
	Notifier AssignmentNotifier
	Logger   *log.Logger
}

// NewBidService создает новый экземпляр BidService.
func NewBidService(repo repository.BidRepository, projects repository.ProjectRepository, notifier AssignmentNotifier, logger *log.Logger) *BidService {
	return &BidService{Repo: repo, Projects: projects, Notifier: notifier, Logger: logger}
}

// CreateBid создает новое предложение подрядчика на открытый проект.
func (s *BidService) CreateBid(ctx context.Context, contractorID string, bidReq models.BidRequest) (*models.Bid, error) {
	if contractorID == "" {
		return nil, models.NewErrorResponse(models.KindUnauthorized, "user is not identified")
	}
	if bidReq.ProjectID == "" {
		return nil, models.NewErrorResponse(models.KindValidation, "projectId is required")
	}

	project, err := s.Projects.GetProjectByID(ctx, bidReq.ProjectID)
	if err != nil {
		return nil, models.NewErrorResponse(models.KindInternal, "internal server error")
	}
	if project == nil {
		return nil, models.NewErrorResponse(models.KindNotFound, "project not found")
	}

	if project.Status != models.OpenForBidsProject {
		return nil, models.NewErrorResponse(models.KindInvalidState, "project is not accepting bids")
	}
	if project.BidsCloseAt != nil && time.Now().After(*project.BidsCloseAt) {
		return nil, models.NewErrorResponse(models.KindInvalidState, "bidding period has ended")
	}

	// Предварительная проверка дубликата; окончательное слово за
	// уникальным индексом в базе (репозиторий вернет тот же Conflict).
	existingBid, err := s.Repo.GetBidByProjectAndContractor(ctx, bidReq.ProjectID, contractorID)
	if err != nil {
		return nil, models.NewErrorResponse(models.KindInternal, "internal server error")
	}
	if existingBid != nil {
		return nil, models.NewErrorResponse(models.KindConflict, "you have already submitted a bid for this project")
	}

	if bidReq.Amount <= 0 {
		return nil, models.NewErrorResponse(models.KindValidation, "bid amount must be positive")
	}
	bidReq.Proposal = strings.TrimSpace(bidReq.Proposal)
	if len(bidReq.Proposal) < 10 {
		return nil, models.NewErrorResponse(models.KindValidation, "proposal must be at least 10 characters")
	}
	if bidReq.EstimatedDuration <= 0 {
		return nil, models.NewErrorResponse(models.KindValidation, "estimated duration must be positive")
	}
	if bidReq.EstimatedStartDate.IsZero() || bidReq.EstimatedEndDate.IsZero() {
		return nil, models.NewErrorResponse(models.KindValidation, "estimated start and end dates are required")
	}
	if bidReq.EstimatedStartDate.After(bidReq.EstimatedEndDate) {
		return nil, models.NewErrorResponse(models.KindValidation, "estimated start date must be before or equal to end date")
	}

	newBid, err := s.Repo.CreateBid(ctx, contractorID, bidReq)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			return nil, errorResponse
		}
		return nil, models.NewErrorResponse(models.KindInternal, "failed to create bid")
	}
	return newBid, nil
}

// AssignBid назначает выбранное предложение: проект переходит в ACTIVE,
// выбранное предложение становится ACCEPTED, остальные - REJECTED, одной
// транзакцией. Предусловия проверяются по порядку, до каких-либо записей.
func (s *BidService) AssignBid(ctx context.Context, projectID, bidID, ownerID string) (*models.Project, error) {
	project, err := s.Projects.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, models.NewErrorResponse(models.KindInternal, "internal server error")
	}
	if project == nil {
		return nil, models.NewErrorResponse(models.KindNotFound, "project not found")
	}

	if !auth.IsOwner(project, ownerID) {
		return nil, models.NewErrorResponse(models.KindForbidden, "not authorized to assign bids for this project")
	}

	if project.Status != models.OpenForBidsProject {
		return nil, models.NewErrorResponse(models.KindInvalidState, "project is not in bidding phase")
	}

	bid, err := s.Repo.GetBidByID(ctx, bidID)
	if err != nil {
		return nil, models.NewErrorResponse(models.KindInternal, "internal server error")
	}
	if bid == nil || bid.ProjectID != projectID {
		return nil, models.NewErrorResponse(models.KindNotFound, "bid not found")
	}

	allBids, err := s.Repo.GetProjectBids(ctx, projectID)
	if err != nil {
		return nil, models.NewErrorResponse(models.KindInternal, "internal server error")
	}

	updatedProject, err := s.Repo.AssignBidTx(ctx, repository.AssignBidParams{
		ProjectID:    projectID,
		BidID:        bidID,
		ContractorID: bid.ContractorID,
		Amount:       bid.Amount,
	})
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			return nil, errorResponse
		}
		return nil, models.NewErrorResponse(models.KindInternal, "failed to assign bid")
	}

	var rejectedBidIDs []string
	for _, b := range allBids {
		if b.ID != bidID {
			rejectedBidIDs = append(rejectedBidIDs, b.ID)
		}
	}

	// Назначение уже зафиксировано: сбой рассылки не должен выглядеть
	// для вызывающего как сбой назначения.
	if err := s.Notifier.NotifyAssignment(ctx, projectID, bidID, rejectedBidIDs); err != nil {
		s.Logger.Printf("failed to send assignment notifications for project %s: %v", projectID, err)
	}

	return updatedProject, nil
}

// GetProjectBids возвращает предложения по проекту владельцу или назначенному подрядчику.
func (s *BidService) GetProjectBids(ctx context.Context, projectID, userID string) ([]models.Bid, error) {
	if userID == "" {
		return nil, models.NewErrorResponse(models.KindUnauthorized, "user is not identified")
	}

	project, err := s.Projects.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, models.NewErrorResponse(models.KindInternal, "internal server error")
	}
	if project == nil {
		return nil, models.NewErrorResponse(models.KindNotFound, "project not found")
	}

	if !auth.IsParticipant(project, userID) {
		return nil, models.NewErrorResponse(models.KindForbidden, "not authorized to view bids for this project")
	}

	bids, err := s.Repo.GetProjectBids(ctx, projectID)
	if err != nil {
		return nil, models.NewErrorResponse(models.KindInternal, "failed to retrieve bids")
	}
	return bids, nil
}
