package services

import (
	"context"

	"github.com/renohub/bidding-service/internal/auth"
	"github.com/renohub/bidding-service/internal/models"
	"github.com/renohub/bidding-service/internal/repository"
)

type MilestoneService struct {
	Repo     repository.MilestoneRepository
	Projects repository.ProjectRepository
}

// NewMilestoneService создает новый экземпляр MilestoneService.
func NewMilestoneService(repo repository.MilestoneRepository, projects repository.ProjectRepository) *MilestoneService {
	return &MilestoneService{Repo: repo, Projects: projects}
}

// CreateMilestone создает новый этап работ по проекту.
func (s *MilestoneService) CreateMilestone(ctx context.Context, actorID string, milestoneReq models.MilestoneRequest) (*models.Milestone, error) {
	if actorID == "" {
		return nil, models.NewErrorResponse(models.KindUnauthorized, "user is not identified")
	}
	if milestoneReq.Title == "" || milestoneReq.Description == "" || milestoneReq.DueDate.IsZero() {
		return nil, models.NewErrorResponse(models.KindValidation, "title, description and due date are required")
	}

	project, err := s.Projects.GetProjectByID(ctx, milestoneReq.ProjectID)
	if err != nil {
		return nil, models.NewErrorResponse(models.KindInternal, "internal server error")
	}
	if project == nil {
		return nil, models.NewErrorResponse(models.KindNotFound, "project not found")
	}

	if !auth.IsParticipant(project, actorID) {
		return nil, models.NewErrorResponse(models.KindForbidden, "not authorized to create milestones for this project")
	}

	newMilestone, err := s.Repo.CreateMilestone(ctx, milestoneReq)
	if err != nil {
		return nil, models.NewErrorResponse(models.KindInternal, "failed to create milestone")
	}
	return newMilestone, nil
}

// UpdateMilestoneStatus меняет статус этапа работ.
func (s *MilestoneService) UpdateMilestoneStatus(ctx context.Context, milestoneID string, status models.MilestoneStatus, actorID string) (*models.Milestone, error) {
	if actorID == "" {
		return nil, models.NewErrorResponse(models.KindUnauthorized, "user is not identified")
	}

	allowedStatuses := map[models.MilestoneStatus]bool{
		models.PendingMilestone:    true,
		models.InProgressMilestone: true,
		models.CompletedMilestone:  true,
	}
	if !allowedStatuses[status] {
		return nil, models.NewErrorResponse(models.KindValidation, "invalid milestone status")
	}

	milestone, err := s.Repo.GetMilestoneByID(ctx, milestoneID)
	if err != nil {
		return nil, models.NewErrorResponse(models.KindInternal, "internal server error")
	}
	if milestone == nil {
		return nil, models.NewErrorResponse(models.KindNotFound, "milestone not found")
	}

	project, err := s.Projects.GetProjectByID(ctx, milestone.ProjectID)
	if err != nil {
		return nil, models.NewErrorResponse(models.KindInternal, "internal server error")
	}
	if project == nil || !auth.IsParticipant(project, actorID) {
		return nil, models.NewErrorResponse(models.KindForbidden, "not authorized to update this milestone")
	}

	updatedMilestone, err := s.Repo.UpdateMilestoneStatus(ctx, milestoneID, status)
	if err != nil {
		return nil, models.NewErrorResponse(models.KindInternal, "failed to update milestone status")
	}
	return updatedMilestone, nil
}

// GetProjectMilestones возвращает этапы работ по проекту.
func (s *MilestoneService) GetProjectMilestones(ctx context.Context, projectID string) ([]models.Milestone, error) {
	if projectID == "" {
		return nil, models.NewErrorResponse(models.KindValidation, "projectId is required")
	}

	milestones, err := s.Repo.GetProjectMilestones(ctx, projectID)
	if err != nil {
		return nil, models.NewErrorResponse(models.KindInternal, "failed to retrieve milestones")
	}
	return milestones, nil
}
