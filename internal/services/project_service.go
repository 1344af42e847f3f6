package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/renohub/bidding-service/internal/auth"
	"github.com/renohub/bidding-service/internal/lifecycle"
	"github.com/renohub/bidding-service/internal/models"
	"github.com/renohub/bidding-service/internal/repository"
)

type ProjectService struct {
	Repo       repository.ProjectRepository
	Users      repository.UserRepository
	Bids       repository.BidRepository
	Milestones repository.MilestoneRepository
	Machine    *lifecycle.StateMachine
	Notifier   AssignmentNotifier
	Logger     *log.Logger
}

// NewProjectService создает новый экземпляр ProjectService.
func NewProjectService(
	repo repository.ProjectRepository,
	users repository.UserRepository,
	bids repository.BidRepository,
	milestones repository.MilestoneRepository,
	machine *lifecycle.StateMachine,
	notifier AssignmentNotifier,
	logger *log.Logger,
) *ProjectService {
	return &ProjectService{
		Repo:       repo,
		Users:      users,
		Bids:       bids,
		Milestones: milestones,
		Machine:    machine,
		Notifier:   notifier,
		Logger:     logger,
	}
}

// CreateProject создает новый проект в статусе DRAFT.
func (s *ProjectService) CreateProject(ctx context.Context, ownerID string, projectReq models.ProjectRequest) (*models.Project, error) {
	if ownerID == "" {
		return nil, models.NewErrorResponse(models.KindUnauthorized, "user is not identified")
	}
	if projectReq.Title == "" || projectReq.Description == "" || projectReq.Address == "" ||
		projectReq.StartDate.IsZero() || projectReq.EndDate.IsZero() {
		return nil, models.NewErrorResponse(models.KindValidation, "missing required fields")
	}

	owner, err := s.Users.GetUserByID(ctx, ownerID)
	if err != nil {
		return nil, models.NewErrorResponse(models.KindInternal, "internal server error")
	}
	if owner == nil {
		return nil, models.NewErrorResponse(models.KindNotFound, "user not found")
	}
	if !auth.HasRole(owner, models.HomeownerRole) {
		return nil, models.NewErrorResponse(models.KindForbidden, "only homeowners can create projects")
	}

	if projectReq.Budget <= 0 {
		return nil, models.NewErrorResponse(models.KindValidation, "budget must be a positive number")
	}
	projectReq.Address = strings.TrimSpace(projectReq.Address)
	if len(projectReq.Address) < 10 {
		return nil, models.NewErrorResponse(models.KindValidation, "address must be at least 10 characters long")
	}
	if projectReq.StartDate.After(projectReq.EndDate) {
		return nil, models.NewErrorResponse(models.KindValidation, "startDate must be before or equal to endDate")
	}

	newProject, err := s.Repo.CreateProject(ctx, ownerID, projectReq)
	if err != nil {
		return nil, models.NewErrorResponse(models.KindInternal, "failed to create project")
	}
	return newProject, nil
}

// PublishProject переводит проект из DRAFT в OPEN_FOR_BIDS
// с обязательным сроком приема предложений в будущем.
func (s *ProjectService) PublishProject(ctx context.Context, projectID, ownerID string, bidsCloseAt time.Time) (*models.Project, error) {
	project, err := s.Repo.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, models.NewErrorResponse(models.KindInternal, "internal server error")
	}
	if project == nil {
		return nil, models.NewErrorResponse(models.KindNotFound, "project not found")
	}

	if !auth.IsOwner(project, ownerID) {
		return nil, models.NewErrorResponse(models.KindForbidden, "not authorized to publish this project")
	}

	if project.Status != models.DraftProject {
		return nil, models.NewErrorResponse(models.KindInvalidState, "only draft projects can be published")
	}

	if bidsCloseAt.IsZero() || !bidsCloseAt.After(time.Now()) {
		return nil, models.NewErrorResponse(models.KindValidation, "bids close date must be in the future")
	}

	updatedProject, err := s.Repo.PublishProject(ctx, projectID, bidsCloseAt)
	if err != nil {
		return nil, models.NewErrorResponse(models.KindInternal, "failed to publish project")
	}

	s.notifyStatusChange(ctx, projectID, models.OpenForBidsProject, project.OwnerID)
	return updatedProject, nil
}

// UpdateProjectStatus меняет статус проекта по машине состояний.
// Переход в ACTIVE через этот путь запрещен: активировать проект
// можно только назначением предложения, иначе проект окажется ACTIVE
// без подрядчика и выбранного предложения.
func (s *ProjectService) UpdateProjectStatus(ctx context.Context, projectID string, newStatus models.ProjectStatus, actorID string) (*models.Project, error) {
	if projectID == "" || newStatus == "" || actorID == "" {
		return nil, models.NewErrorResponse(models.KindValidation, "projectId, status and actor are required")
	}

	project, err := s.Repo.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, models.NewErrorResponse(models.KindInternal, "internal server error")
	}
	if project == nil {
		return nil, models.NewErrorResponse(models.KindNotFound, "project not found")
	}

	if !auth.IsOwner(project, actorID) {
		return nil, models.NewErrorResponse(models.KindForbidden, "not authorized to update project status")
	}

	if newStatus == models.ActiveProject {
		return nil, models.NewErrorResponse(models.KindInvalidTransition, "a project becomes active only through bid assignment")
	}
	if !s.Machine.CanTransition(project.Status, newStatus) {
		return nil, models.NewErrorResponse(models.KindInvalidTransition,
			fmt.Sprintf("invalid status transition from %s to %s", project.Status, newStatus))
	}

	updatedProject, err := s.Repo.UpdateProjectStatus(ctx, projectID, newStatus)
	if err != nil {
		return nil, models.NewErrorResponse(models.KindInternal, "failed to update project status")
	}

	s.notifyStatusChange(ctx, projectID, newStatus, project.OwnerID)
	return updatedProject, nil
}

// GetProjectWithDetails возвращает проект вместе с предложениями и этапами работ.
func (s *ProjectService) GetProjectWithDetails(ctx context.Context, projectID, userID string) (*models.ProjectDetails, error) {
	project, err := s.Repo.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, models.NewErrorResponse(models.KindInternal, "internal server error")
	}
	if project == nil {
		return nil, models.NewErrorResponse(models.KindNotFound, "project not found")
	}

	if !auth.IsParticipant(project, userID) {
		return nil, models.NewErrorResponse(models.KindForbidden, "not authorized to view this project")
	}

	bids, err := s.Bids.GetProjectBids(ctx, projectID)
	if err != nil {
		return nil, models.NewErrorResponse(models.KindInternal, "failed to retrieve project details")
	}
	milestones, err := s.Milestones.GetProjectMilestones(ctx, projectID)
	if err != nil {
		return nil, models.NewErrorResponse(models.KindInternal, "failed to retrieve project details")
	}

	return &models.ProjectDetails{
		Project:    *project,
		Bids:       bids,
		Milestones: milestones,
	}, nil
}

// ListProjects возвращает список проектов, видимых пользователю:
// заказчику - свои плюс открытые, подрядчику - открытые.
func (s *ProjectService) ListProjects(ctx context.Context, userID string) ([]models.Project, error) {
	if userID == "" {
		return nil, models.NewErrorResponse(models.KindUnauthorized, "user is not identified")
	}

	user, err := s.Users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, models.NewErrorResponse(models.KindInternal, "internal server error")
	}
	if user == nil {
		return nil, models.NewErrorResponse(models.KindNotFound, "user not found")
	}

	var projects []models.Project
	if auth.HasRole(user, models.HomeownerRole) {
		projects, err = s.Repo.GetOwnedOrOpenProjects(ctx, userID)
	} else {
		projects, err = s.Repo.GetOpenProjects(ctx)
	}
	if err != nil {
		return nil, models.NewErrorResponse(models.KindInternal, "failed to retrieve projects")
	}
	return projects, nil
}

// notifyStatusChange отправляет необязательное уведомление о смене статуса.
// Смена статуса уже зафиксирована, поэтому ошибка рассылки только логируется.
func (s *ProjectService) notifyStatusChange(ctx context.Context, projectID string, newStatus models.ProjectStatus, ownerID string) {
	if err := s.Notifier.NotifyStatusChange(ctx, projectID, newStatus, ownerID); err != nil {
		s.Logger.Printf("failed to send status change notification for project %s: %v", projectID, err)
	}
}
