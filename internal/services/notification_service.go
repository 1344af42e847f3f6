package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/renohub/bidding-service/internal/models"
	"github.com/renohub/bidding-service/internal/repository"
	"github.com/renohub/bidding-service/internal/utils"
)

// AssignmentNotifier - рассылка уведомлений о совершившихся изменениях.
// Вызывается строго после фиксации транзакции; ошибки рассылки логируются
// вызывающей стороной и никогда не отменяют уже совершенную операцию.
type AssignmentNotifier interface {
	NotifyAssignment(ctx context.Context, projectID, acceptedBidID string, rejectedBidIDs []string) error
	NotifyStatusChange(ctx context.Context, projectID string, newStatus models.ProjectStatus, userID string) error
}

type NotificationService struct {
	Repo     repository.NotificationRepository
	Projects repository.ProjectRepository
	Bids     repository.BidRepository
}

// NewNotificationService создает новый экземпляр NotificationService.
func NewNotificationService(repo repository.NotificationRepository, projects repository.ProjectRepository, bids repository.BidRepository) *NotificationService {
	return &NotificationService{Repo: repo, Projects: projects, Bids: bids}
}

// NotifyAssignment рассылает уведомления по итогам назначения предложения:
// одно BID_ACCEPTED выбранному подрядчику, по одному BID_REJECTED остальным
// и ровно одно PROJECT_ASSIGNED владельцу проекта. Идентификаторы, не
// нашедшиеся среди предложений проекта, молча пропускаются.
// Дедупликации и повторов нет: каждая попытка - не более одного уведомления
// на получателя.
func (s *NotificationService) NotifyAssignment(ctx context.Context, projectID, acceptedBidID string, rejectedBidIDs []string) error {
	project, err := s.Projects.GetProjectByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return models.NewErrorResponse(models.KindNotFound, "project not found")
	}

	bids, err := s.Bids.GetProjectBids(ctx, projectID)
	if err != nil {
		return err
	}
	bidsByID := make(map[string]models.Bid, len(bids))
	for _, bid := range bids {
		bidsByID[bid.ID] = bid
	}

	if acceptedBid, ok := bidsByID[acceptedBidID]; ok {
		acceptedID := acceptedBidID
		_, err = s.Repo.CreateNotification(ctx, models.Notification{
			UserID:    acceptedBid.ContractorID,
			Type:      models.BidAcceptedNotification,
			Title:     "Bid Accepted",
			Message:   fmt.Sprintf("Your bid for project %q has been accepted!", project.Title),
			ProjectID: &project.ID,
			BidID:     &acceptedID,
		})
		if err != nil {
			return err
		}
	}

	for _, bidID := range rejectedBidIDs {
		rejectedBid, ok := bidsByID[bidID]
		if !ok {
			continue
		}
		rejectedID := bidID
		_, err = s.Repo.CreateNotification(ctx, models.Notification{
			UserID:    rejectedBid.ContractorID,
			Type:      models.BidRejectedNotification,
			Title:     "Bid Not Selected",
			Message:   fmt.Sprintf("Your bid for project %q was not selected.", project.Title),
			ProjectID: &project.ID,
			BidID:     &rejectedID,
		})
		if err != nil {
			return err
		}
	}

	_, err = s.Repo.CreateNotification(ctx, models.Notification{
		UserID:    project.OwnerID,
		Type:      models.ProjectAssignedNotification,
		Title:     "Project Assigned",
		Message:   fmt.Sprintf("Your project %q has been assigned to a contractor.", project.Title),
		ProjectID: &project.ID,
	})
	return err
}

// NotifyStatusChange записывает уведомление о смене статуса проекта.
// Уведомление необязательное: отсутствующий проект или незнакомый статус -
// это no-op, а не ошибка.
func (s *NotificationService) NotifyStatusChange(ctx context.Context, projectID string, newStatus models.ProjectStatus, userID string) error {
	project, err := s.Projects.GetProjectByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return nil
	}

	statusMessages := map[models.ProjectStatus]string{
		models.OpenForBidsProject: "Your project is now open for contractor bids.",
		models.ActiveProject:      "Your project is now active and work has begun.",
		models.CompletedProject:   "Your project has been marked as completed.",
		models.CancelledProject:   "Your project has been cancelled.",
	}
	message, ok := statusMessages[newStatus]
	if !ok {
		return nil
	}

	title := "Project " + strings.ToLower(strings.ReplaceAll(string(newStatus), "_", " "))
	_, err = s.Repo.CreateNotification(ctx, models.Notification{
		UserID:    userID,
		Type:      models.ProjectStatusChangedNotification,
		Title:     title,
		Message:   message,
		ProjectID: &project.ID,
	})
	return err
}

// GetUserNotifications возвращает уведомления пользователя.
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID, limitStr, offsetStr, unreadOnlyStr string) ([]models.Notification, error) {
	if userID == "" {
		return nil, models.NewErrorResponse(models.KindUnauthorized, "user is not identified")
	}

	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(models.KindValidation, err.Error())
	}

	unreadOnly := unreadOnlyStr == "true"
	return s.Repo.GetUserNotifications(ctx, userID, limit, offset, unreadOnly)
}

// MarkNotificationAsRead помечает уведомление пользователя прочитанным.
func (s *NotificationService) MarkNotificationAsRead(ctx context.Context, notificationID, userID string) (*models.Notification, error) {
	if userID == "" {
		return nil, models.NewErrorResponse(models.KindUnauthorized, "user is not identified")
	}
	if notificationID == "" {
		return nil, models.NewErrorResponse(models.KindValidation, "notificationId is required")
	}

	notification, err := s.Repo.MarkAsRead(ctx, notificationID, userID)
	if err != nil {
		return nil, models.NewErrorResponse(models.KindInternal, "failed to mark notification as read")
	}
	if notification == nil {
		return nil, models.NewErrorResponse(models.KindNotFound, "notification not found")
	}
	return notification, nil
}

// MarkAllNotificationsAsRead помечает все уведомления пользователя прочитанными.
func (s *NotificationService) MarkAllNotificationsAsRead(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, models.NewErrorResponse(models.KindUnauthorized, "user is not identified")
	}

	count, err := s.Repo.MarkAllAsRead(ctx, userID)
	if err != nil {
		return 0, models.NewErrorResponse(models.KindInternal, "failed to mark all notifications as read")
	}
	return count, nil
}
