package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/renohub/bidding-service/internal/services"
	"github.com/renohub/bidding-service/internal/utils"
)

// NotificationHandler - структура для обработки HTTP-запросов по уведомлениям.
type NotificationHandler struct {
	Service *services.NotificationService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewNotificationHandler создает новый экземпляр NotificationHandler.
func NewNotificationHandler(service *services.NotificationService, logger *log.Logger, timeout time.Duration) *NotificationHandler {
	return &NotificationHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetUserNotifications обрабатывает запросы на получение уведомлений пользователя.
func (h *NotificationHandler) GetUserNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")
	unreadOnlyStr := r.URL.Query().Get("unreadOnly")

	notifications, err := h.Service.GetUserNotifications(ctx, r.Header.Get("X-User-Id"), limitStr, offsetStr, unreadOnlyStr)
	if err != nil {
		respondError(w, h.Logger, err, "failed to retrieve notifications")
		return
	}

	if err = utils.SendJSONResponse(w, http.StatusOK, notifications); err != nil {
		h.Logger.Println(err)
	}
}

// MarkAsRead обрабатывает запросы на отметку уведомления прочитанным.
func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	notificationID := r.PathValue("notificationId")
	notification, err := h.Service.MarkNotificationAsRead(ctx, notificationID, r.Header.Get("X-User-Id"))
	if err != nil {
		respondError(w, h.Logger, err, "failed to mark notification as read")
		return
	}

	if err = utils.SendJSONResponse(w, http.StatusOK, notification); err != nil {
		h.Logger.Println(err)
	}
}

// MarkAllAsRead обрабатывает запросы на отметку всех уведомлений прочитанными.
func (h *NotificationHandler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	count, err := h.Service.MarkAllNotificationsAsRead(ctx, r.Header.Get("X-User-Id"))
	if err != nil {
		respondError(w, h.Logger, err, "failed to mark all notifications as read")
		return
	}

	if err = utils.SendJSONResponse(w, http.StatusOK, map[string]int64{"updated": count}); err != nil {
		h.Logger.Println(err)
	}
}
