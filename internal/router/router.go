package router

import (
	"net/http"

	"github.com/renohub/bidding-service/internal/handlers"
)

func InitRoutes(
	projectHandler *handlers.ProjectHandler,
	bidHandler *handlers.BidHandler,
	milestoneHandler *handlers.MilestoneHandler,
	notificationHandler *handlers.NotificationHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/ping", handlers.PingHandler)

	mux.HandleFunc("/api/projects", projectHandler.ListProjects)
	mux.HandleFunc("POST /api/projects/new", projectHandler.CreateProject)
	mux.HandleFunc("GET /api/projects/{projectId}", projectHandler.GetProject)
	mux.HandleFunc("PUT /api/projects/{projectId}/status", projectHandler.UpdateProjectStatus)
	mux.HandleFunc("POST /api/projects/{projectId}/publish", projectHandler.PublishProject)

	mux.HandleFunc("/api/bids/new", bidHandler.CreateBid)
	mux.HandleFunc("GET /api/projects/{projectId}/bids", bidHandler.GetProjectBids)
	mux.HandleFunc("POST /api/projects/{projectId}/bids/{bidId}/assign", bidHandler.AssignBid)

	mux.HandleFunc("/api/milestones/new", milestoneHandler.CreateMilestone)
	mux.HandleFunc("PUT /api/milestones/{milestoneId}/status", milestoneHandler.UpdateMilestoneStatus)
	mux.HandleFunc("GET /api/projects/{projectId}/milestones", milestoneHandler.GetProjectMilestones)

	mux.HandleFunc("/api/notifications", notificationHandler.GetUserNotifications)
	mux.HandleFunc("PUT /api/notifications/read_all", notificationHandler.MarkAllAsRead)
	mux.HandleFunc("PUT /api/notifications/{notificationId}/read", notificationHandler.MarkAsRead)

	return mux
}
