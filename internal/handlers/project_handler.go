package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/renohub/bidding-service/internal/models"
	"github.com/renohub/bidding-service/internal/services"
	"github.com/renohub/bidding-service/internal/utils"
)

// ProjectHandler - структура для обработки HTTP-запросов по проектам.
type ProjectHandler struct {
	Service *services.ProjectService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewProjectHandler создает новый экземпляр ProjectHandler.
func NewProjectHandler(service *services.ProjectService, logger *log.Logger, timeout time.Duration) *ProjectHandler {
	return &ProjectHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// CreateProject обрабатывает запросы на создание проекта.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var projectReq models.ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&projectReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	newProject, err := h.Service.CreateProject(ctx, r.Header.Get("X-User-Id"), projectReq)
	if err != nil {
		respondError(w, h.Logger, err, "failed to create project")
		return
	}

	if err = utils.SendJSONResponse(w, http.StatusCreated, newProject); err != nil {
		h.Logger.Println(err)
	}
}

// ListProjects обрабатывает запросы на получение списка проектов пользователя.
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	projects, err := h.Service.ListProjects(ctx, r.Header.Get("X-User-Id"))
	if err != nil {
		respondError(w, h.Logger, err, "failed to retrieve projects")
		return
	}

	if err = utils.SendJSONResponse(w, http.StatusOK, projects); err != nil {
		h.Logger.Println(err)
	}
}

// GetProject обрабатывает запросы на получение проекта с деталями.
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	projectID := r.PathValue("projectId")
	details, err := h.Service.GetProjectWithDetails(ctx, projectID, r.Header.Get("X-User-Id"))
	if err != nil {
		respondError(w, h.Logger, err, "failed to retrieve project")
		return
	}

	if err = utils.SendJSONResponse(w, http.StatusOK, details); err != nil {
		h.Logger.Println(err)
	}
}

// UpdateProjectStatus обрабатывает запросы на смену статуса проекта.
func (h *ProjectHandler) UpdateProjectStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var statusReq models.UpdateProjectStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&statusReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	projectID := r.PathValue("projectId")
	updatedProject, err := h.Service.UpdateProjectStatus(ctx, projectID, statusReq.Status, r.Header.Get("X-User-Id"))
	if err != nil {
		respondError(w, h.Logger, err, "failed to update project status")
		return
	}

	if err = utils.SendJSONResponse(w, http.StatusOK, updatedProject); err != nil {
		h.Logger.Println(err)
	}
}

// PublishProject обрабатывает запросы на публикацию проекта.
func (h *ProjectHandler) PublishProject(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var publishReq models.PublishProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&publishReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	projectID := r.PathValue("projectId")
	updatedProject, err := h.Service.PublishProject(ctx, projectID, r.Header.Get("X-User-Id"), publishReq.BidsCloseAt)
	if err != nil {
		respondError(w, h.Logger, err, "failed to publish project")
		return
	}

	if err = utils.SendJSONResponse(w, http.StatusOK, updatedProject); err != nil {
		h.Logger.Println(err)
	}
}
