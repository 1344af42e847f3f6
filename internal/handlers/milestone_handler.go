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

// MilestoneHandler - структура для обработки HTTP-запросов по этапам работ.
type MilestoneHandler struct {
	Service *services.MilestoneService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewMilestoneHandler создает новый экземпляр MilestoneHandler.
func NewMilestoneHandler(service *services.MilestoneService, logger *log.Logger, timeout time.Duration) *MilestoneHandler {
	return &MilestoneHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// CreateMilestone обрабатывает запросы на создание этапа работ.
func (h *MilestoneHandler) CreateMilestone(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var milestoneReq models.MilestoneRequest
	if err := json.NewDecoder(r.Body).Decode(&milestoneReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	newMilestone, err := h.Service.CreateMilestone(ctx, r.Header.Get("X-User-Id"), milestoneReq)
	if err != nil {
		respondError(w, h.Logger, err, "failed to create milestone")
		return
	}

	if err = utils.SendJSONResponse(w, http.StatusCreated, newMilestone); err != nil {
		h.Logger.Println(err)
	}
}

// UpdateMilestoneStatus обрабатывает запросы на смену статуса этапа работ.
func (h *MilestoneHandler) UpdateMilestoneStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var statusReq struct {
		Status models.MilestoneStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&statusReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	milestoneID := r.PathValue("milestoneId")
	updatedMilestone, err := h.Service.UpdateMilestoneStatus(ctx, milestoneID, statusReq.Status, r.Header.Get("X-User-Id"))
	if err != nil {
		respondError(w, h.Logger, err, "failed to update milestone status")
		return
	}

	if err = utils.SendJSONResponse(w, http.StatusOK, updatedMilestone); err != nil {
		h.Logger.Println(err)
	}
}

// GetProjectMilestones обрабатывает запросы на получение этапов работ по проекту.
func (h *MilestoneHandler) GetProjectMilestones(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	projectID := r.PathValue("projectId")
	milestones, err := h.Service.GetProjectMilestones(ctx, projectID)
	if err != nil {
		respondError(w, h.Logger, err, "failed to retrieve milestones")
		return
	}

	if err = utils.SendJSONResponse(w, http.StatusOK, milestones); err != nil {
		h.Logger.Println(err)
	}
}
