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

// BidHandler - структура для обработки HTTP-запросов по предложениям.
type BidHandler struct {
	Service *services.BidService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewBidHandler создает новый экземпляр BidHandler.
func NewBidHandler(service *services.BidService, logger *log.Logger, timeout time.Duration) *BidHandler {
	return &BidHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// CreateBid обрабатывает запросы на создание предложения.
func (h *BidHandler) CreateBid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var bidReq models.BidRequest
	if err := json.NewDecoder(r.Body).Decode(&bidReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	newBid, err := h.Service.CreateBid(ctx, r.Header.Get("X-User-Id"), bidReq)
	if err != nil {
		respondError(w, h.Logger, err, "failed to create bid")
		return
	}

	if err = utils.SendJSONResponse(w, http.StatusCreated, newBid); err != nil {
		h.Logger.Println(err)
	}
}

// AssignBid обрабатывает запросы на назначение предложения.
func (h *BidHandler) AssignBid(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	projectID := r.PathValue("projectId")
	bidID := r.PathValue("bidId")

	updatedProject, err := h.Service.AssignBid(ctx, projectID, bidID, r.Header.Get("X-User-Id"))
	if err != nil {
		respondError(w, h.Logger, err, "failed to assign bid")
		return
	}

	if err = utils.SendJSONResponse(w, http.StatusOK, updatedProject); err != nil {
		h.Logger.Println(err)
	}
}

// GetProjectBids обрабатывает запросы на получение предложений по проекту.
func (h *BidHandler) GetProjectBids(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	projectID := r.PathValue("projectId")
	bids, err := h.Service.GetProjectBids(ctx, projectID, r.Header.Get("X-User-Id"))
	if err != nil {
		respondError(w, h.Logger, err, "failed to retrieve bids")
		return
	}

	if err = utils.SendJSONResponse(w, http.StatusOK, bids); err != nil {
		h.Logger.Println(err)
	}
}
