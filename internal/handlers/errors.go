package handlers

import (
	"log"
	"net/http"

	"github.com/renohub/bidding-service/internal/models"
	"github.com/renohub/bidding-service/internal/utils"
)

// respondError переводит ошибку сервиса в HTTP-ответ: категория
// бизнес-ошибки дает статус, все остальное - 500 с общим сообщением.
func respondError(w http.ResponseWriter, logger *log.Logger, err error, fallbackMessage string) {
	logger.Println(err)
	if errorResponse, ok := err.(*models.ErrorResponse); ok {
		utils.SendErrorResponse(w, errorResponse.StatusCode(), errorResponse.Message)
		return
	}
	utils.SendErrorResponse(w, http.StatusInternalServerError, fallbackMessage)
}
