package models

import "time"

type BidStatus string // Статус предложения

const (
	PendingBid  BidStatus = "PENDING"  // Предложение подано и ждет решения
	AcceptedBid BidStatus = "ACCEPTED" // Предложение выбрано владельцем проекта
	RejectedBid BidStatus = "REJECTED" // Предложение отклонено
)

// Bid представляет модель предложения подрядчика.
type Bid struct {
	ID                 string    `json:"id"`
	ProjectID          string    `json:"projectId"`
	ContractorID       string    `json:"contractorId"`
	Amount             float64   `json:"amount"`
	Proposal           string    `json:"proposal"`
	EstimatedDuration  int       `json:"estimatedDuration"`
	EstimatedStartDate time.Time `json:"estimatedStartDate"`
	EstimatedEndDate   time.Time `json:"estimatedEndDate"`
	Status             BidStatus `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
}

// BidRequest представляет структуру запроса для создания предложения.
type BidRequest struct {
	ProjectID          string    `json:"projectId"`
	Amount             float64   `json:"amount"`
	Proposal           string    `json:"proposal"`
	EstimatedDuration  int       `json:"estimatedDuration"`
	EstimatedStartDate time.Time `json:"estimatedStartDate"`
	EstimatedEndDate   time.Time `json:"estimatedEndDate"`
}
