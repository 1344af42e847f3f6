package models

import "time"

type ProjectStatus string // Статус проекта

const (
	DraftProject       ProjectStatus = "DRAFT"         // Проект создан и не опубликован
	OpenForBidsProject ProjectStatus = "OPEN_FOR_BIDS" // Проект открыт для предложений
	ActiveProject      ProjectStatus = "ACTIVE"        // Подрядчик назначен, работа идет
	CompletedProject   ProjectStatus = "COMPLETED"     // Проект завершен
	CancelledProject   ProjectStatus = "CANCELLED"     // Проект отменен
)

// AllProjectStatuses возвращает все известные статусы проекта.
func AllProjectStatuses() []ProjectStatus {
	return []ProjectStatus{
		DraftProject,
		OpenForBidsProject,
		ActiveProject,
		CompletedProject,
		CancelledProject,
	}
}

// Project представляет модель проекта.
type Project struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	OwnerID        string        `json:"ownerId"`
	ContractorID   *string       `json:"contractorId,omitempty"`
	Status         ProjectStatus `json:"status"`
	Budget         float64       `json:"budget"`
	Address        string        `json:"address"`
	StartDate      time.Time     `json:"startDate"`
	EndDate        time.Time     `json:"endDate"`
	BidsCloseAt    *time.Time    `json:"bidsCloseAt,omitempty"`
	SelectedBidID  *string       `json:"selectedBidId,omitempty"`
	AcceptedAmount *float64      `json:"acceptedAmount,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// ProjectRequest представляет структуру запроса для создания проекта.
type ProjectRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Budget      float64   `json:"budget"`
	Address     string    `json:"address"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
}

// PublishProjectRequest представляет структуру запроса для публикации проекта.
type PublishProjectRequest struct {
	BidsCloseAt time.Time `json:"bidsCloseAt"`
}

// UpdateProjectStatusRequest представляет структуру запроса для смены статуса проекта.
type UpdateProjectStatusRequest struct {
	Status ProjectStatus `json:"status"`
}

// ProjectDetails - проект вместе с его предложениями и этапами работ.
type ProjectDetails struct {
	Project    Project     `json:"project"`
	Bids       []Bid       `json:"bids"`
	Milestones []Milestone `json:"milestones"`
}
