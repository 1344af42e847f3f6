package models

import "time"

type MilestoneStatus string // Статус этапа работ

const (
	PendingMilestone    MilestoneStatus = "PENDING"     // Этап запланирован
	InProgressMilestone MilestoneStatus = "IN_PROGRESS" // Этап в работе
	CompletedMilestone  MilestoneStatus = "COMPLETED"   // Этап завершен
)

// Milestone представляет модель этапа работ по проекту.
type Milestone struct {
	ID          string          `json:"id"`
	ProjectID   string          `json:"projectId"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	DueDate     time.Time       `json:"dueDate"`
	Status      MilestoneStatus `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// MilestoneRequest представляет структуру запроса для создания этапа работ.
type MilestoneRequest struct {
	ProjectID   string    `json:"projectId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
}
