package lifecycle

import (
	"fmt"

	"github.com/renohub/bidding-service/internal/models"
)

// StateMachine описывает граф допустимых переходов статуса проекта.
// Каждый известный статус обязан иметь запись, возможно пустую,
// чтобы новый статус не проваливался молча в "переходы запрещены".
type StateMachine struct {
	transitions map[models.ProjectStatus][]models.ProjectStatus
}

// NewProjectStateMachine создает машину состояний проекта.
func NewProjectStateMachine() *StateMachine {
	return &StateMachine{
		transitions: map[models.ProjectStatus][]models.ProjectStatus{
			models.DraftProject:       {models.OpenForBidsProject, models.CancelledProject},
			models.OpenForBidsProject: {models.ActiveProject, models.CancelledProject},
			models.ActiveProject:      {models.CompletedProject, models.CancelledProject},
			models.CompletedProject:   {},
			models.CancelledProject:   {},
		},
	}
}

// CanTransition проверяет, разрешен ли переход из статуса from в статус to.
func (m *StateMachine) CanTransition(from, to models.ProjectStatus) bool {
	for _, next := range m.transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedNext возвращает список статусов, в которые разрешен переход из from.
func (m *StateMachine) AllowedNext(from models.ProjectStatus) []models.ProjectStatus {
	return m.transitions[from]
}

// IsTerminal проверяет, является ли статус терминальным.
func (m *StateMachine) IsTerminal(status models.ProjectStatus) bool {
	next, ok := m.transitions[status]
	return ok && len(next) == 0
}

// Validate проверяет, что у каждого известного статуса определен набор переходов.
func (m *StateMachine) Validate() error {
	for _, status := range models.AllProjectStatuses() {
		if _, ok := m.transitions[status]; !ok {
			return fmt.Errorf("no transitions defined for project status %s", status)
		}
	}
	return nil
}
