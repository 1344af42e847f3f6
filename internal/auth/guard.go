package auth

import "github.com/renohub/bidding-service/internal/models"

// Чистые предикаты авторизации. Сами они никогда не возвращают ошибку:
// вызывающий код переводит false в Forbidden с понятным сообщением.

// IsOwner проверяет, является ли пользователь владельцем проекта.
func IsOwner(project *models.Project, actorID string) bool {
	return project != nil && actorID != "" && project.OwnerID == actorID
}

// HasRole проверяет, есть ли у пользователя указанная роль.
func HasRole(user *models.User, role models.UserRole) bool {
	if user == nil {
		return false
	}
	for _, r := range user.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsParticipant проверяет, что пользователь - владелец проекта или назначенный подрядчик.
func IsParticipant(project *models.Project, actorID string) bool {
	if IsOwner(project, actorID) {
		return true
	}
	return project != nil && project.ContractorID != nil && actorID != "" && *project.ContractorID == actorID
}
