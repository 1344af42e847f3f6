package models

import "time"

type UserRole string // Роль пользователя

const (
	HomeownerRole  UserRole = "HOMEOWNER"  // Заказчик: создает проекты и выбирает предложения
	ContractorRole UserRole = "CONTRACTOR" // Подрядчик: подает предложения на открытые проекты
)

// User представляет модель пользователя. Выдача учетных данных
// (пароли, токены) остается за внешним сервисом аутентификации.
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Roles     []UserRole `json:"roles"`
	CreatedAt time.Time  `json:"createdAt"`
}
