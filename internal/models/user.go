// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и роль.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int64     // Уникальный числовой идентификатор пользователя
	Username     string    // Имя пользователя (уникальное)
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // Хэш пароля пользователя, никогда не отдается наружу
	Role         string    // Роль пользователя, admin или user
	CreatedAt    time.Time // Дата регистрации
}

// Роли пользователей.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// PublicUser — публичное представление пользователя для ответов API.
// Не содержит хэш пароля.
type PublicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Public возвращает публичное представление пользователя.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
