// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и дату создания.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
// UID служит ключом владельца маршрута: один пользователь — не более
// одной записи маршрута.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта (уникальная)
	Name         string    // Отображаемое имя
	PasswordHash string    // bcrypt-хэш пароля, никогда не отдаётся наружу
	CreatedAt    time.Time // Дата создания учётной записи
}

// PublicUser — представление пользователя для ответов API, без хэша пароля.
type PublicUser struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Public возвращает представление пользователя без секретных полей.
func (u *User) Public() PublicUser {
	return PublicUser{
		UID:   u.UID,
		Email: u.Email,
		Name:  u.Name,
	}
}
