// Package password хеширует пароли пользователей через bcrypt.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt учитывает только первые 72 байта, более длинный пароль
// отклоняется, чтобы не хешировать усечённое значение.
const maxLen = 72

// Hash возвращает bcrypt-хэш пароля для хранения в базе данных.
func Hash(raw string) (string, error) {
	const op = "password.Hash"
	if len(raw) > maxLen {
		return "", fmt.Errorf("%s: password longer than %d bytes", op, maxLen)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Verify сравнивает сохранённый bcrypt-хэш с введённым паролем.
// Возвращает nil при совпадении.
func Verify(storedHash, raw string) error {
	const op = "password.Verify"
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(raw)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
