// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/itinerary-planner/internal/lib/jwt"
	"github.com/magabrotheeeer/itinerary-planner/internal/lib/password"
	"github.com/magabrotheeeer/itinerary-planner/internal/models"
	"github.com/magabrotheeeer/itinerary-planner/internal/storage"
)

// ErrInvalidCredentials возвращается при неизвестной почте и при
// неверном пароле без различия, чтобы не раскрывать существование
// учётной записи.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrSessionInvalid возвращается, когда токен сессии не разбирается
// или ссылается на пользователя, которого больше нет.
var ErrSessionInvalid = errors.New("session is not valid")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по почте или storage.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByUID возвращает пользователя по UID или storage.ErrUserNotFound.
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
}

// AuthService отвечает за регистрацию, вход и резолв сессионных токенов.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и сразу
// открывает сессию. Возвращает пользователя и токен сессии.
func (s *AuthService) Register(ctx context.Context, email, name, rawPassword string) (*models.User, string, error) {
	hashed, err := password.Hash(rawPassword)
	if err != nil {
		return nil, "", err
	}
	user := models.User{
		UID:          uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hashed,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return nil, "", err
	}
	user.UID = uid

	token, err := s.jwtMaker.GenerateToken(user.UID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Login проверяет пароль пользователя и открывает сессию.
// И для неизвестной почты, и для неверного пароля возвращается один и
// тот же ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrUserNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if err := password.Verify(user.PasswordHash, rawPassword); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(user.UID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Resolve разбирает токен сессии и возвращает её владельца.
// Токен, ссылающийся на удалённого пользователя, отклоняется как
// невалидная сессия, а не как внутренняя ошибка.
func (s *AuthService) Resolve(ctx context.Context, token string) (*models.User, error) {
	const op = "services.auth.Resolve"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrSessionInvalid)
	}
	user, err := s.users.GetUserByUID(ctx, claims.Subject)
	if errors.Is(err, storage.ErrUserNotFound) {
		return nil, fmt.Errorf("%s: %w", op, ErrSessionInvalid)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
