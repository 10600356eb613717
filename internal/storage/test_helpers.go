package storage

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя
func (f *TestDataFactory) CreateUser(t *testing.T, uid, email, name, passwordHash string) {
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, email, name, password_hash)
		VALUES ($1, $2, $3, $4)`,
		uid, email, name, passwordHash)
	require.NoError(t, err)
}

// CreateItinerary создает маршрут напрямую, минуя upsert
func (f *TestDataFactory) CreateItinerary(t *testing.T, userUID, startDate, daysJSON string) {
	_, err := f.storage.DB.Exec(`INSERT INTO itineraries (user_uid, start_date, days)
		VALUES ($1, $2, $3)`,
		userUID, startDate, daysJSON)
	require.NoError(t, err)
}

// TestUserData содержит стандартные тестовые данные пользователя
type TestUserData struct {
	UID          string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// GetTestUserData возвращает стандартные тестовые данные пользователя
func GetTestUserData() TestUserData {
	return TestUserData{
		UID:          uuid.New().String(),
		Email:        "test@example.com",
		Name:         "Test Traveler",
		PasswordHash: "hashedpassword",
	}
}
