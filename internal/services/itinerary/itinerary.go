// Package services содержит бизнес-логику для работы с маршрутами и кешированием.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/itinerary-planner/internal/models"
)

// cacheTTL — время жизни закешированного маршрута.
const cacheTTL = time.Hour

// ItineraryRepository определяет методы для работы с маршрутами в хранилище.
type ItineraryRepository interface {
	// GetItinerary возвращает маршрут владельца или storage.ErrItineraryNotFound.
	GetItinerary(ctx context.Context, userUID string) (*models.Itinerary, error)
	// SaveItinerary атомарно вставляет или полностью перезаписывает маршрут.
	SaveItinerary(ctx context.Context, userUID string, itinerary models.Itinerary) (*models.Itinerary, error)
	// DeleteItinerary удаляет маршрут и возвращает количество удалённых записей.
	DeleteItinerary(ctx context.Context, userUID string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// ItineraryService реализует бизнес-логику работы с маршрутами, включая кеширование.
// Ключ владельца приходит только из аутентифицированной сессии; сервис
// не выполняет ни валидацию тела (её делает API-слой), ни авторизацию.
type ItineraryService struct {
	repo  ItineraryRepository
	cache Cache
	log   *slog.Logger
}

// NewItineraryService создает новый экземпляр ItineraryService.
func NewItineraryService(repo ItineraryRepository, cache Cache, log *slog.Logger) *ItineraryService {
	return &ItineraryService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func cacheKey(userUID string) string {
	return fmt.Sprintf("itinerary:%s", userUID)
}

// Get возвращает маршрут владельца, используя кеш или репозиторий.
// Отсутствие записи пробрасывается как storage.ErrItineraryNotFound,
// преобразование в пустой маршрут — ответственность API-слоя.
func (s *ItineraryService) Get(ctx context.Context, userUID string) (*models.Itinerary, error) {
	var cached models.Itinerary
	key := cacheKey(userUID)
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		s.log.Warn("failed to read itinerary from cache", slog.String("key", key), slog.Any("err", err))
	}
	if found {
		return &cached, nil
	}

	itinerary, err := s.repo.GetItinerary(ctx, userUID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(key, itinerary, cacheTTL); err != nil {
		s.log.Warn("failed to cache itinerary", slog.String("key", key), slog.Any("err", err))
	}
	return itinerary, nil
}

// Save выполняет upsert маршрута и обновляет кеш сохранённым значением.
// Возвращает сохранённое значение без какого-либо обогащения.
func (s *ItineraryService) Save(ctx context.Context, userUID string, itinerary models.Itinerary) (*models.Itinerary, error) {
	saved, err := s.repo.SaveItinerary(ctx, userUID, itinerary)
	if err != nil {
		return nil, err
	}

	s.log.Info("saved itinerary", slog.String("user_uid", userUID), slog.Int("days", len(itinerary.Days)))

	key := cacheKey(userUID)
	if err := s.cache.Set(key, saved, cacheTTL); err != nil {
		s.log.Warn("failed to cache itinerary", slog.String("key", key), slog.Any("err", err))
	}
	return saved, nil
}

// Delete удаляет маршрут владельца, инвалидирует кеш и возвращает
// количество удалённых записей. Ноль означает "удалять было нечего".
func (s *ItineraryService) Delete(ctx context.Context, userUID string) (int, error) {
	key := cacheKey(userUID)
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to remove itinerary from cache", slog.String("key", key), slog.Any("err", err))
	}

	count, err := s.repo.DeleteItinerary(ctx, userUID)
	if err != nil {
		return 0, err
	}
	return count, nil
}
