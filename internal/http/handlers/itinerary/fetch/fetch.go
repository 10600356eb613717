// Package fetch реализует HTTP-обработчик для получения маршрута текущего пользователя.
//
// Handler извлекает UID владельца из контекста, вызывает бизнес-логику чтения
// маршрута и возвращает его в JSON-формате. Если маршрута ещё нет, возвращается
// корректный пустой маршрут, а не ошибка — клиент всегда получает форму,
// пригодную для отображения.
package fetch

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/itinerary-planner/internal/http/middlewarectx"
	"github.com/magabrotheeeer/itinerary-planner/internal/http/response"
	"github.com/magabrotheeeer/itinerary-planner/internal/lib/sl"
	"github.com/magabrotheeeer/itinerary-planner/internal/models"
	"github.com/magabrotheeeer/itinerary-planner/internal/storage"
)

// Handler обрабатывает запросы на получение маршрута владельца.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики для чтения маршрута
}

// Service описывает интерфейс бизнес-логики чтения маршрута.
type Service interface {
	Get(ctx context.Context, userUID string) (*models.Itinerary, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить маршрут текущего пользователя
// @Description Возвращает сохранённый маршрут. Если маршрута нет — пустой маршрут с незаданной датой старта.
// @Tags Itinerary
// @Produce  json
// @Success 200 {object} map[string]any "Маршрут пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при чтении маршрута"
// @Security BearerAuth
// @Router /itinerary [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.itinerary.fetch"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthenticated"))
		return
	}

	itinerary, err := h.service.Get(r.Context(), userUID)
	if errors.Is(err, storage.ErrItineraryNotFound) {
		empty := models.EmptyItinerary()
		itinerary = &empty
	} else if err != nil {
		log.Error("failed to read itinerary", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read itinerary"))
		return
	}

	log.Info("success to read itinerary", slog.Int("days", len(itinerary.Days)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"itinerary": itinerary,
	}))
}
