// Package remove реализует HTTP-обработчик для удаления маршрута текущего пользователя.
//
// Handler вызывает бизнес-логику удаления и различает два исхода: маршрут был
// и удалён — 200, маршрута не было — 404 с отдельным сообщением.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/itinerary-planner/internal/http/middlewarectx"
	"github.com/magabrotheeeer/itinerary-planner/internal/http/response"
	"github.com/magabrotheeeer/itinerary-planner/internal/lib/sl"
)

// Handler обрабатывает запросы на удаление маршрута владельца.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики для удаления маршрута
}

// Service описывает интерфейс бизнес-логики удаления маршрута.
type Service interface {
	Delete(ctx context.Context, userUID string) (int, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить маршрут текущего пользователя
// @Description Удаляет сохранённый маршрут. Если маршрута нет, возвращает 404.
// @Tags Itinerary
// @Produce  json
// @Success 200 {object} response.Response "Маршрут удалён"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Маршрут не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при удалении"
// @Security BearerAuth
// @Router /itinerary [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.itinerary.remove"

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

	count, err := h.service.Delete(r.Context(), userUID)
	if err != nil {
		log.Error("failed to delete itinerary", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete itinerary"))
		return
	}
	if count == 0 {
		log.Info("no itinerary to delete")
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("no itinerary to delete"))
		return
	}

	log.Info("success to delete itinerary", slog.Int("count", count))
	render.JSON(w, r, response.OK())
}
