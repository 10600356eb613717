// Package save реализует HTTP-обработчик для сохранения маршрута текущего пользователя.
//
// Handler принимает полный документ маршрута (дата старта и карта дней),
// валидирует его и передаёт бизнес-логике. Сохранение всегда заменяет
// предыдущую версию целиком: последняя запись побеждает.
package save

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/itinerary-planner/internal/http/middlewarectx"
	"github.com/magabrotheeeer/itinerary-planner/internal/http/response"
	"github.com/magabrotheeeer/itinerary-planner/internal/lib/sl"
	"github.com/magabrotheeeer/itinerary-planner/internal/models"
)

// Handler обрабатывает запросы на сохранение маршрута владельца.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для сохранения маршрута
	validate *validator.Validate // Валидатор структуры запроса
}

// Service описывает интерфейс бизнес-логики сохранения маршрута.
type Service interface {
	Save(ctx context.Context, userUID string, itinerary models.Itinerary) (*models.Itinerary, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Сохранить маршрут текущего пользователя
// @Description Полностью заменяет сохранённый маршрут переданным документом.
// @Tags Itinerary
// @Accept  json
// @Produce  json
// @Param itinerary body models.Itinerary true "Полный документ маршрута"
// @Success 200 {object} response.Response "Маршрут сохранён"
// @Failure 400 {object} response.ErrorResponse "Некорректное тело запроса"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при сохранении"
// @Security BearerAuth
// @Router /itinerary [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.itinerary.save"

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

	var req models.Itinerary
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		validateErrs := err.(validator.ValidationErrors)
		log.Error("invalid request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(validateErrs))
		return
	}

	if violations := req.Validate(); len(violations) > 0 {
		log.Error("invalid itinerary", slog.Int("violations", len(violations)))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Violations(violations))
		return
	}

	if req.Days == nil {
		req.Days = make(map[string]models.DayDetails)
	}

	saved, err := h.service.Save(r.Context(), userUID, req)
	if err != nil {
		log.Error("failed to save itinerary", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not save itinerary"))
		return
	}

	log.Info("success to save itinerary", slog.Int("days", len(saved.Days)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"itinerary": saved,
	}))
}
