// Package me реализует HTTP-обработчик получения текущего пользователя.
//
// Обработчик никогда не отвечает 401: если сессии нет или она невалидна,
// в поле user возвращается null. Клиент использует этот эндпоинт при
// старте, чтобы понять, показывать форму входа или маршрут.
package me

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/itinerary-planner/internal/http/middlewarectx"
	"github.com/magabrotheeeer/itinerary-planner/internal/http/response"
	"github.com/magabrotheeeer/itinerary-planner/internal/models"
)

// Handler обрабатывает запросы на получение текущего пользователя.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики резолва сессии
}

// Service описывает интерфейс бизнес-логики резолва сессионного токена.
type Service interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить текущего пользователя
// @Description Возвращает владельца сессии или null, если сессии нет.
// @Tags Auth
// @Produce  json
// @Success 200 {object} map[string]any "Текущий пользователь или null"
// @Router /auth/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := middlewarectx.TokenFromRequest(r)
	if token == "" {
		log.Info("no session token in request")
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"user": nil,
		}))
		return
	}

	user, err := h.service.Resolve(r.Context(), token)
	if err != nil {
		log.Info("session is not valid")
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"user": nil,
		}))
		return
	}

	log.Info("success to resolve session", slog.String("uid", user.UID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": user.Public(),
	}))
}
