// Package login реализует HTTP-обработчик входа пользователя.
//
// Handler проверяет почту и пароль через бизнес-логику и открывает сессию.
// Неизвестная почта и неверный пароль дают один и тот же ответ 401, чтобы
// по ответу нельзя было проверить существование учётной записи.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/itinerary-planner/internal/http/middlewarectx"
	"github.com/magabrotheeeer/itinerary-planner/internal/http/response"
	"github.com/magabrotheeeer/itinerary-planner/internal/lib/sl"
	"github.com/magabrotheeeer/itinerary-planner/internal/models"
	services "github.com/magabrotheeeer/itinerary-planner/internal/services/auth"
)

// Request структура для разбора тела запроса входа.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Handler обрабатывает запросы на вход пользователя.
type Handler struct {
	log        *slog.Logger        // Логгер для записи информации и ошибок
	service    Service             // Сервис бизнес-логики входа
	validate   *validator.Validate // Валидатор структуры запроса
	sessionTTL time.Duration       // Время жизни сессионной куки
}

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(ctx context.Context, email, rawPassword string) (*models.User, string, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service, sessionTTL time.Duration) *Handler {
	return &Handler{
		log:        log,
		service:    service,
		validate:   validator.New(),
		sessionTTL: sessionTTL,
	}
}

// ServeHTTP godoc
// @Summary Войти в систему
// @Description Проверяет почту и пароль и открывает сессию.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Почта и пароль"
// @Success 200 {object} map[string]any "Пользователь и токен сессии"
// @Failure 400 {object} response.ErrorResponse "Некорректное тело запроса"
// @Failure 401 {object} response.ErrorResponse "Неверные учётные данные"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при входе"
// @Router /auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	user, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		log.Info("invalid credentials", slog.String("email", req.Email))
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid credentials"))
		return
	}
	if err != nil {
		log.Error("failed to login user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not login user"))
		return
	}

	middlewarectx.SetSessionCookie(w, token, h.sessionTTL)

	log.Info("success to login user", slog.String("uid", user.UID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user":  user.Public(),
		"token": token,
	}))
}
