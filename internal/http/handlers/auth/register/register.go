// Package register реализует HTTP-обработчик регистрации нового пользователя.
//
// Handler валидирует почту, имя и пароль, создает учётную запись и сразу
// открывает сессию: токен возвращается в теле ответа и ставится в httpOnly-куку.
package register

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
	"github.com/magabrotheeeer/itinerary-planner/internal/storage"
)

// Request структура для разбора тела запроса регистрации.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// Handler обрабатывает запросы на регистрацию пользователя.
type Handler struct {
	log        *slog.Logger        // Логгер для записи информации и ошибок
	service    Service             // Сервис бизнес-логики регистрации
	validate   *validator.Validate // Валидатор структуры запроса
	sessionTTL time.Duration       // Время жизни сессионной куки
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, email, name, rawPassword string) (*models.User, string, error)
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
// @Summary Зарегистрировать нового пользователя
// @Description Создаёт учётную запись и сразу открывает сессию.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Почта, имя и пароль"
// @Success 200 {object} map[string]any "Пользователь и токен сессии"
// @Failure 400 {object} response.ErrorResponse "Некорректное тело запроса"
// @Failure 409 {object} response.ErrorResponse "Почта уже занята"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при регистрации"
// @Router /auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

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

	user, token, err := h.service.Register(r.Context(), req.Email, req.Name, req.Password)
	if errors.Is(err, storage.ErrEmailTaken) {
		log.Info("email already taken", slog.String("email", req.Email))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("email already taken"))
		return
	}
	if err != nil {
		log.Error("failed to register user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not register user"))
		return
	}

	middlewarectx.SetSessionCookie(w, token, h.sessionTTL)

	log.Info("success to register user", slog.String("uid", user.UID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user":  user.Public(),
		"token": token,
	}))
}
