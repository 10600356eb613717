// Package logout реализует HTTP-обработчик выхода из системы.
//
// Токены не хранятся на сервере, поэтому выход сводится к сбросу
// сессионной куки. Обработчик всегда отвечает успехом, даже если
// куки не было.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/itinerary-planner/internal/http/middlewarectx"
	"github.com/magabrotheeeer/itinerary-planner/internal/http/response"
)

// Handler обрабатывает запросы на выход из системы.
type Handler struct {
	log *slog.Logger // Логгер для записи информации и ошибок
}

// New создает новый Handler с переданным логгером.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Выйти из системы
// @Description Сбрасывает сессионную куку.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "Сессия закрыта"
// @Router /auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	middlewarectx.ClearSessionCookie(w)

	log.Info("success to logout user")
	render.JSON(w, r, response.OK())
}
