// Package middlewarectx содержит HTTP middleware для разбора и проверки сессии.
//
// SessionMiddleware извлекает токен сессии из заголовка Authorization или
// сессионной cookie, резолвит его через сервис аутентификации и в случае
// успеха добавляет в контекст UID владельца для дальнейшего использования
// в обработчиках.
//
// В случае ошибки проверки возвращает HTTP 401 Unauthorized с сообщением об ошибке.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/itinerary-planner/internal/http/response"
	"github.com/magabrotheeeer/itinerary-planner/internal/lib/sl"
	"github.com/magabrotheeeer/itinerary-planner/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User — ключ для UID владельца в контексте
const User Key = "user_uid"

// Service описывает интерфейс сервиса для резолва токена сессии.
type Service interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

// SessionMiddleware возвращает HTTP middleware, который резолвит сессию запроса.
//
// Если токен валиден и его владелец существует, UID попадает в контекст
// запроса, иначе возвращается ошибка с HTTP статусом 401 Unauthorized.
// Ключ владельца всегда выводится из сессии на сервере и никогда не
// принимается из тела запроса.
func SessionMiddleware(auth Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr := TokenFromRequest(r)
			if tokenStr == "" {
				log.Error("missing session token")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthenticated"))
				return
			}

			user, err := auth.Resolve(r.Context(), tokenStr)
			if err != nil {
				log.Error("invalid or expired session", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthenticated"))
				return
			}
			ctx := context.WithValue(r.Context(), User, user.UID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenFromRequest извлекает токен сессии из заголовка Authorization
// (схема Bearer) или, если заголовка нет, из сессионной cookie.
// Возвращает пустую строку, если токена нет.
func TokenFromRequest(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
