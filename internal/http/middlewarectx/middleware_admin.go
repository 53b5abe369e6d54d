package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bookvault/bookvault/internal/http/response"
	"github.com/bookvault/bookvault/internal/lib/sl"
	"github.com/bookvault/bookvault/internal/models"
)

// RoleReader описывает сервис, умеющий отдавать актуальную роль пользователя.
type RoleReader interface {
	GetRole(ctx context.Context, userID int64) (string, error)
}

// AdminMiddleware пускает дальше только пользователей с ролью admin.
//
// Роль перечитывается из хранилища на каждом запросе, а не берётся из токена:
// понижение роли вступает в силу со следующего запроса, а не по истечении
// срока жизни токена.
func AdminMiddleware(authService RoleReader, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AdminMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				log.Error("user id not found in context")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("access token required"))
				return
			}

			role, err := authService.GetRole(r.Context(), userID)
			if err != nil {
				if errors.Is(err, models.ErrUserNotFound) {
					log.Error("user from token no longer exists", slog.Int64("user_id", userID))
					w.WriteHeader(http.StatusForbidden)
					render.JSON(w, r, response.Error("admin access required"))
					return
				}
				log.Error("failed to read user role", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal server error"))
				return
			}

			if role != models.RoleAdmin {
				log.Error("admin access denied", slog.Int64("user_id", userID))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
