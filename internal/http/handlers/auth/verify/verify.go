// Package verify реализует HTTP-обработчик проверки текущей сессии.
// Возвращает свежие публичные поля пользователя: клиенты используют его,
// чтобы подтвердить валидность токена и обновить роль в интерфейсе.
package verify

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bookvault/bookvault/internal/http/middlewarectx"
	"github.com/bookvault/bookvault/internal/http/response"
	"github.com/bookvault/bookvault/internal/lib/sl"
	"github.com/bookvault/bookvault/internal/models"
)

// Service описывает интерфейс проверки текущего пользователя.
type Service interface {
	VerifyUser(ctx context.Context, userID int64) (*models.PublicUser, error)
}

// Handler обрабатывает HTTP-запросы на проверку сессии.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.verify"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("access token required"))
		return
	}

	user, err := h.service.VerifyUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Error("user not found", slog.Int64("user_id", userID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to verify user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"user": user,
	}))
}
