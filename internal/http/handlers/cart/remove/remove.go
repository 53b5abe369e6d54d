// Package remove реализует HTTP-обработчик удаления позиции из корзины.
// Удаление идемпотентно по эффекту, но повторный вызов для того же ID — 404.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bookvault/bookvault/internal/http/middlewarectx"
	"github.com/bookvault/bookvault/internal/http/response"
	"github.com/bookvault/bookvault/internal/lib/sl"
	"github.com/bookvault/bookvault/internal/models"
)

// Service описывает интерфейс бизнес-логики корзины для удаления позиции.
type Service interface {
	Remove(ctx context.Context, userID, lineID int64) error
}

// Handler обрабатывает HTTP-запросы на удаление из корзины.
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
	const op = "handlers.cart.remove"

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

	lineID, err := strconv.ParseInt(chi.URLParam(r, "cartID"), 10, 64)
	if err != nil {
		log.Error("failed to decode cart id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid cart id"))
		return
	}

	if err := h.service.Remove(r.Context(), userID, lineID); err != nil {
		if errors.Is(err, models.ErrCartLineNotFound) {
			log.Error("cart item not found", slog.Int64("cart_id", lineID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("cart item not found"))
			return
		}
		log.Error("failed to remove cart item", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	log.Info("cart item removed", slog.Int64("cart_id", lineID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"cart_id": lineID,
	}))
}
