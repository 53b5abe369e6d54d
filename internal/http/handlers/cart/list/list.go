// Package list реализует HTTP-обработчик выдачи содержимого корзины.
// Позиции возвращаются вместе с актуальными полями книг; итоговую
// сумму считает клиент.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bookvault/bookvault/internal/http/middlewarectx"
	"github.com/bookvault/bookvault/internal/http/response"
	"github.com/bookvault/bookvault/internal/lib/sl"
	"github.com/bookvault/bookvault/internal/models"
)

// Service описывает интерфейс бизнес-логики корзины для выдачи содержимого.
type Service interface {
	List(ctx context.Context, userID int64) ([]*models.CartItem, error)
}

// Handler обрабатывает HTTP-запросы на выдачу корзины.
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
	const op = "handlers.cart.list"

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

	items, err := h.service.List(r.Context(), userID)
	if err != nil {
		log.Error("failed to list cart items", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	log.Info("cart listed", slog.Int("count", len(items)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"items_count": len(items),
		"items":       items,
	}))
}
