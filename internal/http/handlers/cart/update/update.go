// Package update реализует HTTP-обработчик смены количества в позиции корзины.
// Позиция чужого пользователя неотличима от несуществующей: в обоих случаях 404.
package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/bookvault/bookvault/internal/http/middlewarectx"
	"github.com/bookvault/bookvault/internal/http/response"
	"github.com/bookvault/bookvault/internal/lib/sl"
	"github.com/bookvault/bookvault/internal/models"
)

// Request — входные данные для смены количества.
type Request struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// Service описывает интерфейс бизнес-логики корзины для смены количества.
type Service interface {
	UpdateQuantity(ctx context.Context, userID, lineID int64, quantity int) error
}

// Handler обрабатывает HTTP-запросы на смену количества.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

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

	if err := h.service.UpdateQuantity(r.Context(), userID, lineID, req.Quantity); err != nil {
		switch {
		case errors.Is(err, models.ErrCartLineNotFound):
			log.Error("cart item not found", slog.Int64("cart_id", lineID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("cart item not found"))
		case errors.Is(err, models.ErrBookNotFound):
			log.Error("book not found for cart item", slog.Int64("cart_id", lineID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("book not found"))
		case errors.Is(err, models.ErrInsufficientStock):
			log.Error("insufficient stock", slog.Int64("cart_id", lineID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("insufficient stock for requested quantity"))
		default:
			log.Error("failed to update cart item", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal server error"))
		}
		return
	}

	log.Info("cart item updated", slog.Int64("cart_id", lineID), slog.Int("quantity", req.Quantity))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"cart_id":  lineID,
		"quantity": req.Quantity,
	}))
}
