// Package add реализует HTTP-обработчик добавления книги в корзину.
//
// Повторное добавление той же книги сливает количество в существующую
// позицию (ответ 200), первое добавление создаёт позицию (ответ 201).
// Количество сверяется со свежим остатком склада, но остаток не
// резервируется и не списывается.
package add

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/bookvault/bookvault/internal/http/middlewarectx"
	"github.com/bookvault/bookvault/internal/http/response"
	"github.com/bookvault/bookvault/internal/lib/sl"
	"github.com/bookvault/bookvault/internal/models"
	"github.com/bookvault/bookvault/internal/services/cart"
)

// Request — входные данные для добавления в корзину.
// Количество по умолчанию равно 1.
type Request struct {
	BookID   int64 `json:"book_id" validate:"required"`
	Quantity int   `json:"quantity" validate:"omitempty,gte=1"`
}

// Service описывает интерфейс бизнес-логики корзины для добавления.
type Service interface {
	Add(ctx context.Context, userID, bookID int64, quantity int) (*cart.AddResult, error)
}

// Handler обрабатывает HTTP-запросы на добавление в корзину.
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

// ServeHTTP godoc
// @Summary Добавить книгу в корзину
// @Description Создает позицию корзины или сливает количество с уже существующей.
// @Tags Cart
// @Accept  json
// @Produce  json
// @Param request body Request true "Книга и количество"
// @Success 201 {object} map[string]any "Создана новая позиция"
// @Success 200 {object} map[string]any "Количество слито с существующей позицией"
// @Failure 400 {object} response.ErrorResponse "Недостаточно остатка или некорректные данные"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Книга не найдена"
// @Router /api/cart [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.add"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
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
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("access token required"))
		return
	}

	result, err := h.service.Add(r.Context(), userID, req.BookID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrBookNotFound):
			log.Error("book not found", slog.Int64("book_id", req.BookID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("book not found"))
		case errors.Is(err, models.ErrInsufficientStock):
			log.Error("insufficient stock", slog.Int64("book_id", req.BookID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("insufficient stock for requested quantity"))
		default:
			log.Error("failed to add to cart", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal server error"))
		}
		return
	}

	log.Info("added to cart", slog.Int64("cart_id", result.LineID), slog.Bool("merged", result.Merged))
	if !result.Merged {
		w.WriteHeader(http.StatusCreated)
	}
	render.JSON(w, r, response.OKWithData(map[string]any{
		"cart_id":  result.LineID,
		"quantity": result.Quantity,
		"merged":   result.Merged,
	}))
}
