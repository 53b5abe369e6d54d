// Package update реализует HTTP-обработчик обновления книги каталога.
// Доступен только администраторам.
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

	"github.com/bookvault/bookvault/internal/http/response"
	"github.com/bookvault/bookvault/internal/lib/sl"
	"github.com/bookvault/bookvault/internal/models"
)

// Service описывает интерфейс бизнес-логики обновления книги.
type Service interface {
	Update(ctx context.Context, req models.DummyBook, bookID int64) error
}

// Handler обрабатывает HTTP-запросы на обновление книги.
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
	const op = "handlers.book.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyBook
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

	bookID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid book id"))
		return
	}

	if err := h.service.Update(r.Context(), req, bookID); err != nil {
		if errors.Is(err, models.ErrBookNotFound) {
			log.Error("book not found", slog.Int64("id", bookID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("book not found"))
			return
		}
		log.Error("failed to update book", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update book"))
		return
	}

	log.Info("book updated", slog.Int64("id", bookID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": bookID,
	}))
}
